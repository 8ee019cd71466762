package order

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/lingora/internal/catalog"
	catalogdomain "github.com/smallbiznis/lingora/internal/catalog/domain"
	"github.com/smallbiznis/lingora/internal/client"
	clientdomain "github.com/smallbiznis/lingora/internal/client/domain"
	"github.com/smallbiznis/lingora/internal/clock"
	"github.com/smallbiznis/lingora/internal/config"
	"github.com/smallbiznis/lingora/internal/contractor"
	contractordomain "github.com/smallbiznis/lingora/internal/contractor/domain"
	"github.com/smallbiznis/lingora/internal/order/domain"
	"github.com/smallbiznis/lingora/internal/orderbook"
	bookdomain "github.com/smallbiznis/lingora/internal/orderbook/domain"
	"github.com/smallbiznis/lingora/internal/pricing"
	pricingdomain "github.com/smallbiznis/lingora/internal/pricing/domain"
	"github.com/smallbiznis/lingora/internal/sequence"
	seqdomain "github.com/smallbiznis/lingora/internal/sequence/domain"
	"github.com/smallbiznis/lingora/internal/settings"
	settingsdomain "github.com/smallbiznis/lingora/internal/settings/domain"
	subcontractdomain "github.com/smallbiznis/lingora/internal/subcontract/domain"
	"github.com/smallbiznis/lingora/internal/unit"
	unitdomain "github.com/smallbiznis/lingora/internal/unit/domain"
	"github.com/smallbiznis/lingora/internal/vat"
	vatdomain "github.com/smallbiznis/lingora/internal/vat/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type orderFixture struct {
	db    *gorm.DB
	node  *snowflake.Node
	clock *clock.FakeClock
	svc   domain.Service
	vat   vatdomain.Service
	rates pricingdomain.Service
}

func setupOrderService(t *testing.T) *orderFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&clientdomain.Client{},
		&contractordomain.Contractor{},
		&contractordomain.ContractorUnitRate{},
		&unitdomain.Unit{},
		&catalogdomain.Service{},
		&vatdomain.Rule{},
		&bookdomain.OrderBook{},
		&domain.Order{},
		&subcontractdomain.Subcontract{},
		&pricingdomain.ClientDefaultUnitRate{},
		&pricingdomain.DefaultUnitRate{},
		&pricingdomain.ClientUnitRate{},
		&settingsdomain.Setting{},
		&seqdomain.Counter{},
	)
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	fakeClock := clock.NewFakeClock(time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC))
	pricingHolder := config.NewStaticPricingConfigHolder(config.DefaultPricingConfig())

	settingsSvc := settings.NewService(settings.Params{
		DB:      db,
		Log:     log,
		Repo:    settings.NewRepository(),
		Pricing: pricingHolder,
	})
	require.NoError(t, settingsSvc.Set(context.Background(), settingsdomain.KeyTaxpayerCountry, "PL"))

	vatSvc := vat.NewService(vat.Params{
		DB:          db,
		Log:         log,
		Node:        node,
		Repo:        vat.NewRepository(),
		ClientRepo:  client.NewRepository(),
		CatalogRepo: catalog.NewRepository(),
		Settings:    settingsSvc,
	})

	sequenceSvc := sequence.NewService(sequence.Params{
		DB:    db,
		Log:   log,
		Clock: fakeClock,
		Repo:  sequence.NewRepository(node),
	})

	ratesSvc := pricing.NewService(pricing.Params{
		DB:             db,
		Log:            log,
		Node:           node,
		Repo:           pricing.NewRepository(),
		ContractorRepo: contractor.NewRepository(),
	})

	svc := NewService(Params{
		DB:             db,
		Log:            log,
		Node:           node,
		Clock:          fakeClock,
		Repo:           NewRepository(),
		ClientRepo:     client.NewRepository(),
		ContractorRepo: contractor.NewRepository(),
		UnitRepo:       unit.NewRepository(),
		CatalogRepo:    catalog.NewRepository(),
		BookRepo:       orderbook.NewRepository(),
		Sequence:       sequenceSvc,
		Settings:       settingsSvc,
		Vat:            vatSvc,
		Rates:          ratesSvc,
		Pricing:        pricingHolder,
	})
	return &orderFixture{db: db, node: node, clock: fakeClock, svc: svc, vat: vatSvc, rates: ratesSvc}
}

func (f *orderFixture) seedBook(t *testing.T, format *string) *bookdomain.OrderBook {
	t.Helper()
	book := bookdomain.OrderBook{
		ID:                f.node.Generate(),
		Name:              "Orders",
		Code:              "orders",
		ViewType:          bookdomain.ViewPlain,
		OrderNumberFormat: format,
		ShareToken:        f.node.Generate().String(),
	}
	require.NoError(t, f.db.Create(&book).Error)
	return &book
}

func (f *orderFixture) seedClient(t *testing.T, paymentDays int) *clientdomain.Client {
	t.Helper()
	country := "PL"
	c := clientdomain.Client{
		ID:                 f.node.Generate(),
		Name:               "Acme",
		ShortName:          "acme",
		CountryCode:        &country,
		Kind:               clientdomain.KindCompany,
		DefaultPaymentDays: paymentDays,
	}
	require.NoError(t, f.db.Create(&c).Error)
	return &c
}

func strPtr(s string) *string { return &s }

func floatPtr(v float64) *float64 { return &v }

func TestCreateAllocatesSequentialNumbers(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	book := f.seedBook(t, strPtr("Z/{YYYY}/{NR}"))
	c := f.seedClient(t, 14)

	first, err := f.svc.Create(ctx, domain.CreateRequest{
		BookID: book.ID, ClientID: c.ID, Name: "first",
	})
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, domain.CreateRequest{
		BookID: book.ID, ClientID: c.ID, Name: "second",
	})
	require.NoError(t, err)

	assert.Equal(t, "Z/2026/1", first.OrderNumber)
	assert.Equal(t, "Z/2026/2", second.OrderNumber)
}

func TestCreateWithExplicitNumberAdvancesTheScan(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	book := f.seedBook(t, strPtr("Z/{YYYY}/{NR}"))
	c := f.seedClient(t, 14)

	manual, err := f.svc.Create(ctx, domain.CreateRequest{
		BookID: book.ID, ClientID: c.ID, Name: "manual",
		OrderNumber: strPtr("Z/2026/9"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Z/2026/9", manual.OrderNumber)

	next, err := f.svc.Create(ctx, domain.CreateRequest{
		BookID: book.ID, ClientID: c.ID, Name: "auto",
	})
	require.NoError(t, err)
	assert.Equal(t, "Z/2026/10", next.OrderNumber)
}

func TestCreateComputesRoundedAmount(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	book := f.seedBook(t, nil)
	c := f.seedClient(t, 14)

	order, err := f.svc.Create(ctx, domain.CreateRequest{
		BookID: book.ID, ClientID: c.ID, Name: "translation",
		Quantity:    floatPtr(3.333),
		RatePerUnit: floatPtr(30),
	})
	require.NoError(t, err)
	require.NotNil(t, order.Amount)
	assert.Equal(t, 99.99, *order.Amount)
	assert.Equal(t, "PLN", order.RateCurrency)
}

func TestCreateRepertoriumUnitDefaults(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	oralUnit := f.node.Generate()
	pageUnit := f.node.Generate()
	book := bookdomain.OrderBook{
		ID:                    f.node.Generate(),
		Name:                  "Repertorium",
		Code:                  "repertorium",
		ViewType:              bookdomain.ViewRepertorium,
		RepertoriumOralUnitID: &oralUnit,
		RepertoriumPageUnitID: &pageUnit,
		ShareToken:            f.node.Generate().String(),
	}
	require.NoError(t, f.db.Create(&book).Error)
	c := f.seedClient(t, 14)

	oral, err := f.svc.Create(ctx, domain.CreateRequest{
		BookID: book.ID, ClientID: c.ID, Name: "interpreting",
		TranslationType: domain.TranslationOral,
	})
	require.NoError(t, err)
	require.NotNil(t, oral.UnitID)
	assert.Equal(t, oralUnit, *oral.UnitID)

	written, err := f.svc.Create(ctx, domain.CreateRequest{
		BookID: book.ID, ClientID: c.ID, Name: "certified translation",
	})
	require.NoError(t, err)
	require.NotNil(t, written.UnitID)
	assert.Equal(t, pageUnit, *written.UnitID)
}

func TestCreateStampsVatFromRule(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	book := f.seedBook(t, nil)
	c := f.seedClient(t, 14)

	svcRow := catalogdomain.Service{ID: f.node.Generate(), Name: "Translation", VatRate: 23}
	require.NoError(t, f.db.Create(&svcRow).Error)
	_, err := f.vat.Upsert(ctx, vatdomain.UpsertRequest{
		ServiceID: svcRow.ID,
		Segment:   vatdomain.SegmentCompanyDomestic,
		ValueType: vatdomain.ValueTypeCode,
		CodeValue: strPtr("ZW"),
	})
	require.NoError(t, err)

	order, err := f.svc.Create(ctx, domain.CreateRequest{
		BookID: book.ID, ClientID: c.ID, Name: "exempt job",
		ServiceID: &svcRow.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, order.OrderVatCode)
	assert.Equal(t, "ZW", *order.OrderVatCode)
	assert.Nil(t, order.OrderVatRate)
}

func TestIssueInvoiceDefaultsDates(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	book := f.seedBook(t, nil)
	c := f.seedClient(t, 30)

	order, err := f.svc.Create(ctx, domain.CreateRequest{
		BookID: book.ID, ClientID: c.ID, Name: "invoiced",
	})
	require.NoError(t, err)

	issued, err := f.svc.IssueInvoice(ctx, order.ID, domain.IssueRequest{
		Number: strPtr("FV/2026/1"),
	})
	require.NoError(t, err)

	now := f.clock.Now()
	require.NotNil(t, issued.InvoiceDate)
	assert.Equal(t, now, *issued.InvoiceDate)
	require.NotNil(t, issued.InvoiceSaleDate)
	assert.Equal(t, now, *issued.InvoiceSaleDate)
	require.NotNil(t, issued.PaymentDueAt)
	assert.Equal(t, now.AddDate(0, 0, 30), *issued.PaymentDueAt)
	assert.Equal(t, domain.InvoiceIssued, issued.InvoiceStatus)
	require.NotNil(t, issued.InvoiceProviderSource)
	assert.Equal(t, domain.ProviderInternal, *issued.InvoiceProviderSource)
}

func TestIssueInvoicesRejectsMixedClients(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	book := f.seedBook(t, nil)
	a := f.seedClient(t, 14)
	b := clientdomain.Client{ID: f.node.Generate(), Name: "Other", ShortName: "other", Kind: clientdomain.KindCompany}
	require.NoError(t, f.db.Create(&b).Error)

	first, err := f.svc.Create(ctx, domain.CreateRequest{BookID: book.ID, ClientID: a.ID, Name: "a"})
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, domain.CreateRequest{BookID: book.ID, ClientID: b.ID, Name: "b"})
	require.NoError(t, err)

	_, err = f.svc.IssueInvoices(ctx, []snowflake.ID{first.ID, second.ID}, domain.IssueRequest{
		Number: strPtr("FV/2026/1"),
	})
	assert.ErrorIs(t, err, domain.ErrMixedClients)

	// Nothing in the batch may have been stamped.
	reloaded, err := f.svc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.InvoiceNumber)
	assert.Equal(t, domain.InvoiceToIssue, reloaded.InvoiceStatus)
}

func TestIssueInvoicesRejectsMixedCurrencies(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	book := f.seedBook(t, nil)
	c := f.seedClient(t, 14)

	pln, err := f.svc.Create(ctx, domain.CreateRequest{BookID: book.ID, ClientID: c.ID, Name: "pln", RateCurrency: "PLN"})
	require.NoError(t, err)
	eur, err := f.svc.Create(ctx, domain.CreateRequest{BookID: book.ID, ClientID: c.ID, Name: "eur", RateCurrency: "EUR"})
	require.NoError(t, err)

	_, err = f.svc.IssueInvoices(ctx, []snowflake.ID{pln.ID, eur.ID}, domain.IssueRequest{
		Number: strPtr("FV/2026/1"),
	})
	assert.ErrorIs(t, err, domain.ErrMixedCurrencies)
}

func TestIssueInvoiceNumberRequiredUnlessExternal(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	book := f.seedBook(t, nil)
	c := f.seedClient(t, 14)

	order, err := f.svc.Create(ctx, domain.CreateRequest{BookID: book.ID, ClientID: c.ID, Name: "job"})
	require.NoError(t, err)

	_, err = f.svc.IssueInvoice(ctx, order.ID, domain.IssueRequest{})
	assert.ErrorIs(t, err, domain.ErrNumberRequired)

	issued, err := f.svc.IssueInvoice(ctx, order.ID, domain.IssueRequest{
		ProviderSource: domain.ProviderExternal,
	})
	require.NoError(t, err)
	assert.Nil(t, issued.InvoiceNumber)
	assert.Equal(t, domain.InvoiceIssued, issued.InvoiceStatus)
}

func TestIssueInvoicesUnknownProvider(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	_, err := f.svc.IssueInvoices(ctx, []snowflake.ID{f.node.Generate()}, domain.IssueRequest{
		Number:         strPtr("FV/2026/1"),
		ProviderSource: "fax",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidProvider)
}

func TestIssueInvoicesEmptyBatch(t *testing.T) {
	f := setupOrderService(t)

	_, err := f.svc.IssueInvoices(context.Background(), nil, domain.IssueRequest{Number: strPtr("FV/1")})
	assert.ErrorIs(t, err, domain.ErrEmptyBatch)
}

func TestIssueInvoicesMissingOrder(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	book := f.seedBook(t, nil)
	c := f.seedClient(t, 14)
	order, err := f.svc.Create(ctx, domain.CreateRequest{BookID: book.ID, ClientID: c.ID, Name: "real"})
	require.NoError(t, err)

	_, err = f.svc.IssueInvoices(ctx, []snowflake.ID{order.ID, f.node.Generate()}, domain.IssueRequest{
		Number: strPtr("FV/2026/1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClearInvoiceRevertsEverything(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	book := f.seedBook(t, nil)
	c := f.seedClient(t, 14)
	order, err := f.svc.Create(ctx, domain.CreateRequest{BookID: book.ID, ClientID: c.ID, Name: "job"})
	require.NoError(t, err)

	_, err = f.svc.IssueInvoice(ctx, order.ID, domain.IssueRequest{
		Number: strPtr("FV/2026/1"),
		Notes:  strPtr("paid upfront"),
	})
	require.NoError(t, err)

	cleared, err := f.svc.ClearInvoice(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, cleared.InvoiceNumber)
	assert.Nil(t, cleared.InvoiceDate)
	assert.Nil(t, cleared.InvoiceSaleDate)
	assert.Nil(t, cleared.PaymentDueAt)
	assert.Nil(t, cleared.InvoiceNotes)
	assert.Nil(t, cleared.InvoiceProviderSource)
	assert.Equal(t, domain.InvoiceToIssue, cleared.InvoiceStatus)
}

func TestUpdateValidatesStatusesAndRecomputesAmount(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	book := f.seedBook(t, nil)
	c := f.seedClient(t, 14)
	order, err := f.svc.Create(ctx, domain.CreateRequest{
		BookID: book.ID, ClientID: c.ID, Name: "job",
		Quantity: floatPtr(2), RatePerUnit: floatPtr(50),
	})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, order.ID, domain.UpdateRequest{OrderStatus: strPtr("archived")})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	updated, err := f.svc.Update(ctx, order.ID, domain.UpdateRequest{
		OrderStatus: strPtr(domain.StatusCompleted),
		Quantity:    floatPtr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.OrderStatus)
	require.NotNil(t, updated.Amount)
	assert.Equal(t, 150.0, *updated.Amount)
}

func TestPeekNumberMatchesNextAllocation(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	book := f.seedBook(t, strPtr("Z/{YYYY}/{NR}"))
	c := f.seedClient(t, 14)

	peeked, err := f.svc.PeekNumber(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Z/2026/1", peeked)

	order, err := f.svc.Create(ctx, domain.CreateRequest{BookID: book.ID, ClientID: c.ID, Name: "job"})
	require.NoError(t, err)
	assert.Equal(t, peeked, order.OrderNumber)
}

func TestResolveRateFromStoredOrder(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	book := f.seedBook(t, nil)
	c := f.seedClient(t, 14)
	pageUnit := unitdomain.Unit{ID: f.node.Generate(), Name: "page"}
	require.NoError(t, f.db.Create(&pageUnit).Error)

	_, err := f.rates.CreateGlobalRate(ctx, pricingdomain.GlobalRateInput{
		UnitID: pageUnit.ID, Rate: 30, Currency: "PLN",
	})
	require.NoError(t, err)
	_, err = f.rates.CreateClientRate(ctx, pricingdomain.ClientRateInput{
		ClientID: c.ID, UnitID: pageUnit.ID, Rate: 55, Currency: "PLN",
		Slots: []pricingdomain.Slot{{Key: "language_pair", Value: "EN-PL"}},
	})
	require.NoError(t, err)

	order, err := f.svc.Create(ctx, domain.CreateRequest{
		BookID: book.ID, ClientID: c.ID, Name: "job",
		UnitID:       &pageUnit.ID,
		LanguagePair: strPtr("EN-PL"),
	})
	require.NoError(t, err)

	resolved, err := f.svc.ResolveRate(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 55.0, resolved.Rate)
	assert.Equal(t, "PLN", resolved.Currency)
}

func TestResolveRateUsesClientShortNameCandidate(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	book := f.seedBook(t, nil)
	c := f.seedClient(t, 14)
	pageUnit := unitdomain.Unit{ID: f.node.Generate(), Name: "page"}
	require.NoError(t, f.db.Create(&pageUnit).Error)

	_, err := f.rates.CreateGlobalRate(ctx, pricingdomain.GlobalRateInput{
		UnitID: pageUnit.ID, Rate: 80, Currency: "PLN",
		Slots: []pricingdomain.Slot{{Key: "client", Value: "acme"}},
	})
	require.NoError(t, err)

	order, err := f.svc.Create(ctx, domain.CreateRequest{
		BookID: book.ID, ClientID: c.ID, Name: "job",
		UnitID: &pageUnit.ID,
	})
	require.NoError(t, err)

	resolved, err := f.svc.ResolveRate(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 80.0, resolved.Rate)
}

func TestResolveRateWithoutUnit(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	book := f.seedBook(t, nil)
	c := f.seedClient(t, 14)

	order, err := f.svc.Create(ctx, domain.CreateRequest{BookID: book.ID, ClientID: c.ID, Name: "job"})
	require.NoError(t, err)

	_, err = f.svc.ResolveRate(ctx, order.ID)
	assert.ErrorIs(t, err, pricingdomain.ErrNoRate)
}
