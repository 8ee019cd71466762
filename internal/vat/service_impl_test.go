package vat

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/lingora/internal/catalog"
	catalogdomain "github.com/smallbiznis/lingora/internal/catalog/domain"
	"github.com/smallbiznis/lingora/internal/client"
	clientdomain "github.com/smallbiznis/lingora/internal/client/domain"
	"github.com/smallbiznis/lingora/internal/config"
	"github.com/smallbiznis/lingora/internal/settings"
	settingsdomain "github.com/smallbiznis/lingora/internal/settings/domain"
	"github.com/smallbiznis/lingora/internal/vat/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type vatFixture struct {
	db   *gorm.DB
	node *snowflake.Node
	svc  domain.Service
}

func setupVatService(t *testing.T) *vatFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&clientdomain.Client{},
		&catalogdomain.Service{},
		&domain.Rule{},
		&settingsdomain.Setting{},
	)
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	settingsSvc := settings.NewService(settings.Params{
		DB:      db,
		Log:     zap.NewNop(),
		Repo:    settings.NewRepository(),
		Pricing: config.NewStaticPricingConfigHolder(config.DefaultPricingConfig()),
	})
	require.NoError(t, settingsSvc.Set(context.Background(), settingsdomain.KeyTaxpayerCountry, "PL"))

	svc := NewService(Params{
		DB:          db,
		Log:         zap.NewNop(),
		Node:        node,
		Repo:        NewRepository(),
		ClientRepo:  client.NewRepository(),
		CatalogRepo: catalog.NewRepository(),
		Settings:    settingsSvc,
	})
	return &vatFixture{db: db, node: node, svc: svc}
}

func (f *vatFixture) seedClient(t *testing.T, kind, countryCode string) snowflake.ID {
	t.Helper()
	c := clientdomain.Client{
		ID:        f.node.Generate(),
		Name:      "Client " + countryCode,
		ShortName: countryCode,
		Kind:      kind,
	}
	if countryCode != "" {
		c.CountryCode = &countryCode
	}
	require.NoError(t, f.db.Create(&c).Error)
	return c.ID
}

func (f *vatFixture) seedService(t *testing.T, vatRate float64) snowflake.ID {
	t.Helper()
	svc := catalogdomain.Service{
		ID:      f.node.Generate(),
		Name:    "Translation",
		VatRate: vatRate,
	}
	require.NoError(t, f.db.Create(&svc).Error)
	return svc.ID
}

func floatPtr(v float64) *float64 { return &v }

func strPtr(s string) *string { return &s }

func TestEffectiveUsesMatchingRule(t *testing.T) {
	f := setupVatService(t)
	ctx := context.Background()

	clientID := f.seedClient(t, clientdomain.KindCompany, "DE")
	serviceID := f.seedService(t, 23)

	_, err := f.svc.Upsert(ctx, domain.UpsertRequest{
		ServiceID: serviceID,
		Segment:   domain.SegmentCompanyEU,
		ValueType: domain.ValueTypeRate,
		RateValue: floatPtr(0),
	})
	require.NoError(t, err)

	outcome, err := f.svc.Effective(ctx, clientID, serviceID)
	require.NoError(t, err)
	assert.False(t, outcome.IsCode())
	assert.Equal(t, 0.0, outcome.Rate())
}

func TestEffectiveCodeRuleYieldsZeroRate(t *testing.T) {
	f := setupVatService(t)
	ctx := context.Background()

	clientID := f.seedClient(t, clientdomain.KindCompany, "US")
	serviceID := f.seedService(t, 23)

	_, err := f.svc.Upsert(ctx, domain.UpsertRequest{
		ServiceID: serviceID,
		Segment:   domain.SegmentCompanyWorld,
		ValueType: domain.ValueTypeCode,
		CodeValue: strPtr("o"),
	})
	require.NoError(t, err)

	outcome, err := f.svc.Effective(ctx, clientID, serviceID)
	require.NoError(t, err)
	code, ok := outcome.Code()
	require.True(t, ok)
	assert.Equal(t, "NP", code)
	assert.Equal(t, 0.0, outcome.Rate())
}

func TestEffectiveFallsBackToFlatServiceRate(t *testing.T) {
	f := setupVatService(t)
	ctx := context.Background()

	clientID := f.seedClient(t, clientdomain.KindPerson, "PL")
	serviceID := f.seedService(t, 23)

	outcome, err := f.svc.Effective(ctx, clientID, serviceID)
	require.NoError(t, err)
	assert.Equal(t, 23.0, outcome.Rate())
}

func TestEffectiveCountryRuleBeatsSegmentRule(t *testing.T) {
	f := setupVatService(t)
	ctx := context.Background()

	clientID := f.seedClient(t, clientdomain.KindCompany, "DE")
	serviceID := f.seedService(t, 23)

	_, err := f.svc.Upsert(ctx, domain.UpsertRequest{
		ServiceID: serviceID,
		Segment:   domain.SegmentCompanyEU,
		ValueType: domain.ValueTypeRate,
		RateValue: floatPtr(0),
	})
	require.NoError(t, err)
	_, err = f.svc.Upsert(ctx, domain.UpsertRequest{
		ServiceID:   serviceID,
		Segment:     domain.SegmentCompanyEU,
		CountryCode: strPtr("de"),
		ValueType:   domain.ValueTypeRate,
		RateValue:   floatPtr(19),
	})
	require.NoError(t, err)

	outcome, err := f.svc.Effective(ctx, clientID, serviceID)
	require.NoError(t, err)
	assert.Equal(t, 19.0, outcome.Rate())
}

func TestUpsertReplacesExistingIdentity(t *testing.T) {
	f := setupVatService(t)
	ctx := context.Background()

	serviceID := f.seedService(t, 23)

	first, err := f.svc.Upsert(ctx, domain.UpsertRequest{
		ServiceID: serviceID,
		Segment:   domain.SegmentCompanyEU,
		ValueType: domain.ValueTypeRate,
		RateValue: floatPtr(0),
	})
	require.NoError(t, err)

	second, err := f.svc.Upsert(ctx, domain.UpsertRequest{
		ServiceID: serviceID,
		Segment:   domain.SegmentCompanyEU,
		ValueType: domain.ValueTypeCode,
		CodeValue: strPtr("NP"),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	rules, err := f.svc.ListByService(ctx, serviceID)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, domain.ValueTypeCode, rules[0].ValueType)
}

func TestUpsertValidation(t *testing.T) {
	f := setupVatService(t)
	ctx := context.Background()

	serviceID := f.seedService(t, 23)

	_, err := f.svc.Upsert(ctx, domain.UpsertRequest{
		ServiceID: f.node.Generate(),
		Segment:   domain.SegmentCompanyEU,
		ValueType: domain.ValueTypeRate,
		RateValue: floatPtr(23),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidService)

	_, err = f.svc.Upsert(ctx, domain.UpsertRequest{
		ServiceID: serviceID,
		Segment:   "company_mars",
		ValueType: domain.ValueTypeRate,
		RateValue: floatPtr(23),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSegment)

	_, err = f.svc.Upsert(ctx, domain.UpsertRequest{
		ServiceID: serviceID,
		Segment:   domain.SegmentCompanyEU,
		ValueType: domain.ValueTypeRate,
		RateValue: floatPtr(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	_, err = f.svc.Upsert(ctx, domain.UpsertRequest{
		ServiceID: serviceID,
		Segment:   domain.SegmentCompanyEU,
		ValueType: domain.ValueTypeCode,
		CodeValue: strPtr("  "),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
}

func TestClassifyReadsTaxpayerCountry(t *testing.T) {
	f := setupVatService(t)
	ctx := context.Background()

	clientID := f.seedClient(t, clientdomain.KindCompany, "PL")

	segment, err := f.svc.Classify(ctx, clientID)
	require.NoError(t, err)
	assert.Equal(t, domain.SegmentCompanyDomestic, segment)
}
