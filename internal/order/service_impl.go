package order

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/lingora/internal/catalog/domain"
	clientdomain "github.com/smallbiznis/lingora/internal/client/domain"
	"github.com/smallbiznis/lingora/internal/clock"
	"github.com/smallbiznis/lingora/internal/config"
	contractordomain "github.com/smallbiznis/lingora/internal/contractor/domain"
	"github.com/smallbiznis/lingora/internal/observability/metrics"
	"github.com/smallbiznis/lingora/internal/order/domain"
	bookdomain "github.com/smallbiznis/lingora/internal/orderbook/domain"
	pricingdomain "github.com/smallbiznis/lingora/internal/pricing/domain"
	seqdomain "github.com/smallbiznis/lingora/internal/sequence/domain"
	settingsdomain "github.com/smallbiznis/lingora/internal/settings/domain"
	unitdomain "github.com/smallbiznis/lingora/internal/unit/domain"
	vatdomain "github.com/smallbiznis/lingora/internal/vat/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB             *gorm.DB
	Log            *zap.Logger
	Node           *snowflake.Node
	Clock          clock.Clock
	Repo           domain.Repository
	ClientRepo     clientdomain.Repository
	ContractorRepo contractordomain.Repository
	UnitRepo       unitdomain.Repository
	CatalogRepo    catalogdomain.Repository
	BookRepo       bookdomain.Repository
	Sequence       seqdomain.Service
	Settings       settingsdomain.Service
	Vat            vatdomain.Service
	Rates          pricingdomain.Service
	Pricing        *config.PricingConfigHolder
	Metrics        *metrics.Metrics `optional:"true"`
}

type service struct {
	db             *gorm.DB
	log            *zap.Logger
	node           *snowflake.Node
	clock          clock.Clock
	repo           domain.Repository
	clientRepo     clientdomain.Repository
	contractorRepo contractordomain.Repository
	unitRepo       unitdomain.Repository
	catalogRepo    catalogdomain.Repository
	bookRepo       bookdomain.Repository
	sequence       seqdomain.Service
	settings       settingsdomain.Service
	vat            vatdomain.Service
	rates          pricingdomain.Service
	pricing        *config.PricingConfigHolder
	metrics        *metrics.Metrics
}

func NewService(p Params) domain.Service {
	return &service{
		db:             p.DB,
		log:            p.Log.Named("order.service"),
		node:           p.Node,
		clock:          p.Clock,
		repo:           p.Repo,
		clientRepo:     p.ClientRepo,
		contractorRepo: p.ContractorRepo,
		unitRepo:       p.UnitRepo,
		catalogRepo:    p.CatalogRepo,
		bookRepo:       p.BookRepo,
		sequence:       p.Sequence,
		settings:       p.Settings,
		vat:            p.Vat,
		rates:          p.Rates,
		pricing:        p.Pricing,
		metrics:        p.Metrics,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Order, error) {
	book, err := s.bookRepo.FindByID(ctx, s.db, req.BookID)
	if err != nil {
		return nil, err
	}
	client, err := s.clientRepo.FindByID(ctx, s.db, req.ClientID)
	if err != nil {
		return nil, err
	}

	translationType := strings.TrimSpace(req.TranslationType)
	if translationType == "" {
		translationType = domain.TranslationWritten
	}
	if translationType != domain.TranslationWritten && translationType != domain.TranslationOral {
		return nil, domain.ErrInvalidStatus
	}

	currency := strings.ToUpper(strings.TrimSpace(req.RateCurrency))
	if currency == "" {
		currency = s.settings.DefaultCurrency(ctx)
	}

	order := domain.Order{
		ID:                  s.node.Generate(),
		BookID:              book.ID,
		Name:                strings.TrimSpace(req.Name),
		ClientID:            client.ID,
		ContractorID:        req.ContractorID,
		ServiceID:           req.ServiceID,
		UnitID:              req.UnitID,
		LanguagePair:        req.LanguagePair,
		Specialization:      req.Specialization,
		TranslationType:     translationType,
		ReceivedAt:          req.ReceivedAt,
		Deadline:            req.Deadline,
		Quantity:            req.Quantity,
		RatePerUnit:         req.RatePerUnit,
		RateCurrency:        currency,
		OrderStatus:         domain.StatusToDo,
		InvoiceStatus:       domain.InvoiceToIssue,
		ActivityType:        req.ActivityType,
		DocumentAuthor:      req.DocumentAuthor,
		DocumentName:        req.DocumentName,
		DocumentDate:        req.DocumentDate,
		DocumentNumber:      req.DocumentNumber,
		DocumentFormRemarks: req.DocumentFormRemarks,
		OralLang:            req.OralLang,
		OralDate:            req.OralDate,
		OralPlace:           req.OralPlace,
		OralDuration:        req.OralDuration,
		OralScope:           req.OralScope,
		RepertoriumNotes:    req.RepertoriumNotes,
		CustomValues:        toJSONMap(req.CustomValues),
	}
	order.Amount = domain.RoundAmount(order.Quantity, order.RatePerUnit)

	// Repertorium books default the unit by activity form: interpreting
	// bills by the oral unit, everything else by the page unit.
	if order.UnitID == nil && book.IsRepertorium() {
		if translationType == domain.TranslationOral {
			order.UnitID = book.RepertoriumOralUnitID
		} else {
			order.UnitID = book.RepertoriumPageUnitID
		}
	}

	if order.ServiceID != nil {
		outcome, err := s.vat.Effective(ctx, order.ClientID, *order.ServiceID)
		if err != nil {
			return nil, err
		}
		if code, ok := outcome.Code(); ok {
			order.OrderVatCode = &code
		} else {
			rate := outcome.Rate()
			order.OrderVatRate = &rate
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.OrderNumber != nil && strings.TrimSpace(*req.OrderNumber) != "" {
			order.OrderNumber = strings.TrimSpace(*req.OrderNumber)
		} else {
			number, err := s.sequence.NextInTx(ctx, tx, seqdomain.KindOrder, seqdomain.OrderScope(book.ID), s.orderTemplate(ctx, book))
			if err != nil {
				return err
			}
			order.OrderNumber = number
		}
		return s.repo.Insert(ctx, tx, &order)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.Stringer("order_id", order.ID),
		zap.Stringer("book_id", order.BookID),
		zap.String("order_number", order.OrderNumber),
	)
	return &order, nil
}

func (s *service) Get(ctx context.Context, id snowflake.ID) (*domain.Order, error) {
	return s.repo.FindByID(ctx, s.db, id)
}

func (s *service) ListByBook(ctx context.Context, bookID snowflake.ID) ([]domain.Order, error) {
	return s.repo.ListByBook(ctx, s.db, bookID)
}

func (s *service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateRequest) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		order.Name = strings.TrimSpace(*req.Name)
	}
	if req.ContractorID != nil {
		order.ContractorID = req.ContractorID
	}
	if req.ServiceID != nil {
		order.ServiceID = req.ServiceID
	}
	if req.UnitID != nil {
		order.UnitID = req.UnitID
	}
	if req.LanguagePair != nil {
		order.LanguagePair = req.LanguagePair
	}
	if req.Specialization != nil {
		order.Specialization = req.Specialization
	}
	if req.TranslationType != nil {
		if *req.TranslationType != domain.TranslationWritten && *req.TranslationType != domain.TranslationOral {
			return nil, domain.ErrInvalidStatus
		}
		order.TranslationType = *req.TranslationType
	}
	if req.ReceivedAt != nil {
		order.ReceivedAt = req.ReceivedAt
	}
	if req.Deadline != nil {
		order.Deadline = req.Deadline
	}
	if req.CompletedAt != nil {
		order.CompletedAt = req.CompletedAt
	}
	if req.Quantity != nil {
		order.Quantity = req.Quantity
	}
	if req.RatePerUnit != nil {
		order.RatePerUnit = req.RatePerUnit
	}
	if req.RateCurrency != nil {
		order.RateCurrency = strings.ToUpper(strings.TrimSpace(*req.RateCurrency))
	}
	if req.OrderStatus != nil {
		if !validOrderStatus(*req.OrderStatus) {
			return nil, domain.ErrInvalidStatus
		}
		order.OrderStatus = *req.OrderStatus
	}
	if req.InvoiceStatus != nil {
		if !validInvoiceStatus(*req.InvoiceStatus) {
			return nil, domain.ErrInvalidStatus
		}
		order.InvoiceStatus = *req.InvoiceStatus
	}

	applyRepertoriumPatch(order, req)

	if req.CustomValues != nil {
		order.CustomValues = toJSONMap(req.CustomValues)
	}

	order.Amount = domain.RoundAmount(order.Quantity, order.RatePerUnit)

	if err := s.repo.Update(ctx, s.db, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) Delete(ctx context.Context, id snowflake.ID) error {
	return s.repo.Delete(ctx, s.db, id)
}

func (s *service) IssueInvoice(ctx context.Context, orderID snowflake.ID, req domain.IssueRequest) (*domain.Order, error) {
	orders, err := s.IssueInvoices(ctx, []snowflake.ID{orderID}, req)
	if err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (s *service) IssueInvoices(ctx context.Context, orderIDs []snowflake.ID, req domain.IssueRequest) ([]domain.Order, error) {
	if len(orderIDs) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	source := strings.TrimSpace(req.ProviderSource)
	if source == "" {
		source = domain.ProviderInternal
	}
	if source != domain.ProviderInternal && source != domain.ProviderExternal {
		return nil, domain.ErrInvalidProvider
	}

	number := ""
	if req.Number != nil {
		number = strings.TrimSpace(*req.Number)
	}
	if number == "" && source != domain.ProviderExternal {
		return nil, domain.ErrNumberRequired
	}

	var out []domain.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orders, err := s.repo.FindByIDs(ctx, tx, orderIDs)
		if err != nil {
			return err
		}
		if len(orders) != len(orderIDs) {
			return domain.ErrNotFound
		}

		clientID := orders[0].ClientID
		currency := orders[0].RateCurrency
		for _, o := range orders {
			if o.ClientID != clientID {
				return domain.ErrMixedClients
			}
			if !strings.EqualFold(o.RateCurrency, currency) {
				return domain.ErrMixedCurrencies
			}
		}

		client, err := s.clientRepo.FindByID(ctx, tx, clientID)
		if err != nil {
			return err
		}

		invoiceDate := s.clock.Now()
		if req.Date != nil {
			invoiceDate = *req.Date
		}
		saleDate := invoiceDate
		if req.SaleDate != nil {
			saleDate = *req.SaleDate
		}
		due := req.PaymentDueAt
		if due == nil {
			days := client.DefaultPaymentDays
			if days <= 0 {
				days = 14
			}
			d := invoiceDate.AddDate(0, 0, days)
			due = &d
		}

		for i := range orders {
			o := &orders[i]
			if number != "" {
				o.InvoiceNumber = &number
			} else {
				o.InvoiceNumber = nil
			}
			o.InvoiceDate = &invoiceDate
			o.InvoiceSaleDate = &saleDate
			o.PaymentDueAt = due
			o.InvoiceNotes = req.Notes
			o.InvoiceDescription = req.Description
			o.InvoiceBankAccount = req.BankAccount
			o.InvoiceProviderSource = &source
			o.InvoiceStatus = domain.InvoiceIssued
			if err := s.repo.Update(ctx, tx, o); err != nil {
				return err
			}
		}
		out = orders
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordInvoicesIssued(ctx, len(out), source)
	s.log.Info("invoices issued",
		zap.Int("orders", len(out)),
		zap.String("provider_source", source),
		zap.String("invoice_number", number),
	)
	return out, nil
}

func (s *service) ClearInvoice(ctx context.Context, orderID snowflake.ID) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, s.db, orderID)
	if err != nil {
		return nil, err
	}

	order.InvoiceNumber = nil
	order.InvoiceDate = nil
	order.InvoiceSaleDate = nil
	order.PaymentDueAt = nil
	order.InvoiceNotes = nil
	order.InvoiceDescription = nil
	order.InvoiceBankAccount = nil
	order.InvoiceProviderSource = nil
	order.InvoiceStatus = domain.InvoiceToIssue

	if err := s.repo.Update(ctx, s.db, order); err != nil {
		return nil, err
	}
	s.metrics.RecordInvoiceCleared(ctx)
	return order, nil
}

func (s *service) ResolveRate(ctx context.Context, id snowflake.ID) (*pricingdomain.ResolvedRate, error) {
	order, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if order.UnitID == nil {
		return nil, pricingdomain.ErrNoRate
	}
	candidates := pricingdomain.BuildCandidates(s.rateContext(ctx, order))
	return s.rates.Resolve(ctx, pricingdomain.ResolveRequest{
		ClientID:   &order.ClientID,
		UnitID:     *order.UnitID,
		Candidates: candidates,
		Currency:   order.RateCurrency,
	})
}

// rateContext snapshots the order for the candidate builder. Related rows
// only enrich the candidate list, so lookup failures leave their field empty
// instead of failing the resolution.
func (s *service) rateContext(ctx context.Context, order *domain.Order) pricingdomain.OrderContext {
	octx := pricingdomain.OrderContext{
		LanguagePair:    strDeref(order.LanguagePair),
		OrderNumber:     order.OrderNumber,
		Name:            order.Name,
		OralLang:        strDeref(order.OralLang),
		ActivityType:    strDeref(order.ActivityType),
		Specialization:  strDeref(order.Specialization),
		Quantity:        order.Quantity,
		Amount:          order.Amount,
		OrderStatus:     order.OrderStatus,
		InvoiceStatus:   order.InvoiceStatus,
		TranslationType: order.TranslationType,
		InvoiceDesc:     strDeref(order.InvoiceDescription),
		DocumentAuthor:  strDeref(order.DocumentAuthor),
		DocumentName:    strDeref(order.DocumentName),
		DocumentDate:    strDeref(order.DocumentDate),
		DocumentNumber:  strDeref(order.DocumentNumber),
		DocumentRemarks: strDeref(order.DocumentFormRemarks),
		RepertoriumNote: strDeref(order.RepertoriumNotes),
		OralDate:        strDeref(order.OralDate),
		OralPlace:       strDeref(order.OralPlace),
		OralDuration:    strDeref(order.OralDuration),
		OralScope:       strDeref(order.OralScope),
		RefusalDate:     strDeref(order.RefusalDate),
		RefusalOrgan:    strDeref(order.RefusalOrgan),
		RefusalReason:   strDeref(order.RefusalReason),
	}
	if order.ReceivedAt != nil {
		octx.ReceivedAt = order.ReceivedAt.Format("2006-01-02")
	}
	if order.Deadline != nil {
		octx.Deadline = order.Deadline.Format("2006-01-02")
	}
	if order.CompletedAt != nil {
		octx.CompletedAt = order.CompletedAt.Format("2006-01-02")
	}
	if order.PaymentDueAt != nil {
		octx.PaymentDue = order.PaymentDueAt.Format("2006-01-02")
	}
	if client, err := s.clientRepo.FindByID(ctx, s.db, order.ClientID); err == nil {
		octx.ClientShortName = client.ShortName
	}
	if order.ContractorID != nil {
		if contractor, err := s.contractorRepo.FindByID(ctx, s.db, *order.ContractorID); err == nil {
			octx.ContractorShort = contractor.ShortName
		}
	}
	if order.ServiceID != nil {
		if svc, err := s.catalogRepo.FindByID(ctx, s.db, *order.ServiceID); err == nil {
			octx.ServiceName = svc.Name
		}
	}
	if order.UnitID != nil {
		if unit, err := s.unitRepo.FindByID(ctx, s.db, *order.UnitID); err == nil {
			octx.UnitName = unit.Name
		}
	}
	if book, err := s.bookRepo.FindByID(ctx, s.db, order.BookID); err == nil {
		octx.BookName = book.Name
	}
	if len(order.CustomValues) > 0 {
		octx.CustomValues = make(map[string]string, len(order.CustomValues))
		for columnID, value := range order.CustomValues {
			if text, ok := value.(string); ok {
				octx.CustomValues[columnID] = text
			}
		}
	}
	return octx
}

func (s *service) PeekNumber(ctx context.Context, bookID snowflake.ID) (string, error) {
	book, err := s.bookRepo.FindByID(ctx, s.db, bookID)
	if err != nil {
		return "", err
	}
	return s.sequence.Peek(ctx, seqdomain.KindOrder, seqdomain.OrderScope(book.ID), s.orderTemplate(ctx, book))
}

func (s *service) orderTemplate(ctx context.Context, book *bookdomain.OrderBook) string {
	if book.OrderNumberFormat != nil && strings.TrimSpace(*book.OrderNumberFormat) != "" {
		return *book.OrderNumberFormat
	}
	if value, err := s.settings.Get(ctx, settingsdomain.KeyOrderNumberFormat); err == nil && strings.TrimSpace(value) != "" {
		return value
	} else if err != nil && !errors.Is(err, settingsdomain.ErrNotFound) {
		s.log.Warn("failed to load order number format setting", zap.Error(err))
	}
	return s.pricing.Current().OrderNumberFormat
}

func applyRepertoriumPatch(order *domain.Order, req domain.UpdateRequest) {
	if req.ActivityType != nil {
		order.ActivityType = req.ActivityType
	}
	if req.DocumentAuthor != nil {
		order.DocumentAuthor = req.DocumentAuthor
	}
	if req.DocumentName != nil {
		order.DocumentName = req.DocumentName
	}
	if req.DocumentDate != nil {
		order.DocumentDate = req.DocumentDate
	}
	if req.DocumentNumber != nil {
		order.DocumentNumber = req.DocumentNumber
	}
	if req.DocumentFormRemarks != nil {
		order.DocumentFormRemarks = req.DocumentFormRemarks
	}
	if req.OralLang != nil {
		order.OralLang = req.OralLang
	}
	if req.OralDate != nil {
		order.OralDate = req.OralDate
	}
	if req.OralPlace != nil {
		order.OralPlace = req.OralPlace
	}
	if req.OralDuration != nil {
		order.OralDuration = req.OralDuration
	}
	if req.OralScope != nil {
		order.OralScope = req.OralScope
	}
	if req.RefusalDate != nil {
		order.RefusalDate = req.RefusalDate
	}
	if req.RefusalOrgan != nil {
		order.RefusalOrgan = req.RefusalOrgan
	}
	if req.RefusalReason != nil {
		order.RefusalReason = req.RefusalReason
	}
	if req.RepertoriumNotes != nil {
		order.RepertoriumNotes = req.RepertoriumNotes
	}
}

func validOrderStatus(status string) bool {
	switch status {
	case domain.StatusToDo, domain.StatusInProgress, domain.StatusCompleted, domain.StatusCancelled:
		return true
	}
	return false
}

func validInvoiceStatus(status string) bool {
	switch status {
	case domain.InvoiceToIssue, domain.InvoiceIssued, domain.InvoiceAwaitingPayment, domain.InvoiceOverdue, domain.InvoicePaid:
		return true
	}
	return false
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toJSONMap(values map[string]string) datatypes.JSONMap {
	if len(values) == 0 {
		return nil
	}
	out := make(datatypes.JSONMap, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
