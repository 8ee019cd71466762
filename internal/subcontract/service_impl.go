package subcontract

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/lingora/internal/config"
	orderdomain "github.com/smallbiznis/lingora/internal/order/domain"
	seqdomain "github.com/smallbiznis/lingora/internal/sequence/domain"
	settingsdomain "github.com/smallbiznis/lingora/internal/settings/domain"
	"github.com/smallbiznis/lingora/internal/subcontract/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Node      *snowflake.Node
	Repo      domain.Repository
	OrderRepo orderdomain.Repository
	Sequence  seqdomain.Service
	Settings  settingsdomain.Service
	Pricing   *config.PricingConfigHolder
}

type service struct {
	db        *gorm.DB
	log       *zap.Logger
	node      *snowflake.Node
	repo      domain.Repository
	orderRepo orderdomain.Repository
	sequence  seqdomain.Service
	settings  settingsdomain.Service
	pricing   *config.PricingConfigHolder
}

func NewService(p Params) domain.Service {
	return &service{
		db:        p.DB,
		log:       p.Log.Named("subcontract.service"),
		node:      p.Node,
		repo:      p.Repo,
		orderRepo: p.OrderRepo,
		sequence:  p.Sequence,
		settings:  p.Settings,
		pricing:   p.Pricing,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Subcontract, error) {
	order, err := s.orderRepo.FindByID(ctx, s.db, req.OrderID)
	if err != nil {
		return nil, err
	}

	sub := domain.Subcontract{
		ID:                    s.node.Generate(),
		OrderID:               order.ID,
		ContractorID:          req.ContractorID,
		Name:                  req.Name,
		Notes:                 req.Notes,
		IncludeSpecialization: boolOr(req.IncludeSpecialization, true),
		IncludeLanguagePair:   boolOr(req.IncludeLanguagePair, true),
		IncludeService:        boolOr(req.IncludeService, false),
		DescriptionCustomText: req.DescriptionCustomText,
		Quantity:              req.Quantity,
		RatePerUnit:           req.RatePerUnit,
		Amount:                req.Amount,
		ReceivedAt:            req.ReceivedAt,
		DeadlineAt:            req.DeadlineAt,
	}
	if sub.Quantity == nil {
		sub.Quantity = order.Quantity
	}
	if sub.RatePerUnit == nil {
		sub.RatePerUnit = order.RatePerUnit
	}
	if sub.Amount == nil {
		sub.Amount = order.Amount
	}
	if sub.ReceivedAt == nil {
		sub.ReceivedAt = order.ReceivedAt
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := s.sequence.NextInTx(ctx, tx, seqdomain.KindSubcontract, seqdomain.ScopeGlobal, s.template(ctx))
		if err != nil {
			return err
		}
		sub.SubcontractNumber = number
		return s.repo.Insert(ctx, tx, &sub)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("subcontract created",
		zap.Stringer("subcontract_id", sub.ID),
		zap.Stringer("order_id", sub.OrderID),
		zap.String("subcontract_number", sub.SubcontractNumber),
	)
	return &sub, nil
}

func (s *service) Get(ctx context.Context, id snowflake.ID) (*domain.Subcontract, error) {
	sub, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyOrderFallback(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *service) List(ctx context.Context) ([]domain.Subcontract, error) {
	subs, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	for i := range subs {
		if err := s.applyOrderFallback(ctx, &subs[i]); err != nil {
			return nil, err
		}
	}
	return subs, nil
}

func (s *service) ListByOrder(ctx context.Context, orderID snowflake.ID) ([]domain.Subcontract, error) {
	subs, err := s.repo.ListByOrder(ctx, s.db, orderID)
	if err != nil {
		return nil, err
	}
	for i := range subs {
		if err := s.applyOrderFallback(ctx, &subs[i]); err != nil {
			return nil, err
		}
	}
	return subs, nil
}

func (s *service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateRequest) (*domain.Subcontract, error) {
	sub, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if req.ContractorID != nil {
		sub.ContractorID = req.ContractorID
	}
	if req.Name != nil {
		sub.Name = req.Name
	}
	if req.Notes != nil {
		sub.Notes = req.Notes
	}
	if req.IncludeSpecialization != nil {
		sub.IncludeSpecialization = *req.IncludeSpecialization
	}
	if req.IncludeLanguagePair != nil {
		sub.IncludeLanguagePair = *req.IncludeLanguagePair
	}
	if req.IncludeService != nil {
		sub.IncludeService = *req.IncludeService
	}
	if req.DescriptionCustomText != nil {
		sub.DescriptionCustomText = req.DescriptionCustomText
	}
	if req.Quantity != nil {
		sub.Quantity = req.Quantity
	}
	if req.RatePerUnit != nil {
		sub.RatePerUnit = req.RatePerUnit
	}
	if req.Amount != nil {
		sub.Amount = req.Amount
	}
	if req.DeadlineAt != nil {
		sub.DeadlineAt = req.DeadlineAt
	}
	if err := s.repo.Update(ctx, s.db, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *service) Delete(ctx context.Context, id snowflake.ID) error {
	return s.repo.Delete(ctx, s.db, id)
}

func (s *service) PeekNumber(ctx context.Context) (string, error) {
	return s.sequence.Peek(ctx, seqdomain.KindSubcontract, seqdomain.ScopeGlobal, s.template(ctx))
}

// applyOrderFallback fills nulls left by pre-copy-era rows with the order's
// current values.
func (s *service) applyOrderFallback(ctx context.Context, sub *domain.Subcontract) error {
	if sub.Quantity != nil && sub.RatePerUnit != nil && sub.Amount != nil && sub.ReceivedAt != nil {
		return nil
	}
	order, err := s.orderRepo.FindByID(ctx, s.db, sub.OrderID)
	if err != nil {
		if errors.Is(err, orderdomain.ErrNotFound) {
			return nil
		}
		return err
	}
	if sub.Quantity == nil {
		sub.Quantity = order.Quantity
	}
	if sub.RatePerUnit == nil {
		sub.RatePerUnit = order.RatePerUnit
	}
	if sub.Amount == nil {
		sub.Amount = order.Amount
	}
	if sub.ReceivedAt == nil {
		sub.ReceivedAt = order.ReceivedAt
	}
	return nil
}

func (s *service) template(ctx context.Context) string {
	if value, err := s.settings.Get(ctx, settingsdomain.KeySubcontractNumberFormat); err == nil && strings.TrimSpace(value) != "" {
		return value
	}
	return s.pricing.Current().SubcontractNumberFormat
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
