package vat

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/lingora/internal/catalog/domain"
	clientdomain "github.com/smallbiznis/lingora/internal/client/domain"
	settingsdomain "github.com/smallbiznis/lingora/internal/settings/domain"
	"github.com/smallbiznis/lingora/internal/vat/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Node        *snowflake.Node
	Repo        domain.Repository
	ClientRepo  clientdomain.Repository
	CatalogRepo catalogdomain.Repository
	Settings    settingsdomain.Service
}

type service struct {
	db          *gorm.DB
	log         *zap.Logger
	node        *snowflake.Node
	repo        domain.Repository
	clientRepo  clientdomain.Repository
	catalogRepo catalogdomain.Repository
	settings    settingsdomain.Service
}

func NewService(p Params) domain.Service {
	return &service{
		db:          p.DB,
		log:         p.Log.Named("vat.service"),
		node:        p.Node,
		repo:        p.Repo,
		clientRepo:  p.ClientRepo,
		catalogRepo: p.CatalogRepo,
		settings:    p.Settings,
	}
}

func (s *service) ListByService(ctx context.Context, serviceID snowflake.ID) ([]domain.Rule, error) {
	return s.repo.ListByService(ctx, s.db, serviceID)
}

func (s *service) Upsert(ctx context.Context, req domain.UpsertRequest) (*domain.Rule, error) {
	if _, err := s.catalogRepo.FindByID(ctx, s.db, req.ServiceID); err != nil {
		if errors.Is(err, catalogdomain.ErrNotFound) {
			return nil, domain.ErrInvalidService
		}
		return nil, err
	}
	if !validSegment(req.Segment) {
		return nil, domain.ErrInvalidSegment
	}

	rule := domain.Rule{
		ServiceID:     req.ServiceID,
		ClientSegment: req.Segment,
	}
	if cc := domain.NormalizeCountry(req.CountryCode); cc != "" {
		rule.CountryCode = &cc
	}
	switch req.ValueType {
	case domain.ValueTypeRate:
		if req.RateValue == nil || *req.RateValue < 0 {
			return nil, domain.ErrInvalidValue
		}
		rule.ValueType = domain.ValueTypeRate
		rule.RateValue = req.RateValue
	case domain.ValueTypeCode:
		if req.CodeValue == nil {
			return nil, domain.ErrInvalidValue
		}
		code := domain.NormalizeCode(*req.CodeValue)
		if code == "" {
			return nil, domain.ErrInvalidValue
		}
		rule.ValueType = domain.ValueTypeCode
		rule.CodeValue = &code
	default:
		return nil, domain.ErrInvalidValue
	}

	// One rule per (service, segment, country): replace in place when the
	// identity already exists.
	existing, err := s.repo.FindByKey(ctx, s.db, req.ServiceID, req.Segment, rule.CountryCode)
	if err != nil && !errors.Is(err, domain.ErrRuleNotFound) {
		return nil, err
	}
	if existing != nil {
		existing.ValueType = rule.ValueType
		existing.RateValue = rule.RateValue
		existing.CodeValue = rule.CodeValue
		if err := s.repo.Update(ctx, s.db, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	rule.ID = s.node.Generate()
	if err := s.repo.Insert(ctx, s.db, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

func (s *service) Delete(ctx context.Context, id snowflake.ID) error {
	return s.repo.Delete(ctx, s.db, id)
}

func (s *service) Classify(ctx context.Context, clientID snowflake.ID) (domain.Segment, error) {
	client, err := s.clientRepo.FindByID(ctx, s.db, clientID)
	if err != nil {
		return "", err
	}
	return domain.Classify(*client, s.settings.TaxpayerCountry(ctx)), nil
}

func (s *service) Effective(ctx context.Context, clientID, serviceID snowflake.ID) (domain.Outcome, error) {
	client, err := s.clientRepo.FindByID(ctx, s.db, clientID)
	if err != nil {
		return domain.Outcome{}, err
	}
	svc, err := s.catalogRepo.FindByID(ctx, s.db, serviceID)
	if err != nil {
		return domain.Outcome{}, err
	}
	rules, err := s.repo.ListByService(ctx, s.db, serviceID)
	if err != nil {
		return domain.Outcome{}, err
	}

	segment := domain.Classify(*client, s.settings.TaxpayerCountry(ctx))
	if rule := domain.ResolveRule(rules, segment, client.CountryCode); rule != nil {
		return rule.Outcome(), nil
	}
	s.log.Debug("no vat rule matched, using flat service rate",
		zap.String("segment", string(segment)),
		zap.Stringer("service_id", serviceID),
	)
	return domain.RateOutcome(svc.VatRate), nil
}

func (s *service) CodeDefinitions(ctx context.Context) ([]domain.CodeDefinition, error) {
	return s.settings.VatCodeDefinitions(ctx), nil
}

func validSegment(segment domain.Segment) bool {
	seg := domain.Segment(strings.TrimSpace(string(segment)))
	for _, known := range domain.Segments {
		if seg == known {
			return true
		}
	}
	return false
}
