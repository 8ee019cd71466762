package pricing

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	contractordomain "github.com/smallbiznis/lingora/internal/contractor/domain"
	"github.com/smallbiznis/lingora/internal/observability/metrics"
	"github.com/smallbiznis/lingora/internal/pricing/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB             *gorm.DB
	Log            *zap.Logger
	Node           *snowflake.Node
	Repo           domain.Repository
	ContractorRepo contractordomain.Repository
	Metrics        *metrics.Metrics `optional:"true"`
}

type service struct {
	db             *gorm.DB
	log            *zap.Logger
	node           *snowflake.Node
	repo           domain.Repository
	contractorRepo contractordomain.Repository
	metrics        *metrics.Metrics
}

func NewService(p Params) domain.Service {
	return &service{
		db:             p.DB,
		log:            p.Log.Named("pricing.service"),
		node:           p.Node,
		repo:           p.Repo,
		contractorRepo: p.ContractorRepo,
		metrics:        p.Metrics,
	}
}

func (s *service) Resolve(ctx context.Context, req domain.ResolveRequest) (*domain.ResolvedRate, error) {
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))

	if req.ClientID != nil {
		rows, err := s.repo.ListClientRates(ctx, s.db, *req.ClientID, req.UnitID)
		if err != nil {
			return nil, err
		}
		if match := domain.ResolveLayer(clientRateViews(rows), req.Candidates, currency); match != nil {
			s.metrics.RecordRateLookup(ctx, "client")
			return &domain.ResolvedRate{Rate: match.Rate, Currency: match.Currency}, nil
		}
	}

	rows, err := s.repo.ListGlobalRates(ctx, s.db, req.UnitID)
	if err != nil {
		return nil, err
	}
	if match := domain.ResolveLayer(globalRateViews(rows), req.Candidates, currency); match != nil {
		s.metrics.RecordRateLookup(ctx, "global")
		return &domain.ResolvedRate{Rate: match.Rate, Currency: match.Currency}, nil
	}

	s.metrics.RecordRateMiss(ctx)
	s.log.Debug("rate resolution missed",
		zap.Stringer("unit_id", req.UnitID),
		zap.String("currency", currency),
		zap.Int("candidates", len(req.Candidates)),
	)
	return nil, domain.ErrNoRate
}

func (s *service) LookupClientUnitRate(ctx context.Context, clientID, unitID snowflake.ID, preferredCurrency string) (*domain.ResolvedRate, error) {
	rows, err := s.repo.ListSimpleRates(ctx, s.db, clientID, unitID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if preferredCurrency != "" {
		for _, row := range rows {
			if strings.EqualFold(row.Currency, preferredCurrency) {
				return &domain.ResolvedRate{Rate: row.Rate, Currency: row.Currency}, nil
			}
		}
	}
	return &domain.ResolvedRate{Rate: rows[0].Rate, Currency: rows[0].Currency}, nil
}

func (s *service) LookupContractorRate(ctx context.Context, contractorID, unitID snowflake.ID, languagePair *string) (*float64, error) {
	rate, err := s.contractorRepo.FindRate(ctx, s.db, contractorID, unitID, languagePair)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, nil
	}
	return &rate.Rate, nil
}

func (s *service) CreateClientRate(ctx context.Context, input domain.ClientRateInput) (*domain.ClientDefaultUnitRate, error) {
	row := domain.ClientDefaultUnitRate{
		ID:       s.node.Generate(),
		ClientID: input.ClientID,
		UnitID:   input.UnitID,
		Rate:     input.Rate,
		Currency: strings.ToUpper(strings.TrimSpace(input.Currency)),
	}
	row.SetSlots(input.Slots)
	if err := s.repo.InsertClientRate(ctx, s.db, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *service) CreateGlobalRate(ctx context.Context, input domain.GlobalRateInput) (*domain.DefaultUnitRate, error) {
	row := domain.DefaultUnitRate{
		ID:       s.node.Generate(),
		UnitID:   input.UnitID,
		Rate:     input.Rate,
		Currency: strings.ToUpper(strings.TrimSpace(input.Currency)),
	}
	row.SetSlots(input.Slots)
	if err := s.repo.InsertGlobalRate(ctx, s.db, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *service) SetSimpleRate(ctx context.Context, input domain.SimpleRateInput) (*domain.ClientUnitRate, error) {
	row := domain.ClientUnitRate{
		ID:       s.node.Generate(),
		ClientID: input.ClientID,
		UnitID:   input.UnitID,
		Rate:     input.Rate,
		Currency: strings.ToUpper(strings.TrimSpace(input.Currency)),
	}
	if err := s.repo.UpsertSimpleRate(ctx, s.db, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *service) ListClientRates(ctx context.Context, clientID snowflake.ID) ([]domain.ClientDefaultUnitRate, error) {
	return s.repo.ListClientRatesAll(ctx, s.db, clientID)
}

func (s *service) ListGlobalRates(ctx context.Context) ([]domain.DefaultUnitRate, error) {
	return s.repo.ListGlobalRatesAll(ctx, s.db)
}

func (s *service) ListSimpleRates(ctx context.Context, clientID snowflake.ID) ([]domain.ClientUnitRate, error) {
	return s.repo.ListSimpleRatesByClient(ctx, s.db, clientID)
}

func (s *service) DeleteClientRate(ctx context.Context, id snowflake.ID) error {
	return s.repo.DeleteClientRate(ctx, s.db, id)
}

func (s *service) DeleteGlobalRate(ctx context.Context, id snowflake.ID) error {
	return s.repo.DeleteGlobalRate(ctx, s.db, id)
}

func (s *service) DeleteSimpleRate(ctx context.Context, id snowflake.ID) error {
	return s.repo.DeleteSimpleRate(ctx, s.db, id)
}

func clientRateViews(rows []domain.ClientDefaultUnitRate) []domain.RateRowView {
	views := make([]domain.RateRowView, 0, len(rows))
	for _, row := range rows {
		views = append(views, domain.RateRowView{Slots: row.Slots(), Rate: row.Rate, Currency: row.Currency})
	}
	return views
}

func globalRateViews(rows []domain.DefaultUnitRate) []domain.RateRowView {
	views := make([]domain.RateRowView, 0, len(rows))
	for _, row := range rows {
		views = append(views, domain.RateRowView{Slots: row.Slots(), Rate: row.Rate, Currency: row.Currency})
	}
	return views
}
