package sequence

import (
	"context"
	"errors"

	"github.com/smallbiznis/lingora/internal/clock"
	"github.com/smallbiznis/lingora/internal/observability/metrics"
	"github.com/smallbiznis/lingora/internal/sequence/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Repo    domain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	repo    domain.Repository
	metrics *metrics.Metrics
}

func NewService(p Params) domain.Service {
	return &service{
		db:      p.DB,
		log:     p.Log.Named("sequence.service"),
		clock:   p.Clock,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *service) NextInTx(ctx context.Context, tx *gorm.DB, kind, scope, template string) (string, error) {
	n, err := s.next(ctx, tx, kind, scope)
	if err != nil {
		return "", err
	}
	s.metrics.RecordNumberAllocated(ctx, kind)
	return domain.Render(template, s.clock.Now(), n), nil
}

func (s *service) Peek(ctx context.Context, kind, scope, template string) (string, error) {
	max, err := s.repo.MaxExisting(ctx, s.db, kind, scope)
	if err != nil {
		return "", err
	}
	return domain.Render(template, s.clock.Now(), max+1), nil
}

// next increments the scope counter, seeding it from the legacy record scan
// the first time the scope allocates. The seed-then-retry loop covers a
// concurrent first allocation creating the row between the two steps.
func (s *service) next(ctx context.Context, tx *gorm.DB, kind, scope string) (int64, error) {
	for attempt := 0; attempt < 2; attempt++ {
		n, err := s.repo.Increment(ctx, tx, kind, scope)
		if err == nil {
			return n, nil
		}
		if !errors.Is(err, domain.ErrCounterMissing) {
			return 0, err
		}
		max, err := s.repo.MaxExisting(ctx, tx, kind, scope)
		if err != nil {
			return 0, err
		}
		if err := s.repo.Seed(ctx, tx, kind, scope, max); err != nil {
			return 0, err
		}
		s.log.Info("sequence counter seeded",
			zap.String("kind", kind),
			zap.String("scope", scope),
			zap.Int64("value", max),
		)
	}
	return 0, domain.ErrCounterMissing
}
