package settings

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/smallbiznis/lingora/internal/config"
	"github.com/smallbiznis/lingora/internal/settings/domain"
	vatdomain "github.com/smallbiznis/lingora/internal/vat/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Repo    domain.Repository
	Pricing *config.PricingConfigHolder
}

type service struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    domain.Repository
	pricing *config.PricingConfigHolder
}

func NewService(p Params) domain.Service {
	return &service{
		db:      p.DB,
		log:     p.Log.Named("settings.service"),
		repo:    p.Repo,
		pricing: p.Pricing,
	}
}

func (s *service) Get(ctx context.Context, key string) (string, error) {
	setting, err := s.repo.Get(ctx, s.db, key)
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *service) Set(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.ErrNotFound
	}
	return s.repo.Set(ctx, s.db, key, value)
}

func (s *service) All(ctx context.Context) (map[string]string, error) {
	rows, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, s.db, key)
}

func (s *service) TaxpayerCountry(ctx context.Context) string {
	value, err := s.Get(ctx, domain.KeyTaxpayerCountry)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn("failed to load taxpayer country", zap.Error(err))
		}
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(value))
}

func (s *service) DefaultCurrency(ctx context.Context) string {
	value, err := s.Get(ctx, domain.KeyDefaultCurrency)
	if err == nil && strings.TrimSpace(value) != "" {
		return strings.ToUpper(strings.TrimSpace(value))
	}
	return s.pricing.Current().DefaultCurrency
}

func (s *service) RateCurrencies(ctx context.Context) []string {
	value, err := s.Get(ctx, domain.KeyRateCurrencies)
	if err == nil && strings.TrimSpace(value) != "" {
		var currencies []string
		if jsonErr := json.Unmarshal([]byte(value), &currencies); jsonErr == nil && len(currencies) > 0 {
			return currencies
		}
		s.log.Warn("ignoring malformed rate_currencies setting", zap.String("value", value))
	}
	return s.pricing.Current().Currencies
}

func (s *service) VatCodeDefinitions(ctx context.Context) []vatdomain.CodeDefinition {
	value, err := s.Get(ctx, domain.KeyVatCodeDefinitions)
	if err != nil {
		return nil
	}
	return vatdomain.ParseCodeDefinitions(value)
}
