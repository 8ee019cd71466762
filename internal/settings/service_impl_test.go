package settings

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/lingora/internal/config"
	"github.com/smallbiznis/lingora/internal/settings/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupSettingsService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Setting{}))

	return NewService(Params{
		DB:      db,
		Log:     zap.NewNop(),
		Repo:    NewRepository(),
		Pricing: config.NewStaticPricingConfigHolder(config.DefaultPricingConfig()),
	})
}

func TestSetOverwritesExistingKey(t *testing.T) {
	svc := setupSettingsService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "order_number_format", "Z/{YYYY}/{NR}"))
	require.NoError(t, svc.Set(ctx, "order_number_format", "Z/{YY}/{nr}"))

	value, err := svc.Get(ctx, "order_number_format")
	require.NoError(t, err)
	assert.Equal(t, "Z/{YY}/{nr}", value)

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetMissingKey(t *testing.T) {
	svc := setupSettingsService(t)

	_, err := svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDefaultCurrencyFallsBackToPricingConfig(t *testing.T) {
	svc := setupSettingsService(t)
	ctx := context.Background()

	assert.Equal(t, "PLN", svc.DefaultCurrency(ctx))

	require.NoError(t, svc.Set(ctx, domain.KeyDefaultCurrency, "eur"))
	assert.Equal(t, "EUR", svc.DefaultCurrency(ctx))
}

func TestRateCurrencies(t *testing.T) {
	svc := setupSettingsService(t)
	ctx := context.Background()

	assert.Equal(t, []string{"PLN", "EUR", "USD", "GBP"}, svc.RateCurrencies(ctx))

	require.NoError(t, svc.Set(ctx, domain.KeyRateCurrencies, `["PLN","CHF"]`))
	assert.Equal(t, []string{"PLN", "CHF"}, svc.RateCurrencies(ctx))

	require.NoError(t, svc.Set(ctx, domain.KeyRateCurrencies, "not-json"))
	assert.Equal(t, []string{"PLN", "EUR", "USD", "GBP"}, svc.RateCurrencies(ctx))
}

func TestTaxpayerCountryNormalized(t *testing.T) {
	svc := setupSettingsService(t)
	ctx := context.Background()

	assert.Equal(t, "", svc.TaxpayerCountry(ctx))

	require.NoError(t, svc.Set(ctx, domain.KeyTaxpayerCountry, " pl "))
	assert.Equal(t, "PL", svc.TaxpayerCountry(ctx))
}

func TestVatCodeDefinitions(t *testing.T) {
	svc := setupSettingsService(t)
	ctx := context.Background()

	assert.Empty(t, svc.VatCodeDefinitions(ctx))

	raw := `[{"code_pl":"NP","label_pl":"nie podlega","code_en":"O","label_en":"not applicable"}]`
	require.NoError(t, svc.Set(ctx, domain.KeyVatCodeDefinitions, raw))

	defs := svc.VatCodeDefinitions(ctx)
	require.Len(t, defs, 1)
	assert.Equal(t, "NP", defs[0].Canonical())
}
