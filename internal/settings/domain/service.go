package domain

import (
	"context"

	vatdomain "github.com/smallbiznis/lingora/internal/vat/domain"
)

type Service interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
	Delete(ctx context.Context, key string) error

	// TaxpayerCountry returns the configured seat-of-business country code,
	// empty when unset.
	TaxpayerCountry(ctx context.Context) string

	// DefaultCurrency falls back to the pricing config default when the
	// setting is absent.
	DefaultCurrency(ctx context.Context) string

	// RateCurrencies returns the currencies offered for rate rows, in
	// configured order.
	RateCurrencies(ctx context.Context) []string

	VatCodeDefinitions(ctx context.Context) []vatdomain.CodeDefinition
}
