package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var (
	ErrNoRate       = errors.New("no_rate")
	ErrRateNotFound = errors.New("rate_not_found")
)

type Repository interface {
	// Attribute-conditioned layers.
	ListClientRates(ctx context.Context, db *gorm.DB, clientID, unitID snowflake.ID) ([]ClientDefaultUnitRate, error)
	ListGlobalRates(ctx context.Context, db *gorm.DB, unitID snowflake.ID) ([]DefaultUnitRate, error)
	InsertClientRate(ctx context.Context, db *gorm.DB, rate *ClientDefaultUnitRate) error
	InsertGlobalRate(ctx context.Context, db *gorm.DB, rate *DefaultUnitRate) error
	ListClientRatesAll(ctx context.Context, db *gorm.DB, clientID snowflake.ID) ([]ClientDefaultUnitRate, error)
	ListGlobalRatesAll(ctx context.Context, db *gorm.DB) ([]DefaultUnitRate, error)
	DeleteClientRate(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	DeleteGlobalRate(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	// Simple (client, unit, currency) overrides.
	ListSimpleRates(ctx context.Context, db *gorm.DB, clientID, unitID snowflake.ID) ([]ClientUnitRate, error)
	ListSimpleRatesByClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID) ([]ClientUnitRate, error)
	UpsertSimpleRate(ctx context.Context, db *gorm.DB, rate *ClientUnitRate) error
	DeleteSimpleRate(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
