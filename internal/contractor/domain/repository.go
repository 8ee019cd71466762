package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("contractor_not_found")

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, contractor *Contractor) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Contractor, error)
	List(ctx context.Context, db *gorm.DB) ([]Contractor, error)
	Update(ctx context.Context, db *gorm.DB, contractor *Contractor) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	UpsertRate(ctx context.Context, db *gorm.DB, rate *ContractorUnitRate) error
	ListRates(ctx context.Context, db *gorm.DB, contractorID snowflake.ID) ([]ContractorUnitRate, error)
	// FindRate prefers an exact language-pair row and falls back to the
	// pair-less row for the same contractor and unit.
	FindRate(ctx context.Context, db *gorm.DB, contractorID, unitID snowflake.ID, languagePair *string) (*ContractorUnitRate, error)
}
