package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("subcontract_not_found")

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, sub *Subcontract) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Subcontract, error)
	List(ctx context.Context, db *gorm.DB) ([]Subcontract, error)
	ListByOrder(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]Subcontract, error)
	Update(ctx context.Context, db *gorm.DB, sub *Subcontract) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	DeleteByOrder(ctx context.Context, db *gorm.DB, orderID snowflake.ID) error
}
