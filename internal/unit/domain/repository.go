package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("unit_not_found")

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, unit *Unit) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Unit, error)
	List(ctx context.Context, db *gorm.DB) ([]Unit, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
