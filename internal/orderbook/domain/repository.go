package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("order_book_not_found")
	ErrInvalidViewType = errors.New("invalid_view_type")
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, book *OrderBook) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*OrderBook, error)
	FindByShareToken(ctx context.Context, db *gorm.DB, token string) (*OrderBook, error)
	List(ctx context.Context, db *gorm.DB) ([]OrderBook, error)
	Update(ctx context.Context, db *gorm.DB, book *OrderBook) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
