package orderbook

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/lingora/internal/orderbook/domain"
	"gorm.io/gorm"
)

type repository struct{}

func NewRepository() domain.Repository {
	return &repository{}
}

func (r *repository) Insert(ctx context.Context, db *gorm.DB, book *domain.OrderBook) error {
	return db.WithContext(ctx).Create(book).Error
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.OrderBook, error) {
	var book domain.OrderBook
	err := db.WithContext(ctx).First(&book, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (r *repository) FindByShareToken(ctx context.Context, db *gorm.DB, token string) (*domain.OrderBook, error) {
	var book domain.OrderBook
	err := db.WithContext(ctx).First(&book, "share_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (r *repository) List(ctx context.Context, db *gorm.DB) ([]domain.OrderBook, error) {
	var books []domain.OrderBook
	if err := db.WithContext(ctx).Order("name").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *repository) Update(ctx context.Context, db *gorm.DB, book *domain.OrderBook) error {
	return db.WithContext(ctx).Save(book).Error
}

func (r *repository) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.OrderBook{}, "id = ?", id).Error
}
