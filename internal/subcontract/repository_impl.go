package subcontract

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/lingora/internal/subcontract/domain"
	"gorm.io/gorm"
)

type repository struct{}

func NewRepository() domain.Repository {
	return &repository{}
}

func (r *repository) Insert(ctx context.Context, db *gorm.DB, sub *domain.Subcontract) error {
	return db.WithContext(ctx).Create(sub).Error
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Subcontract, error) {
	var sub domain.Subcontract
	err := db.WithContext(ctx).First(&sub, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *repository) List(ctx context.Context, db *gorm.DB) ([]domain.Subcontract, error) {
	var subs []domain.Subcontract
	if err := db.WithContext(ctx).Order("id DESC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *repository) ListByOrder(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]domain.Subcontract, error) {
	var subs []domain.Subcontract
	err := db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *repository) Update(ctx context.Context, db *gorm.DB, sub *domain.Subcontract) error {
	return db.WithContext(ctx).Save(sub).Error
}

func (r *repository) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Subcontract{}, "id = ?", id).Error
}

func (r *repository) DeleteByOrder(ctx context.Context, db *gorm.DB, orderID snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Subcontract{}, "order_id = ?", orderID).Error
}
