package pricing

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/lingora/internal/pricing/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct{}

func NewRepository() domain.Repository {
	return &repository{}
}

func (r *repository) ListClientRates(ctx context.Context, db *gorm.DB, clientID, unitID snowflake.ID) ([]domain.ClientDefaultUnitRate, error) {
	var rates []domain.ClientDefaultUnitRate
	err := db.WithContext(ctx).
		Where("client_id = ? AND unit_id = ?", clientID, unitID).
		Order("id").
		Find(&rates).Error
	if err != nil {
		return nil, err
	}
	return rates, nil
}

func (r *repository) ListGlobalRates(ctx context.Context, db *gorm.DB, unitID snowflake.ID) ([]domain.DefaultUnitRate, error) {
	var rates []domain.DefaultUnitRate
	err := db.WithContext(ctx).
		Where("unit_id = ?", unitID).
		Order("id").
		Find(&rates).Error
	if err != nil {
		return nil, err
	}
	return rates, nil
}

func (r *repository) InsertClientRate(ctx context.Context, db *gorm.DB, rate *domain.ClientDefaultUnitRate) error {
	return db.WithContext(ctx).Create(rate).Error
}

func (r *repository) InsertGlobalRate(ctx context.Context, db *gorm.DB, rate *domain.DefaultUnitRate) error {
	return db.WithContext(ctx).Create(rate).Error
}

func (r *repository) ListClientRatesAll(ctx context.Context, db *gorm.DB, clientID snowflake.ID) ([]domain.ClientDefaultUnitRate, error) {
	var rates []domain.ClientDefaultUnitRate
	err := db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("id").
		Find(&rates).Error
	if err != nil {
		return nil, err
	}
	return rates, nil
}

func (r *repository) ListGlobalRatesAll(ctx context.Context, db *gorm.DB) ([]domain.DefaultUnitRate, error) {
	var rates []domain.DefaultUnitRate
	if err := db.WithContext(ctx).Order("id").Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}

func (r *repository) DeleteClientRate(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.ClientDefaultUnitRate{}, "id = ?", id).Error
}

func (r *repository) DeleteGlobalRate(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.DefaultUnitRate{}, "id = ?", id).Error
}

func (r *repository) ListSimpleRates(ctx context.Context, db *gorm.DB, clientID, unitID snowflake.ID) ([]domain.ClientUnitRate, error) {
	var rates []domain.ClientUnitRate
	err := db.WithContext(ctx).
		Where("client_id = ? AND unit_id = ?", clientID, unitID).
		Order("id").
		Find(&rates).Error
	if err != nil {
		return nil, err
	}
	return rates, nil
}

func (r *repository) ListSimpleRatesByClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID) ([]domain.ClientUnitRate, error) {
	var rates []domain.ClientUnitRate
	err := db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("id").
		Find(&rates).Error
	if err != nil {
		return nil, err
	}
	return rates, nil
}

func (r *repository) UpsertSimpleRate(ctx context.Context, db *gorm.DB, rate *domain.ClientUnitRate) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_id"}, {Name: "unit_id"}, {Name: "currency"}},
		DoUpdates: clause.AssignmentColumns([]string{"rate", "updated_at"}),
	}).Create(rate).Error
}

func (r *repository) DeleteSimpleRate(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.ClientUnitRate{}, "id = ?", id).Error
}
