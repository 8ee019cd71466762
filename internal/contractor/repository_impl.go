package contractor

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/lingora/internal/contractor/domain"
	"gorm.io/gorm"
)

type repository struct{}

func NewRepository() domain.Repository {
	return &repository{}
}

func (r *repository) Insert(ctx context.Context, db *gorm.DB, contractor *domain.Contractor) error {
	return db.WithContext(ctx).Create(contractor).Error
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Contractor, error) {
	var contractor domain.Contractor
	err := db.WithContext(ctx).First(&contractor, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &contractor, nil
}

func (r *repository) List(ctx context.Context, db *gorm.DB) ([]domain.Contractor, error) {
	var contractors []domain.Contractor
	if err := db.WithContext(ctx).Order("short_name").Find(&contractors).Error; err != nil {
		return nil, err
	}
	return contractors, nil
}

func (r *repository) Update(ctx context.Context, db *gorm.DB, contractor *domain.Contractor) error {
	return db.WithContext(ctx).Save(contractor).Error
}

func (r *repository) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Contractor{}, "id = ?", id).Error
}

func (r *repository) UpsertRate(ctx context.Context, db *gorm.DB, rate *domain.ContractorUnitRate) error {
	stmt := db.WithContext(ctx).
		Where("contractor_id = ? AND unit_id = ?", rate.ContractorID, rate.UnitID)
	if rate.LanguagePair == nil {
		stmt = stmt.Where("language_pair IS NULL")
	} else {
		stmt = stmt.Where("language_pair = ?", *rate.LanguagePair)
	}
	if err := stmt.Delete(&domain.ContractorUnitRate{}).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Create(rate).Error
}

func (r *repository) ListRates(ctx context.Context, db *gorm.DB, contractorID snowflake.ID) ([]domain.ContractorUnitRate, error) {
	var rates []domain.ContractorUnitRate
	err := db.WithContext(ctx).
		Where("contractor_id = ?", contractorID).
		Order("unit_id, language_pair").
		Find(&rates).Error
	if err != nil {
		return nil, err
	}
	return rates, nil
}

func (r *repository) FindRate(ctx context.Context, db *gorm.DB, contractorID, unitID snowflake.ID, languagePair *string) (*domain.ContractorUnitRate, error) {
	if languagePair != nil && *languagePair != "" {
		var exact domain.ContractorUnitRate
		err := db.WithContext(ctx).
			Where("contractor_id = ? AND unit_id = ? AND language_pair = ?", contractorID, unitID, *languagePair).
			First(&exact).Error
		if err == nil {
			return &exact, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var fallback domain.ContractorUnitRate
	err := db.WithContext(ctx).
		Where("contractor_id = ? AND unit_id = ? AND language_pair IS NULL", contractorID, unitID).
		First(&fallback).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &fallback, nil
}
