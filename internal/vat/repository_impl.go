package vat

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/lingora/internal/vat/domain"
	"gorm.io/gorm"
)

type repository struct{}

func NewRepository() domain.Repository {
	return &repository{}
}

func (r *repository) Insert(ctx context.Context, db *gorm.DB, rule *domain.Rule) error {
	return db.WithContext(ctx).Create(rule).Error
}

func (r *repository) Update(ctx context.Context, db *gorm.DB, rule *domain.Rule) error {
	return db.WithContext(ctx).Save(rule).Error
}

func (r *repository) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Rule{}, "id = ?", id).Error
}

func (r *repository) ListByService(ctx context.Context, db *gorm.DB, serviceID snowflake.ID) ([]domain.Rule, error) {
	var rules []domain.Rule
	err := db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Order("client_segment, country_code").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *repository) FindByKey(ctx context.Context, db *gorm.DB, serviceID snowflake.ID, segment domain.Segment, countryCode *string) (*domain.Rule, error) {
	q := db.WithContext(ctx).
		Where("service_id = ? AND client_segment = ?", serviceID, segment)
	cc := domain.NormalizeCountry(countryCode)
	if cc == "" {
		q = q.Where("country_code IS NULL OR country_code = ''")
	} else {
		q = q.Where("UPPER(country_code) = ?", cc)
	}
	var rule domain.Rule
	if err := q.First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRuleNotFound
		}
		return nil, err
	}
	return &rule, nil
}
