package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("setting_not_found")

type Repository interface {
	Get(ctx context.Context, db *gorm.DB, key string) (*Setting, error)
	Set(ctx context.Context, db *gorm.DB, key, value string) error
	List(ctx context.Context, db *gorm.DB) ([]Setting, error)
	Delete(ctx context.Context, db *gorm.DB, key string) error
}
