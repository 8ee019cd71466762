package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("service_not_found")

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, service *Service) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Service, error)
	List(ctx context.Context, db *gorm.DB) ([]Service, error)
	Update(ctx context.Context, db *gorm.DB, service *Service) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
