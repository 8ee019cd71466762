package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, rule *Rule) error
	Update(ctx context.Context, db *gorm.DB, rule *Rule) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	ListByService(ctx context.Context, db *gorm.DB, serviceID snowflake.ID) ([]Rule, error)
	// FindByKey matches on the (service, segment, country) identity, where a
	// nil country matches only the segment-wide row.
	FindByKey(ctx context.Context, db *gorm.DB, serviceID snowflake.ID, segment Segment, countryCode *string) (*Rule, error)
}
