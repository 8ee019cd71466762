package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Service is a billable service type (certified translation, interpreting,
// proofreading). VatRate is the flat fallback applied only when no VAT rule
// row matches the client's segment.
type Service struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"type:text;not null;uniqueIndex"`
	VatRate   float64      `json:"vat_rate" gorm:"not null;default:23"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Service) TableName() string { return "services" }
