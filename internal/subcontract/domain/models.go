package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Subcontract delegates (part of) an order to a contractor. Quantity, rate
// and amount copy from the order at creation when not supplied; rows from
// older databases may still hold nulls, which read as the order's values.
type Subcontract struct {
	ID                    snowflake.ID  `json:"id" gorm:"primaryKey"`
	OrderID               snowflake.ID  `json:"order_id" gorm:"not null;index:idx_subcontracts_order"`
	ContractorID          *snowflake.ID `json:"contractor_id,omitempty"`
	SubcontractNumber     string        `json:"subcontract_number" gorm:"type:text;not null"`
	Name                  *string       `json:"name,omitempty" gorm:"type:text"`
	Notes                 *string       `json:"notes,omitempty" gorm:"type:text"`
	IncludeSpecialization bool          `json:"include_specialization" gorm:"not null"`
	IncludeLanguagePair   bool          `json:"include_language_pair" gorm:"not null"`
	IncludeService        bool          `json:"include_service" gorm:"not null"`
	DescriptionCustomText *string       `json:"description_custom_text,omitempty" gorm:"type:text"`
	Quantity              *float64      `json:"quantity,omitempty"`
	RatePerUnit           *float64      `json:"rate_per_unit,omitempty"`
	Amount                *float64      `json:"amount,omitempty"`
	ReceivedAt            *time.Time    `json:"received_at,omitempty"`
	DeadlineAt            *time.Time    `json:"deadline_at,omitempty"`
	CreatedAt             time.Time     `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt             time.Time     `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Subcontract) TableName() string { return "subcontracts" }
