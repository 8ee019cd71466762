package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Contractor struct {
	ID            snowflake.ID `json:"id" gorm:"primaryKey"`
	Name          string       `json:"name" gorm:"type:text;not null"`
	ShortName     string       `json:"short_name" gorm:"type:text;not null"`
	Email         *string      `json:"email,omitempty" gorm:"type:text"`
	Phone         *string      `json:"phone,omitempty" gorm:"type:text"`
	ContactPerson *string      `json:"contact_person,omitempty" gorm:"type:text"`
	Notes         *string      `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt     time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Contractor) TableName() string { return "contractors" }

// ContractorUnitRate is the subcontract cost lookup: one rate per
// (contractor, unit, language pair), with a pair-less row as fallback.
type ContractorUnitRate struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey"`
	ContractorID snowflake.ID `json:"contractor_id" gorm:"not null;index"`
	UnitID       snowflake.ID `json:"unit_id" gorm:"not null;index"`
	LanguagePair *string      `json:"language_pair,omitempty" gorm:"type:text"`
	Rate         float64      `json:"rate" gorm:"not null"`
	CreatedAt    time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (ContractorUnitRate) TableName() string { return "contractor_unit_rates" }
