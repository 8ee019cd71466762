package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Kind distinguishes corporate clients from natural persons for VAT treatment.
const (
	KindCompany = "company"
	KindPerson  = "person"
)

type Client struct {
	ID                 snowflake.ID `json:"id" gorm:"primaryKey"`
	Name               string       `json:"name" gorm:"type:text;not null"`
	ShortName          string       `json:"short_name" gorm:"type:text;not null"`
	Street             *string      `json:"street,omitempty" gorm:"type:text"`
	PostalCode         *string      `json:"postal_code,omitempty" gorm:"type:text"`
	City               *string      `json:"city,omitempty" gorm:"type:text"`
	CountryCode        *string      `json:"country_code,omitempty" gorm:"type:text"`
	TaxID              *string      `json:"tax_id,omitempty" gorm:"column:tax_id;type:text"`
	Email              *string      `json:"email,omitempty" gorm:"type:text"`
	Phone              *string      `json:"phone,omitempty" gorm:"type:text"`
	ContactPerson      *string      `json:"contact_person,omitempty" gorm:"type:text"`
	Notes              *string      `json:"notes,omitempty" gorm:"type:text"`
	Kind               string       `json:"client_kind" gorm:"column:client_kind;type:text;not null;default:company"`
	VatEU              int          `json:"vat_eu" gorm:"column:vat_eu;not null;default:0"`
	DefaultPaymentDays int          `json:"default_payment_days" gorm:"not null;default:14"`
	CreatedAt          time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt          time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Client) TableName() string { return "clients" }

// IsCompany reports whether VAT-wise the client counts as a company.
// Anything that is not explicitly a person is treated as a company.
func (c Client) IsCompany() bool {
	return c.Kind != KindPerson
}
