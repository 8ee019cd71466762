package domain

import "time"

// Well-known setting keys. Values are stored as text; typed accessors on the
// service decode them.
const (
	KeyTaxpayerCountry         = "personal_country"
	KeyDefaultCurrency         = "default_currency"
	KeyRateCurrencies          = "rate_currencies"
	KeyVatCodeDefinitions      = "vat_code_definitions"
	KeyOrderNumberFormat       = "order_number_format"
	KeyInvoiceNumberFormat     = "invoice_number_format"
	KeySubcontractNumberFormat = "subcontract_number_format"
)

type Setting struct {
	Key       string    `json:"key" gorm:"primaryKey;type:text"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Setting) TableName() string { return "settings" }
