package domain

import (
	"math"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Order statuses.
const (
	StatusToDo       = "to_do"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Invoice statuses.
const (
	InvoiceToIssue         = "to_issue"
	InvoiceIssued          = "issued"
	InvoiceAwaitingPayment = "awaiting_payment"
	InvoiceOverdue         = "overdue"
	InvoicePaid            = "paid"
)

// Translation types.
const (
	TranslationWritten = "written"
	TranslationOral    = "oral"
)

// Invoice provider sources. External invoices are issued by an outside
// provider that assigns its own numbers.
const (
	ProviderInternal = "internal"
	ProviderExternal = "external"
)

// Order is one register entry: the priced work item plus its invoice state
// and, for repertorium books, the sworn-translator legal fields. The VAT
// outcome occupies OrderVatRate or OrderVatCode, never both.
type Order struct {
	ID           snowflake.ID  `json:"id" gorm:"primaryKey"`
	BookID       snowflake.ID  `json:"book_id" gorm:"not null;index:idx_orders_book"`
	OrderNumber  string        `json:"order_number" gorm:"type:text;not null"`
	Name         string        `json:"name" gorm:"type:text;not null"`
	ClientID     snowflake.ID  `json:"client_id" gorm:"not null;index:idx_orders_client"`
	ContractorID *snowflake.ID `json:"contractor_id,omitempty"`
	ServiceID    *snowflake.ID `json:"service_id,omitempty"`
	UnitID       *snowflake.ID `json:"unit_id,omitempty"`

	LanguagePair    *string    `json:"language_pair,omitempty" gorm:"type:text"`
	Specialization  *string    `json:"specialization,omitempty" gorm:"type:text"`
	TranslationType string     `json:"translation_type" gorm:"type:text;not null;default:written"`
	ReceivedAt      *time.Time `json:"received_at,omitempty"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`

	Quantity     *float64 `json:"quantity,omitempty"`
	RatePerUnit  *float64 `json:"rate_per_unit,omitempty"`
	Amount       *float64 `json:"amount,omitempty"`
	RateCurrency string   `json:"rate_currency" gorm:"type:text;not null;default:PLN"`

	OrderStatus   string `json:"order_status" gorm:"type:text;not null;default:to_do"`
	InvoiceStatus string `json:"invoice_status" gorm:"type:text;not null;default:to_issue"`

	OrderVatRate *float64 `json:"order_vat_rate,omitempty"`
	OrderVatCode *string  `json:"order_vat_code,omitempty" gorm:"type:text"`

	InvoiceNumber         *string    `json:"invoice_number,omitempty" gorm:"type:text"`
	InvoiceDate           *time.Time `json:"invoice_date,omitempty"`
	InvoiceSaleDate       *time.Time `json:"invoice_sale_date,omitempty"`
	PaymentDueAt          *time.Time `json:"payment_due_at,omitempty"`
	InvoiceNotes          *string    `json:"invoice_notes,omitempty" gorm:"type:text"`
	InvoiceDescription    *string    `json:"invoice_description,omitempty" gorm:"type:text"`
	InvoiceBankAccount    *string    `json:"invoice_bank_account,omitempty" gorm:"type:text"`
	InvoiceProviderSource *string    `json:"invoice_provider_source,omitempty" gorm:"type:text"`

	ActivityType        *string `json:"repertorium_activity_type,omitempty" gorm:"column:repertorium_activity_type;type:text"`
	DocumentAuthor      *string `json:"document_author,omitempty" gorm:"type:text"`
	DocumentName        *string `json:"document_name,omitempty" gorm:"type:text"`
	DocumentDate        *string `json:"document_date,omitempty" gorm:"type:text"`
	DocumentNumber      *string `json:"document_number,omitempty" gorm:"type:text"`
	DocumentFormRemarks *string `json:"document_form_remarks,omitempty" gorm:"type:text"`
	OralLang            *string `json:"oral_lang,omitempty" gorm:"type:text"`
	OralDate            *string `json:"oral_date,omitempty" gorm:"type:text"`
	OralPlace           *string `json:"oral_place,omitempty" gorm:"type:text"`
	OralDuration        *string `json:"oral_duration,omitempty" gorm:"type:text"`
	OralScope           *string `json:"oral_scope,omitempty" gorm:"type:text"`
	RefusalDate         *string `json:"refusal_date,omitempty" gorm:"type:text"`
	RefusalOrgan        *string `json:"refusal_organ,omitempty" gorm:"type:text"`
	RefusalReason       *string `json:"refusal_reason,omitempty" gorm:"type:text"`
	RepertoriumNotes    *string `json:"repertorium_notes,omitempty" gorm:"type:text"`

	CustomValues datatypes.JSONMap `json:"custom_values,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Order) TableName() string { return "orders" }

// RoundAmount recomputes amount = quantity × rate to two decimals. Returns
// nil when either factor is missing.
func RoundAmount(quantity, rate *float64) *float64 {
	if quantity == nil || rate == nil {
		return nil
	}
	v := math.Round(*quantity**rate*100) / 100
	return &v
}
