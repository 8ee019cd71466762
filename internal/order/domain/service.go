package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	pricingdomain "github.com/smallbiznis/lingora/internal/pricing/domain"
)

var (
	ErrMixedClients    = errors.New("mixed_clients")
	ErrMixedCurrencies = errors.New("mixed_currencies")
	ErrNumberRequired  = errors.New("invoice_number_required")
	ErrEmptyBatch      = errors.New("empty_invoice_batch")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrInvalidProvider = errors.New("invalid_provider_source")
)

type CreateRequest struct {
	BookID       snowflake.ID  `json:"book_id"`
	OrderNumber  *string       `json:"order_number"`
	Name         string        `json:"name"`
	ClientID     snowflake.ID  `json:"client_id"`
	ContractorID *snowflake.ID `json:"contractor_id"`
	ServiceID    *snowflake.ID `json:"service_id"`
	UnitID       *snowflake.ID `json:"unit_id"`

	LanguagePair    *string    `json:"language_pair"`
	Specialization  *string    `json:"specialization"`
	TranslationType string     `json:"translation_type"`
	ReceivedAt      *time.Time `json:"received_at"`
	Deadline        *time.Time `json:"deadline"`

	Quantity     *float64 `json:"quantity"`
	RatePerUnit  *float64 `json:"rate_per_unit"`
	RateCurrency string   `json:"rate_currency"`

	ActivityType        *string `json:"repertorium_activity_type"`
	DocumentAuthor      *string `json:"document_author"`
	DocumentName        *string `json:"document_name"`
	DocumentDate        *string `json:"document_date"`
	DocumentNumber      *string `json:"document_number"`
	DocumentFormRemarks *string `json:"document_form_remarks"`
	OralLang            *string `json:"oral_lang"`
	OralDate            *string `json:"oral_date"`
	OralPlace           *string `json:"oral_place"`
	OralDuration        *string `json:"oral_duration"`
	OralScope           *string `json:"oral_scope"`
	RepertoriumNotes    *string `json:"repertorium_notes"`

	CustomValues map[string]string `json:"custom_values"`
}

// UpdateRequest patches an order; nil fields keep their stored value.
// Quantity and rate changes recompute the amount.
type UpdateRequest struct {
	Name            *string       `json:"name"`
	ContractorID    *snowflake.ID `json:"contractor_id"`
	ServiceID       *snowflake.ID `json:"service_id"`
	UnitID          *snowflake.ID `json:"unit_id"`
	LanguagePair    *string       `json:"language_pair"`
	Specialization  *string       `json:"specialization"`
	TranslationType *string       `json:"translation_type"`
	ReceivedAt      *time.Time    `json:"received_at"`
	Deadline        *time.Time    `json:"deadline"`
	CompletedAt     *time.Time    `json:"completed_at"`
	Quantity        *float64      `json:"quantity"`
	RatePerUnit     *float64      `json:"rate_per_unit"`
	RateCurrency    *string       `json:"rate_currency"`
	OrderStatus     *string       `json:"order_status"`
	InvoiceStatus   *string       `json:"invoice_status"`

	ActivityType        *string `json:"repertorium_activity_type"`
	DocumentAuthor      *string `json:"document_author"`
	DocumentName        *string `json:"document_name"`
	DocumentDate        *string `json:"document_date"`
	DocumentNumber      *string `json:"document_number"`
	DocumentFormRemarks *string `json:"document_form_remarks"`
	OralLang            *string `json:"oral_lang"`
	OralDate            *string `json:"oral_date"`
	OralPlace           *string `json:"oral_place"`
	OralDuration        *string `json:"oral_duration"`
	OralScope           *string `json:"oral_scope"`
	RefusalDate         *string `json:"refusal_date"`
	RefusalOrgan        *string `json:"refusal_organ"`
	RefusalReason       *string `json:"refusal_reason"`
	RepertoriumNotes    *string `json:"repertorium_notes"`

	CustomValues map[string]string `json:"custom_values"`
}

// IssueRequest carries the invoice header applied to every order of the
// batch. Number may be empty only for the external provider source.
type IssueRequest struct {
	Number         *string    `json:"number"`
	Date           *time.Time `json:"date"`
	SaleDate       *time.Time `json:"sale_date"`
	PaymentDueAt   *time.Time `json:"payment_due_at"`
	Notes          *string    `json:"notes"`
	Description    *string    `json:"description"`
	BankAccount    *string    `json:"bank_account"`
	ProviderSource string     `json:"provider_source"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Order, error)
	Get(ctx context.Context, id snowflake.ID) (*Order, error)
	ListByBook(ctx context.Context, bookID snowflake.ID) ([]Order, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateRequest) (*Order, error)
	Delete(ctx context.Context, id snowflake.ID) error

	// IssueInvoice stamps one order; IssueInvoices stamps a batch in a
	// single transaction, all-or-nothing. The batch must share one client
	// and one rate currency.
	IssueInvoice(ctx context.Context, orderID snowflake.ID, req IssueRequest) (*Order, error)
	IssueInvoices(ctx context.Context, orderIDs []snowflake.ID, req IssueRequest) ([]Order, error)

	// ClearInvoice reverts every invoice field and returns the order to
	// to_issue.
	ClearInvoice(ctx context.Context, orderID snowflake.ID) (*Order, error)

	// PeekNumber previews the next order number of a book without
	// allocating it.
	PeekNumber(ctx context.Context, bookID snowflake.ID) (string, error)

	// ResolveRate derives the order's attribute candidates and resolves
	// its unit rate through the client then global layers.
	ResolveRate(ctx context.Context, id snowflake.ID) (*pricingdomain.ResolvedRate, error)
}
