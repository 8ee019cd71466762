package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Numbered record kinds.
const (
	KindOrder       = "order"
	KindInvoice     = "invoice"
	KindSubcontract = "subcontract"
)

// ScopeGlobal is the scope of kinds numbered across the whole database
// (subcontracts).
const ScopeGlobal = "global"

// OrderScope scopes order numbers to their book.
func OrderScope(bookID snowflake.ID) string { return bookID.String() }

// InvoiceScope scopes invoice numbers to the issuing provider source
// ("internal" or "external").
func InvoiceScope(providerSource string) string { return providerSource }

// Counter is the per-scope monotonic allocation state. Value holds the last
// allocated sequence number; the commit path increments it inside the same
// transaction as the numbered record insert.
type Counter struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Kind      string       `json:"kind" gorm:"type:text;not null;uniqueIndex:idx_sequence_counters_key"`
	Scope     string       `json:"scope" gorm:"type:text;not null;uniqueIndex:idx_sequence_counters_key"`
	Value     int64        `json:"value" gorm:"not null;default:0"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Counter) TableName() string { return "sequence_counters" }
