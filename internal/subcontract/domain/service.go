package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type CreateRequest struct {
	OrderID               snowflake.ID  `json:"order_id"`
	ContractorID          *snowflake.ID `json:"contractor_id"`
	Name                  *string       `json:"name"`
	Notes                 *string       `json:"notes"`
	IncludeSpecialization *bool         `json:"include_specialization"`
	IncludeLanguagePair   *bool         `json:"include_language_pair"`
	IncludeService        *bool         `json:"include_service"`
	DescriptionCustomText *string       `json:"description_custom_text"`
	Quantity              *float64      `json:"quantity"`
	RatePerUnit           *float64      `json:"rate_per_unit"`
	Amount                *float64      `json:"amount"`
	ReceivedAt            *time.Time    `json:"received_at"`
	DeadlineAt            *time.Time    `json:"deadline_at"`
}

type UpdateRequest struct {
	ContractorID          *snowflake.ID `json:"contractor_id"`
	Name                  *string       `json:"name"`
	Notes                 *string       `json:"notes"`
	IncludeSpecialization *bool         `json:"include_specialization"`
	IncludeLanguagePair   *bool         `json:"include_language_pair"`
	IncludeService        *bool         `json:"include_service"`
	DescriptionCustomText *string       `json:"description_custom_text"`
	Quantity              *float64      `json:"quantity"`
	RatePerUnit           *float64      `json:"rate_per_unit"`
	Amount                *float64      `json:"amount"`
	DeadlineAt            *time.Time    `json:"deadline_at"`
}

type Service interface {
	// Create allocates the subcontract number from the global sequence and
	// copies quantity, rate, amount and received date from the order when
	// the request leaves them empty.
	Create(ctx context.Context, req CreateRequest) (*Subcontract, error)
	Get(ctx context.Context, id snowflake.ID) (*Subcontract, error)
	List(ctx context.Context) ([]Subcontract, error)
	ListByOrder(ctx context.Context, orderID snowflake.ID) ([]Subcontract, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateRequest) (*Subcontract, error)
	Delete(ctx context.Context, id snowflake.ID) error

	// PeekNumber previews the next subcontract number.
	PeekNumber(ctx context.Context) (string, error)
}
