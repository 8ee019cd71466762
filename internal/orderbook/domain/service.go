package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type CreateRequest struct {
	Name                  string        `json:"name"`
	ViewType              string        `json:"view_type"`
	OrderNumberFormat     *string       `json:"order_number_format"`
	RepertoriumOralUnitID *snowflake.ID `json:"repertorium_oral_unit_id"`
	RepertoriumPageUnitID *snowflake.ID `json:"repertorium_page_unit_id"`
}

type UpdateRequest struct {
	Name                  *string       `json:"name"`
	ViewType              *string       `json:"view_type"`
	OrderNumberFormat     *string       `json:"order_number_format"`
	RepertoriumOralUnitID *snowflake.ID `json:"repertorium_oral_unit_id"`
	RepertoriumPageUnitID *snowflake.ID `json:"repertorium_page_unit_id"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*OrderBook, error)
	Get(ctx context.Context, id snowflake.ID) (*OrderBook, error)
	GetByShareToken(ctx context.Context, token string) (*OrderBook, error)
	List(ctx context.Context) ([]OrderBook, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateRequest) (*OrderBook, error)
	Delete(ctx context.Context, id snowflake.ID) error

	// RotateShareToken invalidates the public repertorium link by issuing a
	// fresh token.
	RotateShareToken(ctx context.Context, id snowflake.ID) (*OrderBook, error)
}
