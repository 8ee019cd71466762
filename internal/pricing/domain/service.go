package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type ResolveRequest struct {
	ClientID   *snowflake.ID `json:"client_id"`
	UnitID     snowflake.ID  `json:"unit_id"`
	Candidates []Candidate   `json:"candidates"`
	Currency   string        `json:"currency"`
}

type ResolvedRate struct {
	Rate     float64 `json:"rate"`
	Currency string  `json:"currency"`
}

type ClientRateInput struct {
	ClientID snowflake.ID `json:"client_id"`
	UnitID   snowflake.ID `json:"unit_id"`
	Slots    []Slot       `json:"slots"`
	Rate     float64      `json:"rate"`
	Currency string       `json:"currency"`
}

type GlobalRateInput struct {
	UnitID   snowflake.ID `json:"unit_id"`
	Slots    []Slot       `json:"slots"`
	Rate     float64      `json:"rate"`
	Currency string       `json:"currency"`
}

type SimpleRateInput struct {
	ClientID snowflake.ID `json:"client_id"`
	UnitID   snowflake.ID `json:"unit_id"`
	Rate     float64      `json:"rate"`
	Currency string       `json:"currency"`
}

type Service interface {
	// Resolve walks the client layer then the global layer and returns the
	// most specific matching rate, or ErrNoRate.
	Resolve(ctx context.Context, req ResolveRequest) (*ResolvedRate, error)

	// LookupClientUnitRate reads the simple override: exact-currency row
	// preferred, any-currency row otherwise, nil when none exists.
	LookupClientUnitRate(ctx context.Context, clientID, unitID snowflake.ID, preferredCurrency string) (*ResolvedRate, error)

	// LookupContractorRate resolves a subcontract cost rate: exact language
	// pair first, pair-less fallback second, nil when neither exists.
	LookupContractorRate(ctx context.Context, contractorID, unitID snowflake.ID, languagePair *string) (*float64, error)

	CreateClientRate(ctx context.Context, input ClientRateInput) (*ClientDefaultUnitRate, error)
	CreateGlobalRate(ctx context.Context, input GlobalRateInput) (*DefaultUnitRate, error)
	SetSimpleRate(ctx context.Context, input SimpleRateInput) (*ClientUnitRate, error)
	ListClientRates(ctx context.Context, clientID snowflake.ID) ([]ClientDefaultUnitRate, error)
	ListGlobalRates(ctx context.Context) ([]DefaultUnitRate, error)
	ListSimpleRates(ctx context.Context, clientID snowflake.ID) ([]ClientUnitRate, error)
	DeleteClientRate(ctx context.Context, id snowflake.ID) error
	DeleteGlobalRate(ctx context.Context, id snowflake.ID) error
	DeleteSimpleRate(ctx context.Context, id snowflake.ID) error
}
