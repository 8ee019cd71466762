package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrRuleNotFound   = errors.New("vat_rule_not_found")
	ErrInvalidSegment = errors.New("invalid_client_segment")
	ErrInvalidValue   = errors.New("invalid_vat_value")
	ErrInvalidService = errors.New("invalid_service")
)

type UpsertRequest struct {
	ServiceID   snowflake.ID `json:"service_id"`
	Segment     Segment      `json:"client_segment"`
	CountryCode *string      `json:"country_code"`
	ValueType   string       `json:"value_type"`
	RateValue   *float64     `json:"rate_value"`
	CodeValue   *string      `json:"code_value"`
}

type Service interface {
	ListByService(ctx context.Context, serviceID snowflake.ID) ([]Rule, error)
	Upsert(ctx context.Context, req UpsertRequest) (*Rule, error)
	Delete(ctx context.Context, id snowflake.ID) error

	// Classify derives the client's segment against the configured taxpayer
	// country (settings key personal_country).
	Classify(ctx context.Context, clientID snowflake.ID) (Segment, error)

	// Effective resolves the VAT outcome for a client/service pair: the
	// matching rule if any, else the service's flat vat_rate as a rate
	// outcome.
	Effective(ctx context.Context, clientID, serviceID snowflake.ID) (Outcome, error)

	CodeDefinitions(ctx context.Context) ([]CodeDefinition, error)
}
