package server

import (
	"errors"
	"net/http"
	"testing"

	clientdomain "github.com/smallbiznis/lingora/internal/client/domain"
	orderdomain "github.com/smallbiznis/lingora/internal/order/domain"
	pricingdomain "github.com/smallbiznis/lingora/internal/pricing/domain"
	vatdomain "github.com/smallbiznis/lingora/internal/vat/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorStatuses(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		typ    string
	}{
		{"mixed clients is a validation error", orderdomain.ErrMixedClients, http.StatusBadRequest, "validation_error"},
		{"mixed currencies is a validation error", orderdomain.ErrMixedCurrencies, http.StatusBadRequest, "validation_error"},
		{"missing invoice number is a validation error", orderdomain.ErrNumberRequired, http.StatusBadRequest, "validation_error"},
		{"invalid vat segment is a validation error", vatdomain.ErrInvalidSegment, http.StatusBadRequest, "validation_error"},
		{"missing client is not found", clientdomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"missing vat rule is not found", vatdomain.ErrRuleNotFound, http.StatusNotFound, "not_found"},
		{"unresolvable rate is not found", pricingdomain.ErrNoRate, http.StatusNotFound, "not_found"},
		{"anything else is internal", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := mapError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.typ, payload.Type)
		})
	}
}

func TestMapErrorValidationPayload(t *testing.T) {
	status, payload := mapError(orderdomain.ErrMixedClients)
	require.Equal(t, http.StatusBadRequest, status)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "mixed_clients", payload.Errors[0].Code)
	assert.Equal(t, "orders belong to different clients", payload.Errors[0].Message)
}

func TestMapErrorExplicitValidationErrors(t *testing.T) {
	err := newValidationError("unit_id", "invalid_unit_id", "invalid identifier")

	status, payload := mapError(err)
	require.Equal(t, http.StatusBadRequest, status)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "unit_id", payload.Errors[0].Field)
	assert.Equal(t, "invalid_unit_id", payload.Errors[0].Code)
}

func TestClassifyErrorForLog(t *testing.T) {
	typ, code := classifyErrorForLog(orderdomain.ErrNumberRequired)
	assert.Equal(t, "validation_error", typ)
	assert.Equal(t, "invoice_number_required", code)

	typ, code = classifyErrorForLog(clientdomain.ErrNotFound)
	assert.Equal(t, "not_found", typ)
	assert.Equal(t, "client_not_found", code)

	typ, code = classifyErrorForLog(nil)
	assert.Equal(t, "", typ)
	assert.Equal(t, "", code)
}
