package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotPtr(s string) *string { return &s }

func row(rate float64, currency string, slots ...Slot) RateRowView {
	return RateRowView{Slots: slots, Rate: rate, Currency: currency}
}

func TestResolveLayerMostSpecificWins(t *testing.T) {
	rows := []RateRowView{
		row(40, "PLN"),
		row(55, "PLN", Slot{Key: "language_pair", Value: "EN-PL"}),
		row(70, "PLN",
			Slot{Key: "language_pair", Value: "EN-PL"},
			Slot{Key: "specialization", Value: "legal"},
		),
	}
	candidates := []Candidate{
		{Key: KeyLanguagePair, Value: "EN-PL"},
		{Key: KeySpecialization, Value: "legal"},
	}

	match := ResolveLayer(rows, candidates, "PLN")
	require.NotNil(t, match)
	assert.Equal(t, 70.0, match.Rate)
	assert.Equal(t, 2, match.Specificity)
}

func TestResolveLayerSlotlessFallback(t *testing.T) {
	rows := []RateRowView{
		row(40, "PLN"),
		row(55, "PLN", Slot{Key: "language_pair", Value: "DE-PL"}),
	}

	match := ResolveLayer(rows, []Candidate{{Key: KeyLanguagePair, Value: "EN-PL"}}, "PLN")
	require.NotNil(t, match)
	assert.Equal(t, 40.0, match.Rate)
	assert.Equal(t, 0, match.Specificity)
}

func TestResolveLayerNewestStoredWinsTies(t *testing.T) {
	rows := []RateRowView{
		row(55, "PLN", Slot{Key: "language_pair", Value: "EN-PL"}),
		row(60, "PLN", Slot{Key: "specialization", Value: "legal"}),
	}
	candidates := []Candidate{
		{Key: KeyLanguagePair, Value: "EN-PL"},
		{Key: KeySpecialization, Value: "legal"},
	}

	match := ResolveLayer(rows, candidates, "PLN")
	require.NotNil(t, match)
	assert.Equal(t, 60.0, match.Rate)
}

func TestResolveLayerReAddedRateSupersedesStaleRow(t *testing.T) {
	rows := []RateRowView{
		row(50, "PLN", Slot{Key: "language_pair", Value: "EN-PL"}),
		row(65, "PLN", Slot{Key: "language_pair", Value: "EN-PL"}),
	}
	candidates := []Candidate{{Key: KeyLanguagePair, Value: "EN-PL"}}

	match := ResolveLayer(rows, candidates, "PLN")
	require.NotNil(t, match)
	assert.Equal(t, 65.0, match.Rate)
}

func TestResolveLayerCurrencyFilter(t *testing.T) {
	rows := []RateRowView{
		row(15, "EUR"),
		row(60, "PLN"),
	}

	match := ResolveLayer(rows, nil, "EUR")
	require.NotNil(t, match)
	assert.Equal(t, 15.0, match.Rate)
	assert.Equal(t, "EUR", match.Currency)

	assert.Nil(t, ResolveLayer(rows, nil, "USD"))
}

func TestResolveLayerCaseInsensitiveMatching(t *testing.T) {
	rows := []RateRowView{
		row(55, "pln", Slot{Key: "Language_Pair", Value: "en-pl"}),
	}
	candidates := []Candidate{{Key: KeyLanguagePair, Value: "EN-PL"}}

	match := ResolveLayer(rows, candidates, "PLN")
	require.NotNil(t, match)
	assert.Equal(t, 55.0, match.Rate)
}

func TestResolveLayerUnmatchedSlotDisqualifies(t *testing.T) {
	rows := []RateRowView{
		row(70, "PLN",
			Slot{Key: "language_pair", Value: "EN-PL"},
			Slot{Key: "specialization", Value: "medical"},
		),
	}
	candidates := []Candidate{{Key: KeyLanguagePair, Value: "EN-PL"}}

	assert.Nil(t, ResolveLayer(rows, candidates, "PLN"))
}

func TestNormalizeSlots(t *testing.T) {
	slots := NormalizeSlots([]Slot{
		{Key: "  specialization ", Value: " legal "},
		{Key: "language_pair", Value: "EN-PL"},
		{Key: "SPECIALIZATION", Value: "medical"},
		{Key: "", Value: "orphan"},
		{Key: "unit", Value: ""},
		{Key: "book", Value: "main"},
		{Key: "client", Value: "acme"},
	})

	require.Len(t, slots, 3)
	assert.Equal(t, "book", slots[0].Key)
	assert.Equal(t, "language_pair", slots[1].Key)
	assert.Equal(t, "specialization", slots[2].Key)
	assert.Equal(t, "legal", slots[2].Value)
}

func TestSlotColumnsRoundTrip(t *testing.T) {
	var cols SlotColumns
	cols.SetSlots([]Slot{
		{Key: "specialization", Value: "legal"},
		{Key: "language_pair", Value: "EN-PL"},
	})

	slots := cols.Slots()
	require.Len(t, slots, 2)
	assert.Equal(t, "language_pair", slots[0].Key)
	assert.Equal(t, "specialization", slots[1].Key)

	cols.SetSlots(nil)
	assert.Empty(t, cols.Slots())
	assert.Nil(t, cols.Attr1Key)
}

func TestSlotColumnsSkipsHalfDefinedPair(t *testing.T) {
	cols := SlotColumns{
		Attr1Key:   slotPtr("language_pair"),
		Attr1Value: nil,
		Attr2Key:   slotPtr("unit"),
		Attr2Value: slotPtr("page"),
	}
	slots := cols.Slots()
	require.Len(t, slots, 1)
	assert.Equal(t, "unit", slots[0].Key)
}
