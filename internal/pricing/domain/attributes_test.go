package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestBuildCandidatesLanguagePairFallsBackToOralLang(t *testing.T) {
	candidates := BuildCandidates(OrderContext{OralLang: "DE"})

	require.NotEmpty(t, candidates)
	assert.Equal(t, KeyLanguagePair, candidates[0].Key)
	assert.Equal(t, "DE", candidates[0].Value)
}

func TestBuildCandidatesWrittenPairWinsOverOralLang(t *testing.T) {
	candidates := BuildCandidates(OrderContext{LanguagePair: "EN-PL", OralLang: "DE"})

	assert.Equal(t, Candidate{Key: KeyLanguagePair, Value: "EN-PL"}, candidates[0])

	var oral []Candidate
	for _, c := range candidates {
		if c.Key == KeyOralLang {
			oral = append(oral, c)
		}
	}
	require.Len(t, oral, 1)
	assert.Equal(t, "DE", oral[0].Value)
}

func TestBuildCandidatesSkipsEmptyFields(t *testing.T) {
	candidates := BuildCandidates(OrderContext{
		Name:            "  ",
		ClientShortName: "",
	})
	assert.Empty(t, candidates)
}

func TestBuildCandidatesFormatsNumbers(t *testing.T) {
	candidates := BuildCandidates(OrderContext{
		Quantity: floatPtr(2.5),
		Amount:   floatPtr(100),
	})

	byKey := map[AttributeKey]string{}
	for _, c := range candidates {
		byKey[c.Key] = c.Value
	}
	assert.Equal(t, "2.5", byKey[KeyQuantity])
	assert.Equal(t, "100", byKey[KeyAmount])
}

func TestBuildCandidatesCustomColumnsSortedAndPrefixed(t *testing.T) {
	candidates := BuildCandidates(OrderContext{
		CustomValues: map[string]string{
			"b-col": "two",
			"a-col": "one",
		},
	})

	require.Len(t, candidates, 2)
	assert.Equal(t, CustomColumnKey("a-col"), candidates[0].Key)
	assert.Equal(t, "one", candidates[0].Value)
	assert.Equal(t, CustomColumnKey("b-col"), candidates[1].Key)
}

func TestCandidateSetDedupesCaseInsensitively(t *testing.T) {
	set := NewCandidateSet()
	set.Add(KeyLanguagePair, "EN-PL")
	set.Add(KeyLanguagePair, "en-pl")
	set.Add(KeyLanguagePair, "DE-PL")

	items := set.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "EN-PL", items[0].Value)
	assert.Equal(t, "DE-PL", items[1].Value)
}
