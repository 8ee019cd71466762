package domain

import "strings"

// RateRowView is the resolver's neutral view of a stored rate row, whichever
// table it came from.
type RateRowView struct {
	Slots    []Slot
	Rate     float64
	Currency string
}

// Match is a resolved rate plus how many slots bound it. Specificity 0 means
// the universal (slotless) fallback row matched.
type Match struct {
	Rate        float64
	Currency    string
	Specificity int
}

// ResolveLayer picks the best row of one layer: rows whose every defined slot
// matches a candidate qualify, the qualifying row with the most defined slots
// wins, and among equally specific rows the newest stored one takes
// precedence, so re-adding a rate supersedes the stale row. Rows must arrive
// oldest first. When preferredCurrency is set, rows in other currencies never
// qualify; rates are never converted.
func ResolveLayer(rows []RateRowView, candidates []Candidate, preferredCurrency string) *Match {
	var best *Match
	for _, row := range rows {
		if preferredCurrency != "" && !strings.EqualFold(row.Currency, preferredCurrency) {
			continue
		}
		if !slotsSatisfied(row.Slots, candidates) {
			continue
		}
		if best == nil || len(row.Slots) >= best.Specificity {
			best = &Match{
				Rate:        row.Rate,
				Currency:    row.Currency,
				Specificity: len(row.Slots),
			}
		}
	}
	return best
}

func slotsSatisfied(slots []Slot, candidates []Candidate) bool {
	for _, slot := range slots {
		if !candidateMatches(slot, candidates) {
			return false
		}
	}
	return true
}

func candidateMatches(slot Slot, candidates []Candidate) bool {
	for _, c := range candidates {
		if strings.EqualFold(string(c.Key), slot.Key) && strings.EqualFold(c.Value, slot.Value) {
			return true
		}
	}
	return false
}
