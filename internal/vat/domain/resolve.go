package domain

// ResolveRule picks the rule for a segment and client country: a rule bound
// to the exact country wins over the segment-wide (country-less) fallback.
// Returns nil when neither exists; the caller then falls back to the
// service's flat vat_rate.
func ResolveRule(rules []Rule, segment Segment, countryCode *string) *Rule {
	cc := NormalizeCountry(countryCode)
	if cc != "" {
		for i := range rules {
			if rules[i].ClientSegment == segment && NormalizeCountry(rules[i].CountryCode) == cc {
				return &rules[i]
			}
		}
	}
	for i := range rules {
		if rules[i].ClientSegment == segment && NormalizeCountry(rules[i].CountryCode) == "" {
			return &rules[i]
		}
	}
	return nil
}
