package domain

import (
	clientdomain "github.com/smallbiznis/lingora/internal/client/domain"
)

var euCountryCodes = map[string]struct{}{
	"AT": {}, "BE": {}, "BG": {}, "HR": {}, "CY": {}, "CZ": {}, "DK": {},
	"EE": {}, "FI": {}, "FR": {}, "DE": {}, "GR": {}, "HU": {}, "IE": {},
	"IT": {}, "LV": {}, "LT": {}, "LU": {}, "MT": {}, "NL": {}, "PL": {},
	"PT": {}, "RO": {}, "SK": {}, "SI": {}, "ES": {}, "SE": {},
}

// IsEUCountry reports whether the (already normalized or raw) country code
// belongs to the EU set.
func IsEUCountry(code string) bool {
	_, ok := euCountryCodes[NormalizeCountry(&code)]
	return ok
}

// Classify maps a client and the taxpayer's own country onto one of the six
// segments. Total: every input combination yields a segment.
//
// Domestic requires both country codes present and equal. The legacy vat_eu
// flag still forces the EU branch for records predating country-based
// classification.
func Classify(client clientdomain.Client, taxpayerCountry string) Segment {
	isCompany := client.IsCompany()

	cc := NormalizeCountry(client.CountryCode)
	taxpayer := NormalizeCountry(&taxpayerCountry)
	domestic := cc != "" && taxpayer != "" && cc == taxpayer
	inEU := IsEUCountry(cc) || client.VatEU == 1

	switch {
	case domestic:
		if isCompany {
			return SegmentCompanyDomestic
		}
		return SegmentPersonDomestic
	case inEU:
		if isCompany {
			return SegmentCompanyEU
		}
		return SegmentPersonEU
	default:
		if isCompany {
			return SegmentCompanyWorld
		}
		return SegmentPersonWorld
	}
}
