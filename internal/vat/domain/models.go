package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Segment classifies a client for VAT treatment: company/person crossed with
// domestic/EU/world relative to the taxpayer's own country.
type Segment string

const (
	SegmentCompanyDomestic Segment = "company_domestic"
	SegmentCompanyEU       Segment = "company_eu"
	SegmentCompanyWorld    Segment = "company_world"
	SegmentPersonDomestic  Segment = "person_domestic"
	SegmentPersonEU        Segment = "person_eu"
	SegmentPersonWorld     Segment = "person_world"
)

// Segments lists every segment in settings-grid order.
var Segments = []Segment{
	SegmentCompanyDomestic,
	SegmentCompanyEU,
	SegmentCompanyWorld,
	SegmentPersonDomestic,
	SegmentPersonEU,
	SegmentPersonWorld,
}

const (
	ValueTypeRate = "rate"
	ValueTypeCode = "code"
)

// Rule maps (service, segment, optional country) to either an effective VAT
// rate or a tax-exemption/reverse-charge code. A rule with no country code is
// the segment-wide fallback. Storage keeps two nullable columns; Outcome()
// is the only supported way to read the value, so the rate/code mutual
// exclusion stays structural.
type Rule struct {
	ID            snowflake.ID `json:"id" gorm:"primaryKey"`
	ServiceID     snowflake.ID `json:"service_id" gorm:"not null;index:idx_vat_rules_service"`
	ClientSegment Segment      `json:"client_segment" gorm:"type:text;not null"`
	CountryCode   *string      `json:"country_code,omitempty" gorm:"type:text"`
	ValueType     string       `json:"value_type" gorm:"type:text;not null"`
	RateValue     *float64     `json:"rate_value,omitempty"`
	CodeValue     *string      `json:"code_value,omitempty" gorm:"type:text"`
	CreatedAt     time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Rule) TableName() string { return "service_vat_rules" }

// Outcome converts the stored row into the tagged rate-or-code result.
// A code row always yields rate 0 alongside the canonical code.
func (r Rule) Outcome() Outcome {
	if r.ValueType == ValueTypeCode {
		code := ""
		if r.CodeValue != nil {
			code = *r.CodeValue
		}
		return CodeOutcome(NormalizeCode(code))
	}
	rate := 0.0
	if r.RateValue != nil {
		rate = *r.RateValue
	}
	return RateOutcome(rate)
}

// Outcome is the resolver result: exactly one of a rate or an exemption code.
type Outcome struct {
	valueType string
	rate      float64
	code      string
}

func RateOutcome(rate float64) Outcome {
	return Outcome{valueType: ValueTypeRate, rate: rate}
}

func CodeOutcome(code string) Outcome {
	return Outcome{valueType: ValueTypeCode, code: code}
}

func (o Outcome) IsCode() bool { return o.valueType == ValueTypeCode }

// Rate returns the effective VAT rate; a code outcome forces 0.
func (o Outcome) Rate() float64 {
	if o.IsCode() {
		return 0
	}
	return o.rate
}

// Code returns the exemption code and whether the outcome carries one.
func (o Outcome) Code() (string, bool) {
	if !o.IsCode() {
		return "", false
	}
	return o.code, true
}

// NormalizeCountry trims and upper-cases a country code, empty → nil-like "".
func NormalizeCountry(code *string) string {
	if code == nil {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(*code))
}
