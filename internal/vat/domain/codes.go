package domain

import (
	"encoding/json"
	"strings"
)

// NormalizeCode canonicalizes a stored or incoming exemption code.
// Two legacy single-letter codes survive in old databases: "O" (odwrotne
// obciążenie / not applicable) became "NP" and "E" (exempt) became "ZW".
func NormalizeCode(raw string) string {
	v := strings.ToUpper(strings.TrimSpace(raw))
	switch v {
	case "O":
		return "NP"
	case "E":
		return "ZW"
	default:
		return v
	}
}

// CodeDefinition is one row of the vat_code_definitions settings blob.
type CodeDefinition struct {
	CodePL  string `json:"code_pl"`
	LabelPL string `json:"label_pl"`
	CodeEN  string `json:"code_en"`
	LabelEN string `json:"label_en"`
}

// Canonical returns the definition's canonical code: the normalized Polish
// code when present, else the normalized English one.
func (d CodeDefinition) Canonical() string {
	if pl := NormalizeCode(d.CodePL); pl != "" {
		return pl
	}
	return NormalizeCode(d.CodeEN)
}

// ParseCodeDefinitions decodes the serialized definitions list, dropping
// rows without any code.
func ParseCodeDefinitions(raw string) []CodeDefinition {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var defs []CodeDefinition
	if err := json.Unmarshal([]byte(raw), &defs); err != nil {
		return nil
	}
	out := defs[:0]
	for _, d := range defs {
		if d.Canonical() != "" {
			out = append(out, d)
		}
	}
	return out
}
