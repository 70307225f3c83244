package engine

import (
	"fmt"
	"sort"
	"strings"
)

// Impact is the severity tier Slither assigns to a detector result.
type Impact string

const (
	ImpactHigh          Impact = "High"
	ImpactMedium        Impact = "Medium"
	ImpactLow           Impact = "Low"
	ImpactInformational Impact = "Informational"
)

var impactRank = map[Impact]int{
	ImpactHigh:          3,
	ImpactMedium:        2,
	ImpactLow:           1,
	ImpactInformational: 0,
}

// Rank returns the ordinal used for sorting. Unknown or empty impacts rank
// the same as Informational.
func (i Impact) Rank() int {
	return impactRank[i]
}

// ParseImpact matches one of the four known tiers, ignoring case.
func ParseImpact(s string) (Impact, error) {
	for impact := range impactRank {
		if strings.EqualFold(strings.TrimSpace(s), string(impact)) {
			return impact, nil
		}
	}
	return "", fmt.Errorf("unknown impact %q (expected high, medium, low or informational)", s)
}

// Finding is a single detector result from Slither's JSON output.
type Finding struct {
	Check       string `json:"check"`
	Impact      Impact `json:"impact"`
	Confidence  string `json:"confidence,omitempty"`
	Description string `json:"description"`
	ID          string `json:"id,omitempty"`
}

// SortBySeverity returns a copy of findings ordered High to Informational.
// Findings of equal impact keep their input order.
func SortBySeverity(findings []Finding) []Finding {
	sorted := make([]Finding, len(findings))
	copy(sorted, findings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Impact.Rank() > sorted[j].Impact.Rank()
	})
	return sorted
}
