package engine

import (
	"encoding/json"
)

// Results holds the "results" object of a Slither run.
type Results struct {
	Detectors []Finding `json:"detectors"`
}

// AnalysisResult is the decoded document Slither writes with `--json -`.
type AnalysisResult struct {
	Success bool    `json:"success"`
	Error   string  `json:"error"`
	Results Results `json:"results"`

	// Raw is the payload exactly as captured, kept for diagnostic dumps.
	Raw json.RawMessage `json:"-"`
}

// Decode parses a Slither JSON document.
func Decode(data []byte) (*AnalysisResult, error) {
	var result AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	result.Raw = append(json.RawMessage(nil), data...)
	return &result, nil
}

// Detectors returns the reported findings in input order. A missing
// detectors list yields an empty slice.
func (r *AnalysisResult) Detectors() []Finding {
	if r == nil || r.Results.Detectors == nil {
		return []Finding{}
	}
	return r.Results.Detectors
}

// CountAtOrAbove counts findings whose impact ranks at least as high as threshold.
func (r *AnalysisResult) CountAtOrAbove(threshold Impact) int {
	count := 0
	for _, f := range r.Detectors() {
		if f.Impact.Rank() >= threshold.Rank() {
			count++
		}
	}
	return count
}
