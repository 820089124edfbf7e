package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocationRule maps a location-name fragment to a price adjustment factor.
// Matching is a case-insensitive substring check against the free-text
// location supplied in an estimate request, not an exact region comparison.
type LocationRule struct {
	Match  string  `json:"match"`
	Factor float64 `json:"factor"`
}

// LocationFactors is the ordered rule set applied when pricing a request.
// Built once at startup and treated as immutable afterwards.
type LocationFactors struct {
	rules []LocationRule
}

// DefaultLocationRules are the built-in regional adjustments: metropolitan
// Athens carries a premium, Thessaloniki a small discount.
var DefaultLocationRules = []LocationRule{
	{Match: "athens", Factor: 1.05},
	{Match: "thessaloniki", Factor: 0.98},
}

// NewLocationFactors builds a rule set from the given rules. Match fragments
// are normalized to lower case; rules with an empty fragment or a
// non-positive factor are dropped.
func NewLocationFactors(rules []LocationRule) *LocationFactors {
	lf := &LocationFactors{}
	for _, r := range rules {
		match := strings.ToLower(strings.TrimSpace(r.Match))
		if match == "" || r.Factor <= 0 {
			continue
		}
		lf.rules = append(lf.rules, LocationRule{Match: match, Factor: r.Factor})
	}
	return lf
}

// LoadLocationFactors reads a rule file and returns the resulting rule set.
// An empty path yields the defaults.
func LoadLocationFactors(path string) (*LocationFactors, error) {
	if path == "" {
		return NewLocationFactors(DefaultLocationRules), nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %v", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read location factors file: %v", err)
	}

	var rules []LocationRule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse location factors file: %v", err)
	}

	return NewLocationFactors(rules), nil
}

// FactorFor returns the adjustment factor for a free-text location. The
// first matching rule wins; locations with no matching rule get 1.0.
func (lf *LocationFactors) FactorFor(location string) float64 {
	loc := strings.ToLower(location)
	for _, r := range lf.rules {
		if strings.Contains(loc, r.Match) {
			return r.Factor
		}
	}
	return 1.0
}

// Rules returns a copy of the active rule set.
func (lf *LocationFactors) Rules() []LocationRule {
	out := make([]LocationRule, len(lf.rules))
	copy(out, lf.rules)
	return out
}
