package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactorForDefaults(t *testing.T) {
	lf := NewLocationFactors(DefaultLocationRules)

	tests := []struct {
		location string
		want     float64
	}{
		{"Athens", 1.05},
		{"athens city center", 1.05},
		{"Greater ATHENS Area", 1.05},
		{"Thessaloniki", 0.98},
		{"thessaloniki port", 0.98},
		{"Patras", 1.0},
		{"", 1.0},
		{"Rural Crete", 1.0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, lf.FactorFor(tt.location), "location %q", tt.location)
	}
}

func TestFactorForFirstMatchWins(t *testing.T) {
	lf := NewLocationFactors([]LocationRule{
		{Match: "athens", Factor: 1.05},
		{Match: "athens north", Factor: 1.20},
	})

	assert.Equal(t, 1.05, lf.FactorFor("Athens North"))
}

func TestNewLocationFactorsDropsInvalidRules(t *testing.T) {
	lf := NewLocationFactors([]LocationRule{
		{Match: "  ", Factor: 1.5},
		{Match: "patras", Factor: 0},
		{Match: "patras", Factor: -1},
		{Match: " Volos ", Factor: 1.02},
	})

	rules := lf.Rules()
	require.Len(t, rules, 1)
	assert.Equal(t, LocationRule{Match: "volos", Factor: 1.02}, rules[0])
}

func TestLoadLocationFactorsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.json")
	content := `[{"match": "Athens", "factor": 1.08}, {"match": "crete", "factor": 1.12}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lf, err := LoadLocationFactors(path)
	require.NoError(t, err)

	assert.Equal(t, 1.08, lf.FactorFor("Central Athens"))
	assert.Equal(t, 1.12, lf.FactorFor("Heraklion, Crete"))
	assert.Equal(t, 1.0, lf.FactorFor("Thessaloniki"))
}

func TestLoadLocationFactorsEmptyPathUsesDefaults(t *testing.T) {
	lf, err := LoadLocationFactors("")
	require.NoError(t, err)
	assert.Equal(t, 1.05, lf.FactorFor("Athens"))
}

func TestLoadLocationFactorsErrors(t *testing.T) {
	_, err := LoadLocationFactors(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = LoadLocationFactors(path)
	assert.Error(t, err)
}
