package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"costpilot/server/internal/models"
)

func newTestStore(t *testing.T) *EstimateStore {
	t.Helper()
	s, err := NewEstimateStore(filepath.Join(t.TempDir(), "estimates_test.db"))
	require.NoError(t, err)
	return s
}

func sampleEstimate() (models.EstimateRequest, models.EstimateResult) {
	req := models.EstimateRequest{
		ProjectType:    "hotel",
		Location:       "Athens",
		Size:           100,
		SizeUnit:       "rooms",
		StartMonth:     1,
		DurationMonths: 12,
	}
	result := models.EstimateResult{
		BoQItems: []models.BoQLine{
			{
				MaterialName:   "Concrete C30/37",
				Quantity:       30,
				Unit:           "m³",
				UnitPrice:      93.71,
				TotalPrice:     2811.38,
				SeasonalFactor: 1.05,
				ConfidenceBand: models.ConfidenceBand{P25: 79.66, P50: 93.71, P75: 107.77},
			},
		},
		TotalCost:       2811.38,
		ConfidenceBands: models.ConfidenceBand{P25: 2389.67, P50: 2811.38, P75: 3233.08},
		VendorRecommendations: map[string][]models.VendorRecommendation{
			"Concrete C30/37": {
				{VendorName: "Hellenic Concrete Co.", Location: "Athens", Price: 82, StockStatus: "In Stock", Contact: "sales@hellenic-concrete.gr"},
			},
		},
		SeasonalChartData: []models.SeasonalPoint{{Month: 1, Material: "Concrete C30/37", PriceFactor: 1.05, Price: 89.25}},
		Assumptions:       []string{"VAT not included"},
		CostDrivers:       []models.CostDriver{{Material: "Concrete C30/37", Cost: 2811.38, Percentage: 100}},
		SkippedMaterials:  []string{"rebar_b500c"},
	}
	return req, result
}

func TestSaveAndGetEstimate(t *testing.T) {
	s := newTestStore(t)
	req, result := sampleEstimate()

	saved, err := s.SaveEstimate(req, result)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	loaded, err := s.GetEstimate(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, loaded.ID)
	assert.Equal(t, req, loaded.Request)
	assert.Equal(t, result, loaded.Result)
}

func TestSaveAssignsUniqueIDs(t *testing.T) {
	s := newTestStore(t)
	req, result := sampleEstimate()

	first, err := s.SaveEstimate(req, result)
	require.NoError(t, err)
	second, err := s.SaveEstimate(req, result)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestGetEstimateNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetEstimate("no-such-id")
	assert.ErrorIs(t, err, ErrEstimateNotFound)
}
