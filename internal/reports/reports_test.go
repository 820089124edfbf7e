package reports

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"costpilot/server/internal/models"
)

func sampleEstimate() *models.Estimate {
	return &models.Estimate{
		ID: "11111111-2222-3333-4444-555555555555",
		Request: models.EstimateRequest{
			ProjectType:    "hotel",
			Location:       "Athens",
			Size:           100,
			SizeUnit:       "rooms",
			StartMonth:     1,
			DurationMonths: 12,
		},
		Result: models.EstimateResult{
			BoQItems: []models.BoQLine{
				{
					MaterialName:   "Concrete C30/37",
					Quantity:       30,
					Unit:           "m³",
					UnitPrice:      93.71,
					TotalPrice:     2811.38,
					SeasonalFactor: 1.05,
				},
				{
					MaterialName:   "Steel Rebar B500C",
					Quantity:       4500,
					Unit:           "kg",
					UnitPrice:      0.85,
					TotalPrice:     3825,
					SeasonalFactor: 1.08,
				},
			},
			TotalCost:       6636.38,
			ConfidenceBands: models.ConfidenceBand{P25: 5640.92, P50: 6636.38, P75: 7631.84},
			Assumptions:     []string{"VAT not included"},
		},
		CreatedAt: time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestBuildReportData(t *testing.T) {
	data := BuildReportData(sampleEstimate())

	assert.Equal(t, "11111111-2222-3333-4444-555555555555", data.EstimateID)
	assert.Equal(t, "hotel", data.ProjectType)
	assert.Equal(t, "Athens", data.Location)
	assert.Equal(t, "2026-03-15 10:30", data.GeneratedAt)
	assert.Equal(t, 6636.38, data.TotalCost)

	require.Len(t, data.Rows, 2)
	assert.Equal(t, ReportRow{
		Material:       "Concrete C30/37",
		Quantity:       30,
		Unit:           "m³",
		UnitPrice:      93.71,
		TotalPrice:     2811.38,
		SeasonalFactor: 1.05,
	}, data.Rows[0])
}

func TestGeneratePDF(t *testing.T) {
	pdf, err := GeneratePDF(BuildReportData(sampleEstimate()))
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")), "output should start with a PDF header")
	assert.Greater(t, len(pdf), 1000)
}

func TestGenerateCSV(t *testing.T) {
	data, err := GenerateCSV(BuildReportData(sampleEstimate()))
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Material", "Quantity", "Unit", "Unit Price (EUR)", "Total Price (EUR)", "Seasonal Factor"}, records[0])
	assert.Equal(t, []string{"Concrete C30/37", "30", "m³", "93.71", "2811.38", "1.05"}, records[1])
	assert.Equal(t, []string{"Steel Rebar B500C", "4500", "kg", "0.85", "3825.00", "1.08"}, records[2])
}

func TestGenerateExcel(t *testing.T) {
	data, err := GenerateExcel(BuildReportData(sampleEstimate()))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "Estimate", f.GetSheetName(0))

	title, err := f.GetCellValue("Estimate", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Construction Cost Estimate", title)

	header, err := f.GetCellValue("Estimate", "A5")
	require.NoError(t, err)
	assert.Equal(t, "Material", header)

	material, err := f.GetCellValue("Estimate", "A6")
	require.NoError(t, err)
	assert.Equal(t, "Concrete C30/37", material)
}

func TestFormatEUR(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "€0.00"},
		{5, "€5.00"},
		{1234.5, "€1,234.50"},
		{1234567.5, "€1,234,567.50"},
		{2811.375, "€2,811.38"},
		{999.999, "€1,000.00"},
		{-42.5, "-€42.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatEUR(tt.amount), "amount %v", tt.amount)
	}
}

func TestFormatQty(t *testing.T) {
	assert.Equal(t, "30", formatQty(30))
	assert.Equal(t, "4500", formatQty(4500))
	assert.Equal(t, "2.50", formatQty(2.5))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Business Park", titleCase("business_park"))
	assert.Equal(t, "Hotel", titleCase("hotel"))
	assert.Equal(t, "Two Words", titleCase("two words"))
}

func TestSanitizeCell(t *testing.T) {
	assert.Equal(t, "'=SUM(A1:A2)", sanitizeCell("=SUM(A1:A2)"))
	assert.Equal(t, "'+30 210 123", sanitizeCell("+30 210 123"))
	assert.Equal(t, "plain", sanitizeCell("plain"))
	assert.Equal(t, "", sanitizeCell(""))
}
