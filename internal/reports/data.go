// Package reports renders stored estimates to PDF, CSV and Excel. Renderers
// are pure consumers of a completed estimate; nothing here re-runs the engine.
package reports

import (
	"fmt"
	"math"
	"strings"

	"costpilot/server/internal/models"
)

// ReportRow is one BoQ line flattened for rendering.
type ReportRow struct {
	Material       string
	Quantity       float64
	Unit           string
	UnitPrice      float64
	TotalPrice     float64
	SeasonalFactor float64
}

// ReportData is the render-neutral view of a stored estimate shared by all
// output formats.
type ReportData struct {
	EstimateID     string
	ProjectType    string
	Location       string
	Size           float64
	SizeUnit       string
	StartMonth     int
	DurationMonths int
	GeneratedAt    string
	Rows           []ReportRow
	TotalCost      float64
	Bands          models.ConfidenceBand
	Assumptions    []string
}

// BuildReportData flattens a stored estimate into ReportData.
func BuildReportData(estimate *models.Estimate) ReportData {
	data := ReportData{
		EstimateID:     estimate.ID,
		ProjectType:    estimate.Request.ProjectType,
		Location:       estimate.Request.Location,
		Size:           estimate.Request.Size,
		SizeUnit:       estimate.Request.SizeUnit,
		StartMonth:     estimate.Request.StartMonth,
		DurationMonths: estimate.Request.DurationMonths,
		GeneratedAt:    estimate.CreatedAt.Format("2006-01-02 15:04"),
		TotalCost:      estimate.Result.TotalCost,
		Bands:          estimate.Result.ConfidenceBands,
		Assumptions:    estimate.Result.Assumptions,
	}
	for _, item := range estimate.Result.BoQItems {
		data.Rows = append(data.Rows, ReportRow{
			Material:       item.MaterialName,
			Quantity:       item.Quantity,
			Unit:           item.Unit,
			UnitPrice:      item.UnitPrice,
			TotalPrice:     item.TotalPrice,
			SeasonalFactor: item.SeasonalFactor,
		})
	}
	return data
}

// FormatEUR renders an amount as a euro string with thousands separators,
// e.g. 1234567.5 -> "€1,234,567.50".
func FormatEUR(amount float64) string {
	neg := amount < 0
	amount = math.Abs(amount)

	whole := int64(amount)
	frac := int64(math.Round((amount - float64(whole)) * 100))
	if frac == 100 {
		whole++
		frac = 0
	}

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	out := fmt.Sprintf("€%s.%02d", b.String(), frac)
	if neg {
		out = "-" + out
	}
	return out
}

// formatQty renders a quantity: whole numbers without decimals, fractional
// values with two.
func formatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}

// titleCase uppercases the first letter of each underscore- or
// space-separated word, for presenting project type tags.
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
