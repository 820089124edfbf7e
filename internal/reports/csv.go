package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// GenerateCSV renders the BoQ lines of an estimate as CSV: one header row
// plus one row per line.
func GenerateCSV(data ReportData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Material", "Quantity", "Unit", "Unit Price (EUR)", "Total Price (EUR)", "Seasonal Factor"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range data.Rows {
		record := []string{
			r.Material,
			fmt.Sprintf("%g", r.Quantity),
			r.Unit,
			fmt.Sprintf("%.2f", r.UnitPrice),
			fmt.Sprintf("%.2f", r.TotalPrice),
			fmt.Sprintf("%g", r.SeasonalFactor),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}
