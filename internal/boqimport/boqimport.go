// Package boqimport parses and validates uploaded bill-of-quantities files.
package boqimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ValidationError is a single field-level error on one row of an upload.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Row is one parsed BoQ line from an upload.
type Row struct {
	MaterialKey string  `json:"material_key"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}

// ValidationResult summarizes an upload: row accounting plus the parsed rows
// that passed validation.
type ValidationResult struct {
	FileName  string            `json:"file_name"`
	TotalRows int               `json:"total_rows"`
	ValidRows int               `json:"valid_rows"`
	ErrorRows int               `json:"error_rows"`
	Errors    []ValidationError `json:"errors,omitempty"`
	Rows      []Row             `json:"rows"`
}

// Recognized column headers, normalized to lower case. "material" is accepted
// as an alias for "material_key".
var columnAliases = map[string]string{
	"material_key": "material_key",
	"material":     "material_key",
	"quantity":     "quantity",
	"qty":          "quantity",
	"unit":         "unit",
	"uom":          "unit",
	"notes":        "notes",
}

// ValidateFile parses an uploaded .csv or .xlsx BoQ file and validates each
// row: the material key must be present and the quantity must be a
// non-negative number.
func ValidateFile(file io.Reader, fileName string) (*ValidationResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys := mapHeaders(headers)
	if !contains(columnKeys, "material_key") {
		return nil, fmt.Errorf("missing required column: material_key")
	}
	if !contains(columnKeys, "quantity") {
		return nil, fmt.Errorf("missing required column: quantity")
	}

	result := &ValidationResult{
		FileName:  fileName,
		TotalRows: len(dataRows),
		Rows:      []Row{},
	}

	errorRowSet := make(map[int]bool)
	for rowIdx, raw := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for the header row

		values := make(map[string]string)
		for colIdx, key := range columnKeys {
			if key == "" {
				continue
			}
			value := ""
			if colIdx < len(raw) {
				value = strings.TrimSpace(raw[colIdx])
			}
			values[key] = value
		}

		var rowErrors []ValidationError

		materialKey := values["material_key"]
		if materialKey == "" {
			rowErrors = append(rowErrors, ValidationError{
				Row:     rowNum,
				Field:   "material_key",
				Message: "material_key is required",
			})
		}

		quantity := 0.0
		qtyRaw := values["quantity"]
		if qtyRaw == "" {
			rowErrors = append(rowErrors, ValidationError{
				Row:     rowNum,
				Field:   "quantity",
				Message: "quantity is required",
			})
		} else {
			quantity, err = strconv.ParseFloat(qtyRaw, 64)
			if err != nil {
				rowErrors = append(rowErrors, ValidationError{
					Row:     rowNum,
					Field:   "quantity",
					Message: fmt.Sprintf("quantity %q is not a number", qtyRaw),
				})
			} else if quantity < 0 {
				rowErrors = append(rowErrors, ValidationError{
					Row:     rowNum,
					Field:   "quantity",
					Message: "quantity must not be negative",
				})
			}
		}

		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			errorRowSet[rowNum] = true
			continue
		}

		result.Rows = append(result.Rows, Row{
			MaterialKey: materialKey,
			Quantity:    quantity,
			Unit:        values["unit"],
			Notes:       values["notes"],
		})
	}

	result.ErrorRows = len(errorRowSet)
	result.ValidRows = result.TotalRows - result.ErrorRows
	return result, nil
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the
// first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return rows[0], rows[1:], nil
}

// mapHeaders maps uploaded column headers to canonical field keys; columns
// with unrecognized headers map to "".
func mapHeaders(headers []string) []string {
	mapped := make([]string, len(headers))
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		mapped[i] = columnAliases[norm]
	}
	return mapped
}

func contains(keys []string, want string) bool {
	for _, k := range keys {
		if k == want {
			return true
		}
	}
	return false
}
