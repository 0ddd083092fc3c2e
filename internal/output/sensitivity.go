package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/immocalc/property-calculator/internal/domain"
)

// SensitivityCSV exports the rent growth × interest rate grid, one row per cell.
func SensitivityCSV(grid *domain.SensitivityGrid) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"RentGrowthRate", "InterestRate", "IRR", "Rating"}); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range grid.Cells {
		for _, cell := range row {
			record := []string{
				cell.RentGrowthRate.StringFixed(2),
				cell.InterestRate.StringFixed(2),
				cell.IRR.StringFixed(4),
				cell.Rating,
			}
			if err := w.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write data row: %w", err)
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// SensitivityTable renders the grid as a console matrix: rent growth rows, interest rate columns.
func SensitivityTable(grid *domain.SensitivityGrid) []byte {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "IRR SENSITIVITY (rows: rent growth, columns: interest rate)")
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintf(&buf, "%8s", "")
	for _, rate := range grid.InterestRates {
		fmt.Fprintf(&buf, " %9s", FormatPercentage(rate))
	}
	fmt.Fprintln(&buf)
	for i, growth := range grid.RentGrowthRates {
		fmt.Fprintf(&buf, "%8s", FormatPercentage(growth))
		for j := range grid.InterestRates {
			cell, ok := grid.Cell(i, j)
			if !ok {
				fmt.Fprintf(&buf, " %9s", "-")
				continue
			}
			fmt.Fprintf(&buf, " %9s", FormatPercentage(cell.IRR))
		}
		fmt.Fprintln(&buf)
	}
	return buf.Bytes()
}
