package calculation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateIRR(t *testing.T) {
	tests := []struct {
		irr      float64
		expected string
	}{
		{12.2, RatingExcellent},
		{8.0, RatingGood},
		{6.5, RatingGood},
		{6.0, RatingModerate},
		{4.01, RatingModerate},
		{4.0, RatingPoor},
		{-3, RatingPoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, RateIRR(decimal.NewFromFloat(tt.irr)), "irr %.2f", tt.irr)
	}
}

func TestDefaultSensitivityAxes(t *testing.T) {
	growth := DefaultSensitivityRentGrowth()
	rates := DefaultSensitivityInterestRates()

	require.Len(t, growth, 6)
	require.Len(t, rates, 7)
	assert.True(t, d(2.0).Equal(rates[0]))
	assert.True(t, d(3.5).Equal(rates[3]))
	assert.True(t, d(5.0).Equal(rates[6]))
}

func TestRunSensitivity(t *testing.T) {
	engine := NewCalculationEngine()
	inputs := createTestInputs()

	grid, err := engine.RunSensitivity(context.Background(), inputs, nil, nil)
	require.NoError(t, err)
	require.Len(t, grid.Cells, 6)

	for _, row := range grid.Cells {
		require.Len(t, row, 7)
	}
	// higher rent growth never lowers IRR at a fixed interest rate
	for j := range grid.Cells[0] {
		for i := 1; i < len(grid.Cells); i++ {
			assert.True(t, grid.Cells[i][j].IRR.GreaterThanOrEqual(grid.Cells[i-1][j].IRR))
		}
	}

	// the grid cell matching the inputs equals the direct calculation
	cell, ok := grid.Cell(2, 3)
	require.True(t, ok)
	assert.True(t, CalculateResults(inputs).IRR.Equal(cell.IRR))
	assert.Equal(t, RateIRR(cell.IRR), cell.Rating)

	_, ok = grid.Cell(6, 0)
	assert.False(t, ok)
}

func TestRunSensitivity_CustomAxesAndCancellation(t *testing.T) {
	engine := NewCalculationEngine()
	inputs := createTestInputs()

	grid, err := engine.RunSensitivity(context.Background(), inputs, []decimal.Decimal{d(1)}, []decimal.Decimal{d(3), d(4)})
	require.NoError(t, err)
	require.Len(t, grid.Cells, 1)
	assert.Len(t, grid.Cells[0], 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.RunSensitivity(ctx, inputs, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
