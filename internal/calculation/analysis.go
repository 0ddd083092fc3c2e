package calculation

import (
	"fmt"

	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// generateRecommendation picks the scenario with the highest IRR
func (ce *CalculationEngine) generateRecommendation(scenarios []domain.ScenarioSummary) domain.Recommendation {
	if len(scenarios) == 0 {
		return domain.Recommendation{}
	}

	best, runnerUp := 0, -1
	for i := 1; i < len(scenarios); i++ {
		if scenarios[i].Results.IRR.GreaterThan(scenarios[best].Results.IRR) {
			runnerUp = best
			best = i
		} else if runnerUp < 0 || scenarios[i].Results.IRR.GreaterThan(scenarios[runnerUp].Results.IRR) {
			runnerUp = i
		}
	}

	winner := scenarios[best]
	rec := domain.Recommendation{
		ScenarioName: winner.Name,
		IRR:          winner.Results.IRR,
		TotalReturn:  winner.Results.TotalReturn,
		IRRAdvantage: decimal.Zero,
	}

	var considerations []string
	if runnerUp >= 0 {
		rec.IRRAdvantage = winner.Results.IRR.Sub(scenarios[runnerUp].Results.IRR)
		crossover, err := CalculateCumulativeBreakEven(winner.Results.YearlyResults, scenarios[runnerUp].Results.YearlyResults)
		if err != nil {
			ce.Logger.Warnf("cumulative comparison failed: %v", err)
		} else if crossover != nil {
			considerations = append(considerations, fmt.Sprintf("Cumulative cash flow overtakes %q in year %d", scenarios[runnerUp].Name, crossover.YearIndex))
		}
	}

	if winner.BreakEven != nil {
		considerations = append(considerations, fmt.Sprintf("Initial investment recovered from cash flow after %s years", winner.BreakEven.HoldingYears.StringFixed(1)))
	} else {
		considerations = append(considerations, "Initial investment is not recovered from operating cash flow alone; the result depends on the sale value")
	}
	if len(winner.Results.YearlyResults) > 0 && winner.Results.YearlyResults[0].CashFlow.IsNegative() {
		considerations = append(considerations, "Negative cash flow in year 1 requires monthly top-ups")
	}
	considerations = append(considerations, "Review interest rate risk after the fixed-rate period")
	rec.KeyConsiderations = considerations

	return rec
}
