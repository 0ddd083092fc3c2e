package output

import (
	"sort"

	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// RankedScenario is one row of the IRR league table.
type RankedScenario struct {
	Rank        int
	Name        string
	IRR         decimal.Decimal
	TotalReturn decimal.Decimal
	GapToBest   decimal.Decimal // percentage points behind the best IRR
}

// RankScenarios orders scenarios by IRR (highest first). Ties keep input order.
func RankScenarios(results *domain.ScenarioComparison) []RankedScenario {
	if results == nil || len(results.Scenarios) == 0 {
		return nil
	}
	ranks := make([]RankedScenario, 0, len(results.Scenarios))
	for _, sc := range results.Scenarios {
		ranks = append(ranks, RankedScenario{Name: sc.Name, IRR: sc.Results.IRR, TotalReturn: sc.Results.TotalReturn})
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].IRR.GreaterThan(ranks[j].IRR) })
	best := ranks[0].IRR
	for i := range ranks {
		ranks[i].Rank = i + 1
		ranks[i].GapToBest = best.Sub(ranks[i].IRR)
	}
	return ranks
}

// AnalyzeScenarios returns the recommendation carried by the comparison. Comparisons
// assembled without one (decoded JSON, fixtures) fall back to the highest IRR.
func AnalyzeScenarios(results *domain.ScenarioComparison) domain.Recommendation {
	if results == nil {
		return domain.Recommendation{}
	}
	if results.Recommendation.ScenarioName != "" {
		return results.Recommendation
	}
	ranks := RankScenarios(results)
	if len(ranks) == 0 {
		return domain.Recommendation{}
	}
	rec := domain.Recommendation{
		ScenarioName: ranks[0].Name,
		IRR:          ranks[0].IRR,
		TotalReturn:  ranks[0].TotalReturn,
		IRRAdvantage: decimal.Zero,
	}
	if len(ranks) > 1 {
		rec.IRRAdvantage = ranks[0].IRR.Sub(ranks[1].IRR)
	}
	return rec
}
