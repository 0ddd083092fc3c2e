package output

import (
	"github.com/immocalc/property-calculator/internal/domain"
)

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs
// when a comparison carries none of its own.
var DefaultAssumptions = []string{
	"Rent growth applies to cold rent and redistributable ancillary costs; parking rent stays flat",
	"Operating costs held constant (no inflation indexing)",
	"Annuity payments fixed at (interest + repayment rate) of the initial loan amount",
	"Tax effect uses a flat marginal rate on depreciation, non-redistributable costs and interest",
	"Sale at the end of the projection at the grown property value, net of remaining debt",
}

// assumptionsFor returns the comparison's own assumptions or the defaults
func assumptionsFor(results *domain.ScenarioComparison) []string {
	if len(results.Assumptions) == 0 {
		return DefaultAssumptions
	}
	return results.Assumptions
}
