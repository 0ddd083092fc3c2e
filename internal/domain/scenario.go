package domain

import (
	"github.com/shopspring/decimal"
)

// Scenario is one named set of purchase inputs
type Scenario struct {
	Name   string         `yaml:"name" json:"name"`
	Inputs PropertyInputs `yaml:"inputs" json:"inputs"`
}

// Configuration represents the complete input configuration
type Configuration struct {
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// FindScenario returns the scenario with the given name. An empty name selects the first scenario.
func (c *Configuration) FindScenario(name string) (*Scenario, bool) {
	if len(c.Scenarios) == 0 {
		return nil, false
	}
	if name == "" {
		return &c.Scenarios[0], true
	}
	for i := range c.Scenarios {
		if c.Scenarios[i].Name == name {
			return &c.Scenarios[i], true
		}
	}
	return nil, false
}

// ScenarioSummary bundles the projection of one scenario with derived metrics
type ScenarioSummary struct {
	Name       string           `json:"name"`
	Inputs     PropertyInputs   `json:"inputs"`
	Results    ResultsData      `json:"results"`
	KeyMetrics KeyMetrics       `json:"key_metrics"`
	BreakEven  *BreakEvenResult `json:"break_even,omitempty"`
}

// Recommendation identifies the strongest scenario of a comparison
type Recommendation struct {
	ScenarioName      string          `json:"scenario_name"`
	IRR               decimal.Decimal `json:"irr"`
	TotalReturn       decimal.Decimal `json:"total_return"`
	IRRAdvantage      decimal.Decimal `json:"irr_advantage"` // percentage points over the runner-up
	KeyConsiderations []string        `json:"key_considerations"`
}

// ScenarioComparison contains all scenarios for reporting
type ScenarioComparison struct {
	Scenarios      []ScenarioSummary `json:"scenarios"`
	Recommendation Recommendation    `json:"recommendation"`
	Assumptions    []string          `json:"assumptions"`
}

// SensitivityCell is one point of the rent growth × interest rate grid
type SensitivityCell struct {
	RentGrowthRate decimal.Decimal `json:"rent_growth_rate"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	IRR            decimal.Decimal `json:"irr"`
	Rating         string          `json:"rating"`
}

// SensitivityGrid holds IRR outcomes for varied rent growth and interest rates
type SensitivityGrid struct {
	RentGrowthRates []decimal.Decimal   `json:"rent_growth_rates"`
	InterestRates   []decimal.Decimal   `json:"interest_rates"`
	Cells           [][]SensitivityCell `json:"cells"` // [rent growth][interest rate]
}

// Cell returns the grid cell for the given row and column, or false when out of range
func (g *SensitivityGrid) Cell(row, col int) (SensitivityCell, bool) {
	if row < 0 || row >= len(g.Cells) || col < 0 || col >= len(g.Cells[row]) {
		return SensitivityCell{}, false
	}
	return g.Cells[row][col], true
}

// TrancheSchedule is the monthly amortization table of one loan tranche
type TrancheSchedule struct {
	Name           string              `json:"name"`
	Principal      decimal.Decimal     `json:"principal"`
	MonthlyPayment decimal.Decimal     `json:"monthly_payment"`
	MonthlyRate    decimal.Decimal     `json:"monthly_rate"`
	TermMonths     int                 `json:"term_months"`
	Entries        []AmortizationEntry `json:"entries"`
}
