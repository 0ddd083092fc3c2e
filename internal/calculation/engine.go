package calculation

import (
	"context"
	"fmt"

	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates projections over one or more scenarios
type CalculationEngine struct {
	TaxRateCalc *MarginalTaxRateCalculator
	Debug       bool // Enable debug output for detailed calculations
	Logger      Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		TaxRateCalc: NewMarginalTaxRateCalculator2024(),
		Logger:      NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// RunScenario calculates a complete property scenario
func (ce *CalculationEngine) RunScenario(ctx context.Context, scenario *domain.Scenario) (*domain.ScenarioSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	started := nowFunc()
	results := CalculateResults(scenario.Inputs)

	payback, err := CalculatePaybackPoint(results.TotalInvestment, results.YearlyResults)
	if err != nil {
		// An empty projection has no payback point
		ce.Logger.Debugf("scenario %q: no payback point: %v", scenario.Name, err)
		payback = nil
	}

	summary := &domain.ScenarioSummary{
		Name:       scenario.Name,
		Inputs:     scenario.Inputs,
		Results:    results,
		KeyMetrics: CalculateKeyMetrics(results),
		BreakEven:  payback,
	}

	if ce.Debug {
		ce.debugSummary(summary)
	}
	ce.Logger.Infof("scenario %q: %d years, IRR %s%% (%s)", scenario.Name, len(results.YearlyResults),
		results.IRR.StringFixed(2), nowFunc().Sub(started))

	return summary, nil
}

// RunScenarios runs all scenarios and returns a comparison
func (ce *CalculationEngine) RunScenarios(config *domain.Configuration) (*domain.ScenarioComparison, error) {
	return ce.RunScenariosContext(context.Background(), config)
}

// RunScenariosContext runs all scenarios, stopping early when ctx is cancelled
func (ce *CalculationEngine) RunScenariosContext(ctx context.Context, config *domain.Configuration) (*domain.ScenarioComparison, error) {
	if config == nil || len(config.Scenarios) == 0 {
		return nil, fmt.Errorf("configuration has no scenarios")
	}

	scenarios := make([]domain.ScenarioSummary, len(config.Scenarios))
	for i := range config.Scenarios {
		summary, err := ce.RunScenario(ctx, &config.Scenarios[i])
		if err != nil {
			return nil, fmt.Errorf("RunScenario failed: %w", err)
		}
		scenarios[i] = *summary
	}

	comparison := &domain.ScenarioComparison{
		Scenarios:      scenarios,
		Recommendation: ce.generateRecommendation(scenarios),
		Assumptions:    config.Scenarios[0].Inputs.GenerateAssumptions(),
	}

	return comparison, nil
}

// ScheduleFor returns the amortization tables of both tranches; the subsidized one is omitted when disabled
func (ce *CalculationEngine) ScheduleFor(inputs domain.PropertyInputs) []domain.TrancheSchedule {
	primary, subsidized := BuildSchedules(inputs)
	schedules := []domain.TrancheSchedule{primary.ToDomain("primary")}
	if !subsidized.IsNoop() {
		schedules = append(schedules, subsidized.ToDomain("subsidized"))
	}
	return schedules
}

func (ce *CalculationEngine) debugSummary(s *domain.ScenarioSummary) {
	r := s.Results
	ce.Logger.Debugf("PROJECTION BREAKDOWN: %s", s.Name)
	ce.Logger.Debugf("=========================================")
	ce.Logger.Debugf("Purchase costs:         EUR %s", r.TotalPurchaseCosts.StringFixed(2))
	ce.Logger.Debugf("Initial investment:     EUR %s", r.TotalInvestment.StringFixed(2))
	ce.Logger.Debugf("Monthly payment:        EUR %s", r.MortgageIndicators.MonthlyPayment.StringFixed(2))
	for _, yr := range r.YearlyResults {
		ce.Logger.Debugf("  Year %2d: rent %s interest %s principal %s tax %s cash flow %s remaining %s",
			yr.Year, yr.RentalIncome.StringFixed(2), yr.InterestPayment.StringFixed(2), yr.RepaymentAmount.StringFixed(2),
			yr.TaxBenefit.StringFixed(2), yr.CashFlow.StringFixed(2), yr.RemainingLoan.StringFixed(2))
	}
	ce.Logger.Debugf("Total interest:         EUR %s", r.TotalInterestPaid.StringFixed(2))
	ce.Logger.Debugf("Total tax benefits:     EUR %s", r.TotalTaxBenefits.StringFixed(2))
	ce.Logger.Debugf("IRR:                    %s%%", r.IRR.StringFixed(2))
	ce.Logger.Debugf("")
}

// MarginalTaxRate estimates the personal marginal rate (percent) for a tax profile
func (ce *CalculationEngine) MarginalTaxRate(profile domain.TaxProfile) decimal.Decimal {
	return ce.TaxRateCalc.Calculate(profile)
}
