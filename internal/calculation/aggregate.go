package calculation

import (
	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ROEHorizons are the holding periods reported as return-on-equity snapshots
var ROEHorizons = []int{1, 10, 20, 30}

// interestWindowYears is the early-years window for the interest indicator
const interestWindowYears = 10

// CalculateResults runs the full projection for one set of inputs.
// It is pure: identical inputs yield identical results.
func CalculateResults(inputs domain.PropertyInputs) domain.ResultsData {
	primary, subsidized := BuildSchedules(inputs)
	yearly := GenerateYearlyResults(inputs, primary, subsidized)
	return AggregateResults(inputs, yearly, primary, subsidized)
}

// AggregateResults folds the yearly series into summary metrics
func AggregateResults(inputs domain.PropertyInputs, yearly []domain.YearlyResult, primary, subsidized *AmortizationSchedule) domain.ResultsData {
	investment := inputs.InitialInvestment()

	totalInterest := decimal.Zero
	totalTax := decimal.Zero
	for _, yr := range yearly {
		totalInterest = totalInterest.Add(yr.InterestPayment)
		totalTax = totalTax.Add(yr.TaxBenefit)
	}

	finalValue := inputs.PurchasePrice
	terminalDebt := decimal.Zero
	cumulative := investment.Neg()
	if n := len(yearly); n > 0 {
		last := yearly[n-1]
		finalValue = last.PropertyValue
		terminalDebt = last.RemainingLoan
		cumulative = last.CumulativeCashFlow
	}

	// Without a holding period there is nothing to solve for
	irr := decimal.Zero
	if len(yearly) > 0 {
		irr = IRRPercent(IRRCashFlows(investment, yearly))
	}

	totalReturn := decimal.Zero
	if investment.IsPositive() {
		finalTotal := cumulative.Add(finalValue).Sub(terminalDebt)
		totalReturn = finalTotal.Sub(investment).Div(investment).Mul(hundred)
	}

	return domain.ResultsData{
		YearlyResults:      yearly,
		TotalReturn:        totalReturn,
		IRR:                irr,
		TotalCashFlow:      cumulative,
		FinalPropertyValue: finalValue,
		TotalInterestPaid:  totalInterest,
		TotalTaxBenefits:   totalTax,
		TotalPurchaseCosts: inputs.TotalPurchaseCosts(),
		TotalInvestment:    investment,
		ReturnOnEquity:     ReturnOnEquitySnapshots(inputs, yearly),
		MortgageIndicators: mortgageIndicators(inputs, yearly, primary, subsidized, totalInterest),
	}
}

// IRRCashFlows returns [-investment, cf1 .. cfN] with liquidation (value minus
// remaining debt) added to the final entry. The yearly series is not modified.
func IRRCashFlows(investment decimal.Decimal, yearly []domain.YearlyResult) []decimal.Decimal {
	flows := make([]decimal.Decimal, 0, len(yearly)+1)
	flows = append(flows, investment.Neg())
	for _, yr := range yearly {
		flows = append(flows, yr.CashFlow)
	}
	if n := len(yearly); n > 0 {
		last := yearly[n-1]
		flows[n] = flows[n].Add(last.PropertyValue).Sub(last.RemainingLoan)
	}
	return flows
}

// ReturnOnEquitySnapshots computes the ROE at each horizon in ROEHorizons.
// A horizon beyond the projection yields a zero snapshot that keeps its year.
func ReturnOnEquitySnapshots(inputs domain.PropertyInputs, yearly []domain.YearlyResult) []domain.ReturnOnEquity {
	investment := inputs.InitialInvestment()
	snapshots := make([]domain.ReturnOnEquity, 0, len(ROEHorizons))

	for _, horizon := range ROEHorizons {
		if horizon < 1 || horizon > len(yearly) {
			snapshots = append(snapshots, zeroSnapshot(horizon))
			continue
		}

		at := yearly[horizon-1]
		taxToDate := decimal.Zero
		for _, yr := range yearly[:horizon] {
			taxToDate = taxToDate.Add(yr.TaxBenefit)
		}
		appreciation := at.PropertyValue.Sub(inputs.PurchasePrice)
		totalReturn := at.CumulativeCashFlow.Add(taxToDate).Add(appreciation)

		roe := decimal.Zero
		if investment.IsPositive() {
			roe = totalReturn.Div(investment).Mul(hundred)
		}

		snapshots = append(snapshots, domain.ReturnOnEquity{
			Year:                 horizon,
			ROE:                  roe,
			Equity:               at.Equity,
			TotalReturn:          totalReturn,
			CashFlowReturn:       at.CumulativeCashFlow,
			TaxBenefits:          taxToDate,
			PropertyAppreciation: appreciation,
		})
	}
	return snapshots
}

func zeroSnapshot(year int) domain.ReturnOnEquity {
	return domain.ReturnOnEquity{
		Year:                 year,
		ROE:                  decimal.Zero,
		Equity:               decimal.Zero,
		TotalReturn:          decimal.Zero,
		CashFlowReturn:       decimal.Zero,
		TaxBenefits:          decimal.Zero,
		PropertyAppreciation: decimal.Zero,
	}
}

func mortgageIndicators(inputs domain.PropertyInputs, yearly []domain.YearlyResult, primary, subsidized *AmortizationSchedule, totalInterest decimal.Decimal) domain.MortgageIndicators {
	early := decimal.Zero
	for i, yr := range yearly {
		if i >= interestWindowYears {
			break
		}
		early = early.Add(yr.InterestPayment)
	}
	return domain.MortgageIndicators{
		TotalLoanAmount:     inputs.TotalBorrowed(),
		MonthlyPayment:      primary.MonthlyPayment.Add(subsidized.MonthlyPayment),
		TotalInterestPaid:   totalInterest,
		InterestPaid10Years: early,
	}
}
