package domain

import (
	"github.com/shopspring/decimal"
)

// YearlyResult represents the complete projection for a single year of ownership
type YearlyResult struct {
	Year int `json:"year"`

	// Financing
	MonthlyPayment  decimal.Decimal `json:"monthly_payment"` // combined scheduled payment of tranches within term
	RemainingLoan   decimal.Decimal `json:"remaining_loan"`  // end of year, both tranches
	InterestPayment decimal.Decimal `json:"interest_payment"`
	RepaymentAmount decimal.Decimal `json:"repayment_amount"`

	// Income and costs
	RentalIncome        decimal.Decimal `json:"rental_income"`
	OperatingExpenses   decimal.Decimal `json:"operating_expenses"`
	NetIncomeBeforeDebt decimal.Decimal `json:"net_income_before_debt"`

	// Tax
	Amortization               decimal.Decimal `json:"amortization"` // flat + special depreciation claimed
	CurrentSpecialAmortization decimal.Decimal `json:"current_special_amortization"`
	TaxDepreciation            decimal.Decimal `json:"tax_depreciation"`
	TaxBenefit                 decimal.Decimal `json:"tax_benefit"`
	TaxableIncome              decimal.Decimal `json:"taxable_income"`
	TaxOnRentalIncome          decimal.Decimal `json:"tax_on_rental_income"`

	// Cash flow (operating, liquidation excluded)
	CashFlow           decimal.Decimal `json:"cash_flow"`
	CumulativeCashFlow decimal.Decimal `json:"cumulative_cash_flow"`

	// Value
	PropertyValue decimal.Decimal `json:"property_value"`
	Equity        decimal.Decimal `json:"equity"`
	ROI           decimal.Decimal `json:"roi"`
}

// CashFlowBeforeTax is the operating cash flow without the tax effect, based on actual debt service.
func (yr *YearlyResult) CashFlowBeforeTax() decimal.Decimal {
	return yr.RentalIncome.Sub(yr.InterestPayment).Sub(yr.RepaymentAmount).Sub(yr.OperatingExpenses)
}

// DebtService returns interest plus principal actually paid in the year
func (yr *YearlyResult) DebtService() decimal.Decimal {
	return yr.InterestPayment.Add(yr.RepaymentAmount)
}

// IsDebtFree returns true once both tranches are fully repaid or expired
func (yr *YearlyResult) IsDebtFree() bool {
	return yr.RemainingLoan.LessThanOrEqual(decimal.Zero)
}

// ReturnOnEquity is a snapshot of the accumulated return at a fixed holding horizon
type ReturnOnEquity struct {
	Year                 int             `json:"year"`
	ROE                  decimal.Decimal `json:"roe"`
	Equity               decimal.Decimal `json:"equity"`
	TotalReturn          decimal.Decimal `json:"total_return"`
	CashFlowReturn       decimal.Decimal `json:"cash_flow_return"`
	TaxBenefits          decimal.Decimal `json:"tax_benefits"`
	PropertyAppreciation decimal.Decimal `json:"property_appreciation"`
}

// MortgageIndicators summarizes the financing side of the purchase
type MortgageIndicators struct {
	TotalLoanAmount     decimal.Decimal `json:"total_loan_amount"`
	MonthlyPayment      decimal.Decimal `json:"monthly_payment"`
	TotalInterestPaid   decimal.Decimal `json:"total_interest_paid"`
	InterestPaid10Years decimal.Decimal `json:"interest_paid_10_years"`
}

// ResultsData is the full output of one projection
type ResultsData struct {
	YearlyResults      []YearlyResult     `json:"yearly_results"`
	TotalReturn        decimal.Decimal    `json:"total_return"`
	IRR                decimal.Decimal    `json:"irr"` // percent
	TotalCashFlow      decimal.Decimal    `json:"total_cash_flow"`
	FinalPropertyValue decimal.Decimal    `json:"final_property_value"`
	TotalInterestPaid  decimal.Decimal    `json:"total_interest_paid"`
	TotalTaxBenefits   decimal.Decimal    `json:"total_tax_benefits"`
	TotalPurchaseCosts decimal.Decimal    `json:"total_purchase_costs"`
	TotalInvestment    decimal.Decimal    `json:"total_investment_cost"`
	ReturnOnEquity     []ReturnOnEquity   `json:"return_on_equity"`
	MortgageIndicators MortgageIndicators `json:"mortgage_indicators"`
}

// FinalYear returns the last projected year, or nil for an empty projection
func (rd *ResultsData) FinalYear() *YearlyResult {
	if len(rd.YearlyResults) == 0 {
		return nil
	}
	return &rd.YearlyResults[len(rd.YearlyResults)-1]
}

// ROEAt returns the snapshot for the given horizon year
func (rd *ResultsData) ROEAt(year int) (ReturnOnEquity, bool) {
	for _, roe := range rd.ReturnOnEquity {
		if roe.Year == year {
			return roe, true
		}
	}
	return ReturnOnEquity{}, false
}

// MetricData aggregates one key metric over standard windows
type MetricData struct {
	Year1         decimal.Decimal `json:"year_1"`
	Sum10Years    decimal.Decimal `json:"sum_10_years"`
	Average10Year decimal.Decimal `json:"average_10_years"`
	TotalTerm     decimal.Decimal `json:"total_term"`
}

// KeyMetrics is the detailed metric breakdown shown next to the projection
type KeyMetrics struct {
	CashFlow        MetricData `json:"cash_flow"`
	TaxEffect       MetricData `json:"tax_effect"`
	CashFlowWithTax MetricData `json:"cash_flow_with_tax"`
	ROE             MetricData `json:"roe"`
}

// BreakEvenResult describes when cumulative cash flow (seeded with the initial investment) turns non-negative
type BreakEvenResult struct {
	// Year in the projection where the crossover happens (1-based)
	YearIndex int `json:"year_index"`

	// Fraction (0..1) of that year at which the crossover happens
	Fraction decimal.Decimal `json:"fraction_of_year"`

	// Fractional holding period, e.g. 17.25
	HoldingYears decimal.Decimal `json:"holding_years"`

	// Month within YearIndex (1..12)
	BreakEvenMonth int `json:"break_even_month"`
}

// AmortizationEntry is one month of an annuity loan schedule
type AmortizationEntry struct {
	Month     int             `json:"month"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	Balance   decimal.Decimal `json:"balance"` // after this month's payment
}
