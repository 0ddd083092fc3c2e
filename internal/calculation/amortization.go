package calculation

import (
	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// internalPrecision bounds the scale of intermediate money values so that
// month-by-month products don't accumulate unbounded digits.
const internalPrecision = 10

var (
	hundred     = decimal.NewFromInt(100)
	twelve      = decimal.NewFromInt(12)
	monthsPerYr = 12
)

// MonthlyPayment returns the constant annuity payment: principal * (interest + repayment) / 100 / 12.
// Interest and repayment are annual percentages.
func MonthlyPayment(principal, interestRatePct, repaymentRatePct decimal.Decimal) decimal.Decimal {
	if principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return principal.Mul(interestRatePct.Add(repaymentRatePct)).Div(hundred).Div(twelve).Round(internalPrecision)
}

// MonthlyInterestRate converts an annual percentage to a fractional monthly rate
func MonthlyInterestRate(interestRatePct decimal.Decimal) decimal.Decimal {
	return interestRatePct.Div(hundred).Div(twelve)
}

// amortizationStep splits one month's payment into interest and principal.
// The principal reduction is clipped to [0, balance].
func amortizationStep(balance, payment, monthlyRate decimal.Decimal) (interest, principal decimal.Decimal) {
	interest = balance.Mul(monthlyRate).Round(internalPrecision)
	principal = payment.Sub(interest)
	if principal.IsNegative() {
		principal = decimal.Zero
	}
	if principal.GreaterThan(balance) {
		principal = balance
	}
	return interest, principal
}

// RemainingBalance replays the loan from month zero and returns the balance after monthsElapsed payments.
// It stops as soon as the balance reaches zero.
func RemainingBalance(principal, payment, monthlyRate decimal.Decimal, monthsElapsed int) decimal.Decimal {
	if principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	balance := principal
	for m := 0; m < monthsElapsed; m++ {
		_, reduction := amortizationStep(balance, payment, monthlyRate)
		balance = balance.Sub(reduction)
		if balance.IsZero() {
			break
		}
	}
	return balance
}

// AmortizationSchedule is the month-indexed table of one loan tranche, built once.
// A tranche with no principal or no term is a no-op: zero payment, zero balance.
type AmortizationSchedule struct {
	Principal      decimal.Decimal
	MonthlyPayment decimal.Decimal
	MonthlyRate    decimal.Decimal
	TermYears      int
	entries        []domain.AmortizationEntry
}

// NewAmortizationSchedule simulates every month of the tranche's term
func NewAmortizationSchedule(loan domain.LoanTerms) *AmortizationSchedule {
	s := &AmortizationSchedule{
		MonthlyRate: MonthlyInterestRate(loan.InterestRate),
		TermYears:   loan.TermYears,
	}
	if loan.Amount.LessThanOrEqual(decimal.Zero) || loan.TermYears <= 0 {
		s.Principal = decimal.Zero
		s.MonthlyPayment = decimal.Zero
		s.TermYears = 0
		return s
	}

	s.Principal = loan.Amount
	s.MonthlyPayment = MonthlyPayment(loan.Amount, loan.InterestRate, loan.RepaymentRate)

	months := loan.TermYears * monthsPerYr
	s.entries = make([]domain.AmortizationEntry, months)
	balance := loan.Amount
	for m := 0; m < months; m++ {
		entry := domain.AmortizationEntry{Month: m + 1, Interest: decimal.Zero, Principal: decimal.Zero}
		if balance.IsPositive() {
			interest, reduction := amortizationStep(balance, s.MonthlyPayment, s.MonthlyRate)
			balance = balance.Sub(reduction)
			entry.Interest = interest
			entry.Principal = reduction
		}
		entry.Balance = balance
		s.entries[m] = entry
	}
	return s
}

// IsNoop reports whether the tranche contributes nothing
func (s *AmortizationSchedule) IsNoop() bool {
	return len(s.entries) == 0
}

// TermMonths is the number of scheduled payments
func (s *AmortizationSchedule) TermMonths() int {
	return len(s.entries)
}

// ActiveInYear reports whether year (1-based) lies within the tranche's term
func (s *AmortizationSchedule) ActiveInYear(year int) bool {
	return !s.IsNoop() && year >= 1 && year <= s.TermYears
}

// Entries returns a copy of the monthly table
func (s *AmortizationSchedule) Entries() []domain.AmortizationEntry {
	out := make([]domain.AmortizationEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// BalanceAfter returns the balance after the given number of payments.
// Past the term the tranche has dropped out and contributes zero.
func (s *AmortizationSchedule) BalanceAfter(months int) decimal.Decimal {
	switch {
	case s.IsNoop():
		return decimal.Zero
	case months <= 0:
		return s.Principal
	case months > len(s.entries):
		return decimal.Zero
	}
	return s.entries[months-1].Balance
}

// YearTotals sums interest and principal over the 12 months of year (1-based)
func (s *AmortizationSchedule) YearTotals(year int) (interest, principal decimal.Decimal) {
	interest, principal = decimal.Zero, decimal.Zero
	if !s.ActiveInYear(year) {
		return interest, principal
	}
	start := (year - 1) * monthsPerYr
	for m := start; m < start+monthsPerYr && m < len(s.entries); m++ {
		interest = interest.Add(s.entries[m].Interest)
		principal = principal.Add(s.entries[m].Principal)
	}
	return interest, principal
}

// ScheduledPayment returns the monthly payment due in year, zero once the term has elapsed
func (s *AmortizationSchedule) ScheduledPayment(year int) decimal.Decimal {
	if !s.ActiveInYear(year) {
		return decimal.Zero
	}
	return s.MonthlyPayment
}

// ToDomain exposes the schedule for reports
func (s *AmortizationSchedule) ToDomain(name string) domain.TrancheSchedule {
	return domain.TrancheSchedule{
		Name:           name,
		Principal:      s.Principal,
		MonthlyPayment: s.MonthlyPayment,
		MonthlyRate:    s.MonthlyRate,
		TermMonths:     s.TermMonths(),
		Entries:        s.Entries(),
	}
}

// BuildSchedules returns the primary and (when enabled) subsidized tranche schedules
func BuildSchedules(inputs domain.PropertyInputs) (primary, subsidized *AmortizationSchedule) {
	return NewAmortizationSchedule(inputs.Loan), NewAmortizationSchedule(inputs.ActiveSubsidizedLoan())
}
