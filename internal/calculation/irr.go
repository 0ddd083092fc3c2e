package calculation

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	irrDefaultGuess = 0.10
	irrTolerance    = 1e-6
	irrMaxIter      = 100

	// irrMaxRate caps accepted Newton steps; rates at or below -1 are undefined
	irrMaxRate = 1e6
)

// SolveIRR finds the periodic rate r with NPV(r) = Σ CF[j]/(1+r)^j = 0 by Newton-Raphson.
// Index 0 is the investment at time zero. The result is a fraction (0.08 = 8%).
//
// Iteration stops when |NPV| or the step drops below 1e-6, or after 100 iterations,
// in which case the last rate is returned. Series with several sign changes can have
// several roots; the root found depends on the guess. A vanishing derivative, a
// non-finite step or a step outside (-1, 1e6] also ends the iteration with the last
// accepted rate.
func SolveIRR(cashFlows []float64, guess float64) float64 {
	if len(cashFlows) == 0 || math.IsNaN(guess) || math.IsInf(guess, 0) {
		return 0
	}

	rate := guess
	for iter := 0; iter < irrMaxIter; iter++ {
		npv, dnpv := npvAndDeriv(rate, cashFlows)
		if math.IsNaN(npv) || math.IsInf(npv, 0) {
			return rate
		}
		if math.Abs(npv) < irrTolerance {
			return rate
		}
		if dnpv == 0 || math.IsNaN(dnpv) || math.IsInf(dnpv, 0) {
			return rate
		}

		next := rate - npv/dnpv
		if math.IsNaN(next) || math.IsInf(next, 0) || next <= -1 || next > irrMaxRate {
			return rate
		}
		if math.Abs(next-rate) < irrTolerance {
			return next
		}
		rate = next
	}

	return rate
}

// npvAndDeriv returns (NPV, dNPV/dr)
//
//	NPV   = Σ CF_j / (1+r)^j
//	dNPV  = Σ −j · CF_j / (1+r)^(j+1)
func npvAndDeriv(rate float64, cashFlows []float64) (float64, float64) {
	var npv, deriv float64
	for j, cf := range cashFlows {
		factor := math.Pow(1.0+rate, float64(j))
		npv += cf / factor
		deriv -= float64(j) * cf / (factor * (1.0 + rate))
	}
	return npv, deriv
}

// IRRPercent converts a decimal cash-flow series and returns the IRR in percent
func IRRPercent(cashFlows []decimal.Decimal) decimal.Decimal {
	flows := make([]float64, len(cashFlows))
	for i, cf := range cashFlows {
		flows[i] = cf.InexactFloat64()
	}
	pct := SolveIRR(flows, irrDefaultGuess) * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(pct).Round(internalPrecision)
}
