package main

import (
	"fmt"
	"os"

	calc "github.com/immocalc/property-calculator/internal/calculation"
	"github.com/immocalc/property-calculator/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_break_even <config-file>")
		return
	}
	f := os.Args[1]
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(f)
	if err != nil {
		panic(err)
	}
	engine := calc.NewCalculationEngine()
	res, err := engine.RunScenarios(cfg)
	if err != nil {
		panic(err)
	}
	if len(res.Scenarios) < 1 {
		fmt.Println("no scenarios")
		return
	}

	// Find the minimum projection length across scenarios
	minLen := -1
	for _, s := range res.Scenarios {
		if n := len(s.Results.YearlyResults); minLen == -1 || n < minLen {
			minLen = n
		}
	}
	if minLen <= 0 {
		fmt.Println("no projection data")
		return
	}

	header := "Year"
	for i := range res.Scenarios {
		header += fmt.Sprintf(",S%d_Rent,S%d_Debt,S%d_Tax,S%d_CashFlow,S%d_Cumulative", i+1, i+1, i+1, i+1, i+1)
	}
	fmt.Println(header)

	for idx := 0; idx < minLen; idx++ {
		row := fmt.Sprintf("%d", idx+1)
		for sidx := range res.Scenarios {
			y := res.Scenarios[sidx].Results.YearlyResults[idx]
			row += fmt.Sprintf(",%s,%s,%s,%s,%s", y.RentalIncome.StringFixed(0), y.RemainingLoan.StringFixed(0), y.TaxBenefit.StringFixed(0), y.CashFlow.StringFixed(0), y.CumulativeCashFlow.StringFixed(0))
		}
		fmt.Println(row)
	}

	for _, s := range res.Scenarios {
		if s.BreakEven == nil {
			fmt.Printf("\n%s: payback not reached\n", s.Name)
			continue
		}
		fmt.Printf("\n%s: payback after %s years (year %d)\n", s.Name, s.BreakEven.HoldingYears.StringFixed(2), s.BreakEven.YearIndex)
	}

	// If at least two scenarios, compare cumulative cash flow of the first two
	if len(res.Scenarios) >= 2 {
		a := res.Scenarios[0].Results.YearlyResults
		b := res.Scenarios[1].Results.YearlyResults
		for i := 0; i < len(a) && i < len(b); i++ {
			cumA, cumB := a[i].CumulativeCashFlow, b[i].CumulativeCashFlow
			fmt.Printf("Cumulative Year %d: cumA=%s cumB=%s diff=%s\n", a[i].Year, cumA.StringFixed(0), cumB.StringFixed(0), cumA.Sub(cumB).StringFixed(0))
		}
		be, err := calc.CalculateCumulativeBreakEven(a, b)
		fmt.Printf("\nBreakEven: %+v, err=%v\n", be, err)
	}
}
