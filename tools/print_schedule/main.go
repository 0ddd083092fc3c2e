package main

import (
	"fmt"
	"os"

	"github.com/immocalc/property-calculator/internal/calculation"
	"github.com/immocalc/property-calculator/internal/config"
	"github.com/shopspring/decimal"
)

// print_schedule prints the yearly roll-up of every tranche and checks it against
// replaying the loan month by month.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: print_schedule <config-file> [scenario]")
		return
	}
	cfg, err := config.NewInputParser().LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	name := ""
	if len(os.Args) > 2 {
		name = os.Args[2]
	}
	scenario, ok := cfg.FindScenario(name)
	if !ok {
		fmt.Printf("scenario %q not found\n", name)
		os.Exit(1)
	}

	ce := calculation.NewCalculationEngine()
	for _, s := range ce.ScheduleFor(scenario.Inputs) {
		fmt.Printf("%s tranche: principal=%s payment=%s months=%d\n", s.Name, s.Principal.StringFixed(2), s.MonthlyPayment.StringFixed(2), s.TermMonths)
		fmt.Println("Year,Interest,Principal,Balance,Replayed,Match")

		interest, principal := decimal.Zero, decimal.Zero
		for _, e := range s.Entries {
			interest = interest.Add(e.Interest)
			principal = principal.Add(e.Principal)
			if e.Month%12 != 0 {
				continue
			}
			replayed := calculation.RemainingBalance(s.Principal, s.MonthlyPayment, s.MonthlyRate, e.Month)
			fmt.Printf("%d,%s,%s,%s,%s,%t\n", e.Month/12, interest.StringFixed(2), principal.StringFixed(2), e.Balance.StringFixed(2), replayed.StringFixed(2), replayed.Equal(e.Balance))
			interest, principal = decimal.Zero, decimal.Zero
		}
		fmt.Println()
	}
}
