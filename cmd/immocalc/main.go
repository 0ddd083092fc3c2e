package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "immocalc",
		Short: "Project returns of a leveraged rental property purchase",
		Long: `immocalc projects amortization, tax effects, cash flow, equity and IRR
of German buy-to-let property scenarios and compares them.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newCalculateCmd(),
		newScheduleCmd(),
		newSensitivityCmd(),
		newTaxRateCmd(),
		newExampleCmd(),
		newServeCmd(),
	)
	return rootCmd
}
