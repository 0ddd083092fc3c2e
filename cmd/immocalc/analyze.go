package main

import (
	"fmt"

	"github.com/immocalc/property-calculator/internal/calculation"
	"github.com/immocalc/property-calculator/internal/config"
	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/immocalc/property-calculator/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newScheduleCmd() *cobra.Command {
	var scenarioName string
	cmd := &cobra.Command{
		Use:   "schedule <config-file>",
		Short: "Print the monthly amortization table of a scenario as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(args[0])
			if err != nil {
				return err
			}
			scenario, err := selectScenario(cfg, scenarioName)
			if err != nil {
				return err
			}
			schedules := calculation.NewCalculationEngine().ScheduleFor(scenario.Inputs)
			return output.WriteScheduleCSV(cmd.OutOrStdout(), scenario.Name, schedules)
		},
	}
	cmd.Flags().StringVarP(&scenarioName, "scenario", "s", "", "Scenario name (default: first scenario)")
	return cmd
}

func newSensitivityCmd() *cobra.Command {
	var scenarioName, format string
	cmd := &cobra.Command{
		Use:   "sensitivity <config-file>",
		Short: "Print the IRR grid over rent growth and interest rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(args[0])
			if err != nil {
				return err
			}
			scenario, err := selectScenario(cfg, scenarioName)
			if err != nil {
				return err
			}

			grid, err := calculation.NewCalculationEngine().RunSensitivity(cmd.Context(), scenario.Inputs, nil, nil)
			if err != nil {
				return fmt.Errorf("sensitivity analysis failed: %w", err)
			}

			var data []byte
			switch format {
			case "csv":
				data, err = output.SensitivityCSV(grid)
				if err != nil {
					return err
				}
			case "console":
				data = output.SensitivityTable(grid)
			default:
				return fmt.Errorf("%w: %q (want csv or console)", output.ErrUnsupportedFormat, format)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&scenarioName, "scenario", "s", "", "Scenario name (default: first scenario)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (csv, console)")
	return cmd
}

func newTaxRateCmd() *cobra.Command {
	var (
		income                string
		married, church, soli bool
		children              int
	)
	cmd := &cobra.Command{
		Use:   "tax-rate",
		Short: "Estimate the marginal income tax rate from a tax profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			annual, err := decimal.NewFromString(income)
			if err != nil {
				return fmt.Errorf("invalid --income %q: %w", income, err)
			}
			profile := domain.TaxProfile{
				AnnualIncome:  annual,
				MaritalStatus: "single",
				Children:      children,
				ChurchTax:     church,
				SolidarityTax: soli,
			}
			if married {
				profile.MaritalStatus = "married"
			}
			if err := config.ValidateTaxProfile(&profile); err != nil {
				return err
			}

			rate := calculation.NewCalculationEngine().MarginalTaxRate(profile)
			fmt.Fprintf(cmd.OutOrStdout(), "Estimated marginal tax rate: %s\n", output.FormatPercentage(rate))
			return nil
		},
	}
	cmd.Flags().StringVar(&income, "income", "", "Annual taxable income in EUR")
	cmd.Flags().BoolVar(&married, "married", false, "Joint assessment (splitting)")
	cmd.Flags().IntVar(&children, "children", 0, "Number of children")
	cmd.Flags().BoolVar(&church, "church", false, "Include church tax")
	cmd.Flags().BoolVar(&soli, "soli", true, "Include solidarity surcharge")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example <output-file>",
		Short: "Write an example configuration with two scenarios",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewInputParser().CreateExampleConfiguration()
			if err := output.SaveConfiguration(cfg, args[0]); err != nil {
				return fmt.Errorf("failed to write example configuration: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", args[0])
			return nil
		},
	}
}
