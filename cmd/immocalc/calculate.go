package main

import (
	"fmt"

	"github.com/immocalc/property-calculator/internal/calculation"
	"github.com/immocalc/property-calculator/internal/config"
	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/immocalc/property-calculator/internal/logging"
	"github.com/immocalc/property-calculator/internal/output"
	"github.com/spf13/cobra"
)

type calculateCmd struct {
	format    string
	stdout    bool
	debug     bool
	outputDir string
}

func newCalculateCmd() *cobra.Command {
	cc := &calculateCmd{}
	cmd := &cobra.Command{
		Use:   "calculate <config-file>",
		Short: "Run every scenario of a configuration and write a report",
		Args:  cobra.ExactArgs(1),
		RunE:  cc.run,
	}

	cmd.Flags().StringVarP(&cc.format, "format", "f", "console", "Report format (console, console-lite, csv, detailed-csv, schedule-csv, json, html, all)")
	cmd.Flags().BoolVar(&cc.stdout, "stdout", false, "Print the report instead of writing a file")
	cmd.Flags().BoolVar(&cc.debug, "debug", false, "Log per-scenario calculation details to stderr")
	cmd.Flags().StringVarP(&cc.outputDir, "output-dir", "o", "", "Directory for report files (default: working directory)")
	return cmd
}

func (cc *calculateCmd) run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration(args[0])
	if err != nil {
		return err
	}

	engine := calculation.NewCalculationEngine()
	if cc.debug {
		engine.Debug = true
		engine.SetLogger(logging.NewAdapter(logging.New(cmd.ErrOrStderr(), "debug", "console")))
	}

	results, err := engine.RunScenariosContext(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("calculation failed: %w", err)
	}

	if cc.stdout {
		if output.NormalizeFormatName(cc.format) == "all" {
			return fmt.Errorf("--stdout needs a single format")
		}
		data, err := output.RenderReport(results, cc.format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	files, err := output.GenerateReportTo(results, cc.format, cc.outputDir)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	for _, f := range files {
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", f)
	}
	return nil
}

func loadConfiguration(path string) (*domain.Configuration, error) {
	cfg, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func selectScenario(cfg *domain.Configuration, name string) (*domain.Scenario, error) {
	scenario, ok := cfg.FindScenario(name)
	if !ok {
		return nil, fmt.Errorf("scenario %q not found", name)
	}
	return scenario, nil
}
