package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/immocalc/property-calculator/internal/calculation"
	"github.com/immocalc/property-calculator/internal/domain"
)

// ScheduleCSVExporter writes the monthly amortization table of every tranche per scenario.
type ScheduleCSVExporter struct{}

func (s ScheduleCSVExporter) Name() string { return "schedule-csv" }

func (s ScheduleCSVExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	engine := calculation.NewCalculationEngine()
	w := csv.NewWriter(buf)
	if err := w.Write(scheduleHeader); err != nil {
		return nil, err
	}
	for _, sc := range results.Scenarios {
		if err := writeScheduleRows(w, sc.Name, engine.ScheduleFor(sc.Inputs)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

var scheduleHeader = []string{"Scenario", "Tranche", "Month", "Year", "Interest", "Principal", "Balance"}

// WriteScheduleCSV writes the tranche tables of a single scenario.
func WriteScheduleCSV(out io.Writer, scenario string, schedules []domain.TrancheSchedule) error {
	w := csv.NewWriter(out)
	if err := w.Write(scheduleHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := writeScheduleRows(w, scenario, schedules); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func writeScheduleRows(w *csv.Writer, scenario string, schedules []domain.TrancheSchedule) error {
	for _, s := range schedules {
		for _, e := range s.Entries {
			row := []string{
				scenario,
				s.Name,
				intToString(e.Month),
				intToString((e.Month-1)/12 + 1),
				e.Interest.StringFixed(2),
				e.Principal.StringFixed(2),
				e.Balance.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("failed to write data row: %w", err)
			}
		}
	}
	return nil
}
