package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	calc "github.com/immocalc/property-calculator/internal/calculation"
	"github.com/immocalc/property-calculator/internal/domain"
)

// HTMLFormatter produces a self-contained HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":      FormatCurrency,
	"currWhole": FormatCurrencyWhole,
	"pct":       FormatPercentage,
	"payback":   paybackLabel,
	"add":       func(i, j int) int { return i + j },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

// chartSeries is the per-scenario data embedded for client-side charts
type chartSeries struct {
	Name       string   `json:"name"`
	Years      []int    `json:"years"`
	Cumulative []string `json:"cumulative_cash_flow"`
	Equity     []string `json:"equity"`
}

func (h HTMLFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	rec := AnalyzeScenarios(results)

	// Cumulative cash flow crossover between the first two scenarios
	var crossover *domain.BreakEvenResult
	if len(results.Scenarios) >= 2 {
		projA := results.Scenarios[0].Results.YearlyResults
		projB := results.Scenarios[1].Results.YearlyResults
		if be, err := calc.CalculateCumulativeBreakEven(projA, projB); err == nil && be != nil {
			crossover = be
		}
	}

	series := make([]chartSeries, 0, len(results.Scenarios))
	for _, sc := range results.Scenarios {
		s := chartSeries{Name: sc.Name}
		for _, yr := range sc.Results.YearlyResults {
			s.Years = append(s.Years, yr.Year)
			s.Cumulative = append(s.Cumulative, yr.CumulativeCashFlow.StringFixed(2))
			s.Equity = append(s.Equity, yr.Equity.StringFixed(2))
		}
		series = append(series, s)
	}

	data := struct {
		*domain.ScenarioComparison
		Recommendation domain.Recommendation
		Ranking        []RankedScenario
		Assumptions    []string
		Crossover      *domain.BreakEvenResult
		Series         []chartSeries
	}{results, rec, RankScenarios(results), assumptionsFor(results), crossover, series}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
