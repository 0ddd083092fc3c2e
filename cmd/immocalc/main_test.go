package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/immocalc/property-calculator/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeExample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "example.yaml")
	out, err := execute(t, "example", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Example configuration written to")
	return path
}

func TestExampleAndCalculateJSON(t *testing.T) {
	path := writeExample(t)

	out, err := execute(t, "calculate", path, "--format", "json", "--stdout")
	require.NoError(t, err)

	var results domain.ScenarioComparison
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Len(t, results.Scenarios, 2)
	assert.NotEmpty(t, results.Recommendation.ScenarioName)
}

func TestCalculateWritesReportFile(t *testing.T) {
	path := writeExample(t)
	dir := t.TempDir()

	out, err := execute(t, "calculate", path, "--format", "csv", "--output-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".csv"))
}

func TestCalculateRejectsUnknownFormat(t *testing.T) {
	path := writeExample(t)

	_, err := execute(t, "calculate", path, "--format", "pdf", "--stdout")
	require.Error(t, err)
	assert.ErrorIs(t, err, output.ErrUnsupportedFormat)

	_, err = execute(t, "calculate", path, "--format", "all", "--stdout")
	assert.Error(t, err)
}

func TestCalculateMissingFile(t *testing.T) {
	_, err := execute(t, "calculate", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestScheduleCommand(t *testing.T) {
	path := writeExample(t)

	out, err := execute(t, "schedule", path, "--scenario", "Berlin special depreciation with KfW")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "Scenario,Tranche,Month,Year,Interest,Principal,Balance", lines[0])
	// 30 years primary plus 20 years subsidized
	assert.Len(t, lines, 1+360+240)
	assert.Contains(t, out, ",subsidized,")

	_, err = execute(t, "schedule", path, "--scenario", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `scenario "nope" not found`)
}

func TestSensitivityCommand(t *testing.T) {
	path := writeExample(t)

	out, err := execute(t, "sensitivity", path, "--format", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "RentGrowthRate,InterestRate,IRR,Rating", lines[0])
	assert.Len(t, lines, 1+6*7)

	_, err = execute(t, "sensitivity", path, "--format", "xml")
	assert.ErrorIs(t, err, output.ErrUnsupportedFormat)
}

func TestTaxRateCommand(t *testing.T) {
	out, err := execute(t, "tax-rate", "--income", "80000")
	require.NoError(t, err)
	assert.Equal(t, "Estimated marginal tax rate: 44.31%\n", out)

	_, err = execute(t, "tax-rate", "--income", "abc")
	assert.Error(t, err)

	_, err = execute(t, "tax-rate", "--income", "-1")
	assert.Error(t, err)
}

func TestCalculateDebugPrintsBreakdown(t *testing.T) {
	path := writeExample(t)

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"calculate", path, "--format", "console-lite", "--stdout", "--debug"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, stdout.String(), "PROPERTY SCENARIO SUMMARY")
	assert.Contains(t, stderr.String(), "PROJECTION BREAKDOWN: Berlin linear depreciation")
	assert.Contains(t, stderr.String(), "PROJECTION BREAKDOWN: Berlin special depreciation with KfW")
	assert.NotContains(t, stdout.String(), "PROJECTION BREAKDOWN")
}
