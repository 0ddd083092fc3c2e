package output

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/immocalc/property-calculator/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for format names with no registered formatter.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// GenerateReport writes the requested format to a timestamped file in the working directory.
func GenerateReport(results *domain.ScenarioComparison, format string) error {
	_, err := GenerateReportTo(results, format, "")
	return err
}

// GenerateReportTo writes the requested format into dir and returns the written file names.
// The pseudo format "all" writes every registered formatter.
func GenerateReportTo(results *domain.ScenarioComparison, format, dir string) ([]string, error) {
	if results == nil {
		return nil, fmt.Errorf("no results to report")
	}
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, f := range builtInFormatters {
			name, err := WriteFormattedTo(dir, f, results, extensionFor(f.Name()))
			if err != nil {
				return files, fmt.Errorf("%s: %w", f.Name(), err)
			}
			files = append(files, name)
		}
		return files, nil
	}
	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	name, err := WriteFormattedTo(dir, f, results, extensionFor(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{name}, nil
}

// RenderReport formats results in memory, for stdout and HTTP responses.
func RenderReport(results *domain.ScenarioComparison, format string) ([]byte, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return f.Format(results)
}

// SaveConfiguration writes a configuration back out as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
