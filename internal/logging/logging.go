package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/immocalc/property-calculator/internal/calculation"
	"github.com/rs/zerolog"
)

// New builds a zerolog logger. format "console" renders human readable lines,
// anything else writes JSON. Unknown levels fall back to info.
func New(w io.Writer, level, format string) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if strings.EqualFold(format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// Adapter exposes a zerolog logger through the calculation.Logger interface
type Adapter struct {
	logger zerolog.Logger
}

var _ calculation.Logger = (*Adapter)(nil)

// NewAdapter wraps l for the calculation engine
func NewAdapter(l zerolog.Logger) *Adapter {
	return &Adapter{logger: l.With().Str("component", "engine").Logger()}
}

func (a *Adapter) Debugf(format string, args ...any) {
	a.logger.Debug().Msgf(format, args...)
}

func (a *Adapter) Infof(format string, args ...any) {
	a.logger.Info().Msgf(format, args...)
}

func (a *Adapter) Warnf(format string, args ...any) {
	a.logger.Warn().Msgf(format, args...)
}

func (a *Adapter) Errorf(format string, args ...any) {
	a.logger.Error().Msgf(format, args...)
}
