package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/immocalc/property-calculator/internal/calculation"
	"github.com/immocalc/property-calculator/internal/config"
	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/immocalc/property-calculator/internal/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// maxSensitivityAxis caps each axis of a sensitivity grid
const maxSensitivityAxis = 50

// ProjectionService validates requests, consults the result cache and runs the engine.
// Cache failures are logged and never fail a calculation.
type ProjectionService struct {
	engine *calculation.CalculationEngine
	cache  repository.CacheRepository
	ttl    time.Duration
	logger zerolog.Logger
}

// NewProjectionService wires the engine to a cache. A nil cache disables caching.
func NewProjectionService(engine *calculation.CalculationEngine, cache repository.CacheRepository, ttl time.Duration, logger zerolog.Logger) *ProjectionService {
	if cache == nil {
		cache = repository.NopCache{}
	}
	return &ProjectionService{
		engine: engine,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// SensitivityRequest varies rent growth and primary interest around a base set of inputs.
// Empty axes use the default grid.
type SensitivityRequest struct {
	Inputs          domain.PropertyInputs `json:"inputs"`
	RentGrowthRates []decimal.Decimal     `json:"rent_growth_rates,omitempty"`
	InterestRates   []decimal.Decimal     `json:"interest_rates,omitempty"`
}

// Calculate projects a single scenario
func (s *ProjectionService) Calculate(ctx context.Context, scenario domain.Scenario) (*domain.ScenarioSummary, error) {
	if err := prepareInputs(&scenario.Inputs); err != nil {
		return nil, err
	}
	if scenario.Name == "" {
		scenario.Name = "scenario"
	}
	return cached(ctx, s, "calculate", scenario, func() (*domain.ScenarioSummary, error) {
		return s.engine.RunScenario(ctx, &scenario)
	})
}

// Compare projects every scenario of a configuration and recommends one
func (s *ProjectionService) Compare(ctx context.Context, cfg domain.Configuration) (*domain.ScenarioComparison, error) {
	parser := config.NewInputParser()
	parser.ApplyDefaults(&cfg)
	if err := parser.ValidateConfiguration(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidInputs, err)
	}
	return cached(ctx, s, "compare", cfg, func() (*domain.ScenarioComparison, error) {
		return s.engine.RunScenariosContext(ctx, &cfg)
	})
}

// Sensitivity computes the IRR grid
func (s *ProjectionService) Sensitivity(ctx context.Context, req SensitivityRequest) (*domain.SensitivityGrid, error) {
	if err := prepareInputs(&req.Inputs); err != nil {
		return nil, err
	}
	if len(req.RentGrowthRates) > maxSensitivityAxis || len(req.InterestRates) > maxSensitivityAxis {
		return nil, fmt.Errorf("%w: at most %d rates per sensitivity axis", config.ErrInvalidInputs, maxSensitivityAxis)
	}
	for _, rate := range append(append([]decimal.Decimal(nil), req.RentGrowthRates...), req.InterestRates...) {
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
			return nil, fmt.Errorf("%w: sensitivity rates must be between 0 and 100", config.ErrInvalidInputs)
		}
	}
	return cached(ctx, s, "sensitivity", req, func() (*domain.SensitivityGrid, error) {
		return s.engine.RunSensitivity(ctx, req.Inputs, req.RentGrowthRates, req.InterestRates)
	})
}

// Schedule returns the monthly amortization tables of the financing
func (s *ProjectionService) Schedule(ctx context.Context, inputs domain.PropertyInputs) ([]domain.TrancheSchedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := prepareInputs(&inputs); err != nil {
		return nil, err
	}
	return s.engine.ScheduleFor(inputs), nil
}

// MarginalTaxRate estimates the personal marginal rate in percent
func (s *ProjectionService) MarginalTaxRate(profile domain.TaxProfile) (decimal.Decimal, error) {
	if err := config.ValidateTaxProfile(&profile); err != nil {
		return decimal.Zero, err
	}
	return s.engine.MarginalTaxRate(profile), nil
}

func prepareInputs(inputs *domain.PropertyInputs) error {
	config.ApplyInputDefaults(inputs)
	return config.ValidateInputs(inputs)
}

// CacheKey derives a stable key from the canonical JSON encoding of a request
func CacheKey(kind string, request any) (string, error) {
	data, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to encode cache key: %w", err)
	}
	return fmt.Sprintf("%s:%016x", kind, xxhash.Sum64(data)), nil
}

// cached returns the stored result for request or computes and stores it
func cached[T any](ctx context.Context, s *ProjectionService, kind string, request any, compute func() (T, error)) (T, error) {
	var zero T
	key, err := CacheKey(kind, request)
	if err != nil {
		s.logger.Warn().Err(err).Str("kind", kind).Msg("cache key unavailable")
		return compute()
	}

	data, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		var hit T
		jsonErr := json.Unmarshal(data, &hit)
		if jsonErr == nil {
			s.logger.Debug().Str("key", key).Msg("cache hit")
			return hit, nil
		}
		s.logger.Warn().Err(jsonErr).Str("key", key).Msg("discarding undecodable cache entry")
	case errors.Is(err, repository.ErrCacheMiss):
		s.logger.Debug().Str("key", key).Msg("cache miss")
	default:
		s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}

	result, err := compute()
	if err != nil {
		return zero, err
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to encode result for cache")
		return result, nil
	}
	if err := s.cache.Set(ctx, key, encoded, s.ttl); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return result, nil
}
