package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/immocalc/property-calculator/internal/calculation"
	"github.com/immocalc/property-calculator/internal/config"
	"github.com/immocalc/property-calculator/internal/logging"
	"github.com/immocalc/property-calculator/internal/repository"
	"github.com/immocalc/property-calculator/internal/server"
	"github.com/immocalc/property-calculator/internal/service"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const redisPingTimeout = 3 * time.Second

func newServeCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context(), cfgPath)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to a settings file (YAML, JSON or TOML)")
	return cmd
}

func runServer(ctx context.Context, cfgPath string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
	}

	settings, err := config.LoadSettings(cfgPath)
	if err != nil {
		return err
	}

	logger := logging.New(os.Stdout, settings.Log.Level, settings.Log.Format)

	cache, closeCache := newCache(ctx, settings.Cache, logger)
	defer closeCache()

	engine := calculation.NewCalculationEngine()
	engine.SetLogger(logging.NewAdapter(logger))
	svc := service.NewProjectionService(engine, cache, settings.Cache.TTL, logger)

	api := server.NewWebAPI(server.Config{
		Addr:            settings.Server.Addr,
		ReadTimeout:     settings.Server.ReadTimeout,
		WriteTimeout:    settings.Server.WriteTimeout,
		ShutdownTimeout: settings.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Projector: svc,
			Logger:    logger,
		},
	})
	return api.Start()
}

// newCache builds the configured backend. An unreachable Redis is logged and kept,
// since cache failures never fail a calculation.
func newCache(ctx context.Context, s config.CacheSettings, logger zerolog.Logger) (repository.CacheRepository, func()) {
	switch s.Backend {
	case config.CacheRedis:
		rc := repository.NewRedisCache(repository.RedisOptions{
			Addr:     s.Redis.Addr,
			Password: s.Redis.Password,
			DB:       s.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := rc.Ping(pingCtx); err != nil {
			logger.Warn().Err(err).Str("addr", s.Redis.Addr).Msg("redis unreachable, results will not be cached until it recovers")
		} else {
			logger.Info().Str("addr", s.Redis.Addr).Msg("using redis result cache")
		}
		return rc, func() {
			if err := rc.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to close redis client")
			}
		}
	case config.CacheMemory:
		logger.Info().Msg("using in-memory result cache")
		return repository.NewMemoryCache(), func() {}
	default:
		logger.Info().Msg("result cache disabled")
		return repository.NopCache{}, func() {}
	}
}
