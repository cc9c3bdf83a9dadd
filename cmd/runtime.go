package cmd

import (
	"fmt"

	"nested-models/core/config"
	"nested-models/core/logger"
	"nested-models/core/metrics"
	"nested-models/core/model"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// environment is what every command builds from the configuration.
type environment struct {
	cfg      *config.Config
	logger   *zap.Logger
	runtime  *model.Runtime
	registry *prometheus.Registry
}

func loadEnvironment() (*environment, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	env := &environment{cfg: cfg, logger: logg}
	opts := []model.Option{model.WithLogger(logg), model.WithConfig(cfg.Model)}
	if cfg.Metrics.Enabled {
		env.registry = prometheus.NewRegistry()
		rec, err := metrics.New(env.registry, cfg.Metrics.Namespace)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		opts = append(opts, model.WithMetrics(rec))
	}
	env.runtime = model.NewRuntime(opts...)
	return env, nil
}
