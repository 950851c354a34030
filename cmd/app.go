package cmd

import (
	"context"
	"fmt"

	"github.com/chrisdamba/outletplanner/internal/cache"
	"github.com/chrisdamba/outletplanner/internal/metrics"
	"github.com/chrisdamba/outletplanner/internal/models"
	"github.com/chrisdamba/outletplanner/internal/output"
	"github.com/chrisdamba/outletplanner/internal/planning"
	"github.com/chrisdamba/outletplanner/internal/repositories"
	"github.com/chrisdamba/outletplanner/internal/repositories/cached"
	"github.com/chrisdamba/outletplanner/internal/repositories/memory"
	"github.com/chrisdamba/outletplanner/internal/repositories/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// application holds everything one command invocation needs.
type application struct {
	config        *models.Config
	logger        *zap.Logger
	metrics       *metrics.Collector
	configuration repositories.ConfigurationRepository
	scenarios     repositories.ScenarioRepository
	service       *planning.Service
	publisher     *output.Publisher
	pool          *pgxpool.Pool
	closers       []func() error
}

func newApplication(ctx context.Context, config *models.Config, logger *zap.Logger) (*application, error) {
	app := &application{
		config:  config,
		logger:  logger,
		metrics: metrics.NewCollector(logger),
	}
	if err := app.openStores(ctx); err != nil {
		app.Close()
		return nil, err
	}

	provider, err := app.wrapCache(ctx, app.configuration)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.service = planning.NewService(provider, app.scenarios, logger, app.metrics)

	if config.OutputDestination != "" && config.OutputDestination != output.DestinationNone {
		dest, err := output.New(ctx, config, logger)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to create output destination: %w", err)
		}
		app.publisher = output.NewPublisher(dest, config.OutputDestination, config.KafkaTopicPrefix, app.metrics, logger)
		app.closers = append(app.closers, app.publisher.Close)
	}
	return app, nil
}

func (a *application) openStores(ctx context.Context) error {
	switch a.config.Provider {
	case "memory", "":
		provider := memory.NewProvider()
		if a.config.DefaultsFile != "" {
			if err := provider.LoadFile(a.config.DefaultsFile); err != nil {
				return err
			}
		}
		a.configuration = provider
		a.scenarios = memory.NewScenarioRepository()
	case "postgres":
		pool, err := postgres.Connect(ctx, a.config.Database.DSN(), a.config.Database.MaxConns)
		if err != nil {
			return err
		}
		a.pool = pool
		a.closers = append(a.closers, func() error { pool.Close(); return nil })
		a.configuration = postgres.NewConfigurationRepository(pool)
		a.scenarios = postgres.NewScenarioRepository(pool)
	default:
		return fmt.Errorf("unknown provider %q", a.config.Provider)
	}

	if a.config.ScenariosFile != "" {
		scenarios, err := memory.ReadScenariosFile(a.config.ScenariosFile)
		if err != nil {
			return err
		}
		if err := a.scenarios.BulkCreate(ctx, scenarios); err != nil {
			return fmt.Errorf("failed to store scenarios: %w", err)
		}
		a.logger.Debug("scenarios loaded", zap.String("file", a.config.ScenariosFile), zap.Int("count", len(scenarios)))
	}
	return nil
}

func (a *application) wrapCache(ctx context.Context, provider planning.ConfigurationProvider) (planning.ConfigurationProvider, error) {
	var c cache.Cache
	switch a.config.Cache.Backend {
	case "none", "":
		return provider, nil
	case "memory":
		c = cache.NewMemory(a.config.Cache.TTL)
	case "redis":
		r, err := cache.NewRedis(ctx, a.config.Cache.RedisAddr, a.config.Cache.RedisPassword, a.config.Cache.RedisDB, "outletplanner")
		if err != nil {
			return nil, err
		}
		c = r
	default:
		return nil, fmt.Errorf("unknown cache backend %q", a.config.Cache.Backend)
	}
	a.closers = append(a.closers, c.Close)
	return cached.NewProvider(provider, c, a.config.Cache.TTL, a.metrics, a.logger), nil
}

// publish sends a result to the configured destination, if any.
func (a *application) publish(calculation, scenarioID string, result any) error {
	if a.publisher == nil {
		return nil
	}
	return a.publisher.Publish(calculation, scenarioID, result)
}

// Close releases resources in reverse order of acquisition and writes
// the metrics textfile when configured.
func (a *application) Close() error {
	var err error
	for i := len(a.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, a.closers[i]())
	}
	a.closers = nil
	if a.config.MetricsTextfile != "" {
		err = multierr.Append(err, a.metrics.WriteTextfile(a.config.MetricsTextfile))
	}
	return err
}
