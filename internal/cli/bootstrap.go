package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/limchunyik/wca-psych-sheet-generator/internal/adapters/provider"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/adapters/render"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/adapters/repository"
	service "github.com/limchunyik/wca-psych-sheet-generator/internal/app"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/config"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/roster"
	"github.com/limchunyik/wca-psych-sheet-generator/pkg/logger"
	"github.com/limchunyik/wca-psych-sheet-generator/pkg/metrics"
)

// session holds what a command needs once configuration is resolved.
type session struct {
	cfg     *config.Config
	svc     *service.Service
	closers []func() error
}

func (r *session) close(ctx context.Context) {
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			logger.Get().Warn(ctx, "cleanup failed", logger.Error(err))
		}
	}
	if r.cfg != nil && r.cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(r.cfg.MetricsFile); err != nil {
			logger.Get().Warn(ctx, "metrics export failed", logger.Error(err))
		}
	}
}

func (c *CLI) bootstrap(ctx context.Context) error {
	cfg, err := config.Load(ctx, c.flags.configPath)
	if err != nil {
		return err
	}
	if c.flags.logLevel != "" {
		cfg.LogLevel = c.flags.logLevel
	}
	if c.flags.store != "" {
		cfg.StoreBackend = c.flags.store
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	if err := logger.Init(logger.WithOutput(c.stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	rt := &session{cfg: cfg}
	c.rt = rt

	store, closeStore, err := c.openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if closeStore != nil {
		rt.closers = append(rt.closers, closeStore)
	}

	httpClient := c.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	client := provider.NewClient(cfg.ProviderBaseURL,
		provider.WithHTTPClient(httpClient),
		provider.WithTimeout(cfg.HTTPTimeout()),
		provider.WithUserAgent(cfg.UserAgent),
	)
	retrying := provider.NewRetrying(client,
		provider.WithMaxRetries(cfg.MaxRetries),
		provider.WithBaseDelay(cfg.RetryBaseDelay()),
	)

	r := roster.New(store, service.NewValidator(client))
	rt.svc = service.New(
		service.WithLogger(log.Named("service")),
		service.WithRoster(r),
		service.WithFetcher(retrying),
		service.WithProgress(render.NewProgressWriter(c.stderr)),
	)
	if err := rt.svc.Load(ctx); err != nil {
		return err
	}

	log.Debug(ctx, "ready",
		logger.String("store", cfg.StoreBackend),
		logger.String("provider", cfg.ProviderBaseURL),
		logger.Int("max_retries", cfg.MaxRetries),
	)
	return nil
}

func (c *CLI) openStore(ctx context.Context, cfg *config.Config) (repository.Store, func() error, error) {
	if c.store != nil {
		return c.store, nil, nil
	}
	switch cfg.StoreBackend {
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		s, err := repository.NewRedisStore(ctx, &repository.RedisConfig{RedisClient: client}, repository.WithKey(cfg.StoreKey))
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return s, client.Close, nil
	case config.StoreMemory:
		return repository.NewMemoryStore(), nil, nil
	default:
		return repository.NewFileStore(cfg.StorePath), nil, nil
	}
}
