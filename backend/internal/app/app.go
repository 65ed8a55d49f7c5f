// Package app wires configuration, tool collaborators, the registry and the
// dispatcher together. Both the HTTP server and toolctl start from here.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"aiotoolsuite/backend/internal/adapter"
	"aiotoolsuite/backend/internal/catalog"
	"aiotoolsuite/backend/internal/dispatch"
	"aiotoolsuite/backend/internal/ratecache"
	"aiotoolsuite/backend/internal/registry"
	"aiotoolsuite/backend/internal/schema"
	"aiotoolsuite/backend/internal/tools"
	"aiotoolsuite/backend/pkg/config"
	apperrors "aiotoolsuite/backend/pkg/errors"
)

// App is the assembled tool suite
type App struct {
	Config     *config.Config
	Registry   *registry.Registry
	Dispatcher *dispatch.Dispatcher
	Validator  *schema.Validator

	logger  *zap.Logger
	closers []func() error
}

// Options tweak assembly for callers that need something other than the
// configured collaborators
type Options struct {
	// Descriptors replaces the built-in catalog
	Descriptors []catalog.ToolDescriptor
	// SkipWarm disables warm-up regardless of configuration
	SkipWarm bool
}

// New assembles the suite from cfg. Optional collaborators that are not
// configured, or not reachable, leave their tools unloadable instead of
// failing startup.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger, opts Options) (*App, error) {
	a := &App{Config: cfg, logger: log}

	descriptors := opts.Descriptors
	if descriptors == nil {
		descriptors = catalog.All(a.buildDeps(ctx))
	}

	overrides, err := catalog.LoadOverrides(cfg.CatalogOverrides)
	if err != nil {
		a.Close()
		return nil, err
	}
	descriptors, err = overrides.Apply(descriptors)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Registry, err = registry.New(catalog.Categories(), descriptors)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to build tool registry: %w", err)
	}

	a.Validator, err = schema.Compile(a.Registry.Descriptors())
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Dispatcher = dispatch.New(a.Registry, dispatch.NewLogicCache(), log.Named("dispatch"))

	if cfg.WarmTools && !opts.SkipWarm {
		if err := a.Dispatcher.Warm(ctx, cfg.WarmConcurrency); err != nil {
			a.Close()
			return nil, err
		}
	}

	log.Info("Tool suite ready",
		zap.Int("tools", a.Registry.Len()),
		zap.Int("categories", len(a.Registry.Categories())),
		zap.Bool("ai_enabled", cfg.AIEnabled()),
	)
	return a, nil
}

func (a *App) buildDeps(ctx context.Context) tools.Deps {
	cfg := a.Config
	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}

	deps := tools.Deps{
		HTTPClient:    httpClient,
		RatesURL:      cfg.ExchangeRateURL,
		RatesTTL:      cfg.RateCacheTTL,
		FFmpegPath:    cfg.FFmpegPath,
		MaxAudioBytes: cfg.MaxAudioBytes,
	}

	if cfg.RedisAddr != "" {
		rc, err := ratecache.NewRedisCache(ctx, cfg.RedisAddr)
		if err != nil {
			a.logger.Warn("Redis unavailable, keeping exchange rates in memory", zap.Error(err))
		} else {
			deps.Rates = rc
			a.closers = append(a.closers, rc.Close)
		}
	}
	if deps.Rates == nil {
		deps.Rates = ratecache.NewMemoryCache()
	}

	if cfg.AIEnabled() {
		deps.AI = adapter.NewLLMAdapter(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel, httpClient)
	}

	return deps
}

// Run validates args against slug's schema and runs the tool under its deadline:
// the descriptor's own timeout, or the configured default.
func (a *App) Run(ctx context.Context, slug string, args json.RawMessage) (any, error) {
	desc, ok := a.Registry.Lookup(slug)
	if !ok {
		return nil, apperrors.NewToolNotFound(slug)
	}
	if err := a.Validator.Validate(slug, args); err != nil {
		return nil, err
	}

	timeout := a.TimeoutFor(desc)
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := a.Dispatcher.RunTool(runCtx, slug, args)
	if err != nil && runCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
		return nil, apperrors.NewContextTimeout("tool "+slug, timeout)
	}
	return result, err
}

// TimeoutFor returns the deadline applied to runs of desc
func (a *App) TimeoutFor(desc catalog.ToolDescriptor) time.Duration {
	if desc.Timeout > 0 {
		return desc.Timeout
	}
	return a.Config.ToolTimeout
}

// Close releases external connections. It is safe to call more than once.
func (a *App) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn("Failed to close resource", zap.Error(err))
		}
	}
	a.closers = nil
}
