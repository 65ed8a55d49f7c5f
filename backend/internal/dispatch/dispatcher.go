// Package dispatch resolves tools by slug and runs them. Each tool's loader runs
// until it first succeeds; the resolved logic is then cached for the process lifetime.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"aiotoolsuite/backend/internal/catalog"
	"aiotoolsuite/backend/internal/tools"
	apperrors "aiotoolsuite/backend/pkg/errors"
	"aiotoolsuite/backend/pkg/logger"
)

// Catalog is the read side of the registry the dispatcher needs
type Catalog interface {
	Lookup(slug string) (catalog.ToolDescriptor, bool)
	Descriptors() []catalog.ToolDescriptor
}

// Dispatcher runs tools by slug
type Dispatcher struct {
	catalog Catalog
	cache   *LogicCache
	logger  *zap.Logger
}

// New creates a dispatcher over cat. Passing a nil cache gives the dispatcher a
// private one.
func New(cat Catalog, cache *LogicCache, log *zap.Logger) *Dispatcher {
	if cache == nil {
		cache = NewLogicCache()
	}
	if log == nil {
		log = logger.Named("dispatch")
	}
	return &Dispatcher{catalog: cat, cache: cache, logger: log}
}

// RunTool resolves the tool registered under slug and invokes it with args.
// The tool's result and errors are returned unchanged. No deadline is applied here.
func (d *Dispatcher) RunTool(ctx context.Context, slug string, args json.RawMessage) (any, error) {
	desc, ok := d.catalog.Lookup(slug)
	if !ok {
		return nil, apperrors.NewToolNotFound(slug)
	}

	logic, err := d.resolve(ctx, desc)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := logic(ctx, args)
	d.logger.Debug("Tool executed",
		zap.String("slug", slug),
		zap.Duration("duration", time.Since(start)),
		zap.Bool("success", err == nil),
	)
	return result, err
}

// resolve returns cached logic or runs the loader. Concurrent first calls may
// both load; the first to store wins and the other result is dropped. Failures
// are not cached, so the next call tries the loader again.
func (d *Dispatcher) resolve(ctx context.Context, desc catalog.ToolDescriptor) (tools.Logic, error) {
	if logic, ok := d.cache.Get(desc.ID); ok {
		return logic, nil
	}

	mod, err := desc.Loader(ctx)
	if err != nil {
		d.logger.Warn("Tool loader failed",
			zap.String("tool_id", desc.ID),
			zap.String("slug", desc.Slug),
			zap.Error(err),
		)
		return nil, apperrors.NewToolLoadFailed(desc.ID, err)
	}
	if mod == nil || mod.Run == nil {
		d.logger.Error("Tool loader returned no logic",
			zap.String("tool_id", desc.ID),
			zap.String("slug", desc.Slug),
		)
		return nil, apperrors.NewToolLogicMissing(desc.ID)
	}

	logic, raced := d.cache.LoadOrStore(desc.ID, mod.Run)
	d.logger.Debug("Tool logic resolved",
		zap.String("tool_id", desc.ID),
		zap.Bool("lost_race", raced),
	)
	return logic, nil
}

// Cache exposes the dispatcher's logic cache for inspection
func (d *Dispatcher) Cache() *LogicCache {
	return d.cache
}

// Warm resolves every tool ahead of first use, at most concurrency at a time.
// Only missing logic fails warm-up; other loader errors are logged and left
// for the first call to retry.
func (d *Dispatcher) Warm(ctx context.Context, concurrency int) error {
	if concurrency < 1 {
		concurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, desc := range d.catalog.Descriptors() {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			_, err := d.resolve(gctx, desc)
			if err == nil {
				return nil
			}
			var missing *apperrors.ErrToolLogicMissing
			if apperrors.As(err, &missing) {
				return err
			}
			d.logger.Info("Tool not warmed; it will load on first use",
				zap.String("slug", desc.Slug),
				zap.Error(err),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("tool warm-up failed: %w", err)
	}
	d.logger.Info("Tools warmed", zap.Int("resolved", d.cache.Len()))
	return nil
}

// Call runs slug with a typed input and output. The result is asserted to Out;
// logic returning a different shape is converted through JSON.
func Call[In, Out any](ctx context.Context, d *Dispatcher, slug string, in In) (Out, error) {
	var out Out

	args, err := json.Marshal(in)
	if err != nil {
		return out, apperrors.NewInvalidInput("", fmt.Sprintf("cannot encode arguments: %v", err))
	}

	res, err := d.RunTool(ctx, slug, args)
	if err != nil {
		return out, err
	}
	if typed, ok := res.(Out); ok {
		return typed, nil
	}

	raw, err := json.Marshal(res)
	if err != nil {
		return out, fmt.Errorf("tool %s returned an unencodable result: %w", slug, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("tool %s result does not match %T: %w", slug, out, err)
	}
	return out, nil
}
