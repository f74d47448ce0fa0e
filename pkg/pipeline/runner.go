package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/codebanner/pkg/banner"
	"github.com/matzehuels/codebanner/pkg/cache"
	"github.com/matzehuels/codebanner/pkg/fonts"
	"github.com/matzehuels/codebanner/pkg/observability"
)

// artifactKeyType labels artifact entries in cache hooks.
const artifactKeyType = "artifact"

// Runner encapsulates pipeline execution with caching.
// The CLI, the tuner and the server all use it.
//
// The Runner holds no per-run state: every Execute composes with a fresh
// layout engine, so multiple goroutines can share one Runner.
type Runner struct {
	Cache    cache.Cache
	Measurer fonts.Measurer
	Logger   *log.Logger

	measurer *fonts.FaceMeasurer
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	m := fonts.NewMeasurer()
	return &Runner{
		Cache:    c,
		Measurer: m,
		Logger:   logger,
		measurer: m,
	}
}

// Execute runs the complete phrases → compose → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.NewString()}
	logger := opts.Logger.With("run", result.RunID[:8])
	opts.Logger = logger

	// Stage 1: Phrases
	start := time.Now()
	list, source, phraseErr := r.ResolvePhrases(ctx, opts)
	result.PhraseSource = source
	result.PhraseErr = phraseErr
	result.Stats.PhraseCount = len(list)
	result.Stats.PhrasesTime = time.Since(start)

	// Stage 2: Compose
	start = time.Now()
	scene, err := r.Compose(ctx, opts.Banner, list)
	if err != nil {
		return nil, err
	}
	result.Scene = scene
	result.Seed = scene.Seed
	result.Stats.ComposeTime = time.Since(start)
	result.Stats.Requested = scene.Stats.Requested
	result.Stats.Placed = scene.Stats.Placed
	result.Stats.Unplaced = scene.Stats.Unplaced
	result.Stats.Attempts = scene.Stats.Attempts

	logger.Info("composed banner",
		"seed", scene.Seed,
		"placed", scene.Stats.Placed,
		"unplaced", scene.Stats.Unplaced,
		"attempts", scene.Stats.Attempts,
		"duration", result.Stats.ComposeTime)

	// Stage 3: Render
	start = time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, scene, list, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo = CacheInfo{Cacheable: opts.Seeded(), RenderHit: hit}

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"engine", opts.Engine,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders the scene in every requested format and reports
// whether all of them came from the cache. Only seeded runs touch the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, scene *banner.Scene, list []string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	if !opts.Seeded() {
		artifacts, err := Render(ctx, scene, opts)
		return artifacts, false, err
	}

	hash, err := cacheHash(opts.Banner, list)
	if err != nil {
		opts.Logger.Debug("skipping cache", "error", err)
		artifacts, err := Render(ctx, scene, opts)
		return artifacts, false, err
	}

	hooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := cache.ArtifactKey(hash, format, engineFor(format, opts.Engine))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				hooks.OnCacheHit(ctx, artifactKeyType)
				artifacts[format] = data
				continue
			} else if err != nil {
				opts.Logger.Warn("cache read failed", "format", format, "error", err)
			}
			hooks.OnCacheMiss(ctx, artifactKeyType)
		}
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		return artifacts, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, scene, renderOpts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := cache.ArtifactKey(hash, format, engineFor(format, opts.Engine))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		hooks.OnCacheSet(ctx, artifactKeyType, len(data))
	}
	return artifacts, false, nil
}

// cacheHash identifies everything that shapes a seeded scene: the
// configuration and the resolved phrase list.
func cacheHash(cfg banner.Config, list []string) (string, error) {
	return cache.HashJSON(struct {
		Banner  banner.Config `json:"banner"`
		Phrases []string      `json:"phrases"`
	}{cfg, list})
}

// engineFor returns the engine that affects format's bytes; vector and data
// formats render the same on every engine.
func engineFor(format, engine string) string {
	if format == FormatPNG || format == FormatJPEG {
		return engine
	}
	return ""
}

// Close releases resources held by the runner: the cache and the font faces.
func (r *Runner) Close() error {
	if r.measurer != nil {
		_ = r.measurer.Close()
	}
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
