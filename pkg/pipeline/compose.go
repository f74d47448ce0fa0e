package pipeline

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/matzehuels/codebanner/pkg/banner"
	"github.com/matzehuels/codebanner/pkg/fonts"
	"github.com/matzehuels/codebanner/pkg/observability"
)

// Compose builds the scene for cfg. A zero seed is replaced by a random
// non-zero one, which the returned scene records.
func (r *Runner) Compose(ctx context.Context, cfg banner.Config, list []string) (*banner.Scene, error) {
	if cfg.Seed == 0 {
		cfg.Seed = NewSeed()
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, cfg.PhraseCount)
	start := time.Now()

	m := r.Measurer
	if m == nil {
		fm := fonts.NewMeasurer()
		defer fm.Close()
		m = fm
	}

	scene, err := banner.Compose(cfg, list, m)
	if err != nil {
		hooks.OnLayoutComplete(ctx, 0, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnLayoutComplete(ctx, scene.Stats.Placed, scene.Stats.Unplaced, scene.Stats.Attempts, time.Since(start), nil)
	return scene, nil
}

// NewSeed draws a random non-zero seed.
func NewSeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}
