package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/codebanner/pkg/observability"
	"github.com/matzehuels/codebanner/pkg/phrases"
)

// PhraseSourceBuiltin names the built-in phrase set in results and logs.
const PhraseSourceBuiltin = "builtin"

// ResolvePhrases loads the configured phrase set. A failing source is never
// fatal: the built-in set is returned along with the failure.
func (r *Runner) ResolvePhrases(ctx context.Context, opts Options) (list []string, source string, err error) {
	opts.SetDefaults()
	start := time.Now()

	list, err = phrases.Resolve(ctx, opts.Fetcher, opts.Phrases)
	observability.Pipeline().OnPhrasesResolved(ctx, opts.Phrases, len(list), err)

	source = opts.Phrases
	if source == "" || err != nil {
		source = PhraseSourceBuiltin
	}
	if err != nil {
		opts.Logger.Warn("phrase source unavailable, using built-in phrases",
			"source", opts.Phrases,
			"error", err)
	} else {
		opts.Logger.Debug("resolved phrases",
			"source", source,
			"count", len(list),
			"duration", time.Since(start))
	}
	return list, source, err
}
