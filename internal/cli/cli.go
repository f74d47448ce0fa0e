// Package cli implements the codebanner command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/codebanner/pkg/buildinfo"
	"github.com/matzehuels/codebanner/pkg/cache"
	"github.com/matzehuels/codebanner/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "codebanner"

	// envCacheURL selects a shared Redis cache without passing --cache-url.
	envCacheURL = "CODEBANNER_CACHE_URL"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level, pipeline, cache
// and HTTP events are logged as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		registerLogHooks(c.Logger)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Codebanner renders code-themed profile banners",
		Long:         `Codebanner scatters code snippets behind your name, title and tagline and exports the result as a 1584×396 banner image.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.themesCommand())
	root.AddCommand(c.tuneCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags selects the artifact cache backend.
type cacheFlags struct {
	noCache  bool
	cacheURL string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().StringVar(&f.cacheURL, "cache-url", os.Getenv(envCacheURL), "redis:// URL of a shared cache (default: local cache directory)")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, f cacheFlags) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, f)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, f cacheFlags) (cache.Cache, error) {
	if f.noCache {
		return cache.NewNullCache(), nil
	}
	if f.cacheURL != "" {
		rc, err := cache.NewRedisCache(ctx, f.cacheURL)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using redis cache", "url", redactURL(f.cacheURL))
		return cache.Scoped(rc, appName+":"), nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// redactURL drops credentials from a cache URL before it is logged.
func redactURL(raw string) string {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return raw
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = "***@" + rest[at+1:]
	}
	return scheme + "://" + rest
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/codebanner/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = pipeline.NormalizeFormat(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// fileExtension returns the conventional extension for format.
func fileExtension(format string) string {
	if format == pipeline.FormatJPEG {
		return "jpg"
	}
	return format
}

// formatFromPath infers an output format from a file name, or "" when the
// extension is not a known format.
func formatFromPath(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return ""
	}
	if f := pipeline.NormalizeFormat(ext); pipeline.ValidFormats[f] {
		return f
	}
	return ""
}

// outputPaths maps every format to its output file. A single format writes
// to output as given; several formats share output's base name.
func outputPaths(output string, formats []string) map[string]string {
	if output == "" {
		output = appName
	}
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && formatFromPath(output) != "" {
		paths[formats[0]] = output
		return paths
	}
	base := output
	if formatFromPath(output) != "" {
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}
	for _, f := range formats {
		paths[f] = fmt.Sprintf("%s.%s", base, fileExtension(f))
	}
	return paths
}
