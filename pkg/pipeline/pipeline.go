// Package pipeline provides the banner generation pipeline shared by the CLI,
// the interactive tuner and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Phrases: Resolve the phrase set from a file, a URL or the built-in list
//  2. Compose: Lay out the profile block and place phrases (banner.Compose)
//  3. Render: Produce every requested format (PNG, JPEG, SVG, HTML, JSON)
//
// A fixed seed makes the whole run deterministic, so rendered artifacts of
// seeded runs are cached by content hash. Unseeded runs draw a fresh seed,
// report it in the result and are never cached.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	defer runner.Close()
//
//	opts := pipeline.Options{
//	    Banner:  banner.DefaultConfig(),
//	    Formats: []string{"png", "json"},
//	}
//	opts.Banner.Seed = 42
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/codebanner/pkg/banner"
	"github.com/matzehuels/codebanner/pkg/errors"
	"github.com/matzehuels/codebanner/pkg/httputil"
	"github.com/matzehuels/codebanner/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, TUI and Server
// =============================================================================

// Format constants for output formats.
const (
	FormatPNG  = render.FormatPNG
	FormatJPEG = render.FormatJPEG
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatJSON = "json"
)

// Raster engines.
const (
	// EngineNative rasterizes with the embedded fonts in-process.
	EngineNative = "native"
	// EngineBrowser screenshots the HTML output in headless Chrome.
	EngineBrowser = "browser"
)

const (
	// DefaultFormat is the output format when none is requested.
	DefaultFormat = FormatPNG

	// DefaultEngine is the default raster engine.
	DefaultEngine = EngineNative
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatJPEG: true,
	FormatSVG:  true,
	FormatHTML: true,
	FormatJSON: true,
}

// ValidEngines is the set of supported raster engines.
var ValidEngines = map[string]bool{
	EngineNative:  true,
	EngineBrowser: true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatPNG:  "image/png",
	FormatJPEG: "image/jpeg",
	FormatSVG:  "image/svg+xml",
	FormatHTML: "text/html; charset=utf-8",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one banner generation.
// This struct supports JSON serialization.
type Options struct {
	Banner banner.Config `json:"banner"`

	// Phrases is a file path or http(s) URL; empty selects the built-in set.
	Phrases string `json:"phrases,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Engine  string   `json:"engine,omitempty"`

	// Refresh skips cache reads (results are still written).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger      *log.Logger       `json:"-"`
	Fetcher     *httputil.Fetcher `json:"-"`
	BrowserPath string            `json:"-"`
	NoSandbox   bool              `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID string

	// Seed is the seed the scene was composed with. For unseeded runs it is
	// freshly drawn and reproduces the same banner when passed back in.
	Seed uint64

	// Scene is the composed banner.
	Scene *banner.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// PhraseSource is where the phrases came from; "builtin" when the
	// default set was used.
	PhraseSource string

	// PhraseErr is set when the configured phrase source failed and the
	// built-in set was used instead.
	PhraseErr error

	// Stats contains timing and placement information.
	Stats Stats

	// CacheInfo tracks whether the render stage hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PhraseCount int
	Requested   int
	Placed      int
	Unplaced    int
	Attempts    int
	PhrasesTime time.Duration
	ComposeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache use for the render stage.
type CacheInfo struct {
	Cacheable bool // Whether the run was seeded and therefore cacheable
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, jpeg, svg, html, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEngine checks that a raster engine is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return errors.New(errors.ErrCodeInvalidEngine, "invalid engine: %q (must be one of: native, browser)", engine)
	}
	return nil
}

// NormalizeFormat lower-cases a format name and maps "jpg" to "jpeg".
func NormalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "jpg" {
		return FormatJPEG
	}
	return f
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and validates every field.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Banner.Validate(); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	if o.Phrases != "" && !isURL(o.Phrases) {
		if err := errors.ValidatePath(o.Phrases); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// SetDefaults fills in defaults for every unset field.
func (o *Options) SetDefaults() {
	o.Banner.SetDefaults()
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	formats := make([]string, 0, len(o.Formats))
	for _, f := range o.Formats {
		if f = NormalizeFormat(f); !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	o.Formats = formats
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Fetcher == nil {
		o.Fetcher = httputil.NewFetcher(nil)
	}
}

// Seeded reports whether the run is reproducible, and therefore cacheable.
func (o *Options) Seeded() bool {
	return o.Banner.Seed != 0
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
