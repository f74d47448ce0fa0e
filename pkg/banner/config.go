package banner

import (
	"github.com/matzehuels/codebanner/pkg/errors"
	"github.com/matzehuels/codebanner/pkg/layout"
)

const (
	// DefaultWidth and DefaultHeight match the LinkedIn banner size, so the
	// export step is a 1:1 copy for default scenes.
	DefaultWidth  = 1584.0
	DefaultHeight = 396.0

	// DefaultPhraseCount is the number of phrases requested by default.
	DefaultPhraseCount = 8

	// MaxPhraseCount and MaxAttemptBudget bound a single pass to
	// MaxPhraseCount × MaxAttemptBudget draws.
	MaxPhraseCount   = 100
	MaxAttemptBudget = 10000

	// MaxDimension caps the canvas width and height. Browser rendering sizes
	// its window from them.
	MaxDimension = 8192.0
)

// Profile is the foreground text of the banner.
type Profile struct {
	Name    string `json:"name" toml:"name"`
	Title   string `json:"title" toml:"title"`
	Tagline string `json:"tagline" toml:"tagline"`
}

// DefaultProfile returns the placeholder profile shown when none is given.
func DefaultProfile() Profile {
	return Profile{
		Name:    "Jane Developer",
		Title:   "Senior Software Engineer",
		Tagline: "Coding the future, one line at a time",
	}
}

// Config controls a single composition.
type Config struct {
	Profile Profile `json:"profile" toml:"profile"`

	// Theme names a preset; Background and Text, when set, override its colors.
	Theme      string `json:"theme,omitempty" toml:"theme"`
	Background string `json:"background,omitempty" toml:"background"`
	Text       string `json:"text,omitempty" toml:"text"`

	// PhraseCount is taken literally: zero composes a banner without phrases.
	PhraseCount int `json:"phrase_count" toml:"phrase_count"`

	Width       float64 `json:"width,omitempty" toml:"width"`
	Height      float64 `json:"height,omitempty" toml:"height"`
	MaxAttempts int     `json:"max_attempts,omitempty" toml:"max_attempts"`

	// Seed is used as given: 0 is the PCG seed 0, not a request for
	// entropy. Callers that want a fresh layout draw a seed first, as
	// pipeline.NewSeed does.
	Seed uint64 `json:"seed,omitempty" toml:"seed"`
}

// DefaultConfig returns the configuration of a fresh banner.
func DefaultConfig() Config {
	return Config{
		Profile:     DefaultProfile(),
		Theme:       DefaultTheme,
		PhraseCount: DefaultPhraseCount,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		MaxAttempts: layout.DefaultMaxAttempts,
	}
}

// SetDefaults fills zero-valued sizes, theme and attempt budget.
// Profile text and PhraseCount are left alone.
func (c *Config) SetDefaults() {
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = layout.DefaultMaxAttempts
	}
}

// Validate checks every field that can make a composition fail.
func (c Config) Validate() error {
	if c.PhraseCount < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "phrase count must not be negative, got %d", c.PhraseCount)
	}
	if c.PhraseCount > MaxPhraseCount {
		return errors.New(errors.ErrCodeInvalidInput, "phrase count must be at most %d, got %d", MaxPhraseCount, c.PhraseCount)
	}
	if err := errors.ValidateDimension("width", c.Width); err != nil {
		return err
	}
	if err := errors.ValidateDimension("height", c.Height); err != nil {
		return err
	}
	if c.Width > MaxDimension || c.Height > MaxDimension {
		return errors.New(errors.ErrCodeInvalidInput, "canvas must be at most %gx%g, got %gx%g", MaxDimension, MaxDimension, c.Width, c.Height)
	}
	if c.MaxAttempts < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max attempts must not be negative, got %d", c.MaxAttempts)
	}
	if c.MaxAttempts > MaxAttemptBudget {
		return errors.New(errors.ErrCodeInvalidInput, "max attempts must be at most %d, got %d", MaxAttemptBudget, c.MaxAttempts)
	}
	_, err := c.Colors()
	return err
}

// Colors resolves the theme and applies the color overrides.
func (c Config) Colors() (Theme, error) {
	name := c.Theme
	if name == "" {
		name = DefaultTheme
	}
	t, err := LookupTheme(name)
	if err != nil {
		return Theme{}, err
	}
	if c.Background != "" {
		if t.Background, err = ParseHexColor(c.Background); err != nil {
			return Theme{}, err
		}
	}
	if c.Text != "" {
		if t.Text, err = ParseHexColor(c.Text); err != nil {
			return Theme{}, err
		}
	}
	return t, nil
}
