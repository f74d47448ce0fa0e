package cli

import (
	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/codebanner/pkg/banner"
	"github.com/matzehuels/codebanner/pkg/errors"
	"github.com/matzehuels/codebanner/pkg/pipeline"
)

// fileConfig is the layout of a --config TOML file:
//
//	output  = "banner.png"
//	formats = ["png", "svg"]
//	phrases = "phrases.toml"
//	engine  = "native"
//
//	[banner]
//	theme        = "ocean"
//	phrase_count = 12
//	seed         = 42
//
//	[banner.profile]
//	name    = "Ada Lovelace"
//	title   = "Analyst"
//	tagline = "The engine weaves algebraic patterns"
type fileConfig struct {
	Output  string        `toml:"output"`
	Formats []string      `toml:"formats"`
	Phrases string        `toml:"phrases"`
	Engine  string        `toml:"engine"`
	Banner  banner.Config `toml:"banner"`
}

// defaultFileConfig holds the values used for keys a config file omits.
func defaultFileConfig() fileConfig {
	return fileConfig{Banner: banner.DefaultConfig()}
}

// loadConfigFile decodes path over the defaults. Unknown keys are rejected
// so that typos do not silently fall back to defaults.
func loadConfigFile(path string) (fileConfig, error) {
	cfg := defaultFileConfig()
	if err := errors.ValidatePath(path); err != nil {
		return cfg, err
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// bannerFlags binds a flag for every banner.Config field. Values from a
// config file are overridden only by flags the user actually set.
type bannerFlags struct {
	name        string
	title       string
	tagline     string
	theme       string
	background  string
	text        string
	count       int
	width       float64
	height      float64
	maxAttempts int
	seed        uint64
	phrases     string
	configPath  string
}

func (f *bannerFlags) register(cmd *cobra.Command) {
	def := banner.DefaultConfig()
	fs := cmd.Flags()
	fs.StringVar(&f.configPath, "config", "", "TOML config file (flags override its values)")
	fs.StringVar(&f.name, "name", def.Profile.Name, "profile name")
	fs.StringVar(&f.title, "title", def.Profile.Title, "profile title")
	fs.StringVar(&f.tagline, "tagline", def.Profile.Tagline, "profile tagline")
	fs.StringVar(&f.theme, "theme", def.Theme, "color preset (see 'codebanner themes')")
	fs.StringVar(&f.background, "bg", "", "background color override (#rrggbb)")
	fs.StringVar(&f.text, "text", "", "text color override (#rrggbb)")
	fs.IntVarP(&f.count, "count", "n", def.PhraseCount, "number of code phrases to place")
	fs.Float64Var(&f.width, "width", def.Width, "canvas width")
	fs.Float64Var(&f.height, "height", def.Height, "canvas height")
	fs.IntVar(&f.maxAttempts, "max-attempts", def.MaxAttempts, "placement attempts per phrase")
	fs.Uint64Var(&f.seed, "seed", 0, "random seed (0 picks a new one)")
	fs.StringVar(&f.phrases, "phrases", "", "phrase file (.json, .toml) or http(s) URL (default: built-in set)")
}

// resolve merges defaults, the config file and explicitly set flags.
func (f *bannerFlags) resolve(cmd *cobra.Command) (fileConfig, error) {
	cfg := defaultFileConfig()
	if f.configPath != "" {
		var err error
		if cfg, err = loadConfigFile(f.configPath); err != nil {
			return cfg, err
		}
	}

	set := cmd.Flags().Changed
	b := &cfg.Banner
	if set("name") {
		b.Profile.Name = f.name
	}
	if set("title") {
		b.Profile.Title = f.title
	}
	if set("tagline") {
		b.Profile.Tagline = f.tagline
	}
	if set("theme") {
		b.Theme = f.theme
	}
	if set("bg") {
		b.Background = f.background
	}
	if set("text") {
		b.Text = f.text
	}
	if set("count") {
		b.PhraseCount = f.count
	}
	if set("width") {
		b.Width = f.width
	}
	if set("height") {
		b.Height = f.height
	}
	if set("max-attempts") {
		b.MaxAttempts = f.maxAttempts
	}
	if set("seed") {
		b.Seed = f.seed
	}
	if set("phrases") {
		cfg.Phrases = f.phrases
	}
	return cfg, nil
}

// options builds validated pipeline options from a resolved config.
func (cfg fileConfig) options(logger *log.Logger) (pipeline.Options, error) {
	opts := pipeline.Options{
		Banner:  cfg.Banner,
		Phrases: cfg.Phrases,
		Formats: cfg.Formats,
		Engine:  cfg.Engine,
		Logger:  logger,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}
