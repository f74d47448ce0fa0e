package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/codebanner/pkg/banner"
	"github.com/matzehuels/codebanner/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "banner.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// parseBannerFlags registers the banner flags on a fresh command and parses args.
func parseBannerFlags(t *testing.T, args ...string) (fileConfig, error) {
	t.Helper()
	var f bannerFlags
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v): %v", args, err)
	}
	return f.resolve(cmd)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
output  = "ada.png"
formats = ["png", "svg"]
phrases = "phrases.toml"

[banner]
theme        = "ocean"
phrase_count = 12
seed         = 42

[banner.profile]
name = "Ada Lovelace"
`)

	cfg, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("loadConfigFile() error: %v", err)
	}

	if cfg.Output != "ada.png" || cfg.Phrases != "phrases.toml" || len(cfg.Formats) != 2 {
		t.Errorf("top-level keys = %+v", cfg)
	}
	b := cfg.Banner
	if b.Theme != "ocean" || b.PhraseCount != 12 || b.Seed != 42 {
		t.Errorf("banner = theme %s count %d seed %d, want ocean 12 42", b.Theme, b.PhraseCount, b.Seed)
	}
	if b.Profile.Name != "Ada Lovelace" {
		t.Errorf("name = %q, want Ada Lovelace", b.Profile.Name)
	}
	// Omitted keys keep their defaults.
	def := banner.DefaultConfig()
	if b.Profile.Title != def.Profile.Title || b.Width != def.Width || b.MaxAttempts != def.MaxAttempts {
		t.Errorf("omitted keys lost their defaults: %+v", b)
	}
}

func TestLoadConfigFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `[banner`},
		{"unknown key", "[banner]\ncolour = \"red\"\n"},
		{"wrong type", "[banner]\nphrase_count = \"many\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfigFile(writeConfig(t, tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("loadConfigFile() error = %v, want INVALID_INPUT", err)
			}
		})
	}

	if _, err := loadConfigFile(""); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("loadConfigFile(\"\") error = %v, want INVALID_PATH", err)
	}
}

func TestBannerFlagsDefaults(t *testing.T) {
	cfg, err := parseBannerFlags(t)
	if err != nil {
		t.Fatalf("resolve() error: %v", err)
	}
	if cfg.Banner != banner.DefaultConfig() {
		t.Errorf("banner = %+v, want defaults %+v", cfg.Banner, banner.DefaultConfig())
	}
	if cfg.Phrases != "" {
		t.Errorf("phrases = %q, want built-in", cfg.Phrases)
	}
}

func TestBannerFlagsOverrideConfig(t *testing.T) {
	path := writeConfig(t, `
[banner]
theme        = "ocean"
phrase_count = 12
background   = "#101010"

[banner.profile]
name  = "Ada Lovelace"
title = "Analyst"
`)

	cfg, err := parseBannerFlags(t,
		"--config", path,
		"--count", "3",
		"--title", "",
		"--seed", "9",
		"--phrases", "extra.json")
	if err != nil {
		t.Fatalf("resolve() error: %v", err)
	}

	b := cfg.Banner
	tests := []struct {
		field     string
		got, want any
	}{
		{"theme from file", b.Theme, "ocean"},
		{"background from file", b.Background, "#101010"},
		{"name from file", b.Profile.Name, "Ada Lovelace"},
		{"count from flag", b.PhraseCount, 3},
		{"empty title from flag", b.Profile.Title, ""},
		{"seed from flag", b.Seed, uint64(9)},
		{"tagline default", b.Profile.Tagline, banner.DefaultProfile().Tagline},
		{"phrases from flag", cfg.Phrases, "extra.json"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.field, tt.got, tt.want)
		}
	}
}

func TestFileConfigOptions(t *testing.T) {
	cfg := defaultFileConfig()
	cfg.Formats = []string{"JPG", "png", "jpeg"}
	logger := log.New(io.Discard)

	opts, err := cfg.options(logger)
	if err != nil {
		t.Fatalf("options() error: %v", err)
	}
	if len(opts.Formats) != 2 || opts.Formats[0] != "jpeg" || opts.Formats[1] != "png" {
		t.Errorf("formats = %v, want [jpeg png]", opts.Formats)
	}
	if opts.Logger != logger {
		t.Error("options() should keep the given logger")
	}

	cfg.Banner.Theme = "neon"
	if _, err := cfg.options(logger); !errors.Is(err, errors.ErrCodeInvalidTheme) {
		t.Errorf("options() error = %v, want INVALID_THEME", err)
	}
}
