package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/codebanner/pkg/pipeline"
)

// generateOpts holds the flags of the generate command that are not banner
// settings.
type generateOpts struct {
	banner      bannerFlags
	cache       cacheFlags
	output      string
	formats     string
	engine      string
	refresh     bool
	browserPath string
	noSandbox   bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a banner to PNG, JPEG, SVG, HTML or JSON",
		Long: `Render a banner with random code phrases around the profile block.

Raster output (png, jpeg) is fitted to 1584×396. Runs with a fixed --seed are
reproducible and their artifacts are cached.`,
		Example: `  codebanner generate --name "Ada Lovelace" --theme ocean -o ada.png
  codebanner generate --config banner.toml --format png,svg
  codebanner generate --seed 42 --count 20 --engine browser`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, &opts)
		},
	}

	opts.banner.register(cmd)
	opts.cache.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): png (default), jpeg, svg, html, json (comma-separated)")
	cmd.Flags().StringVar(&opts.engine, "engine", pipeline.DefaultEngine, "raster engine: native, browser")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")
	cmd.Flags().StringVar(&opts.browserPath, "browser-path", "", "Chrome/Chromium executable for --engine browser")
	cmd.Flags().BoolVar(&opts.noSandbox, "no-sandbox", false, "run the browser without its sandbox (containers)")

	return cmd
}

// resolveGenerate turns flags and the optional config file into pipeline
// options and the output path.
func (c *CLI) resolveGenerate(cmd *cobra.Command, opts *generateOpts) (pipeline.Options, string, error) {
	cfg, err := opts.banner.resolve(cmd)
	if err != nil {
		return pipeline.Options{}, "", err
	}

	set := cmd.Flags().Changed
	if set("output") {
		cfg.Output = opts.output
	}
	if set("format") {
		cfg.Formats = parseFormats(opts.formats)
	}
	if len(cfg.Formats) == 0 {
		if f := formatFromPath(cfg.Output); f != "" {
			cfg.Formats = []string{f}
		}
	}
	if set("engine") || cfg.Engine == "" {
		cfg.Engine = opts.engine
	}

	po, err := cfg.options(loggerFromContext(cmd.Context()))
	if err != nil {
		return po, "", err
	}
	po.Refresh = opts.refresh
	po.BrowserPath = opts.browserPath
	po.NoSandbox = opts.noSandbox
	return po, cfg.Output, nil
}

func (c *CLI) runGenerate(cmd *cobra.Command, opts *generateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	po, output, err := c.resolveGenerate(cmd, opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, po)
	if err != nil {
		return err
	}
	if result.PhraseErr != nil {
		printWarning("Could not load phrases from %s, using the built-in set", po.Phrases)
	}

	files, err := writeArtifacts(output, po.Formats, result.Artifacts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %d file(s)", len(files)))

	printSuccess("Generated banner")
	printStats(result.Stats, result.CacheInfo.RenderHit)
	for _, f := range files {
		printFile(f)
	}
	if !po.Seeded() {
		printNewline()
		printNextStep("Reproduce this layout with", fmt.Sprintf("--seed %d", result.Seed))
	}
	return nil
}

// writeArtifacts writes every format to its output path, in format order.
func writeArtifacts(output string, formats []string, artifacts map[string][]byte) ([]string, error) {
	paths := outputPaths(output, formats)
	files := make([]string, 0, len(formats))
	for _, f := range formats {
		path := paths[f]
		if err := writeFile(path, artifacts[f]); err != nil {
			return files, err
		}
		files = append(files, path)
	}
	return files, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
