package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/codebanner/internal/server"
	"github.com/matzehuels/codebanner/pkg/pipeline"
)

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	cache         cacheFlags
	addr          string
	phrases       string
	remotePhrases bool
	engine        string
	browserPath   string
	noSandbox     bool
	timeout       time.Duration
}

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve banners over HTTP",
		Long: `Serve banners over HTTP.

  GET /banner.png?name=Ada&theme=ocean&seed=42
  GET /themes
  GET /healthz

Query parameters mirror the flags of 'codebanner generate'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateEngine(opts.engine); err != nil {
				return err
			}
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, opts.cache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, c.Logger, server.Config{
				Phrases:            opts.phrases,
				AllowRemotePhrases: opts.remotePhrases,
				Engine:             opts.engine,
				BrowserPath:        opts.browserPath,
				NoSandbox:          opts.noSandbox,
				RequestTimeout:     opts.timeout,
			})
			printKeyValue("Serving", StyleLink.Render(listenURL(opts.addr)+"/banner.png"))
			return srv.ListenAndServe(ctx, opts.addr)
		},
	}

	opts.cache.register(cmd)
	cmd.Flags().StringVar(&opts.addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.phrases, "phrases", "", "phrase file or URL for every request (default: built-in set)")
	cmd.Flags().BoolVar(&opts.remotePhrases, "allow-remote-phrases", false, "let clients pass a phrase URL with ?phrases=")
	cmd.Flags().StringVar(&opts.engine, "engine", pipeline.DefaultEngine, "default raster engine: native, browser")
	cmd.Flags().StringVar(&opts.browserPath, "browser-path", "", "Chrome/Chromium executable for the browser engine")
	cmd.Flags().BoolVar(&opts.noSandbox, "no-sandbox", false, "run the browser without its sandbox (containers)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", server.DefaultRequestTimeout, "per-request timeout")

	return cmd
}

// listenURL returns a browsable URL for a listen address.
func listenURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
