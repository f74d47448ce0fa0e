package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/codebanner/pkg/banner"
	"github.com/matzehuels/codebanner/pkg/errors"
	"github.com/matzehuels/codebanner/pkg/observability"
	"github.com/matzehuels/codebanner/pkg/render/sink"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, scene *banner.Scene, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats, opts.Engine)
	start := time.Now()

	artifacts, err := renderAll(ctx, scene, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderAll(ctx context.Context, scene *banner.Scene, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, scene, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat renders one format. Raster formats go through the configured
// engine; the others are engine-independent.
func RenderFormat(ctx context.Context, scene *banner.Scene, format string, opts Options) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatPNG, FormatJPEG:
		if opts.Engine == EngineBrowser {
			data, err = sink.RenderBrowser(ctx, scene, format, browserOptions(opts)...)
		} else if format == FormatPNG {
			data, err = sink.RenderPNG(scene)
		} else {
			data, err = sink.RenderJPEG(scene)
		}
	case FormatSVG:
		data = sink.RenderSVG(scene)
	case FormatHTML:
		data = sink.RenderHTML(scene)
	case FormatJSON:
		data, err = sink.RenderJSON(scene)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}

	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
	}
	return data, nil
}

func browserOptions(opts Options) []sink.BrowserOption {
	var out []sink.BrowserOption
	if opts.BrowserPath != "" {
		out = append(out, sink.WithExecPath(opts.BrowserPath))
	}
	if opts.NoSandbox {
		out = append(out, sink.WithNoSandbox())
	}
	return out
}
