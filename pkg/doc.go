// Package pkg provides the core libraries for codebanner profile banners.
//
// # Overview
//
// codebanner scatters code phrases across a LinkedIn-sized canvas, keeps a
// block around the profile text free, and exports the result as an image,
// SVG, HTML page or JSON scene. The pkg directory is organized into three
// main areas:
//
//  1. Domain logic: [layout], [banner], [phrases], [fonts]
//  2. Output: [render] and [render/sink]
//  3. Orchestration and infrastructure: [pipeline], [cache], [httputil],
//     [observability], [errors], [buildinfo]
//
// # Architecture
//
// The typical data flow through codebanner:
//
//	Phrase file, URL or built-in set
//	         ↓
//	    [phrases] package (load and clean phrases)
//	         ↓
//	    [banner] package (profile block, phrase sizes, theme colors)
//	         ↓
//	    [layout] package (rejection-sampled placement)
//	         ↓
//	    [render/sink] package (PNG/JPEG/SVG/HTML/JSON)
//	         ↓
//	    [render] package (fit to 1584×396)
//
// # Quick Start
//
// Generate a seeded banner:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/codebanner/pkg/banner"
//	    "github.com/matzehuels/codebanner/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil)
//	defer runner.Close()
//
//	cfg := banner.DefaultConfig()
//	cfg.Profile.Name = "Ada Lovelace"
//	cfg.Seed = 42
//
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Banner:  cfg,
//	    Formats: []string{"png", "svg"},
//	})
//	png := result.Artifacts["png"]
//
// # Main Packages
//
// [layout] - Placement engine. Draws positions for each item from a seeded
// PCG source and rejects candidates that overlap placed items or the reserved
// rectangle. Items that never fit within the attempt budget are reported as
// unplaced instead of failing the run.
//
// [banner] - Banner composition. Measures the profile lines, reserves an
// expanded block around them, picks phrases with random sizes and opacities,
// and produces a [banner.Scene]. Theme presets live here too.
//
// [phrases] - Phrase sources. Parses newline, JSON and TOML phrase lists from
// files or URLs and ships a built-in set.
//
// [fonts] - Embedded Go fonts and text measurement.
//
// [render/sink] - Scene renderers. Native rasterization uses gg; the browser
// engine screenshots the HTML sink with headless Chrome.
//
// [render] - Export utilities for fitting rasters onto the banner canvas.
//
// [pipeline] - Complete generation pipeline (phrases → compose → render) used
// by the CLI and the HTTP server. Seeded runs are cached by their options.
//
// [cache] - Byte caches: null, file and Redis, plus key scoping.
//
// [httputil] - HTTP fetching with retries for remote phrase lists.
//
// [observability] - Hook interfaces for pipeline, cache and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/layout/...             # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// Redis tests run when CODEBANNER_TEST_REDIS_URL is set.
//
// [layout]: https://pkg.go.dev/github.com/matzehuels/codebanner/pkg/layout
// [banner]: https://pkg.go.dev/github.com/matzehuels/codebanner/pkg/banner
// [phrases]: https://pkg.go.dev/github.com/matzehuels/codebanner/pkg/phrases
// [fonts]: https://pkg.go.dev/github.com/matzehuels/codebanner/pkg/fonts
// [render]: https://pkg.go.dev/github.com/matzehuels/codebanner/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/codebanner/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/codebanner/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/codebanner/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/codebanner/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/codebanner/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/codebanner/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/codebanner/pkg/buildinfo
// [banner.Scene]: https://pkg.go.dev/github.com/matzehuels/codebanner/pkg/banner#Scene
package pkg
