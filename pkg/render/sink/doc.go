// Package sink renders composed banners into output formats.
//
// # Overview
//
// A "sink" transforms a [banner.Scene] into bytes:
//
//   - PNG / JPEG: rasterized natively with fogleman/gg, then fitted to the
//     1584×396 export size by [render.Export]
//   - SVG: one <text> element per line, fonts referenced by family name
//   - HTML: absolutely positioned elements inside a fixed-size banner div
//   - JSON: the scene itself, for external tools and debugging
//   - Browser: the HTML output screenshotted by headless Chrome (chromedp),
//     then fitted and encoded like the native raster
//
// Native raster output draws with the same embedded fonts that measured the
// phrases, so footprints on the image match the layout exactly. Browser
// output embeds those fonts as @font-face data so Chrome draws with them too.
//
//	png, err := sink.RenderPNG(scene)
//	svg := sink.RenderSVG(scene)
//	jpg, err := sink.RenderBrowser(ctx, scene, render.FormatJPEG)
//
// # Raster Options
//
//   - [WithScale]: Rasterization scale (default: the export fit scale)
package sink
