// Package render converts rendered banners into their export form.
//
// # Overview
//
// Sinks in the [sink] subpackage turn a composed scene into bytes: raster
// images, SVG, HTML or JSON. Raster output always passes through this
// package so every image leaves at the LinkedIn banner size:
//
//   - [Fit] scales an image by min(1584/w, 396/h), keeping its aspect ratio,
//     and centers it on a 1584×396 canvas filled with the background color.
//   - [Encode] writes PNG, or JPEG at quality 90.
//   - [Export] does both.
//
//	img := sink.RenderImage(scene, 1)
//	data, err := render.Export(img, scene.Background, render.FormatJPEG)
//
// [sink]: github.com/matzehuels/codebanner/pkg/render/sink
package render
