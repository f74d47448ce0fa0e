package render

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/codebanner/pkg/errors"
)

// Export geometry and encoding.
const (
	ExportWidth  = 1584
	ExportHeight = 396

	// JPEGQuality matches a 0.9 canvas export quality.
	JPEGQuality = 90
)

// Raster output formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

// FitScale returns the uniform scale that fits a w×h image inside the
// export size.
func FitScale(w, h float64) float64 {
	return min(ExportWidth/w, ExportHeight/h)
}

// Fit scales src to fit the export size and centers it on a canvas filled
// with bg. An empty src yields a plain background.
func Fit(src image.Image, bg color.Color) *image.NRGBA {
	canvas := imaging.New(ExportWidth, ExportHeight, bg)

	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return canvas
	}

	scale := FitScale(float64(b.Dx()), float64(b.Dy()))
	w := max(1, int(math.Round(float64(b.Dx())*scale)))
	h := max(1, int(math.Round(float64(b.Dy())*scale)))

	img := src
	if w != b.Dx() || h != b.Dy() {
		img = imaging.Resize(src, w, h, imaging.Lanczos)
	}
	offset := image.Pt((ExportWidth-w)/2, (ExportHeight-h)/2)
	return imaging.Paste(canvas, img, offset)
}

// Encode writes img as PNG or JPEG.
func Encode(img image.Image, format string) ([]byte, error) {
	var f imaging.Format
	var opts []imaging.EncodeOption
	switch format {
	case FormatPNG:
		f = imaging.PNG
	case FormatJPEG, "jpg":
		f = imaging.JPEG
		opts = append(opts, imaging.JPEGQuality(JPEGQuality))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported image format %q (must be png or jpeg)", format)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, f, opts...); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encode %s", format)
	}
	return buf.Bytes(), nil
}

// Export fits img to the banner size and encodes it.
func Export(img image.Image, bg color.Color, format string) ([]byte, error) {
	return Encode(Fit(img, bg), format)
}
