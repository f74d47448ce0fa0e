package sink

import (
	"image"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/codebanner/pkg/banner"
	"github.com/matzehuels/codebanner/pkg/errors"
	"github.com/matzehuels/codebanner/pkg/fonts"
	"github.com/matzehuels/codebanner/pkg/render"
)

// RasterOption configures [RenderPNG] and [RenderJPEG].
type RasterOption func(*rasterRenderer)

type rasterRenderer struct {
	scale float64
}

// WithScale sets the rasterization scale. Values <= 0 are ignored.
func WithScale(s float64) RasterOption {
	return func(r *rasterRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// RenderPNG rasterizes the scene and exports it as PNG.
func RenderPNG(s *banner.Scene, opts ...RasterOption) ([]byte, error) {
	return renderRaster(s, render.FormatPNG, opts)
}

// RenderJPEG rasterizes the scene and exports it as JPEG.
func RenderJPEG(s *banner.Scene, opts ...RasterOption) ([]byte, error) {
	return renderRaster(s, render.FormatJPEG, opts)
}

func renderRaster(s *banner.Scene, format string, opts []RasterOption) ([]byte, error) {
	r := rasterRenderer{scale: render.FitScale(s.Width, s.Height)}
	for _, opt := range opts {
		opt(&r)
	}
	img, err := RenderImage(s, r.scale)
	if err != nil {
		return nil, err
	}
	return render.Export(img, s.Background, format)
}

// RenderImage draws the scene at the given scale: background, then phrases
// at their opacity, then the profile block on top.
func RenderImage(s *banner.Scene, scale float64) (image.Image, error) {
	if scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", scale)
	}
	w := int(math.Ceil(s.Width * scale))
	h := int(math.Ceil(s.Height * scale))
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scene has no area (%gx%g)", s.Width, s.Height)
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(s.Background)
	dc.Clear()

	faces := newFaceSet(scale)
	defer faces.Close()

	for _, p := range s.Phrases {
		face, err := faces.get(fonts.Mono, p.Size)
		if err != nil {
			return nil, err
		}
		dc.SetColor(s.Text.NRGBA(p.Opacity))
		drawText(dc, face, p.Text, p.Rect.X*scale, p.Rect.Y*scale)
	}

	dc.SetColor(s.Text)
	for _, l := range s.Profile {
		face, err := faces.get(l.Family, l.Size)
		if err != nil {
			return nil, err
		}
		drawText(dc, face, l.Text, l.Rect.X*scale, l.Rect.Y*scale)
	}
	return dc.Image(), nil
}

// drawText draws text with its line box's top-left corner at (x, y).
func drawText(dc *gg.Context, face font.Face, text string, x, y float64) {
	dc.SetFontFace(face)
	ascent := float64(face.Metrics().Ascent) / 64
	dc.DrawString(text, x, y+ascent)
}

// faceSet holds the faces opened for one render, keyed by scaled size.
type faceSet struct {
	scale float64
	faces map[faceKey]font.Face
}

type faceKey struct {
	family fonts.Family
	size   float64
}

func newFaceSet(scale float64) *faceSet {
	return &faceSet{scale: scale, faces: make(map[faceKey]font.Face)}
}

func (fs *faceSet) get(f fonts.Family, size float64) (font.Face, error) {
	key := faceKey{family: f, size: size * fs.scale}
	if face, ok := fs.faces[key]; ok {
		return face, nil
	}
	face, err := fonts.NewFace(f, key.size)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "load %s font", f)
	}
	fs.faces[key] = face
	return face, nil
}

func (fs *faceSet) Close() {
	for _, face := range fs.faces {
		_ = face.Close()
	}
}
