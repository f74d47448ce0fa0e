// Package fonts provides the font faces used to measure and draw banners.
//
// The fonts are the Go font family from golang.org/x/image/font/gofont,
// compiled into the binary, so rendering needs no system fonts. Code phrases
// use Go Mono; the profile block uses Go Regular and Go Bold.
package fonts

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Family selects one of the embedded typefaces.
type Family int

const (
	Mono Family = iota
	Regular
	Bold
)

func (f Family) String() string {
	switch f {
	case Mono:
		return "mono"
	case Regular:
		return "regular"
	case Bold:
		return "bold"
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// MarshalText encodes the family by name.
func (f Family) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText decodes a family name produced by MarshalText.
func (f *Family) UnmarshalText(b []byte) error {
	for _, c := range []Family{Mono, Regular, Bold} {
		if c.String() == string(b) {
			*f = c
			return nil
		}
	}
	return fmt.Errorf("unknown font family %q", b)
}

// CSSFamily is the font-family value used by the SVG and HTML sinks.
// Regular and Bold share the 'Go' family; [Family.CSSWeight] selects the face.
func (f Family) CSSFamily() string {
	if f == Mono {
		return `'Go Mono', 'Courier New', monospace`
	}
	return `'Go', 'Segoe UI', Roboto, sans-serif`
}

// CSSWeight is the font-weight value used by the SVG and HTML sinks.
func (f Family) CSSWeight() string {
	if f == Bold {
		return "bold"
	}
	return "normal"
}

var sources = map[Family][]byte{
	Mono:    gomono.TTF,
	Regular: goregular.TTF,
	Bold:    gobold.TTF,
}

// TTF returns the raw font file of f, for embedding in HTML output.
func TTF(f Family) ([]byte, bool) {
	src, ok := sources[f]
	return src, ok
}

// Parsed fonts are shared; faces are not (opentype faces hold scratch buffers).
var (
	parsed   = map[Family]*opentype.Font{}
	parsedMu sync.Mutex
)

func load(f Family) (*opentype.Font, error) {
	parsedMu.Lock()
	defer parsedMu.Unlock()
	if ft, ok := parsed[f]; ok {
		return ft, nil
	}
	src, ok := sources[f]
	if !ok {
		return nil, fmt.Errorf("unknown font family %s", f)
	}
	ft, err := opentype.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse %s font: %w", f, err)
	}
	parsed[f] = ft
	return ft, nil
}

// NewFace returns a new face of family at size pixels (72 DPI).
// The caller owns the face and must not share it across goroutines.
func NewFace(f Family, size float64) (font.Face, error) {
	ft, err := load(f)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// Measurer reports the footprint of a single line of text.
type Measurer interface {
	Measure(text string, f Family, size float64) (w, h float64, err error)
}

// FaceMeasurer measures text with opentype faces, caching one face per
// family and size. It is safe for concurrent use. Callers should quantize
// sizes, since every distinct size keeps a face alive until Close.
type FaceMeasurer struct {
	mu    sync.Mutex
	faces map[faceKey]font.Face
}

type faceKey struct {
	family Family
	size   float64
}

// NewMeasurer returns a measurer backed by the embedded fonts.
func NewMeasurer() *FaceMeasurer {
	return &FaceMeasurer{faces: make(map[faceKey]font.Face)}
}

// Measure returns the advance width and line height of text.
func (m *FaceMeasurer) Measure(text string, f Family, size float64) (float64, float64, error) {
	key := faceKey{family: f, size: size}

	m.mu.Lock()
	defer m.mu.Unlock()

	face, ok := m.faces[key]
	if !ok {
		var err error
		if face, err = NewFace(f, key.size); err != nil {
			return 0, 0, err
		}
		m.faces[key] = face
	}

	adv := font.MeasureString(face, text)
	return float64(adv) / 64, float64(face.Metrics().Height) / 64, nil
}

// Close releases all cached faces.
func (m *FaceMeasurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, face := range m.faces {
		_ = face.Close()
		delete(m.faces, k)
	}
	return nil
}

var _ Measurer = (*FaceMeasurer)(nil)
