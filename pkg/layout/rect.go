package layout

import (
	"fmt"

	"github.com/matzehuels/codebanner/pkg/errors"
)

// Rect is an axis-aligned rectangle with a top-left origin.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Expand scales the width and height of r by the given factors while keeping
// the top-left corner fixed.
func (r Rect) Expand(fw, fh float64) Rect {
	return Rect{X: r.X, Y: r.Y, W: r.W * fw, H: r.H * fh}
}

// Within reports whether r lies fully inside [0,w] × [0,h].
func (r Rect) Within(w, h float64) bool {
	return r.X >= 0 && r.Y >= 0 && r.Right() <= w && r.Bottom() <= h
}

// Validate rejects rectangles with non-finite coordinates or negative sizes.
func (r Rect) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{{"x", r.X}, {"y", r.Y}} {
		if err := errors.ValidateFinite("rect "+f.name, f.v); err != nil {
			return err
		}
	}
	if err := errors.ValidateNonNegative("rect width", r.W); err != nil {
		return err
	}
	return errors.ValidateNonNegative("rect height", r.H)
}

func (r Rect) String() string {
	return fmt.Sprintf("(%.1f,%.1f %.1fx%.1f)", r.X, r.Y, r.W, r.H)
}

// Overlaps reports whether the interiors of a and b intersect.
// Touching edges do not count as overlap.
func Overlaps(a, b Rect) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X && a.Y < b.Y+b.H && a.Y+a.H > b.Y
}
