package layout

import (
	"math"
	"testing"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"corner touching", Rect{0, 0, 10, 10}, Rect{10, 10, 10, 10}, false},
		{"corner overlap", Rect{0, 0, 10, 10}, Rect{9, 9, 10, 10}, true},
		{"edge touching horizontally", Rect{0, 0, 10, 10}, Rect{10, 0, 10, 10}, false},
		{"edge touching vertically", Rect{0, 0, 10, 10}, Rect{0, 10, 10, 10}, false},
		{"contained", Rect{0, 0, 100, 100}, Rect{10, 10, 5, 5}, true},
		{"identical", Rect{3, 3, 4, 4}, Rect{3, 3, 4, 4}, true},
		{"disjoint", Rect{0, 0, 10, 10}, Rect{50, 50, 10, 10}, false},
		{"zero size inside counts as overlap", Rect{0, 0, 10, 10}, Rect{5, 5, 0, 0}, true},
		{"zero size on edge", Rect{0, 0, 10, 10}, Rect{10, 5, 0, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := Overlaps(tt.b, tt.a); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v (symmetry)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestRectExpand(t *testing.T) {
	got := Rect{X: 40, Y: 60, W: 200, H: 50}.Expand(1.5, 2)
	want := Rect{X: 40, Y: 60, W: 300, H: 100}
	if got != want {
		t.Errorf("Expand() = %v, want %v", got, want)
	}
}

func TestRectWithin(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"inside", Rect{10, 10, 20, 20}, true},
		{"flush with far edges", Rect{780, 380, 20, 20}, true},
		{"past right edge", Rect{781, 0, 20, 20}, false},
		{"negative origin", Rect{-1, 0, 5, 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Within(800, 400); got != tt.want {
				t.Errorf("Within() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectValidate(t *testing.T) {
	tests := []struct {
		name    string
		r       Rect
		wantErr bool
	}{
		{"zero", Rect{}, false},
		{"negative origin allowed", Rect{X: -10, Y: -5, W: 3, H: 3}, false},
		{"negative width", Rect{W: -1}, true},
		{"negative height", Rect{H: -1}, true},
		{"NaN y", Rect{Y: math.NaN()}, true},
		{"infinite width", Rect{W: math.Inf(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.r.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
