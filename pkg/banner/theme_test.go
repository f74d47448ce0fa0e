package banner

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/codebanner/pkg/errors"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#0a0f17", Color{0x0a, 0x0f, 0x17}, false},
		{"#7FDBFF", Color{0x7f, 0xdb, 0xff}, false},
		{"00ff66", Color{0x00, 0xff, 0x66}, false},
		{"#f90", Color{0xff, 0x99, 0x00}, false},
		{" #fff ", Color{0xff, 0xff, 0xff}, false},

		{"", Color{}, true},
		{"#ff", Color{}, true},
		{"#gggggg", Color{}, true},
		{"#12345678", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidColor) {
					t.Errorf("ParseHexColor(%q) error = %v, want INVALID_COLOR", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHexColor(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorJSON(t *testing.T) {
	data, err := json.Marshal(Theme{Name: "x", Background: Color{1, 2, 3}, Text: Color{0xff, 0xee, 0xdd}})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"name":"x","background":"#010203","text":"#ffeedd"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestColorNRGBA(t *testing.T) {
	c := Color{10, 20, 30}
	if got := c.NRGBA(1).A; got != 255 {
		t.Errorf("NRGBA(1).A = %d, want 255", got)
	}
	if got := c.NRGBA(0).A; got != 0 {
		t.Errorf("NRGBA(0).A = %d, want 0", got)
	}
	if got := c.NRGBA(2).A; got != 255 {
		t.Errorf("NRGBA(2).A = %d, want clamped 255", got)
	}
}

func TestLookupTheme(t *testing.T) {
	tests := []struct {
		name string
		bg   string
		text string
	}{
		{"default", "#0a0f17", "#00c9ff"},
		{"matrix", "#001100", "#00ff66"},
		{"ocean", "#001f3f", "#7fdbff"},
		{"sunset", "#331100", "#ff9900"},
		{"Ocean", "#001f3f", "#7fdbff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th, err := LookupTheme(tt.name)
			if err != nil {
				t.Fatalf("LookupTheme(%q) error = %v", tt.name, err)
			}
			if th.Background.Hex() != tt.bg || th.Text.Hex() != tt.text {
				t.Errorf("LookupTheme(%q) = %s/%s, want %s/%s", tt.name, th.Background, th.Text, tt.bg, tt.text)
			}
		})
	}

	if _, err := LookupTheme("neon"); !errors.Is(err, errors.ErrCodeInvalidTheme) {
		t.Errorf("LookupTheme(neon) error = %v, want INVALID_THEME", err)
	}
}

func TestThemes(t *testing.T) {
	got := ThemeNames()
	want := []string{"default", "matrix", "ocean", "sunset"}
	if len(got) != len(want) {
		t.Fatalf("ThemeNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ThemeNames()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if len(Themes()) != len(want) {
		t.Errorf("Themes() returned %d themes", len(Themes()))
	}
}
