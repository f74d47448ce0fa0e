package errors

import (
	"math"
	"testing"
)

func TestValidateDimension(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"positive", 800, false},
		{"fractional", 0.5, false},

		{"zero", 0, true},
		{"negative", -1, true},
		{"NaN", math.NaN(), true},
		{"+Inf", math.Inf(1), true},
		{"-Inf", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimension("width", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimension(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateDimension(%v) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 12.5, false},

		{"negative", -0.1, true},
		{"NaN", math.NaN(), true},
		{"Inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNonNegative("height", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNonNegative(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFinite(t *testing.T) {
	if err := ValidateFinite("x", -40); err != nil {
		t.Errorf("ValidateFinite(-40) = %v, want nil", err)
	}
	if err := ValidateFinite("x", math.NaN()); err == nil {
		t.Error("ValidateFinite(NaN) = nil, want error")
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.com/phrases.json", false},
		{"http", "http://example.com/phrases.json", false},

		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"file", "file:///etc/passwd", true},
		{"javascript", "javascript:alert(1)", true},
		{"no scheme", "example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "phrases.json", false},
		{"nested", "config/banner.toml", false},
		{"absolute", "/etc/codebanner/banner.toml", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidTheme,
		ErrCodeInvalidColor,
		ErrCodeInvalidEngine,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeRenderFailed,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
