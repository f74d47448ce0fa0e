package phrases

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/codebanner/pkg/errors"
	"github.com/matzehuels/codebanner/pkg/httputil"
)

func TestDefault(t *testing.T) {
	got := Default()
	if len(got) != 15 {
		t.Fatalf("Default() has %d phrases, want 15", len(got))
	}
	got[0] = "mutated"
	if Default()[0] == "mutated" {
		t.Error("Default() exposes the built-in slice")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  string
		want    int
		wantErr errors.Code
	}{
		{"json", `{"phrases": ["a();", "b();"]}`, "json", 2, ""},
		{"toml", "phrases = [\"a();\", \"b();\", \"c();\"]\n", "toml", 3, ""},
		{"blank entries dropped", `{"phrases": ["a();", "  ", ""]}`, "json", 1, ""},
		{"empty list", `{"phrases": []}`, "json", 0, errors.ErrCodeInvalidInput},
		{"malformed json", `{"phrases": [`, "json", 0, errors.ErrCodeInvalidInput},
		{"malformed toml", `phrases = [`, "toml", 0, errors.ErrCodeInvalidInput},
		{"unknown format", `phrases: []`, "yaml", 0, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.data), tt.format)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse() error = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("Parse() = %v, want %d phrases", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "phrases.json")
	tomlPath := filepath.Join(dir, "phrases.toml")
	os.WriteFile(jsonPath, []byte(`{"phrases": ["go run ."]}`), 0o644)
	os.WriteFile(tomlPath, []byte(`phrases = ["go test ./..."]`), 0o644)

	if got, err := Load(jsonPath); err != nil || got[0] != "go run ." {
		t.Errorf("Load(json) = %v, %v", got, err)
	}
	if got, err := Load(tomlPath); err != nil || got[0] != "go test ./..." {
		t.Errorf("Load(toml) = %v, %v", got, err)
	}
	if _, err := Load(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestResolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/phrases.json" {
			w.Write([]byte(`{"phrases": ["fmt.Println(42)"]}`))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := httputil.NewFetcher(srv.Client())
	f.Delay = time.Millisecond
	ctx := context.Background()

	t.Run("empty source", func(t *testing.T) {
		got, err := Resolve(ctx, f, "")
		if err != nil || len(got) != len(builtin) {
			t.Errorf("Resolve(\"\") = %d phrases, %v", len(got), err)
		}
	})

	t.Run("url", func(t *testing.T) {
		got, err := Resolve(ctx, f, srv.URL+"/phrases.json")
		if err != nil || len(got) != 1 || got[0] != "fmt.Println(42)" {
			t.Errorf("Resolve(url) = %v, %v", got, err)
		}
	})

	t.Run("url falls back", func(t *testing.T) {
		got, err := Resolve(ctx, f, srv.URL+"/missing.json")
		if err == nil {
			t.Error("Resolve() hid the fetch failure")
		}
		if len(got) != len(builtin) {
			t.Errorf("Resolve() fallback has %d phrases, want %d", len(got), len(builtin))
		}
	})

	t.Run("file falls back", func(t *testing.T) {
		got, err := Resolve(ctx, f, filepath.Join(t.TempDir(), "nope.toml"))
		if err == nil || len(got) != len(builtin) {
			t.Errorf("Resolve(missing file) = %d phrases, %v", len(got), err)
		}
	})
}
