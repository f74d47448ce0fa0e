// Package phrases supplies the code snippets scattered across a banner.
//
// Phrases come from one of three places:
//
//   - [Default]: the built-in set compiled into the binary
//   - [Load]: a local JSON ({"phrases": [...]}) or TOML (phrases = [...]) file
//   - [Fetch]: the same JSON document served over HTTP
//
// [Resolve] picks the source from a path or URL and falls back to the
// built-in set when the source cannot be read, returning the failure so the
// caller can report it.
package phrases

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/codebanner/pkg/errors"
	"github.com/matzehuels/codebanner/pkg/httputil"
)

var builtin = []string{
	"const solution = (problem) => solve(problem);",
	"def code_elegantly(): return beautiful_code",
	"public class Success { private HardWork hardWork; }",
	"function createFuture() { while(true) { innovate(); } }",
	"while(!succeed) { tryAgain(); }",
	"let innovation = creativity + execution;",
	"async function achieveGoals() { await workHard(); }",
	"const createValue = (skills, passion) => success;",
	"class Developer extends ProblemSolver {}",
	"const efficientAlgorithm = (data) => data.process();",
	"const debug = () => { console.log('Fixed it!'); };",
	"const deploySolution = () => { return 'Production ready!'; };",
	"const optimize = (code) => code.refactor();",
	"const learnNewTech = () => { while(true) { study(); } };",
	"const collaborate = (team) => team.achieveGoals();",
}

// Default returns a copy of the built-in phrase set.
func Default() []string {
	return slices.Clone(builtin)
}

// document is the on-disk and over-the-wire shape of a phrase list.
type document struct {
	Phrases []string `json:"phrases" toml:"phrases"`
}

// Parse decodes a phrase document. format is "json" or "toml".
// Blank entries are dropped; an empty result is an error.
func Parse(data []byte, format string) ([]string, error) {
	var doc document
	switch format {
	case "json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode phrase JSON")
		}
	case "toml":
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode phrase TOML")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported phrase format %q (must be json or toml)", format)
	}
	return clean(doc.Phrases)
}

func clean(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "phrase list is empty")
	}
	return out, nil
}

// Load reads a phrase file. The format follows the extension: .toml is TOML,
// anything else is JSON.
func Load(path string) ([]string, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "phrase file %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read phrase file %s", path)
	}
	return Parse(data, formatFor(path))
}

func formatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return "toml"
	}
	return "json"
}

// Fetch downloads a JSON phrase document. A nil fetcher uses defaults.
func Fetch(ctx context.Context, f *httputil.Fetcher, url string) ([]string, error) {
	if f == nil {
		f = httputil.NewFetcher(nil)
	}
	data, err := f.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return Parse(data, formatFor(url))
}

// Resolve loads phrases from source, which may be empty, a file path or an
// http(s) URL. On failure it returns the built-in set together with the
// error, so the banner can still be generated.
func Resolve(ctx context.Context, f *httputil.Fetcher, source string) ([]string, error) {
	if source == "" {
		return Default(), nil
	}

	var (
		list []string
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		list, err = Fetch(ctx, f, source)
	} else {
		list, err = Load(source)
	}
	if err != nil {
		return Default(), err
	}
	return list, nil
}
