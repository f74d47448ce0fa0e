package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/codebanner/pkg/banner"
	"github.com/matzehuels/codebanner/pkg/errors"
	"github.com/matzehuels/codebanner/pkg/pipeline"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, banner.Themes())
}

func (s *Server) handleBanner(w http.ResponseWriter, r *http.Request) {
	format := pipeline.NormalizeFormat(chi.URLParam(r, "format"))
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, err)
		return
	}

	opts, err := s.options(r.URL.Query(), format)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", pipeline.ContentTypes[format])
	h.Set("X-Run-ID", result.RunID)
	h.Set("X-Seed", strconv.FormatUint(result.Seed, 10))
	h.Set("X-Phrases-Placed", strconv.Itoa(result.Stats.Placed))
	if opts.Seeded() {
		h.Set("Cache-Control", "public, max-age=86400")
	} else {
		h.Set("Cache-Control", "no-store")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// options translates query parameters into pipeline options on top of the
// banner defaults.
func (s *Server) options(q url.Values, format string) (pipeline.Options, error) {
	cfg := banner.DefaultConfig()

	strs := map[string]*string{
		"name":    &cfg.Profile.Name,
		"title":   &cfg.Profile.Title,
		"tagline": &cfg.Profile.Tagline,
		"theme":   &cfg.Theme,
		"bg":      &cfg.Background,
		"text":    &cfg.Text,
	}
	for key, dst := range strs {
		if q.Has(key) {
			*dst = q.Get(key)
		}
	}

	var err error
	if cfg.PhraseCount, err = intParam(q, "count", cfg.PhraseCount); err != nil {
		return pipeline.Options{}, err
	}
	if cfg.MaxAttempts, err = intParam(q, "max_attempts", cfg.MaxAttempts); err != nil {
		return pipeline.Options{}, err
	}
	if cfg.Width, err = floatParam(q, "width", cfg.Width); err != nil {
		return pipeline.Options{}, err
	}
	if cfg.Height, err = floatParam(q, "height", cfg.Height); err != nil {
		return pipeline.Options{}, err
	}
	if v := q.Get("seed"); v != "" {
		if cfg.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return pipeline.Options{}, invalidParam("seed", v)
		}
	}

	opts := pipeline.Options{
		Banner:      cfg,
		Phrases:     s.cfg.Phrases,
		Formats:     []string{format},
		Engine:      s.cfg.Engine,
		Logger:      s.logger,
		BrowserPath: s.cfg.BrowserPath,
		NoSandbox:   s.cfg.NoSandbox,
	}
	if v := q.Get("engine"); v != "" {
		opts.Engine = v
	}
	if v := q.Get("phrases"); v != "" {
		if !s.cfg.AllowRemotePhrases {
			return opts, errors.New(errors.ErrCodeInvalidInput, "the phrases parameter is disabled on this server")
		}
		if err := errors.ValidateURL(v); err != nil {
			return opts, err
		}
		opts.Phrases = v
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

func intParam(q url.Values, key string, def int) (int, error) {
	v := q.Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, invalidParam(key, v)
	}
	return n, nil
}

func floatParam(q url.Values, key string, def float64) (float64, error) {
	v := q.Get(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, invalidParam(key, v)
	}
	return f, nil
}

func invalidParam(key, value string) error {
	return errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", key, value)
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("banner request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  errors.GetCode(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
