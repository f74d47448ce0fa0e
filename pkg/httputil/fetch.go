package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/codebanner/pkg/buildinfo"
	"github.com/matzehuels/codebanner/pkg/errors"
	"github.com/matzehuels/codebanner/pkg/observability"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultAttempts = 3
	defaultDelay    = time.Second
	defaultMaxBytes = 1 << 20
)

// Fetcher performs GET requests with retry on transient failures.
type Fetcher struct {
	Client   *http.Client
	Attempts int
	Delay    time.Duration
	MaxBytes int64
}

// NewFetcher returns a Fetcher with default retry settings.
// A nil client gets a dedicated client with a 10 second timeout.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Fetcher{
		Client:   client,
		Attempts: defaultAttempts,
		Delay:    defaultDelay,
		MaxBytes: defaultMaxBytes,
	}
}

// Get fetches url and returns the response body.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	if err := errors.ValidateURL(url); err != nil {
		return nil, err
	}

	var body []byte
	err := Retry(ctx, f.Attempts, f.Delay, func() error {
		data, err := f.get(ctx, url)
		if err != nil {
			return err
		}
		body = data
		return nil
	})
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)
	}
	return body, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := f.Client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: err}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &RetryableError{Err: fmt.Errorf("status %d", resp.StatusCode), After: retryAfter(resp.Header)}
	case resp.StatusCode >= 500:
		return nil, &RetryableError{Err: fmt.Errorf("status %d", resp.StatusCode)}
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "%s not found", url)
	case resp.StatusCode != http.StatusOK:
		return nil, errors.New(errors.ErrCodeNetwork, "unexpected status %d from %s", resp.StatusCode, url)
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = defaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, &RetryableError{Err: err}
	}
	if int64(len(data)) > limit {
		return nil, errors.New(errors.ErrCodeInvalidInput, "response from %s exceeds %d bytes", url, limit)
	}
	return data, nil
}
