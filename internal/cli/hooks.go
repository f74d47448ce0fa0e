package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/codebanner/pkg/observability"
)

// logHooks reports observability events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

// registerLogHooks installs logHooks for every event category.
func registerLogHooks(l *log.Logger) {
	h := logHooks{logger: l.WithPrefix("events")}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h logHooks) debug(msg string, err error, kv ...any) {
	if err != nil {
		kv = append(kv, "error", err)
	}
	h.logger.Debug(msg, kv...)
}

func (h logHooks) OnPhrasesResolved(_ context.Context, source string, count int, err error) {
	h.debug("phrases resolved", err, "source", source, "count", count)
}

func (h logHooks) OnLayoutStart(_ context.Context, requested int) {
	h.debug("layout start", nil, "requested", requested)
}

func (h logHooks) OnLayoutComplete(_ context.Context, placed, unplaced, attempts int, d time.Duration, err error) {
	h.debug("layout complete", err, "placed", placed, "unplaced", unplaced, "attempts", attempts, "duration", d)
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string, engine string) {
	h.debug("render start", nil, "formats", formats, "engine", engine)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.debug("render complete", err, "formats", formats, "duration", d)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.debug("cache hit", nil, "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.debug("cache miss", nil, "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.debug("cache set", nil, "type", keyType, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.debug("http request", nil, "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.debug("http response", nil, "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.debug("http error", err, "method", method, "host", host, "path", path)
}

var (
	_ observability.PipelineHooks = logHooks{}
	_ observability.CacheHooks    = logHooks{}
	_ observability.HTTPHooks     = logHooks{}
)
