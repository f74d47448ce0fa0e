package sink

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/png"
	"math"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/matzehuels/codebanner/pkg/banner"
	"github.com/matzehuels/codebanner/pkg/errors"
	"github.com/matzehuels/codebanner/pkg/render"
)

// DefaultBrowserTimeout bounds a single headless Chrome render.
const DefaultBrowserTimeout = 30 * time.Second

// BrowserOption configures [RenderBrowser].
type BrowserOption func(*browserRenderer)

type browserRenderer struct {
	timeout   time.Duration
	execPath  string
	noSandbox bool
}

// WithBrowserTimeout bounds the whole browser session. Values <= 0 are ignored.
func WithBrowserTimeout(d time.Duration) BrowserOption {
	return func(r *browserRenderer) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithExecPath runs the Chrome binary at path instead of searching $PATH.
func WithExecPath(path string) BrowserOption {
	return func(r *browserRenderer) { r.execPath = path }
}

// WithNoSandbox disables the Chrome sandbox, needed when running as root in
// containers.
func WithNoSandbox() BrowserOption { return func(r *browserRenderer) { r.noSandbox = true } }

// RenderBrowser renders the scene's HTML in headless Chrome, screenshots the
// banner element and exports it in format.
func RenderBrowser(ctx context.Context, s *banner.Scene, format string, opts ...BrowserOption) ([]byte, error) {
	r := browserRenderer{timeout: DefaultBrowserTimeout}
	for _, opt := range opts {
		opt(&r)
	}

	shot, err := r.screenshot(ctx, s)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "decode browser screenshot")
	}
	return render.Export(img, s.Background, format)
}

func (r browserRenderer) screenshot(ctx context.Context, s *banner.Scene) ([]byte, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless,
		chromedp.WindowSize(int(math.Ceil(s.Width)), int(math.Ceil(s.Height))),
	)
	if r.execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.execPath))
	}
	if r.noSandbox {
		allocOpts = append(allocOpts, chromedp.NoSandbox)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var buf []byte
	selector := "#" + BannerID
	tasks := chromedp.Tasks{
		chromedp.Navigate(HTMLDataURI(s)),
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Screenshot(selector, &buf, chromedp.ByQuery),
	}
	if err := chromedp.Run(browserCtx, tasks); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "browser render timed out after %s", r.timeout)
		}
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "browser render")
	}
	if len(buf) == 0 {
		return nil, errors.New(errors.ErrCodeRenderFailed, "browser returned an empty screenshot")
	}
	return buf, nil
}

// HTMLDataURI returns the scene's self-contained HTML (fonts embedded) as a
// base64 data URI.
func HTMLDataURI(s *banner.Scene) string {
	page := RenderHTML(s, WithEmbeddedFonts())
	return "data:text/html;base64," + base64.StdEncoding.EncodeToString(page)
}
