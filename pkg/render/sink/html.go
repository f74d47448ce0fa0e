package sink

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"

	"github.com/matzehuels/codebanner/pkg/banner"
	"github.com/matzehuels/codebanner/pkg/fonts"
)

// BannerID is the element id of the banner container in HTML output.
const BannerID = "banner"

// HTMLOption configures [RenderHTML].
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	embedFonts bool
	title      string
}

// WithEmbeddedFonts inlines the Go fonts as @font-face data URIs so the page
// renders identically without installed fonts.
func WithEmbeddedFonts() HTMLOption { return func(r *htmlRenderer) { r.embedFonts = true } }

// WithTitle sets the document title (default: the profile name).
func WithTitle(t string) HTMLOption { return func(r *htmlRenderer) { r.title = t } }

// RenderHTML renders the scene as a standalone page: a fixed-size banner
// element with every phrase and profile line absolutely positioned.
func RenderHTML(s *banner.Scene, opts ...HTMLOption) []byte {
	r := htmlRenderer{title: "codebanner"}
	if len(s.Profile) > 0 {
		r.title = s.Profile[0].Text
	}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n<style>\n", html.EscapeString(r.title))
	if r.embedFonts {
		writeFontFaces(&buf)
	}
	fmt.Fprintf(&buf, `html, body { margin: 0; padding: 0; background: %s; }
#%s { position: relative; overflow: hidden; width: %.0fpx; height: %.0fpx; background-color: %s; color: %s; }
#%s > div { position: absolute; white-space: pre; line-height: normal; }
.code-element { font-family: %s; }
`, s.Background.Hex(), BannerID, s.Width, s.Height, s.Background.Hex(), s.Text.Hex(), BannerID, fonts.Mono.CSSFamily())
	buf.WriteString("</style>\n</head>\n<body>\n")

	fmt.Fprintf(&buf, "<div id=\"%s\">\n", BannerID)
	for _, p := range s.Phrases {
		fmt.Fprintf(&buf, `  <div class="code-element" style="left: %.2fpx; top: %.2fpx; font-size: %.2fpx; opacity: %.3f;">%s</div>`+"\n",
			p.Rect.X, p.Rect.Y, p.Size, p.Opacity, html.EscapeString(p.Text))
	}
	for _, l := range s.Profile {
		fmt.Fprintf(&buf, `  <div class="profile-line" style="left: %.2fpx; top: %.2fpx; font-family: %s; font-weight: %s; font-size: %.2fpx;">%s</div>`+"\n",
			l.Rect.X, l.Rect.Y, l.Family.CSSFamily(), l.Family.CSSWeight(), l.Size, html.EscapeString(l.Text))
	}
	buf.WriteString("</div>\n</body>\n</html>\n")
	return buf.Bytes()
}

// writeFontFaces embeds the Go fonts under the names CSSFamily uses. Regular
// and Bold are two weights of one 'Go' family.
func writeFontFaces(buf *bytes.Buffer) {
	faces := []struct {
		family fonts.Family
		name   string
	}{
		{fonts.Mono, "Go Mono"},
		{fonts.Regular, "Go"},
		{fonts.Bold, "Go"},
	}
	for _, f := range faces {
		ttf, ok := fonts.TTF(f.family)
		if !ok {
			continue
		}
		fmt.Fprintf(buf, "@font-face { font-family: '%s'; font-weight: %s; src: url(data:font/ttf;base64,%s) format('truetype'); }\n",
			f.name, f.family.CSSWeight(), base64.StdEncoding.EncodeToString(ttf))
	}
}
