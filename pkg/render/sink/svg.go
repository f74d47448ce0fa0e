package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/codebanner/pkg/banner"
	"github.com/matzehuels/codebanner/pkg/fonts"
)

// RenderSVG draws the scene as a standalone SVG document. Text is positioned
// by the top of its line box, matching the layout footprints.
func RenderSVG(s *banner.Scene) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width, s.Height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", s.Background.Hex())

	fmt.Fprintf(&buf, `  <g class="code" font-family="%s" fill="%s" dominant-baseline="text-before-edge">`+"\n",
		EscapeXML(fonts.Mono.CSSFamily()), s.Text.Hex())
	for _, p := range s.Phrases {
		fmt.Fprintf(&buf, `    <text x="%.2f" y="%.2f" font-size="%.2f" opacity="%.3f" xml:space="preserve">%s</text>`+"\n",
			p.Rect.X, p.Rect.Y, p.Size, p.Opacity, EscapeXML(p.Text))
	}
	buf.WriteString("  </g>\n")

	fmt.Fprintf(&buf, `  <g class="profile" fill="%s" dominant-baseline="text-before-edge">`+"\n", s.Text.Hex())
	for _, l := range s.Profile {
		fmt.Fprintf(&buf, `    <text x="%.2f" y="%.2f" font-family="%s" font-weight="%s" font-size="%.2f">%s</text>`+"\n",
			l.Rect.X, l.Rect.Y, EscapeXML(l.Family.CSSFamily()), l.Family.CSSWeight(), l.Size, EscapeXML(l.Text))
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// EscapeXML escapes text for use in XML character data and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
