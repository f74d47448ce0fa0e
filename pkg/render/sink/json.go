package sink

import (
	"encoding/json"

	"github.com/matzehuels/codebanner/pkg/banner"
)

// RenderJSON exports the scene: canvas, colors, profile lines, reserved
// region, placed phrases, seed and placement stats.
func RenderJSON(s *banner.Scene) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
