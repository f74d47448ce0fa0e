// Package layout places text snippets on a bounded canvas without overlap.
//
// # Overview
//
// The engine scatters items (pre-measured text snippets) across a canvas
// using bounded rejection sampling. Each pass starts by reserving a region
// that no item may cover (typically the space around the profile text), then
// places items one at a time in input order:
//
//  1. Draw a random top-left corner such that the item stays inside the canvas.
//  2. Test the candidate footprint against every occupied [Rect].
//  3. Accept the first candidate that overlaps nothing, otherwise retry.
//  4. Give up after the attempt budget (default 100) and report the item
//     as unplaced.
//
// Unplaced items are a normal outcome, not an error. Earlier items get first
// claim on space, so a crowded canvas degrades gracefully: later items are
// dropped rather than the pass failing.
//
// # Overlap
//
// Two rectangles overlap when their interiors intersect. Edges are half-open,
// so rectangles that merely touch do not overlap:
//
//	layout.Overlaps(layout.Rect{W: 10, H: 10}, layout.Rect{X: 10, Y: 10, W: 10, H: 10}) // false
//	layout.Overlaps(layout.Rect{W: 10, H: 10}, layout.Rect{X: 9, Y: 9, W: 10, H: 10})   // true
//
// # Generating a Layout
//
//	eng := layout.New(layout.WithSeed(42))
//	results, err := eng.Generate(layout.Config{
//	    CanvasWidth:  800,
//	    CanvasHeight: 200,
//	    Reserved:     layout.Rect{X: 40, Y: 60, W: 300, H: 120},
//	    Items:        items,
//	})
//	for _, p := range layout.Placed(results) {
//	    fmt.Println(p.Item.Text, p.Rect)
//	}
//
// # Randomness
//
// Positions come from a math/rand/v2 source. [WithSeed] and [WithRand] make a
// pass reproducible; without them the engine seeds itself from entropy.
//
// # Options
//
//   - [WithSeed]: Deterministic PCG source for the given seed
//   - [WithRand]: Use a caller-owned random source
//   - [WithMaxAttempts]: Attempt budget per item (default [DefaultMaxAttempts])
//
// An [Engine] holds the occupied rectangles of the current pass and is not
// safe for concurrent use. Create one engine per goroutine.
package layout
