// Package banner composes a profile banner: a themed canvas with the owner's
// name, title and tagline on the left and code phrases scattered around it.
//
// # Composition
//
// [Compose] turns a [Config] and a phrase set into a [Scene]:
//
//  1. Lay out the profile block at the left padding, vertically centered.
//  2. Expand its bounding box by 1.5 horizontally and 2 vertically (top-left
//     anchored) into the reserved region.
//  3. For each requested phrase, draw a phrase uniformly (with replacement),
//     a font size in [10, 16) and an opacity in [0.15, 0.35), then measure it.
//  4. Place the measured phrases with the layout engine.
//
// All randomness comes from a single PCG source seeded with [Config.Seed],
// so a seed fully determines the scene.
//
// A Scene is render-agnostic; the sinks in pkg/render/sink draw it as PNG,
// JPEG, SVG, HTML or JSON.
//
// # Themes
//
// Four presets are built in (see [Themes]). Explicit background and text
// colors in the Config override the theme's.
package banner
