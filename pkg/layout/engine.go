package layout

import (
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/codebanner/pkg/errors"
)

// DefaultMaxAttempts is the number of candidate positions tried per item
// before the item is reported as unplaced.
const DefaultMaxAttempts = 100

// Item is a text payload with its measured footprint. The engine never
// measures text itself; width and height must be known up front.
type Item struct {
	Text   string  `json:"text"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Placement is the outcome for one item. When Placed is false the item found
// no free position and Rect is the zero value.
type Placement struct {
	Item   Item `json:"item"`
	Rect   Rect `json:"rect"`
	Placed bool `json:"placed"`
}

// Config describes a full placement pass.
type Config struct {
	CanvasWidth  float64
	CanvasHeight float64
	Reserved     Rect
	Items        []Item
	// MaxAttempts overrides the engine budget when positive.
	MaxAttempts int
}

// Validate checks the canvas, the reserved region and every item size.
// An empty item list is valid.
func (c Config) Validate() error {
	if err := errors.ValidateDimension("canvas width", c.CanvasWidth); err != nil {
		return err
	}
	if err := errors.ValidateDimension("canvas height", c.CanvasHeight); err != nil {
		return err
	}
	if err := c.Reserved.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "reserved region")
	}
	if c.MaxAttempts < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max attempts must not be negative, got %d", c.MaxAttempts)
	}
	for i, it := range c.Items {
		if err := errors.ValidateNonNegative("item width", it.Width); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "item %d", i)
		}
		if err := errors.ValidateNonNegative("item height", it.Height); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "item %d", i)
		}
	}
	return nil
}

// Option configures an [Engine].
type Option func(*Engine)

// WithRand uses r as the source of candidate positions.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

// WithSeed makes candidate positions reproducible for the given seed.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.rng = NewRand(seed) }
}

// WithMaxAttempts sets the per-item attempt budget. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.maxAttempts = n
		}
	}
}

// NewRand returns the PCG source used for a seeded pass.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Engine places items by bounded rejection sampling. It owns the occupied
// rectangles of the current pass.
type Engine struct {
	rng         *rand.Rand
	maxAttempts int
	occupied    []Rect
	attempts    int
}

// New creates an engine. Without [WithSeed] or [WithRand] the engine draws
// positions from an entropy-seeded source.
func New(opts ...Option) *Engine {
	e := &Engine{maxAttempts: DefaultMaxAttempts}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return e
}

// Reset discards all occupied rectangles and the attempt counter.
func (e *Engine) Reset() {
	e.occupied = e.occupied[:0]
	e.attempts = 0
}

// Reserve marks region as occupied. It must precede any [Engine.Place] call
// of the pass. A malformed region is rejected and leaves the state untouched.
func (e *Engine) Reserve(region Rect) error {
	if err := region.Validate(); err != nil {
		return err
	}
	e.occupied = append(e.occupied, region)
	return nil
}

// Place searches for a free position for item inside a canvasW × canvasH
// canvas. On success the footprint is recorded and returned with true. When
// the item does not fit the canvas, or every attempt collides, Place returns
// false and leaves the state unchanged.
func (e *Engine) Place(item Item, canvasW, canvasH float64) (Rect, bool) {
	return e.place(item, canvasW, canvasH, e.maxAttempts)
}

func (e *Engine) place(item Item, canvasW, canvasH float64, budget int) (Rect, bool) {
	spanX := canvasW - item.Width
	spanY := canvasH - item.Height
	if spanX < 0 || spanY < 0 {
		return Rect{}, false
	}

	for range budget {
		e.attempts++
		cand := Rect{
			X: e.rng.Float64() * spanX,
			Y: e.rng.Float64() * spanY,
			W: item.Width,
			H: item.Height,
		}
		if !e.collides(cand) {
			e.occupied = append(e.occupied, cand)
			return cand, true
		}
	}
	return Rect{}, false
}

func (e *Engine) collides(r Rect) bool {
	for _, used := range e.occupied {
		if Overlaps(r, used) {
			return true
		}
	}
	return false
}

// Generate runs a full pass: it resets the state, reserves cfg.Reserved and
// places every item in order. The result has one entry per input item,
// unplaced ones included. Invalid configurations are rejected before any
// placement is attempted.
func (e *Engine) Generate(cfg Config) ([]Placement, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	budget := e.maxAttempts
	if cfg.MaxAttempts > 0 {
		budget = cfg.MaxAttempts
	}

	e.Reset()
	if err := e.Reserve(cfg.Reserved); err != nil {
		return nil, err
	}

	results := make([]Placement, len(cfg.Items))
	for i, it := range cfg.Items {
		r, ok := e.place(it, cfg.CanvasWidth, cfg.CanvasHeight, budget)
		results[i] = Placement{Item: it, Rect: r, Placed: ok}
	}
	return results, nil
}

// State returns a copy of the occupied rectangles in insertion order:
// the reserved region first, then each accepted placement.
func (e *Engine) State() []Rect {
	return slices.Clone(e.occupied)
}

// Attempts returns the number of candidate positions drawn since the last reset.
func (e *Engine) Attempts() int {
	return e.attempts
}

// MaxAttempts returns the engine's per-item attempt budget.
func (e *Engine) MaxAttempts() int {
	return e.maxAttempts
}

// Placed filters results down to the items that found a position,
// preserving placement order.
func Placed(results []Placement) []Placement {
	out := make([]Placement, 0, len(results))
	for _, p := range results {
		if p.Placed {
			out = append(out, p)
		}
	}
	return out
}
