package banner

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/codebanner/pkg/errors"
	"github.com/matzehuels/codebanner/pkg/fonts"
	"github.com/matzehuels/codebanner/pkg/layout"
)

// Profile block geometry.
const (
	ProfilePadding = 48.0
	ProfileLineGap = 6.0

	NameSize    = 40.0
	TitleSize   = 22.0
	TaglineSize = 16.0
)

// Reserved region factors applied to the profile block's bounding box.
const (
	ReserveWidthFactor  = 1.5
	ReserveHeightFactor = 2.0
)

// Phrase styling ranges: size in [PhraseMinSize, PhraseMinSize+PhraseSizeRange)
// and opacity in [PhraseMinOpacity, PhraseMinOpacity+PhraseOpacityRange).
const (
	PhraseMinSize      = 10.0
	PhraseSizeRange    = 6.0
	PhraseMinOpacity   = 0.15
	PhraseOpacityRange = 0.2
)

// TextLine is one line of the profile block.
type TextLine struct {
	Text   string       `json:"text"`
	Family fonts.Family `json:"family"`
	Size   float64      `json:"size"`
	Rect   layout.Rect  `json:"rect"`
}

// Phrase is a placed code phrase.
type Phrase struct {
	Text    string      `json:"text"`
	Size    float64     `json:"size"`
	Opacity float64     `json:"opacity"`
	Rect    layout.Rect `json:"rect"`
}

// Stats summarizes the placement pass.
type Stats struct {
	Requested int `json:"requested"`
	Placed    int `json:"placed"`
	Unplaced  int `json:"unplaced"`
	Attempts  int `json:"attempts"`
}

// Scene is a fully composed banner, ready for any sink.
type Scene struct {
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Theme      string      `json:"theme"`
	Background Color       `json:"background"`
	Text       Color       `json:"text"`
	Profile    []TextLine  `json:"profile"`
	Reserved   layout.Rect `json:"reserved"`
	Phrases    []Phrase    `json:"phrases"`
	Seed       uint64      `json:"seed"`
	Stats      Stats       `json:"stats"`
}

// Compose lays out the profile block and scatters cfg.PhraseCount phrases
// drawn from phrases around it. Zero-valued sizes, theme and attempt budget
// take their defaults. Phrases that find no free position are counted in
// Stats.Unplaced and left out of the scene.
func Compose(cfg Config, phrases []string, m fonts.Measurer) (*Scene, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.PhraseCount > 0 && len(phrases) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no phrases to choose from")
	}
	theme, err := cfg.Colors()
	if err != nil {
		return nil, err
	}

	lines, block, err := profileBlock(cfg.Profile, cfg.Height, m)
	if err != nil {
		return nil, err
	}

	rng := layout.NewRand(cfg.Seed)
	items, styles, err := pickPhrases(rng, cfg.PhraseCount, phrases, m)
	if err != nil {
		return nil, err
	}

	reserved := block.Expand(ReserveWidthFactor, ReserveHeightFactor)
	eng := layout.New(layout.WithRand(rng), layout.WithMaxAttempts(cfg.MaxAttempts))
	results, err := eng.Generate(layout.Config{
		CanvasWidth:  cfg.Width,
		CanvasHeight: cfg.Height,
		Reserved:     reserved,
		Items:        items,
		MaxAttempts:  cfg.MaxAttempts,
	})
	if err != nil {
		return nil, err
	}

	scene := &Scene{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Theme:      theme.Name,
		Background: theme.Background,
		Text:       theme.Text,
		Profile:    lines,
		Reserved:   reserved,
		Phrases:    make([]Phrase, 0, len(results)),
		Seed:       cfg.Seed,
		Stats:      Stats{Requested: len(items), Attempts: eng.Attempts()},
	}
	for i, r := range results {
		if !r.Placed {
			scene.Stats.Unplaced++
			continue
		}
		scene.Stats.Placed++
		scene.Phrases = append(scene.Phrases, Phrase{
			Text:    r.Item.Text,
			Size:    styles[i].size,
			Opacity: styles[i].opacity,
			Rect:    r.Rect,
		})
	}
	return scene, nil
}

// profileBlock stacks the non-empty profile lines at the left padding,
// centered vertically, and returns them with their bounding box.
func profileBlock(p Profile, canvasH float64, m fonts.Measurer) ([]TextLine, layout.Rect, error) {
	specs := []TextLine{
		{Text: p.Name, Family: fonts.Bold, Size: NameSize},
		{Text: p.Title, Family: fonts.Regular, Size: TitleSize},
		{Text: p.Tagline, Family: fonts.Regular, Size: TaglineSize},
	}

	var lines []TextLine
	var blockW, blockH float64
	for _, l := range specs {
		if l.Text == "" {
			continue
		}
		w, h, err := m.Measure(l.Text, l.Family, l.Size)
		if err != nil {
			return nil, layout.Rect{}, errors.Wrap(errors.ErrCodeRenderFailed, err, "measure profile text")
		}
		if len(lines) > 0 {
			blockH += ProfileLineGap
		}
		l.Rect = layout.Rect{X: ProfilePadding, Y: blockH, W: w, H: h}
		blockH += h
		blockW = max(blockW, w)
		lines = append(lines, l)
	}

	top := max(0, (canvasH-blockH)/2)
	for i := range lines {
		lines[i].Rect.Y += top
	}
	return lines, layout.Rect{X: ProfilePadding, Y: top, W: blockW, H: blockH}, nil
}

type phraseStyle struct {
	size    float64
	opacity float64
}

// pickPhrases draws count phrases with replacement and measures each at its
// drawn size.
func pickPhrases(rng *rand.Rand, count int, phrases []string, m fonts.Measurer) ([]layout.Item, []phraseStyle, error) {
	items := make([]layout.Item, 0, count)
	styles := make([]phraseStyle, 0, count)
	for range count {
		text := phrases[rng.IntN(len(phrases))]
		size := quantize(PhraseMinSize + rng.Float64()*PhraseSizeRange)
		opacity := PhraseMinOpacity + rng.Float64()*PhraseOpacityRange

		w, h, err := m.Measure(text, fonts.Mono, size)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "measure phrase")
		}
		items = append(items, layout.Item{Text: text, Width: w, Height: h})
		styles = append(styles, phraseStyle{size: size, opacity: opacity})
	}
	return items, styles, nil
}

// quantize rounds a font size to a quarter pixel, keeping the measurer's face
// cache small.
func quantize(size float64) float64 {
	return math.Round(size*4) / 4
}
