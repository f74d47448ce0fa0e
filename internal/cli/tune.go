package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/codebanner/pkg/banner"
	"github.com/matzehuels/codebanner/pkg/pipeline"
)

const (
	previewCols = 96
	previewRows = 16
)

// tuneCommand creates the interactive tuner.
func (c *CLI) tuneCommand() *cobra.Command {
	var (
		flags  bannerFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "tune",
		Short: "Adjust theme, phrase count and layout interactively",
		Long: `Preview the banner in the terminal and adjust it with the keyboard.
Every change regenerates the layout; press s to save the current banner.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") || cfg.Output == "" {
				cfg.Output = output
			}
			return c.runTune(cmd.Context(), cfg)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "banner.png", "file written when saving (.png or .jpg)")

	return cmd
}

func (c *CLI) runTune(ctx context.Context, cfg fileConfig) error {
	format := formatFromPath(cfg.Output)
	if format != pipeline.FormatPNG && format != pipeline.FormatJPEG {
		return fmt.Errorf("tune saves raster images; %q needs a .png or .jpg extension", cfg.Output)
	}

	// Log lines would tear the alternate screen.
	quiet := newLogger(io.Discard, LogInfo)
	cfg.Formats = []string{format}
	opts, err := cfg.options(quiet)
	if err != nil {
		return err
	}
	if opts.Banner.Seed == 0 {
		opts.Banner.Seed = pipeline.NewSeed()
	}

	runner := pipeline.NewRunner(nil, quiet)
	defer runner.Close()

	model := newTuneModel(ctx, runner, opts, cfg.Output)
	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	if m, ok := final.(tuneModel); ok {
		for _, path := range m.saved {
			printFile(path)
		}
		if m.result != nil {
			printNextStep("Keep these settings with", m.flags())
		}
	}
	return nil
}

// =============================================================================
// tuneModel - Interactive banner tuner
// =============================================================================

// generatedMsg carries the outcome of a regeneration.
type generatedMsg struct {
	result *pipeline.Result
	err    error
}

// savedMsg carries the outcome of a save.
type savedMsg struct {
	path string
	err  error
}

// tuneModel is the bubbletea model of the tuner. Every change produces a
// fresh seeded pipeline run. pending counts runs in flight so that only the
// latest result is shown.
type tuneModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	opts   pipeline.Options
	output string

	themes  []string
	result  *pipeline.Result
	err     error
	status  string
	saved   []string
	pending int
}

func newTuneModel(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, output string) tuneModel {
	return tuneModel{
		ctx:     ctx,
		runner:  runner,
		opts:    opts,
		output:  output,
		themes:  banner.ThemeNames(),
		pending: 1,
	}
}

func (m tuneModel) Init() tea.Cmd {
	return m.generate()
}

// generate runs the pipeline for the current options.
func (m tuneModel) generate() tea.Cmd {
	opts := m.opts
	return func() tea.Msg {
		result, err := m.runner.Execute(m.ctx, opts)
		return generatedMsg{result: result, err: err}
	}
}

// save writes the artifact of the current result.
func (m tuneModel) save() tea.Cmd {
	result, path := m.result, m.output
	return func() tea.Msg {
		data, ok := result.Artifacts[m.opts.Formats[0]]
		if !ok {
			return savedMsg{err: fmt.Errorf("no %s artifact", m.opts.Formats[0])}
		}
		return savedMsg{path: path, err: writeFile(path, data)}
	}
}

func (m tuneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		m.pending--
		if m.pending > 0 {
			return m, nil
		}
		m.result, m.err = msg.result, msg.err
		return m, nil
	case savedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = "saved " + msg.path
		if !slices.Contains(m.saved, msg.path) {
			m.saved = append(m.saved, msg.path)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m tuneModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := &m.opts.Banner
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "t", "right", "l":
		b.Theme = m.nextTheme(1)
		b.Background, b.Text = "", ""
	case "T", "left", "h":
		b.Theme = m.nextTheme(-1)
		b.Background, b.Text = "", ""
	case "+", "=", "up", "k":
		if b.PhraseCount >= banner.MaxPhraseCount {
			return m, nil
		}
		b.PhraseCount++
	case "-", "down", "j":
		if b.PhraseCount <= 0 {
			return m, nil
		}
		b.PhraseCount--
	case "r", " ":
		b.Seed = pipeline.NewSeed()
	case "s", "enter":
		if m.result == nil {
			return m, nil
		}
		m.status = "saving..."
		return m, m.save()
	default:
		return m, nil
	}
	m.status = ""
	m.pending++
	return m, m.generate()
}

// nextTheme returns the preset step positions away from the current one.
func (m tuneModel) nextTheme(step int) string {
	i := slices.Index(m.themes, strings.ToLower(m.opts.Banner.Theme))
	n := len(m.themes)
	return m.themes[((i+step)%n+n)%n]
}

// flags returns the generate flags reproducing the tuned settings.
func (m tuneModel) flags() string {
	b := m.opts.Banner
	return fmt.Sprintf("--theme %s --count %d --seed %d", b.Theme, b.PhraseCount, b.Seed)
}

func (m tuneModel) View() string {
	var sb strings.Builder

	sb.WriteString(StyleTitle.Render("Tune Banner"))
	sb.WriteString("\n")
	sb.WriteString(StyleDim.Render("t/T theme  +/- phrases  r reshuffle  s save  q quit"))
	sb.WriteString("\n\n")

	b := m.opts.Banner
	sb.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n\n",
		StyleDim.Render("theme"), StyleHighlight.Render(b.Theme),
		StyleDim.Render("phrases"), StyleNumber.Render(fmt.Sprint(b.PhraseCount)),
		StyleDim.Render("seed"), StyleValue.Render(fmt.Sprint(b.Seed))))

	switch {
	case m.err != nil:
		sb.WriteString(StyleWarning.Render(m.err.Error()))
	case m.result == nil:
		sb.WriteString(StyleDim.Render("generating..."))
	default:
		sb.WriteString(colorStyle(m.result.Scene.Background, m.result.Scene.Text).Render(preview(m.result.Scene, previewCols, previewRows)))
		st := m.result.Stats
		sb.WriteString("\n")
		sb.WriteString(StyleDim.Render(fmt.Sprintf("%d/%d placed · %d attempts", st.Placed, st.Requested, st.Attempts)))
	}

	if m.status != "" {
		sb.WriteString("\n\n")
		sb.WriteString(StyleSuccess.Render(m.status))
	}
	sb.WriteString("\n")
	return sb.String()
}

// preview draws a scene on a cols × rows character grid. Phrases and
// profile lines start at their scaled positions and are clipped to their
// scaled width.
func preview(s *banner.Scene, cols, rows int) string {
	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}

	sx := float64(cols) / s.Width
	sy := float64(rows) / s.Height
	put := func(text string, x, y, w float64) {
		row := min(int(y*sy), rows-1)
		col := min(int(x*sx), cols-1)
		width := max(int(w*sx), 1)
		for i, r := range []rune(text) {
			if i >= width || col+i >= cols {
				break
			}
			grid[row][col+i] = r
		}
	}

	for _, p := range s.Phrases {
		put(p.Text, p.Rect.X, p.Rect.Y, p.Rect.W)
	}
	for _, l := range s.Profile {
		put(l.Text, l.Rect.X, l.Rect.Y, l.Rect.W)
	}

	lines := make([]string, rows)
	for i, r := range grid {
		lines[i] = string(r)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
