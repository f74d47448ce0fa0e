package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/codebanner/pkg/banner"
)

// themesCommand creates the command listing the color presets.
func (c *CLI) themesCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List the color presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				return writeThemesJSON(cmd.OutOrStdout())
			}
			fmt.Fprintln(cmd.OutOrStdout(), themeTable(banner.Themes()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the presets as JSON")

	return cmd
}

// themeTable renders the presets with a preview swatch per theme.
func themeTable(themes []banner.Theme) string {
	rows := make([][]string, 0, len(themes))
	for _, t := range themes {
		name := t.Name
		if name == banner.DefaultTheme {
			name += StyleDim.Render(" (default)")
		}
		rows = append(rows, []string{name, t.Background.Hex(), t.Text.Hex(), swatch(t)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Theme", "Background", "Text", "Preview").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		String()
}

// swatch renders a short code sample in the theme's colors.
func swatch(t banner.Theme) string {
	return colorStyle(t.Background, t.Text).Render(" fn() {} ")
}

// colorStyle is the terminal rendition of a background/text color pair.
func colorStyle(bg, text banner.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(text.Hex())).
		Background(lipgloss.Color(bg.Hex()))
}

func writeThemesJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(banner.Themes())
}
