package view

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

// Palette is the set of styles one render pass uses.
type Palette struct {
	Title     lipgloss.Style
	Heading   lipgloss.Style
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Accent    lipgloss.Style
	Good      lipgloss.Style
	Warn      lipgloss.Style
	Bad       lipgloss.Style
	Star      lipgloss.Style
	Heart     lipgloss.Style
}

// PaletteFor picks styles for a theme. High contrast overrides the theme
// with pure black or white text and bold emphasis.
func PaletteFor(theme domain.Theme, highContrast bool) Palette {
	if highContrast {
		fg := lipgloss.Color("#ffffff")
		if theme == domain.ThemeLight {
			fg = lipgloss.Color("#000000")
		}
		base := lipgloss.NewStyle().Foreground(fg)
		return Palette{
			Title:     base.Bold(true).Underline(true),
			Heading:   base.Bold(true),
			Primary:   base,
			Secondary: base,
			Accent:    base.Bold(true),
			Good:      base.Bold(true),
			Warn:      base.Bold(true),
			Bad:       base.Bold(true).Reverse(true),
			Star:      base.Bold(true),
			Heart:     base.Bold(true),
		}
	}

	if theme == domain.ThemeDark {
		return Palette{
			Title:     lipgloss.NewStyle().Foreground(lipgloss.Color("#fde68a")).Bold(true),
			Heading:   lipgloss.NewStyle().Foreground(lipgloss.Color("#bbf7d0")),
			Primary:   lipgloss.NewStyle().Foreground(lipgloss.Color("#d4d4d8")),
			Secondary: lipgloss.NewStyle().Foreground(lipgloss.Color("#71717a")),
			Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("#bae6fd")),
			Good:      lipgloss.NewStyle().Foreground(lipgloss.Color("#86efac")),
			Warn:      lipgloss.NewStyle().Foreground(lipgloss.Color("#fde68a")),
			Bad:       lipgloss.NewStyle().Foreground(lipgloss.Color("#fca5a5")),
			Star:      lipgloss.NewStyle().Foreground(lipgloss.Color("#facc15")),
			Heart:     lipgloss.NewStyle().Foreground(lipgloss.Color("#f472b6")),
		}
	}

	return Palette{
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color("#b45309")).Bold(true),
		Heading:   lipgloss.NewStyle().Foreground(lipgloss.Color("#15803d")),
		Primary:   lipgloss.NewStyle().Foreground(lipgloss.Color("#27272a")),
		Secondary: lipgloss.NewStyle().Foreground(lipgloss.Color("#71717a")),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("#0369a1")),
		Good:      lipgloss.NewStyle().Foreground(lipgloss.Color("#15803d")),
		Warn:      lipgloss.NewStyle().Foreground(lipgloss.Color("#b45309")),
		Bad:       lipgloss.NewStyle().Foreground(lipgloss.Color("#b91c1c")),
		Star:      lipgloss.NewStyle().Foreground(lipgloss.Color("#ca8a04")),
		Heart:     lipgloss.NewStyle().Foreground(lipgloss.Color("#db2777")),
	}
}

// wrapWidth maps the font size preference to a text column width. Larger
// sizes read as shorter lines with more space around them.
func wrapWidth(size domain.FontSize, terminal int) int {
	w := 80
	switch size {
	case domain.FontSmall:
		w = 100
	case domain.FontLarge:
		w = 64
	case domain.FontXLarge:
		w = 52
	}
	if terminal > 0 && terminal-4 < w {
		w = terminal - 4
	}
	if w < 20 {
		w = 20
	}
	return w
}
