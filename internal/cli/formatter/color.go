package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleItalic     = lipgloss.NewStyle().Foreground(ColorFg).Italic(true)
)

// headingStyles is indexed by outline heading level; level 0 is unused.
var headingStyles = []lipgloss.Style{
	StyleFg,
	lipgloss.NewStyle().Foreground(ColorHeader).Bold(true).Underline(true),
	lipgloss.NewStyle().Foreground(ColorYellow).Bold(true),
	lipgloss.NewStyle().Foreground(ColorBlue).Bold(true),
	lipgloss.NewStyle().Foreground(ColorPurple),
}

// HeadingStyle returns the style for an outline heading level. Levels past
// the deepest styled one reuse it.
func HeadingStyle(level int) lipgloss.Style {
	if level < 1 {
		return StyleFg
	}
	if level >= len(headingStyles) {
		return headingStyles[len(headingStyles)-1]
	}
	return headingStyles[level]
}

// LockBadge renders the lock state of a course item or tool.
func LockBadge(locked, unlocked bool) string {
	switch {
	case !locked:
		return ""
	case unlocked:
		return StyleGreen.Render("🔓")
	default:
		return StyleYellow.Render("🔒")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// Error renders an error line in red.
func Error(err error) string {
	return StyleRed.Render("✖ " + err.Error())
}
