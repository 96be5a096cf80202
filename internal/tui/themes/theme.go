// Package themes holds the colour schemes of the viewfinder screen.
package themes

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title      lipgloss.Style
	Label      lipgloss.Style
	Value      lipgloss.Style
	Selected   lipgloss.Style
	Exposure   lipgloss.Style
	NoExposure lipgloss.Style
	Frame      lipgloss.Style
	Panel      lipgloss.Style
	StatusErr  lipgloss.Style
	Help       lipgloss.Style
	Name       string
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Error      lipgloss.Color
}

func build(name string, primary, muted, border, fg, errColor lipgloss.Color) Theme {
	return Theme{
		Name:    name,
		Primary: primary,
		Muted:   muted,
		Border:  border,
		Error:   errColor,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Label: lipgloss.NewStyle().
			Foreground(muted),
		Value: lipgloss.NewStyle().
			Foreground(fg),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Exposure: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		NoExposure: lipgloss.NewStyle().
			Italic(true).
			Foreground(muted),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(primary),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		StatusErr: lipgloss.NewStyle().
			Bold(true).
			Foreground(errColor),
		Help: lipgloss.NewStyle().
			Foreground(muted),
	}
}

// Default is the default theme.
var Default = build("default",
	lipgloss.Color("#f4a259"),
	lipgloss.Color("#8a8a8a"),
	lipgloss.Color("#404040"),
	lipgloss.Color("#fafafa"),
	lipgloss.Color("#ef4444"),
)

// Safelight keeps everything in dim reds so the screen can be used in a
// darkroom or at night without spoiling dark adaptation.
var Safelight = build("safelight",
	lipgloss.Color("#c0392b"),
	lipgloss.Color("#6e1f18"),
	lipgloss.Color("#4a1410"),
	lipgloss.Color("#a93226"),
	lipgloss.Color("#ff5e4d"),
)

var registry = map[string]Theme{
	Default.Name:   Default,
	Safelight.Name: Safelight,
}

// ByName looks a theme up case-insensitively.
func ByName(name string) (Theme, bool) {
	t, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// Names lists the available themes.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
