package tui

import (
	"github.com/Veraticus/pinhole/internal/settings"
	"github.com/Veraticus/pinhole/internal/tui/themes"
	"github.com/Veraticus/pinhole/internal/viewfinder"
)

// Config holds TUI configuration.
type Config struct {
	Store    *settings.Store
	Theme    themes.Theme
	Layout   viewfinder.Layout
	Width    int
	Height   int
	ShowHelp bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	layout := viewfinder.DefaultLayout()
	layout.CellAspect = 2
	return Config{
		Theme:  themes.Default,
		Layout: layout,
		Width:  80,
		Height: 24,
	}
}

// WithStore sets the settings store the screen reads and edits.
func WithStore(store *settings.Store) Option {
	return func(c *Config) {
		c.Store = store
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithLayout sets the framing layout.
func WithLayout(layout viewfinder.Layout) Option {
	return func(c *Config) {
		c.Layout = layout
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithHelp starts with the full help visible.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
