// Package tui implements the live viewfinder screen: the framing rectangle for
// the selected film format next to the current exposure, both recomputed on
// every resize and every settings change.
package tui

import (
	"context"

	"github.com/Veraticus/pinhole/internal/exposure"
	"github.com/Veraticus/pinhole/internal/model"
	"github.com/Veraticus/pinhole/internal/settings"
	"github.com/Veraticus/pinhole/internal/tui/themes"
	"github.com/Veraticus/pinhole/internal/viewfinder"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Model holds the viewfinder screen state.
type Model struct {
	lastError error
	store     *settings.Store
	theme     themes.Theme
	help      help.Model
	keymap    KeyMap
	layout    viewfinder.Layout
	settings  model.CameraSettings
	frame     viewfinder.Frame
	exposure  exposure.Result
	revision  uint64
	height    int
	width     int
	hasExpo   bool
	showHelp  bool
	quitting  bool
}

// New creates the viewfinder model.
func New(opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newModel(cfg)
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	h := help.New()
	h.ShowAll = cfg.ShowHelp

	m := Model{
		store:    cfg.Store,
		theme:    cfg.Theme,
		help:     h,
		keymap:   DefaultKeyMap(),
		layout:   cfg.Layout,
		width:    cfg.Width,
		height:   cfg.Height,
		showHelp: cfg.ShowHelp,
		settings: model.DefaultCameraSettings(),
	}
	if cfg.Store != nil {
		m.settings, m.revision = cfg.Store.Current()
	}
	m.recompute()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.recompute()

	case settingsChangedMsg:
		if msg.revision < m.revision {
			return m, nil
		}
		m.settings = msg.settings
		m.revision = msg.revision
		m.lastError = nil
		m.recompute()

	case errorMsg:
		m.lastError = msg.err

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	case key.Matches(msg, m.keymap.NextCondition):
		return m, m.apply(cycleCondition(1))
	case key.Matches(msg, m.keymap.PrevCondition):
		return m, m.apply(cycleCondition(-1))
	case key.Matches(msg, m.keymap.NextFilter):
		return m, m.apply(cycleFilter)
	case key.Matches(msg, m.keymap.BracketUp):
		return m, m.apply(stepBracket(1))
	case key.Matches(msg, m.keymap.BracketDown):
		return m, m.apply(stepBracket(-1))
	case key.Matches(msg, m.keymap.ISOUp):
		return m, m.apply(stepISO(1))
	case key.Matches(msg, m.keymap.ISODown):
		return m, m.apply(stepISO(-1))
	case key.Matches(msg, m.keymap.ToggleReciprocity):
		return m, m.apply(toggleReciprocity)
	case key.Matches(msg, m.keymap.ToggleOrientation):
		return m, m.apply(toggleOrientation)
	case key.Matches(msg, m.keymap.NextFormat):
		return m, m.apply(cycleFormat)
	}
	return m, nil
}

// apply writes an edit through the store. Subscribers, this screen included,
// hear about the result from the store; the returned message covers models
// that run without a subscription. Either may arrive late; the revision
// keeps an older value from replacing a newer one.
func (m Model) apply(e edit) tea.Cmd {
	if m.store == nil {
		next := e(m.settings)
		return func() tea.Msg { return settingsChangedMsg{settings: next} }
	}
	store := m.store
	return func() tea.Msg {
		if _, err := store.Modify(context.Background(), e); err != nil {
			return errorMsg{err: err}
		}
		cur, rev := store.Current()
		return settingsChangedMsg{settings: cur, revision: rev}
	}
}

// recompute derives the exposure and the framing rectangle from the current
// settings and window size.
func (m *Model) recompute() {
	m.exposure, m.hasExpo = exposure.Compute(m.settings)
	m.frame = m.layout.Frame(float64(m.width), float64(m.height-chromeRows), m.settings.FilmFormat, m.settings.Orientation)
}

// Settings returns the settings the screen is showing.
func (m Model) Settings() model.CameraSettings {
	return m.settings
}

// Frame returns the current framing rectangle in terminal cells.
func (m Model) Frame() viewfinder.Frame {
	return m.frame
}
