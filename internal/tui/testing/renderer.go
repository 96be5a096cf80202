// Package testing provides test utilities for the viewfinder screen.
package testing

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// TestRenderer captures the output of a Bubble Tea model without requiring a real terminal.
type TestRenderer struct {
	// Output contains the last rendered view
	Output string

	// Messages contains all messages sent to the model
	Messages []tea.Msg

	// UpdateCount tracks how many times Update was called
	UpdateCount int

	// Quit is set once a command returned tea.QuitMsg
	Quit bool
}

// NewTestRenderer creates a new test renderer.
func NewTestRenderer() *TestRenderer {
	return &TestRenderer{
		Messages: make([]tea.Msg, 0),
	}
}

// Render renders a model and captures its output.
func (r *TestRenderer) Render(model tea.Model) string {
	r.Output = model.View()
	return r.Output
}

// Update sends a message to the model and captures the result.
func (r *TestRenderer) Update(model tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	r.Messages = append(r.Messages, msg)
	r.UpdateCount++

	next, cmd := model.Update(msg)
	r.Output = next.View()
	return next, cmd
}

// Drain runs cmd and feeds its message back into the model until no command
// is left. Batches are not expanded.
func (r *TestRenderer) Drain(model tea.Model, cmd tea.Cmd) tea.Model {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return model
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			r.Quit = true
			return model
		}
		model, cmd = r.Update(model, msg)
	}
	return model
}

// StripANSI removes ANSI escape codes from the output for content-only testing.
func (r *TestRenderer) StripANSI() string {
	return StripANSI(r.Output)
}

// Lines returns the plain output split by newlines.
func (r *TestRenderer) Lines() []string {
	return strings.Split(r.StripANSI(), "\n")
}

// Reset clears all captured data.
func (r *TestRenderer) Reset() {
	r.Output = ""
	r.Messages = nil
	r.UpdateCount = 0
	r.Quit = false
}
