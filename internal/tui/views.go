package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/pinhole/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// chromeRows is the title line plus the status line.
const chromeRows = 2

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width <= 0 || m.height <= chromeRows {
		return ""
	}

	bodyHeight := m.height - chromeRows
	var body string
	if m.showHelp {
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.help.View(m.keymap))
	} else {
		body = m.renderBody(bodyHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		body,
		m.renderStatus(),
	)
}

func (m Model) renderTitle() string {
	title := m.theme.Title.Render("pinhole")
	format := m.theme.Label.Render(fmt.Sprintf("  %s %s", m.settings.FilmFormat.Name, m.settings.Orientation))
	return truncate(title+format, m.width)
}

func (m Model) renderStatus() string {
	if m.lastError != nil {
		return truncate(m.theme.StatusErr.Render("error: "+m.lastError.Error()), m.width)
	}
	short := m.help
	short.ShowAll = false
	return truncate(short.View(m.keymap), m.width)
}

// renderBody lays the camera pane and the controls panel side by side in a
// landscape window, or stacked in a portrait one.
func (m Model) renderBody(bodyHeight int) string {
	pane := m.frame.Pane
	paneW := clampInt(int(math.Round(pane.Width)), 0, m.width)
	paneH := clampInt(int(math.Round(pane.Height)), 0, bodyHeight)
	camera := lipgloss.Place(paneW, paneH, lipgloss.Center, lipgloss.Center, m.renderFrame())

	if m.frame.DeviceOrientation == model.OrientationLandscape {
		panelW := m.width - paneW
		if panelW < 4 {
			return lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, camera)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, camera, m.renderPanel(panelW, bodyHeight))
	}

	panelH := bodyHeight - paneH
	if panelH < 3 {
		return lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, camera)
	}
	return lipgloss.JoinVertical(lipgloss.Left, camera, m.renderPanel(m.width, panelH))
}

// renderFrame draws the framing rectangle. It returns nothing when the
// rectangle is too small to draw with a border.
func (m Model) renderFrame() string {
	w := int(math.Round(m.frame.Rect.Width))
	h := int(math.Round(m.frame.Rect.Height))
	if m.frame.Empty() || w < 3 || h < 3 {
		return ""
	}

	label := ""
	if caption := m.settings.FilmFormat.Name; lipgloss.Width(caption) <= w-2 {
		label = m.theme.Label.Render(caption)
	}

	return m.theme.Frame.
		Width(w-2).
		Height(h-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(label)
}

func (m Model) renderPanel(width, height int) string {
	s := m.settings
	rows := [][2]string{
		{"Exposure", m.renderExposure()},
		{"Condition", orDash(s.Condition)},
		{"Filter", filterLabel(s.Filter)},
		{"Bracket", fmt.Sprintf("%+d", s.BracketStops)},
		{"ISO", fmt.Sprintf("%d", s.ISO)},
		{"Aperture", fmt.Sprintf("f/%.1f", s.FStop())},
		{"Focal", trimFloat(s.FocalLength) + "mm"},
		{"Pinhole", trimFloat(s.PinholeSize) + "mm"},
		{"Recip.", onOff(s.ReciprocityFailure)},
	}
	if m.hasExpo && m.exposure.ReciprocityApplied {
		rows = append(rows, [2]string{"", m.theme.Label.Render("reciprocity corrected")})
	}

	labelW := 0
	for _, r := range rows {
		labelW = max(labelW, lipgloss.Width(r[0]))
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, m.theme.Label.Render(fmt.Sprintf("%-*s", labelW, r[0]))+" "+m.theme.Value.Render(r[1]))
	}

	frame := m.theme.Panel.GetHorizontalFrameSize()
	inner := max(0, width-frame)
	content := truncate(strings.Join(lines, "\n"), inner)
	return m.theme.Panel.
		Width(max(0, width-m.theme.Panel.GetHorizontalBorderSize())).
		MaxHeight(height).
		Render(content)
}

func (m Model) renderExposure() string {
	if !m.hasExpo {
		return m.theme.NoExposure.Render("pick a condition")
	}
	return m.theme.Exposure.Render(m.exposure.Formatted)
}

// ExposureText returns the formatted exposure, or "" when there is none.
func (m Model) ExposureText() string {
	if !m.hasExpo {
		return ""
	}
	return m.exposure.Formatted
}

func filterLabel(f model.FilterName) string {
	opt, ok := model.FindFilter(f)
	if !ok {
		return string(f)
	}
	if opt.Stops == 0 {
		return string(opt.Name)
	}
	return fmt.Sprintf("%s (+%d)", opt.Name, opt.Stops)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func trimFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func truncate(s string, width int) string {
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
