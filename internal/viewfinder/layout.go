package viewfinder

import (
	"math"

	"github.com/Veraticus/pinhole/internal/model"
)

// Layout holds the per-orientation parameters every screen uses to place the
// framing rectangle. Landscape windows give a side panel to the controls,
// portrait windows a bottom panel; the camera pane gets the rest.
type Layout struct {
	LandscapeFill       float64
	PortraitFill        float64
	SidePanelFraction   float64
	BottomPanelFraction float64
	// CellAspect is the height/width ratio of one display unit: 1 for square
	// pixels, about 2 for terminal character cells.
	CellAspect float64
}

// DefaultLayout returns the layout used for square-pixel displays.
func DefaultLayout() Layout {
	return Layout{
		LandscapeFill:       0.9,
		PortraitFill:        0.85,
		SidePanelFraction:   0.3,
		BottomPanelFraction: 0.35,
		CellAspect:          1,
	}
}

// Rect is a positioned rectangle in display units.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Empty reports whether r has no drawable area.
func (r Rect) Empty() bool {
	return Size{Width: r.Width, Height: r.Height}.Empty()
}

// Frame is a placed framing rectangle.
type Frame struct {
	DeviceOrientation model.Orientation `json:"deviceOrientation"`
	Pane              Rect              `json:"pane"`
	Rect              Rect              `json:"rect"`
}

// Empty reports whether there is nothing to draw.
func (f Frame) Empty() bool {
	return f.Rect.Empty()
}

// DeviceOrientation classifies a window by its physical shape.
func (l Layout) DeviceOrientation(windowWidth, windowHeight float64) model.Orientation {
	if windowWidth > windowHeight*l.cellAspect() {
		return model.OrientationLandscape
	}
	return model.OrientationPortrait
}

// Pane returns the camera pane for a window, before any fill margin.
func (l Layout) Pane(windowWidth, windowHeight float64) Rect {
	if !finitePositive(windowWidth) || !finitePositive(windowHeight) {
		return Rect{}
	}
	if l.DeviceOrientation(windowWidth, windowHeight) == model.OrientationLandscape {
		return Rect{Width: windowWidth * (1 - clampFraction(l.SidePanelFraction)), Height: windowHeight}
	}
	return Rect{Width: windowWidth, Height: windowHeight * (1 - clampFraction(l.BottomPanelFraction))}
}

// Frame fits the oriented film format into the camera pane of a window and
// centres it there.
func (l Layout) Frame(windowWidth, windowHeight float64, f model.FilmFormat, o model.Orientation) Frame {
	device := l.DeviceOrientation(windowWidth, windowHeight)
	pane := l.Pane(windowWidth, windowHeight)
	frame := Frame{DeviceOrientation: device, Pane: pane}

	fill := l.LandscapeFill
	if device == model.OrientationPortrait {
		fill = l.PortraitFill
	}

	cell := l.cellAspect()
	size := FitRectangle(AspectRatio(f, o), pane.Width, pane.Height*cell, fill)
	if size.Empty() {
		return frame
	}

	width := size.Width
	height := size.Height / cell
	frame.Rect = Rect{
		X:      pane.X + (pane.Width-width)/2,
		Y:      pane.Y + (pane.Height-height)/2,
		Width:  width,
		Height: height,
	}
	return frame
}

func (l Layout) cellAspect() float64 {
	if !finitePositive(l.CellAspect) {
		return 1
	}
	return l.CellAspect
}

func clampFraction(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
