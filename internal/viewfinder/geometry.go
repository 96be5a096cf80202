// Package viewfinder computes the framing rectangle overlaid on the camera
// preview: orientation handling for film formats and the largest rectangle of
// a given aspect ratio that fits the available display area.
package viewfinder

import (
	"math"

	"github.com/Veraticus/pinhole/internal/model"
)

// Size is a width and height in arbitrary display units.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Empty reports whether s has no drawable area.
func (s Size) Empty() bool {
	return !(s.Width > 0 && s.Height > 0)
}

// Aspect returns width/height, or zero for an empty size.
func (s Size) Aspect() float64 {
	if s.Empty() {
		return 0
	}
	return s.Width / s.Height
}

// EffectiveDimensions returns the film frame as seen through the camera:
// portrait swaps width and height, landscape passes them through.
func EffectiveDimensions(f model.FilmFormat, o model.Orientation) Size {
	if o == model.OrientationPortrait {
		return Size{Width: f.Height, Height: f.Width}
	}
	return Size{Width: f.Width, Height: f.Height}
}

// AspectRatio returns the width/height ratio of the oriented film frame, or
// zero when the format has no area.
func AspectRatio(f model.FilmFormat, o model.Orientation) float64 {
	return EffectiveDimensions(f, o).Aspect()
}

// FitRectangle returns the largest rectangle with the given aspect ratio that
// fits within availableWidth x availableHeight after both are scaled by
// fillFraction. Width is tried first; when the resulting height overflows, the
// rectangle is derived from the height instead.
//
// Non-positive or non-finite inputs yield an empty Size, which callers treat
// as "do not draw".
func FitRectangle(aspect, availableWidth, availableHeight, fillFraction float64) Size {
	if !finitePositive(aspect) || !finitePositive(availableWidth) ||
		!finitePositive(availableHeight) || !finitePositive(fillFraction) {
		return Size{}
	}

	width := availableWidth * fillFraction
	height := width / aspect

	if maxHeight := availableHeight * fillFraction; height > maxHeight {
		height = maxHeight
		width = height * aspect
	}

	return Size{Width: width, Height: height}
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
