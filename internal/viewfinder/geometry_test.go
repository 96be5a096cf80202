package viewfinder

import (
	"math"
	"testing"

	"github.com/Veraticus/pinhole/internal/model"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func TestEffectiveDimensions(t *testing.T) {
	f := model.FilmFormat{Name: "35mm", Width: 36, Height: 24}

	assert.Equal(t, Size{Width: 36, Height: 24}, EffectiveDimensions(f, model.OrientationLandscape))
	assert.Equal(t, Size{Width: 24, Height: 36}, EffectiveDimensions(f, model.OrientationPortrait))
}

func TestEffectiveDimensions_SwapIsReversible(t *testing.T) {
	for _, f := range model.FilmFormats {
		portrait := EffectiveDimensions(f, model.OrientationPortrait)
		swapped := model.FilmFormat{Name: f.Name, Width: portrait.Width, Height: portrait.Height}
		back := EffectiveDimensions(swapped, model.OrientationPortrait)

		assert.Equal(t, Size{Width: f.Width, Height: f.Height}, back, f.Name)
		assert.Equal(t, f.Width*f.Height, portrait.Width*portrait.Height, "area preserved for %s", f.Name)
	}
}

func TestAspectRatio(t *testing.T) {
	f := model.FilmFormat{Name: "6x9", Width: 84, Height: 56}
	assert.InDelta(t, 1.5, AspectRatio(f, model.OrientationLandscape), eps)
	assert.InDelta(t, 56.0/84.0, AspectRatio(f, model.OrientationPortrait), eps)
	assert.Zero(t, AspectRatio(model.FilmFormat{Width: 36}, model.OrientationLandscape))
}

func TestFitRectangle_FitsAndMaximises(t *testing.T) {
	ratios := []float64{0.25, 0.5, 2.0 / 3.0, 0.75, 1, 4.0 / 3.0, 1.5, 3, 36.0 / 24.0, 168.0 / 56.0}

	for _, r := range ratios {
		got := FitRectangle(r, 1000, 1000, 0.9)

		assert.InDelta(t, r, got.Width/got.Height, 1e-9, "aspect %v", r)
		assert.LessOrEqual(t, got.Width, 900+eps, "aspect %v", r)
		assert.LessOrEqual(t, got.Height, 900+eps, "aspect %v", r)

		tight := math.Abs(got.Width-900) < 1e-9 || math.Abs(got.Height-900) < 1e-9
		assert.True(t, tight, "one bound must be tight for aspect %v: %+v", r, got)
	}
}

func TestFitRectangle_WidthFirstThenHeight(t *testing.T) {
	// wide area, square frame: height bound wins
	got := FitRectangle(1, 1000, 500, 0.9)
	assert.InDelta(t, 450, got.Width, eps)
	assert.InDelta(t, 450, got.Height, eps)

	// tall area, wide frame: width bound wins
	got = FitRectangle(1.5, 600, 1000, 0.95)
	assert.InDelta(t, 570, got.Width, eps)
	assert.InDelta(t, 380, got.Height, eps)
}

func TestFitRectangle_Degenerate(t *testing.T) {
	tests := []struct {
		name   string
		aspect float64
		width  float64
		height float64
		fill   float64
	}{
		{name: "zero aspect", aspect: 0, width: 100, height: 100, fill: 0.9},
		{name: "negative aspect", aspect: -1, width: 100, height: 100, fill: 0.9},
		{name: "NaN aspect", aspect: math.NaN(), width: 100, height: 100, fill: 0.9},
		{name: "infinite aspect", aspect: math.Inf(1), width: 100, height: 100, fill: 0.9},
		{name: "zero width", aspect: 1, width: 0, height: 100, fill: 0.9},
		{name: "negative height", aspect: 1, width: 100, height: -5, fill: 0.9},
		{name: "zero fill", aspect: 1, width: 100, height: 100, fill: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitRectangle(tt.aspect, tt.width, tt.height, tt.fill)
			assert.Equal(t, Size{}, got)
			assert.True(t, got.Empty())
		})
	}
}
