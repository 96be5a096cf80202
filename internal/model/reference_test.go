package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferenceTables(t *testing.T) {
	assert.NoError(t, validateReferenceTables())
	assert.Len(t, LightingConditions, 6)
	assert.Equal(t, "Snow/Sandy", LightingConditions[0].Name)
	assert.Equal(t, "Open Shade/Sunset", LightingConditions[5].Name)
}

func TestFindCondition(t *testing.T) {
	c, ok := FindCondition("Clear/Sunny")
	assert.True(t, ok)
	assert.Equal(t, 16.0, c.FStop)

	_, ok = FindCondition("clear/sunny")
	assert.False(t, ok, "lookup is exact")

	_, ok = FindCondition("")
	assert.False(t, ok)
}

func TestFindFilter(t *testing.T) {
	f, ok := FindFilter("")
	assert.True(t, ok)
	assert.Equal(t, FilterNone, f.Name)

	f, ok = FindFilter(FilterOrange)
	assert.True(t, ok)
	assert.Equal(t, 2, f.Stops)

	_, ok = FindFilter("Blue")
	assert.False(t, ok)
}

func TestValidISO(t *testing.T) {
	assert.True(t, ValidISO(25))
	assert.True(t, ValidISO(3200))
	assert.False(t, ValidISO(0))
	assert.False(t, ValidISO(125))
}

func TestCameraSettings_FStop(t *testing.T) {
	s := CameraSettings{FocalLength: 50, PinholeSize: 0.25}
	assert.InDelta(t, 200.0, s.FStop(), 1e-9)

	s.PinholeSize = 0
	assert.Zero(t, s.FStop())
}

func TestOrientation(t *testing.T) {
	assert.Equal(t, OrientationPortrait, OrientationLandscape.Toggle())
	assert.Equal(t, OrientationLandscape, OrientationPortrait.Toggle())
	assert.True(t, OrientationPortrait.Valid())
	assert.False(t, Orientation("sideways").Valid())
}
