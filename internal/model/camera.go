// Package model defines the camera settings, reference tables and saved records
// shared by every part of pinhole.
package model

// Orientation is the way the film sits in the camera.
type Orientation string

const (
	// OrientationLandscape keeps the film format's width as the long edge.
	OrientationLandscape Orientation = "landscape"
	// OrientationPortrait swaps width and height.
	OrientationPortrait Orientation = "portrait"
)

// Valid reports whether o is a known orientation.
func (o Orientation) Valid() bool {
	return o == OrientationLandscape || o == OrientationPortrait
}

// Toggle returns the opposite orientation.
func (o Orientation) Toggle() Orientation {
	if o == OrientationPortrait {
		return OrientationLandscape
	}
	return OrientationPortrait
}

// FilmFormat is a named film frame size in millimetres.
type FilmFormat struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FilmFormats lists the common formats, landscape convention (width >= height).
var FilmFormats = []FilmFormat{
	{Name: "35mm", Width: 36, Height: 24},
	{Name: "6x4.5", Width: 56, Height: 41.5},
	{Name: "6x6", Width: 56, Height: 56},
	{Name: "6x7", Width: 70, Height: 56},
	{Name: "6x9", Width: 84, Height: 56},
	{Name: "6x12", Width: 118, Height: 56},
	{Name: "6x17", Width: 168, Height: 56},
	{Name: "4x5", Width: 127, Height: 102},
}

// FindFilmFormat looks up a reference film format by exact name.
func FindFilmFormat(name string) (FilmFormat, bool) {
	for _, f := range FilmFormats {
		if f.Name == name {
			return f, true
		}
	}
	return FilmFormat{}, false
}

// ISOValues are the film speeds the settings screen offers.
var ISOValues = []int{25, 50, 100, 200, 400, 800, 1600, 3200}

// ValidISO reports whether iso is one of ISOValues.
func ValidISO(iso int) bool {
	for _, v := range ISOValues {
		if v == iso {
			return true
		}
	}
	return false
}

// Bracketing limits in stops.
const (
	MinBracketStops = -3
	MaxBracketStops = 3
)

// CameraSettings is a snapshot of everything the exposure and framing
// calculations need. It is passed around by value.
type CameraSettings struct {
	FilmFormat         FilmFormat
	Orientation        Orientation
	Condition          string
	Filter             FilterName
	FocalLength        float64
	PinholeSize        float64
	ISO                int
	BracketStops       int
	ReciprocityFailure bool
}

// FStop returns the aperture number focal length / pinhole size.
// It is zero when the pinhole size is not positive.
func (s CameraSettings) FStop() float64 {
	if s.PinholeSize <= 0 {
		return 0
	}
	return s.FocalLength / s.PinholeSize
}

// DefaultCameraSettings returns the settings used before anything has been saved.
func DefaultCameraSettings() CameraSettings {
	return CameraSettings{
		FocalLength:  50,
		PinholeSize:  0.3,
		FilmFormat:   FilmFormats[2],
		Orientation:  OrientationLandscape,
		ISO:          100,
		Filter:       FilterNone,
		BracketStops: 0,
	}
}
