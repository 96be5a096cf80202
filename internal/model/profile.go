package model

import "time"

// Profile is a named, saved set of camera settings.
type Profile struct {
	CreatedAt time.Time
	ID        string
	Name      string
	Settings  CameraSettings
}

// MeterReading is the result of analysing the brightness of one image.
type MeterReading struct {
	CreatedAt          time.Time
	ID                 string
	Source             string
	SuggestedCondition string
	AvgLuminance       float64
	EV                 float64
	PixelCount         int
}
