package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/pinhole/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrInvalidProfile  = errors.New("invalid profile")
	ErrInvalidReading  = errors.New("invalid meter reading")
	ErrInvalidSettings = errors.New("invalid settings value")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateProfile validates a profile before it is written.
func validateProfile(profile *model.Profile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile", ErrNilParameter)
	}
	if strings.TrimSpace(profile.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidProfile)
	}
	return nil
}

// validateReading validates a meter reading before it is written.
func validateReading(reading *model.MeterReading) error {
	if reading == nil {
		return fmt.Errorf("%w: reading", ErrNilParameter)
	}
	if math.IsNaN(reading.AvgLuminance) || reading.AvgLuminance < 0 || reading.AvgLuminance > 255 {
		return fmt.Errorf("%w: luminance must be between 0 and 255", ErrInvalidReading)
	}
	if math.IsNaN(reading.EV) || math.IsInf(reading.EV, 0) {
		return fmt.Errorf("%w: ev must be finite", ErrInvalidReading)
	}
	if reading.PixelCount <= 0 {
		return fmt.Errorf("%w: pixel count must be positive", ErrInvalidReading)
	}
	return nil
}
