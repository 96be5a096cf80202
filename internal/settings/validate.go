package settings

import (
	"fmt"
	"math"

	"github.com/Veraticus/pinhole/internal/common"
	"github.com/Veraticus/pinhole/internal/model"
)

// Validate reports the first problem with s, wrapped in common.ErrInvalidSettings.
// An empty condition is valid and means "not chosen yet".
func Validate(s model.CameraSettings) error {
	if !positive(s.FocalLength) {
		return invalid("focal length must be a positive number, got %v", s.FocalLength)
	}
	if !positive(s.PinholeSize) {
		return invalid("pinhole size must be a positive number, got %v", s.PinholeSize)
	}
	if !model.ValidISO(s.ISO) {
		return invalid("ISO %d is not one of %v", s.ISO, model.ISOValues)
	}
	if s.BracketStops < model.MinBracketStops || s.BracketStops > model.MaxBracketStops {
		return invalid("bracket stops must be between %d and %d, got %d",
			model.MinBracketStops, model.MaxBracketStops, s.BracketStops)
	}
	if !s.Orientation.Valid() {
		return invalid("unknown film orientation %q", s.Orientation)
	}
	if _, ok := model.FindFilter(s.Filter); !ok {
		return invalid("unknown filter %q", s.Filter)
	}
	if s.Condition != "" {
		if _, ok := model.FindCondition(s.Condition); !ok {
			return invalid("unknown lighting condition %q", s.Condition)
		}
	}
	if s.FilmFormat.Name == "" {
		return invalid("film format has no name")
	}
	if !positive(s.FilmFormat.Width) || !positive(s.FilmFormat.Height) {
		return invalid("film format %q needs positive dimensions", s.FilmFormat.Name)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrInvalidSettings, fmt.Sprintf(format, args...))
}
