package tui

import "github.com/Veraticus/pinhole/internal/model"

// edit is a single settings change bound to a key.
type edit func(model.CameraSettings) model.CameraSettings

// cycleCondition steps through the lighting conditions, wrapping at both
// ends. From no selection, forward picks the brightest and backward the darkest.
func cycleCondition(step int) edit {
	return func(s model.CameraSettings) model.CameraSettings {
		n := len(model.LightingConditions)
		idx := -1
		for i, c := range model.LightingConditions {
			if c.Name == s.Condition {
				idx = i
				break
			}
		}
		switch {
		case idx < 0 && step > 0:
			idx = 0
		case idx < 0:
			idx = n - 1
		default:
			idx = ((idx+step)%n + n) % n
		}
		s.Condition = model.LightingConditions[idx].Name
		return s
	}
}

func cycleFilter(s model.CameraSettings) model.CameraSettings {
	current := s.Filter
	if current == "" {
		current = model.FilterNone
	}
	for i, f := range model.Filters {
		if f.Name == current {
			s.Filter = model.Filters[(i+1)%len(model.Filters)].Name
			return s
		}
	}
	s.Filter = model.FilterNone
	return s
}

func cycleFormat(s model.CameraSettings) model.CameraSettings {
	for i, f := range model.FilmFormats {
		if f.Name == s.FilmFormat.Name {
			s.FilmFormat = model.FilmFormats[(i+1)%len(model.FilmFormats)]
			return s
		}
	}
	s.FilmFormat = model.FilmFormats[0]
	return s
}

// stepBracket moves the bracket by delta, clamped to the allowed range.
func stepBracket(delta int) edit {
	return func(s model.CameraSettings) model.CameraSettings {
		s.BracketStops = max(model.MinBracketStops, min(model.MaxBracketStops, s.BracketStops+delta))
		return s
	}
}

// stepISO moves to the neighbouring film speed, stopping at the ends.
func stepISO(delta int) edit {
	return func(s model.CameraSettings) model.CameraSettings {
		idx := -1
		for i, v := range model.ISOValues {
			if v == s.ISO {
				idx = i
				break
			}
		}
		if idx < 0 {
			s.ISO = model.DefaultCameraSettings().ISO
			return s
		}
		idx = max(0, min(len(model.ISOValues)-1, idx+delta))
		s.ISO = model.ISOValues[idx]
		return s
	}
}

func toggleOrientation(s model.CameraSettings) model.CameraSettings {
	s.Orientation = s.Orientation.Toggle()
	return s
}

func toggleReciprocity(s model.CameraSettings) model.CameraSettings {
	s.ReciprocityFailure = !s.ReciprocityFailure
	return s
}
