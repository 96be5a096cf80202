package model

import (
	"encoding/json"
	"fmt"
)

// SettingsRecord is the persisted and wire form of CameraSettings. Every field
// is optional so the same shape serves stored records, partial updates and
// records written by older releases that only knew the useRedFilter flag.
type SettingsRecord struct {
	FocalLength           *float64    `json:"focalLength,omitempty"`
	PinholeSize           *float64    `json:"pinholeSize,omitempty"`
	FilmFormat            *FilmFormat `json:"filmFormat,omitempty"`
	FilmOrientation       *string     `json:"filmOrientation,omitempty"`
	ISO                   *int        `json:"iso,omitempty"`
	SelectedCondition     *string     `json:"selectedCondition,omitempty"`
	SelectedFilter        *string     `json:"selectedFilter,omitempty"`
	UseRedFilter          *bool       `json:"useRedFilter,omitempty"`
	UseReciprocityFailure *bool       `json:"useReciprocityFailure,omitempty"`
	BracketStops          *int        `json:"bracketStops,omitempty"`
}

// RecordFrom builds a complete record from settings. useRedFilter is written
// in step with the filter so older readers keep working.
func RecordFrom(s CameraSettings) SettingsRecord {
	format := s.FilmFormat
	orientation := string(s.Orientation)
	condition := s.Condition
	filter := string(s.Filter)
	if filter == "" {
		filter = string(FilterNone)
	}
	red := s.Filter == FilterRed
	return SettingsRecord{
		FocalLength:           &s.FocalLength,
		PinholeSize:           &s.PinholeSize,
		FilmFormat:            &format,
		FilmOrientation:       &orientation,
		ISO:                   &s.ISO,
		SelectedCondition:     &condition,
		SelectedFilter:        &filter,
		UseRedFilter:          &red,
		UseReciprocityFailure: &s.ReciprocityFailure,
		BracketStops:          &s.BracketStops,
	}
}

// ApplyTo merges the fields present in r over base.
//
// Filter resolution: an explicit non-None selectedFilter wins; otherwise a
// true useRedFilter selects the red filter. The two never stack.
func (r SettingsRecord) ApplyTo(base CameraSettings) CameraSettings {
	out := base
	if r.FocalLength != nil {
		out.FocalLength = *r.FocalLength
	}
	if r.PinholeSize != nil {
		out.PinholeSize = *r.PinholeSize
	}
	if r.FilmFormat != nil {
		out.FilmFormat = resolveFilmFormat(*r.FilmFormat)
	}
	if r.FilmOrientation != nil {
		out.Orientation = Orientation(*r.FilmOrientation)
	}
	if r.ISO != nil {
		out.ISO = *r.ISO
	}
	if r.SelectedCondition != nil {
		out.Condition = *r.SelectedCondition
	}
	if r.UseReciprocityFailure != nil {
		out.ReciprocityFailure = *r.UseReciprocityFailure
	}
	if r.BracketStops != nil {
		out.BracketStops = *r.BracketStops
	}
	out.Filter = r.resolveFilter(base.Filter)
	return out
}

func (r SettingsRecord) resolveFilter(current FilterName) FilterName {
	explicit := r.SelectedFilter != nil && *r.SelectedFilter != "" && FilterName(*r.SelectedFilter) != FilterNone
	switch {
	case explicit:
		return FilterName(*r.SelectedFilter)
	case r.UseRedFilter != nil && *r.UseRedFilter:
		return FilterRed
	case r.SelectedFilter != nil:
		return FilterNone
	case r.UseRedFilter != nil && current == FilterRed:
		// legacy clients turn the red filter off with useRedFilter=false
		return FilterNone
	default:
		return current
	}
}

// resolveFilmFormat fills in dimensions for a format given only by name.
func resolveFilmFormat(f FilmFormat) FilmFormat {
	if f.Width > 0 && f.Height > 0 {
		return f
	}
	if ref, ok := FindFilmFormat(f.Name); ok {
		return ref
	}
	return f
}

// EncodeSettings serialises settings for the key-value store.
func EncodeSettings(s CameraSettings) ([]byte, error) {
	data, err := json.Marshal(RecordFrom(s))
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	return data, nil
}

// DecodeSettings reads a stored record, filling missing fields from defaults.
func DecodeSettings(data []byte) (CameraSettings, error) {
	var rec SettingsRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return CameraSettings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	return rec.ApplyTo(DefaultCameraSettings()), nil
}
