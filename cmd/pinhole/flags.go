package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/pinhole/internal/model"
	"github.com/Veraticus/pinhole/internal/settings"
	"github.com/spf13/cobra"
)

// addSettingsFlags registers one flag per camera setting. Only flags the user
// actually passes end up in the patch.
func addSettingsFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("condition", "", "lighting condition, e.g. \"Clear/Sunny\" (\"none\" clears it)")
	f.String("filter", "", "filter: None, Yellow, Orange or Red")
	f.Int("iso", 0, "film speed")
	f.Int("bracket", 0, "bracketing in stops, -3 to +3")
	f.Float64("focal", 0, "focal length in mm")
	f.Float64("pinhole", 0, "pinhole diameter in mm")
	f.String("format", "", "film format, e.g. 35mm, 6x6, 4x5")
	f.String("orientation", "", "film orientation: landscape or portrait")
	f.Bool("reciprocity", false, "apply reciprocity failure compensation")
}

func patchFromFlags(cmd *cobra.Command) (settings.Patch, error) {
	var patch settings.Patch
	f := cmd.Flags()

	if f.Changed("condition") {
		v, _ := f.GetString("condition")
		switch c, ok := lookupCondition(v); {
		case strings.EqualFold(v, "none") || v == "":
			v = ""
		case ok:
			v = c.Name
		default:
			return patch, fmt.Errorf("unknown lighting condition %q", v)
		}
		patch.SelectedCondition = &v
	}
	if f.Changed("filter") {
		v, _ := f.GetString("filter")
		opt, ok := lookupFilter(v)
		if !ok {
			return patch, fmt.Errorf("unknown filter %q", v)
		}
		name := string(opt.Name)
		patch.SelectedFilter = &name
	}
	if f.Changed("iso") {
		v, _ := f.GetInt("iso")
		patch.ISO = &v
	}
	if f.Changed("bracket") {
		v, _ := f.GetInt("bracket")
		patch.BracketStops = &v
	}
	if f.Changed("focal") {
		v, _ := f.GetFloat64("focal")
		patch.FocalLength = &v
	}
	if f.Changed("pinhole") {
		v, _ := f.GetFloat64("pinhole")
		patch.PinholeSize = &v
	}
	if f.Changed("format") {
		v, _ := f.GetString("format")
		format, ok := model.FindFilmFormat(v)
		if !ok {
			return patch, fmt.Errorf("unknown film format %q", v)
		}
		patch.FilmFormat = &format
	}
	if f.Changed("orientation") {
		v, _ := f.GetString("orientation")
		v = strings.ToLower(v)
		patch.FilmOrientation = &v
	}
	if f.Changed("reciprocity") {
		v, _ := f.GetBool("reciprocity")
		patch.UseReciprocityFailure = &v
	}

	return patch, nil
}

// lookupFilter matches a filter name case-insensitively.
func lookupFilter(name string) (model.FilterOption, bool) {
	for _, f := range model.Filters {
		if strings.EqualFold(string(f.Name), name) {
			return f, true
		}
	}
	return model.FilterOption{}, false
}

// lookupCondition matches a lighting condition name case-insensitively.
func lookupCondition(name string) (model.LightingCondition, bool) {
	for _, c := range model.LightingConditions {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return model.LightingCondition{}, false
}
