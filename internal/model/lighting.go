package model

import (
	"fmt"
	"math"
)

// LightingCondition is a reference entry in the sunny-16 style table: the
// aperture number that gives a correct exposure at 1/ISO seconds.
type LightingCondition struct {
	Name        string  `json:"name"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
	FStop       float64 `json:"fStop"`
}

// LightingConditions is ordered brightest to darkest.
var LightingConditions = []LightingCondition{
	{Name: "Snow/Sandy", FStop: 22, Icon: "snow", Description: "Bright sun on snow or sand"},
	{Name: "Clear/Sunny", FStop: 16, Icon: "sunny", Description: "Distinct, sharp shadows"},
	{Name: "Slightly Overcast", FStop: 11, Icon: "partly-sunny", Description: "Soft shadows with defined edges"},
	{Name: "Overcast", FStop: 8, Icon: "cloudy", Description: "Barely visible shadows"},
	{Name: "Heavy Overcast", FStop: 5.6, Icon: "rainy", Description: "No shadows"},
	{Name: "Open Shade/Sunset", FStop: 4, Icon: "cloudy-night", Description: "Subject in open shade or at sunset"},
}

// FindCondition looks up a lighting condition by exact name.
func FindCondition(name string) (LightingCondition, bool) {
	if name == "" {
		return LightingCondition{}, false
	}
	for _, c := range LightingConditions {
		if c.Name == name {
			return c, true
		}
	}
	return LightingCondition{}, false
}

func init() {
	if err := validateReferenceTables(); err != nil {
		panic(err)
	}
}

// validateReferenceTables guards against a broken build of the static tables.
func validateReferenceTables() error {
	prev := math.Inf(1)
	for _, c := range LightingConditions {
		if c.Name == "" || !(c.FStop > 0) || math.IsInf(c.FStop, 0) {
			return fmt.Errorf("model: invalid lighting condition %+v", c)
		}
		if c.FStop >= prev {
			return fmt.Errorf("model: lighting conditions out of order at %q", c.Name)
		}
		prev = c.FStop
	}
	for _, f := range Filters {
		if f.Stops < 0 {
			return fmt.Errorf("model: filter %q has negative stops", f.Name)
		}
	}
	if len(Filters) == 0 || Filters[0].Name != FilterNone || Filters[0].Stops != 0 {
		return fmt.Errorf("model: first filter must be %q with 0 stops", FilterNone)
	}
	for _, f := range FilmFormats {
		if !(f.Width > 0) || !(f.Height > 0) {
			return fmt.Errorf("model: invalid film format %+v", f)
		}
	}
	return nil
}
