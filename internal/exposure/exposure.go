// Package exposure computes pinhole exposure times from camera settings and a
// reference lighting condition, including reciprocity, filter and bracketing
// compensation.
package exposure

import (
	"math"
	"time"

	"github.com/Veraticus/pinhole/internal/model"
)

const (
	// ReciprocityThreshold is the metered time in seconds above which
	// reciprocity failure compensation kicks in.
	ReciprocityThreshold = 1.0
	// ReciprocityExponent is the Schwarzschild-style exponent applied to long exposures.
	ReciprocityExponent = 1.3

	// wavelength of green light in millimetres, used for the optimal pinhole.
	greenWavelength = 0.00055
	rayleighFactor  = 1.9
)

// Result is a computed exposure.
type Result struct {
	Condition          string
	Formatted          string
	ActualFStop        float64
	ReferenceFStop     float64
	BaseSeconds        float64
	Seconds            float64
	FilterStops        int
	BracketStops       int
	ReciprocityApplied bool
}

// Duration returns the exposure time as a time.Duration.
func (r Result) Duration() time.Duration {
	return time.Duration(r.Seconds * float64(time.Second))
}

// Compute derives the exposure for s. The second return value is false when
// no valid lighting condition is selected or when the numeric inputs cannot
// produce a finite positive exposure.
//
// The aperture number is rounded to one decimal place before it enters the
// formula; compensation is applied in the order reciprocity, filter, bracket.
func Compute(s model.CameraSettings) (Result, bool) {
	cond, ok := model.FindCondition(s.Condition)
	if !ok {
		return Result{}, false
	}
	if !positive(s.FocalLength) || !positive(s.PinholeSize) || s.ISO <= 0 {
		return Result{}, false
	}
	if s.BracketStops < model.MinBracketStops || s.BracketStops > model.MaxBracketStops {
		return Result{}, false
	}
	filter, ok := model.FindFilter(s.Filter)
	if !ok {
		return Result{}, false
	}

	actual := roundTo(s.FocalLength/s.PinholeSize, 1)
	if !positive(actual) {
		return Result{}, false
	}

	base := 1 / float64(s.ISO)
	seconds := base * math.Pow(actual/cond.FStop, 2)

	res := Result{
		Condition:      cond.Name,
		ActualFStop:    actual,
		ReferenceFStop: cond.FStop,
		BaseSeconds:    base,
		FilterStops:    filter.Stops,
		BracketStops:   s.BracketStops,
	}

	if s.ReciprocityFailure && seconds > ReciprocityThreshold {
		seconds = math.Pow(seconds, ReciprocityExponent)
		res.ReciprocityApplied = true
	}
	if filter.Stops > 0 {
		seconds *= math.Exp2(float64(filter.Stops))
	}
	seconds *= math.Exp2(float64(s.BracketStops))

	if !positive(seconds) {
		return Result{}, false
	}

	res.Seconds = seconds
	res.Formatted = Format(seconds)
	return res, true
}

// Bracket returns the exposures for every bracket step from -3 to +3 stops,
// or nil when s has no valid exposure.
func Bracket(s model.CameraSettings) []Result {
	results := make([]Result, 0, model.MaxBracketStops-model.MinBracketStops+1)
	for stops := model.MinBracketStops; stops <= model.MaxBracketStops; stops++ {
		s.BracketStops = stops
		r, ok := Compute(s)
		if !ok {
			return nil
		}
		results = append(results, r)
	}
	return results
}

// OptimalPinhole returns the Rayleigh-optimal pinhole diameter in millimetres
// for the given focal length, or zero for a non-positive focal length.
func OptimalPinhole(focalLength float64) float64 {
	if !positive(focalLength) {
		return 0
	}
	return rayleighFactor * math.Sqrt(focalLength*greenWavelength)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// roundTo rounds half away from zero to the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
