package exposure

import (
	"fmt"
	"math"
	"strconv"
)

// Format renders an exposure time the way a shutter dial reads:
// "1/125s" below a second, "2.5s" below a minute, "3m 20s" above.
// Reciprocal values round half away from zero. Non-positive and non-finite
// inputs render as the empty string, as do times so short their reciprocal
// overflows.
func Format(seconds float64) string {
	if !positive(seconds) {
		return ""
	}

	switch {
	case seconds < 1:
		reciprocal := math.Round(1 / seconds)
		if math.IsInf(reciprocal, 0) {
			return ""
		}
		return "1/" + wholeNumber(reciprocal) + "s"
	case seconds < 60:
		return fmt.Sprintf("%.1fs", seconds)
	}

	// Round the total first so 119.6s carries into "2m" rather than "1m 60s".
	total := math.Round(seconds)
	minutes := math.Floor(total / 60)
	rest := total - minutes*60
	if rest > 0 {
		return wholeNumber(minutes) + "m " + wholeNumber(rest) + "s"
	}
	return wholeNumber(minutes) + "m"
}

// wholeNumber prints an integral float without going through a fixed-width
// integer, so extreme exposures cannot overflow.
func wholeNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}
