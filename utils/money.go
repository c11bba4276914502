package utils

import "math"

// Round2 rounds to 2 decimal places, half away from zero. Every currency or
// percentage figure that leaves the service goes through here, and only at
// the exposure boundary; intermediate accumulation stays unrounded so
// errors do not compound.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
