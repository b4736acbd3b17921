package normalize

import "math"

// WonToInt rounds a won amount to a whole number of won.
// Uses math.Round to avoid truncation bias on negative impacts.
func WonToInt(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int64(math.Round(v))
}
