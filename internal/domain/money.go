package domain

import "math"

// Prices cross the JSON boundary as dollar floats (the public contract), but all
// arithmetic happens in integer cents so repeated additions stay exact.

func Cents(dollars float64) int64 {
	return int64(math.Round(dollars * 100))
}

func DollarsFromCents(cents int64) float64 {
	return float64(cents) / 100
}
