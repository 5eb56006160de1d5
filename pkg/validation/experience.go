package validation

import (
	"math"
	"strconv"
)

// Experience bounds, inclusive on both ends.
const (
	MinYearsExperience = 0
	MaxYearsExperience = 60
)

// ValidateYears parses years of experience. Fractions like "2.5" are
// accepted; the 0-60 range is inclusive on both boundaries.
func ValidateYears(raw string) (float64, error) {
	s := EnsureText(raw)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, Reject("years_experience", "Please enter your years of experience as a number.")
	}
	if v < MinYearsExperience || v > MaxYearsExperience {
		return 0, Reject("years_experience", "Years of experience must be between 0 and 60.")
	}
	return v, nil
}
