package inference

import (
	"math"
	"strconv"
)

// CGPA bounds of the grading scale.
const (
	MinCGPA = 0.0
	MaxCGPA = 4.0
)

// Band is the advisory interpretation of a predicted CGPA.
type Band struct {
	Name    string
	Range   string
	Message string
}

// bands are checked in order; the first whose floor is <= cgpa wins.
var bands = []struct {
	floor float64
	band  Band
}{
	{3.50, Band{"excellent", "Excellent (3.50 - 4.00)", "Student is performing excellently! Keep up the great work."}},
	{3.00, Band{"good", "Good (3.00 - 3.49)", "Student is performing well academically."}},
	{2.50, Band{"average", "Average (2.50 - 2.99)", "Student is performing at an average level. Some improvement possible."}},
	{2.00, Band{"below_average", "Below Average (2.00 - 2.49)", "Student may need academic support and intervention."}},
}

var poor = Band{"poor", "Poor (0.00 - 1.99)", "Student requires immediate academic and mental health support."}

// Round2 rounds to two decimals, half to even on the exact binary value.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	if err != nil {
		return x
	}
	return v
}

// Clamp limits x to [MinCGPA, MaxCGPA]. Negative zero becomes zero.
func Clamp(x float64) float64 {
	return math.Max(MinCGPA, math.Min(MaxCGPA, x))
}

// Interpret returns the band for an already rounded and clamped CGPA.
func Interpret(cgpa float64) Band {
	for _, b := range bands {
		if cgpa >= b.floor {
			return b.band
		}
	}
	return poor
}

// PostProcess rounds, then clamps raw, and interprets the result.
func PostProcess(raw float64) (float64, Band) {
	cgpa := Clamp(Round2(raw))
	return cgpa, Interpret(cgpa)
}
