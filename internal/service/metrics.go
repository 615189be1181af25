package service

import (
	"math"

	"github.com/nutriplan/nutriplan-cli/internal/model"
)

// Activity multipliers for TDEE, keyed by activity level.
var activityMultipliers = map[model.ActivityLevel]float64{
	model.ActivitySedentary:        1.2,
	model.ActivityLightlyActive:    1.375,
	model.ActivityModeratelyActive: 1.55,
	model.ActivityVeryActive:       1.725,
	model.ActivityExtremelyActive:  1.9,
}

// CalculateBMI returns weight(kg) / height(m)². The zero return is a sentinel
// for missing or out-of-domain inputs, not a computed BMI.
func CalculateBMI(weightKg, heightCm float64) float64 {
	if weightKg <= 0 || heightCm <= 0 {
		return 0
	}
	heightM := heightCm / 100
	return weightKg / (heightM * heightM)
}

// CalculateBMR applies the Mifflin-St Jeor equation. Female subtracts 161;
// male and any other gender value use the male formula (+5). Returns the zero
// sentinel when any input is missing or non-positive.
func CalculateBMR(weightKg, heightCm float64, age int, gender model.Gender) float64 {
	if weightKg <= 0 || heightCm <= 0 || age <= 0 {
		return 0
	}
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == model.GenderFemale {
		return base - 161
	}
	return base + 5
}

// CalculateTDEE scales a BMR by the activity multiplier. Unknown activity
// levels fall back to the sedentary multiplier.
func CalculateTDEE(bmr float64, level model.ActivityLevel) float64 {
	if bmr <= 0 {
		return 0
	}
	multiplier, ok := activityMultipliers[level]
	if !ok {
		multiplier = activityMultipliers[model.ActivitySedentary]
	}
	return bmr * multiplier
}

type BMICategory struct {
	Label    string
	Severity string
}

// BMICategoryFor buckets a BMI value. Boundary values belong to the upper
// category: exactly 25.0 is Overweight.
func BMICategoryFor(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMICategory{Label: "Underweight", Severity: "info"}
	case bmi < 25:
		return BMICategory{Label: "Normal", Severity: "ok"}
	case bmi < 30:
		return BMICategory{Label: "Overweight", Severity: "warning"}
	default:
		return BMICategory{Label: "Obese", Severity: "danger"}
	}
}

type MacroSplit struct {
	ProteinG int
	CarbsG   int
	FatG     int
}

// DefaultMacros splits a calorie target 30% protein / 40% carbs / 30% fat at
// 4/4/9 kcal per gram. Each gram value rounds independently, so the three
// calorie equivalents need not sum exactly to the target.
func DefaultMacros(calorieTarget int) MacroSplit {
	if calorieTarget <= 0 {
		return MacroSplit{}
	}
	target := float64(calorieTarget)
	return MacroSplit{
		ProteinG: int(math.Round(target * 0.3 / 4)),
		CarbsG:   int(math.Round(target * 0.4 / 4)),
		FatG:     int(math.Round(target * 0.3 / 9)),
	}
}
