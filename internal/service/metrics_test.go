package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nutriplan/nutriplan-cli/internal/model"
)

func TestCalculateBMI(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 22.86, CalculateBMI(70, 175), 0.01)
	require.InDelta(t, 25.0, CalculateBMI(76.5625, 175), 0.01)

	// Missing or out-of-domain inputs yield the zero sentinel.
	require.Zero(t, CalculateBMI(0, 175))
	require.Zero(t, CalculateBMI(70, 0))
	require.Zero(t, CalculateBMI(-70, 175))
}

func TestCalculateBMR(t *testing.T) {
	t.Parallel()

	// Mifflin-St Jeor: 10*70 + 6.25*175 - 5*30 + 5 = 1648.75 for a male.
	male := CalculateBMR(70, 175, 30, model.GenderMale)
	require.InDelta(t, 1648.75, male, 0.01)

	// Female subtracts 161 instead of adding 5.
	female := CalculateBMR(70, 175, 30, model.GenderFemale)
	require.InDelta(t, 166, male-female, 0.001)

	// Other uses the male formula.
	require.InDelta(t, male, CalculateBMR(70, 175, 30, model.GenderOther), 0.001)

	require.Zero(t, CalculateBMR(0, 175, 30, model.GenderMale))
	require.Zero(t, CalculateBMR(70, 175, 0, model.GenderMale))
}

func TestCalculateTDEE(t *testing.T) {
	t.Parallel()

	bmr := 1648.75
	require.InDelta(t, bmr*1.2, CalculateTDEE(bmr, model.ActivitySedentary), 0.001)
	require.InDelta(t, bmr*1.55, CalculateTDEE(bmr, model.ActivityModeratelyActive), 0.001)
	require.InDelta(t, bmr*1.9, CalculateTDEE(bmr, model.ActivityExtremelyActive), 0.001)

	// Strictly increasing across the ladder.
	levels := []model.ActivityLevel{
		model.ActivitySedentary,
		model.ActivityLightlyActive,
		model.ActivityModeratelyActive,
		model.ActivityVeryActive,
		model.ActivityExtremelyActive,
	}
	prev := 0.0
	for _, level := range levels {
		tdee := CalculateTDEE(bmr, level)
		require.Greater(t, tdee, prev, "level %s", level)
		prev = tdee
	}

	// Unknown level falls back to sedentary; zero BMR stays zero.
	require.InDelta(t, bmr*1.2, CalculateTDEE(bmr, model.ActivityLevel("couch")), 0.001)
	require.Zero(t, CalculateTDEE(0, model.ActivitySedentary))
}

func TestBMICategoryBoundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		bmi      float64
		label    string
		severity string
	}{
		{16, "Underweight", "info"},
		{18.4, "Underweight", "info"},
		{18.5, "Normal", "ok"},
		{24.9, "Normal", "ok"},
		{25.0, "Overweight", "warning"},
		{29.9, "Overweight", "warning"},
		{30.0, "Obese", "danger"},
		{42, "Obese", "danger"},
	}
	for _, tc := range cases {
		got := BMICategoryFor(tc.bmi)
		require.Equal(t, tc.label, got.Label, "bmi %.1f", tc.bmi)
		require.Equal(t, tc.severity, got.Severity, "bmi %.1f", tc.bmi)
	}
}

func TestDefaultMacros(t *testing.T) {
	t.Parallel()

	// 30/40/30 at 4/4/9 kcal per gram, each rounded independently.
	require.Equal(t, MacroSplit{ProteinG: 150, CarbsG: 200, FatG: 67}, DefaultMacros(2000))
	require.Equal(t, MacroSplit{ProteinG: 188, CarbsG: 250, FatG: 83}, DefaultMacros(2500))
	require.Equal(t, MacroSplit{}, DefaultMacros(0))
	require.Equal(t, MacroSplit{}, DefaultMacros(-100))
}

func TestMetricsEndToEnd(t *testing.T) {
	t.Parallel()

	bmi := CalculateBMI(70, 175)
	bmr := CalculateBMR(70, 175, 30, model.GenderMale)
	tdee := CalculateTDEE(bmr, model.ActivityModeratelyActive)

	require.InDelta(t, 22.86, bmi, 0.01)
	require.InDelta(t, 1648.75, bmr, 0.01)
	require.InDelta(t, 2555.56, tdee, 0.01)
	require.Equal(t, "Normal", BMICategoryFor(bmi).Label)
}
