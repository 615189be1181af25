package service

import (
	"database/sql"
	"fmt"
	"math"

	"github.com/nutriplan/nutriplan-cli/internal/model"
	"github.com/nutriplan/nutriplan-cli/internal/store"
)

type ProfileInput struct {
	HeightCm            float64
	WeightKg            float64
	Age                 int
	Gender              model.Gender
	ActivityLevel       model.ActivityLevel
	CalorieTarget       int
	ProteinTargetG      int
	CarbsTargetG        int
	FatTargetG          int
	WorkoutCalorieGoal  int
	WorkoutDaysPerWeek  *int
	DietaryRestrictions []string
}

// UpsertProfile writes the singleton profile row: update in place when one
// exists, insert otherwise. The derived bmi/bmr/tdee are recomputed from the
// physical stats on every write. A zero calorie target defaults to the
// rounded TDEE, and all-zero macro targets default to the 30/40/30 split.
func UpsertProfile(st *store.Store, in ProfileInput) (int64, error) {
	if err := validateProfileInput(in); err != nil {
		return 0, err
	}

	bmi := CalculateBMI(in.WeightKg, in.HeightCm)
	bmr := CalculateBMR(in.WeightKg, in.HeightCm, in.Age, in.Gender)
	tdee := CalculateTDEE(bmr, in.ActivityLevel)

	if in.CalorieTarget == 0 {
		in.CalorieTarget = int(math.Round(tdee))
	}
	if in.ProteinTargetG == 0 && in.CarbsTargetG == 0 && in.FatTargetG == 0 {
		macros := DefaultMacros(in.CalorieTarget)
		in.ProteinTargetG = macros.ProteinG
		in.CarbsTargetG = macros.CarbsG
		in.FatTargetG = macros.FatG
	}

	restrictions, err := encodeJSON("dietary restrictions", nonNilStrings(in.DietaryRestrictions))
	if err != nil {
		return 0, err
	}

	existing, err := GetProfile(st)
	if err != nil {
		return 0, err
	}

	if existing != nil {
		_, err := st.DB().Exec(`
UPDATE user_profile SET
  height_cm = ?, weight_kg = ?, age = ?, gender = ?, activity_level = ?,
  bmi = ?, bmr = ?, tdee = ?,
  calorie_target = ?, protein_target_g = ?, carbs_target_g = ?, fat_target_g = ?,
  workout_calorie_goal = ?, workout_days_per_week = ?, dietary_restrictions_json = ?,
  updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, in.HeightCm, in.WeightKg, in.Age, string(in.Gender), string(in.ActivityLevel),
			bmi, bmr, tdee,
			in.CalorieTarget, in.ProteinTargetG, in.CarbsTargetG, in.FatTargetG,
			in.WorkoutCalorieGoal, in.WorkoutDaysPerWeek, restrictions, existing.ID)
		if err != nil {
			return 0, fmt.Errorf("update profile: %w", err)
		}
		st.Notify(store.Change{Collection: store.CollectionProfile, Op: store.OpUpdate, ID: existing.ID})
		return existing.ID, nil
	}

	res, err := st.DB().Exec(`
INSERT INTO user_profile(
  height_cm, weight_kg, age, gender, activity_level,
  bmi, bmr, tdee,
  calorie_target, protein_target_g, carbs_target_g, fat_target_g,
  workout_calorie_goal, workout_days_per_week, dietary_restrictions_json)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, in.HeightCm, in.WeightKg, in.Age, string(in.Gender), string(in.ActivityLevel),
		bmi, bmr, tdee,
		in.CalorieTarget, in.ProteinTargetG, in.CarbsTargetG, in.FatTargetG,
		in.WorkoutCalorieGoal, in.WorkoutDaysPerWeek, restrictions)
	if err != nil {
		return 0, fmt.Errorf("create profile: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve profile id: %w", err)
	}
	st.Notify(store.Change{Collection: store.CollectionProfile, Op: store.OpInsert, ID: id})
	return id, nil
}

// GetProfile returns the singleton profile, or nil when none has been created.
func GetProfile(st *store.Store) (*model.UserProfile, error) {
	row := st.DB().QueryRow(`
SELECT id, height_cm, weight_kg, age, gender, activity_level,
  bmi, bmr, tdee,
  calorie_target, protein_target_g, carbs_target_g, fat_target_g,
  workout_calorie_goal, workout_days_per_week, dietary_restrictions_json,
  created_at, updated_at
FROM user_profile
ORDER BY id
LIMIT 1
`)

	var p model.UserProfile
	var days sql.NullInt64
	var restrictions string
	err := row.Scan(&p.ID, &p.HeightCm, &p.WeightKg, &p.Age, &p.Gender, &p.ActivityLevel,
		&p.BMI, &p.BMR, &p.TDEE,
		&p.CalorieTarget, &p.ProteinTargetG, &p.CarbsTargetG, &p.FatTargetG,
		&p.WorkoutCalorieGoal, &days, &restrictions, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if days.Valid {
		d := int(days.Int64)
		p.WorkoutDaysPerWeek = &d
	}
	if err := decodeJSON("dietary restrictions", restrictions, &p.DietaryRestrictions); err != nil {
		return nil, err
	}
	return &p, nil
}

// GoalInput carries only the fields being changed; nil pointers leave the
// stored target untouched. Targets are independently settable and goal
// updates never touch the derived metrics.
type GoalInput struct {
	CalorieTarget      *int
	ProteinTargetG     *int
	CarbsTargetG       *int
	FatTargetG         *int
	WorkoutCalorieGoal *int
	WorkoutDaysPerWeek *int
}

func SetGoals(st *store.Store, in GoalInput) error {
	profile, err := GetProfile(st)
	if err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("no profile exists; run profile set first")
	}

	apply := func(target *int, change *int, name string) error {
		if change == nil {
			return nil
		}
		if err := validateNonNegativeInt(name, *change); err != nil {
			return err
		}
		*target = *change
		return nil
	}
	if err := apply(&profile.CalorieTarget, in.CalorieTarget, "calorie target"); err != nil {
		return err
	}
	if err := apply(&profile.ProteinTargetG, in.ProteinTargetG, "protein target"); err != nil {
		return err
	}
	if err := apply(&profile.CarbsTargetG, in.CarbsTargetG, "carbs target"); err != nil {
		return err
	}
	if err := apply(&profile.FatTargetG, in.FatTargetG, "fat target"); err != nil {
		return err
	}
	if err := apply(&profile.WorkoutCalorieGoal, in.WorkoutCalorieGoal, "workout calorie goal"); err != nil {
		return err
	}
	if in.WorkoutDaysPerWeek != nil {
		if *in.WorkoutDaysPerWeek < 0 || *in.WorkoutDaysPerWeek > 7 {
			return fmt.Errorf("workout days per week must be between 0 and 7")
		}
		profile.WorkoutDaysPerWeek = in.WorkoutDaysPerWeek
	}

	_, err = st.DB().Exec(`
UPDATE user_profile SET
  calorie_target = ?, protein_target_g = ?, carbs_target_g = ?, fat_target_g = ?,
  workout_calorie_goal = ?, workout_days_per_week = ?,
  updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, profile.CalorieTarget, profile.ProteinTargetG, profile.CarbsTargetG, profile.FatTargetG,
		profile.WorkoutCalorieGoal, profile.WorkoutDaysPerWeek, profile.ID)
	if err != nil {
		return fmt.Errorf("set goals: %w", err)
	}
	st.Notify(store.Change{Collection: store.CollectionProfile, Op: store.OpUpdate, ID: profile.ID})
	return nil
}

func validateProfileInput(in ProfileInput) error {
	if err := validatePositiveFloat("height", in.HeightCm); err != nil {
		return err
	}
	if err := validatePositiveFloat("weight", in.WeightKg); err != nil {
		return err
	}
	if in.Age <= 0 {
		return fmt.Errorf("age must be > 0")
	}
	switch in.Gender {
	case model.GenderMale, model.GenderFemale, model.GenderOther:
	default:
		return fmt.Errorf("invalid gender %q (expected male, female, or other)", in.Gender)
	}
	if _, ok := activityMultipliers[in.ActivityLevel]; !ok {
		return fmt.Errorf("invalid activity level %q", in.ActivityLevel)
	}
	if err := validateNonNegativeInt("calorie target", in.CalorieTarget); err != nil {
		return err
	}
	if err := validateNonNegativeInt("workout calorie goal", in.WorkoutCalorieGoal); err != nil {
		return err
	}
	if in.WorkoutDaysPerWeek != nil && (*in.WorkoutDaysPerWeek < 0 || *in.WorkoutDaysPerWeek > 7) {
		return fmt.Errorf("workout days per week must be between 0 and 7")
	}
	return nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
