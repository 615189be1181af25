package nutriplan

import (
	"fmt"
	"strings"

	"github.com/nutriplan/nutriplan-cli/internal/config"
	"github.com/nutriplan/nutriplan-cli/internal/model"
	"github.com/nutriplan/nutriplan-cli/internal/service"
	"github.com/nutriplan/nutriplan-cli/internal/store"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your profile and nutrition targets",
}

var (
	profileHeight       float64
	profileWeight       float64
	profileAge          int
	profileGender       string
	profileActivity     string
	profileRestrictions string
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or update the profile; metrics and targets are recalculated",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.ProfileInput{
			HeightCm:            profileHeight,
			WeightKg:            profileWeight,
			Age:                 profileAge,
			Gender:              model.Gender(strings.ToLower(strings.TrimSpace(profileGender))),
			ActivityLevel:       model.ActivityLevel(strings.ToLower(strings.TrimSpace(profileActivity))),
			DietaryRestrictions: splitCommaList(profileRestrictions),
		}
		return withStore(func(st *store.Store, cfg *config.Config) error {
			if _, err := service.UpsertProfile(st, in); err != nil {
				return err
			}
			profile, err := service.GetProfile(st)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile saved\n")
			printProfile(cmd, profile, cfg)
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile with calculated metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store, cfg *config.Config) error {
			profile, err := service.GetProfile(st)
			if err != nil {
				return err
			}
			if profile == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No profile yet; run: nutriplan profile set")
				return nil
			}
			printProfile(cmd, profile, cfg)
			return nil
		})
	},
}

var (
	goalCalories    int
	goalProtein     int
	goalCarbs       int
	goalFat         int
	goalWorkoutKcal int
	goalWorkoutDays int
)

var profileGoalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Adjust calorie and macro targets without touching the metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		var in service.GoalInput
		if cmd.Flags().Changed("calories") {
			in.CalorieTarget = &goalCalories
		}
		if cmd.Flags().Changed("protein") {
			in.ProteinTargetG = &goalProtein
		}
		if cmd.Flags().Changed("carbs") {
			in.CarbsTargetG = &goalCarbs
		}
		if cmd.Flags().Changed("fat") {
			in.FatTargetG = &goalFat
		}
		if cmd.Flags().Changed("workout-calories") {
			in.WorkoutCalorieGoal = &goalWorkoutKcal
		}
		if cmd.Flags().Changed("workout-days") {
			in.WorkoutDaysPerWeek = &goalWorkoutDays
		}
		return withStore(func(st *store.Store, cfg *config.Config) error {
			if err := service.SetGoals(st, in); err != nil {
				return err
			}
			profile, err := service.GetProfile(st)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Goals updated")
			printProfile(cmd, profile, cfg)
			return nil
		})
	},
}

func printProfile(cmd *cobra.Command, p *model.UserProfile, cfg *config.Config) {
	out := cmd.OutOrStdout()
	if cfg.Units == "imperial" {
		feet, inches := service.CmToFeetInches(p.HeightCm)
		fmt.Fprintf(out, "Height: %d'%d\"\n", feet, inches)
		fmt.Fprintf(out, "Weight: %.1f lb\n", service.KgToLbs(p.WeightKg))
	} else {
		fmt.Fprintf(out, "Height: %.1f cm\n", p.HeightCm)
		fmt.Fprintf(out, "Weight: %.1f kg\n", p.WeightKg)
	}
	fmt.Fprintf(out, "Age: %d\tGender: %s\tActivity: %s\n", p.Age, p.Gender, p.ActivityLevel)

	category := service.BMICategoryFor(p.BMI)
	fmt.Fprintf(out, "BMI: %.1f (%s)\n", p.BMI, category.Label)
	fmt.Fprintf(out, "BMR: %.0f kcal\tTDEE: %.0f kcal\n", p.BMR, p.TDEE)
	fmt.Fprintf(out, "Targets: %d kcal, %dg protein, %dg carbs, %dg fat\n",
		p.CalorieTarget, p.ProteinTargetG, p.CarbsTargetG, p.FatTargetG)
	if p.WorkoutCalorieGoal > 0 {
		fmt.Fprintf(out, "Workout day goal: %d kcal\n", p.WorkoutCalorieGoal)
	}
	if p.WorkoutDaysPerWeek != nil {
		fmt.Fprintf(out, "Workout days/week: %d\n", *p.WorkoutDaysPerWeek)
	}
	if len(p.DietaryRestrictions) > 0 {
		fmt.Fprintf(out, "Restrictions: %s\n", strings.Join(p.DietaryRestrictions, ", "))
	}
}

func init() {
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in cm")
	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "Weight in kg")
	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "Age in years")
	profileSetCmd.Flags().StringVar(&profileGender, "gender", "", "male, female, or other")
	profileSetCmd.Flags().StringVar(&profileActivity, "activity", "", "sedentary, lightly_active, moderately_active, very_active, or extremely_active")
	profileSetCmd.Flags().StringVar(&profileRestrictions, "restrictions", "", "Comma-separated dietary restrictions")

	profileGoalsCmd.Flags().IntVar(&goalCalories, "calories", 0, "Daily calorie target")
	profileGoalsCmd.Flags().IntVar(&goalProtein, "protein", 0, "Protein target in grams")
	profileGoalsCmd.Flags().IntVar(&goalCarbs, "carbs", 0, "Carbs target in grams")
	profileGoalsCmd.Flags().IntVar(&goalFat, "fat", 0, "Fat target in grams")
	profileGoalsCmd.Flags().IntVar(&goalWorkoutKcal, "workout-calories", 0, "Calorie goal for workout days")
	profileGoalsCmd.Flags().IntVar(&goalWorkoutDays, "workout-days", 0, "Workout days per week (0-7)")

	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd, profileShowCmd, profileGoalsCmd)
}
