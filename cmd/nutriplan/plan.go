package nutriplan

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/nutriplan/nutriplan-cli/internal/config"
	"github.com/nutriplan/nutriplan-cli/internal/model"
	"github.com/nutriplan/nutriplan-cli/internal/service"
	"github.com/nutriplan/nutriplan-cli/internal/store"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build and inspect weekly meal plans",
}

var (
	planWeek        string
	planTarget      int
	planWorkoutDays string
)

var planCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a plan for a week (any date in the week works)",
	RunE: func(cmd *cobra.Command, args []string) error {
		week := planWeek
		if strings.TrimSpace(week) == "" {
			week = time.Now().Format("2006-01-02")
		}
		var workoutDays []int
		for _, part := range splitCommaList(planWorkoutDays) {
			var d int
			if _, err := fmt.Sscanf(part, "%d", &d); err != nil {
				return fmt.Errorf("invalid workout day %q (expected 0-6, Monday=0)", part)
			}
			workoutDays = append(workoutDays, d)
		}
		return withStore(func(st *store.Store, cfg *config.Config) error {
			id, err := service.CreateMealPlan(st, service.CreateMealPlanInput{
				WeekStart:          week,
				DailyCalorieTarget: planTarget,
				WorkoutDays:        workoutDays,
			})
			if err != nil {
				return err
			}
			plan, err := service.GetMealPlan(st, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created plan %d for week of %s\n", id, plan.WeekStartDate)
			return nil
		})
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a plan's week with per-day totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store, cfg *config.Config) error {
			plan, err := service.GetMealPlan(st, id)
			if err != nil {
				return err
			}
			if plan == nil {
				return fmt.Errorf("meal plan %d not found", id)
			}
			return printPlan(cmd, st, plan)
		})
	},
}

var planCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the most recent plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store, cfg *config.Config) error {
			plan, err := service.CurrentMealPlan(st)
			if err != nil {
				return err
			}
			if plan == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No meal plans yet; run: nutriplan plan create")
				return nil
			}
			return printPlan(cmd, st, plan)
		})
	},
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all plans, newest week first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store, cfg *config.Config) error {
			plans, err := service.ListMealPlans(st)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tWEEK OF\tMEALS")
			for _, plan := range plans {
				meals := 0
				for _, day := range plan.Days {
					meals += len(day.Meals)
				}
				fmt.Fprintf(w, "%d\t%s\t%d\n", plan.ID, plan.WeekStartDate, meals)
			}
			return w.Flush()
		})
	},
}

var (
	setDayDate     string
	setDaySlot     string
	setDayRecipe   int64
	setDayServings float64
	setDayWorkout  bool
	setDayClear    bool
)

var planSetDayCmd = &cobra.Command{
	Use:   "set-day <plan-id>",
	Short: "Add a meal to a day, or clear the day",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("expected exactly one plan id argument")
		}
		id, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store, cfg *config.Config) error {
			plan, err := service.GetMealPlan(st, id)
			if err != nil {
				return err
			}
			if plan == nil {
				return fmt.Errorf("meal plan %d not found", id)
			}

			var day *model.DayPlan
			for i := range plan.Days {
				if plan.Days[i].Date == strings.TrimSpace(setDayDate) {
					day = &plan.Days[i]
					break
				}
			}
			if day == nil {
				return fmt.Errorf("plan %d has no day %q", id, setDayDate)
			}

			if setDayClear {
				day.Meals = []model.MealSlot{}
			} else {
				if setDayRecipe <= 0 {
					return fmt.Errorf("--recipe is required (or use --clear)")
				}
				slot := model.MealSlotValue(strings.ToLower(strings.TrimSpace(setDaySlot)))
				switch slot {
				case model.SlotBreakfast, model.SlotLunch, model.SlotDinner, model.SlotSnack:
				default:
					return fmt.Errorf("invalid --slot %q (breakfast, lunch, dinner, or snack)", setDaySlot)
				}
				servings := setDayServings
				if servings <= 0 {
					servings = 1
				}
				day.Meals = append(day.Meals, model.MealSlot{Slot: slot, RecipeID: setDayRecipe, Servings: servings})
			}
			if cmd.Flags().Changed("workout") {
				day.IsWorkoutDay = setDayWorkout
			}

			totals, err := service.ComputeDayTotals(st, day.Meals)
			if err != nil {
				return err
			}
			day.TotalCalories = totals.Calories
			day.TotalProteinG = totals.ProteinG
			day.TotalCarbsG = totals.CarbsG
			day.TotalFatG = totals.FatG
			day.EstimatedCost = totals.Cost

			if err := service.ReplaceDayPlan(st, id, *day); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s now totals %.0f kcal\n", day.Date, day.TotalCalories)
			return nil
		})
	},
}

var planDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store, cfg *config.Config) error {
			if err := service.DeleteMealPlan(st, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted plan %d\n", id)
			return nil
		})
	},
}

func printPlan(cmd *cobra.Command, st *store.Store, plan *model.MealPlan) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Plan %d, week of %s\n", plan.ID, plan.WeekStartDate)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tWORKOUT\tTARGET\tKCAL\tP\tC\tF\tMEALS")
	for _, day := range plan.Days {
		workout := ""
		if day.IsWorkoutDay {
			workout = "yes"
		}
		names := make([]string, 0, len(day.Meals))
		for _, slot := range day.Meals {
			recipe, err := service.GetRecipe(st, slot.RecipeID)
			if err != nil {
				return err
			}
			name := fmt.Sprintf("#%d", slot.RecipeID)
			if recipe != nil {
				name = recipe.Name
			}
			names = append(names, fmt.Sprintf("%s: %s", slot.Slot, name))
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.0f\t%.0f\t%.0f\t%.0f\t%s\n",
			day.Date, workout, day.CalorieTarget,
			day.TotalCalories, day.TotalProteinG, day.TotalCarbsG, day.TotalFatG,
			strings.Join(names, "; "))
	}
	return w.Flush()
}

func init() {
	planCreateCmd.Flags().StringVar(&planWeek, "week", "", "Any date in the target week (YYYY-MM-DD, default today)")
	planCreateCmd.Flags().IntVar(&planTarget, "calories", 0, "Daily calorie target (default from profile)")
	planCreateCmd.Flags().StringVar(&planWorkoutDays, "workout-days", "", "Comma-separated weekday offsets, Monday=0")

	planSetDayCmd.Flags().StringVar(&setDayDate, "date", "", "Day to change (YYYY-MM-DD)")
	planSetDayCmd.Flags().StringVar(&setDaySlot, "slot", "", "breakfast, lunch, dinner, or snack")
	planSetDayCmd.Flags().Int64Var(&setDayRecipe, "recipe", 0, "Recipe id to add")
	planSetDayCmd.Flags().Float64Var(&setDayServings, "servings", 1, "Servings of the recipe")
	planSetDayCmd.Flags().BoolVar(&setDayWorkout, "workout", false, "Mark (or unmark) the day as a workout day")
	planSetDayCmd.Flags().BoolVar(&setDayClear, "clear", false, "Remove all meals from the day")

	rootCmd.AddCommand(planCmd)
	planCmd.AddCommand(planCreateCmd, planShowCmd, planCurrentCmd, planListCmd, planSetDayCmd, planDeleteCmd)
}
