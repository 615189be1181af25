package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/nutriplan/nutriplan-cli/internal/model"
	"github.com/nutriplan/nutriplan-cli/internal/store"
)

const weekStartLayout = "2006-01-02"

// NormalizeWeekStart rolls a date back to the Monday of its week, the
// canonical key for a meal plan.
func NormalizeWeekStart(t time.Time) string {
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return t.AddDate(0, 0, -offset).Format(weekStartLayout)
}

func parseWeekStart(weekStart string) (time.Time, error) {
	weekStart = strings.TrimSpace(weekStart)
	t, err := time.ParseInLocation(weekStartLayout, weekStart, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid week start %q (expected YYYY-MM-DD)", weekStart)
	}
	return t, nil
}

type CreateMealPlanInput struct {
	// WeekStart is any date in the target week; it is normalized to Monday.
	WeekStart string
	// DailyCalorieTarget seeds every day's target; 0 falls back to the
	// profile's calorie target when a profile exists.
	DailyCalorieTarget int
	// WorkoutDays lists weekday offsets (0=Monday .. 6=Sunday) flagged as
	// workout days.
	WorkoutDays []int
}

// CreateMealPlan builds a plan with exactly seven empty day entries. One plan
// per week: an existing plan for the same normalized week start is an error,
// enforced by lookup-before-insert.
func CreateMealPlan(st *store.Store, in CreateMealPlanInput) (int64, error) {
	start, err := parseWeekStart(in.WeekStart)
	if err != nil {
		return 0, err
	}
	weekStart := NormalizeWeekStart(start)
	start, _ = time.ParseInLocation(weekStartLayout, weekStart, time.Local)

	if err := validateNonNegativeInt("daily calorie target", in.DailyCalorieTarget); err != nil {
		return 0, err
	}
	for _, d := range in.WorkoutDays {
		if d < 0 || d > 6 {
			return 0, fmt.Errorf("workout day offset %d out of range (0-6)", d)
		}
	}

	existing, err := GetMealPlanByWeek(st, weekStart)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, fmt.Errorf("meal plan for week %s already exists", weekStart)
	}

	target := in.DailyCalorieTarget
	if target == 0 {
		profile, err := GetProfile(st)
		if err != nil {
			return 0, err
		}
		if profile != nil {
			target = profile.CalorieTarget
		}
	}

	workout := map[int]bool{}
	for _, d := range in.WorkoutDays {
		workout[d] = true
	}
	days := make([]model.DayPlan, 7)
	for i := range days {
		days[i] = model.DayPlan{
			Date:          start.AddDate(0, 0, i).Format(weekStartLayout),
			IsWorkoutDay:  workout[i],
			CalorieTarget: target,
			Meals:         []model.MealSlot{},
		}
	}

	daysJSON, err := encodeJSON("day plans", days)
	if err != nil {
		return 0, err
	}
	res, err := st.DB().Exec(`
INSERT INTO meal_plans(week_start_date, days_json) VALUES(?, ?)
`, weekStart, daysJSON)
	if err != nil {
		return 0, fmt.Errorf("create meal plan: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve meal plan id: %w", err)
	}
	st.Notify(store.Change{Collection: store.CollectionMealPlans, Op: store.OpInsert, ID: id})
	return id, nil
}

const mealPlanColumns = `id, week_start_date, days_json, total_weekly_cost, created_at, updated_at`

func GetMealPlan(st *store.Store, id int64) (*model.MealPlan, error) {
	row := st.DB().QueryRow(`SELECT `+mealPlanColumns+` FROM meal_plans WHERE id = ?`, id)
	plan, err := scanMealPlan(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get meal plan %d: %w", id, err)
	}
	return plan, nil
}

func GetMealPlanByWeek(st *store.Store, weekStart string) (*model.MealPlan, error) {
	start, err := parseWeekStart(weekStart)
	if err != nil {
		return nil, err
	}
	weekStart = NormalizeWeekStart(start)
	row := st.DB().QueryRow(`SELECT `+mealPlanColumns+` FROM meal_plans WHERE week_start_date = ? LIMIT 1`, weekStart)
	plan, err := scanMealPlan(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get meal plan for week %s: %w", weekStart, err)
	}
	return plan, nil
}

// CurrentMealPlan is the plan with the latest week start, or nil.
func CurrentMealPlan(st *store.Store) (*model.MealPlan, error) {
	row := st.DB().QueryRow(`SELECT ` + mealPlanColumns + ` FROM meal_plans ORDER BY week_start_date DESC LIMIT 1`)
	plan, err := scanMealPlan(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get current meal plan: %w", err)
	}
	return plan, nil
}

func ListMealPlans(st *store.Store) ([]model.MealPlan, error) {
	rows, err := st.DB().Query(`SELECT ` + mealPlanColumns + ` FROM meal_plans ORDER BY week_start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list meal plans: %w", err)
	}
	defer rows.Close()

	plans := make([]model.MealPlan, 0)
	for rows.Next() {
		plan, err := scanMealPlan(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan meal plan: %w", err)
		}
		plans = append(plans, *plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meal plans: %w", err)
	}
	return plans, nil
}

// ReplaceDayPlan swaps out one whole day (matched by date) and bumps the
// plan's updatedAt. The day's totals are stored as given; pair with
// ComputeDayTotals to keep them honest.
func ReplaceDayPlan(st *store.Store, planID int64, day model.DayPlan) error {
	plan, err := GetMealPlan(st, planID)
	if err != nil {
		return err
	}
	if plan == nil {
		return fmt.Errorf("meal plan %d not found", planID)
	}

	replaced := false
	for i := range plan.Days {
		if plan.Days[i].Date == day.Date {
			plan.Days[i] = day
			replaced = true
			break
		}
	}
	if !replaced {
		return fmt.Errorf("meal plan %d has no day %s", planID, day.Date)
	}

	daysJSON, err := encodeJSON("day plans", plan.Days)
	if err != nil {
		return err
	}
	_, err = st.DB().Exec(`
UPDATE meal_plans SET days_json = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
`, daysJSON, planID)
	if err != nil {
		return fmt.Errorf("replace day %s in meal plan %d: %w", day.Date, planID, err)
	}
	st.Notify(store.Change{Collection: store.CollectionMealPlans, Op: store.OpUpdate, ID: planID})
	return nil
}

type DayTotals struct {
	Calories float64
	ProteinG float64
	CarbsG   float64
	FatG     float64
	Cost     *float64
}

// ComputeDayTotals resolves each slot's recipe and scales its per-serving
// figures by the slot's servings multiplier. Slots referencing a deleted
// recipe are skipped; a dangling id is tolerated, not an error.
func ComputeDayTotals(st *store.Store, meals []model.MealSlot) (DayTotals, error) {
	var totals DayTotals
	var cost float64
	var haveCost bool
	for _, slot := range meals {
		recipe, err := GetRecipe(st, slot.RecipeID)
		if err != nil {
			return DayTotals{}, err
		}
		if recipe == nil {
			continue
		}
		totals.Calories += recipe.CaloriesPerServing * slot.Servings
		totals.ProteinG += recipe.ProteinPerServingG * slot.Servings
		totals.CarbsG += recipe.CarbsPerServingG * slot.Servings
		totals.FatG += recipe.FatPerServingG * slot.Servings
		if recipe.CostPerServing != nil {
			cost += *recipe.CostPerServing * slot.Servings
			haveCost = true
		}
	}
	if haveCost {
		totals.Cost = &cost
	}
	return totals, nil
}

// DeleteMealPlan removes only the plan. Grocery lists referencing it keep
// their dangling meal plan id.
func DeleteMealPlan(st *store.Store, id int64) error {
	res, err := st.DB().Exec(`DELETE FROM meal_plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete meal plan %d: %w", id, err)
	}
	if err := requireAffected(res, fmt.Sprintf("meal plan %d", id)); err != nil {
		return err
	}
	st.Notify(store.Change{Collection: store.CollectionMealPlans, Op: store.OpDelete, ID: id})
	return nil
}

func scanMealPlan(scan func(...any) error) (*model.MealPlan, error) {
	var plan model.MealPlan
	var days string
	var cost sql.NullFloat64
	err := scan(&plan.ID, &plan.WeekStartDate, &days, &cost, &plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := decodeJSON("day plans", days, &plan.Days); err != nil {
		return nil, err
	}
	plan.TotalWeeklyCost = nullToFloatPtr(cost)
	return &plan, nil
}
