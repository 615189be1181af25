package model

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightly_active"
	ActivityModeratelyActive ActivityLevel = "moderately_active"
	ActivityVeryActive       ActivityLevel = "very_active"
	ActivityExtremelyActive  ActivityLevel = "extremely_active"
)

type RecipeCategory string

const (
	CategoryBreakfast RecipeCategory = "breakfast"
	CategoryLunch     RecipeCategory = "lunch"
	CategoryDinner    RecipeCategory = "dinner"
	CategorySnack     RecipeCategory = "snack"
)

// MealSlotValue shares the recipe category vocabulary but is a distinct
// concept: the time-of-day bucket a planned meal occupies.
type MealSlotValue string

const (
	SlotBreakfast MealSlotValue = "breakfast"
	SlotLunch     MealSlotValue = "lunch"
	SlotDinner    MealSlotValue = "dinner"
	SlotSnack     MealSlotValue = "snack"
)

// UserProfile is a singleton row. The derived bmi/bmr/tdee fields are always
// recomputed from the physical stats on write, never edited directly.
type UserProfile struct {
	ID                  int64         `json:"id"`
	HeightCm            float64       `json:"height_cm"`
	WeightKg            float64       `json:"weight_kg"`
	Age                 int           `json:"age"`
	Gender              Gender        `json:"gender"`
	ActivityLevel       ActivityLevel `json:"activity_level"`
	BMI                 float64       `json:"bmi"`
	BMR                 float64       `json:"bmr"`
	TDEE                float64       `json:"tdee"`
	CalorieTarget       int           `json:"calorie_target"`
	ProteinTargetG      int           `json:"protein_target_g"`
	CarbsTargetG        int           `json:"carbs_target_g"`
	FatTargetG          int           `json:"fat_target_g"`
	WorkoutCalorieGoal  int           `json:"workout_calorie_goal"`
	WorkoutDaysPerWeek  *int          `json:"workout_days_per_week,omitempty"`
	DietaryRestrictions []string      `json:"dietary_restrictions"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

type Ingredient struct {
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Calories    float64 `json:"calories"`
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatG        float64 `json:"fat_g"`
	CostPerUnit float64 `json:"cost_per_unit,omitempty"`
	Barcode     string  `json:"barcode,omitempty"`
}

// Recipe per-serving nutrition is authoritative as entered; it is not derived
// from the ingredient list.
type Recipe struct {
	ID                 int64          `json:"id"`
	Name               string         `json:"name"`
	Category           RecipeCategory `json:"category"`
	Servings           float64        `json:"servings"`
	PrepTimeMin        int            `json:"prep_time_min"`
	CookTimeMin        int            `json:"cook_time_min"`
	Ingredients        []Ingredient   `json:"ingredients"`
	Instructions       []string       `json:"instructions"`
	Tags               []string       `json:"tags"`
	Tips               string         `json:"tips,omitempty"`
	CaloriesPerServing float64        `json:"calories_per_serving"`
	ProteinPerServingG float64        `json:"protein_per_serving_g"`
	CarbsPerServingG   float64        `json:"carbs_per_serving_g"`
	FatPerServingG     float64        `json:"fat_per_serving_g"`
	CostPerServing     *float64       `json:"cost_per_serving,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

type PantryItem struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Quantity       float64    `json:"quantity"`
	Unit           string     `json:"unit"`
	Category       string     `json:"category"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	Barcode        string     `json:"barcode,omitempty"`
	CostPerUnit    *float64   `json:"cost_per_unit,omitempty"`
	PurchaseDate   *time.Time `json:"purchase_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// MealSlot references its recipe by id only; the recipe may have been deleted
// since, and callers resolving slots must tolerate the dangling id.
type MealSlot struct {
	Slot     MealSlotValue `json:"slot"`
	RecipeID int64         `json:"recipe_id"`
	Servings float64       `json:"servings"`
}

// DayPlan totals are kept in sync by whoever mutates the slot list; the store
// does not recompute them.
type DayPlan struct {
	Date          string     `json:"date"`
	IsWorkoutDay  bool       `json:"is_workout_day"`
	CalorieTarget int        `json:"calorie_target"`
	Meals         []MealSlot `json:"meals"`
	TotalCalories float64    `json:"total_calories"`
	TotalProteinG float64    `json:"total_protein_g"`
	TotalCarbsG   float64    `json:"total_carbs_g"`
	TotalFatG     float64    `json:"total_fat_g"`
	EstimatedCost *float64   `json:"estimated_cost,omitempty"`
}

// MealPlan holds exactly seven DayPlans keyed by its Monday week-start date.
type MealPlan struct {
	ID              int64     `json:"id"`
	WeekStartDate   string    `json:"week_start_date"`
	Days            []DayPlan `json:"days"`
	TotalWeeklyCost *float64  `json:"total_weekly_cost,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type GroceryItem struct {
	Name             string   `json:"name"`
	Quantity         float64  `json:"quantity"`
	Unit             string   `json:"unit"`
	Category         string   `json:"category"`
	Checked          bool     `json:"checked"`
	EstimatedCost    *float64 `json:"estimated_cost,omitempty"`
	Barcode          string   `json:"barcode,omitempty"`
	NeededForRecipes []int64  `json:"needed_for_recipes,omitempty"`
}

// GroceryList is active while CompletedAt is nil. It references its meal plan
// by id with no integrity enforcement.
type GroceryList struct {
	ID                 int64         `json:"id"`
	MealPlanID         int64         `json:"meal_plan_id"`
	Items              []GroceryItem `json:"items"`
	TotalEstimatedCost float64       `json:"total_estimated_cost"`
	ActualCost         *float64      `json:"actual_cost,omitempty"`
	CompletedAt        *time.Time    `json:"completed_at,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
}
