package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nutriplan/nutriplan-cli/internal/model"
	"github.com/nutriplan/nutriplan-cli/internal/store"
)

// ExportDocument is the self-contained backup format: every collection in one
// JSON document, ids included so cross-references survive a round trip.
type ExportDocument struct {
	ExportedAt   time.Time           `json:"exported_at"`
	Profile      *model.UserProfile  `json:"profile,omitempty"`
	Recipes      []model.Recipe      `json:"recipes"`
	PantryItems  []model.PantryItem  `json:"pantry_items"`
	MealPlans    []model.MealPlan    `json:"meal_plans"`
	GroceryLists []model.GroceryList `json:"grocery_lists"`
}

func Export(st *store.Store) (*ExportDocument, error) {
	profile, err := GetProfile(st)
	if err != nil {
		return nil, err
	}
	recipes, err := ListRecipes(st)
	if err != nil {
		return nil, err
	}
	pantry, err := ListPantryItems(st, "")
	if err != nil {
		return nil, err
	}
	plans, err := ListMealPlans(st)
	if err != nil {
		return nil, err
	}
	lists, err := ListGroceryLists(st)
	if err != nil {
		return nil, err
	}
	return &ExportDocument{
		ExportedAt:   time.Now().UTC(),
		Profile:      profile,
		Recipes:      recipes,
		PantryItems:  pantry,
		MealPlans:    plans,
		GroceryLists: lists,
	}, nil
}

// WriteExport streams the export document as indented JSON.
func WriteExport(st *store.Store, w io.Writer) error {
	doc, err := Export(st)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

type ImportMode string

const (
	// ImportReplace wipes every collection and restores the document verbatim.
	ImportReplace ImportMode = "replace"
	// ImportSkip keeps existing rows; document rows whose ids are already
	// taken are dropped.
	ImportSkip ImportMode = "skip"
)

type ImportSummary struct {
	ProfileImported bool
	Recipes         int
	PantryItems     int
	MealPlans       int
	GroceryLists    int
}

// ReadImport parses and sanity-checks an export document.
func ReadImport(r io.Reader) (*ExportDocument, error) {
	var doc ExportDocument
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode import document: %w", err)
	}
	for i, rec := range doc.Recipes {
		if strings.TrimSpace(rec.Name) == "" {
			return nil, fmt.Errorf("import recipe %d has no name", i)
		}
	}
	for i, item := range doc.PantryItems {
		if strings.TrimSpace(item.Name) == "" {
			return nil, fmt.Errorf("import pantry item %d has no name", i)
		}
	}
	for i, plan := range doc.MealPlans {
		if _, err := parseWeekStart(plan.WeekStartDate); err != nil {
			return nil, fmt.Errorf("import meal plan %d: %w", i, err)
		}
	}
	return &doc, nil
}

// Import restores an export document in a single transaction. Ids are
// preserved either way so meal plan and grocery list references stay intact.
func Import(st *store.Store, doc *ExportDocument, mode ImportMode) (*ImportSummary, error) {
	if mode != ImportReplace && mode != ImportSkip {
		return nil, fmt.Errorf("invalid import mode %q", mode)
	}

	tx, err := st.DB().Begin()
	if err != nil {
		return nil, fmt.Errorf("begin import tx: %w", err)
	}

	if mode == ImportReplace {
		for _, table := range []string{"grocery_lists", "meal_plans", "recipe_tags", "recipes", "pantry_items", "user_profile"} {
			if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
				_ = tx.Rollback()
				return nil, fmt.Errorf("clear %s: %w", table, err)
			}
		}
	}

	var summary ImportSummary
	verb := `INSERT OR IGNORE INTO`
	if mode == ImportReplace {
		verb = `INSERT INTO`
	}

	if doc.Profile != nil {
		imported, err := importProfile(tx, verb, *doc.Profile)
		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}
		summary.ProfileImported = imported
	}
	for _, rec := range doc.Recipes {
		inserted, err := importRecipe(tx, verb, rec)
		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}
		if inserted {
			summary.Recipes++
		}
	}
	for _, item := range doc.PantryItems {
		inserted, err := execCounted(tx, verb+` pantry_items(
  id, name, quantity, unit, category, expiration_date, barcode, cost_per_unit, purchase_date, created_at, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, item.Name, item.Quantity, item.Unit, item.Category,
			timePtrToNullString(item.ExpirationDate), nullableString(item.Barcode),
			floatPtrToNull(item.CostPerUnit), timePtrToNullString(item.PurchaseDate),
			importTime(item.CreatedAt), importTime(item.UpdatedAt))
		if err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("import pantry item %q: %w", item.Name, err)
		}
		if inserted {
			summary.PantryItems++
		}
	}
	for _, plan := range doc.MealPlans {
		daysJSON, err := encodeJSON("meal plan days", plan.Days)
		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}
		inserted, err := execCounted(tx, verb+` meal_plans(id, week_start_date, days_json, total_weekly_cost, created_at, updated_at)
VALUES(?, ?, ?, ?, ?, ?)`,
			plan.ID, plan.WeekStartDate, daysJSON, floatPtrToNull(plan.TotalWeeklyCost),
			importTime(plan.CreatedAt), importTime(plan.UpdatedAt))
		if err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("import meal plan %s: %w", plan.WeekStartDate, err)
		}
		if inserted {
			summary.MealPlans++
		}
	}
	for _, list := range doc.GroceryLists {
		itemsJSON, err := encodeJSON("grocery items", list.Items)
		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}
		inserted, err := execCounted(tx, verb+` grocery_lists(id, meal_plan_id, items_json, total_estimated_cost, actual_cost, completed_at, created_at)
VALUES(?, ?, ?, ?, ?, ?, ?)`,
			list.ID, list.MealPlanID, itemsJSON, list.TotalEstimatedCost,
			floatPtrToNull(list.ActualCost), timePtrToNullString(list.CompletedAt),
			importTime(list.CreatedAt))
		if err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("import grocery list %d: %w", list.ID, err)
		}
		if inserted {
			summary.GroceryLists++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	for _, collection := range []string{
		store.CollectionProfile, store.CollectionRecipes, store.CollectionPantryItems,
		store.CollectionMealPlans, store.CollectionGroceryLists,
	} {
		st.Notify(store.Change{Collection: collection, Op: store.OpInsert})
	}
	return &summary, nil
}

func importProfile(tx *sql.Tx, verb string, p model.UserProfile) (bool, error) {
	restrictions, err := encodeJSON("dietary restrictions", nonNilStrings(p.DietaryRestrictions))
	if err != nil {
		return false, err
	}
	return execCounted(tx, verb+` user_profile(
  id, height_cm, weight_kg, age, gender, activity_level,
  bmi, bmr, tdee,
  calorie_target, protein_target_g, carbs_target_g, fat_target_g,
  workout_calorie_goal, workout_days_per_week, dietary_restrictions_json,
  created_at, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.HeightCm, p.WeightKg, p.Age, string(p.Gender), string(p.ActivityLevel),
		p.BMI, p.BMR, p.TDEE,
		p.CalorieTarget, p.ProteinTargetG, p.CarbsTargetG, p.FatTargetG,
		p.WorkoutCalorieGoal, p.WorkoutDaysPerWeek, restrictions,
		importTime(p.CreatedAt), importTime(p.UpdatedAt))
}

func importRecipe(tx *sql.Tx, verb string, r model.Recipe) (bool, error) {
	cols, err := encodeRecipeColumns(RecipeInput{
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Tags:         r.Tags,
	})
	if err != nil {
		return false, err
	}
	inserted, err := execCounted(tx, verb+` recipes(
  id, name, category, servings, prep_time_min, cook_time_min,
  ingredients_json, instructions_json, tags_json, tips,
  calories_per_serving, protein_per_serving_g, carbs_per_serving_g, fat_per_serving_g,
  cost_per_serving, created_at, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Name, string(r.Category), r.Servings, r.PrepTimeMin, r.CookTimeMin,
		cols.ingredients, cols.instructions, cols.tags, r.Tips,
		r.CaloriesPerServing, r.ProteinPerServingG, r.CarbsPerServingG, r.FatPerServingG,
		floatPtrToNull(r.CostPerServing), importTime(r.CreatedAt), importTime(r.UpdatedAt))
	if err != nil {
		return false, fmt.Errorf("import recipe %q: %w", r.Name, err)
	}
	if !inserted {
		return false, nil
	}
	for _, tag := range r.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, err := tx.Exec(`INSERT OR IGNORE INTO recipe_tags(recipe_id, tag) VALUES(?, ?)`, r.ID, tag); err != nil {
			return false, fmt.Errorf("index imported recipe %q tag %q: %w", r.Name, tag, err)
		}
	}
	return true, nil
}

func execCounted(tx *sql.Tx, query string, args ...any) (bool, error) {
	res, err := tx.Exec(query, args...)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func importTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}
