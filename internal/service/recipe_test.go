package service

import (
	"strings"
	"testing"

	"github.com/nutriplan/nutriplan-cli/internal/model"
)

func TestCreateAndGetRecipe(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	in := sampleRecipe("Veggie Chili", model.CategoryDinner)
	in.Tags = []string{"vegetarian", "high-fiber"}
	id, err := CreateRecipe(st, in)
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}

	r, err := GetRecipe(st, id)
	if err != nil {
		t.Fatalf("get recipe: %v", err)
	}
	if r == nil {
		t.Fatal("expected recipe")
	}
	if r.Name != "Veggie Chili" || r.Category != model.CategoryDinner {
		t.Errorf("got %s/%s", r.Name, r.Category)
	}
	if len(r.Ingredients) != 1 || r.Ingredients[0].Name != "Oats" {
		t.Errorf("ingredients = %v", r.Ingredients)
	}
	if len(r.Tags) != 2 {
		t.Errorf("tags = %v", r.Tags)
	}
}

func TestGetRecipeNotFound(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	r, err := GetRecipe(st, 999)
	if err != nil {
		t.Fatalf("get recipe: %v", err)
	}
	if r != nil {
		t.Fatal("expected nil for missing recipe")
	}
}

func TestRecipeValidation(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	in := sampleRecipe("", model.CategoryLunch)
	if _, err := CreateRecipe(st, in); err == nil {
		t.Error("expected error for empty name")
	}

	in = sampleRecipe("Soup", "brunch")
	if _, err := CreateRecipe(st, in); err == nil {
		t.Error("expected error for invalid category")
	}

	in = sampleRecipe("Soup", model.CategoryLunch)
	in.Servings = 0
	if _, err := CreateRecipe(st, in); err == nil {
		t.Error("expected error for zero servings")
	}

	in = sampleRecipe("Soup", model.CategoryLunch)
	in.CaloriesPerServing = -10
	if _, err := CreateRecipe(st, in); err == nil {
		t.Error("expected error for negative calories")
	}
}

func TestRecipesByTagUsesIndex(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	quick := sampleRecipe("Toast", model.CategoryBreakfast)
	quick.Tags = []string{"quick"}
	slow := sampleRecipe("Risotto", model.CategoryDinner)
	slow.Tags = []string{"comfort-food"}
	if _, err := BulkCreateRecipes(st, []RecipeInput{quick, slow}); err != nil {
		t.Fatalf("bulk create: %v", err)
	}

	got, err := RecipesByTag(st, "quick")
	if err != nil {
		t.Fatalf("recipes by tag: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Toast" {
		t.Errorf("got %d recipes", len(got))
	}

	// Exact match only; no substring behavior here.
	got, err = RecipesByTag(st, "qui")
	if err != nil {
		t.Fatalf("recipes by tag: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no match for partial tag, got %d", len(got))
	}
}

func TestUpdateRecipeReindexesTags(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	in := sampleRecipe("Stir Fry", model.CategoryDinner)
	in.Tags = []string{"quick"}
	id, err := CreateRecipe(st, in)
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}

	in.Tags = []string{"high-protein"}
	in.CaloriesPerServing = 480
	if err := UpdateRecipe(st, id, in); err != nil {
		t.Fatalf("update recipe: %v", err)
	}

	old, err := RecipesByTag(st, "quick")
	if err != nil {
		t.Fatalf("recipes by tag: %v", err)
	}
	if len(old) != 0 {
		t.Error("old tag still indexed after update")
	}
	cur, err := RecipesByTag(st, "high-protein")
	if err != nil {
		t.Fatalf("recipes by tag: %v", err)
	}
	if len(cur) != 1 || cur[0].CaloriesPerServing != 480 {
		t.Errorf("updated recipe not found via new tag")
	}
}

func TestUpdateMissingRecipe(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	err := UpdateRecipe(st, 42, sampleRecipe("Ghost", model.CategorySnack))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestDeleteRecipeLeavesPlanReferencesDangling(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	id, err := CreateRecipe(st, sampleRecipe("Curry", model.CategoryDinner))
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	planID, err := CreateMealPlan(st, CreateMealPlanInput{WeekStart: "2026-03-02", DailyCalorieTarget: 2000})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}
	plan, err := GetMealPlan(st, planID)
	if err != nil {
		t.Fatalf("get plan: %v", err)
	}
	day := plan.Days[0]
	day.Meals = []model.MealSlot{{Slot: model.SlotDinner, RecipeID: id, Servings: 1}}
	if err := ReplaceDayPlan(st, planID, day); err != nil {
		t.Fatalf("replace day: %v", err)
	}

	if err := DeleteRecipe(st, id); err != nil {
		t.Fatalf("delete recipe: %v", err)
	}

	// The slot survives with its dangling id, and totals skip it.
	plan, err = GetMealPlan(st, planID)
	if err != nil {
		t.Fatalf("get plan: %v", err)
	}
	if len(plan.Days[0].Meals) != 1 {
		t.Fatal("meal slot dropped on recipe delete")
	}
	totals, err := ComputeDayTotals(st, plan.Days[0].Meals)
	if err != nil {
		t.Fatalf("compute totals: %v", err)
	}
	if totals.Calories != 0 {
		t.Errorf("dangling slot contributed %.0f calories", totals.Calories)
	}
}

func TestDeleteMissingRecipe(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	if err := DeleteRecipe(st, 7); err == nil {
		t.Fatal("expected error deleting missing recipe")
	}
}

func TestCountRecipes(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	count, err := CountRecipes(st)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("count = %d, want 0", count)
	}

	if _, err := BulkCreateRecipes(st, []RecipeInput{
		sampleRecipe("One", model.CategoryLunch),
		sampleRecipe("Two", model.CategoryDinner),
	}); err != nil {
		t.Fatalf("bulk create: %v", err)
	}
	count, err = CountRecipes(st)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
}
