package service

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nutriplan/nutriplan-cli/internal/model"
)

func exportFixture(t *testing.T) *ExportDocument {
	t.Helper()
	st := newTestStore(t)

	if _, err := UpsertProfile(st, sampleProfile()); err != nil {
		t.Fatalf("upsert profile: %v", err)
	}
	planID, _, _ := groceryFixture(t, st)
	if _, err := GenerateGroceryList(st, planID); err != nil {
		t.Fatalf("generate list: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteExport(st, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	doc, err := ReadImport(&buf)
	if err != nil {
		t.Fatalf("parse export: %v", err)
	}
	return doc
}

func TestExportRoundTrip(t *testing.T) {
	t.Parallel()
	doc := exportFixture(t)

	if doc.Profile == nil {
		t.Fatal("export lost the profile")
	}
	if len(doc.Recipes) != 2 || len(doc.MealPlans) != 1 || len(doc.GroceryLists) != 1 {
		t.Fatalf("export shape: %d recipes, %d plans, %d lists",
			len(doc.Recipes), len(doc.MealPlans), len(doc.GroceryLists))
	}
	if doc.ExportedAt.IsZero() {
		t.Error("exported_at not stamped")
	}
	// Cross-references survive by id.
	if doc.GroceryLists[0].MealPlanID != doc.MealPlans[0].ID {
		t.Error("grocery list lost its meal plan reference")
	}
}

func TestImportReplaceRestoresEverything(t *testing.T) {
	t.Parallel()
	doc := exportFixture(t)

	dst := newTestStore(t)
	// Pre-existing rows get wiped in replace mode.
	if _, err := CreateRecipe(dst, sampleRecipe("Leftover", model.CategoryDinner)); err != nil {
		t.Fatalf("create recipe: %v", err)
	}

	summary, err := Import(dst, doc, ImportReplace)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !summary.ProfileImported || summary.Recipes != 2 || summary.MealPlans != 1 || summary.GroceryLists != 1 {
		t.Fatalf("summary = %+v", summary)
	}

	recipes, err := ListRecipes(dst)
	if err != nil {
		t.Fatalf("list recipes: %v", err)
	}
	if len(recipes) != 2 {
		t.Fatalf("got %d recipes after replace, want 2", len(recipes))
	}
	for _, r := range recipes {
		if r.Name == "Leftover" {
			t.Error("replace kept a pre-existing recipe")
		}
	}

	// Ids are preserved, so the plan's slots still resolve.
	plan, err := GetMealPlan(dst, doc.MealPlans[0].ID)
	if err != nil {
		t.Fatalf("get plan: %v", err)
	}
	if plan == nil {
		t.Fatal("imported plan missing under original id")
	}
	totals, err := ComputeDayTotals(dst, plan.Days[0].Meals)
	if err != nil {
		t.Fatalf("compute totals: %v", err)
	}
	if totals.Calories == 0 {
		t.Error("imported slots dangle; recipe ids were not preserved")
	}

	// The tag index is rebuilt for imported recipes.
	tagged, err := RecipesByTag(dst, "test")
	if err != nil {
		t.Fatalf("recipes by tag: %v", err)
	}
	if len(tagged) != 2 {
		t.Errorf("tag index has %d entries, want 2", len(tagged))
	}
}

func TestImportSkipKeepsExistingRows(t *testing.T) {
	t.Parallel()
	doc := exportFixture(t)

	dst := newTestStore(t)
	if _, err := Import(dst, doc, ImportSkip); err != nil {
		t.Fatalf("first import: %v", err)
	}

	// Rename a recipe locally, then import the same document again: the
	// conflicting row is skipped and the local edit survives.
	local, err := GetRecipe(dst, doc.Recipes[0].ID)
	if err != nil {
		t.Fatalf("get recipe: %v", err)
	}
	renamed := RecipeInput{
		Name:               "Local Edit",
		Category:           local.Category,
		Servings:           local.Servings,
		Ingredients:        local.Ingredients,
		Instructions:       local.Instructions,
		Tags:               local.Tags,
		CaloriesPerServing: local.CaloriesPerServing,
		ProteinPerServingG: local.ProteinPerServingG,
		CarbsPerServingG:   local.CarbsPerServingG,
		FatPerServingG:     local.FatPerServingG,
	}
	if err := UpdateRecipe(dst, local.ID, renamed); err != nil {
		t.Fatalf("update recipe: %v", err)
	}

	summary, err := Import(dst, doc, ImportSkip)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if summary.Recipes != 0 || summary.MealPlans != 0 || summary.GroceryLists != 0 {
		t.Errorf("skip mode inserted duplicates: %+v", summary)
	}

	kept, err := GetRecipe(dst, local.ID)
	if err != nil {
		t.Fatalf("get recipe: %v", err)
	}
	if kept.Name != "Local Edit" {
		t.Errorf("skip mode overwrote local row: %s", kept.Name)
	}
}

func TestImportRejectsBadDocuments(t *testing.T) {
	t.Parallel()

	if _, err := ReadImport(strings.NewReader(`{`)); err == nil {
		t.Error("expected error for truncated JSON")
	}
	if _, err := ReadImport(strings.NewReader(`{"recipes":[{"name":""}]}`)); err == nil {
		t.Error("expected error for unnamed recipe")
	}
	if _, err := ReadImport(strings.NewReader(`{"meal_plans":[{"week_start_date":"someday"}]}`)); err == nil {
		t.Error("expected error for bad week start")
	}

	st := newTestStore(t)
	if _, err := Import(st, &ExportDocument{}, ImportMode("merge")); err == nil {
		t.Error("expected error for unknown mode")
	}
}
