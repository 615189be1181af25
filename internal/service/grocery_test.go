package service

import (
	"math"
	"strings"
	"testing"

	"github.com/nutriplan/nutriplan-cli/internal/model"
	"github.com/nutriplan/nutriplan-cli/internal/store"
)

// groceryFixture builds a plan whose week uses two recipes sharing an
// ingredient, so generation has something to merge.
func groceryFixture(t *testing.T, st *store.Store) (planID int64, oatsID, shakeID int64) {
	t.Helper()

	oats := sampleRecipe("Oatmeal", model.CategoryBreakfast)
	oats.Servings = 1
	oats.Ingredients = []model.Ingredient{
		{Name: "Rolled Oats", Quantity: 50, Unit: "g", CostPerUnit: 0.01},
		{Name: "Milk", Quantity: 240, Unit: "ml"},
	}
	shake := sampleRecipe("Overnight Oats Shake", model.CategorySnack)
	shake.Servings = 2
	shake.Ingredients = []model.Ingredient{
		{Name: "rolled oats", Quantity: 80, Unit: "g", CostPerUnit: 0.01},
		{Name: "Banana", Quantity: 2, Unit: "medium"},
	}

	ids, err := BulkCreateRecipes(st, []RecipeInput{oats, shake})
	if err != nil {
		t.Fatalf("create recipes: %v", err)
	}
	oatsID, shakeID = ids[0], ids[1]

	planID, err = CreateMealPlan(st, CreateMealPlanInput{WeekStart: "2026-03-02", DailyCalorieTarget: 2000})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}
	plan, err := GetMealPlan(st, planID)
	if err != nil {
		t.Fatalf("get plan: %v", err)
	}
	day := plan.Days[0]
	day.Meals = []model.MealSlot{
		{Slot: model.SlotBreakfast, RecipeID: oatsID, Servings: 2},
		{Slot: model.SlotSnack, RecipeID: shakeID, Servings: 1},
	}
	if err := ReplaceDayPlan(st, planID, day); err != nil {
		t.Fatalf("replace day: %v", err)
	}
	return planID, oatsID, shakeID
}

func TestGenerateGroceryListMergesByNameAndUnit(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	planID, oatsID, shakeID := groceryFixture(t, st)

	listID, err := GenerateGroceryList(st, planID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	list, err := GetGroceryList(st, listID)
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	if list.MealPlanID != planID {
		t.Errorf("meal plan id = %d", list.MealPlanID)
	}

	// Rolled Oats merges across recipes despite the case difference:
	// 2 servings of a 1-serving recipe (50g * 2) plus 1 serving of a
	// 2-serving recipe (80g * 0.5) = 140g.
	var oatsItem *model.GroceryItem
	for i := range list.Items {
		if strings.EqualFold(list.Items[i].Name, "Rolled Oats") {
			oatsItem = &list.Items[i]
		}
	}
	if oatsItem == nil {
		t.Fatalf("no oats item in %v", list.Items)
	}
	if oatsItem.Quantity != 140 {
		t.Errorf("oats quantity = %.0f, want 140", oatsItem.Quantity)
	}
	if len(oatsItem.NeededForRecipes) != 2 {
		t.Errorf("needed for = %v, want both recipes", oatsItem.NeededForRecipes)
	} else if oatsItem.NeededForRecipes[0] != oatsID || oatsItem.NeededForRecipes[1] != shakeID {
		t.Errorf("needed for = %v, want [%d %d]", oatsItem.NeededForRecipes, oatsID, shakeID)
	}
	if oatsItem.EstimatedCost == nil || math.Abs(*oatsItem.EstimatedCost-1.40) > 1e-9 {
		t.Errorf("oats cost = %v, want 1.40", oatsItem.EstimatedCost)
	}

	// Milk, oats, banana distinct: three items total.
	if len(list.Items) != 3 {
		t.Errorf("got %d items, want 3", len(list.Items))
	}
	if math.Abs(list.TotalEstimatedCost-1.40) > 1e-9 {
		t.Errorf("total = %.2f, want 1.40", list.TotalEstimatedCost)
	}
}

func TestGenerateGroceryListCategoryFromPantry(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	planID, _, _ := groceryFixture(t, st)

	if _, err := CreatePantryItem(st, PantryItemInput{Name: "Rolled Oats", Quantity: 500, Unit: "g", Category: "grain"}); err != nil {
		t.Fatalf("create pantry item: %v", err)
	}

	listID, err := GenerateGroceryList(st, planID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	list, err := GetGroceryList(st, listID)
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	for _, item := range list.Items {
		want := "other"
		if strings.EqualFold(item.Name, "Rolled Oats") {
			want = "grain"
		}
		if item.Category != want {
			t.Errorf("%s category = %s, want %s", item.Name, item.Category, want)
		}
	}
}

func TestGenerateGroceryListSkipsDanglingRecipes(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	planID, oatsID, _ := groceryFixture(t, st)

	if err := DeleteRecipe(st, oatsID); err != nil {
		t.Fatalf("delete recipe: %v", err)
	}

	listID, err := GenerateGroceryList(st, planID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	list, err := GetGroceryList(st, listID)
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	// Only the shake's ingredients remain.
	if len(list.Items) != 2 {
		t.Errorf("got %d items, want 2", len(list.Items))
	}
}

func TestGenerateGroceryListMissingPlan(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	if _, err := GenerateGroceryList(st, 404); err == nil {
		t.Fatal("expected error for missing plan")
	}
}

func TestSetGroceryItemChecked(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	planID, _, _ := groceryFixture(t, st)

	listID, err := GenerateGroceryList(st, planID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if err := SetGroceryItemChecked(st, listID, "rolled oats", true); err != nil {
		t.Fatalf("check item: %v", err)
	}
	list, err := GetGroceryList(st, listID)
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	for _, item := range list.Items {
		want := strings.EqualFold(item.Name, "Rolled Oats")
		if item.Checked != want {
			t.Errorf("%s checked = %v", item.Name, item.Checked)
		}
	}

	if err := SetGroceryItemChecked(st, listID, "caviar", true); err == nil {
		t.Error("expected error for unknown item")
	}
}

func TestCompleteGroceryListExactlyOnce(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	planID, _, _ := groceryFixture(t, st)

	listID, err := GenerateGroceryList(st, planID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	active, err := ActiveGroceryLists(st)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("active = %d, want 1", len(active))
	}

	cost := 42.50
	if err := CompleteGroceryList(st, listID, &cost); err != nil {
		t.Fatalf("complete: %v", err)
	}
	list, err := GetGroceryList(st, listID)
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	if list.CompletedAt == nil {
		t.Error("completedAt not stamped")
	}
	if list.ActualCost == nil || *list.ActualCost != 42.50 {
		t.Errorf("actual cost = %v", list.ActualCost)
	}

	active, err = ActiveGroceryLists(st)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("completed list still active")
	}

	if err := CompleteGroceryList(st, listID, nil); err == nil {
		t.Fatal("expected error completing twice")
	}
}

func TestReplaceGroceryItemsRecomputesTotal(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	planID, _, _ := groceryFixture(t, st)

	listID, err := GenerateGroceryList(st, planID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	costA, costB := 3.0, 2.5
	items := []model.GroceryItem{
		{Name: "Lemons", Quantity: 4, Unit: "piece", Category: "produce", EstimatedCost: &costA},
		{Name: "Capers", Quantity: 1, Unit: "jar", Category: "condiment", EstimatedCost: &costB},
		{Name: "Ice", Quantity: 1, Unit: "bag", Category: "other"},
	}
	if err := ReplaceGroceryItems(st, listID, items); err != nil {
		t.Fatalf("replace: %v", err)
	}
	list, err := GetGroceryList(st, listID)
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	if len(list.Items) != 3 {
		t.Errorf("items = %d", len(list.Items))
	}
	if list.TotalEstimatedCost != 5.5 {
		t.Errorf("total = %.2f, want 5.50", list.TotalEstimatedCost)
	}
}
