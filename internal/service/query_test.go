package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nutriplan/nutriplan-cli/internal/model"
)

func queryFixture() []model.Recipe {
	base := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	return []model.Recipe{
		{ID: 1, Name: "Protein Shake", Category: model.CategorySnack, Tags: []string{"high-protein", "quick"},
			CaloriesPerServing: 320, ProteinPerServingG: 32, CreatedAt: base},
		{ID: 2, Name: "Oatmeal", Category: model.CategoryBreakfast, Tags: []string{"vegetarian", "high-fiber"},
			CaloriesPerServing: 380, ProteinPerServingG: 14, CreatedAt: base.Add(time.Hour)},
		{ID: 3, Name: "Lentil Soup", Category: model.CategoryLunch, Tags: []string{"vegetarian", "high-protein"},
			CaloriesPerServing: 340, ProteinPerServingG: 18, CreatedAt: base.Add(2 * time.Hour)},
		{ID: 4, Name: "Quesadilla", Category: model.CategoryDinner, Tags: []string{"vegetarian", "quick"},
			CaloriesPerServing: 520, ProteinPerServingG: 28, CreatedAt: base.Add(3 * time.Hour)},
	}
}

func recipeIDs(recipes []model.Recipe) []int64 {
	ids := make([]int64, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
	}
	return ids
}

func TestFilterByCategory(t *testing.T) {
	t.Parallel()
	recipes := queryFixture()

	got := FilterRecipes(recipes, RecipeFilter{Category: "lunch"})
	require.Equal(t, []int64{3}, recipeIDs(got))

	// "" and "all" pass everything.
	require.Len(t, FilterRecipes(recipes, RecipeFilter{Category: ""}), 4)
	require.Len(t, FilterRecipes(recipes, RecipeFilter{Category: "all"}), 4)
}

func TestFilterSearchMatchesNameAndTags(t *testing.T) {
	t.Parallel()
	recipes := queryFixture()

	// "prot" hits Protein Shake by name and Lentil Soup by its
	// high-protein tag, case-insensitively.
	got := FilterRecipes(recipes, RecipeFilter{Search: "PROT"})
	require.Equal(t, []int64{1, 3}, recipeIDs(got))

	require.Empty(t, FilterRecipes(recipes, RecipeFilter{Search: "pizza"}))
}

func TestFilterTagsRequireAll(t *testing.T) {
	t.Parallel()
	recipes := queryFixture()

	require.Equal(t, []int64{2, 3, 4}, recipeIDs(FilterRecipes(recipes, RecipeFilter{Tags: []string{"vegetarian"}})))
	require.Equal(t, []int64{1, 4}, recipeIDs(FilterRecipes(recipes, RecipeFilter{Tags: []string{"quick"}})))
	// AND semantics: both tags must be present.
	require.Equal(t, []int64{4}, recipeIDs(FilterRecipes(recipes, RecipeFilter{Tags: []string{"vegetarian", "quick"}})))
	require.Empty(t, FilterRecipes(recipes, RecipeFilter{Tags: []string{"vegetarian", "missing"}}))
}

func TestFilterStagesCompose(t *testing.T) {
	t.Parallel()
	recipes := queryFixture()

	got := FilterRecipes(recipes, RecipeFilter{Search: "protein", Category: "lunch", Tags: []string{"vegetarian"}})
	require.Equal(t, []int64{3}, recipeIDs(got))
}

func TestSortRecipes(t *testing.T) {
	t.Parallel()
	recipes := queryFixture()

	byName := SortRecipes(recipes, RecipeSort{Key: SortByName, Order: OrderAsc})
	require.Equal(t, []int64{3, 2, 1, 4}, recipeIDs(byName))

	byCaloriesDesc := SortRecipes(recipes, RecipeSort{Key: SortByCalories, Order: OrderDesc})
	require.Equal(t, []int64{4, 2, 3, 1}, recipeIDs(byCaloriesDesc))

	byProtein := SortRecipes(recipes, RecipeSort{Key: SortByProtein, Order: OrderAsc})
	require.Equal(t, []int64{2, 3, 4, 1}, recipeIDs(byProtein))

	byCreatedDesc := SortRecipes(recipes, RecipeSort{Key: SortByCreated, Order: OrderDesc})
	require.Equal(t, []int64{4, 3, 2, 1}, recipeIDs(byCreatedDesc))

	// Input order is untouched.
	require.Equal(t, []int64{1, 2, 3, 4}, recipeIDs(recipes))
}

func TestSortIsStable(t *testing.T) {
	t.Parallel()

	recipes := []model.Recipe{
		{ID: 10, Name: "A", CaloriesPerServing: 300},
		{ID: 11, Name: "B", CaloriesPerServing: 300},
		{ID: 12, Name: "C", CaloriesPerServing: 300},
	}
	sorted := SortRecipes(recipes, RecipeSort{Key: SortByCalories, Order: OrderAsc})
	require.Equal(t, []int64{10, 11, 12}, recipeIDs(sorted))

	// Sorting an already sorted slice is a no-op.
	again := SortRecipes(sorted, RecipeSort{Key: SortByCalories, Order: OrderAsc})
	require.Equal(t, recipeIDs(sorted), recipeIDs(again))
}

func TestAllTags(t *testing.T) {
	t.Parallel()

	tags := AllTags(queryFixture())
	require.Equal(t, []string{"high-fiber", "high-protein", "quick", "vegetarian"}, tags)

	// Case-sensitive: differently cased duplicates stay distinct.
	mixed := []model.Recipe{
		{Tags: []string{"Quick", "quick"}},
	}
	require.Equal(t, []string{"Quick", "quick"}, AllTags(mixed))

	require.Empty(t, AllTags(nil))
}
