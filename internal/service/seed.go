package service

import (
	"fmt"
	"time"

	"github.com/nutriplan/nutriplan-cli/internal/model"
	"github.com/nutriplan/nutriplan-cli/internal/store"
)

// seedRecipeFloor is the recipe-count floor backing the idempotence check: the
// seeded flag only counts when at least this many recipes survive.
const seedRecipeFloor = 18

// IsSeeded reports whether the starter catalog is in place: the flag is set
// and the recipe count is at or above the floor.
func IsSeeded(st *store.Store) (bool, error) {
	value, ok, err := GetConfig(st, ConfigSeeded)
	if err != nil {
		return false, err
	}
	if !ok || value != "true" {
		return false, nil
	}
	count, err := CountRecipes(st)
	if err != nil {
		return false, err
	}
	return count >= seedRecipeFloor, nil
}

// SeedDatabase bootstraps first-run data: the 18 starter recipes, sample
// pantry items, and a default profile when none exists, then sets the seeded
// flag. Safe to call repeatedly.
func SeedDatabase(st *store.Store) error {
	seeded, err := IsSeeded(st)
	if err != nil {
		return err
	}
	if seeded {
		return nil
	}

	if _, err := BulkCreateRecipes(st, seedRecipes()); err != nil {
		return fmt.Errorf("seed recipes: %w", err)
	}
	if err := BulkCreatePantryItems(st, seedPantryItems()); err != nil {
		return fmt.Errorf("seed pantry items: %w", err)
	}

	profile, err := GetProfile(st)
	if err != nil {
		return err
	}
	if profile == nil {
		workoutDays := 4
		if _, err := UpsertProfile(st, ProfileInput{
			HeightCm:            175,
			WeightKg:            70,
			Age:                 30,
			Gender:              model.GenderMale,
			ActivityLevel:       model.ActivityModeratelyActive,
			CalorieTarget:       2600,
			ProteinTargetG:      126,
			CarbsTargetG:        325,
			FatTargetG:          87,
			WorkoutCalorieGoal:  2000,
			WorkoutDaysPerWeek:  &workoutDays,
			DietaryRestrictions: []string{"vegetarian"},
		}); err != nil {
			return fmt.Errorf("seed default profile: %w", err)
		}
	}

	return SetConfig(st, ConfigSeeded, "true")
}

// ClearSeedFlag unsets the seeded marker so the next seed run re-checks the
// catalog.
func ClearSeedFlag(st *store.Store) error {
	return SetConfig(st, ConfigSeeded, "false")
}

func seedRecipes() []RecipeInput {
	return []RecipeInput{
		// Breakfast.
		{
			Name: "Classic Oatmeal with Banana & Almonds", Category: model.CategoryBreakfast,
			Servings: 1, PrepTimeMin: 5, CookTimeMin: 5,
			Ingredients: []model.Ingredient{
				{Name: "Rolled Oats", Quantity: 50, Unit: "g", Calories: 185, ProteinG: 6.5, CarbsG: 33, FatG: 3.5},
				{Name: "Banana", Quantity: 1, Unit: "medium", Calories: 105, ProteinG: 1.3, CarbsG: 27, FatG: 0.4},
				{Name: "Almonds", Quantity: 15, Unit: "g", Calories: 87, ProteinG: 3.2, CarbsG: 3.2, FatG: 7.5},
				{Name: "Milk", Quantity: 240, Unit: "ml", Calories: 122, ProteinG: 8, CarbsG: 12, FatG: 5},
			},
			Instructions: []string{"Cook oats in milk over medium heat for 5 minutes", "Slice banana and add to oatmeal", "Top with almonds"},
			Tags:         []string{"vegetarian", "quick", "high-fiber"},
			CaloriesPerServing: 380, ProteinPerServingG: 14, CarbsPerServingG: 55, FatPerServingG: 12,
		},
		{
			Name: "Scrambled Eggs with Toast", Category: model.CategoryBreakfast,
			Servings: 1, PrepTimeMin: 3, CookTimeMin: 5,
			Ingredients: []model.Ingredient{
				{Name: "Eggs", Quantity: 2, Unit: "large", Calories: 140, ProteinG: 12, CarbsG: 1, FatG: 10},
				{Name: "Whole Wheat Bread", Quantity: 2, Unit: "slices", Calories: 160, ProteinG: 8, CarbsG: 28, FatG: 3},
				{Name: "Butter", Quantity: 10, Unit: "g", Calories: 72, ProteinG: 0.1, CarbsG: 0, FatG: 8},
			},
			Instructions: []string{"Scramble eggs in butter over medium heat", "Toast bread slices", "Serve together"},
			Tags:         []string{"vegetarian", "high-protein", "quick"},
			CaloriesPerServing: 350, ProteinPerServingG: 18, CarbsPerServingG: 30, FatPerServingG: 18,
		},
		{
			Name: "Greek Yogurt Parfait", Category: model.CategoryBreakfast,
			Servings: 1, PrepTimeMin: 5, CookTimeMin: 0,
			Ingredients: []model.Ingredient{
				{Name: "Greek Yogurt", Quantity: 200, Unit: "g", Calories: 130, ProteinG: 20, CarbsG: 6, FatG: 0},
				{Name: "Mixed Berries", Quantity: 100, Unit: "g", Calories: 57, ProteinG: 0.7, CarbsG: 14, FatG: 0.3},
				{Name: "Granola", Quantity: 30, Unit: "g", Calories: 120, ProteinG: 3, CarbsG: 20, FatG: 4},
				{Name: "Honey", Quantity: 1, Unit: "tbsp", Calories: 64, ProteinG: 0.1, CarbsG: 17, FatG: 0},
			},
			Instructions: []string{"Layer yogurt in a bowl", "Add berries", "Top with granola and honey"},
			Tags:         []string{"vegetarian", "high-protein", "no-cook"},
			CaloriesPerServing: 320, ProteinPerServingG: 20, CarbsPerServingG: 45, FatPerServingG: 6,
		},
		{
			Name: "Protein Smoothie Bowl", Category: model.CategoryBreakfast,
			Servings: 1, PrepTimeMin: 5, CookTimeMin: 0,
			Ingredients: []model.Ingredient{
				{Name: "Protein Powder", Quantity: 30, Unit: "g", Calories: 120, ProteinG: 25, CarbsG: 3, FatG: 1},
				{Name: "Banana", Quantity: 1, Unit: "medium", Calories: 105, ProteinG: 1.3, CarbsG: 27, FatG: 0.4},
				{Name: "Almond Milk", Quantity: 150, Unit: "ml", Calories: 22, ProteinG: 0.5, CarbsG: 1, FatG: 1.5},
				{Name: "Peanut Butter", Quantity: 20, Unit: "g", Calories: 118, ProteinG: 5, CarbsG: 4, FatG: 10},
			},
			Instructions: []string{"Blend all ingredients until smooth", "Pour into bowl", "Add toppings"},
			Tags:         []string{"vegetarian", "high-protein", "no-cook"},
			CaloriesPerServing: 420, ProteinPerServingG: 30, CarbsPerServingG: 45, FatPerServingG: 14,
		},
		// Lunch.
		{
			Name: "Chickpea Salad Sandwich", Category: model.CategoryLunch,
			Servings: 1, PrepTimeMin: 10, CookTimeMin: 0,
			Ingredients: []model.Ingredient{
				{Name: "Chickpeas", Quantity: 150, Unit: "g", Calories: 164, ProteinG: 8.9, CarbsG: 27, FatG: 2.6},
				{Name: "Whole Wheat Bread", Quantity: 2, Unit: "slices", Calories: 160, ProteinG: 8, CarbsG: 28, FatG: 3},
				{Name: "Mayonnaise", Quantity: 1, Unit: "tbsp", Calories: 94, ProteinG: 0.1, CarbsG: 0.1, FatG: 10},
			},
			Instructions: []string{"Mash chickpeas with fork", "Mix with mayonnaise", "Spread on bread"},
			Tags:         []string{"vegetarian", "high-fiber", "no-cook"},
			CaloriesPerServing: 380, ProteinPerServingG: 16, CarbsPerServingG: 52, FatPerServingG: 11,
		},
		{
			Name: "Caprese Panini", Category: model.CategoryLunch,
			Servings: 1, PrepTimeMin: 5, CookTimeMin: 5,
			Ingredients: []model.Ingredient{
				{Name: "Bread", Quantity: 2, Unit: "slices", Calories: 160, ProteinG: 6, CarbsG: 30, FatG: 2},
				{Name: "Mozzarella", Quantity: 100, Unit: "g", Calories: 280, ProteinG: 20, CarbsG: 2, FatG: 20},
				{Name: "Tomato", Quantity: 80, Unit: "g", Calories: 14, ProteinG: 0.7, CarbsG: 3, FatG: 0.2},
				{Name: "Basil", Quantity: 5, Unit: "g", Calories: 1, ProteinG: 0.1, CarbsG: 0.2, FatG: 0},
			},
			Instructions: []string{"Layer cheese, tomato, basil on bread", "Grill until golden", "Serve hot"},
			Tags:         []string{"vegetarian", "high-protein", "quick"},
			CaloriesPerServing: 420, ProteinPerServingG: 24, CarbsPerServingG: 35, FatPerServingG: 20,
		},
		{
			Name: "Quinoa Buddha Bowl", Category: model.CategoryLunch,
			Servings: 1, PrepTimeMin: 10, CookTimeMin: 20,
			Ingredients: []model.Ingredient{
				{Name: "Quinoa", Quantity: 150, Unit: "g cooked", Calories: 222, ProteinG: 8, CarbsG: 39, FatG: 3.5},
				{Name: "Chickpeas", Quantity: 100, Unit: "g", Calories: 164, ProteinG: 8.9, CarbsG: 27, FatG: 2.6},
				{Name: "Avocado", Quantity: 50, Unit: "g", Calories: 80, ProteinG: 1, CarbsG: 4, FatG: 7},
				{Name: "Tahini", Quantity: 15, Unit: "g", Calories: 90, ProteinG: 2.6, CarbsG: 4, FatG: 8},
			},
			Instructions: []string{"Cook quinoa", "Roast chickpeas", "Arrange in bowl with avocado", "Drizzle tahini"},
			Tags:         []string{"vegetarian", "high-fiber", "balanced"},
			CaloriesPerServing: 480, ProteinPerServingG: 18, CarbsPerServingG: 58, FatPerServingG: 20,
		},
		{
			Name: "Veggie Wrap with Hummus", Category: model.CategoryLunch,
			Servings: 1, PrepTimeMin: 10, CookTimeMin: 0,
			Ingredients: []model.Ingredient{
				{Name: "Large Tortilla", Quantity: 1, Unit: "piece", Calories: 150, ProteinG: 4, CarbsG: 28, FatG: 3},
				{Name: "Hummus", Quantity: 60, Unit: "g", Calories: 166, ProteinG: 4.8, CarbsG: 10, FatG: 12},
				{Name: "Mixed Vegetables", Quantity: 100, Unit: "g", Calories: 25, ProteinG: 1, CarbsG: 5, FatG: 0.2},
				{Name: "Feta Cheese", Quantity: 30, Unit: "g", Calories: 75, ProteinG: 4, CarbsG: 1, FatG: 6},
			},
			Instructions: []string{"Spread hummus on tortilla", "Add vegetables and feta", "Roll tightly"},
			Tags:         []string{"vegetarian", "no-cook", "quick"},
			CaloriesPerServing: 360, ProteinPerServingG: 14, CarbsPerServingG: 42, FatPerServingG: 15,
		},
		{
			Name: "Lentil Soup with Bread", Category: model.CategoryLunch,
			Servings: 1, PrepTimeMin: 10, CookTimeMin: 30,
			Ingredients: []model.Ingredient{
				{Name: "Lentils", Quantity: 100, Unit: "g dry", Calories: 200, ProteinG: 12, CarbsG: 35, FatG: 2},
				{Name: "Crusty Bread", Quantity: 1, Unit: "slice", Calories: 100, ProteinG: 4, CarbsG: 18, FatG: 1},
				{Name: "Olive Oil", Quantity: 5, Unit: "ml", Calories: 40, ProteinG: 0, CarbsG: 0, FatG: 4.5},
			},
			Instructions: []string{"Cook lentils until tender", "Season to taste", "Serve with bread drizzled with oil"},
			Tags:         []string{"vegetarian", "high-protein", "comfort-food"},
			CaloriesPerServing: 340, ProteinPerServingG: 18, CarbsPerServingG: 54, FatPerServingG: 6,
		},
		// Dinner.
		{
			Name: "Cheese Quesadilla with Black Beans", Category: model.CategoryDinner,
			Servings: 1, PrepTimeMin: 5, CookTimeMin: 10,
			Ingredients: []model.Ingredient{
				{Name: "Flour Tortillas", Quantity: 2, Unit: "large", Calories: 300, ProteinG: 8, CarbsG: 48, FatG: 6},
				{Name: "Cheese", Quantity: 80, Unit: "g", Calories: 320, ProteinG: 20, CarbsG: 0, FatG: 26},
				{Name: "Black Beans", Quantity: 100, Unit: "g", Calories: 132, ProteinG: 8.9, CarbsG: 24, FatG: 0.5},
			},
			Instructions: []string{"Layer cheese and beans on tortilla", "Top with second tortilla", "Cook until golden on both sides"},
			Tags:         []string{"vegetarian", "high-protein", "quick"},
			CaloriesPerServing: 520, ProteinPerServingG: 28, CarbsPerServingG: 52, FatPerServingG: 22,
		},
		{
			Name: "Pasta Primavera", Category: model.CategoryDinner,
			Servings: 1, PrepTimeMin: 10, CookTimeMin: 15,
			Ingredients: []model.Ingredient{
				{Name: "Pasta", Quantity: 100, Unit: "g dry", Calories: 360, ProteinG: 12, CarbsG: 72, FatG: 2},
				{Name: "Mixed Vegetables", Quantity: 200, Unit: "g", Calories: 50, ProteinG: 2, CarbsG: 10, FatG: 0.4},
				{Name: "Parmesan", Quantity: 30, Unit: "g", Calories: 120, ProteinG: 11, CarbsG: 1, FatG: 8},
				{Name: "Olive Oil", Quantity: 15, Unit: "ml", Calories: 120, ProteinG: 0, CarbsG: 0, FatG: 14},
			},
			Instructions: []string{"Cook pasta al dente", "Sauté vegetables in olive oil", "Toss together with parmesan"},
			Tags:         []string{"vegetarian", "high-carb", "comfort-food"},
			CaloriesPerServing: 540, ProteinPerServingG: 18, CarbsPerServingG: 68, FatPerServingG: 22,
		},
		{
			Name: "Veggie Stir-Fry with Tofu & Rice", Category: model.CategoryDinner,
			Servings: 1, PrepTimeMin: 15, CookTimeMin: 15,
			Ingredients: []model.Ingredient{
				{Name: "Firm Tofu", Quantity: 150, Unit: "g", Calories: 144, ProteinG: 15, CarbsG: 3, FatG: 8},
				{Name: "Mixed Vegetables", Quantity: 200, Unit: "g", Calories: 50, ProteinG: 2, CarbsG: 10, FatG: 0.4},
				{Name: "White Rice", Quantity: 150, Unit: "g cooked", Calories: 195, ProteinG: 4, CarbsG: 42, FatG: 0.4},
				{Name: "Soy Sauce", Quantity: 15, Unit: "ml", Calories: 8, ProteinG: 1.3, CarbsG: 0.8, FatG: 0},
			},
			Instructions: []string{"Press and cube tofu", "Stir-fry tofu until golden", "Add vegetables and soy sauce", "Serve over rice"},
			Tags:         []string{"vegetarian", "high-protein", "balanced"},
			CaloriesPerServing: 480, ProteinPerServingG: 24, CarbsPerServingG: 62, FatPerServingG: 14,
		},
		{
			Name: "Spinach & Paneer Curry with Naan", Category: model.CategoryDinner,
			Servings: 1, PrepTimeMin: 15, CookTimeMin: 25,
			Ingredients: []model.Ingredient{
				{Name: "Paneer", Quantity: 150, Unit: "g", Calories: 300, ProteinG: 18, CarbsG: 6, FatG: 24},
				{Name: "Spinach", Quantity: 200, Unit: "g", Calories: 46, ProteinG: 5.8, CarbsG: 7, FatG: 0.8},
				{Name: "Naan Bread", Quantity: 1, Unit: "piece", Calories: 120, ProteinG: 4, CarbsG: 20, FatG: 2},
			},
			Instructions: []string{"Sauté paneer until golden", "Add spinach and spices", "Simmer until thick", "Serve with warm naan"},
			Tags:         []string{"vegetarian", "high-protein", "comfort-food"},
			CaloriesPerServing: 510, ProteinPerServingG: 26, CarbsPerServingG: 48, FatPerServingG: 24,
		},
		{
			Name: "Margherita Flatbread Pizza", Category: model.CategoryDinner,
			Servings: 1, PrepTimeMin: 5, CookTimeMin: 12,
			Ingredients: []model.Ingredient{
				{Name: "Flatbread", Quantity: 1, Unit: "large", Calories: 200, ProteinG: 6, CarbsG: 36, FatG: 4},
				{Name: "Mozzarella", Quantity: 100, Unit: "g", Calories: 280, ProteinG: 20, CarbsG: 2, FatG: 20},
				{Name: "Tomato Sauce", Quantity: 60, Unit: "g", Calories: 30, ProteinG: 1, CarbsG: 6, FatG: 0.2},
				{Name: "Basil", Quantity: 5, Unit: "g", Calories: 1, ProteinG: 0.1, CarbsG: 0.2, FatG: 0},
			},
			Instructions: []string{"Spread sauce on flatbread", "Top with cheese", "Bake at 425°F for 10-12 min", "Add fresh basil"},
			Tags:         []string{"vegetarian", "quick", "comfort-food"},
			CaloriesPerServing: 460, ProteinPerServingG: 22, CarbsPerServingG: 42, FatPerServingG: 22,
		},
		{
			Name: "Mushroom Risotto", Category: model.CategoryDinner,
			Servings: 1, PrepTimeMin: 10, CookTimeMin: 30,
			Ingredients: []model.Ingredient{
				{Name: "Arborio Rice", Quantity: 80, Unit: "g dry", Calories: 280, ProteinG: 6, CarbsG: 60, FatG: 0.5},
				{Name: "Mushrooms", Quantity: 150, Unit: "g", Calories: 33, ProteinG: 3, CarbsG: 5, FatG: 0.5},
				{Name: "Parmesan", Quantity: 30, Unit: "g", Calories: 120, ProteinG: 11, CarbsG: 1, FatG: 8},
				{Name: "Butter", Quantity: 15, Unit: "g", Calories: 108, ProteinG: 0.1, CarbsG: 0, FatG: 12},
			},
			Instructions: []string{"Sauté mushrooms in butter", "Add rice and toast", "Add broth gradually, stirring", "Finish with parmesan"},
			Tags:         []string{"vegetarian", "high-carb", "comfort-food"},
			CaloriesPerServing: 420, ProteinPerServingG: 14, CarbsPerServingG: 58, FatPerServingG: 14,
		},
		// Snacks.
		{
			Name: "Protein Shake", Category: model.CategorySnack,
			Servings: 1, PrepTimeMin: 3, CookTimeMin: 0,
			Ingredients: []model.Ingredient{
				{Name: "Protein Powder", Quantity: 30, Unit: "g", Calories: 120, ProteinG: 25, CarbsG: 3, FatG: 1},
				{Name: "Milk", Quantity: 300, Unit: "ml", Calories: 153, ProteinG: 10, CarbsG: 15, FatG: 6},
				{Name: "Banana", Quantity: 1, Unit: "medium", Calories: 105, ProteinG: 1.3, CarbsG: 27, FatG: 0.4},
			},
			Instructions: []string{"Add all ingredients to blender", "Blend until smooth", "Serve immediately"},
			Tags:         []string{"vegetarian", "high-protein", "quick"},
			CaloriesPerServing: 320, ProteinPerServingG: 32, CarbsPerServingG: 38, FatPerServingG: 6,
		},
		{
			Name: "Apple with Peanut Butter", Category: model.CategorySnack,
			Servings: 1, PrepTimeMin: 2, CookTimeMin: 0,
			Ingredients: []model.Ingredient{
				{Name: "Apple", Quantity: 1, Unit: "medium", Calories: 95, ProteinG: 0.5, CarbsG: 25, FatG: 0.3},
				{Name: "Peanut Butter", Quantity: 32, Unit: "g", Calories: 188, ProteinG: 8, CarbsG: 6, FatG: 16},
			},
			Instructions: []string{"Slice apple", "Serve with peanut butter for dipping"},
			Tags:         []string{"vegetarian", "quick", "no-cook"},
			CaloriesPerServing: 280, ProteinPerServingG: 8, CarbsPerServingG: 32, FatPerServingG: 16,
		},
		{
			Name: "Trail Mix", Category: model.CategorySnack,
			Servings: 1, PrepTimeMin: 2, CookTimeMin: 0,
			Ingredients: []model.Ingredient{
				{Name: "Almonds", Quantity: 30, Unit: "g", Calories: 174, ProteinG: 6.4, CarbsG: 6.4, FatG: 15},
				{Name: "Dried Cranberries", Quantity: 20, Unit: "g", Calories: 65, ProteinG: 0.2, CarbsG: 17, FatG: 0.1},
				{Name: "Dark Chocolate Chips", Quantity: 15, Unit: "g", Calories: 75, ProteinG: 0.9, CarbsG: 8, FatG: 4.5},
			},
			Instructions: []string{"Mix all ingredients together", "Store in airtight container"},
			Tags:         []string{"vegetarian", "quick", "no-cook"},
			CaloriesPerServing: 280, ProteinPerServingG: 7, CarbsPerServingG: 26, FatPerServingG: 18,
		},
	}
}

func seedPantryItems() []PantryItemInput {
	expires := func(days int) *time.Time {
		t := time.Now().AddDate(0, 0, days)
		return &t
	}
	return []PantryItemInput{
		{Name: "Rolled Oats", Quantity: 500, Unit: "g", Category: "grain", ExpirationDate: expires(180)},
		{Name: "Eggs", Quantity: 12, Unit: "large", Category: "protein", ExpirationDate: expires(14)},
		{Name: "Greek Yogurt", Quantity: 500, Unit: "g", Category: "dairy", ExpirationDate: expires(7)},
		{Name: "Whole Wheat Bread", Quantity: 1, Unit: "loaf", Category: "grain", ExpirationDate: expires(5)},
		{Name: "Chickpeas", Quantity: 400, Unit: "g", Category: "protein", ExpirationDate: expires(365)},
		{Name: "Quinoa", Quantity: 500, Unit: "g", Category: "grain", ExpirationDate: expires(365)},
		{Name: "Olive Oil", Quantity: 500, Unit: "ml", Category: "condiment", ExpirationDate: expires(365)},
	}
}
