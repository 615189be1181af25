package service

import (
	"path/filepath"
	"testing"

	"github.com/nutriplan/nutriplan-cli/internal/model"
	"github.com/nutriplan/nutriplan-cli/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "nutriplan.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("close test store: %v", err)
		}
	})
	return st
}

func sampleRecipe(name string, category model.RecipeCategory) RecipeInput {
	return RecipeInput{
		Name:     name,
		Category: category,
		Servings: 2,
		Ingredients: []model.Ingredient{
			{Name: "Oats", Quantity: 100, Unit: "g", Calories: 370, ProteinG: 13, CarbsG: 66, FatG: 7},
		},
		Instructions:       []string{"Combine and cook"},
		Tags:               []string{"test"},
		CaloriesPerServing: 400,
		ProteinPerServingG: 30,
		CarbsPerServingG:   40,
		FatPerServingG:     12,
	}
}

func sampleProfile() ProfileInput {
	return ProfileInput{
		HeightCm:      175,
		WeightKg:      70,
		Age:           30,
		Gender:        model.GenderMale,
		ActivityLevel: model.ActivityModeratelyActive,
	}
}
