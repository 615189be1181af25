package service

import (
	"testing"

	"github.com/nutriplan/nutriplan-cli/internal/model"
)

func TestSeedDatabase(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	seeded, err := IsSeeded(st)
	if err != nil {
		t.Fatalf("is seeded: %v", err)
	}
	if seeded {
		t.Fatal("fresh store reports seeded")
	}

	if err := SeedDatabase(st); err != nil {
		t.Fatalf("seed: %v", err)
	}

	count, err := CountRecipes(st)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 18 {
		t.Errorf("recipe count = %d, want 18", count)
	}

	pantry, err := ListPantryItems(st, "")
	if err != nil {
		t.Fatalf("list pantry: %v", err)
	}
	if len(pantry) != 7 {
		t.Errorf("pantry count = %d, want 7", len(pantry))
	}

	profile, err := GetProfile(st)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile == nil {
		t.Fatal("no default profile seeded")
	}
	if profile.CalorieTarget != 2600 {
		t.Errorf("default calorie target = %d, want 2600", profile.CalorieTarget)
	}

	seeded, err = IsSeeded(st)
	if err != nil {
		t.Fatalf("is seeded: %v", err)
	}
	if !seeded {
		t.Fatal("store not marked seeded")
	}
}

func TestSeedDatabaseIsIdempotent(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	if err := SeedDatabase(st); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := SeedDatabase(st); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	count, err := CountRecipes(st)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 18 {
		t.Errorf("recipe count after double seed = %d, want 18", count)
	}
}

func TestSeedDatabaseKeepsExistingProfile(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	in := sampleProfile()
	in.CalorieTarget = 1800
	if _, err := UpsertProfile(st, in); err != nil {
		t.Fatalf("upsert profile: %v", err)
	}

	if err := SeedDatabase(st); err != nil {
		t.Fatalf("seed: %v", err)
	}

	profile, err := GetProfile(st)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.CalorieTarget != 1800 {
		t.Errorf("existing profile overwritten: target = %d", profile.CalorieTarget)
	}
}

func TestSeedFlagAloneIsNotEnough(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	// A set flag with too few recipes still counts as unseeded, so the
	// catalog gets restored.
	if err := SetConfig(st, ConfigSeeded, "true"); err != nil {
		t.Fatalf("set config: %v", err)
	}
	seeded, err := IsSeeded(st)
	if err != nil {
		t.Fatalf("is seeded: %v", err)
	}
	if seeded {
		t.Fatal("flag without recipes reported seeded")
	}

	if err := SeedDatabase(st); err != nil {
		t.Fatalf("seed: %v", err)
	}
	count, err := CountRecipes(st)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 18 {
		t.Errorf("recipe count = %d, want 18", count)
	}
}

func TestSeedCatalogShape(t *testing.T) {
	t.Parallel()

	recipes := seedRecipes()
	if len(recipes) != 18 {
		t.Fatalf("catalog has %d recipes, want 18", len(recipes))
	}

	byCategory := map[model.RecipeCategory]int{}
	for _, r := range recipes {
		byCategory[r.Category]++
		if len(r.Ingredients) == 0 || len(r.Instructions) == 0 {
			t.Errorf("%s has no ingredients or instructions", r.Name)
		}
		if r.CaloriesPerServing <= 0 {
			t.Errorf("%s has no calories", r.Name)
		}
	}
	if byCategory[model.CategoryBreakfast] != 4 ||
		byCategory[model.CategoryLunch] != 5 ||
		byCategory[model.CategoryDinner] != 6 ||
		byCategory[model.CategorySnack] != 3 {
		t.Errorf("category split = %v", byCategory)
	}
}
