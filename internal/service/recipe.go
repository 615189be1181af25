package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/nutriplan/nutriplan-cli/internal/model"
	"github.com/nutriplan/nutriplan-cli/internal/store"
)

type RecipeInput struct {
	Name               string
	Category           model.RecipeCategory
	Servings           float64
	PrepTimeMin        int
	CookTimeMin        int
	Ingredients        []model.Ingredient
	Instructions       []string
	Tags               []string
	Tips               string
	CaloriesPerServing float64
	ProteinPerServingG float64
	CarbsPerServingG   float64
	FatPerServingG     float64
	CostPerServing     *float64
}

const recipeColumns = `id, name, category, servings, prep_time_min, cook_time_min,
  ingredients_json, instructions_json, tags_json, tips,
  calories_per_serving, protein_per_serving_g, carbs_per_serving_g, fat_per_serving_g,
  cost_per_serving, created_at, updated_at`

func CreateRecipe(st *store.Store, in RecipeInput) (int64, error) {
	if err := validateRecipeInput(in); err != nil {
		return 0, err
	}
	cols, err := encodeRecipeColumns(in)
	if err != nil {
		return 0, err
	}

	tx, err := st.DB().Begin()
	if err != nil {
		return 0, fmt.Errorf("begin create recipe tx: %w", err)
	}
	id, err := insertRecipeTx(tx, in, cols)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create recipe: %w", err)
	}

	st.Notify(store.Change{Collection: store.CollectionRecipes, Op: store.OpInsert, ID: id})
	return id, nil
}

// BulkCreateRecipes inserts a batch in one transaction; used by seeding and
// import.
func BulkCreateRecipes(st *store.Store, inputs []RecipeInput) ([]int64, error) {
	for i, in := range inputs {
		if err := validateRecipeInput(in); err != nil {
			return nil, fmt.Errorf("recipe %d (%s): %w", i, in.Name, err)
		}
	}

	tx, err := st.DB().Begin()
	if err != nil {
		return nil, fmt.Errorf("begin bulk recipe tx: %w", err)
	}
	ids := make([]int64, 0, len(inputs))
	for _, in := range inputs {
		cols, err := encodeRecipeColumns(in)
		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}
		id, err := insertRecipeTx(tx, in, cols)
		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit bulk recipes: %w", err)
	}

	st.Notify(store.Change{Collection: store.CollectionRecipes, Op: store.OpInsert})
	return ids, nil
}

func GetRecipe(st *store.Store, id int64) (*model.Recipe, error) {
	row := st.DB().QueryRow(`SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)
	r, err := scanRecipe(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe %d: %w", id, err)
	}
	return r, nil
}

// ListRecipes returns the full collection in insertion order; filtering and
// sorting happen in the query pipeline over this snapshot.
func ListRecipes(st *store.Store) ([]model.Recipe, error) {
	return queryRecipes(st, `SELECT `+recipeColumns+` FROM recipes ORDER BY id`)
}

func RecipesByCategory(st *store.Store, category model.RecipeCategory) ([]model.Recipe, error) {
	return queryRecipes(st, `SELECT `+recipeColumns+` FROM recipes WHERE category = ? ORDER BY id`, string(category))
}

// RecipesByTag uses the recipe_tags index table; the tag must match exactly.
func RecipesByTag(st *store.Store, tag string) ([]model.Recipe, error) {
	return queryRecipes(st, `
SELECT `+recipeColumns+` FROM recipes
WHERE id IN (SELECT recipe_id FROM recipe_tags WHERE tag = ?)
ORDER BY id
`, tag)
}

func UpdateRecipe(st *store.Store, id int64, in RecipeInput) error {
	if err := validateRecipeInput(in); err != nil {
		return err
	}
	existing, err := GetRecipe(st, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("recipe %d not found", id)
	}
	cols, err := encodeRecipeColumns(in)
	if err != nil {
		return err
	}

	tx, err := st.DB().Begin()
	if err != nil {
		return fmt.Errorf("begin update recipe tx: %w", err)
	}
	_, err = tx.Exec(`
UPDATE recipes SET
  name = ?, category = ?, servings = ?, prep_time_min = ?, cook_time_min = ?,
  ingredients_json = ?, instructions_json = ?, tags_json = ?, tips = ?,
  calories_per_serving = ?, protein_per_serving_g = ?, carbs_per_serving_g = ?, fat_per_serving_g = ?,
  cost_per_serving = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, strings.TrimSpace(in.Name), string(in.Category), in.Servings, in.PrepTimeMin, in.CookTimeMin,
		cols.ingredients, cols.instructions, cols.tags, strings.TrimSpace(in.Tips),
		in.CaloriesPerServing, in.ProteinPerServingG, in.CarbsPerServingG, in.FatPerServingG,
		floatPtrToNull(in.CostPerServing), id)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("update recipe %d: %w", id, err)
	}
	if err := replaceRecipeTagsTx(tx, id, in.Tags); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update recipe: %w", err)
	}

	st.Notify(store.Change{Collection: store.CollectionRecipes, Op: store.OpUpdate, ID: id})
	return nil
}

// DeleteRecipe removes the recipe only. Meal plans referencing it keep their
// now-dangling slot ids.
func DeleteRecipe(st *store.Store, id int64) error {
	res, err := st.DB().Exec(`DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete recipe %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete recipe %d rows affected: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("recipe %d not found", id)
	}
	st.Notify(store.Change{Collection: store.CollectionRecipes, Op: store.OpDelete, ID: id})
	return nil
}

func CountRecipes(st *store.Store) (int, error) {
	var count int
	if err := st.DB().QueryRow(`SELECT COUNT(1) FROM recipes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count recipes: %w", err)
	}
	return count, nil
}

type encodedRecipeColumns struct {
	ingredients  string
	instructions string
	tags         string
}

func encodeRecipeColumns(in RecipeInput) (encodedRecipeColumns, error) {
	var cols encodedRecipeColumns
	var err error
	if cols.ingredients, err = encodeJSON("ingredients", nonNilIngredients(in.Ingredients)); err != nil {
		return cols, err
	}
	if cols.instructions, err = encodeJSON("instructions", nonNilStrings(in.Instructions)); err != nil {
		return cols, err
	}
	if cols.tags, err = encodeJSON("tags", nonNilStrings(in.Tags)); err != nil {
		return cols, err
	}
	return cols, nil
}

func insertRecipeTx(tx *sql.Tx, in RecipeInput, cols encodedRecipeColumns) (int64, error) {
	res, err := tx.Exec(`
INSERT INTO recipes(
  name, category, servings, prep_time_min, cook_time_min,
  ingredients_json, instructions_json, tags_json, tips,
  calories_per_serving, protein_per_serving_g, carbs_per_serving_g, fat_per_serving_g,
  cost_per_serving)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, strings.TrimSpace(in.Name), string(in.Category), in.Servings, in.PrepTimeMin, in.CookTimeMin,
		cols.ingredients, cols.instructions, cols.tags, strings.TrimSpace(in.Tips),
		in.CaloriesPerServing, in.ProteinPerServingG, in.CarbsPerServingG, in.FatPerServingG,
		floatPtrToNull(in.CostPerServing))
	if err != nil {
		return 0, fmt.Errorf("create recipe: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve recipe id: %w", err)
	}
	if err := replaceRecipeTagsTx(tx, id, in.Tags); err != nil {
		return 0, err
	}
	return id, nil
}

func replaceRecipeTagsTx(tx *sql.Tx, recipeID int64, tags []string) error {
	if _, err := tx.Exec(`DELETE FROM recipe_tags WHERE recipe_id = ?`, recipeID); err != nil {
		return fmt.Errorf("clear recipe %d tags: %w", recipeID, err)
	}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, err := tx.Exec(`INSERT OR IGNORE INTO recipe_tags(recipe_id, tag) VALUES(?, ?)`, recipeID, tag); err != nil {
			return fmt.Errorf("index recipe %d tag %q: %w", recipeID, tag, err)
		}
	}
	return nil
}

func queryRecipes(st *store.Store, query string, args ...any) ([]model.Recipe, error) {
	rows, err := st.DB().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	items := make([]model.Recipe, 0)
	for rows.Next() {
		r, err := scanRecipe(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		items = append(items, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	return items, nil
}

func scanRecipe(scan func(...any) error) (*model.Recipe, error) {
	var r model.Recipe
	var ingredients, instructions, tags string
	var cost sql.NullFloat64
	err := scan(&r.ID, &r.Name, &r.Category, &r.Servings, &r.PrepTimeMin, &r.CookTimeMin,
		&ingredients, &instructions, &tags, &r.Tips,
		&r.CaloriesPerServing, &r.ProteinPerServingG, &r.CarbsPerServingG, &r.FatPerServingG,
		&cost, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := decodeJSON("ingredients", ingredients, &r.Ingredients); err != nil {
		return nil, err
	}
	if err := decodeJSON("instructions", instructions, &r.Instructions); err != nil {
		return nil, err
	}
	if err := decodeJSON("tags", tags, &r.Tags); err != nil {
		return nil, err
	}
	r.CostPerServing = nullToFloatPtr(cost)
	return &r, nil
}

func validateRecipeInput(in RecipeInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("recipe name is required")
	}
	switch in.Category {
	case model.CategoryBreakfast, model.CategoryLunch, model.CategoryDinner, model.CategorySnack:
	default:
		return fmt.Errorf("invalid recipe category %q", in.Category)
	}
	if in.Servings <= 0 {
		return fmt.Errorf("servings must be > 0")
	}
	if err := validateNonNegativeInt("prep time", in.PrepTimeMin); err != nil {
		return err
	}
	if err := validateNonNegativeInt("cook time", in.CookTimeMin); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("calories per serving", in.CaloriesPerServing); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("protein per serving", in.ProteinPerServingG); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("carbs per serving", in.CarbsPerServingG); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("fat per serving", in.FatPerServingG); err != nil {
		return err
	}
	if in.CostPerServing != nil {
		if err := validateNonNegativeFloat("cost per serving", *in.CostPerServing); err != nil {
			return err
		}
	}
	return nil
}

func nonNilIngredients(s []model.Ingredient) []model.Ingredient {
	if s == nil {
		return []model.Ingredient{}
	}
	return s
}
