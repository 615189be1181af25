package service

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nutriplan/nutriplan-cli/internal/model"
	"github.com/nutriplan/nutriplan-cli/internal/store"
)

const groceryColumns = `id, meal_plan_id, items_json, total_estimated_cost, actual_cost, completed_at, created_at`

// GenerateGroceryList derives a list from a meal plan: every slot's recipe
// ingredients, scaled by servings multiplier over the recipe's serving count,
// merged case-insensitively by name+unit. Slots with dangling recipe ids are
// skipped. Callers wanting one list per plan should check
// GroceryListByMealPlan first; the store does not enforce uniqueness.
func GenerateGroceryList(st *store.Store, mealPlanID int64) (int64, error) {
	plan, err := GetMealPlan(st, mealPlanID)
	if err != nil {
		return 0, err
	}
	if plan == nil {
		return 0, fmt.Errorf("meal plan %d not found", mealPlanID)
	}

	type aggregate struct {
		item    model.GroceryItem
		cost    float64
		hasCost bool
		recipes map[int64]bool
	}
	merged := map[string]*aggregate{}
	order := make([]string, 0)

	for _, day := range plan.Days {
		for _, slot := range day.Meals {
			recipe, err := GetRecipe(st, slot.RecipeID)
			if err != nil {
				return 0, err
			}
			if recipe == nil || recipe.Servings <= 0 {
				continue
			}
			factor := slot.Servings / recipe.Servings
			for _, ing := range recipe.Ingredients {
				key := normalizeName(ing.Name) + "|" + normalizeName(ing.Unit)
				agg, ok := merged[key]
				if !ok {
					agg = &aggregate{
						item: model.GroceryItem{
							Name:    ing.Name,
							Unit:    ing.Unit,
							Barcode: ing.Barcode,
						},
						recipes: map[int64]bool{},
					}
					merged[key] = agg
					order = append(order, key)
				}
				quantity := ing.Quantity * factor
				agg.item.Quantity += quantity
				agg.recipes[recipe.ID] = true
				if ing.CostPerUnit > 0 {
					agg.cost += ing.CostPerUnit * quantity
					agg.hasCost = true
				}
			}
		}
	}

	items := make([]model.GroceryItem, 0, len(order))
	var total float64
	for _, key := range order {
		agg := merged[key]
		agg.item.Category = pantryCategoryFor(st, agg.item.Name)
		if agg.hasCost {
			cost := agg.cost
			agg.item.EstimatedCost = &cost
			total += cost
		}
		ids := make([]int64, 0, len(agg.recipes))
		for id := range agg.recipes {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		agg.item.NeededForRecipes = ids
		items = append(items, agg.item)
	}

	itemsJSON, err := encodeJSON("grocery items", items)
	if err != nil {
		return 0, err
	}
	res, err := st.DB().Exec(`
INSERT INTO grocery_lists(meal_plan_id, items_json, total_estimated_cost)
VALUES(?, ?, ?)
`, mealPlanID, itemsJSON, total)
	if err != nil {
		return 0, fmt.Errorf("create grocery list: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve grocery list id: %w", err)
	}
	st.Notify(store.Change{Collection: store.CollectionGroceryLists, Op: store.OpInsert, ID: id})
	return id, nil
}

// pantryCategoryFor borrows the category of a same-named pantry item; "other"
// when the pantry has no match.
func pantryCategoryFor(st *store.Store, name string) string {
	var category string
	err := st.DB().QueryRow(`
SELECT category FROM pantry_items WHERE LOWER(name) = ? LIMIT 1
`, normalizeName(name)).Scan(&category)
	if err != nil || strings.TrimSpace(category) == "" {
		return "other"
	}
	return category
}

func GetGroceryList(st *store.Store, id int64) (*model.GroceryList, error) {
	row := st.DB().QueryRow(`SELECT `+groceryColumns+` FROM grocery_lists WHERE id = ?`, id)
	list, err := scanGroceryList(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get grocery list %d: %w", id, err)
	}
	return list, nil
}

func GroceryListByMealPlan(st *store.Store, mealPlanID int64) (*model.GroceryList, error) {
	row := st.DB().QueryRow(`SELECT `+groceryColumns+` FROM grocery_lists WHERE meal_plan_id = ? LIMIT 1`, mealPlanID)
	list, err := scanGroceryList(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get grocery list for meal plan %d: %w", mealPlanID, err)
	}
	return list, nil
}

func ListGroceryLists(st *store.Store) ([]model.GroceryList, error) {
	return queryGroceryLists(st, `SELECT `+groceryColumns+` FROM grocery_lists ORDER BY created_at DESC, id DESC`)
}

// ActiveGroceryLists are those not yet marked complete.
func ActiveGroceryLists(st *store.Store) ([]model.GroceryList, error) {
	return queryGroceryLists(st, `
SELECT `+groceryColumns+` FROM grocery_lists
WHERE completed_at IS NULL
ORDER BY created_at DESC, id DESC
`)
}

// ReplaceGroceryItems swaps the whole item list and recomputes the estimated
// total from the items' estimated costs.
func ReplaceGroceryItems(st *store.Store, id int64, items []model.GroceryItem) error {
	list, err := GetGroceryList(st, id)
	if err != nil {
		return err
	}
	if list == nil {
		return fmt.Errorf("grocery list %d not found", id)
	}

	var total float64
	for _, item := range items {
		if item.EstimatedCost != nil {
			total += *item.EstimatedCost
		}
	}
	itemsJSON, err := encodeJSON("grocery items", items)
	if err != nil {
		return err
	}
	_, err = st.DB().Exec(`
UPDATE grocery_lists SET items_json = ?, total_estimated_cost = ? WHERE id = ?
`, itemsJSON, total, id)
	if err != nil {
		return fmt.Errorf("replace grocery list %d items: %w", id, err)
	}
	st.Notify(store.Change{Collection: store.CollectionGroceryLists, Op: store.OpUpdate, ID: id})
	return nil
}

// SetGroceryItemChecked toggles one item's checked flag, matched
// case-insensitively by name.
func SetGroceryItemChecked(st *store.Store, id int64, itemName string, checked bool) error {
	list, err := GetGroceryList(st, id)
	if err != nil {
		return err
	}
	if list == nil {
		return fmt.Errorf("grocery list %d not found", id)
	}

	found := false
	for i := range list.Items {
		if normalizeName(list.Items[i].Name) == normalizeName(itemName) {
			list.Items[i].Checked = checked
			found = true
		}
	}
	if !found {
		return fmt.Errorf("grocery list %d has no item %q", id, itemName)
	}
	return ReplaceGroceryItems(st, id, list.Items)
}

// CompleteGroceryList marks a list complete exactly once, stamping
// completedAt and the optional actual cost. Completing an already-completed
// list is an error.
func CompleteGroceryList(st *store.Store, id int64, actualCost *float64) error {
	list, err := GetGroceryList(st, id)
	if err != nil {
		return err
	}
	if list == nil {
		return fmt.Errorf("grocery list %d not found", id)
	}
	if list.CompletedAt != nil {
		return fmt.Errorf("grocery list %d already completed at %s", id, list.CompletedAt.Format(time.RFC3339))
	}
	if actualCost != nil {
		if err := validateNonNegativeFloat("actual cost", *actualCost); err != nil {
			return err
		}
	}

	_, err = st.DB().Exec(`
UPDATE grocery_lists SET completed_at = ?, actual_cost = ? WHERE id = ?
`, time.Now().Format(time.RFC3339), floatPtrToNull(actualCost), id)
	if err != nil {
		return fmt.Errorf("complete grocery list %d: %w", id, err)
	}
	st.Notify(store.Change{Collection: store.CollectionGroceryLists, Op: store.OpUpdate, ID: id})
	return nil
}

func DeleteGroceryList(st *store.Store, id int64) error {
	res, err := st.DB().Exec(`DELETE FROM grocery_lists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete grocery list %d: %w", id, err)
	}
	if err := requireAffected(res, fmt.Sprintf("grocery list %d", id)); err != nil {
		return err
	}
	st.Notify(store.Change{Collection: store.CollectionGroceryLists, Op: store.OpDelete, ID: id})
	return nil
}

func queryGroceryLists(st *store.Store, query string, args ...any) ([]model.GroceryList, error) {
	rows, err := st.DB().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list grocery lists: %w", err)
	}
	defer rows.Close()

	lists := make([]model.GroceryList, 0)
	for rows.Next() {
		list, err := scanGroceryList(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan grocery list: %w", err)
		}
		lists = append(lists, *list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate grocery lists: %w", err)
	}
	return lists, nil
}

func scanGroceryList(scan func(...any) error) (*model.GroceryList, error) {
	var list model.GroceryList
	var items string
	var actual sql.NullFloat64
	var completed sql.NullString
	err := scan(&list.ID, &list.MealPlanID, &items, &list.TotalEstimatedCost, &actual, &completed, &list.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := decodeJSON("grocery items", items, &list.Items); err != nil {
		return nil, err
	}
	list.ActualCost = nullToFloatPtr(actual)
	if list.CompletedAt, err = nullStringToTimePtr("completed at", completed); err != nil {
		return nil, err
	}
	return &list, nil
}
