package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/nutriplan/nutriplan-cli/internal/model"
	"github.com/nutriplan/nutriplan-cli/internal/store"
)

type PantryItemInput struct {
	Name           string
	Quantity       float64
	Unit           string
	Category       string
	ExpirationDate *time.Time
	Barcode        string
	CostPerUnit    *float64
	PurchaseDate   *time.Time
}

const pantryColumns = `id, name, quantity, unit, category, expiration_date, barcode,
  cost_per_unit, purchase_date, created_at, updated_at`

func CreatePantryItem(st *store.Store, in PantryItemInput) (int64, error) {
	if err := validatePantryItemInput(in); err != nil {
		return 0, err
	}
	res, err := st.DB().Exec(`
INSERT INTO pantry_items(name, quantity, unit, category, expiration_date, barcode, cost_per_unit, purchase_date)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, strings.TrimSpace(in.Name), in.Quantity, strings.TrimSpace(in.Unit), strings.TrimSpace(in.Category),
		timePtrToNullString(in.ExpirationDate), nullableString(in.Barcode),
		floatPtrToNull(in.CostPerUnit), timePtrToNullString(in.PurchaseDate))
	if err != nil {
		return 0, fmt.Errorf("create pantry item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve pantry item id: %w", err)
	}
	st.Notify(store.Change{Collection: store.CollectionPantryItems, Op: store.OpInsert, ID: id})
	return id, nil
}

func BulkCreatePantryItems(st *store.Store, inputs []PantryItemInput) error {
	for i, in := range inputs {
		if err := validatePantryItemInput(in); err != nil {
			return fmt.Errorf("pantry item %d (%s): %w", i, in.Name, err)
		}
	}
	tx, err := st.DB().Begin()
	if err != nil {
		return fmt.Errorf("begin bulk pantry tx: %w", err)
	}
	for _, in := range inputs {
		if _, err := tx.Exec(`
INSERT INTO pantry_items(name, quantity, unit, category, expiration_date, barcode, cost_per_unit, purchase_date)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, strings.TrimSpace(in.Name), in.Quantity, strings.TrimSpace(in.Unit), strings.TrimSpace(in.Category),
			timePtrToNullString(in.ExpirationDate), nullableString(in.Barcode),
			floatPtrToNull(in.CostPerUnit), timePtrToNullString(in.PurchaseDate)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("bulk create pantry item %q: %w", in.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk pantry items: %w", err)
	}
	st.Notify(store.Change{Collection: store.CollectionPantryItems, Op: store.OpInsert})
	return nil
}

func GetPantryItem(st *store.Store, id int64) (*model.PantryItem, error) {
	row := st.DB().QueryRow(`SELECT `+pantryColumns+` FROM pantry_items WHERE id = ?`, id)
	item, err := scanPantryItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pantry item %d: %w", id, err)
	}
	return item, nil
}

// ListPantryItems returns everything, or only one category when it is
// non-empty.
func ListPantryItems(st *store.Store, category string) ([]model.PantryItem, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return queryPantryItems(st, `SELECT `+pantryColumns+` FROM pantry_items ORDER BY name`)
	}
	return queryPantryItems(st, `SELECT `+pantryColumns+` FROM pantry_items WHERE category = ? ORDER BY name`, category)
}

// ExpiringPantryItems returns items whose expiration date falls before now +
// daysAhead. Items without an expiration date never expire.
func ExpiringPantryItems(st *store.Store, daysAhead int) ([]model.PantryItem, error) {
	if daysAhead <= 0 {
		daysAhead = 7
	}
	cutoff := time.Now().AddDate(0, 0, daysAhead).Format(time.RFC3339)
	return queryPantryItems(st, `
SELECT `+pantryColumns+` FROM pantry_items
WHERE expiration_date IS NOT NULL AND expiration_date < ?
ORDER BY expiration_date
`, cutoff)
}

func PantryItemByBarcode(st *store.Store, barcode string) (*model.PantryItem, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, fmt.Errorf("barcode is required")
	}
	row := st.DB().QueryRow(`SELECT `+pantryColumns+` FROM pantry_items WHERE barcode = ? LIMIT 1`, barcode)
	item, err := scanPantryItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup pantry item by barcode %q: %w", barcode, err)
	}
	return item, nil
}

func UpdatePantryItem(st *store.Store, id int64, in PantryItemInput) error {
	if err := validatePantryItemInput(in); err != nil {
		return err
	}
	res, err := st.DB().Exec(`
UPDATE pantry_items SET
  name = ?, quantity = ?, unit = ?, category = ?, expiration_date = ?, barcode = ?,
  cost_per_unit = ?, purchase_date = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, strings.TrimSpace(in.Name), in.Quantity, strings.TrimSpace(in.Unit), strings.TrimSpace(in.Category),
		timePtrToNullString(in.ExpirationDate), nullableString(in.Barcode),
		floatPtrToNull(in.CostPerUnit), timePtrToNullString(in.PurchaseDate), id)
	if err != nil {
		return fmt.Errorf("update pantry item %d: %w", id, err)
	}
	if err := requireAffected(res, fmt.Sprintf("pantry item %d", id)); err != nil {
		return err
	}
	st.Notify(store.Change{Collection: store.CollectionPantryItems, Op: store.OpUpdate, ID: id})
	return nil
}

// SetPantryQuantity mutates the quantity directly; the usual path when an
// item is partially consumed.
func SetPantryQuantity(st *store.Store, id int64, quantity float64) error {
	if err := validateNonNegativeFloat("quantity", quantity); err != nil {
		return err
	}
	res, err := st.DB().Exec(`
UPDATE pantry_items SET quantity = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
`, quantity, id)
	if err != nil {
		return fmt.Errorf("set pantry item %d quantity: %w", id, err)
	}
	if err := requireAffected(res, fmt.Sprintf("pantry item %d", id)); err != nil {
		return err
	}
	st.Notify(store.Change{Collection: store.CollectionPantryItems, Op: store.OpUpdate, ID: id})
	return nil
}

func DeletePantryItem(st *store.Store, id int64) error {
	res, err := st.DB().Exec(`DELETE FROM pantry_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete pantry item %d: %w", id, err)
	}
	if err := requireAffected(res, fmt.Sprintf("pantry item %d", id)); err != nil {
		return err
	}
	st.Notify(store.Change{Collection: store.CollectionPantryItems, Op: store.OpDelete, ID: id})
	return nil
}

func queryPantryItems(st *store.Store, query string, args ...any) ([]model.PantryItem, error) {
	rows, err := st.DB().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pantry items: %w", err)
	}
	defer rows.Close()

	items := make([]model.PantryItem, 0)
	for rows.Next() {
		item, err := scanPantryItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan pantry item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pantry items: %w", err)
	}
	return items, nil
}

func scanPantryItem(scan func(...any) error) (*model.PantryItem, error) {
	var item model.PantryItem
	var expiration, barcode, purchase sql.NullString
	var cost sql.NullFloat64
	err := scan(&item.ID, &item.Name, &item.Quantity, &item.Unit, &item.Category,
		&expiration, &barcode, &cost, &purchase, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if item.ExpirationDate, err = nullStringToTimePtr("expiration date", expiration); err != nil {
		return nil, err
	}
	if item.PurchaseDate, err = nullStringToTimePtr("purchase date", purchase); err != nil {
		return nil, err
	}
	if barcode.Valid {
		item.Barcode = barcode.String
	}
	item.CostPerUnit = nullToFloatPtr(cost)
	return &item, nil
}

func validatePantryItemInput(in PantryItemInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("pantry item name is required")
	}
	if err := validateNonNegativeFloat("quantity", in.Quantity); err != nil {
		return err
	}
	if in.CostPerUnit != nil {
		if err := validateNonNegativeFloat("cost per unit", *in.CostPerUnit); err != nil {
			return err
		}
	}
	return nil
}

func nullableString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func requireAffected(res sql.Result, what string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", what, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s not found", what)
	}
	return nil
}
