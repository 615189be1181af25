package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "profile_and_recipes",
		sql: `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS user_profile (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  height_cm REAL NOT NULL CHECK(height_cm > 0),
  weight_kg REAL NOT NULL CHECK(weight_kg > 0),
  age INTEGER NOT NULL CHECK(age > 0),
  gender TEXT NOT NULL,
  activity_level TEXT NOT NULL,
  bmi REAL NOT NULL DEFAULT 0,
  bmr REAL NOT NULL DEFAULT 0,
  tdee REAL NOT NULL DEFAULT 0,
  calorie_target INTEGER NOT NULL DEFAULT 0 CHECK(calorie_target >= 0),
  protein_target_g INTEGER NOT NULL DEFAULT 0 CHECK(protein_target_g >= 0),
  carbs_target_g INTEGER NOT NULL DEFAULT 0 CHECK(carbs_target_g >= 0),
  fat_target_g INTEGER NOT NULL DEFAULT 0 CHECK(fat_target_g >= 0),
  workout_calorie_goal INTEGER NOT NULL DEFAULT 0 CHECK(workout_calorie_goal >= 0),
  workout_days_per_week INTEGER CHECK(workout_days_per_week BETWEEN 0 AND 7),
  dietary_restrictions_json TEXT NOT NULL DEFAULT '[]',
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS recipes (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  category TEXT NOT NULL CHECK(category IN ('breakfast', 'lunch', 'dinner', 'snack')),
  servings REAL NOT NULL CHECK(servings > 0),
  prep_time_min INTEGER NOT NULL DEFAULT 0 CHECK(prep_time_min >= 0),
  cook_time_min INTEGER NOT NULL DEFAULT 0 CHECK(cook_time_min >= 0),
  ingredients_json TEXT NOT NULL DEFAULT '[]',
  instructions_json TEXT NOT NULL DEFAULT '[]',
  tags_json TEXT NOT NULL DEFAULT '[]',
  tips TEXT NOT NULL DEFAULT '',
  calories_per_serving REAL NOT NULL CHECK(calories_per_serving >= 0),
  protein_per_serving_g REAL NOT NULL CHECK(protein_per_serving_g >= 0),
  carbs_per_serving_g REAL NOT NULL CHECK(carbs_per_serving_g >= 0),
  fat_per_serving_g REAL NOT NULL CHECK(fat_per_serving_g >= 0),
  cost_per_serving REAL CHECK(cost_per_serving >= 0),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_recipes_category ON recipes(category);
CREATE INDEX IF NOT EXISTS idx_recipes_created_at ON recipes(created_at);

CREATE TABLE IF NOT EXISTS recipe_tags (
  recipe_id INTEGER NOT NULL,
  tag TEXT NOT NULL,
  PRIMARY KEY(recipe_id, tag),
  FOREIGN KEY(recipe_id) REFERENCES recipes(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_recipe_tags_tag ON recipe_tags(tag);
`,
	},
	{
		version: 2,
		name:    "pantry_items",
		sql: `
CREATE TABLE IF NOT EXISTS pantry_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  quantity REAL NOT NULL CHECK(quantity >= 0),
  unit TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT '',
  expiration_date TEXT,
  barcode TEXT,
  cost_per_unit REAL CHECK(cost_per_unit >= 0),
  purchase_date TEXT,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_pantry_items_category ON pantry_items(category);
CREATE INDEX IF NOT EXISTS idx_pantry_items_expiration ON pantry_items(expiration_date);
CREATE INDEX IF NOT EXISTS idx_pantry_items_barcode ON pantry_items(barcode);
`,
	},
	{
		version: 3,
		name:    "meal_plans",
		sql: `
CREATE TABLE IF NOT EXISTS meal_plans (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  week_start_date TEXT NOT NULL,
  days_json TEXT NOT NULL DEFAULT '[]',
  total_weekly_cost REAL CHECK(total_weekly_cost >= 0),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_meal_plans_week_start ON meal_plans(week_start_date);
`,
	},
	{
		version: 4,
		name:    "grocery_lists",
		sql: `
CREATE TABLE IF NOT EXISTS grocery_lists (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  meal_plan_id INTEGER NOT NULL,
  items_json TEXT NOT NULL DEFAULT '[]',
  total_estimated_cost REAL NOT NULL DEFAULT 0 CHECK(total_estimated_cost >= 0),
  actual_cost REAL CHECK(actual_cost >= 0),
  completed_at TEXT,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_grocery_lists_meal_plan_id ON grocery_lists(meal_plan_id);
CREATE INDEX IF NOT EXISTS idx_grocery_lists_created_at ON grocery_lists(created_at);
`,
	},
	{
		version: 5,
		name:    "app_config",
		sql: `
CREATE TABLE IF NOT EXISTS app_config (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}

	return nil
}
