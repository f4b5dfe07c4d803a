// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines wefe_table, cspr_table, and mental_mental_table.
package storage

import "context"

// initSchema creates the measurement tables if they do not exist.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS wefe_table (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		wefe_date TEXT,
		wefe_time TEXT,
		wellbeing_slider INTEGER,
		excite_slider INTEGER,
		focus_slider INTEGER,
		energy_slider INTEGER,
		summing_box INTEGER
	);

	CREATE TABLE IF NOT EXISTS cspr_table (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		cspr_date TEXT,
		cspr_time TEXT,
		calm_slider INTEGER,
		stress_slider INTEGER,
		pain_slider INTEGER,
		rage_slider INTEGER
	);

	CREATE TABLE IF NOT EXISTS mental_mental_table (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		mental_mental_date TEXT,
		mental_mental_time TEXT,
		mood_slider INTEGER,
		mania_slider INTEGER,
		depression_slider INTEGER,
		mixed_risk_slider INTEGER
	);
	`

	_, err := d.db.Exec(schema)
	return err
}

// Tables lists the user tables present in the database.
func (d *DB) Tables(ctx context.Context) ([]string, error) {
	var names []string
	err := d.db.SelectContext(ctx, &names, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`)
	return names, err
}
