// ABOUTME: Shared test helpers for storage tests.
// ABOUTME: Provides setupTestDB and entry builders for isolated test databases.
package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/minds/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "minds.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

var testTime = time.Date(2024, 3, 9, 21, 15, 4, 0, time.Local)

func mustInsert(t *testing.T, db *DB, m models.Measurement, at time.Time) *models.Entry {
	t.Helper()
	e := models.NewEntry(m, at)
	if _, err := db.Insert(t.Context(), e); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	return e
}

// writeRawDB builds a database file with plain SQL, the way another tool
// would, bypassing Open.
func writeRawDB(t *testing.T, path string, stmts ...string) {
	t.Helper()
	raw, err := sql.Open(driverName, path)
	if err != nil {
		t.Fatalf("Failed to open raw DB: %v", err)
	}
	defer raw.Close()
	for _, stmt := range stmts {
		if _, err := raw.Exec(stmt); err != nil {
			t.Fatalf("Exec %q failed: %v", stmt, err)
		}
	}
}

const legacyWEFETable = `CREATE TABLE wefe_table (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	wefe_date TEXT, wefe_time TEXT,
	wellbeing_slider INTEGER, excite_slider INTEGER, focus_slider INTEGER, energy_slider INTEGER,
	summing_box INTEGER)`
