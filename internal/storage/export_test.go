// ABOUTME: Tests for export, import, and migration.
// ABOUTME: Verifies JSON, YAML, and Markdown export formats and database copies.
package storage

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/minds/internal/models"
	"gopkg.in/yaml.v3"
)

func seedAllLogs(t *testing.T, db *DB) {
	t.Helper()
	mustInsert(t, db, models.WEFE{Wellbeing: 6, Excite: 0, Focus: 3, Energy: 5}, testTime)
	mustInsert(t, db, models.CSPR{Calm: 7, Stress: 2, Pain: 1, Rage: 0}, testTime)
	mustInsert(t, db, models.MentalMental{Mood: 4, Mania: 1, Depression: 2, MixedRisk: 0}, testTime)
}

func TestExportJSON(t *testing.T) {
	db := setupTestDB(t)
	seedAllLogs(t, db)

	data, err := db.ExportJSON(t.Context())
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if export.Version != ExportVersion {
		t.Errorf("Expected version %s, got %s", ExportVersion, export.Version)
	}
	if export.Tool != "minds" {
		t.Errorf("Expected tool minds, got %s", export.Tool)
	}
	if export.ID == uuid.Nil {
		t.Error("Expected export id to be set")
	}
	if len(export.WEFE) != 1 || len(export.CSPR) != 1 || len(export.MentalMental) != 1 {
		t.Errorf("Expected one row per log, got %d/%d/%d",
			len(export.WEFE), len(export.CSPR), len(export.MentalMental))
	}
	if export.WEFE[0].Summary == nil || *export.WEFE[0].Summary != 14 {
		t.Errorf("Expected WEFE summary 14, got %v", export.WEFE[0].Summary)
	}
}

func TestExportYAML(t *testing.T) {
	db := setupTestDB(t)
	seedAllLogs(t, db)

	data, err := db.ExportYAML(t.Context())
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	var yamlData map[string]interface{}
	if err := yaml.Unmarshal(data, &yamlData); err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}

	if yamlData["tool"] != "minds" {
		t.Errorf("Expected tool minds, got %v", yamlData["tool"])
	}
	logs, ok := yamlData["logs"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected logs to be a map")
	}
	for _, c := range models.AllCategories {
		if _, ok := logs[string(c)]; !ok {
			t.Errorf("Expected %s in logs", c)
		}
	}
	if !strings.Contains(string(data), "wellbeing: 6") {
		t.Errorf("Expected named slider fields in YAML:\n%s", data)
	}
}

func TestExportMarkdown(t *testing.T) {
	db := setupTestDB(t)
	seedAllLogs(t, db)

	md, err := db.ExportMarkdown(t.Context(), nil, nil)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}

	for _, want := range []string{
		"# Minds Export",
		"## Wellbeing / Excitement / Focus / Energy",
		"## Calm / Stress / Pain / Rage",
		"| 2024-03-09 | 21:15:04 | 6 | 0 | 3 | 5 | 14 |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected %q in markdown:\n%s", want, md)
		}
	}
}

func TestExportMarkdownFiltered(t *testing.T) {
	db := setupTestDB(t)
	seedAllLogs(t, db)
	mustInsert(t, db, models.CSPR{Calm: 9}, testTime.Add(48*time.Hour))

	c := models.CategoryCSPR
	since := testTime.Add(24 * time.Hour)
	md, err := db.ExportMarkdown(t.Context(), &c, &since)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}

	if strings.Contains(md, "Wellbeing") {
		t.Error("Expected only the CSPR section")
	}
	if strings.Contains(md, "| 7 |") {
		t.Error("Expected rows before since to be dropped")
	}
	if !strings.Contains(md, "| 9 |") {
		t.Errorf("Expected the later row:\n%s", md)
	}
}

func TestImportJSONRoundTrip(t *testing.T) {
	src := setupTestDB(t)
	seedAllLogs(t, src)

	data, err := src.ExportJSON(t.Context())
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	dst := setupTestDB(t)
	mustInsert(t, dst, models.CSPR{Calm: 1}, testTime)

	n, err := dst.ImportJSON(t.Context(), data)
	if err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Expected 3 rows imported, got %d", n)
	}

	cspr, _ := dst.List(t.Context(), models.CategoryCSPR, 0)
	if len(cspr) != 2 {
		t.Errorf("Expected import to append, got %d CSPR rows", len(cspr))
	}
}

func TestImportRejectsInvalidRows(t *testing.T) {
	db := setupTestDB(t)

	data := &ExportData{
		CSPR: []*models.Entry{
			{Date: "2024-01-01", Time: "09:00:00", Values: []int{1, 2, 3, 4}},
			{Date: "2024-01-01", Time: "09:00:00", Values: []int{1, 2, 30, 4}},
		},
	}
	_, err := db.ImportData(t.Context(), data)
	if !errors.Is(err, models.ErrInvalidEntry) {
		t.Fatalf("Expected ErrInvalidEntry, got %v", err)
	}

	n, _ := db.Count(t.Context(), models.CategoryCSPR)
	if n != 0 {
		t.Errorf("Expected nothing imported, got %d rows", n)
	}
}

func TestMigrateData(t *testing.T) {
	src := setupTestDB(t)
	seedAllLogs(t, src)
	mustInsert(t, src, models.WEFE{Wellbeing: 1}, testTime)

	dst, err := Open(filepath.Join(t.TempDir(), "copy.db"))
	if err != nil {
		t.Fatalf("Open dst failed: %v", err)
	}
	defer dst.Close()

	summary, err := MigrateData(t.Context(), src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.WEFE != 2 || summary.CSPR != 1 || summary.MentalMental != 1 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
	if summary.Total() != 4 {
		t.Errorf("Expected 4 rows total, got %d", summary.Total())
	}

	wefe, err := dst.List(t.Context(), models.CategoryWEFE, 0)
	if err != nil {
		t.Fatalf("List dst failed: %v", err)
	}
	if len(wefe) != 2 || wefe[1].Values[0] != 1 {
		t.Errorf("Unexpected migrated rows: %+v", wefe)
	}
}
