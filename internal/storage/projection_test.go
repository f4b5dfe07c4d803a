// ABOUTME: Tests for table projections used by the data view.
// ABOUTME: Verifies headers, row loading, and delete by view position.
package storage

import (
	"reflect"
	"testing"

	"github.com/harperreed/minds/internal/models"
)

func TestProjectionHeaders(t *testing.T) {
	db := setupTestDB(t)

	p, err := NewProjection(db, models.CategoryWEFE)
	if err != nil {
		t.Fatalf("NewProjection failed: %v", err)
	}
	want := []string{"id", "wefe_date", "wefe_time", "wellbeing_slider", "excite_slider",
		"focus_slider", "energy_slider", "summing_box"}
	if !reflect.DeepEqual(p.Headers(), want) {
		t.Errorf("Headers() = %v, want %v", p.Headers(), want)
	}
	if p.Category() != models.CategoryWEFE {
		t.Errorf("Category() = %s", p.Category())
	}
}

func TestProjectionSelectAndDeleteRows(t *testing.T) {
	db := setupTestDB(t)
	for i := 1; i <= 3; i++ {
		mustInsert(t, db, models.CSPR{Calm: i}, testTime)
	}

	p, err := NewProjection(db, models.CategoryCSPR)
	if err != nil {
		t.Fatalf("NewProjection failed: %v", err)
	}
	if p.Len() != 0 {
		t.Errorf("Expected no rows before Select, got %d", p.Len())
	}
	if err := p.Select(t.Context()); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if p.Len() != 3 {
		t.Fatalf("Expected 3 rows, got %d", p.Len())
	}

	keep := p.Rows()[1].ID
	n, err := p.DeleteRows(t.Context(), 2, 0)
	if err != nil {
		t.Fatalf("DeleteRows failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 rows deleted, got %d", n)
	}
	if p.Len() != 1 || p.Rows()[0].ID != keep {
		t.Errorf("Expected only row %d to remain, got %+v", keep, p.Rows())
	}
}

func TestProjectionDeleteOutOfRange(t *testing.T) {
	db := setupTestDB(t)
	mustInsert(t, db, models.MentalMental{Mood: 1}, testTime)

	p, _ := NewProjection(db, models.CategoryMentalMental)
	if err := p.Select(t.Context()); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if _, err := p.DeleteRows(t.Context(), 0, 5); err == nil {
		t.Error("Expected out of range error")
	}
	if p.Len() != 1 {
		t.Errorf("Expected row to survive, got %d rows", p.Len())
	}
}

func TestNewProjectionUnknownCategory(t *testing.T) {
	db := setupTestDB(t)
	if _, err := NewProjection(db, models.Category("bogus")); err == nil {
		t.Error("Expected error for unknown category")
	}
}
