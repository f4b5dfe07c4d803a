// ABOUTME: Entry insert, select, and delete operations for SQLite storage.
// ABOUTME: One fixed-arity insert per table plus generic category-driven queries.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/harperreed/minds/internal/models"
	"github.com/jmoiron/sqlx"
)

// Every column but id is nullable in the schema; rows written by other
// tools may leave cells empty.
type wefeRow struct {
	ID         int64          `db:"id"`
	Date       sql.NullString `db:"wefe_date"`
	Time       sql.NullString `db:"wefe_time"`
	Wellbeing  sql.NullInt64  `db:"wellbeing_slider"`
	Excite     sql.NullInt64  `db:"excite_slider"`
	Focus      sql.NullInt64  `db:"focus_slider"`
	Energy     sql.NullInt64  `db:"energy_slider"`
	SummingBox sql.NullInt64  `db:"summing_box"`
}

func (r wefeRow) entry() *models.Entry {
	e := &models.Entry{
		ID:       r.ID,
		Category: models.CategoryWEFE,
		Date:     r.Date.String,
		Time:     r.Time.String,
		Values:   sliders(r.Wellbeing, r.Excite, r.Focus, r.Energy),
	}
	if r.SummingBox.Valid {
		sum := int(r.SummingBox.Int64)
		e.Summary = &sum
	}
	return e
}

type csprRow struct {
	ID     int64          `db:"id"`
	Date   sql.NullString `db:"cspr_date"`
	Time   sql.NullString `db:"cspr_time"`
	Calm   sql.NullInt64  `db:"calm_slider"`
	Stress sql.NullInt64  `db:"stress_slider"`
	Pain   sql.NullInt64  `db:"pain_slider"`
	Rage   sql.NullInt64  `db:"rage_slider"`
}

func (r csprRow) entry() *models.Entry {
	return &models.Entry{
		ID:       r.ID,
		Category: models.CategoryCSPR,
		Date:     r.Date.String,
		Time:     r.Time.String,
		Values:   sliders(r.Calm, r.Stress, r.Pain, r.Rage),
	}
}

type mentalMentalRow struct {
	ID         int64          `db:"id"`
	Date       sql.NullString `db:"mental_mental_date"`
	Time       sql.NullString `db:"mental_mental_time"`
	Mood       sql.NullInt64  `db:"mood_slider"`
	Mania      sql.NullInt64  `db:"mania_slider"`
	Depression sql.NullInt64  `db:"depression_slider"`
	MixedRisk  sql.NullInt64  `db:"mixed_risk_slider"`
}

func (r mentalMentalRow) entry() *models.Entry {
	return &models.Entry{
		ID:       r.ID,
		Category: models.CategoryMentalMental,
		Date:     r.Date.String,
		Time:     r.Time.String,
		Values:   sliders(r.Mood, r.Mania, r.Depression, r.MixedRisk),
	}
}

// sliders reads an empty cell as 0, the value an untouched slider shows.
func sliders(cols ...sql.NullInt64) []int {
	values := make([]int, len(cols))
	for i, c := range cols {
		if c.Valid {
			values[i] = int(c.Int64)
		}
	}
	return values
}

type entryRow interface {
	entry() *models.Entry
}

func selectEntries[R entryRow](ctx context.Context, q sqlx.QueryerContext, query string, args ...any) ([]*models.Entry, error) {
	var rows []R
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, err
	}
	entries := make([]*models.Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, r.entry())
	}
	return entries, nil
}

func (d *DB) selectCategory(ctx context.Context, c models.Category, query string, args ...any) ([]*models.Entry, error) {
	if spec, err := models.SpecFor(c); err == nil && d.absent[spec.Table] {
		return []*models.Entry{}, nil
	}
	switch c {
	case models.CategoryWEFE:
		return selectEntries[wefeRow](ctx, d.db, query, args...)
	case models.CategoryCSPR:
		return selectEntries[csprRow](ctx, d.db, query, args...)
	case models.CategoryMentalMental:
		return selectEntries[mentalMentalRow](ctx, d.db, query, args...)
	}
	return nil, fmt.Errorf("%w: %s", models.ErrUnknownCategory, c)
}

func selectColumns(spec *models.Spec) string {
	return "id, " + strings.Join(spec.Columns(), ", ")
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// Insert stores a new entry and returns its row id. The entry's ID is set.
func (d *DB) Insert(ctx context.Context, e *models.Entry) (int64, error) {
	spec, err := models.SpecFor(e.Category)
	if err != nil {
		return 0, err
	}
	id, err := d.insertRow(ctx, d.db, spec, e.Args()...)
	if err != nil {
		return 0, err
	}
	e.ID = id
	return id, nil
}

// InsertWEFE stores one wefe_table row.
func (d *DB) InsertWEFE(ctx context.Context, date, tm string, wellbeing, excite, focus, energy, summingBox int) (int64, error) {
	return d.insertRow(ctx, d.db, models.MustSpec(models.CategoryWEFE),
		date, tm, wellbeing, excite, focus, energy, summingBox)
}

// InsertCSPR stores one cspr_table row.
func (d *DB) InsertCSPR(ctx context.Context, date, tm string, calm, stress, pain, rage int) (int64, error) {
	return d.insertRow(ctx, d.db, models.MustSpec(models.CategoryCSPR),
		date, tm, calm, stress, pain, rage)
}

// InsertMentalMental stores one mental_mental_table row.
func (d *DB) InsertMentalMental(ctx context.Context, date, tm string, mood, mania, depression, mixedRisk int) (int64, error) {
	return d.insertRow(ctx, d.db, models.MustSpec(models.CategoryMentalMental),
		date, tm, mood, mania, depression, mixedRisk)
}

func (d *DB) insertRow(ctx context.Context, ex sqlx.ExecerContext, spec *models.Spec, args ...any) (int64, error) {
	cols := spec.Columns()
	if len(args) != len(cols) {
		err := fmt.Errorf("%w: %s expected %d values, got %d", ErrArityMismatch, spec.Table, len(cols), len(args))
		d.log.Errorw("insert rejected", "table", spec.Table, "error", err)
		return 0, err
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		spec.Table, strings.Join(cols, ", "), placeholders(len(cols)))
	result, err := ex.ExecContext(ctx, query, args...)
	if err != nil {
		d.log.Errorw("insert failed", "table", spec.Table, "error", err)
		return 0, fmt.Errorf("insert %s: %w", spec.Table, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		d.log.Errorw("insert id unavailable", "table", spec.Table, "error", err)
		return 0, fmt.Errorf("insert %s: %w", spec.Table, err)
	}
	d.log.Debugw("row inserted", "table", spec.Table, "id", id)
	return id, nil
}

// List returns the rows of a category in id order. A positive limit keeps
// only the newest rows.
func (d *DB) List(ctx context.Context, c models.Category, limit int) ([]*models.Entry, error) {
	spec, err := models.SpecFor(c)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", selectColumns(spec), spec.Table)
	var args []any
	if limit > 0 {
		query = fmt.Sprintf("SELECT * FROM (SELECT %s FROM %s ORDER BY id DESC LIMIT ?) ORDER BY id",
			selectColumns(spec), spec.Table)
		args = append(args, limit)
	}

	entries, err := d.selectCategory(ctx, c, query, args...)
	if err != nil {
		d.log.Errorw("list failed", "table", spec.Table, "error", err)
		return nil, fmt.Errorf("list %s: %w", spec.Table, err)
	}
	return entries, nil
}

// Get returns one row by id.
func (d *DB) Get(ctx context.Context, c models.Category, id int64) (*models.Entry, error) {
	spec, err := models.SpecFor(c)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", selectColumns(spec), spec.Table)
	entries, err := d.selectCategory(ctx, c, query, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", spec.Table, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s #%d", ErrNotFound, spec.Table, id)
	}
	return entries[0], nil
}

// Count returns the number of rows in a category.
func (d *DB) Count(ctx context.Context, c models.Category) (int, error) {
	spec, err := models.SpecFor(c)
	if err != nil {
		return 0, err
	}
	if d.absent[spec.Table] {
		return 0, nil
	}
	var n int
	if err := d.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+spec.Table); err != nil {
		return 0, fmt.Errorf("count %s: %w", spec.Table, err)
	}
	return n, nil
}

// Delete removes exactly the given rows. If any id is missing nothing is
// deleted and ErrNotFound is returned.
func (d *DB) Delete(ctx context.Context, c models.Category, ids ...int64) (int64, error) {
	spec, err := models.SpecFor(c)
	if err != nil {
		return 0, err
	}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(fmt.Sprintf("DELETE FROM %s WHERE id IN (?)", spec.Table), ids)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", spec.Table, err)
	}
	query = d.db.Rebind(query)

	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		d.log.Errorw("delete failed", "table", spec.Table, "error", err)
		return 0, fmt.Errorf("delete %s: %w", spec.Table, err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		d.log.Errorw("delete failed", "table", spec.Table, "error", err)
		return 0, fmt.Errorf("delete %s: %w", spec.Table, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", spec.Table, err)
	}
	if affected != int64(len(ids)) {
		d.log.Warnw("delete aborted", "table", spec.Table, "requested", len(ids), "matched", affected)
		return 0, fmt.Errorf("%w: %d of %d rows in %s", ErrNotFound, int64(len(ids))-affected, len(ids), spec.Table)
	}

	if err := tx.Commit(); err != nil {
		d.log.Errorw("delete commit failed", "table", spec.Table, "error", err)
		return 0, fmt.Errorf("delete %s: %w", spec.Table, err)
	}
	d.log.Infow("rows deleted", "table", spec.Table, "ids", ids)
	return affected, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
