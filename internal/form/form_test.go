// ABOUTME: Tests for the generic measurement form.
// ABOUTME: Uses an in-memory inserter and a fixed clock.
package form

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/minds/internal/models"
	"github.com/harperreed/minds/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInserter struct {
	entries []*models.Entry
	err     error
}

func (f *fakeInserter) Insert(_ context.Context, e *models.Entry) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	e.ID = int64(len(f.entries) + 1)
	f.entries = append(f.entries, e)
	return e.ID, nil
}

var fixedNow = time.Date(2024, 5, 1, 7, 30, 0, 0, time.Local)

func newTestForm(t *testing.T, c models.Category, ins Inserter) *Form {
	t.Helper()
	f, err := New(c, ins, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return f
}

func TestNewResetsToNow(t *testing.T) {
	f := newTestForm(t, models.CategoryWEFE, &fakeInserter{})

	assert.Equal(t, "2024-05-01", f.Date())
	assert.Equal(t, "07:30:00", f.Time())
	assert.Equal(t, []int{0, 0, 0, 0}, f.Sliders())
	sum, ok := f.Summary()
	assert.True(t, ok)
	assert.Equal(t, 0, sum)
}

func TestNewUnknownCategory(t *testing.T) {
	_, err := New(models.Category("sleep"), &fakeInserter{})
	assert.ErrorIs(t, err, models.ErrUnknownCategory)
}

func TestSetSliderRecomputesSummary(t *testing.T) {
	f := newTestForm(t, models.CategoryWEFE, &fakeInserter{})

	_, err := f.SetSlider("excite_slider", 3)
	require.NoError(t, err)
	_, err = f.SetSlider("energy", 5)
	require.NoError(t, err)

	sum, _ := f.Summary()
	assert.Equal(t, 8, sum)
}

func TestSetSliderClamps(t *testing.T) {
	f := newTestForm(t, models.CategoryCSPR, &fakeInserter{})

	v, err := f.SetSlider("calm", 42)
	require.NoError(t, err)
	assert.Equal(t, models.SliderMax, v)

	v, err = f.SetSlider("rage", -3)
	require.NoError(t, err)
	assert.Equal(t, models.SliderMin, v)

	_, err = f.SetSlider("mood", 3)
	assert.Error(t, err)

	_, ok := f.Summary()
	assert.False(t, ok)
}

func TestNudge(t *testing.T) {
	f := newTestForm(t, models.CategoryMentalMental, &fakeInserter{})

	assert.Equal(t, 1, f.Nudge(0, 1))
	assert.Equal(t, 0, f.Nudge(0, -5))
	for i := 0; i < 20; i++ {
		f.Nudge(3, 1)
	}
	v, err := f.Slider("mixed_risk_slider")
	require.NoError(t, err)
	assert.Equal(t, models.SliderMax, v)
}

func TestCommitInsertsAndResets(t *testing.T) {
	ins := &fakeInserter{}
	f := newTestForm(t, models.CategoryWEFE, ins)
	require.NoError(t, f.SetDate("2024-04-30"))
	require.NoError(t, f.SetTime("22:05:09"))
	f.Restore(map[string]int{"wellbeing_slider": 6, "focus_slider": 2, "energy_slider": 1})

	var hooked *models.Entry
	f.OnCommitted(func(e *models.Entry) { hooked = e })

	e, err := f.Commit(context.Background())
	require.NoError(t, err)
	require.Len(t, ins.entries, 1)

	assert.Equal(t, "2024-04-30", e.Date)
	assert.Equal(t, "22:05:09", e.Time)
	assert.Equal(t, []int{6, 0, 2, 1}, e.Values)
	require.NotNil(t, e.Summary)
	assert.Equal(t, 9, *e.Summary)
	assert.Same(t, e, hooked)

	assert.Equal(t, "2024-05-01", f.Date())
	assert.Equal(t, "07:30:00", f.Time())
	assert.Equal(t, []int{0, 0, 0, 0}, f.Sliders())
	sum, _ := f.Summary()
	assert.Equal(t, 0, sum)
}

func TestCommitFailureKeepsValues(t *testing.T) {
	ins := &fakeInserter{err: errors.New("database is locked")}
	f := newTestForm(t, models.CategoryCSPR, ins)
	f.Restore(map[string]int{"calm_slider": 4, "pain_slider": 7})

	called := false
	f.OnCommitted(func(*models.Entry) { called = true })

	_, err := f.Commit(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
	assert.False(t, called)
	assert.Equal(t, []int{4, 0, 7, 0}, f.Sliders())
}

func TestSnapshotRequiresEveryControl(t *testing.T) {
	f := newTestForm(t, models.CategoryCSPR, &fakeInserter{})
	f.date = time.Time{}

	_, err := f.Snapshot()
	assert.ErrorIs(t, err, ErrUnset)

	_, err = f.Commit(context.Background())
	assert.ErrorIs(t, err, ErrUnset)
}

func TestSetDateAndTimeRejectGarbage(t *testing.T) {
	f := newTestForm(t, models.CategoryCSPR, &fakeInserter{})

	assert.Error(t, f.SetDate("01/05/2024"))
	assert.Error(t, f.SetTime("7:30 PM"))
	assert.Equal(t, "2024-05-01", f.Date())
}

func TestValuesAndRestore(t *testing.T) {
	f := newTestForm(t, models.CategoryMentalMental, &fakeInserter{})
	f.Restore(map[string]int{"mood_slider": 12, "bogus": 3, "mania_slider": 2})

	assert.Equal(t, map[string]int{
		"mood_slider":       10,
		"mania_slider":      2,
		"depression_slider": 0,
		"mixed_risk_slider": 0,
	}, f.Values())
}

func TestCommitWritesOneRow(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "minds.db"))
	require.NoError(t, err)
	defer db.Close()

	f := newTestForm(t, models.CategoryMentalMental, db)
	_, err = f.SetSlider("depression", 3)
	require.NoError(t, err)

	e, err := f.Commit(context.Background())
	require.NoError(t, err)

	rows, err := db.List(context.Background(), models.CategoryMentalMental, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, e.ID, rows[0].ID)
	assert.Equal(t, []int{0, 0, 3, 0}, rows[0].Values)
}
