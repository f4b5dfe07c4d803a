// ABOUTME: Generic measurement form bound to one category layout.
// ABOUTME: Holds date, time, and slider controls and commits them as one table row.
package form

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/minds/internal/models"
	"go.uber.org/zap"
)

// ErrUnset is returned when a control has no value to read.
var ErrUnset = errors.New("control has no value")

// Inserter stores a committed entry.
type Inserter interface {
	Insert(ctx context.Context, e *models.Entry) (int64, error)
}

// Form is the editable state of one measurement page.
type Form struct {
	spec     *models.Spec
	store    Inserter
	now      func() time.Time
	log      *zap.SugaredLogger
	date     time.Time
	clock    time.Time
	sliders  []int
	summary  int
	onCommit []func(*models.Entry)
}

// Option configures a Form.
type Option func(*Form)

// WithClock replaces time.Now as the source of the current date and time.
func WithClock(now func() time.Time) Option {
	return func(f *Form) { f.now = now }
}

// WithLogger sets the log sink for commit failures.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(f *Form) {
		if log != nil {
			f.log = log
		}
	}
}

// New builds a form for the category and resets it to the current time.
func New(c models.Category, store Inserter, opts ...Option) (*Form, error) {
	spec, err := models.SpecFor(c)
	if err != nil {
		return nil, err
	}
	f := &Form{
		spec:    spec,
		store:   store,
		now:     time.Now,
		log:     zap.NewNop().Sugar(),
		sliders: make([]int, len(spec.Fields)),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.Reset()
	return f, nil
}

// Spec returns the layout the form is bound to.
func (f *Form) Spec() *models.Spec {
	return f.spec
}

// Category returns the bound category.
func (f *Form) Category() models.Category {
	return f.spec.Category
}

// Reset sets date and time to now and every slider to its minimum.
func (f *Form) Reset() {
	now := f.now()
	f.date = now
	f.clock = now
	for i, field := range f.spec.Fields {
		f.sliders[i] = field.Min
	}
	f.recompute()
}

// SetDate sets the date control from a yyyy-MM-dd string.
func (f *Form) SetDate(s string) error {
	d, err := time.ParseInLocation(models.DateLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", s, err)
	}
	f.date = d
	return nil
}

// SetTime sets the time control from a 24h hh:mm:ss string.
func (f *Form) SetTime(s string) error {
	t, err := time.ParseInLocation(models.TimeLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("parse time %q: %w", s, err)
	}
	f.clock = t
	return nil
}

// Date returns the date control text, or "" when unset.
func (f *Form) Date() string {
	if f.date.IsZero() {
		return ""
	}
	return f.date.Format(models.DateLayout)
}

// Time returns the time control text, or "" when unset.
func (f *Form) Time() string {
	if f.clock.IsZero() {
		return ""
	}
	return f.clock.Format(models.TimeLayout)
}

// SetSlider moves a slider, clamping to its range, and returns the stored value.
func (f *Form) SetSlider(column string, v int) (int, error) {
	field, ok := f.spec.FieldByName(column)
	if !ok {
		return 0, fmt.Errorf("no slider %s in %s", column, f.spec.Category)
	}
	i := f.spec.FieldIndex(field.Column)
	f.sliders[i] = field.Clamp(v)
	f.recompute()
	return f.sliders[i], nil
}

// Nudge moves the slider at position i by delta.
func (f *Form) Nudge(i, delta int) int {
	if i < 0 || i >= len(f.sliders) {
		return 0
	}
	field := f.spec.Fields[i]
	f.sliders[i] = field.Clamp(f.sliders[i] + delta)
	f.recompute()
	return f.sliders[i]
}

// Slider returns the current value of a slider.
func (f *Form) Slider(column string) (int, error) {
	field, ok := f.spec.FieldByName(column)
	if !ok {
		return 0, fmt.Errorf("no slider %s in %s", column, f.spec.Category)
	}
	return f.sliders[f.spec.FieldIndex(field.Column)], nil
}

// Sliders returns the slider values in column order.
func (f *Form) Sliders() []int {
	return append([]int(nil), f.sliders...)
}

// Summary returns the derived value and whether the category has one.
func (f *Form) Summary() (int, bool) {
	return f.summary, f.spec.HasSummary()
}

func (f *Form) recompute() {
	if f.spec.HasSummary() {
		f.summary = models.SumPositive(f.sliders...)
	}
}

// Values returns the slider values keyed by column, for drafts.
func (f *Form) Values() map[string]int {
	out := make(map[string]int, len(f.sliders))
	for i, field := range f.spec.Fields {
		out[field.Column] = f.sliders[i]
	}
	return out
}

// Restore applies a draft. Unknown columns are ignored; values are clamped.
func (f *Form) Restore(values map[string]int) {
	for i, field := range f.spec.Fields {
		if v, ok := values[field.Column]; ok {
			f.sliders[i] = field.Clamp(v)
		}
	}
	f.recompute()
}

// Snapshot reads every control into an entry. Nothing is returned unless
// every control could be read.
func (f *Form) Snapshot() (*models.Entry, error) {
	if f.date.IsZero() {
		return nil, fmt.Errorf("read %s: %w", f.spec.DateColumn, ErrUnset)
	}
	if f.clock.IsZero() {
		return nil, fmt.Errorf("read %s: %w", f.spec.TimeColumn, ErrUnset)
	}
	if len(f.sliders) != len(f.spec.Fields) {
		return nil, fmt.Errorf("read sliders: have %d, want %d", len(f.sliders), len(f.spec.Fields))
	}

	e := &models.Entry{
		Category: f.spec.Category,
		Date:     f.Date(),
		Time:     f.Time(),
		Values:   f.Sliders(),
	}
	if f.spec.HasSummary() {
		sum := f.summary
		e.Summary = &sum
	}
	return e, nil
}

// OnCommitted registers a hook run after each successful commit.
func (f *Form) OnCommitted(fn func(*models.Entry)) {
	f.onCommit = append(f.onCommit, fn)
}

// Commit inserts the current values as one row, then resets the form.
// On failure the form keeps its values.
func (f *Form) Commit(ctx context.Context) (*models.Entry, error) {
	e, err := f.Snapshot()
	if err != nil {
		f.log.Errorw("snapshot failed", "category", f.spec.Category, "error", err)
		return nil, err
	}
	if err := models.ValidateEntry(e); err != nil {
		f.log.Errorw("entry rejected", "category", f.spec.Category, "error", err)
		return nil, err
	}
	if _, err := f.store.Insert(ctx, e); err != nil {
		f.log.Errorw("commit failed", "category", f.spec.Category, "error", err)
		return nil, fmt.Errorf("commit %s: %w", f.spec.Category, err)
	}

	f.log.Infow("entry committed", "category", f.spec.Category, "id", e.ID)
	f.Reset()
	for _, fn := range f.onCommit {
		fn(e)
	}
	return e, nil
}
