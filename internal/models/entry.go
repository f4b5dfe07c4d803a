// ABOUTME: Entry row type shared by the three measurement logs.
// ABOUTME: Typed WEFE, CSPR, and mental-mental records map to and from entries.
package models

import (
	"fmt"
	"time"
)

// Date and time layouts stored in the date and time columns.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Entry is one committed measurement row.
type Entry struct {
	ID       int64    `json:"id" yaml:"id"`
	Category Category `json:"category" yaml:"category"`
	Date     string   `json:"date" yaml:"date"`
	Time     string   `json:"time" yaml:"time"`
	Values   []int    `json:"values" yaml:"values"`
	Summary  *int     `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Measurement is a typed set of slider values for one category.
type Measurement interface {
	Category() Category
	Sliders() []int
}

// NewEntry builds an entry stamped with at. The summary is derived for
// categories that store one.
func NewEntry(m Measurement, at time.Time) *Entry {
	e := &Entry{
		Category: m.Category(),
		Date:     at.Format(DateLayout),
		Time:     at.Format(TimeLayout),
		Values:   m.Sliders(),
	}
	if spec, err := SpecFor(e.Category); err == nil && spec.HasSummary() {
		sum := SumPositive(e.Values...)
		e.Summary = &sum
	}
	return e
}

// Args returns the positional insert tuple matching Spec.Columns. A nil
// summary of a category that stores one is written as NULL.
func (e *Entry) Args() []any {
	args := make([]any, 0, len(e.Values)+3)
	args = append(args, e.Date, e.Time)
	for _, v := range e.Values {
		args = append(args, v)
	}
	if e.Summary != nil {
		args = append(args, *e.Summary)
	} else if spec, err := SpecFor(e.Category); err == nil && spec.HasSummary() {
		args = append(args, nil)
	}
	return args
}

// RecordedAt parses the stored date and time in the local zone.
func (e *Entry) RecordedAt() (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, e.Date+" "+e.Time, time.Local)
}

// Value returns the value of a slider column.
func (e *Entry) Value(column string) (int, error) {
	spec, err := SpecFor(e.Category)
	if err != nil {
		return 0, err
	}
	i := spec.FieldIndex(column)
	if i < 0 || i >= len(e.Values) {
		return 0, fmt.Errorf("no column %s in %s entry", column, e.Category)
	}
	return e.Values[i], nil
}

// WEFE is a wellbeing/excitement/focus/energy measurement.
type WEFE struct {
	Wellbeing int `json:"wellbeing"`
	Excite    int `json:"excite"`
	Focus     int `json:"focus"`
	Energy    int `json:"energy"`
}

func (WEFE) Category() Category { return CategoryWEFE }

func (w WEFE) Sliders() []int {
	return []int{w.Wellbeing, w.Excite, w.Focus, w.Energy}
}

// Sum is the derived summary shown next to the sliders.
func (w WEFE) Sum() int {
	return SumPositive(w.Sliders()...)
}

// CSPR is a calm/stress/pain/rage measurement.
type CSPR struct {
	Calm   int `json:"calm"`
	Stress int `json:"stress"`
	Pain   int `json:"pain"`
	Rage   int `json:"rage"`
}

func (CSPR) Category() Category { return CategoryCSPR }

func (c CSPR) Sliders() []int {
	return []int{c.Calm, c.Stress, c.Pain, c.Rage}
}

// MentalMental is a mood/mania/depression/mixed-risk measurement.
type MentalMental struct {
	Mood       int `json:"mood"`
	Mania      int `json:"mania"`
	Depression int `json:"depression"`
	MixedRisk  int `json:"mixed_risk"`
}

func (MentalMental) Category() Category { return CategoryMentalMental }

func (m MentalMental) Sliders() []int {
	return []int{m.Mood, m.Mania, m.Depression, m.MixedRisk}
}

func fourValues(e *Entry, want Category) ([4]int, error) {
	var v [4]int
	if e.Category != want {
		return v, fmt.Errorf("entry is %s, not %s", e.Category, want)
	}
	if len(e.Values) != 4 {
		return v, fmt.Errorf("%s entry has %d values, want 4", want, len(e.Values))
	}
	copy(v[:], e.Values)
	return v, nil
}

// WEFEFromEntry maps a stored row back to its typed record.
func WEFEFromEntry(e *Entry) (WEFE, error) {
	v, err := fourValues(e, CategoryWEFE)
	if err != nil {
		return WEFE{}, err
	}
	return WEFE{Wellbeing: v[0], Excite: v[1], Focus: v[2], Energy: v[3]}, nil
}

// CSPRFromEntry maps a stored row back to its typed record.
func CSPRFromEntry(e *Entry) (CSPR, error) {
	v, err := fourValues(e, CategoryCSPR)
	if err != nil {
		return CSPR{}, err
	}
	return CSPR{Calm: v[0], Stress: v[1], Pain: v[2], Rage: v[3]}, nil
}

// MentalMentalFromEntry maps a stored row back to its typed record.
func MentalMentalFromEntry(e *Entry) (MentalMental, error) {
	v, err := fourValues(e, CategoryMentalMental)
	if err != nil {
		return MentalMental{}, err
	}
	return MentalMental{Mood: v[0], Mania: v[1], Depression: v[2], MixedRisk: v[3]}, nil
}
