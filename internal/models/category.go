// ABOUTME: Measurement categories and their table layouts.
// ABOUTME: Describes WEFE, CSPR, and mental-mental sliders, columns, and bounds.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// Category identifies one of the independent measurement logs.
type Category string

const (
	CategoryWEFE         Category = "wefe"
	CategoryCSPR         Category = "cspr"
	CategoryMentalMental Category = "mental_mental"
)

// ErrUnknownCategory is returned when a category name does not match any log.
var ErrUnknownCategory = errors.New("unknown category")

// Slider bounds shared by every measurement.
const (
	SliderMin = 0
	SliderMax = 10
)

// Field is one slider column of a category.
type Field struct {
	Column string
	Label  string
	Min    int
	Max    int
}

// Spec describes how a category is laid out in its table.
type Spec struct {
	Category      Category
	Title         string
	Table         string
	DateColumn    string
	TimeColumn    string
	Fields        []Field
	SummaryColumn string
}

func slider(column, label string) Field {
	return Field{Column: column, Label: label, Min: SliderMin, Max: SliderMax}
}

var specs = map[Category]*Spec{
	CategoryWEFE: {
		Category:   CategoryWEFE,
		Title:      "Wellbeing / Excitement / Focus / Energy",
		Table:      "wefe_table",
		DateColumn: "wefe_date",
		TimeColumn: "wefe_time",
		Fields: []Field{
			slider("wellbeing_slider", "Wellbeing"),
			slider("excite_slider", "Excitement"),
			slider("focus_slider", "Focus"),
			slider("energy_slider", "Energy"),
		},
		SummaryColumn: "summing_box",
	},
	CategoryCSPR: {
		Category:   CategoryCSPR,
		Title:      "Calm / Stress / Pain / Rage",
		Table:      "cspr_table",
		DateColumn: "cspr_date",
		TimeColumn: "cspr_time",
		Fields: []Field{
			slider("calm_slider", "Calm"),
			slider("stress_slider", "Stress"),
			slider("pain_slider", "Pain"),
			slider("rage_slider", "Rage"),
		},
	},
	CategoryMentalMental: {
		Category:   CategoryMentalMental,
		Title:      "Mood / Mania / Depression / Mixed risk",
		Table:      "mental_mental_table",
		DateColumn: "mental_mental_date",
		TimeColumn: "mental_mental_time",
		Fields: []Field{
			slider("mood_slider", "Mood"),
			slider("mania_slider", "Mania"),
			slider("depression_slider", "Depression"),
			slider("mixed_risk_slider", "Mixed risk"),
		},
	},
}

// AllCategories lists the categories in page order.
var AllCategories = []Category{CategoryMentalMental, CategoryWEFE, CategoryCSPR}

// ParseCategory accepts a category name or one of its short aliases.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wefe":
		return CategoryWEFE, nil
	case "cspr":
		return CategoryCSPR, nil
	case "mental_mental", "mental-mental", "mm":
		return CategoryMentalMental, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownCategory, s)
}

// SpecFor returns the layout of a category.
func SpecFor(c Category) (*Spec, error) {
	s, ok := specs[c]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, c)
	}
	return s, nil
}

// MustSpec is SpecFor for the package-defined categories.
func MustSpec(c Category) *Spec {
	s, err := SpecFor(c)
	if err != nil {
		panic(err)
	}
	return s
}

// Columns returns the insertable columns in positional order.
func (s *Spec) Columns() []string {
	cols := make([]string, 0, len(s.Fields)+3)
	cols = append(cols, s.DateColumn, s.TimeColumn)
	for _, f := range s.Fields {
		cols = append(cols, f.Column)
	}
	if s.SummaryColumn != "" {
		cols = append(cols, s.SummaryColumn)
	}
	return cols
}

// HasSummary reports whether the category stores a derived sum.
func (s *Spec) HasSummary() bool {
	return s.SummaryColumn != ""
}

// FieldIndex returns the position of a slider column, or -1.
func (s *Spec) FieldIndex(column string) int {
	for i, f := range s.Fields {
		if f.Column == column {
			return i
		}
	}
	return -1
}

// FieldByName finds a slider by column name or by its short name
// ("wellbeing" for "wellbeing_slider").
func (s *Spec) FieldByName(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Column == name || f.ShortName() == name {
			return f, true
		}
	}
	return Field{}, false
}

// ShortName drops the "_slider" suffix from the column name.
func (f Field) ShortName() string {
	return strings.TrimSuffix(f.Column, "_slider")
}

// Clamp limits v to the slider range.
func (f Field) Clamp(v int) int {
	if v < f.Min {
		return f.Min
	}
	if v > f.Max {
		return f.Max
	}
	return v
}

// SumPositive adds the values that are strictly greater than zero.
// A zero slider counts as "not yet set".
func SumPositive(values ...int) int {
	sum := 0
	for _, v := range values {
		if v > 0 {
			sum += v
		}
	}
	return sum
}
