// ABOUTME: Entry validation using go-playground/validator.
// ABOUTME: Checks date/time layouts and slider bounds before rows are inserted.
package models

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// ErrInvalidEntry wraps every validation failure.
var ErrInvalidEntry = errors.New("invalid entry")

type stamp struct {
	Date string `validate:"required,datetime=2006-01-02"`
	Time string `validate:"required,datetime=15:04:05"`
}

var (
	validatorOnce sync.Once
	validate      *validator.Validate
	translator    ut.Translator
	validatorErr  error
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	v := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}
	return v, trans, nil
}

func getValidator() (*validator.Validate, ut.Translator, error) {
	validatorOnce.Do(func() {
		validate, translator, validatorErr = newValidator()
	})
	return validate, translator, validatorErr
}

// ValidateEntry checks that the entry matches its category layout.
func ValidateEntry(e *Entry) error {
	spec, err := SpecFor(e.Category)
	if err != nil {
		return err
	}
	v, trans, err := getValidator()
	if err != nil {
		return err
	}

	if err := v.Struct(stamp{Date: e.Date, Time: e.Time}); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fe.Translate(trans))
			}
			return fmt.Errorf("%w: %s", ErrInvalidEntry, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	if len(e.Values) != len(spec.Fields) {
		return fmt.Errorf("%w: %s expects %d sliders, got %d",
			ErrInvalidEntry, e.Category, len(spec.Fields), len(e.Values))
	}
	for i, f := range spec.Fields {
		rule := fmt.Sprintf("min=%d,max=%d", f.Min, f.Max)
		if err := v.Var(e.Values[i], rule); err != nil {
			return fmt.Errorf("%w: %s must be between %d and %d, got %d",
				ErrInvalidEntry, f.Label, f.Min, f.Max, e.Values[i])
		}
	}

	// A nil summary is an empty summing_box cell and is kept as is.
	if e.Summary == nil {
		return nil
	}
	if !spec.HasSummary() {
		return fmt.Errorf("%w: %s stores no summary", ErrInvalidEntry, e.Category)
	}
	if want := SumPositive(e.Values...); *e.Summary != want {
		return fmt.Errorf("%w: summary %d does not match sliders (sum %d)", ErrInvalidEntry, *e.Summary, want)
	}
	return nil
}
