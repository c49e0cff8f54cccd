package model

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/piwi3910/BoardCut/internal/units"
)

// ErrInvalidSpec is returned when a board or cut entry cannot be planned.
var ErrInvalidSpec = errors.New("invalid spec")

// MaxPieces bounds the summed quantity of one board or cut list. The
// per-entry Quantity tag uses the same bound.
const MaxPieces = 10000

// SpecError lists every problem found in a board or cut list.
type SpecError struct {
	Problems []string
}

func (e *SpecError) Error() string {
	return ErrInvalidSpec.Error() + ": " + strings.Join(e.Problems, "; ")
}

func (e *SpecError) Unwrap() error {
	return ErrInvalidSpec
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("unit", func(fl validator.FieldLevel) bool {
		return units.IsSupported(fl.Field().String())
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsInf(f, 0) && !math.IsNaN(f)
	})
	return v
}

// ValidateBoards checks that every board has a finite positive length, a
// bounded positive quantity and a supported unit, and that the list as a
// whole stays within MaxPieces.
func ValidateBoards(boards []BoardSpec) error {
	var problems []string
	total := 0
	for i := range boards {
		problems = append(problems, describe(fmt.Sprintf("boards[%d]", i), validate.Struct(boards[i]))...)
		total += countable(boards[i].Quantity)
	}
	return specError(appendTotal(problems, "boards", total))
}

// ValidateCuts checks every desired cut the same way ValidateBoards does.
func ValidateCuts(cuts []CutSpec) error {
	var problems []string
	total := 0
	for i := range cuts {
		problems = append(problems, describe(fmt.Sprintf("cuts[%d]", i), validate.Struct(cuts[i]))...)
		total += countable(cuts[i].Quantity)
	}
	return specError(appendTotal(problems, "cuts", total))
}

// countable ignores quantities already reported per entry.
func countable(q int) int {
	if q <= 0 || q > MaxPieces {
		return 0
	}
	return q
}

func appendTotal(problems []string, list string, total int) []string {
	if total > MaxPieces {
		problems = append(problems, fmt.Sprintf("%s: total quantity %d exceeds %d", list, total, MaxPieces))
	}
	return problems
}

// ValidateSettings rejects negative or non-finite kerf and remnant thresholds.
func ValidateSettings(s PlanSettings) error {
	return specError(describe("settings", validate.Struct(s)))
}

// Validate runs every check for a planning request and reports all problems at once.
func Validate(boards []BoardSpec, cuts []CutSpec, settings PlanSettings) error {
	var problems []string
	for _, err := range []error{ValidateBoards(boards), ValidateCuts(cuts), ValidateSettings(settings)} {
		var se *SpecError
		if errors.As(err, &se) {
			problems = append(problems, se.Problems...)
		}
	}
	return specError(problems)
}

func specError(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return &SpecError{Problems: problems}
}

// describe turns validator output into "prefix.field: reason" lines.
func describe(prefix string, err error) []string {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{fmt.Sprintf("%s: %v", prefix, err)}
	}
	lines := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		lines = append(lines, fmt.Sprintf("%s.%s: %s", prefix, fe.Field(), reason(fe)))
	}
	return lines
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return "must be positive"
	case "gte":
		return "must not be negative"
	case "unit":
		return fmt.Sprintf("unsupported unit %q", fe.Value())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "finite":
		return "must be a finite number"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}

// AssignIDs gives every board and cut with a zero ID a fresh positive ID that
// does not collide with the IDs already present in its list.
func AssignIDs(boards []BoardSpec, cuts []CutSpec) {
	next := 1
	for _, b := range boards {
		if b.ID >= next {
			next = b.ID + 1
		}
	}
	for i := range boards {
		if boards[i].ID == 0 {
			boards[i].ID = next
			next++
		}
	}

	next = 1
	for _, c := range cuts {
		if c.ID >= next {
			next = c.ID + 1
		}
	}
	for i := range cuts {
		if cuts[i].ID == 0 {
			cuts[i].ID = next
			next++
		}
	}
}
