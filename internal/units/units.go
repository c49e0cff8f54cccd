// Package units converts linear measurements between the units a board
// planner accepts. Every conversion routes through inches.
package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnsupportedUnit is returned when a unit token is not recognized.
var ErrUnsupportedUnit = errors.New("unsupported unit")

// Unit is a canonical unit token.
type Unit string

const (
	Inches      Unit = "in"
	Feet        Unit = "ft"
	Meters      Unit = "m"
	Centimeters Unit = "cm"
)

// Conversion factors to the base unit (inches).
const (
	InchesPerFoot       = 12.0
	InchesPerMeter      = 39.3701
	InchesPerCentimeter = 0.393701
)

// aliases maps every accepted lowercase token to its canonical unit.
var aliases = map[string]Unit{
	"in":          Inches,
	"inches":      Inches,
	`"`:           Inches,
	"ft":          Feet,
	"feet":        Feet,
	"'":           Feet,
	"m":           Meters,
	"meters":      Meters,
	"cm":          Centimeters,
	"centimeters": Centimeters,
}

var factors = map[Unit]float64{
	Inches:      1.0,
	Feet:        InchesPerFoot,
	Meters:      InchesPerMeter,
	Centimeters: InchesPerCentimeter,
}

// UnitInfo describes a unit for selection lists.
type UnitInfo struct {
	Unit        Unit   `json:"unit"`
	DisplayName string `json:"display_name"`
}

// Supported returns the canonical units in display order.
func Supported() []UnitInfo {
	return []UnitInfo{
		{Unit: Inches, DisplayName: "Inches (in)"},
		{Unit: Feet, DisplayName: "Feet (ft)"},
		{Unit: Meters, DisplayName: "Meters (m)"},
		{Unit: Centimeters, DisplayName: "Centimeters (cm)"},
	}
}

// Canonical resolves a unit token (case-insensitive) to its canonical form.
func Canonical(unit string) (Unit, error) {
	u, ok := aliases[strings.ToLower(strings.TrimSpace(unit))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedUnit, unit)
	}
	return u, nil
}

// IsSupported reports whether the token names a known unit.
func IsSupported(unit string) bool {
	_, err := Canonical(unit)
	return err == nil
}

// InchesPer returns how many inches one of the given unit holds.
func InchesPer(unit string) (float64, error) {
	u, err := Canonical(unit)
	if err != nil {
		return 0, err
	}
	return factors[u], nil
}

// ToInches converts value expressed in unit to inches.
func ToInches(value float64, unit string) (float64, error) {
	f, err := InchesPer(unit)
	if err != nil {
		return 0, fmt.Errorf("convert to inches: %w", err)
	}
	return value * f, nil
}

// FromInches converts a length in inches to the target unit.
func FromInches(inches float64, unit string) (float64, error) {
	f, err := InchesPer(unit)
	if err != nil {
		return 0, fmt.Errorf("convert from inches: %w", err)
	}
	return inches / f, nil
}

// Convert converts value between two units.
func Convert(value float64, from, to string) (float64, error) {
	in, err := ToInches(value, from)
	if err != nil {
		return 0, err
	}
	return FromInches(in, to)
}

// FormatFeetAndInches renders a length in inches as "<feet> ft <inches> in",
// with the inches part rounded to two decimals. Negative input renders as zero.
func FormatFeetAndInches(totalInches float64) string {
	if totalInches < 0 || math.IsNaN(totalInches) {
		totalInches = 0
	}
	feet := math.Floor(totalInches / InchesPerFoot)
	rem := math.Round(math.Mod(totalInches, InchesPerFoot)*100) / 100
	if rem >= InchesPerFoot {
		feet++
		rem -= InchesPerFoot
	}
	return fmt.Sprintf("%s ft %s in", formatNumber(feet), formatNumber(rem))
}

// formatNumber prints a float in its shortest exact form ("1", "3.5").
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
