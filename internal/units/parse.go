package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// suffixOrder lists unit suffixes longest first so "centimeters" wins over "m".
var suffixOrder = []string{
	"centimeters", "inches", "meters", "feet",
	"cm", "in", "ft", "m", `"`, "'",
}

// ParseLength splits a measurement such as "8ft", "96 in", `12"` or "2.4m"
// into its value and canonical unit. A bare number takes defaultUnit.
func ParseLength(s string, defaultUnit string) (float64, Unit, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, "", fmt.Errorf("empty length")
	}
	lower := strings.ToLower(raw)

	unitToken := defaultUnit
	number := lower
	for _, suffix := range suffixOrder {
		if strings.HasSuffix(lower, suffix) {
			unitToken = suffix
			number = strings.TrimSpace(strings.TrimSuffix(lower, suffix))
			break
		}
	}

	u, err := Canonical(unitToken)
	if err != nil {
		return 0, "", err
	}
	v, err := strconv.ParseFloat(number, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, "", fmt.Errorf("invalid length %q", raw)
	}
	return v, u, nil
}
