package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	numberRe    = regexp.MustCompile(`-?\d+\.?\d*`)
	shorthandRe = regexp.MustCompile(`^(-?\d[\d,]*\.?\d*)\s*([kKmM]?)$`)
)

// FirstNumber returns the first number found in a string, with commas and
// spaces stripped. Used for coercing raw table cells to stimulation numerics.
func FirstNumber(s string) (float64, bool) {
	cleaned := strings.NewReplacer(",", "", " ", "").Replace(strings.TrimSpace(s))
	m := numberRe.FindString(cleaned)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ExpandShorthand converts shorthand quantities like "1.5k" or "3.2 M" to
// plain numeric strings (1500, 3200000). Plain numbers pass through
// unchanged, so expansion is idempotent. The boolean is false for
// unparseable input.
func ExpandShorthand(s string) (string, bool) {
	m := shorthandRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return s, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return s, false
	}
	switch m[2] {
	case "k", "K":
		v *= 1_000
	case "m", "M":
		v *= 1_000_000
	}
	return formatNumber(v), true
}

// formatNumber renders a float without a trailing ".0" for whole values.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
