package resource

import (
	"math"
	"strconv"
	"strings"
)

// Draft fields hold raw text so half-typed input never breaks the dialog;
// coercion happens once, at submission.

// ParseDecimal converts draft text to a decimal value, resolving empty or
// unparseable input to zero.
func ParseDecimal(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseInt converts draft text to an integer, resolving empty or unparseable
// input to zero.
func ParseInt(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

// OptionalText maps an empty draft field to nil so the gateway stores NULL
// rather than an empty string.
func OptionalText(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// TextOrEmpty collapses an absent optional into an empty draft field.
func TextOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
