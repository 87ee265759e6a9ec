package engine

import (
	"math"
	"regexp"
	"strings"
)

// Precompiled, package-level regexes, same convention as the teacher's struct.go.
var (
	reValidFieldName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	reEmail          = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	rePhone          = regexp.MustCompile(`^\+?[0-9()\-.\s]{3,16}$`)
)

// IsObject reports whether v is a JSON-like object (map), excluding arrays and nil.
func IsObject(v interface{}) bool {
	if v == nil {
		return false
	}
	_, ok := v.(map[string]interface{})
	return ok
}

// IsString reports whether v is a non-empty, non-whitespace-only string.
func IsString(v interface{}) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}

// IsKey reports whether v is usable as a map/record key: a non-empty string or a number.
func IsKey(v interface{}) bool {
	switch t := v.(type) {
	case string:
		return t != ""
	case int, int32, int64, float32, float64:
		return true
	default:
		return false
	}
}

// IsInteger reports whether v is a finite number with no fractional part.
func IsInteger(v interface{}) bool {
	f, ok := toFloat(v)
	if !ok {
		return false
	}
	return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
}

// IsPositiveInteger reports whether v is a finite integer strictly greater than zero.
func IsPositiveInteger(v interface{}) bool {
	return IsInteger(v) && mustFloat(v) > 0
}

// IsNonNegativeInteger reports whether v is a finite integer >= 0.
func IsNonNegativeInteger(v interface{}) bool {
	return IsInteger(v) && mustFloat(v) >= 0
}

// IsFiniteNumber reports whether v is a number and neither NaN nor +/-Inf.
func IsFiniteNumber(v interface{}) bool {
	f, ok := toFloat(v)
	if !ok {
		return false
	}
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}

func mustFloat(v interface{}) float64 {
	f, _ := toFloat(v)
	return f
}

// isValidFieldName validates bare (single-segment) field/alias identifiers.
func isValidFieldName(name string) bool {
	return name != "" && reValidFieldName.MatchString(name)
}

// isValidEmail is the format check EmailField delegates to beyond plain text validation.
func isValidEmail(s string) bool {
	return reEmail.MatchString(s)
}

// isValidPhone is the format check PhoneField delegates to beyond plain text validation.
func isValidPhone(s string) bool {
	return rePhone.MatchString(s)
}

// isValidLink performs a minimal structural check ("scheme://host") for LinkField.
func isValidLink(s string) bool {
	return strings.Contains(s, "://") && !strings.HasPrefix(s, "://")
}
