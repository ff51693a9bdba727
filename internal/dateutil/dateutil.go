// Package dateutil resolves footer date values, including the "auto"
// syntax that formats the current date from a user-friendly pattern.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength caps format strings; anything longer is rejected.
const MaxDateFormatLength = 50

// DefaultDateFormat applies when "auto" carries no explicit format.
const DefaultDateFormat = "YYYY-MM-DD"

// autoPrefix marks a date value as computed rather than literal.
const autoPrefix = "auto"

// dateTokens pairs user-facing tokens with Go reference-time layouts,
// longest token first so greedy matching never truncates YYYY into YY.
var dateTokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets names common formats usable as "auto:<preset>".
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// ParseDateFormat translates a token pattern (YYYY, YY, MMMM, MMM, MM, M,
// DD, D) into a Go time layout. Text inside square brackets passes through
// untouched, so [Date] renders the literal word; any other non-token
// character is kept as-is. Empty, oversized, or unclosed-bracket formats
// return ErrInvalidDateFormat.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var layout strings.Builder
	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			layout.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}
		if tok := matchToken(format[i:]); tok >= 0 {
			layout.WriteString(dateTokens[tok].layout)
			i += len(dateTokens[tok].token)
			continue
		}
		layout.WriteByte(format[i])
		i++
	}
	return layout.String(), nil
}

// matchToken returns the index of the longest token prefixing s, or -1.
func matchToken(s string) int {
	for i, t := range dateTokens {
		if strings.HasPrefix(s, t.token) {
			return i
		}
	}
	return -1
}

// ResolveDate expands the "auto" syntax of a footer date value:
//
//	"auto"          current date as YYYY-MM-DD
//	"auto:FORMAT"   current date in a custom token format
//	"auto:<preset>" current date via a named preset (iso, european, us, long)
//
// Any value not starting with "auto" is returned verbatim. The time
// parameter supplies "current" so callers and tests control the clock.
func ResolveDate(value string, t time.Time) (string, error) {
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, autoPrefix) {
		return value, nil
	}

	format := DefaultDateFormat
	if lower != autoPrefix {
		if !strings.HasPrefix(lower, autoPrefix+":") {
			return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
		}
		// Keep the original casing: tokens are case-sensitive, only the
		// preset lookup is not.
		format = value[len(autoPrefix)+1:]
		if format == "" {
			return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
		}
		if preset, ok := DatePresets[strings.ToLower(format)]; ok {
			format = preset
		}
	}

	layout, err := ParseDateFormat(format)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}
