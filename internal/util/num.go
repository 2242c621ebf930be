package util

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	reNonNumeric = regexp.MustCompile(`[^0-9.\-]`)
	reDigits     = regexp.MustCompile(`^\d+$`)
)

// CoerceNumber parses a raw cell that may carry units, thousands
// separators or a decimal comma ("409.6 kWh", "1,200", "1,5").
// A comma followed by three or more digits is a thousands separator,
// one or two digits make it a decimal comma. Returns nil when no finite
// number remains.
func CoerceNumber(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	switch strings.ToLower(s) {
	case "nan", "none", "null", "-":
		return nil
	}

	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			parts := strings.Split(s, ",")
			if len(parts) == 2 && reDigits.MatchString(parts[1]) && len(parts[1]) < 3 {
				s = strings.ReplaceAll(s, ",", ".")
			} else {
				s = strings.ReplaceAll(s, ",", "")
			}
		}
	}

	cleaned := reNonNumeric.ReplaceAllString(s, "")
	if cleaned == "" || cleaned == "-" || cleaned == "." {
		return nil
	}

	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return nil
	}
	return FloatPtr(parsed)
}

// ColumnLetter converts a 0-based column index to an A1-style letter.
func ColumnLetter(colIdx int) string {
	result := ""
	for colIdx >= 0 {
		result = string(rune('A'+colIdx%26)) + result
		colIdx = colIdx/26 - 1
	}
	return result
}
