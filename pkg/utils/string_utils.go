package utils

import "strings"

// IsTruthy reports whether a spreadsheet boolean cell holds a true value.
// Sheets store booleans as TRUE/FALSE but manual edits leave 1/yes behind.
func IsTruthy(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRUE", "1", "YES":
		return true
	default:
		return false
	}
}

// FormatBool renders a boolean the way the sheets store it.
func FormatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// PhoneString normalizes a phone cell value. Numeric cells come back as
// floats ("0812345678.0") when a sheet column loses its text format.
func PhoneString(v string) string {
	s := strings.TrimSpace(v)
	s = strings.TrimSuffix(s, ".0")
	return s
}
