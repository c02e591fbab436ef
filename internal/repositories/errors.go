package repositories

import "errors"

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrStoreError is returned for unexpected row-store errors.
	// It wraps the more specific store/driver error.
	ErrStoreError = errors.New("row store error")
)

// findRowIndex scans data rows for the first one whose idCol cell equals
// idValue and returns its 1-based sheet row index, or 0 when absent.
// Every id lookup goes through this helper: the sheets are small and a
// linear scan keeps parity with the store's lack of indexes.
func findRowIndex(rows [][]string, idCol int, idValue string) int {
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if idCol-1 < len(row) && row[idCol-1] == idValue {
			return i + 1
		}
	}
	return 0
}
