package rowstore

import (
	"context"
	"sync"
)

// Memory is an in-process Store used by tests and local development.
// It applies the same 1-based, header-first addressing as the real store.
type Memory struct {
	mu     sync.RWMutex
	sheets map[string][][]string
}

// NewMemory creates a Memory store seeded with the header row of every
// known sheet.
func NewMemory() *Memory {
	sheets := make(map[string][][]string, len(SheetHeaders))
	for name, headers := range SheetHeaders {
		h := make([]string, len(headers))
		copy(h, headers)
		sheets[name] = [][]string{h}
	}
	return &Memory{sheets: sheets}
}

func (m *Memory) ListRows(_ context.Context, sheet string) ([][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows, ok := m.sheets[sheet]
	if !ok {
		return nil, ErrSheetNotFound
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		c := make([]string, len(row))
		copy(c, row)
		out[i] = c
	}
	return out, nil
}

func (m *Memory) AppendRow(_ context.Context, sheet string, cells []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows, ok := m.sheets[sheet]
	if !ok {
		return ErrSheetNotFound
	}
	row := make([]string, len(cells))
	copy(row, cells)
	m.sheets[sheet] = append(rows, row)
	return nil
}

func (m *Memory) UpdateCell(_ context.Context, sheet string, row, col int, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows, ok := m.sheets[sheet]
	if !ok {
		return ErrSheetNotFound
	}
	if row < 2 || row > len(rows) {
		return ErrRowOutOfRange
	}
	if col < 1 {
		return ErrRowOutOfRange
	}
	target := rows[row-1]
	for len(target) < col {
		target = append(target, "")
	}
	target[col-1] = value
	rows[row-1] = target
	return nil
}

func (m *Memory) DeleteRow(_ context.Context, sheet string, row int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows, ok := m.sheets[sheet]
	if !ok {
		return ErrSheetNotFound
	}
	if row < 2 || row > len(rows) {
		return ErrRowOutOfRange
	}
	m.sheets[sheet] = append(rows[:row-1], rows[row:]...)
	return nil
}
