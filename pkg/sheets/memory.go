package sheets

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps every tab in process memory. It backs tests and the
// demo driver; it has no persistence.
type MemoryStore struct {
	mu     sync.RWMutex
	sheets map[string][][]string
	failOn map[string]error
}

// NewMemoryStore seeds a store with full rows per sheet (row 1 first).
func NewMemoryStore(seed map[string][][]string) *MemoryStore {
	sheets := make(map[string][][]string, len(seed))
	for name, rows := range seed {
		sheets[name] = cloneRows(rows)
	}
	return &MemoryStore{sheets: sheets, failOn: map[string]error{}}
}

// FailOn makes op ("read", "append" or "update") fail on sheet with err,
// wrapped as a store error. A nil err clears it.
func (m *MemoryStore) FailOn(op, sheet string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := op + ":" + sheet
	if err == nil {
		delete(m.failOn, key)
		return
	}
	m.failOn[key] = err
}

// Rows returns a copy of every row of sheet, row 1 first.
func (m *MemoryStore) Rows(sheet string) [][]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneRows(m.sheets[sheet])
}

func (m *MemoryStore) ReadRange(ctx context.Context, rng Range) ([][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.failure("read", rng); err != nil {
		return nil, err
	}
	return project(m.sheets[rng.Sheet], rng), nil
}

func (m *MemoryStore) AppendRow(ctx context.Context, rng Range, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("append", rng); err != nil {
		return err
	}
	g := m.sheets[rng.Sheet]
	next := lastUsedRow(g, rng)
	for len(g) <= next {
		g = append(g, nil)
	}
	g[next] = place(g[next], ColumnIndex(rng.StartCol), row)
	m.sheets[rng.Sheet] = g
	return nil
}

func (m *MemoryStore) UpdateRange(ctx context.Context, rng Range, rowIndex int, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("update", rng); err != nil {
		return err
	}
	if rowIndex <= 0 {
		return storeErr("update", rng.RowA1(rowIndex), fmt.Errorf("invalid row index %d", rowIndex))
	}
	g := m.sheets[rng.Sheet]
	for len(g) < rowIndex {
		g = append(g, nil)
	}
	g[rowIndex-1] = place(g[rowIndex-1], ColumnIndex(rng.StartCol), values)
	m.sheets[rng.Sheet] = g
	return nil
}

// Ping always succeeds.
func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (m *MemoryStore) failure(op string, rng Range) error {
	if err, ok := m.failOn[op+":"+rng.Sheet]; ok {
		return storeErr(op, rng.A1(), err)
	}
	return nil
}
