package sheets

import (
	"context"
	"errors"
	"fmt"
)

// ErrStoreUnavailable marks any I/O failure against the tabular store.
var ErrStoreUnavailable = errors.New("tabular store unavailable")

// Store is the tabular persistence contract. Rows are returned in sheet
// order as raw cell strings; trailing empty cells may be omitted. Rows are
// never deleted, and there is no stable row id: callers locate a row by
// scanning for its key right before they update it.
type Store interface {
	ReadRange(ctx context.Context, rng Range) ([][]string, error)
	AppendRow(ctx context.Context, rng Range, row []string) error
	// UpdateRange overwrites the cells of rng's columns on the 1-based row.
	UpdateRange(ctx context.Context, rng Range, rowIndex int, values []string) error
}

// Pinger exposes the readiness surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreError wraps a backend failure. It matches ErrStoreUnavailable with
// errors.Is and keeps the backend error reachable with errors.As.
type StoreError struct {
	Op    string
	Range string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("tabular store %s %s: %v", e.Op, e.Range, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

func storeErr(op string, rng string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Range: rng, Err: err}
}

// Cell returns row[idx] or "" when the row is short.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
