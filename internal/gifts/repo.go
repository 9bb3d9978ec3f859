package gifts

import (
	"context"

	"github.com/angelmondragon/invitation-backend/pkg/sheets"
)

// Repository reads and writes the Gifts and Claims tabs.
type Repository struct {
	store sheets.Store
}

func NewRepository(store sheets.Store) *Repository {
	return &Repository{store: store}
}

// List returns every gift row below the header, in sheet order.
func (r *Repository) List(ctx context.Context) ([]Gift, error) {
	rows, err := r.store.ReadRange(ctx, sheets.GiftsRange.FromRow(2))
	if err != nil {
		return nil, err
	}
	out := make([]Gift, 0, len(rows))
	for _, row := range rows {
		out = append(out, giftFromRow(row))
	}
	return out, nil
}

// Find scans the whole tab for id. The row position is re-derived on every
// call because hosts may insert or reorder rows by hand at any time.
func (r *Repository) Find(ctx context.Context, id string) (*located, error) {
	rows, err := r.store.ReadRange(ctx, sheets.GiftsRange)
	if err != nil {
		return nil, err
	}
	// Row 1 is the header; never match it against a gift id.
	for idx := 1; idx < len(rows); idx++ {
		if sheets.Cell(rows[idx], sheets.GiftColID) == id {
			return &located{gift: giftFromRow(rows[idx]), row: idx + 1}, nil
		}
	}
	return nil, nil
}

func (r *Repository) AppendClaim(ctx context.Context, row []string) error {
	return r.store.AppendRow(ctx, sheets.ClaimsRange, row)
}

func (r *Repository) UpdateClaimState(ctx context.Context, row int, values []string) error {
	return r.store.UpdateRange(ctx, sheets.GiftClaimStateRange, row, values)
}
