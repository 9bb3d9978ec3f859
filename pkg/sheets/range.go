package sheets

import (
	"fmt"
	"strings"
)

// Range addresses a block of columns on one tab, optionally starting at a
// given 1-based row. A zero StartRow renders whole columns ("Gifts!A:K").
type Range struct {
	Sheet    string
	StartCol string
	EndCol   string
	StartRow int
}

// A1 renders the range in spreadsheet A1 notation.
func (r Range) A1() string {
	if r.StartRow <= 0 {
		return fmt.Sprintf("%s!%s:%s", r.Sheet, r.StartCol, r.EndCol)
	}
	return fmt.Sprintf("%s!%s%d:%s", r.Sheet, r.StartCol, r.StartRow, r.EndCol)
}

func (r Range) String() string {
	return r.A1()
}

// FromRow returns the same columns starting at row.
func (r Range) FromRow(row int) Range {
	r.StartRow = row
	return r
}

// Columns narrows the range to the given column span.
func (r Range) Columns(start, end string) Range {
	r.StartCol = start
	r.EndCol = end
	return r
}

// Width is the number of columns the range spans.
func (r Range) Width() int {
	return ColumnIndex(r.EndCol) - ColumnIndex(r.StartCol) + 1
}

// RowA1 renders a single-row span, used for in-place updates ("Gifts!E7:I7").
func (r Range) RowA1(row int) string {
	return fmt.Sprintf("%s!%s%d:%s%d", r.Sheet, r.StartCol, row, r.EndCol, row)
}

// ColumnIndex converts a column letter to a zero-based index ("A" -> 0, "AA" -> 26).
func ColumnIndex(col string) int {
	idx := 0
	for _, ch := range strings.ToUpper(strings.TrimSpace(col)) {
		if ch < 'A' || ch > 'Z' {
			return -1
		}
		idx = idx*26 + int(ch-'A'+1)
	}
	return idx - 1
}

// Layout of the shared spreadsheet. Column order is part of the contract
// with whoever edits the sheet by hand and must not change.
var (
	GiftsRange    = Range{Sheet: "Gifts", StartCol: "A", EndCol: "K"}
	ClaimsRange   = Range{Sheet: "Claims", StartCol: "A", EndCol: "F"}
	MessagesRange = Range{Sheet: "Messages", StartCol: "A", EndCol: "C"}
	RSVPRange     = Range{Sheet: "RSVP", StartCol: "A", EndCol: "G"}
)

// Gifts!A:K
const (
	GiftColID = iota
	GiftColTitle
	GiftColStoreURL
	GiftColNotes
	GiftColStatus
	GiftColClaimedBy
	GiftColClaimedPhone
	GiftColClaimedEmail
	GiftColClaimedAt
	GiftColImageURL
	GiftColType
)

// Gifts!E:I holds the mutable claim state of a gift row.
var GiftClaimStateRange = GiftsRange.Columns("E", "I")

// GiftClaimedByRange is the claimant name column, header excluded.
var GiftClaimedByRange = GiftsRange.Columns("F", "F").FromRow(2)

// RSVPNamesRange is the RSVP name column, header excluded.
var RSVPNamesRange = RSVPRange.Columns("B", "B").FromRow(2)

// AdminRange is the raw dump span used by the admin panel, header included.
func AdminRange(tab string) Range {
	return Range{Sheet: tab, StartCol: "A", EndCol: "Z", StartRow: 1}
}

// Headers returns the row-1 header of every tab, used to seed stores that
// start empty.
func Headers() map[string][]string {
	return map[string][]string{
		GiftsRange.Sheet: {
			"gift_id", "title", "store_url", "notes", "status", "claimed_by",
			"claimed_phone", "claimed_email", "claimed_at", "image_url", "type",
		},
		ClaimsRange.Sheet:   {"timestamp", "gift_id", "gift_title", "name", "phone", "email"},
		MessagesRange.Sheet: {"timestamp", "name", "message"},
		RSVPRange.Sheet:     {"timestamp", "name", "phone", "email", "attending", "guest_count", "notes"},
	}
}

// SeedRows wraps Headers in the shape NewMemoryStore expects.
func SeedRows() map[string][][]string {
	seed := map[string][][]string{}
	for sheet, header := range Headers() {
		seed[sheet] = [][]string{header}
	}
	return seed
}
