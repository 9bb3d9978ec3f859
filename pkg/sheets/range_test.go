package sheets

import "testing"

func TestRangeA1(t *testing.T) {
	cases := []struct {
		rng  Range
		want string
	}{
		{GiftsRange, "Gifts!A:K"},
		{GiftsRange.FromRow(2), "Gifts!A2:K"},
		{ClaimsRange, "Claims!A:F"},
		{MessagesRange.FromRow(2), "Messages!A2:C"},
		{RSVPRange, "RSVP!A:G"},
		{GiftClaimedByRange, "Gifts!F2:F"},
		{RSVPNamesRange, "RSVP!B2:B"},
		{AdminRange("Claims"), "Claims!A1:Z"},
	}
	for _, tc := range cases {
		if got := tc.rng.A1(); got != tc.want {
			t.Fatalf("expected %s, got %s", tc.want, got)
		}
	}
}

func TestRangeRowA1(t *testing.T) {
	if got := GiftClaimStateRange.RowA1(7); got != "Gifts!E7:I7" {
		t.Fatalf("unexpected row range %s", got)
	}
	if GiftClaimStateRange.Width() != 5 {
		t.Fatalf("claim state should span 5 columns, got %d", GiftClaimStateRange.Width())
	}
}

func TestColumnIndex(t *testing.T) {
	cases := map[string]int{"A": 0, "e": 4, "K": 10, "Z": 25, "AA": 26, "AB": 27, "1": -1}
	for col, want := range cases {
		if got := ColumnIndex(col); got != want {
			t.Fatalf("ColumnIndex(%q) = %d, want %d", col, got, want)
		}
	}
}

func TestCell(t *testing.T) {
	row := []string{"a", "b"}
	if Cell(row, 1) != "b" || Cell(row, 2) != "" || Cell(row, -1) != "" || Cell(nil, 0) != "" {
		t.Fatal("Cell should tolerate short rows")
	}
}

func TestHeadersMatchRangeWidths(t *testing.T) {
	headers := Headers()
	for _, rng := range []Range{GiftsRange, ClaimsRange, MessagesRange, RSVPRange} {
		if got := len(headers[rng.Sheet]); got != rng.Width() {
			t.Fatalf("%s header has %d columns, range spans %d", rng.Sheet, got, rng.Width())
		}
	}
	seed := SeedRows()
	if len(seed) != 4 || len(seed["Gifts"]) != 1 {
		t.Fatalf("unexpected seed %v", seed)
	}
}
