package enums

import (
	"fmt"
	"strings"
)

// SheetTab names the spreadsheet tabs the admin panel may dump.
type SheetTab string

const (
	SheetTabGifts    SheetTab = "Gifts"
	SheetTabRSVP     SheetTab = "RSVP"
	SheetTabMessages SheetTab = "Messages"
)

var validSheetTabs = []SheetTab{
	SheetTabGifts,
	SheetTabRSVP,
	SheetTabMessages,
}

// String implements fmt.Stringer.
func (t SheetTab) String() string {
	return string(t)
}

// IsValid reports whether the value is a known SheetTab.
func (t SheetTab) IsValid() bool {
	for _, candidate := range validSheetTabs {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseSheetTab matches a tab name case-insensitively and returns the
// canonical sheet name ("rsvp" -> "RSVP", "gifts" -> "Gifts").
func ParseSheetTab(value string) (SheetTab, error) {
	trimmed := strings.TrimSpace(value)
	for _, candidate := range validSheetTabs {
		if strings.EqualFold(string(candidate), trimmed) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sheet tab %q", value)
}
