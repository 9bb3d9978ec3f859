package enums

import "strings"

// GiftKind controls whether a registry item can be claimed once or many times.
type GiftKind string

const (
	GiftKindUnique    GiftKind = "unique"
	GiftKindUnlimited GiftKind = "unlimited"
)

// String implements fmt.Stringer.
func (k GiftKind) String() string {
	return string(k)
}

// GiftKindFromCell reads the type column. Only "unlimited" opts out of the
// single-claim rule; blanks and unrecognized values behave as unique.
func GiftKindFromCell(cell string) GiftKind {
	if strings.EqualFold(strings.TrimSpace(cell), string(GiftKindUnlimited)) {
		return GiftKindUnlimited
	}
	return GiftKindUnique
}

// GiftStatus is only meaningful for unique gifts.
type GiftStatus string

const (
	GiftStatusAvailable    GiftStatus = "available"
	GiftStatusClaimed      GiftStatus = "claimed"
	GiftStatusDisqualified GiftStatus = "disqualified"
)

var validGiftStatuses = []GiftStatus{
	GiftStatusAvailable,
	GiftStatusClaimed,
	GiftStatusDisqualified,
}

// String implements fmt.Stringer.
func (s GiftStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known GiftStatus.
func (s GiftStatus) IsValid() bool {
	for _, candidate := range validGiftStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Taken reports whether a unique gift in this status can no longer be claimed.
func (s GiftStatus) Taken() bool {
	return s == GiftStatusClaimed || s == GiftStatusDisqualified
}

// GiftStatusFromCell reads the status column, defaulting blanks to available.
func GiftStatusFromCell(cell string) GiftStatus {
	if cell == "" {
		return GiftStatusAvailable
	}
	return GiftStatus(cell)
}
