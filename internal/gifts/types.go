package gifts

import "github.com/angelmondragon/invitation-backend/pkg/enums"

// Gift is one registry row as guests see it.
type Gift struct {
	ID           string           `json:"gift_id"`
	Title        string           `json:"title"`
	StoreURL     string           `json:"store_url"`
	Notes        string           `json:"notes"`
	Status       enums.GiftStatus `json:"status"`
	ClaimedBy    string           `json:"claimed_by"`
	ClaimedPhone string           `json:"claimed_phone"`
	ClaimedEmail string           `json:"claimed_email"`
	ClaimedAt    string           `json:"claimed_at"`
	ImageURL     string           `json:"image_url"`
	Kind         enums.GiftKind   `json:"type"`
}

// Claimant is the guest taking a gift. Phone and Email may be blank.
type Claimant struct {
	Name  string
	Phone string
	Email string
}

// located is a gift together with its 1-based sheet row, valid only until
// the next mutation of the sheet.
type located struct {
	gift Gift
	row  int
}
