package gifts

import (
	"strings"

	"github.com/angelmondragon/invitation-backend/pkg/enums"
	"github.com/angelmondragon/invitation-backend/pkg/sheets"
)

// giftFromRow maps a Gifts!A:K row. Unlimited gifts are always presented
// as available; their status cell is not meaningful.
func giftFromRow(row []string) Gift {
	g := Gift{
		ID:           sheets.Cell(row, sheets.GiftColID),
		Title:        sheets.Cell(row, sheets.GiftColTitle),
		StoreURL:     sheets.Cell(row, sheets.GiftColStoreURL),
		Notes:        sheets.Cell(row, sheets.GiftColNotes),
		Status:       enums.GiftStatusFromCell(sheets.Cell(row, sheets.GiftColStatus)),
		ClaimedBy:    sheets.Cell(row, sheets.GiftColClaimedBy),
		ClaimedPhone: sheets.Cell(row, sheets.GiftColClaimedPhone),
		ClaimedEmail: sheets.Cell(row, sheets.GiftColClaimedEmail),
		ClaimedAt:    sheets.Cell(row, sheets.GiftColClaimedAt),
		ImageURL:     sheets.Cell(row, sheets.GiftColImageURL),
		Kind:         enums.GiftKindFromCell(sheets.Cell(row, sheets.GiftColType)),
	}
	if g.Kind == enums.GiftKindUnlimited {
		g.Status = enums.GiftStatusAvailable
	}
	return g
}

// claimLogRow is the Claims!A:F audit row.
func claimLogRow(stamp string, gift Gift, c Claimant) []string {
	return []string{stamp, gift.ID, gift.Title, c.Name, c.Phone, c.Email}
}

// claimStateRow fills Gifts!E:I when a unique gift is taken.
func claimStateRow(stamp string, c Claimant) []string {
	return []string{string(enums.GiftStatusDisqualified), c.Name, c.Phone, c.Email, stamp}
}

// releasedStateRow fills Gifts!E:I when a unique gift is released.
func releasedStateRow() []string {
	return []string{string(enums.GiftStatusAvailable), "", "", "", ""}
}

func normalizeClaimant(c Claimant) Claimant {
	return Claimant{
		Name:  strings.TrimSpace(c.Name),
		Phone: strings.TrimSpace(c.Phone),
		Email: strings.TrimSpace(c.Email),
	}
}
