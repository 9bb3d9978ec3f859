package models

import "time"

// SheetRow mirrors one spreadsheet row. Cells holds the JSON-encoded cell
// strings starting at column A; Position is the 1-based sheet row.
type SheetRow struct {
	ID        uint      `gorm:"primaryKey"`
	Sheet     string    `gorm:"size:64;not null;uniqueIndex:idx_sheet_rows_sheet_position"`
	Position  int       `gorm:"not null;uniqueIndex:idx_sheet_rows_sheet_position"`
	Cells     string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (SheetRow) TableName() string {
	return "sheet_rows"
}
