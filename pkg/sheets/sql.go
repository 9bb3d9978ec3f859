package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/angelmondragon/invitation-backend/pkg/db"
	"github.com/angelmondragon/invitation-backend/pkg/db/models"
	"gorm.io/gorm"
)

// SQLStore mirrors the spreadsheet layout in a relational table so the site
// can run without Google credentials. It follows the same row contract as
// the Sheets client: positions are 1-based and rows are never deleted.
type SQLStore struct {
	conn *gorm.DB
}

// NewSQLStore migrates the mirror table and seeds empty tabs with headers.
func NewSQLStore(ctx context.Context, conn *gorm.DB, headers map[string][]string) (*SQLStore, error) {
	if conn == nil {
		return nil, errors.New("gorm connection is required")
	}
	if err := conn.WithContext(ctx).AutoMigrate(&models.SheetRow{}); err != nil {
		return nil, fmt.Errorf("migrating sheet_rows: %w", err)
	}
	store := &SQLStore{conn: conn}
	for sheet, header := range headers {
		if err := store.ensureHeader(ctx, sheet, header); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func (s *SQLStore) ensureHeader(ctx context.Context, sheet string, header []string) error {
	var count int64
	if err := s.conn.WithContext(ctx).Model(&models.SheetRow{}).Where("sheet = ?", sheet).Count(&count).Error; err != nil {
		return storeErr("seed", sheet, err)
	}
	if count > 0 {
		return nil
	}
	cells, err := encodeCells(header)
	if err != nil {
		return err
	}
	row := models.SheetRow{Sheet: sheet, Position: 1, Cells: cells}
	return storeErr("seed", sheet, s.conn.WithContext(ctx).Create(&row).Error)
}

func (s *SQLStore) ReadRange(ctx context.Context, rng Range) ([][]string, error) {
	g, err := s.load(s.conn.WithContext(ctx), rng.Sheet)
	if err != nil {
		return nil, storeErr("read", rng.A1(), err)
	}
	return project(g, rng), nil
}

func (s *SQLStore) AppendRow(ctx context.Context, rng Range, row []string) error {
	err := db.WithTx(ctx, s.conn, func(tx *gorm.DB) error {
		g, err := s.load(tx, rng.Sheet)
		if err != nil {
			return err
		}
		position := lastUsedRow(g, rng) + 1
		existing := sheetRowAt(g, position)
		cells, err := encodeCells(place(existing, ColumnIndex(rng.StartCol), row))
		if err != nil {
			return err
		}
		return s.upsert(tx, rng.Sheet, position, cells)
	})
	if db.IsUniqueViolation(err, "") {
		return storeErr("append", rng.A1(), fmt.Errorf("row position taken by a concurrent append: %w", err))
	}
	return storeErr("append", rng.A1(), err)
}

func (s *SQLStore) UpdateRange(ctx context.Context, rng Range, rowIndex int, values []string) error {
	target := rng.RowA1(rowIndex)
	if rowIndex <= 0 {
		return storeErr("update", target, fmt.Errorf("invalid row index %d", rowIndex))
	}
	err := db.WithTx(ctx, s.conn, func(tx *gorm.DB) error {
		var record models.SheetRow
		res := tx.Where("sheet = ? AND position = ?", rng.Sheet, rowIndex).Limit(1).Find(&record)
		if res.Error != nil {
			return res.Error
		}
		var existing []string
		if res.RowsAffected > 0 {
			decoded, err := decodeCells(record.Cells)
			if err != nil {
				return err
			}
			existing = decoded
		}
		cells, err := encodeCells(place(existing, ColumnIndex(rng.StartCol), values))
		if err != nil {
			return err
		}
		return s.upsert(tx, rng.Sheet, rowIndex, cells)
	})
	return storeErr("update", target, err)
}

// Ping checks the underlying connection.
func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLStore) upsert(tx *gorm.DB, sheet string, position int, cells string) error {
	res := tx.Model(&models.SheetRow{}).
		Where("sheet = ? AND position = ?", sheet, position).
		Update("cells", cells)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	return tx.Create(&models.SheetRow{Sheet: sheet, Position: position, Cells: cells}).Error
}

// load rebuilds the sheet as a dense grid; missing positions become empty rows.
func (s *SQLStore) load(conn *gorm.DB, sheet string) ([][]string, error) {
	var records []models.SheetRow
	if err := conn.Where("sheet = ?", sheet).Order("position ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	g := [][]string{}
	for _, record := range records {
		cells, err := decodeCells(record.Cells)
		if err != nil {
			return nil, err
		}
		for len(g) < record.Position-1 {
			g = append(g, nil)
		}
		g = append(g, cells)
	}
	return g, nil
}

func sheetRowAt(g [][]string, position int) []string {
	if position <= 0 || position > len(g) {
		return nil
	}
	return append([]string(nil), g[position-1]...)
}

func encodeCells(cells []string) (string, error) {
	if cells == nil {
		cells = []string{}
	}
	raw, err := json.Marshal(cells)
	if err != nil {
		return "", fmt.Errorf("encoding cells: %w", err)
	}
	return string(raw), nil
}

func decodeCells(raw string) ([]string, error) {
	var cells []string
	if err := json.Unmarshal([]byte(raw), &cells); err != nil {
		return nil, fmt.Errorf("decoding cells: %w", err)
	}
	return cells, nil
}
