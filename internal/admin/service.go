package admin

import (
	"context"
	"crypto/subtle"

	"github.com/angelmondragon/invitation-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/invitation-backend/pkg/errors"
	"github.com/angelmondragon/invitation-backend/pkg/logger"
	"github.com/angelmondragon/invitation-backend/pkg/sheets"
)

type ServiceParams struct {
	Store  sheets.Store
	Logger *logger.Logger
}

// Service dumps whole tabs for the hosts' admin panel.
type Service interface {
	RawTab(ctx context.Context, tab string) ([][]string, error)
}

type service struct {
	store sheets.Store
	logg  *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "admin store is required")
	}
	return &service{store: params.Store, logg: params.Logger}, nil
}

// RawTab returns the tab's cells verbatim, header row included. The tab
// name is matched case-insensitively against the known tabs.
func (s *service) RawTab(ctx context.Context, tab string) ([][]string, error) {
	sheetTab, err := enums.ParseSheetTab(tab)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInvalidTab, err, "invalid tab").
			WithDetails(map[string]any{"tab": tab})
	}
	if s.logg != nil {
		ctx = s.logg.WithTab(ctx, sheetTab.String())
	}
	rows, err := s.store.ReadRange(ctx, sheets.AdminRange(sheetTab.String()))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, err, "read tab")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "rows", len(rows)), "admin tab dumped")
	}
	return rows, nil
}

// Authorize compares the provided token with the shared admin secret. An
// unset secret never authorizes.
func Authorize(provided, secret string) bool {
	if secret == "" || provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) == 1
}
