package messages

import (
	"context"
	"strings"

	"github.com/angelmondragon/invitation-backend/pkg/clock"
	pkgerrors "github.com/angelmondragon/invitation-backend/pkg/errors"
	"github.com/angelmondragon/invitation-backend/pkg/logger"
	"github.com/angelmondragon/invitation-backend/pkg/sheets"
)

type ServiceParams struct {
	Store  sheets.Store
	Clock  *clock.Clock
	Logger *logger.Logger
}

type Service interface {
	Add(ctx context.Context, msg NewMessage) error
	List(ctx context.Context) ([]Message, error)
}

type service struct {
	store sheets.Store
	clock *clock.Clock
	logg  *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "messages store is required")
	}
	if params.Clock == nil {
		params.Clock = clock.New(nil)
	}
	return &service{store: params.Store, clock: params.Clock, logg: params.Logger}, nil
}

// Add appends [timestamp, name, message].
func (s *service) Add(ctx context.Context, msg NewMessage) error {
	name := strings.TrimSpace(msg.Name)
	body := strings.TrimSpace(msg.Body)
	if name == "" || body == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name and message are required")
	}
	if err := s.store.AppendRow(ctx, sheets.MessagesRange, []string{s.clock.Stamp(), name, body}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, err, "append message")
	}
	if s.logg != nil {
		s.logg.Info(ctx, "message recorded")
	}
	return nil
}

// List returns the guestbook newest first. Blank rows left behind by hand
// edits are skipped.
func (s *service) List(ctx context.Context) ([]Message, error) {
	rows, err := s.store.ReadRange(ctx, sheets.MessagesRange.FromRow(2))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, err, "read messages")
	}
	out := make([]Message, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		if len(row) == 0 {
			continue
		}
		out = append(out, Message{
			Timestamp: sheets.Cell(row, 0),
			Name:      sheets.Cell(row, 1),
			Message:   sheets.Cell(row, 2),
		})
	}
	return out, nil
}
