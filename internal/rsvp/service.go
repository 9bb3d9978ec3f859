package rsvp

import (
	"context"
	"strconv"
	"strings"

	"github.com/angelmondragon/invitation-backend/pkg/clock"
	pkgerrors "github.com/angelmondragon/invitation-backend/pkg/errors"
	"github.com/angelmondragon/invitation-backend/pkg/logger"
	"github.com/angelmondragon/invitation-backend/pkg/sheets"
)

const (
	attendingYes = "Yes"
	attendingNo  = "No"
)

type ServiceParams struct {
	Store  sheets.Store
	Clock  *clock.Clock
	Logger *logger.Logger
}

// Service appends RSVP rows and lists who has answered.
type Service interface {
	Add(ctx context.Context, resp Response) error
	Names(ctx context.Context) ([]string, error)
}

type service struct {
	store sheets.Store
	clock *clock.Clock
	logg  *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "rsvp store is required")
	}
	if params.Clock == nil {
		params.Clock = clock.New(nil)
	}
	return &service{store: params.Store, clock: params.Clock, logg: params.Logger}, nil
}

// Add appends [timestamp, name, phone, email, Yes|No, guests, notes].
// Repeated submissions by the same guest are kept as separate rows.
func (s *service) Add(ctx context.Context, resp Response) error {
	name := strings.TrimSpace(resp.Name)
	phone := strings.TrimSpace(resp.Phone)
	if name == "" || phone == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name and phone are required")
	}
	if resp.GuestCount < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "guest count cannot be negative")
	}
	attending := attendingNo
	if resp.Attending {
		attending = attendingYes
	}
	row := []string{
		s.clock.Stamp(),
		name,
		phone,
		strings.TrimSpace(resp.Email),
		attending,
		strconv.Itoa(resp.GuestCount),
		strings.TrimSpace(resp.Notes),
	}
	if err := s.store.AppendRow(ctx, sheets.RSVPRange, row); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, err, "append rsvp")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "attending", attending), "rsvp recorded")
	}
	return nil
}

// Names returns every non-blank RSVP name as written, in sheet order.
func (s *service) Names(ctx context.Context) ([]string, error) {
	rows, err := s.store.ReadRange(ctx, sheets.RSVPNamesRange)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, err, "read rsvp names")
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		name := sheets.Cell(row, 0)
		if strings.TrimSpace(name) == "" {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}
