package eligibility

import (
	"context"
	"strings"

	pkgerrors "github.com/angelmondragon/invitation-backend/pkg/errors"
	"github.com/angelmondragon/invitation-backend/pkg/sheets"
)

// NameSource lists the guests who have answered the RSVP.
type NameSource interface {
	Names(ctx context.Context) ([]string, error)
}

type ServiceParams struct {
	Store sheets.Store
	RSVP  NameSource
}

// Service suggests which RSVP names have not claimed a gift yet. The result
// is informational; claims do not check it.
type Service interface {
	AvailableNames(ctx context.Context) ([]string, error)
}

type service struct {
	store sheets.Store
	rsvp  NameSource
}

func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "eligibility store is required")
	}
	if params.RSVP == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "rsvp name source is required")
	}
	return &service{store: params.Store, rsvp: params.RSVP}, nil
}

// AvailableNames returns RSVP names, in RSVP order, that do not appear as
// a claimant on the Gifts tab. Names are compared exactly.
func (s *service) AvailableNames(ctx context.Context) ([]string, error) {
	names, err := s.rsvp.Names(ctx)
	if err != nil {
		return nil, err
	}
	claimed, err := s.claimedNames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, taken := claimed[name]; taken {
			continue
		}
		out = append(out, name)
	}
	return out, nil
}

func (s *service) claimedNames(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.store.ReadRange(ctx, sheets.GiftClaimedByRange)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, err, "read claimed names")
	}
	claimed := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		name := sheets.Cell(row, 0)
		if strings.TrimSpace(name) == "" {
			continue
		}
		claimed[name] = struct{}{}
	}
	return claimed, nil
}
