package gifts

import (
	"context"
	"strings"

	"github.com/angelmondragon/invitation-backend/pkg/clock"
	"github.com/angelmondragon/invitation-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/invitation-backend/pkg/errors"
	"github.com/angelmondragon/invitation-backend/pkg/logger"
	"github.com/angelmondragon/invitation-backend/pkg/metrics"
)

// ServiceParams groups dependencies for the gift registry.
type ServiceParams struct {
	Repo    *Repository
	Clock   *clock.Clock
	Logger  *logger.Logger
	Metrics *metrics.GiftMetrics
}

// Service exposes the registry operations.
type Service interface {
	List(ctx context.Context) ([]Gift, error)
	Claim(ctx context.Context, giftID string, claimant Claimant) error
	Unclaim(ctx context.Context, giftID string) error
}

type service struct {
	repo    *Repository
	clock   *clock.Clock
	logg    *logger.Logger
	metrics *metrics.GiftMetrics
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "gift repository is required")
	}
	if params.Clock == nil {
		params.Clock = clock.New(nil)
	}
	return &service{
		repo:    params.Repo,
		clock:   params.Clock,
		logg:    params.Logger,
		metrics: params.Metrics,
	}, nil
}

// List returns every gift, taken ones included; the site greys them out.
func (s *service) List(ctx context.Context) ([]Gift, error) {
	gifts, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, err, "list gifts")
	}
	if s.logg != nil {
		for _, g := range gifts {
			if !g.Status.IsValid() {
				s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
					"gift_id": g.ID,
					"status":  string(g.Status),
				}), "unrecognized gift status")
			}
		}
	}
	return gifts, nil
}

// Claim records claimant against giftID. Unique gifts become disqualified;
// unlimited gifts only gain a Claims row. The availability check is
// advisory: two concurrent claims of the same unique gift can both pass it
// and the last update wins.
func (s *service) Claim(ctx context.Context, giftID string, claimant Claimant) error {
	giftID = strings.TrimSpace(giftID)
	claimant = normalizeClaimant(claimant)
	if giftID == "" || claimant.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "gift id and name are required")
	}
	if s.logg != nil {
		ctx = s.logg.WithGiftID(ctx, giftID)
	}

	found, err := s.repo.Find(ctx, giftID)
	if err != nil {
		s.metrics.IncClaim("", metrics.OutcomeError)
		return pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, err, "load gift")
	}
	if found == nil {
		s.metrics.IncClaim("", metrics.OutcomeNotFound)
		return pkgerrors.New(pkgerrors.CodeNotFound, "gift not found")
	}

	kind := found.gift.Kind
	if kind == enums.GiftKindUnique && found.gift.Status.Taken() {
		s.metrics.IncClaim(kind.String(), metrics.OutcomeAlreadyClaimed)
		return pkgerrors.New(pkgerrors.CodeAlreadyClaimed, "gift already taken")
	}

	stamp := s.clock.Stamp()
	if err := s.repo.AppendClaim(ctx, claimLogRow(stamp, found.gift, claimant)); err != nil {
		s.metrics.IncClaimsLogFailure()
		if s.logg != nil {
			s.logg.Error(ctx, "failed to append claims log row", err)
		}
	}

	if kind == enums.GiftKindUnique {
		if err := s.repo.UpdateClaimState(ctx, found.row, claimStateRow(stamp, claimant)); err != nil {
			s.metrics.IncClaim(kind.String(), metrics.OutcomeError)
			return pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, err, "mark gift claimed")
		}
	}

	s.metrics.IncClaim(kind.String(), metrics.OutcomeClaimed)
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "gift_kind", kind.String()), "gift claimed")
	}
	return nil
}

// Unclaim releases a unique gift. It is idempotent and never touches the
// Claims tab; unlimited gifts are left as they are.
func (s *service) Unclaim(ctx context.Context, giftID string) error {
	giftID = strings.TrimSpace(giftID)
	if giftID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "gift id is required")
	}
	if s.logg != nil {
		ctx = s.logg.WithGiftID(ctx, giftID)
	}

	found, err := s.repo.Find(ctx, giftID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, err, "load gift")
	}
	if found == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "gift not found")
	}

	kind := found.gift.Kind
	if kind == enums.GiftKindUnique {
		if err := s.repo.UpdateClaimState(ctx, found.row, releasedStateRow()); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, err, "release gift")
		}
	}

	s.metrics.IncUnclaim(kind.String())
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "gift_kind", kind.String()), "gift released")
	}
	return nil
}
