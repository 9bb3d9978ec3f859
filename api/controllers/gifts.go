package controllers

import (
	"net/http"

	"github.com/angelmondragon/invitation-backend/api/responses"
	"github.com/angelmondragon/invitation-backend/api/validators"
	"github.com/angelmondragon/invitation-backend/internal/gifts"
	pkgerrors "github.com/angelmondragon/invitation-backend/pkg/errors"
	"github.com/angelmondragon/invitation-backend/pkg/logger"
)

const (
	maxNameLen  = 120
	maxPhoneLen = 40
	maxEmailLen = 254
)

type claimGiftPayload struct {
	GiftID string `json:"gift_id" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Phone  string `json:"phone"`
	Email  string `json:"email" validate:"omitempty,email"`
}

type unclaimGiftPayload struct {
	GiftID string `json:"gift_id" validate:"required"`
}

// GiftList returns every gift in sheet order, taken ones included.
func GiftList(svc gifts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gift service unavailable"))
			return
		}

		list, err := svc.List(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func GiftClaim(svc gifts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gift service unavailable"))
			return
		}

		var payload claimGiftPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		claimant := gifts.Claimant{
			Name:  validators.SanitizeCell(payload.Name, maxNameLen),
			Phone: validators.SanitizePhone(payload.Phone, maxPhoneLen),
			Email: validators.SanitizeCell(payload.Email, maxEmailLen),
		}
		if err := svc.Claim(ctx, payload.GiftID, claimant); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteOK(w)
	}
}

func GiftUnclaim(svc gifts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gift service unavailable"))
			return
		}

		var payload unclaimGiftPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Unclaim(ctx, payload.GiftID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteOK(w)
	}
}
