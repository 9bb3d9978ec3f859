package controllers

import (
	"net/http"

	"github.com/angelmondragon/invitation-backend/api/responses"
	"github.com/angelmondragon/invitation-backend/api/validators"
	"github.com/angelmondragon/invitation-backend/internal/eligibility"
	"github.com/angelmondragon/invitation-backend/internal/rsvp"
	pkgerrors "github.com/angelmondragon/invitation-backend/pkg/errors"
	"github.com/angelmondragon/invitation-backend/pkg/logger"
)

const maxNotesLen = 1000

type createRSVPPayload struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Attending  bool   `json:"attending"`
	GuestCount int    `json:"guest_count" validate:"min=0,max=20"`
	Notes      string `json:"notes"`
}

func RSVPCreate(svc rsvp.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rsvp service unavailable"))
			return
		}

		var payload createRSVPPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp := rsvp.Response{
			Name:       validators.SanitizeCell(payload.Name, maxNameLen),
			Phone:      validators.SanitizePhone(payload.Phone, maxPhoneLen),
			Email:      validators.SanitizeCell(payload.Email, maxEmailLen),
			Attending:  payload.Attending,
			GuestCount: payload.GuestCount,
			Notes:      validators.SanitizeCell(payload.Notes, maxNotesLen),
		}
		if err := svc.Add(ctx, resp); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteOK(w)
	}
}

// RSVPNames lists RSVP names that have not claimed a gift yet.
func RSVPNames(svc eligibility.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "eligibility service unavailable"))
			return
		}

		names, err := svc.AvailableNames(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, names)
	}
}
