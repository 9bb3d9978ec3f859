package controllers

import (
	"net/http"

	"github.com/angelmondragon/invitation-backend/api/responses"
	"github.com/angelmondragon/invitation-backend/api/validators"
	"github.com/angelmondragon/invitation-backend/internal/messages"
	pkgerrors "github.com/angelmondragon/invitation-backend/pkg/errors"
	"github.com/angelmondragon/invitation-backend/pkg/logger"
)

const maxMessageLen = 2000

type createMessagePayload struct {
	Name    string `json:"name" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// MessageList returns the guestbook, newest first.
func MessageList(svc messages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "messages service unavailable"))
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

func MessageCreate(svc messages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "messages service unavailable"))
			return
		}

		var payload createMessagePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		msg := messages.NewMessage{
			Name: validators.SanitizeCell(payload.Name, maxNameLen),
			Body: validators.SanitizeCell(payload.Message, maxMessageLen),
		}
		if err := svc.Add(ctx, msg); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteOK(w)
	}
}
