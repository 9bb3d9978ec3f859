package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/invitation-backend/api/responses"
	"github.com/angelmondragon/invitation-backend/internal/admin"
	pkgerrors "github.com/angelmondragon/invitation-backend/pkg/errors"
	"github.com/angelmondragon/invitation-backend/pkg/logger"
)

// AdminRawTab dumps one tab verbatim. Token checks happen in
// middleware.AdminToken before this handler runs.
func AdminRawTab(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		rows, err := svc.RawTab(ctx, chi.URLParam(r, "tab"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
