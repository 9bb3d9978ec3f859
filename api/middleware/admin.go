package middleware

import (
	"net/http"

	"github.com/angelmondragon/invitation-backend/api/responses"
	"github.com/angelmondragon/invitation-backend/api/validators"
	"github.com/angelmondragon/invitation-backend/internal/admin"
	pkgerrors "github.com/angelmondragon/invitation-backend/pkg/errors"
	"github.com/angelmondragon/invitation-backend/pkg/logger"
)

// AdminToken rejects requests whose token does not match the shared admin
// secret. An empty secret locks the admin surface entirely.
func AdminToken(secret string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !admin.Authorize(validators.AdminToken(r), secret) {
				ctx := r.Context()
				if logg != nil {
					ctx = logg.WithField(ctx, "ip", clientIP(r))
				}
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "admin token mismatch"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
