package validators

import (
	"net/http"
	"strings"
)

// AdminToken reads the admin secret from ?token= or an
// "Authorization: Bearer" header, the query string taking precedence.
func AdminToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	if token := strings.TrimSpace(r.URL.Query().Get("token")); token != "" {
		return token
	}
	return ParseBearer(r.Header.Get("Authorization"))
}

// ParseBearer strips a case-insensitive "Bearer " prefix. Anything else is
// not a bearer credential and yields "".
func ParseBearer(raw string) string {
	token := strings.TrimSpace(raw)
	if len(token) < 7 || !strings.EqualFold(token[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(token[7:])
}
