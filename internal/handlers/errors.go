package handlers

import (
	"errors"
	"net/http"

	"github.com/example/criticloud/internal/platform/api"
	"github.com/example/criticloud/internal/platform/httpserver"
	"github.com/example/criticloud/internal/upstream"
)

// writeUpstreamError maps upstream failures onto the gateway's error
// taxonomy. A 401 clears the caller's stored credentials before responding;
// that is the one cross-cutting error side effect in the system. Everything
// else is recoverable by a user-initiated retry.
func (g *Gateway) writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	rid := httpserver.RequestIDFromContext(r.Context())
	switch {
	case errors.Is(err, upstream.ErrUnauthorized):
		g.clearSession(r.Context(), r)
		api.Unauthorized(w, "SESSION_EXPIRED", "Your session has expired, please log in again", rid)
	case errors.Is(err, upstream.ErrNotFound):
		api.NotFound(w, "NOT_FOUND", "Not found", rid)
	default:
		api.BadGateway(w, "UPSTREAM_UNAVAILABLE", "Something went wrong, please try again", rid)
	}
}
