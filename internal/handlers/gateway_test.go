package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/criticloud/internal/platform/auth"
	"github.com/example/criticloud/internal/ratings"
	"github.com/example/criticloud/internal/resolve"
	"github.com/example/criticloud/internal/session"
	"github.com/example/criticloud/internal/upstream"
)

var testSecret = []byte("test-secret-key-32-bytes-long!!!")

// newTestGateway wires a Gateway against the given fake upstream handler and
// returns a router serving its routes.
func newTestGateway(t *testing.T, upstreamHandler http.Handler) (*Gateway, chi.Router, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(upstreamHandler)
	t.Cleanup(srv.Close)

	client := upstream.New(srv.URL)
	g := &Gateway{
		Upstream: client,
		Resolver: resolve.New(client, zap.NewNop()),
		Sessions: session.NewMemoryStore(time.Hour),
		Signer:   auth.Signer{Secret: testSecret, TTL: time.Hour},
		Verifier: auth.Verifier{Secret: testSecret},
		Scale:    ratings.FiveStar,
		Cache:    NewTTLCache(60),
		Log:      zap.NewNop(),
	}
	r := chi.NewRouter()
	g.Routes(r)
	return g, r, srv
}

// loginAs saves a session for the user and returns the bearer header value.
func loginAs(t *testing.T, g *Gateway, userID, nickname string) string {
	t.Helper()
	sess := session.Session{
		ID:    "sess-" + userID,
		Token: "upstream-token-" + userID,
		User:  upstream.User{ID: userID, Nickname: nickname},
	}
	if err := g.Sessions.Save(context.Background(), sess); err != nil {
		t.Fatalf("save session: %v", err)
	}
	tok, err := g.Signer.Mint(sess.ID)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return "Bearer " + tok
}
