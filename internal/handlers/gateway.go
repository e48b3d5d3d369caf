// Package handlers is the gateway's HTTP surface: each endpoint corresponds
// to a page of the CritiCloud client, backed by the upstream API.
package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/criticloud/internal/platform/auth"
	"github.com/example/criticloud/internal/ratings"
	"github.com/example/criticloud/internal/resolve"
	"github.com/example/criticloud/internal/session"
	"github.com/example/criticloud/internal/upstream"
)

type Gateway struct {
	Upstream *upstream.Client
	Resolver *resolve.Resolver
	Sessions session.Store
	Signer   auth.Signer
	Verifier auth.Verifier
	Scale    ratings.Scale
	Cache    Cache
	Log      *zap.Logger
}

func (g *Gateway) Routes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/register", g.Register)
		r.Post("/auth/login", g.Login)
		r.Get("/live", g.Live)

		r.Get("/media", g.ListMedia)
		r.Post("/media", g.CreateMedia)
		r.Get("/media/{id}", g.GetMedia)
		r.Get("/movies", g.ListMovies)
		r.Post("/movies", g.CreateMovie)
		r.Get("/movies/{id}", g.GetMovie)
		r.Get("/series", g.ListSeries)
		r.Get("/series/{id}", g.GetSeries)
		r.Get("/games", g.ListGames)
		r.Get("/games/{id}", g.GetGame)

		r.Post("/users", g.CreateUser)
		r.Get("/users/{id}", g.GetUser)
		r.Get("/ratings", g.ListRatings)
		// Handled in-handler rather than by middleware: a missing session
		// must produce the rating-specific message, not a bare 401.
		r.Post("/ratings", g.SubmitRating)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireSession(g.Verifier))
			r.Get("/me", g.Me)
			r.Post("/auth/logout", g.Logout)
		})
	})
}

// currentSession resolves the optional bearer token to a stored session.
// Endpoints that merely personalize their output use this instead of the
// RequireSession middleware.
func (g *Gateway) currentSession(r *http.Request) *session.Session {
	sid, ok := auth.BearerSessionID(g.Verifier, r)
	if !ok {
		return nil
	}
	sess, ok, err := g.Sessions.Load(r.Context(), sid)
	if err != nil || !ok {
		return nil
	}
	return &sess
}

// clearSession drops the caller's stored session, the reaction to an
// upstream 401.
func (g *Gateway) clearSession(ctx context.Context, r *http.Request) {
	sid, ok := auth.BearerSessionID(g.Verifier, r)
	if !ok {
		return
	}
	if err := g.Sessions.Delete(ctx, sid); err != nil {
		g.Log.Warn("clear session", zap.Error(err))
	}
}
