package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/criticloud/internal/platform/api"
	"github.com/example/criticloud/internal/platform/httpserver"
	"github.com/example/criticloud/internal/ratings"
	"github.com/example/criticloud/internal/resolve"
	"github.com/example/criticloud/internal/upstream"
)

// detailResponse serves the movie/series/game detail pages. The primary
// detail is always present; media, ratings and summary only when the
// resolver correlated a catalog entry.
type detailResponse struct {
	Movie            *upstream.Movie   `json:"movie,omitempty"`
	Series           *upstream.Series  `json:"series,omitempty"`
	Game             *upstream.Game    `json:"game,omitempty"`
	Media            *upstream.Media   `json:"media,omitempty"`
	Ratings          []upstream.Rating `json:"ratings,omitempty"`
	Summary          *ratings.Summary  `json:"summary,omitempty"`
	RatingsAvailable bool              `json:"ratingsAvailable"`
}

func (g *Gateway) ListMovies(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	key := "movies:" + r.URL.RawQuery
	if cached, ok := g.Cache.Get(key); ok {
		api.WriteJSON(w, http.StatusOK, cached)
		return
	}
	items, err := g.Upstream.SearchMovies(r.Context(), upstream.MovieQuery{Title: title})
	if err != nil {
		g.writeUpstreamError(w, r, err)
		return
	}
	out := map[string]any{"items": items}
	g.Cache.Set(key, out)
	api.WriteJSON(w, http.StatusOK, out)
}

func (g *Gateway) ListSeries(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	key := "series:" + r.URL.RawQuery
	if cached, ok := g.Cache.Get(key); ok {
		api.WriteJSON(w, http.StatusOK, cached)
		return
	}
	items, err := g.Upstream.SearchSeries(r.Context(), upstream.SeriesQuery{Title: title})
	if err != nil {
		g.writeUpstreamError(w, r, err)
		return
	}
	out := map[string]any{"items": items}
	g.Cache.Set(key, out)
	api.WriteJSON(w, http.StatusOK, out)
}

func (g *Gateway) ListGames(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	key := "games:" + r.URL.RawQuery
	if cached, ok := g.Cache.Get(key); ok {
		api.WriteJSON(w, http.StatusOK, cached)
		return
	}
	items, err := g.Upstream.SearchGames(r.Context(), upstream.GameQuery{Title: title})
	if err != nil {
		g.writeUpstreamError(w, r, err)
		return
	}
	out := map[string]any{"items": items}
	g.Cache.Set(key, out)
	api.WriteJSON(w, http.StatusOK, out)
}

// CreateMovie registers a movie detail record.
func (g *Gateway) CreateMovie(w http.ResponseWriter, r *http.Request) {
	rid := httpserver.RequestIDFromContext(r.Context())

	var m upstream.Movie
	if !decodeJSON(w, r, rid, &m) {
		return
	}
	if strings.TrimSpace(m.Title) == "" {
		api.BadRequest(w, "MISSING_TITLE", "title is required", rid, nil)
		return
	}

	sess := g.currentSession(r)
	if sess == nil {
		api.Unauthorized(w, "AUTH_REQUIRED", "You must be logged in", rid)
		return
	}

	created, err := g.Upstream.CreateMovie(r.Context(), sess.Token, m)
	if err != nil {
		g.writeUpstreamError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, created)
}

func (g *Gateway) GetMovie(w http.ResponseWriter, r *http.Request) {
	g.detail(w, r, g.Resolver.ResolveMovie)
}

func (g *Gateway) GetSeries(w http.ResponseWriter, r *http.Request) {
	g.detail(w, r, g.Resolver.ResolveSeries)
}

func (g *Gateway) GetGame(w http.ResponseWriter, r *http.Request) {
	g.detail(w, r, g.Resolver.ResolveGame)
}

func (g *Gateway) detail(w http.ResponseWriter, r *http.Request, resolveFn func(context.Context, string) (resolve.Resolution, error)) {
	rid := httpserver.RequestIDFromContext(r.Context())
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		api.BadRequest(w, "MISSING_ID", "id is required", rid, nil)
		return
	}

	res, err := resolveFn(r.Context(), id)
	if err != nil {
		g.writeUpstreamError(w, r, err)
		return
	}

	resp := detailResponse{
		Movie:  res.Movie,
		Series: res.Series,
		Game:   res.Game,
		Media:  res.Media,
	}

	if res.RatingsAvailable() {
		rs, err := g.Upstream.SearchRatings(r.Context(), upstream.RatingQuery{MediaID: res.Media.ID})
		if err != nil {
			// Rating failures downgrade to "ratings unavailable"; the
			// detail itself still renders.
			g.Log.Warn("load ratings", zap.String("media_id", res.Media.ID), zap.Error(err))
		} else {
			userID := ""
			if sess := g.currentSession(r); sess != nil {
				userID = sess.User.ID
			}
			summary := ratings.Summarize(rs, userID)
			resp.Ratings = rs
			resp.Summary = &summary
			resp.RatingsAvailable = true
		}
	}

	api.WriteJSON(w, http.StatusOK, resp)
}
