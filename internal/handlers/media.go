package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/criticloud/internal/platform/api"
	"github.com/example/criticloud/internal/platform/httpserver"
	"github.com/example/criticloud/internal/ratings"
	"github.com/example/criticloud/internal/upstream"
)

// MediaGroup is one bucket of a type-grouped media listing.
type MediaGroup struct {
	Type  upstream.MediaType `json:"type"`
	Items []upstream.Media   `json:"items"`
}

// GroupByType buckets media by detailsType. Group order follows the first
// appearance of each type and relative order within a group is preserved.
func GroupByType(items []upstream.Media) []MediaGroup {
	var groups []MediaGroup
	index := map[upstream.MediaType]int{}
	for _, m := range items {
		i, ok := index[m.DetailsType]
		if !ok {
			i = len(groups)
			index[m.DetailsType] = i
			groups = append(groups, MediaGroup{Type: m.DetailsType})
		}
		groups[i].Items = append(groups[i].Items, m)
	}
	return groups
}

func (g *Gateway) ListMedia(w http.ResponseWriter, r *http.Request) {
	q := upstream.MediaQuery{
		Title: strings.TrimSpace(r.URL.Query().Get("title")),
		Type:  upstream.MediaType(strings.TrimSpace(r.URL.Query().Get("type"))),
		Page:  parseIntDefault(r.URL.Query().Get("page"), 1),
		Size:  parseIntDefault(r.URL.Query().Get("size"), 20),
	}
	if v := strings.TrimSpace(r.URL.Query().Get("external")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			q.External = &b
		}
	}
	grouped := strings.EqualFold(r.URL.Query().Get("group"), "type")

	key := "media:" + r.URL.RawQuery
	if cached, ok := g.Cache.Get(key); ok {
		api.WriteJSON(w, http.StatusOK, cached)
		return
	}

	items, err := g.Upstream.SearchMedia(r.Context(), q)
	if err != nil {
		g.writeUpstreamError(w, r, err)
		return
	}

	var out any
	if grouped {
		out = map[string]any{"groups": GroupByType(items)}
	} else {
		out = map[string]any{"items": items}
	}
	g.Cache.Set(key, out)
	api.WriteJSON(w, http.StatusOK, out)
}

type mediaDetailResponse struct {
	Media            upstream.Media    `json:"media"`
	Ratings          []upstream.Rating `json:"ratings"`
	Summary          ratings.Summary   `json:"summary"`
	RatingsAvailable bool              `json:"ratingsAvailable"`
}

func (g *Gateway) GetMedia(w http.ResponseWriter, r *http.Request) {
	rid := httpserver.RequestIDFromContext(r.Context())
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		api.BadRequest(w, "MISSING_ID", "id is required", rid, nil)
		return
	}

	media, err := g.Upstream.GetMedia(r.Context(), id)
	if err != nil {
		g.writeUpstreamError(w, r, err)
		return
	}

	resp := mediaDetailResponse{Media: media, Ratings: []upstream.Rating{}}
	rs, err := g.Upstream.SearchRatings(r.Context(), upstream.RatingQuery{MediaID: media.ID})
	if err != nil {
		// Rating load failure never blocks the detail itself.
		g.Log.Warn("load ratings", zap.String("media_id", media.ID), zap.Error(err))
	} else {
		resp.Ratings = rs
		resp.RatingsAvailable = true
	}

	userID := ""
	if sess := g.currentSession(r); sess != nil {
		userID = sess.User.ID
	}
	resp.Summary = ratings.Summarize(resp.Ratings, userID)

	api.WriteJSON(w, http.StatusOK, resp)
}

// CreateMedia registers a catalog entry ratings can attach to. The
// externalId/externalIdType pairing is checked before anything leaves the
// gateway.
func (g *Gateway) CreateMedia(w http.ResponseWriter, r *http.Request) {
	rid := httpserver.RequestIDFromContext(r.Context())

	var m upstream.Media
	if !decodeJSON(w, r, rid, &m) {
		return
	}
	if strings.TrimSpace(m.Name) == "" {
		api.BadRequest(w, "MISSING_NAME", "name is required", rid, nil)
		return
	}
	if err := m.Validate(); err != nil {
		api.BadRequest(w, "INVALID_MEDIA", err.Error(), rid, nil)
		return
	}

	sess := g.currentSession(r)
	if sess == nil {
		api.Unauthorized(w, "AUTH_REQUIRED", "You must be logged in", rid)
		return
	}

	created, err := g.Upstream.CreateMedia(r.Context(), sess.Token, m)
	if err != nil {
		g.writeUpstreamError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, created)
}

type createUserRequest struct {
	Nickname string `json:"nickname"`
}

// CreateUser registers a profile by nickname, the profile page's create flow.
func (g *Gateway) CreateUser(w http.ResponseWriter, r *http.Request) {
	rid := httpserver.RequestIDFromContext(r.Context())

	var req createUserRequest
	if !decodeJSON(w, r, rid, &req) {
		return
	}
	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" {
		api.BadRequest(w, "MISSING_NICKNAME", "nickname is required", rid, nil)
		return
	}

	created, err := g.Upstream.CreateUser(r.Context(), upstream.User{Nickname: nickname})
	if err != nil {
		g.writeUpstreamError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, created)
}

func (g *Gateway) GetUser(w http.ResponseWriter, r *http.Request) {
	rid := httpserver.RequestIDFromContext(r.Context())
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		api.BadRequest(w, "MISSING_ID", "id is required", rid, nil)
		return
	}
	u, err := g.Upstream.GetUser(r.Context(), id)
	if err != nil {
		g.writeUpstreamError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, u)
}

func parseIntDefault(v string, def int) int {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}
