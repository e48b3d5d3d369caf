package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/criticloud/internal/platform/api"
	"github.com/example/criticloud/internal/platform/auth"
	"github.com/example/criticloud/internal/platform/httpserver"
	"github.com/example/criticloud/internal/session"
	"github.com/example/criticloud/internal/upstream"
)

type registerRequest struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string        `json:"token"`
	User  upstream.User `json:"user"`
}

func (g *Gateway) Register(w http.ResponseWriter, r *http.Request) {
	rid := httpserver.RequestIDFromContext(r.Context())

	var req registerRequest
	if !decodeJSON(w, r, rid, &req) {
		return
	}
	if strings.TrimSpace(req.Nickname) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		api.BadRequest(w, "MISSING_FIELDS", "nickname, email and password are required", rid, nil)
		return
	}

	resp, err := g.Upstream.Register(r.Context(), upstream.RegisterRequest{
		Nickname: strings.TrimSpace(req.Nickname),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	})
	if err != nil {
		g.writeUpstreamError(w, r, err)
		return
	}

	out, ok := g.openSession(w, r, rid, resp)
	if !ok {
		return
	}
	api.WriteJSON(w, http.StatusCreated, out)
}

func (g *Gateway) Login(w http.ResponseWriter, r *http.Request) {
	rid := httpserver.RequestIDFromContext(r.Context())

	var req loginRequest
	if !decodeJSON(w, r, rid, &req) {
		return
	}

	resp, err := g.Upstream.Login(r.Context(), upstream.LoginRequest{
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	})
	if err != nil {
		g.writeUpstreamError(w, r, err)
		return
	}

	out, ok := g.openSession(w, r, rid, resp)
	if !ok {
		return
	}
	api.WriteJSON(w, http.StatusOK, out)
}

// openSession stores the upstream credentials under a fresh session id and
// mints the gateway token addressing it.
func (g *Gateway) openSession(w http.ResponseWriter, r *http.Request, rid string, resp upstream.AuthResponse) (authResponse, bool) {
	sess := session.Session{
		ID:    uuid.NewString(),
		Token: resp.Token,
		User:  upstream.User{ID: resp.UserID, Nickname: resp.Nickname, Email: resp.Email},
	}
	if err := g.Sessions.Save(r.Context(), sess); err != nil {
		g.Log.Error("save session", zap.Error(err))
		api.Internal(w, rid)
		return authResponse{}, false
	}
	token, err := g.Signer.Mint(sess.ID)
	if err != nil {
		g.Log.Error("mint session token", zap.Error(err))
		api.Internal(w, rid)
		return authResponse{}, false
	}
	return authResponse{Token: token, User: sess.User}, true
}

func (g *Gateway) Logout(w http.ResponseWriter, r *http.Request) {
	sid, _ := auth.SessionIDFromContext(r.Context())
	if err := g.Sessions.Delete(r.Context(), sid); err != nil {
		g.Log.Warn("delete session", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

func (g *Gateway) Me(w http.ResponseWriter, r *http.Request) {
	rid := httpserver.RequestIDFromContext(r.Context())
	sid, _ := auth.SessionIDFromContext(r.Context())
	sess, ok, err := g.Sessions.Load(r.Context(), sid)
	if err != nil {
		g.Log.Error("load session", zap.Error(err))
		api.Internal(w, rid)
		return
	}
	if !ok {
		api.Unauthorized(w, "SESSION_EXPIRED", "Your session has expired, please log in again", rid)
		return
	}
	api.WriteJSON(w, http.StatusOK, sess.User)
}

func (g *Gateway) Live(w http.ResponseWriter, r *http.Request) {
	body, err := g.Upstream.Live(r.Context())
	if err != nil {
		g.writeUpstreamError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "upstream": body})
}
