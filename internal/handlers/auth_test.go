package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/criticloud/internal/upstream"
)

func authBackend(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req upstream.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Email != "nick@example.com" || req.Password != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(upstream.AuthResponse{
			Token: "upstream-tok", UserID: "u1", Nickname: "nick", Email: req.Email,
		})
	})
	mux.HandleFunc("/auth/register", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req upstream.RegisterRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(upstream.AuthResponse{
			Token: "upstream-tok", UserID: "u9", Nickname: req.Nickname, Email: req.Email,
		})
	})
	return mux
}

func TestLoginThenMe(t *testing.T) {
	_, r, _ := newTestGateway(t, authBackend(t))

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(`{"email":"nick@example.com","password":"hunter2"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp authResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" || resp.Token == "upstream-tok" {
		t.Fatalf("expected a gateway-minted token, got %q", resp.Token)
	}
	if resp.User.ID != "u1" || resp.User.Email != "nick@example.com" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}

	me := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	me.Header.Set("Authorization", "Bearer "+resp.Token)
	rr2 := httptest.NewRecorder()
	r.ServeHTTP(rr2, me)
	if rr2.Code != http.StatusOK {
		t.Fatalf("expected 200 from /v1/me, got %d: %s", rr2.Code, rr2.Body.String())
	}
	var u upstream.User
	if err := json.NewDecoder(rr2.Body).Decode(&u); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if u.Nickname != "nick" {
		t.Fatalf("expected nickname 'nick', got %q", u.Nickname)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	_, r, _ := newTestGateway(t, authBackend(t))

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(`{"email":"nick@example.com","password":"wrong"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	_, r, _ := newTestGateway(t, authBackend(t))

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader(`{"nickname":"","email":"a@b.c","password":"x"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestLogout_EndsSession(t *testing.T) {
	g, r, _ := newTestGateway(t, authBackend(t))
	authz := loginAs(t, g, "u1", "nick")

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	req.Header.Set("Authorization", authz)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}

	me := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	me.Header.Set("Authorization", authz)
	rr2 := httptest.NewRecorder()
	r.ServeHTTP(rr2, me)
	if rr2.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rr2.Code)
	}
}

func TestMe_NoToken(t *testing.T) {
	_, r, _ := newTestGateway(t, authBackend(t))

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}
