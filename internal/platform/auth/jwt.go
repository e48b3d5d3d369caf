package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

type ctxKeySessionID struct{}

func SessionIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeySessionID{}).(string)
	return v, ok
}

// WithSessionID injects a session id into context. Useful for testing.
func WithSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, ctxKeySessionID{}, sid)
}

type Claims struct {
	jwt.RegisteredClaims
}

// Signer mints the gateway's own session tokens. The subject is the session
// store key, never the upstream bearer token.
type Signer struct {
	Secret []byte
	TTL    time.Duration
}

func (s Signer) Mint(sessionID string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

type Verifier struct {
	Secret []byte
}

func (v Verifier) Parse(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return v.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// RequireSession middleware validates the Bearer token and injects the
// session id into context. Loading the session itself is the handler's job.
func RequireSession(verifier Verifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid, ok := BearerSessionID(verifier, r)
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), sid)))
		})
	}
}

// BearerSessionID extracts and verifies the Authorization header without
// failing the request. Handlers with optional authentication use this.
func BearerSessionID(verifier Verifier, r *http.Request) (string, bool) {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if authz == "" {
		return "", false
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	claims, err := verifier.Parse(strings.TrimSpace(parts[1]))
	if err != nil || strings.TrimSpace(claims.Subject) == "" {
		return "", false
	}
	return claims.Subject, true
}
