// Package session holds the upstream credentials of authenticated callers
// behind an injectable store, keyed by gateway-minted session ids.
package session

import (
	"context"

	"github.com/example/criticloud/internal/upstream"
)

// Session carries the upstream bearer token and the authenticated user.
// It is passed explicitly to every collaborator that needs identity.
type Session struct {
	ID    string        `json:"id"`
	Token string        `json:"token"`
	User  upstream.User `json:"user"`
}

// Store persists sessions keyed by session id. Implementations must be safe
// for concurrent use. Load returns ok=false for unknown or expired ids.
type Store interface {
	Save(ctx context.Context, s Session) error
	Load(ctx context.Context, id string) (Session, bool, error)
	Delete(ctx context.Context, id string) error
}
