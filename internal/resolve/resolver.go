// Package resolve decides how to look up a movie, series or game from an
// identifier of unknown provenance and recovers the generic media record
// ratings attach to.
package resolve

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/example/criticloud/internal/upstream"
)

// Narrow views of the upstream client, satisfied by *upstream.Client.
type MovieSource interface {
	SearchMovies(ctx context.Context, q upstream.MovieQuery) ([]upstream.Movie, error)
	GetMovie(ctx context.Context, id string) (upstream.Movie, error)
}

type SeriesSource interface {
	SearchSeries(ctx context.Context, q upstream.SeriesQuery) ([]upstream.Series, error)
	GetSeries(ctx context.Context, id string) (upstream.Series, error)
}

type GameSource interface {
	SearchGames(ctx context.Context, q upstream.GameQuery) ([]upstream.Game, error)
	GetGame(ctx context.Context, id string) (upstream.Game, error)
}

type MediaSource interface {
	SearchMedia(ctx context.Context, q upstream.MediaQuery) ([]upstream.Media, error)
}

type Resolver struct {
	Movies MovieSource
	Series SeriesSource
	Games  GameSource
	Media  MediaSource
	Log    *zap.Logger
}

func New(c *upstream.Client, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{Movies: c, Series: c, Games: c, Media: c, Log: log}
}

// IDKind classifies an identifier as internal or external-catalog shaped.
type IDKind int

const (
	KindInternal IDKind = iota
	KindExternal
)

// ClassifyIMDB recognizes IMDB ids by their tt prefix. Anything else is
// treated as an internal id. IGDB ids are plain numerics and cannot be
// classified by shape; the game path probes instead.
func ClassifyIMDB(id string) IDKind {
	if strings.HasPrefix(id, "tt") {
		return KindExternal
	}
	return KindInternal
}

// Resolution is the tagged result of a lookup: Kind names which detail
// pointer is set. Media is the correlated catalog entry, nil when the
// best-effort correlation found no owner. The detail still renders in that
// case, ratings are simply unavailable.
type Resolution struct {
	Kind   upstream.MediaType
	Movie  *upstream.Movie
	Series *upstream.Series
	Game   *upstream.Game
	Media  *upstream.Media
}

// RatingsAvailable reports whether a media record to attach ratings to was
// found.
func (r Resolution) RatingsAvailable() bool {
	return r.Media != nil && r.Media.ID != ""
}

func (r Resolution) Title() string {
	switch r.Kind {
	case upstream.MediaTypeMovie:
		if r.Movie != nil {
			return r.Movie.Title
		}
	case upstream.MediaTypeSeries:
		if r.Series != nil {
			return r.Series.Title
		}
	case upstream.MediaTypeGame:
		if r.Game != nil {
			return r.Game.Title
		}
	}
	return ""
}
