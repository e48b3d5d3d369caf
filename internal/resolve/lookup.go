package resolve

import (
	"context"

	"go.uber.org/zap"

	"github.com/example/criticloud/internal/upstream"
)

// ResolveMovie picks the lookup path by id shape: tt-prefixed ids go through
// the IMDB-filtered search (zero matches is not found), anything else through
// the detail-by-id endpoint. The detail is then correlated to its media
// record.
func (r *Resolver) ResolveMovie(ctx context.Context, id string) (Resolution, error) {
	var movie upstream.Movie
	switch ClassifyIMDB(id) {
	case KindExternal:
		movies, err := r.Movies.SearchMovies(ctx, upstream.MovieQuery{IMDBID: id})
		if err != nil {
			return Resolution{}, err
		}
		if len(movies) == 0 {
			return Resolution{}, upstream.ErrNotFound
		}
		movie = movies[0]
	default:
		m, err := r.Movies.GetMovie(ctx, id)
		if err != nil {
			return Resolution{}, err
		}
		movie = m
	}

	media := r.correlate(ctx, upstream.MediaTypeMovie, movie.Title, movie.IMDBID, movie.ID)
	return Resolution{Kind: upstream.MediaTypeMovie, Movie: &movie, Media: media}, nil
}

// ResolveSeries mirrors the movie path; series share the IMDB id shape.
func (r *Resolver) ResolveSeries(ctx context.Context, id string) (Resolution, error) {
	var series upstream.Series
	switch ClassifyIMDB(id) {
	case KindExternal:
		found, err := r.Series.SearchSeries(ctx, upstream.SeriesQuery{IMDBID: id})
		if err != nil {
			return Resolution{}, err
		}
		if len(found) == 0 {
			return Resolution{}, upstream.ErrNotFound
		}
		series = found[0]
	default:
		s, err := r.Series.GetSeries(ctx, id)
		if err != nil {
			return Resolution{}, err
		}
		series = s
	}

	media := r.correlate(ctx, upstream.MediaTypeSeries, series.Title, series.IMDBID, series.ID)
	return Resolution{Kind: upstream.MediaTypeSeries, Series: &series, Media: media}, nil
}

// ResolveGame cannot classify by shape: IGDB ids are numeric strings
// indistinguishable from internal ids. It always probes the external lookup
// first and falls back to the internal one on error or empty result.
func (r *Resolver) ResolveGame(ctx context.Context, id string) (Resolution, error) {
	var game upstream.Game
	games, err := r.Games.SearchGames(ctx, upstream.GameQuery{IGDBID: id})
	if err != nil || len(games) == 0 {
		if err != nil {
			r.Log.Debug("igdb lookup failed, trying internal id", zap.String("id", id), zap.Error(err))
		}
		g, gerr := r.Games.GetGame(ctx, id)
		if gerr != nil {
			return Resolution{}, gerr
		}
		game = g
	} else {
		game = games[0]
	}

	media := r.correlate(ctx, upstream.MediaTypeGame, game.Title, game.IGDBID, game.ID)
	return Resolution{Kind: upstream.MediaTypeGame, Game: &game, Media: media}, nil
}

// correlate recovers the media record owning a detail via the generic media
// search. Candidates are preferred by external id match, then details id
// match, then exact name match. There is no guaranteed relation here: any
// error or no-match means ratings are unavailable for the page view, never a
// fatal error.
func (r *Resolver) correlate(ctx context.Context, typ upstream.MediaType, title, externalID, detailsID string) *upstream.Media {
	candidates, err := r.Media.SearchMedia(ctx, upstream.MediaQuery{Type: typ, Title: title})
	if err != nil {
		r.Log.Warn("media correlation failed", zap.String("type", string(typ)), zap.String("title", title), zap.Error(err))
		return nil
	}

	if externalID != "" {
		for i := range candidates {
			if candidates[i].ExternalID == externalID {
				return &candidates[i]
			}
		}
	}
	if detailsID != "" {
		for i := range candidates {
			if candidates[i].DetailsID == detailsID {
				return &candidates[i]
			}
		}
	}
	for i := range candidates {
		if candidates[i].Name == title {
			return &candidates[i]
		}
	}
	return nil
}
