package upstream

import (
	"errors"
	"fmt"
)

// MediaType discriminates the detail record a Media row points at.
type MediaType string

const (
	MediaTypeMovie  MediaType = "MOVIE"
	MediaTypeSeries MediaType = "SERIES"
	MediaTypeGame   MediaType = "GAME"
)

// ExternalIDType names the third-party catalog an external id comes from.
type ExternalIDType string

const (
	ExternalIDTypeIMDB ExternalIDType = "IMDB_ID"
	ExternalIDTypeIGDB ExternalIDType = "IGDB_ID"
)

// SourceApp marks ratings submitted through this application.
const SourceApp = "APP"

// Media is the generic catalog entry ratings attach to. The id is assigned
// server-side and absent until persisted.
type Media struct {
	ID             string         `json:"id,omitempty"`
	Name           string         `json:"name"`
	PosterURL      string         `json:"posterUrl,omitempty"`
	DetailsType    MediaType      `json:"detailsType"`
	DetailsID      string         `json:"detailsId,omitempty"`
	ExternalIDType ExternalIDType `json:"externalIdType,omitempty"`
	ExternalID     string         `json:"externalId,omitempty"`
}

// Validate enforces the pairing invariant: externalIdType is present iff
// externalId is present.
func (m Media) Validate() error {
	if (m.ExternalID == "") != (m.ExternalIDType == "") {
		return errors.New("externalId and externalIdType must be set together")
	}
	switch m.DetailsType {
	case MediaTypeMovie, MediaTypeSeries, MediaTypeGame:
		return nil
	default:
		return fmt.Errorf("unknown detailsType %q", m.DetailsType)
	}
}

type Movie struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	Year      int    `json:"year,omitempty"`
	Runtime   int    `json:"runtime,omitempty"`
	Director  string `json:"director,omitempty"`
	Plot      string `json:"plot,omitempty"`
	IMDBID    string `json:"imdbId,omitempty"`
	PosterURL string `json:"posterUrl,omitempty"`
}

type Series struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	Seasons   int    `json:"seasons,omitempty"`
	Plot      string `json:"plot,omitempty"`
	IMDBID    string `json:"imdbId,omitempty"`
	PosterURL string `json:"posterUrl,omitempty"`
}

type Game struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	Summary   string `json:"summary,omitempty"`
	IGDBID    string `json:"igdbId,omitempty"`
	PosterURL string `json:"posterUrl,omitempty"`
}

type User struct {
	ID       string `json:"id,omitempty"`
	Nickname string `json:"nickname"`
	// Email is only populated on the session user obtained through auth.
	Email string `json:"email,omitempty"`
}

type Rating struct {
	ID     string  `json:"id,omitempty"`
	User   User    `json:"user"`
	Media  Media   `json:"media"`
	Rating float64 `json:"rating"`
	Source string  `json:"source"`
}

type NewRatingRequest struct {
	MediaID string  `json:"mediaId"`
	Rating  float64 `json:"rating"`
	Source  string  `json:"source"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

// MediaQuery mirrors the GET /media search parameters.
type MediaQuery struct {
	Title    string
	Type     MediaType
	External *bool
	Page     int
	Size     int
}

type MovieQuery struct {
	IMDBID string
	Title  string
}

type SeriesQuery struct {
	IMDBID string
	Title  string
}

type GameQuery struct {
	IGDBID string
	Title  string
}

type RatingQuery struct {
	UserID  string
	MediaID string
}
