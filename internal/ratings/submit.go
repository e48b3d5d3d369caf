package ratings

import (
	"errors"
	"fmt"
	"math"

	"github.com/example/criticloud/internal/session"
)

// Scale is the authoritative rating scale. Two variants are supported,
// 5-star integer and 10-point half-step, selected by configuration.
type Scale struct {
	Max  float64
	Step float64
}

var (
	FiveStar    = Scale{Max: 5, Step: 1}
	TenHalfStep = Scale{Max: 10, Step: 0.5}
)

// ScaleFor maps the RATING_SCALE config value to a Scale. Defaults to
// five-star for anything unrecognized.
func ScaleFor(max int) Scale {
	if max == 10 {
		return TenHalfStep
	}
	return FiveStar
}

var (
	// ErrNotLoggedIn rejects a submission from an unauthenticated caller.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrNoRating rejects a submission where no star was selected.
	ErrNoRating = errors.New("no rating selected")
)

// OutOfRangeError rejects values outside the active scale.
type OutOfRangeError struct {
	Value float64
	Scale Scale
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("rating %v outside scale 1-%v step %v", e.Value, e.Scale.Max, e.Scale.Step)
}

// ValidateSubmission applies the local preconditions in order: the caller
// must be authenticated, must have selected a rating, and the value must sit
// on the active scale. A violation means zero network calls are made.
func ValidateSubmission(sess *session.Session, value float64, scale Scale) error {
	if sess == nil || sess.User.ID == "" {
		return ErrNotLoggedIn
	}
	if value == 0 {
		return ErrNoRating
	}
	if value < 1 || value > scale.Max {
		return &OutOfRangeError{Value: value, Scale: scale}
	}
	if steps := value / scale.Step; steps != math.Trunc(steps) {
		return &OutOfRangeError{Value: value, Scale: scale}
	}
	return nil
}
