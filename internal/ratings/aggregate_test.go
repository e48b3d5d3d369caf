package ratings

import (
	"testing"

	"github.com/example/criticloud/internal/upstream"
)

func rec(id, userID string, value float64) upstream.Rating {
	return upstream.Rating{
		ID:     id,
		User:   upstream.User{ID: userID, Nickname: "u-" + userID},
		Media:  upstream.Media{ID: "media-1", Name: "The Thing", DetailsType: upstream.MediaTypeMovie},
		Rating: value,
		Source: upstream.SourceApp,
	}
}

func TestAverage_Empty(t *testing.T) {
	if got := Average(nil); got != 0 {
		t.Fatalf("expected 0 for empty list, got %v", got)
	}
}

func TestAverage_Mean(t *testing.T) {
	got := Average([]upstream.Rating{rec("r1", "a", 4), rec("r2", "b", 2)})
	if got != 3.0 {
		t.Fatalf("expected 3.0, got %v", got)
	}
}

func TestAverage_RoundsToOneDecimal(t *testing.T) {
	got := Average([]upstream.Rating{rec("r1", "a", 5), rec("r2", "b", 4), rec("r3", "c", 4)})
	if got != 4.3 {
		t.Fatalf("expected 4.3, got %v", got)
	}
}

func TestUserRating_Found(t *testing.T) {
	rs := []upstream.Rating{rec("r1", "a", 4), rec("r2", "b", 2), rec("r3", "c", 5)}
	r, ok := UserRating(rs, "b")
	if !ok {
		t.Fatal("expected a match for user b")
	}
	if r.ID != "r2" {
		t.Fatalf("expected r2, got %q", r.ID)
	}
}

func TestUserRating_None(t *testing.T) {
	rs := []upstream.Rating{rec("r1", "a", 4)}
	if _, ok := UserRating(rs, "z"); ok {
		t.Fatal("expected no match for unknown user")
	}
}

func TestUserRating_Unauthenticated(t *testing.T) {
	rs := []upstream.Rating{rec("r1", "", 4)}
	if _, ok := UserRating(rs, ""); ok {
		t.Fatal("empty user id must never match")
	}
}

func TestUserRating_FirstDuplicateWins(t *testing.T) {
	rs := []upstream.Rating{rec("r1", "a", 4), rec("r2", "a", 1)}
	r, ok := UserRating(rs, "a")
	if !ok || r.ID != "r1" {
		t.Fatalf("expected first record r1 to win, got %+v ok=%v", r, ok)
	}
}

func TestMergeSubmitted_Appends(t *testing.T) {
	existing := []upstream.Rating{rec("r1", "a", 4)}
	out := MergeSubmitted(existing, rec("r2", "b", 5))
	if len(out) != 2 {
		t.Fatalf("expected length 2, got %d", len(out))
	}
	if out[1].ID != "r2" {
		t.Fatalf("expected appended record last, got %q", out[1].ID)
	}
}

func TestMergeSubmitted_ReplacesInPlace(t *testing.T) {
	existing := []upstream.Rating{rec("r1", "a", 4), rec("r2", "b", 2), rec("r3", "c", 5)}
	out := MergeSubmitted(existing, rec("r9", "b", 1))
	if len(out) != 3 {
		t.Fatalf("expected length unchanged at 3, got %d", len(out))
	}
	if out[1].ID != "r9" || out[1].Rating != 1 {
		t.Fatalf("expected replacement at position 1, got %+v", out[1])
	}
	// Input slice untouched.
	if existing[1].ID != "r2" {
		t.Fatalf("input slice was mutated: %+v", existing[1])
	}
}

func TestSummarize(t *testing.T) {
	rs := []upstream.Rating{rec("r1", "a", 4), rec("r2", "b", 2)}
	s := Summarize(rs, "b")
	if s.Count != 2 {
		t.Fatalf("expected count 2, got %d", s.Count)
	}
	if s.Average != 3.0 {
		t.Fatalf("expected average 3.0, got %v", s.Average)
	}
	if s.UserRating == nil || s.UserRating.ID != "r2" {
		t.Fatalf("expected user rating r2, got %+v", s.UserRating)
	}
}

func TestSummarize_Anonymous(t *testing.T) {
	s := Summarize([]upstream.Rating{rec("r1", "a", 4)}, "")
	if s.UserRating != nil {
		t.Fatalf("expected no user rating for anonymous caller, got %+v", s.UserRating)
	}
}
