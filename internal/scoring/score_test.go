package scoring

import (
	"testing"

	"github.com/rhhsscico/motherfucking-ctf/internal/database/models"
)

func TestChallengeValue_KnownPoints(t *testing.T) {
	cases := []struct {
		solves int
		want   int
	}{
		{0, 100},
		{1, 100},
		{2, 99},
		{3, 99},
		{4, 98},
		{159, 21},
		{160, 20},
		{161, 20},
		{10000, 20},
	}
	for _, tc := range cases {
		if got := ChallengeValue(tc.solves); got != tc.want {
			t.Fatalf("ChallengeValue(%d) = %d, want %d", tc.solves, got, tc.want)
		}
	}
}

func TestChallengeValue_MonotonicAndBounded(t *testing.T) {
	prev := ChallengeValue(0)
	for solves := 0; solves <= 2000; solves++ {
		got := ChallengeValue(solves)
		if got > prev {
			t.Fatalf("value increased at solves=%d: %d -> %d", solves, prev, got)
		}
		if got < MinScore || got > MaxScore {
			t.Fatalf("ChallengeValue(%d) = %d out of [%d, %d]", solves, got, MinScore, MaxScore)
		}
		prev = got
	}
}

func TestChallengeValue_NegativeSolvesTreatedAsZero(t *testing.T) {
	if got := ChallengeValue(-5); got != MaxScore {
		t.Fatalf("ChallengeValue(-5) = %d, want %d", got, MaxScore)
	}
}

func TestUserTotalScore_SumsCurrentScores(t *testing.T) {
	challenges := []models.Challenge{
		{ID: "a", Score: 100},
		{ID: "b", Score: 75},
		{ID: "c", Score: 20},
	}
	lookup := DatabaseLookup(challenges)

	got := UserTotalScore([]string{"a", "b"}, lookup)
	if got != 175 {
		t.Fatalf("expected total 175, got %d", got)
	}
}

func TestUserTotalScore_SkipsUnresolvableIDs(t *testing.T) {
	challenges := []models.Challenge{
		{ID: "a", Score: 100},
	}
	lookup := DatabaseLookup(challenges)

	got := UserTotalScore([]string{"a", "", "deleted", "also-gone"}, lookup)
	if got != 100 {
		t.Fatalf("expected unresolvable ids to be skipped, got total %d", got)
	}
}

func TestUserTotalScore_ReflectsScoreDecay(t *testing.T) {
	challenges := []models.Challenge{
		{ID: "x", Score: 100},
	}
	before := UserTotalScore([]string{"x"}, DatabaseLookup(challenges))

	// A third party solves challenge x and its stored score drops. The
	// earlier solver's total drops with it.
	challenges[0].Score = 99
	after := UserTotalScore([]string{"x"}, DatabaseLookup(challenges))

	if before != 100 || after != 99 {
		t.Fatalf("expected total to follow stored score 100 -> 99, got %d -> %d", before, after)
	}
}
