package scoring

import (
	"github.com/rhhsscico/motherfucking-ctf/internal/database/models"
)

// Dynamic scoring constants. A challenge starts at MaxScore and loses one
// point for every RateScore solves, floored at MinScore.
const (
	MaxScore  = 100
	MinScore  = 20
	RateScore = 2
)

// ChallengeValue returns the point value of a challenge with the given solve
// count. The first RateScore solvers earn the full MaxScore.
func ChallengeValue(solves int) int {
	if solves < 0 {
		solves = 0
	}
	value := MaxScore - solves/RateScore
	if value < MinScore {
		return MinScore
	}
	return value
}

// ChallengeLookup resolves a challenge id to its current state. The second
// return value is false when the id does not resolve.
type ChallengeLookup func(id string) (*models.Challenge, bool)

// UserTotalScore sums the currently stored score of every resolvable
// challenge in solvedIDs. Empty or unresolvable ids are skipped, so a solve
// pointing at a deleted challenge simply stops counting.
//
// Because the stored score decays as more users solve a challenge, a user's
// total drops retroactively when latecomers solve the same challenges. That
// is intentional: points reflect the challenge's current difficulty rating.
func UserTotalScore(solvedIDs []string, lookup ChallengeLookup) int {
	total := 0
	for _, id := range solvedIDs {
		if id == "" {
			continue
		}
		challenge, ok := lookup(id)
		if !ok {
			continue
		}
		total += challenge.Score
	}
	return total
}

// DatabaseLookup builds a ChallengeLookup over a snapshot of challenges.
func DatabaseLookup(challenges []models.Challenge) ChallengeLookup {
	byID := make(map[string]*models.Challenge, len(challenges))
	for i := range challenges {
		byID[challenges[i].ID] = &challenges[i]
	}
	return func(id string) (*models.Challenge, bool) {
		challenge, ok := byID[id]
		return challenge, ok
	}
}
