package scoring

import (
	"errors"
	"sort"

	"github.com/rhhsscico/motherfucking-ctf/internal/database/models"
)

// AdminRank is the sentinel returned by RankOf for the admin account, which
// never appears on the scoreboard.
const AdminRank = -1

// ErrNotRanked is returned when RankOf is asked about a user that is not in
// the ranking. The caller passed a ranking built from a different user set.
var ErrNotRanked = errors.New("user not present in ranking")

// RankedUser is one scoreboard row.
type RankedUser struct {
	User  models.User `json:"user"`
	Score int         `json:"score"`
}

// RankUsers orders every user except adminUsername by total score descending,
// breaking ties by most recent accepted submission first. A user who never
// submitted ranks below any user with the same score who has. When both score
// and submission time are equal the username decides, so the same input
// always yields the same order.
func RankUsers(users []models.User, adminUsername string, totalScore func(user *models.User) int) []RankedUser {
	ranked := make([]RankedUser, 0, len(users))
	for i := range users {
		if users[i].Username == adminUsername {
			continue
		}
		ranked = append(ranked, RankedUser{
			User:  users[i],
			Score: totalScore(&users[i]),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		ti := lastSubmitEpoch(&ranked[i].User)
		tj := lastSubmitEpoch(&ranked[j].User)
		if ti != tj {
			return ti > tj
		}
		return ranked[i].User.Username < ranked[j].User.Username
	})

	return ranked
}

// RankOf returns the 1-based scoreboard position of the named user, or
// AdminRank for the admin account.
func RankOf(username, adminUsername string, ranked []RankedUser) (int, error) {
	if username == adminUsername {
		return AdminRank, nil
	}
	for i := range ranked {
		if ranked[i].User.Username == username {
			return i + 1, nil
		}
	}
	return 0, ErrNotRanked
}

func lastSubmitEpoch(user *models.User) int64 {
	if user.LastSubmit == nil {
		return 0
	}
	return user.LastSubmit.Unix()
}
