package database

import (
	"time"

	"github.com/rhhsscico/motherfucking-ctf/internal/database/models"
	"github.com/rhhsscico/motherfucking-ctf/internal/scoring"
	"gorm.io/gorm"
)

// ScoreboardRow is one rendered scoreboard entry.
type ScoreboardRow struct {
	Rank       int        `json:"rank"`
	Username   string     `json:"username"`
	Score      int        `json:"score"`
	LastSubmit *time.Time `json:"last_submit"`
}

// BuildScoreboard ranks all non-admin users over a consistent snapshot of
// users, challenges and solves. The second return value is the raw ranking,
// for callers that need to look up a specific user's position.
func BuildScoreboard(db *gorm.DB, adminUsername string) ([]ScoreboardRow, []scoring.RankedUser, error) {
	users, err := GetAllUsers(db)
	if err != nil {
		return nil, nil, err
	}
	challenges, err := GetAllChallenges(db)
	if err != nil {
		return nil, nil, err
	}
	solvedByUser, err := SolvedIDsByUser(db)
	if err != nil {
		return nil, nil, err
	}

	lookup := scoring.DatabaseLookup(challenges)
	ranked := scoring.RankUsers(users, adminUsername, func(u *models.User) int {
		return scoring.UserTotalScore(solvedByUser[u.ID], lookup)
	})

	rows := make([]ScoreboardRow, len(ranked))
	for i, entry := range ranked {
		rows[i] = ScoreboardRow{
			Rank:       i + 1,
			Username:   entry.User.Username,
			Score:      entry.Score,
			LastSubmit: entry.User.LastSubmit,
		}
	}
	return rows, ranked, nil
}
