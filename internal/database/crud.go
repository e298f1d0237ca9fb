package database

import (
	"errors"
	"time"

	"github.com/rhhsscico/motherfucking-ctf/internal/database/models"
	"gorm.io/gorm"
)

// ErrDuplicateName is returned when creating a challenge whose name is
// already taken.
var ErrDuplicateName = errors.New("there is already a challenge with that name")

// User CRUD
func CreateUser(db *gorm.DB, user *models.User) error {
	return db.Create(user).Error
}

func GetUserByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByGitLabID(db *gorm.DB, gitlabID string) (*models.User, error) {
	var user models.User
	if err := db.Where("git_lab_id = ?", gitlabID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func GetAllUsers(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func UpdateUser(db *gorm.DB, user *models.User) error {
	return db.Save(user).Error
}

func DeleteUser(db *gorm.DB, userID string) error {
	return db.Delete(&models.User{}, "id = ?", userID).Error
}

// Challenge CRUD
func CreateChallenge(db *gorm.DB, challenge *models.Challenge) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Challenge{}).
			Where("name = ?", challenge.Name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateName
		}
		return tx.Create(challenge).Error
	})
}

func GetChallengeByID(db *gorm.DB, id string) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := db.Where("id = ?", id).First(&challenge).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

func GetChallengeByName(db *gorm.DB, name string) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := db.Where("name = ?", name).First(&challenge).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

func GetAllChallenges(db *gorm.DB) ([]models.Challenge, error) {
	var challenges []models.Challenge
	if err := db.Order("category asc, name asc").Find(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}

func UpdateChallenge(db *gorm.DB, challenge *models.Challenge) error {
	return db.Save(challenge).Error
}

func DeleteChallenge(db *gorm.DB, id string) error {
	return db.Delete(&models.Challenge{}, "id = ?", id).Error
}

// Solve queries

// GetSolvedChallengeIDs returns the ids of every challenge the user has an
// accepted flag for, oldest solve first.
func GetSolvedChallengeIDs(db *gorm.DB, userID string) ([]string, error) {
	var ids []string
	if err := db.Model(&models.Solve{}).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Pluck("challenge_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// SolvedIDsByUser loads every solve in one query, keyed by user id. Used by
// the scoreboard so ranking N users does not take N queries.
func SolvedIDsByUser(db *gorm.DB) (map[string][]string, error) {
	var solves []models.Solve
	if err := db.Order("created_at asc").Find(&solves).Error; err != nil {
		return nil, err
	}
	byUser := make(map[string][]string)
	for _, s := range solves {
		byUser[s.UserID] = append(byUser[s.UserID], s.ChallengeID)
	}
	return byUser, nil
}

func HasSolved(db *gorm.DB, userID, challengeID string) (bool, error) {
	var count int64
	err := db.Model(&models.Solve{}).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Count(&count).Error
	return count > 0, err
}

// SolveFeedEntry is one row of the recent-solves feed.
type SolveFeedEntry struct {
	Username      string    `json:"username"`
	ChallengeName string    `json:"challenge_name"`
	Category      string    `json:"category"`
	SolvedAt      time.Time `json:"solved_at"`
}

// GetRecentSolves returns the latest accepted flags across all users,
// newest first.
func GetRecentSolves(db *gorm.DB, limit int) ([]SolveFeedEntry, error) {
	var entries []SolveFeedEntry
	err := db.Table("solves").
		Select("users.username, challenges.name as challenge_name, challenges.category, solves.created_at as solved_at").
		Joins("join users on users.id = solves.user_id").
		Joins("join challenges on challenges.id = solves.challenge_id").
		Order("solves.created_at desc").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
