package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	GitLabID     *string `gorm:"uniqueIndex" json:"-"`
	Username     string  `gorm:"uniqueIndex" json:"username"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`

	// LastSubmit is the time of the most recent accepted flag, nil if the
	// user has never solved anything.
	LastSubmit *time.Time `json:"last_submit"`

	Solves []Solve `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

type Challenge struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name        string `gorm:"uniqueIndex" json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Flag        string `json:"-"`

	// Score is the current point value, kept in sync with Solves by the
	// submission processor.
	Score  int `json:"score"`
	Solves int `json:"solves"`
}

// Solve records one accepted flag per (user, challenge) pair. The unique
// index makes a double-recorded solve a constraint violation instead of
// something the application has to detect after the fact.
type Solve struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	UserID      string `gorm:"uniqueIndex:idx_user_challenge" json:"user_id"`
	ChallengeID string `gorm:"uniqueIndex:idx_user_challenge" json:"challenge_id"`
}
