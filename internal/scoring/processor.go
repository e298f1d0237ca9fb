package scoring

import (
	"errors"
	"sync"
	"time"

	"github.com/rhhsscico/motherfucking-ctf/internal/database/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Outcome is the user-visible result of a flag submission.
type Outcome string

const (
	WrongFlag     Outcome = "WRONG_FLAG"
	AlreadySolved Outcome = "ALREADY_SOLVED"
	Accepted      Outcome = "ACCEPTED"
)

// Processor applies flag submissions. Submissions targeting the same
// challenge are serialized by a per-challenge mutex so two concurrent correct
// flags cannot both pass the duplicate check and double-count a solve; the
// user row, challenge row and solve row are committed as one transaction.
type Processor struct {
	db *gorm.DB

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewProcessor(db *gorm.DB) *Processor {
	return &Processor{
		db:    db,
		locks: make(map[string]*sync.Mutex),
	}
}

func (p *Processor) challengeLock(challengeID string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	lock, ok := p.locks[challengeID]
	if !ok {
		lock = &sync.Mutex{}
		p.locks[challengeID] = lock
	}
	return lock
}

// Submit checks the submitted flag against the challenge and, on a correct
// first-time solve, records the solve, stamps the user's LastSubmit,
// increments the challenge's solve count and recomputes its score.
// Wrong or duplicate flags leave all state untouched.
func (p *Processor) Submit(userID, challengeID, flag string) (Outcome, error) {
	lock := p.challengeLock(challengeID)
	lock.Lock()
	defer lock.Unlock()

	var outcome Outcome
	err := p.db.Transaction(func(tx *gorm.DB) error {
		var challenge models.Challenge
		if err := tx.Where("id = ?", challengeID).First(&challenge).Error; err != nil {
			return err
		}
		var user models.User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			return err
		}

		if challenge.Flag != flag {
			outcome = WrongFlag
			return nil
		}

		var solved int64
		if err := tx.Model(&models.Solve{}).
			Where("user_id = ? AND challenge_id = ?", user.ID, challenge.ID).
			Count(&solved).Error; err != nil {
			return err
		}
		if solved > 0 {
			outcome = AlreadySolved
			return nil
		}

		now := time.Now().UTC()
		if err := tx.Create(&models.Solve{
			UserID:      user.ID,
			ChallengeID: challenge.ID,
			CreatedAt:   now,
		}).Error; err != nil {
			return err
		}

		user.LastSubmit = &now
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		challenge.Solves++
		challenge.Score = ChallengeValue(challenge.Solves)
		if err := tx.Save(&challenge).Error; err != nil {
			return err
		}

		outcome = Accepted
		return nil
	})
	if err != nil {
		return "", err
	}

	if outcome == Accepted {
		zap.S().Infof("challenge %s solved by user %s", challengeID, userID)
	}
	return outcome, nil
}

// IsNotFound reports whether a Submit error means the user or challenge does
// not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
