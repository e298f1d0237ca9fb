package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/rhhsscico/motherfucking-ctf/internal/database"
	"github.com/rhhsscico/motherfucking-ctf/internal/metrics"
	"github.com/rhhsscico/motherfucking-ctf/internal/pubsub"
	"github.com/rhhsscico/motherfucking-ctf/internal/scoring"
	"github.com/rhhsscico/motherfucking-ctf/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (h *Handler) getAllChallenges(c *gin.Context) {
	challenges, err := database.GetAllChallenges(h.db)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, challenges, "Challenges retrieved")
}

func (h *Handler) getChallenge(c *gin.Context) {
	challenge, err := database.GetChallengeByName(h.db, c.Param("name"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "challenge not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}
	util.Success(c, challenge, "Challenge retrieved")
}

func (h *Handler) getRecentSolves(c *gin.Context) {
	solves, err := database.GetRecentSolves(h.db, 50)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, solves, "Recent solves retrieved")
}

func (h *Handler) submitFlag(c *gin.Context) {
	userID := c.GetString("userID")
	challengeName := c.Param("name")

	var req struct {
		Flag string `json:"flag" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	challenge, err := database.GetChallengeByName(h.db, challengeName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "challenge not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	outcome, err := h.processor.Submit(userID, challenge.ID, req.Flag)
	if err != nil {
		if scoring.IsNotFound(err) {
			util.Error(c, http.StatusNotFound, err)
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	metrics.FlagSubmissions.WithLabelValues(string(outcome)).Inc()

	switch outcome {
	case scoring.WrongFlag:
		util.Success(c, gin.H{"outcome": outcome}, "Wrong Flag!")
	case scoring.AlreadySolved:
		util.Success(c, gin.H{"outcome": outcome}, "Ehi! You can't submit two times the same flag!")
	case scoring.Accepted:
		h.publishSolve(userID, challenge.ID)
		util.Success(c, gin.H{"outcome": outcome}, "Well done, the flag is correct.")
	}
}

// publishSolve pushes an accepted solve onto the live feed. Feed delivery is
// best effort and never fails the submission.
func (h *Handler) publishSolve(userID, challengeID string) {
	user, err := database.GetUserByID(h.db, userID)
	if err != nil {
		return
	}
	challenge, err := database.GetChallengeByID(h.db, challengeID)
	if err != nil {
		return
	}
	h.broker.PublishSolve(pubsub.SolveEvent{
		Username:      user.Username,
		ChallengeName: challenge.Name,
		Category:      challenge.Category,
		Score:         challenge.Score,
		SolvedAt:      time.Now().UTC(),
	})
}
