package user

import (
	"errors"
	"net/http"

	"github.com/rhhsscico/motherfucking-ctf/internal/database"
	"github.com/rhhsscico/motherfucking-ctf/internal/scoring"
	"github.com/rhhsscico/motherfucking-ctf/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (h *Handler) getUserProfile(c *gin.Context) {
	userID := c.GetString("userID")
	user, err := database.GetUserByID(h.db, userID)
	if err != nil {
		util.Error(c, http.StatusNotFound, err)
		return
	}

	score, solvedIDs, err := h.currentScore(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	util.Success(c, gin.H{
		"user":   user,
		"score":  score,
		"solved": solvedIDs,
	}, "ok")
}

func (h *Handler) updateUserProfile(c *gin.Context) {
	userID := c.GetString("userID")
	user, err := database.GetUserByID(h.db, userID)
	if err != nil {
		util.Error(c, http.StatusNotFound, err)
		return
	}

	var reqBody struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&reqBody); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}
	user.Email = reqBody.Email
	if err := database.UpdateUser(h.db, user); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, user, "Profile updated")
}

func (h *Handler) getPublicUserProfile(c *gin.Context) {
	user, err := database.GetUserByUsername(h.db, c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "user not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	score, solvedIDs, err := h.currentScore(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	util.Success(c, gin.H{
		"username":    user.Username,
		"score":       score,
		"solve_count": len(solvedIDs),
		"last_submit": user.LastSubmit,
	}, "User profile retrieved")
}

// currentScore computes a user's total from the currently stored challenge
// scores, so it moves when challenge values decay.
func (h *Handler) currentScore(userID string) (int, []string, error) {
	solvedIDs, err := database.GetSolvedChallengeIDs(h.db, userID)
	if err != nil {
		return 0, nil, err
	}
	challenges, err := database.GetAllChallenges(h.db)
	if err != nil {
		return 0, nil, err
	}
	score := scoring.UserTotalScore(solvedIDs, scoring.DatabaseLookup(challenges))
	return score, solvedIDs, nil
}
