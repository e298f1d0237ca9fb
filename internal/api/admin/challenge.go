package admin

import (
	"errors"
	"net/http"

	"github.com/rhhsscico/motherfucking-ctf/internal/database"
	"github.com/rhhsscico/motherfucking-ctf/internal/database/models"
	"github.com/rhhsscico/motherfucking-ctf/internal/scoring"
	"github.com/rhhsscico/motherfucking-ctf/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
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

func (h *Handler) createChallenge(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Category    string `json:"category" binding:"required"`
		Description string `json:"description" binding:"required"`
		Flag        string `json:"flag" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	challenge := models.Challenge{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Flag:        req.Flag,
		Score:       scoring.ChallengeValue(0),
		Solves:      0,
	}

	if err := database.CreateChallenge(h.db, &challenge); err != nil {
		if errors.Is(err, database.ErrDuplicateName) {
			util.Error(c, http.StatusConflict, "There is already a challenge with that name!")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	zap.S().Infof("new challenge created: %s (%s)", challenge.Name, challenge.Category)
	util.Success(c, challenge, "Challenge created")
}

func (h *Handler) updateChallenge(c *gin.Context) {
	challenge, err := database.GetChallengeByName(h.db, c.Param("name"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "challenge not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	var req struct {
		Category    *string `json:"category"`
		Description *string `json:"description"`
		Flag        *string `json:"flag"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	if req.Category != nil {
		challenge.Category = *req.Category
	}
	if req.Description != nil {
		challenge.Description = *req.Description
	}
	if req.Flag != nil {
		challenge.Flag = *req.Flag
	}

	if err := database.UpdateChallenge(h.db, challenge); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, challenge, "Challenge updated")
}

func (h *Handler) deleteChallenge(c *gin.Context) {
	challenge, err := database.GetChallengeByName(h.db, c.Param("name"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "challenge not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	// Existing solve rows keep their challenge id; score summation skips
	// ids that no longer resolve.
	if err := database.DeleteChallenge(h.db, challenge.ID); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, nil, "Challenge deleted")
}
