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

func (h *Handler) getScoreboard(c *gin.Context) {
	userID := c.GetString("userID")
	user, err := database.GetUserByID(h.db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "user not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	rows, ranked, err := database.BuildScoreboard(h.db, h.cfg.Admin.Username)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	rank, err := scoring.RankOf(user.Username, h.cfg.Admin.Username, ranked)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	util.Success(c, gin.H{
		"scoreboard": rows,
		"rank":       rank,
	}, "Scoreboard retrieved")
}
