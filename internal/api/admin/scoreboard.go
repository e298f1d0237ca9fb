package admin

import (
	"net/http"

	"github.com/rhhsscico/motherfucking-ctf/internal/database"
	"github.com/rhhsscico/motherfucking-ctf/internal/util"

	"github.com/gin-gonic/gin"
)

func (h *Handler) getScoreboard(c *gin.Context) {
	rows, _, err := database.BuildScoreboard(h.db, h.cfg.Admin.Username)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, rows, "Scoreboard retrieved")
}
