package admin

import (
	"errors"
	"net/http"

	"github.com/rhhsscico/motherfucking-ctf/internal/auth"
	"github.com/rhhsscico/motherfucking-ctf/internal/database"
	"github.com/rhhsscico/motherfucking-ctf/internal/database/models"
	"github.com/rhhsscico/motherfucking-ctf/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (h *Handler) getAllUsers(c *gin.Context) {
	searchQuery := c.Query("query")
	dbQuery := h.db

	if searchQuery != "" {
		likeQuery := "%" + searchQuery + "%"
		dbQuery = dbQuery.Where("id = ? OR username LIKE ?", searchQuery, likeQuery)
	}

	var users []models.User
	if err := dbQuery.Find(&users).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	util.Success(c, users, "Users retrieved successfully")
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := database.GetUserByID(h.db, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "user not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}
	util.Success(c, user, "User retrieved successfully")
}

func (h *Handler) deleteUser(c *gin.Context) {
	user, err := database.GetUserByID(h.db, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "user not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	if user.Username == h.cfg.Admin.Username {
		util.Error(c, http.StatusForbidden, "cannot delete the admin account")
		return
	}

	if err := database.DeleteUser(h.db, user.ID); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	zap.S().Infof("user deleted by admin: %s", user.Username)
	util.Success(c, nil, "User deleted")
}

func (h *Handler) resetUserPassword(c *gin.Context) {
	user, err := database.GetUserByID(h.db, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "user not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user.PasswordHash = hashedPassword
	if err := database.UpdateUser(h.db, user); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	zap.S().Infof("password reset for user: %s", user.Username)
	util.Success(c, nil, "Password reset")
}
