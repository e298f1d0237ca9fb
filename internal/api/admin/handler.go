package admin

import (
	"github.com/rhhsscico/motherfucking-ctf/internal/config"
	"gorm.io/gorm"
)

// Handler holds all dependencies for the admin API handlers.
type Handler struct {
	cfg *config.Config
	db  *gorm.DB
}

func NewHandler(cfg *config.Config, db *gorm.DB) *Handler {
	return &Handler{
		cfg: cfg,
		db:  db,
	}
}
