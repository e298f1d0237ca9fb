package admin

import (
	"github.com/rhhsscico/motherfucking-ctf/internal/api"
	"github.com/rhhsscico/motherfucking-ctf/internal/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewAdminRouter creates and configures the admin Gin engine. It is expected
// to listen on a non-public address.
func NewAdminRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(api.CORSMiddleware(cfg.CORS))

	h := NewHandler(cfg, db)

	v1 := r.Group("/api/v1")
	{
		// Challenge Management
		challenges := v1.Group("/challenges")
		{
			challenges.GET("", h.getAllChallenges)
			challenges.POST("", h.createChallenge)
			challenges.GET("/:name", h.getChallenge)
			challenges.PUT("/:name", h.updateChallenge)
			challenges.DELETE("/:name", h.deleteChallenge)
		}

		// User Management
		users := v1.Group("/users")
		{
			users.GET("", h.getAllUsers)
			users.GET("/:id", h.getUser)
			users.DELETE("/:id", h.deleteUser)
			users.POST("/:id/reset-password", h.resetUserPassword)
		}

		// Scoreboard
		v1.GET("/scoreboard", h.getScoreboard)
	}

	return r
}
