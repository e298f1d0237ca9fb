package user

import (
	"github.com/rhhsscico/motherfucking-ctf/internal/api"
	"github.com/rhhsscico/motherfucking-ctf/internal/config"
	"github.com/rhhsscico/motherfucking-ctf/internal/metrics"
	"github.com/rhhsscico/motherfucking-ctf/internal/pubsub"
	"github.com/rhhsscico/motherfucking-ctf/internal/scoring"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewUserRouter creates and configures the player-facing Gin engine.
func NewUserRouter(
	cfg *config.Config,
	db *gorm.DB,
	processor *scoring.Processor,
	broker *pubsub.Broker) *gin.Engine {

	r := gin.Default()

	r.Use(api.CORSMiddleware(cfg.CORS))
	r.Use(metrics.Middleware())

	h := NewHandler(cfg, db, processor, broker)

	r.GET("/metrics", metrics.Handler())

	v1 := r.Group("/api/v1")
	{
		// Auth
		authGroup := v1.Group("/auth")
		{
			authGroup.GET("/status", h.getAuthStatus)

			// GitLab Auth
			if cfg.Auth.GitLab.Enabled {
				gitlabGroup := authGroup.Group("/gitlab")
				gitlabGroup.GET("/login", h.gitlabAuthHandler.Login)
				gitlabGroup.GET("/callback", h.gitlabAuthHandler.Callback)
			}

			// Local Username/Password Auth (if enabled)
			if cfg.Auth.Local.Enabled {
				localAuthGroup := authGroup.Group("/local")
				{
					localAuthGroup.POST("/register", h.localRegister)
					localAuthGroup.POST("/login", h.localLogin)
				}
			}
		}

		// Websocket live solve feed
		v1.GET("/ws/solves", h.handleSolveFeedWs)

		// Publicly accessible info
		v1.GET("/challenges", h.getAllChallenges)
		v1.GET("/challenges/:name", h.getChallenge)
		v1.GET("/solves", h.getRecentSolves)
		v1.GET("/users/:username", h.getPublicUserProfile)

		// Authenticated routes
		authed := v1.Group("/")
		authed.Use(api.AuthMiddleware(cfg.Auth.JWT.Secret))
		{
			// User Profile
			profile := authed.Group("/user")
			{
				profile.GET("/profile", h.getUserProfile)
				profile.PATCH("/profile", h.updateUserProfile)
			}

			// Flag submission & scoreboard
			authed.POST("/challenges/:name/submit", h.submitFlag)
			authed.GET("/scoreboard", h.getScoreboard)
		}
	}

	return r
}
