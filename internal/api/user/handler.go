package user

import (
	"github.com/rhhsscico/motherfucking-ctf/internal/auth"
	"github.com/rhhsscico/motherfucking-ctf/internal/config"
	"github.com/rhhsscico/motherfucking-ctf/internal/pubsub"
	"github.com/rhhsscico/motherfucking-ctf/internal/scoring"
	"gorm.io/gorm"
)

// Handler holds all dependencies for the user API handlers.
type Handler struct {
	cfg               *config.Config
	db                *gorm.DB
	processor         *scoring.Processor
	broker            *pubsub.Broker
	gitlabAuthHandler *auth.GitLabHandler
}

// NewHandler creates a new user handler with its dependencies.
func NewHandler(
	cfg *config.Config,
	db *gorm.DB,
	processor *scoring.Processor,
	broker *pubsub.Broker,
) *Handler {
	return &Handler{
		cfg:               cfg,
		db:                db,
		processor:         processor,
		broker:            broker,
		gitlabAuthHandler: auth.NewGitLabHandler(cfg, db),
	}
}
