package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rhhsscico/motherfucking-ctf/internal/api/admin"
	"github.com/rhhsscico/motherfucking-ctf/internal/api/user"
	"github.com/rhhsscico/motherfucking-ctf/internal/auth"
	"github.com/rhhsscico/motherfucking-ctf/internal/config"
	"github.com/rhhsscico/motherfucking-ctf/internal/database"
	"github.com/rhhsscico/motherfucking-ctf/internal/database/models"
	"github.com/rhhsscico/motherfucking-ctf/internal/pubsub"
	"github.com/rhhsscico/motherfucking-ctf/internal/scoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Version = "dev-build"

func main() {

	fmt.Fprintf(os.Stderr, "motherfucking-ctf %s - a CTF scoreboard that just works\n\n", Version)

	// config
	var configPath string
	flag.StringVar(&configPath, "c", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// logger
	var logger *zap.Logger
	if cfg.Logger.Level == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// database
	db, err := database.Init(cfg.Storage.Database)
	if err != nil {
		zap.S().Fatalf("failed to initialize database: %v", err)
	}
	zap.S().Info("database initialized successfully")

	// reserved admin account
	if err := ensureAdminUser(db, cfg); err != nil {
		zap.S().Fatalf("failed to ensure admin account: %v", err)
	}

	// submission processor and live solve feed
	processor := scoring.NewProcessor(db)
	broker := pubsub.NewBroker()

	// API routers
	userEngine := user.NewUserRouter(cfg, db, processor, broker)
	adminEngine := admin.NewAdminRouter(cfg, db)

	// start servers
	go func() {
		zap.S().Infof("starting user server at %s", cfg.Listen)
		if err := userEngine.Run(cfg.Listen); err != nil {
			zap.S().Fatalf("failed to start user server: %v", err)
		}
	}()

	if cfg.Admin.Enabled {
		go func() {
			zap.S().Infof("starting admin server at %s", cfg.Admin.Listen)
			if err := adminEngine.Run(cfg.Admin.Listen); err != nil {
				zap.S().Fatalf("failed to start admin server: %v", err)
			}
		}()
	}

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.S().Info("shutting down server...")
}

// ensureAdminUser creates the reserved admin account on first start. The
// admin never appears on the scoreboard.
func ensureAdminUser(db *gorm.DB, cfg *config.Config) error {
	_, err := database.GetUserByUsername(db, cfg.Admin.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if cfg.Admin.Password == "" {
		zap.S().Warnf("no admin password configured, skipping creation of account '%s'", cfg.Admin.Username)
		return nil
	}

	hashedPassword, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}

	adminUser := models.User{
		ID:           uuid.NewString(),
		Username:     cfg.Admin.Username,
		PasswordHash: hashedPassword,
	}
	if err := database.CreateUser(db, &adminUser); err != nil {
		return err
	}
	zap.S().Infof("created admin account '%s'", cfg.Admin.Username)
	return nil
}
