package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Config struct {
	Listen  string  `yaml:"listen"`
	Logger  Logger  `yaml:"logger"`
	Storage Storage `yaml:"storage"`
	Auth    Auth    `yaml:"auth"`
	Admin   Admin   `yaml:"admin"`
	CORS    CORS    `yaml:"cors"`
}

type Logger struct {
	Level string `yaml:"level"`
}

type Storage struct {
	Database string `yaml:"database"`
}

type Auth struct {
	JWT    JWT    `yaml:"jwt"`
	GitLab GitLab `yaml:"gitlab"`
	Local  Local  `yaml:"local"`
}

// Local defines configuration for username/password authentication.
type Local struct {
	Enabled bool `yaml:"enabled"`
}

type JWT struct {
	Secret      string `yaml:"secret"`
	ExpireHours int    `yaml:"expire_hours"`
}

type GitLab struct {
	Enabled             bool   `yaml:"enabled"`
	URL                 string `yaml:"url"`
	ClientID            string `yaml:"client_id"`
	ClientSecret        string `yaml:"client_secret"`
	RedirectURI         string `yaml:"redirect_uri"`
	FrontendCallbackURL string `yaml:"frontend_callback_url"`
}

// Admin configures the management API plus the reserved administrative
// account, which is excluded from the scoreboard.
type Admin struct {
	Enabled  bool   `yaml:"enabled"`
	Listen   string `yaml:"listen"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Admin.Username == "" {
		cfg.Admin.Username = "admin"
	}
	if cfg.Auth.JWT.ExpireHours == 0 {
		cfg.Auth.JWT.ExpireHours = 24
	}

	return &cfg, nil
}
