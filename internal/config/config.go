package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	log "github.com/sirupsen/logrus"
)

// Common holds the settings both binaries share.
type Common struct {
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"1"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`
	GinMode        string  `env:"GIN_MODE" envDefault:"release"`
	LogLevel       string  `env:"LOG_LEVEL" envDefault:"info"`
}

// Site configures the invitation website (public and admin servers).
type Site struct {
	Common

	Port                string        `env:"PORT" envDefault:"8080"`
	AdminPort           string        `env:"ADMIN_PORT" envDefault:"9090"`
	CollaboratorURL     string        `env:"COLLABORATOR_URL" envDefault:"https://functions.poehali.dev/df55c789-caa2-4966-8712-119b64b508ea"`
	CollaboratorTimeout time.Duration `env:"COLLABORATOR_TIMEOUT" envDefault:"15s"`
	SessionDBPath       string        `env:"SESSION_DB_PATH" envDefault:"/data/sessions.db"`
	WeddingDate         time.Time     `env:"WEDDING_DATE" envDefault:"2026-07-04T14:00:00+03:00"`
	RSVPDeadline        string        `env:"RSVP_DEADLINE" envDefault:"20 июня 2026"`
}

// Function configures the RSVP function that stores responses.
type Function struct {
	Common

	Port     string `env:"PORT" envDefault:"8081"`
	DBPath   string `env:"DB_PATH" envDefault:"/data/rsvp.db"`
	SeedFile string `env:"SEED_FILE"`
	AdminKey string `env:"ADMIN_KEY" envDefault:"changeme"`
}

func LoadSite() (*Site, error) {
	var cfg Site
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

func LoadFunction() (*Function, error) {
	var cfg Function
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Level maps LOG_LEVEL to a logrus level, falling back to info.
func (c Common) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
