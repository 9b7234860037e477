package config

import (
	"fmt"

	"github.com/bingolive/bingo-live/game"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration, loaded from .env then the environment.
type Config struct {
	Port          string `env:"PORT" envDefault:"4000"`
	DatabaseURL   string `env:"DATABASE_URL"` // empty runs on the in-memory store
	AdminPassword string `env:"ADMIN_PASSWORD,required"`
	SessionID     string `env:"SESSION_ID" envDefault:"main"`
	WinRule       string `env:"WIN_RULE" envDefault:"FULL_CARD"`
	SinglePrize   bool   `env:"SINGLE_PRIZE" envDefault:"false"`
	StartMessage  string `env:"START_MESSAGE" envDefault:"The bingo will start soon"`
	TicketCount   int    `env:"TICKET_COUNT" envDefault:"500"`
	CORSOrigins   string `env:"CORS_ORIGINS" envDefault:"http://localhost:3000"`
}

// Load reads .env when present, parses the environment and validates the
// game policy values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if _, err := game.ParseWinRule(cfg.WinRule); err != nil {
		return nil, fmt.Errorf("WIN_RULE: %w", err)
	}
	if cfg.TicketCount < 1 {
		return nil, fmt.Errorf("TICKET_COUNT must be positive, got %d", cfg.TicketCount)
	}
	return cfg, nil
}

// Rule returns the parsed win rule; Load guarantees it is valid.
func (c *Config) Rule() game.WinRule {
	rule, _ := game.ParseWinRule(c.WinRule)
	return rule
}
