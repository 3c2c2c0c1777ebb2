// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port         string `env:"PORT" envDefault:"5175"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	Production   bool   `env:"PRODUCTION" envDefault:"false"`

	// Player identity cookie.
	PlayerSecret string `env:"PLAYER_SECRET" envDefault:"dev_secret_change_me"`
	CookieName   string `env:"COOKIE_NAME" envDefault:"wordle_player"`

	// Word lists; both empty means the embedded defaults.
	AnswersFile string `env:"WORDS_ANSWERS_FILE"`
	ValidFile   string `env:"WORDS_VALID_FILE"`

	// Storage: memory | sqlite | redis.
	StoreDriver   string        `env:"STORE_DRIVER" envDefault:"memory"`
	SQLitePath    string        `env:"SQLITE_PATH" envDefault:"./data/app.db"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	RedisTTL      time.Duration `env:"REDIS_TTL" envDefault:"48h"`
	StorageKey    string        `env:"STORAGE_KEY" envDefault:"wordle_clone_state_v1"`
	MaxGames      int           `env:"MAX_GAMES" envDefault:"10000"`

	// Game rules.
	Rows       int    `env:"GAME_ROWS" envDefault:"6"`
	Cols       int    `env:"GAME_COLS" envDefault:"5"`
	PowerUps   int    `env:"GAME_POWERUPS" envDefault:"2"`
	DailyEpoch string `env:"DAILY_EPOCH" envDefault:"2022-01-01"`
}

// Load reads an optional .env file and parses the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse parses the current environment into a Config and validates it.
func Parse() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if _, err := c.Epoch(); err != nil {
		return Config{}, err
	}
	if c.Rows <= 0 || c.Cols <= 0 || c.PowerUps < 0 {
		return Config{}, fmt.Errorf("invalid game rules: rows=%d cols=%d powerups=%d", c.Rows, c.Cols, c.PowerUps)
	}
	switch c.StoreDriver {
	case "memory", "sqlite", "redis":
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return c, nil
}

// Epoch parses DailyEpoch as a UTC date.
func (c Config) Epoch() (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", c.DailyEpoch, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse DAILY_EPOCH: %w", err)
	}
	return t, nil
}
