package main

import (
	"fmt"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Settings are read from the environment (and .env) and act as flag defaults
type Settings struct {
	Seed      int64  `env:"GAME2048_SEED"`
	ConfigDir string `env:"GAME2048_CONFIG_DIR" envDefault:"configs"`
	Config    string `env:"GAME2048_CONFIG"`
	Debug     bool   `env:"GAME2048_DEBUG"`
	LogFile   string `env:"GAME2048_LOG_FILE"   envDefault:"logs/2048.log"`
}

// loadDotEnv loads .env from the working directory if there is one
func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		// Only log if it's not a "file not found" error
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}
}

// LoadSettings parses Settings from the environment
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}
