// Package config loads runtime settings from the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	// this will automatically load your .env file:
	_ "github.com/joho/godotenv/autoload"
)

// Config carries the tunables of the chessforge binary.
type Config struct {
	Workers    int           // search worker pool size, 0 = hardware default
	Difficulty string        // easy | medium | hard; empty falls back to stored preference
	MoveTime   time.Duration // overrides the difficulty's search budget when > 0
	Depth      int           // overrides the difficulty's search depth when > 0
	DataDir    string        // overrides the platform data directory when set
}

// FromEnv reads CHESSFORGE_* variables, falling back to defaults.
func FromEnv() *Config {
	return &Config{
		Workers:    envInt("CHESSFORGE_WORKERS", 0),
		Difficulty: envString("CHESSFORGE_DIFFICULTY", ""),
		MoveTime:   envDuration("CHESSFORGE_MOVE_TIME", 0),
		Depth:      envInt("CHESSFORGE_DEPTH", 0),
		DataDir:    envString("CHESSFORGE_DATA_DIR", ""),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return d
}
