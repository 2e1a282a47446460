package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("CHESSFORGE_WORKERS", "")
	t.Setenv("CHESSFORGE_DIFFICULTY", "")
	t.Setenv("CHESSFORGE_MOVE_TIME", "")
	t.Setenv("CHESSFORGE_DATA_DIR", "")

	cfg := FromEnv()
	if cfg.Workers != 0 {
		t.Errorf("Workers = %d, want 0", cfg.Workers)
	}
	if cfg.Difficulty != "" {
		t.Errorf("Difficulty = %q, want empty", cfg.Difficulty)
	}
	if cfg.MoveTime != 0 {
		t.Errorf("MoveTime = %v, want 0", cfg.MoveTime)
	}
	if cfg.DataDir != "" {
		t.Errorf("DataDir = %q, want empty", cfg.DataDir)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("CHESSFORGE_WORKERS", "4")
	t.Setenv("CHESSFORGE_DIFFICULTY", "hard")
	t.Setenv("CHESSFORGE_MOVE_TIME", "2s")
	t.Setenv("CHESSFORGE_DEPTH", "6")
	t.Setenv("CHESSFORGE_DATA_DIR", "/tmp/chessforge-test")

	cfg := FromEnv()
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.Difficulty != "hard" {
		t.Errorf("Difficulty = %q, want hard", cfg.Difficulty)
	}
	if cfg.MoveTime != 2*time.Second {
		t.Errorf("MoveTime = %v, want 2s", cfg.MoveTime)
	}
	if cfg.Depth != 6 {
		t.Errorf("Depth = %d, want 6", cfg.Depth)
	}
	if cfg.DataDir != "/tmp/chessforge-test" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
}

func TestFromEnvInvalidValuesFallBack(t *testing.T) {
	t.Setenv("CHESSFORGE_WORKERS", "many")
	t.Setenv("CHESSFORGE_MOVE_TIME", "fast")

	cfg := FromEnv()
	if cfg.Workers != 0 {
		t.Errorf("invalid workers value parsed to %d, want fallback 0", cfg.Workers)
	}
	if cfg.MoveTime != 0 {
		t.Errorf("invalid duration parsed to %v, want fallback 0", cfg.MoveTime)
	}
}
