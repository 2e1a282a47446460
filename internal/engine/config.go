package engine

import (
	"fmt"
	"time"
)

// Strategy selects how the opponent picks its move.
type Strategy int

const (
	// StrategyRandomTop picks randomly among the best statically scored moves.
	StrategyRandomTop Strategy = iota
	// StrategyGreedy plays the single best move by static heuristic.
	StrategyGreedy
	// StrategySearch runs the full minimax search.
	StrategySearch
)

// Difficulty is the user-facing AI level.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// String returns the difficulty name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return "unknown"
}

// ParseDifficulty parses a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Easy, fmt.Errorf("unknown difficulty: %q", s)
}

// Config is an immutable search configuration, threaded explicitly into
// every search call so no module state needs mutating when the difficulty
// changes.
type Config struct {
	Strategy        Strategy
	Depth           int           // full-width search depth in plies
	QuiescenceDepth int           // extra capture-only plies past the horizon
	BranchLimit     int           // top-N ordered moves explored per node
	MoveTime        time.Duration // wall-clock budget for one search
	TableMB         int           // transposition table size
	TopMoveWindow   int           // candidate pool size for StrategyRandomTop
	RandSeed        int64         // nonzero pins the RNG for reproducible play
}

// DifficultySettings maps each difficulty to its search configuration.
var DifficultySettings = map[Difficulty]Config{
	Easy:   {Strategy: StrategyRandomTop, TopMoveWindow: 3, TableMB: 1},
	Medium: {Strategy: StrategyGreedy, TableMB: 1},
	Hard: {
		Strategy:        StrategySearch,
		Depth:           4,
		QuiescenceDepth: 4,
		BranchLimit:     12,
		MoveTime:        5 * time.Second,
		TableMB:         8,
	},
}
