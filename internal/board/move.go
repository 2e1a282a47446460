package board

import "fmt"

// Move is an ephemeral from/to pair produced during enumeration and search.
type Move struct {
	From Coord
	To   Coord
}

// NoMove marks an absent move.
var NoMove = Move{From: NoCoord, To: NoCoord}

// String returns the move in coordinate form (e.g., "e2e4").
func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// ParseMove parses coordinate notation ("e2e4") into a Move.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 {
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}
	from, err := ParseCoord(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseCoord(s[2:4])
	if err != nil {
		return NoMove, err
	}
	return Move{From: from, To: to}, nil
}

// ScoredMove is a move tagged with its search score.
type ScoredMove struct {
	Move  Move
	Score int
}
