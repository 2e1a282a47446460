package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the placement and side to move of the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w"

// ParseFEN builds a board from the placement field of a FEN string plus the
// side to move. Later FEN fields are accepted and ignored: en passant and
// move clocks are outside this engine's rules. Pieces found away from their
// starting squares are marked as having moved, which is what gates castling
// and pawn double-steps.
func ParseFEN(fen string) (*Board, Color, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, NoColor, fmt.Errorf("invalid FEN: empty string")
	}

	b := New()
	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return nil, NoColor, fmt.Errorf("invalid FEN: need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			pt := TypeFromChar(ch)
			if pt == NoPieceType || file > 7 {
				return nil, NoColor, fmt.Errorf("invalid FEN rank %q", rankStr)
			}
			color := Black
			if ch >= 'A' && ch <= 'Z' {
				color = White
			}
			at := NewCoord(file, rank)
			p := b.Place(pt, color, at)
			p.Moved = !onStartSquare(pt, color, at)
			file++
		}
		if file != 8 {
			return nil, NoColor, fmt.Errorf("invalid FEN rank %q", rankStr)
		}
	}

	stm := White
	if len(parts) > 1 {
		switch parts[1] {
		case "w":
			stm = White
		case "b":
			stm = Black
		default:
			return nil, NoColor, fmt.Errorf("invalid side to move: %q", parts[1])
		}
	}

	return b, stm, nil
}

// onStartSquare reports whether a piece of this type and color could still
// be sitting on its game-start square.
func onStartSquare(pt PieceType, c Color, at Coord) bool {
	if pt == Pawn {
		return at.Rank() == pawnHomeRank(c)
	}
	home := 0
	if c == Black {
		home = 7
	}
	if at.Rank() != home {
		return false
	}
	return backRank[at.File()] == pt
}

// FEN returns the placement and side-to-move fields for the board.
func FEN(b *Board, sideToMove Color) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.PieceAt(NewCoord(file, rank))
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(p.FENChar())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if sideToMove == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	return sb.String()
}
