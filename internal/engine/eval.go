// Package engine implements the static position evaluator and the
// alpha-beta search used to pick the synthetic opponent's moves.
package engine

import "github.com/tbern/chessforge/internal/board"

// Sign convention: positive scores favor Black, negative favor White.
// Every search routine in this package respects this orientation.

// Material values in centipawns.
const (
	PawnWorth   = 100
	KnightWorth = 300
	BishopWorth = 300
	RookWorth   = 500
	QueenWorth  = 900
	KingWorth   = 10000
)

// pieceWorth indexes material value by PieceType.
var pieceWorth = [6]int{PawnWorth, KnightWorth, BishopWorth, RookWorth, QueenWorth, KingWorth}

// Heuristic weights. Tunable without touching the evaluation algorithm.
const (
	developmentPenalty   = 15 // per unmoved knight or bishop
	castledKingBonus     = 40 // king has castled to the wing
	centeredKingPenalty  = 25 // king sitting on the central files
	doubledPawnPenalty   = 20 // per extra pawn stacked on a file
	isolatedPawnPenalty  = 15 // per pawn with no friendly pawn on adjacent files
)

// Piece-square tables from White's perspective, indexed by Coord
// (A1=0 ... H8=63), so the first literal row is rank 1. Black squares are
// mirrored vertically.
var pawnTable = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, -20, -20, 10, 10, 5,
	5, -5, -10, 0, 0, -10, -5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, 5, 10, 25, 25, 10, 5, 5,
	10, 10, 20, 30, 30, 20, 10, 10,
	50, 50, 50, 50, 50, 50, 50, 50,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightTable = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopTable = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookTable = [64]int{
	0, 0, 0, 5, 5, 0, 0, 0,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	5, 10, 10, 10, 10, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var queenTable = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-10, 5, 5, 5, 5, 5, 0, -10,
	0, 0, 5, 5, 5, 5, 0, -5,
	-5, 0, 5, 5, 5, 5, 0, -5,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingTable = [64]int{
	20, 30, 10, 0, 0, 10, 30, 20,
	20, 20, 0, 0, 0, 0, 20, 20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
}

var pieceSquare = [6]*[64]int{&pawnTable, &knightTable, &bishopTable, &rookTable, &queenTable, &kingTable}

// Evaluate statically scores the board: material, piece placement,
// development, king safety and pawn structure. Positive favors Black.
func Evaluate(b *board.Board) int {
	score := 0
	var pawnFiles [2][8]int

	for sq := board.Coord(0); sq < board.NoCoord; sq++ {
		p := b.PieceAt(sq)
		if p == nil {
			continue
		}

		v := pieceWorth[p.Type]
		if p.Color == board.White {
			v += pieceSquare[p.Type][sq]
		} else {
			v += pieceSquare[p.Type][sq^56] // vertical mirror
		}

		if !p.Moved && (p.Type == board.Knight || p.Type == board.Bishop) {
			v -= developmentPenalty
		}

		if p.Type == board.King {
			v += kingSafety(p)
		}

		if p.Type == board.Pawn {
			pawnFiles[p.Color][sq.File()]++
		}

		if p.Color == board.Black {
			score += v
		} else {
			score -= v
		}
	}

	score += pawnStructure(pawnFiles[board.Black]) - pawnStructure(pawnFiles[board.White])

	return score
}

// kingSafety rewards a castled king and penalizes one loitering on the
// central files.
func kingSafety(king *board.Piece) int {
	homeRank := 0
	if king.Color == board.Black {
		homeRank = 7
	}
	file := king.Pos.File()

	if king.Moved && king.Pos.Rank() == homeRank && (file == 6 || file == 2) {
		return castledKingBonus
	}
	if file == 3 || file == 4 {
		return -centeredKingPenalty
	}
	return 0
}

// pawnStructure scores one side's pawn file counts: a penalty per stacked
// pawn and per isolated pawn.
func pawnStructure(files [8]int) int {
	score := 0
	for f := 0; f < 8; f++ {
		n := files[f]
		if n == 0 {
			continue
		}
		if n > 1 {
			score -= doubledPawnPenalty * (n - 1)
		}

		neighbors := 0
		if f > 0 {
			neighbors += files[f-1]
		}
		if f < 7 {
			neighbors += files[f+1]
		}
		if neighbors == 0 {
			score -= isolatedPawnPenalty * n
		}
	}
	return score
}

// VictimWorth returns the material value of the piece captured by the move,
// or 0 for a quiet move. Used for move ordering.
func VictimWorth(b *board.Board, m board.Move) int {
	if p := b.PieceAt(m.To); p != nil {
		return pieceWorth[p.Type]
	}
	return 0
}
