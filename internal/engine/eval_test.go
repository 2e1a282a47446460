package engine

import (
	"testing"

	"github.com/tbern/chessforge/internal/board"
)

func TestStartPositionBalanced(t *testing.T) {
	if score := Evaluate(board.NewGame()); score != 0 {
		t.Errorf("symmetric start position evaluates to %d, want 0", score)
	}
}

func TestMaterialOrientation(t *testing.T) {
	// Positive favors Black: white down a pawn must score positive.
	b, _, err := board.ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPP1PPP/RNBQKBNR w")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}
	if score := Evaluate(b); score <= 0 {
		t.Errorf("white down a pawn scores %d, want > 0", score)
	}

	b, _, err = board.ParseFEN("rnbqkbnr/pppp1ppp/8/8/8/8/PPPPPPPP/RNBQKBNR w")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}
	if score := Evaluate(b); score >= 0 {
		t.Errorf("black down a pawn scores %d, want < 0", score)
	}
}

func TestPieceSquareMirroring(t *testing.T) {
	// A white knight on f3 and a black knight on f6 sit on mirrored
	// squares; the position must stay balanced.
	w := board.New()
	f3, _ := board.ParseCoord("f3")
	p := w.Place(board.Knight, board.White, f3)
	p.Moved = true

	bl := board.New()
	f6, _ := board.ParseCoord("f6")
	p = bl.Place(board.Knight, board.Black, f6)
	p.Moved = true

	if Evaluate(w) != -Evaluate(bl) {
		t.Errorf("mirrored knights not symmetric: %d vs %d", Evaluate(w), Evaluate(bl))
	}
}

func TestDevelopmentPenalty(t *testing.T) {
	home := board.New()
	b1, _ := board.ParseCoord("b1")
	home.Place(board.Knight, board.White, b1)

	out := board.New()
	c3, _ := board.ParseCoord("c3")
	p := out.Place(board.Knight, board.White, c3)
	p.Moved = true

	// Scores favor Black, so the undeveloped white knight scores higher.
	if Evaluate(home) <= Evaluate(out) {
		t.Errorf("undeveloped knight %d, developed %d; development not penalized",
			Evaluate(home), Evaluate(out))
	}
}

func TestDoubledAndIsolatedPawns(t *testing.T) {
	doubled := board.New()
	doubled.Place(board.Pawn, board.White, board.NewCoord(0, 1)) // a2
	doubled.Place(board.Pawn, board.White, board.NewCoord(0, 2)) // a3

	healthy := board.New()
	healthy.Place(board.Pawn, board.White, board.NewCoord(0, 1)) // a2
	healthy.Place(board.Pawn, board.White, board.NewCoord(1, 1)) // b2

	// Both are white structures, so the weaker one scores higher
	// (better for Black).
	if Evaluate(doubled) <= Evaluate(healthy) {
		t.Errorf("doubled+isolated pawns %d, connected pawns %d; structure not penalized",
			Evaluate(doubled), Evaluate(healthy))
	}
}

func TestKingSafety(t *testing.T) {
	g1, _ := board.ParseCoord("g1")
	d4, _ := board.ParseCoord("d4")
	g8, _ := board.ParseCoord("g8")

	castled := &board.Piece{Type: board.King, Color: board.White, Pos: g1, Moved: true}
	if kingSafety(castled) != castledKingBonus {
		t.Error("castled king not rewarded")
	}

	wandering := &board.Piece{Type: board.King, Color: board.White, Pos: d4, Moved: true}
	if kingSafety(wandering) != -centeredKingPenalty {
		t.Error("centralized king not penalized")
	}

	// A black king on g8 that never moved is not castled.
	sitting := &board.Piece{Type: board.King, Color: board.Black, Pos: g8}
	if kingSafety(sitting) != 0 {
		t.Error("unmoved king on g8 misread as castled")
	}
}

func TestVictimWorth(t *testing.T) {
	b, _, err := board.ParseFEN("3q3k/8/8/8/3R4/8/8/K7 w")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}
	d4, _ := board.ParseCoord("d4")
	d8, _ := board.ParseCoord("d8")
	d5, _ := board.ParseCoord("d5")

	if got := VictimWorth(b, board.Move{From: d4, To: d8}); got != QueenWorth {
		t.Errorf("queen capture worth %d, want %d", got, QueenWorth)
	}
	if got := VictimWorth(b, board.Move{From: d4, To: d5}); got != 0 {
		t.Errorf("quiet move worth %d, want 0", got)
	}
}
