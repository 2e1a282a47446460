package board

import "testing"

func TestBackRankCheckmate(t *testing.T) {
	// White: Ra8, Ka1. Black: Kh8 boxed in by its own pawns on g7 and h7.
	b, stm, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}
	if stm != Black {
		t.Fatal("expected black to move")
	}

	t.Log("Checkmate position:\n" + b.String())
	t.Log("InCheck:", InCheck(b, Black))
	t.Log("Black legal moves:", len(AllLegalMoves(b, Black)))

	if !InCheck(b, Black) {
		t.Error("black should be in check")
	}
	if !IsCheckmate(b, Black) {
		t.Error("Expected checkmate but got false")
	}
	if IsStalemate(b, Black) {
		t.Error("checkmate misreported as stalemate")
	}
}

func TestNotCheckmateKingCapturesChecker(t *testing.T) {
	// The checking rook on g8 is undefended; the king takes it.
	b, _, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	t.Log("Position (king can capture the rook):\n" + b.String())

	if IsCheckmate(b, Black) {
		t.Error("Expected NOT checkmate but got true")
	}
	g8, _ := ParseCoord("g8")
	h8 := H8
	king := b.PieceAt(h8)
	if !IsLegalMove(b, king, h8, g8) {
		t.Error("king should be able to capture the checking rook")
	}
}

func TestStalemate(t *testing.T) {
	// Black king on h8 has no move but is not in check.
	b, _, err := ParseFEN("7k/8/6Q1/8/8/8/8/K7 b")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	t.Log("Stalemate position:\n" + b.String())

	if InCheck(b, Black) {
		t.Error("black should not be in check")
	}
	if !IsStalemate(b, Black) {
		t.Error("Expected stalemate but got false")
	}
	if IsCheckmate(b, Black) {
		t.Error("stalemate misreported as checkmate")
	}
}

func TestPinnedPiece(t *testing.T) {
	// White rook e2 shields its king from the rook on e7. It may slide
	// along the file or capture the pinning rook, never leave the file.
	b, _, err := ParseFEN("4k3/4r3/8/8/8/8/4R3/4K3 w")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}
	rook := b.PieceAt(E2)
	a2 := NewCoord(0, 1)
	e5, _ := ParseCoord("e5")

	if IsLegalMove(b, rook, E2, a2) {
		t.Error("pinned rook left the file")
	}
	if !IsLegalMove(b, rook, E2, e5) {
		t.Error("pinned rook should slide along the pin line")
	}
	if !IsLegalMove(b, rook, E2, E7) {
		t.Error("pinned rook should capture the pinning rook")
	}

	// Simulation must leave the board untouched.
	if b.PieceAt(E2) != rook || rook.Pos != E2 {
		t.Error("legality checks mutated the board")
	}
	if b.Hash != ComputeHash(b) {
		t.Error("legality checks corrupted the hash")
	}
}

func TestCheckClearsWithAttackerGone(t *testing.T) {
	b, _, err := ParseFEN("4r3/8/8/8/8/8/8/4K3 w")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}
	if !InCheck(b, White) {
		t.Error("white should be in check from the e8 rook")
	}
	b.Remove(E8)
	if InCheck(b, White) {
		t.Error("check should clear once the attacker is removed")
	}
}

func TestMissingKingNotInCheck(t *testing.T) {
	b := New()
	b.Place(Queen, White, E4)
	if InCheck(b, Black) {
		t.Error("a side with no king cannot be in check")
	}
	if b.FindKing(Black) != NoCoord {
		t.Error("FindKing should report NoCoord")
	}
}

func TestAllLegalMovesStartPosition(t *testing.T) {
	b := NewGame()
	moves := AllLegalMoves(b, White)
	if len(moves) != 20 {
		t.Errorf("start position has %d white moves, want 20", len(moves))
	}
	moves = AllLegalMoves(b, Black)
	if len(moves) != 20 {
		t.Errorf("start position has %d black moves, want 20", len(moves))
	}
}
