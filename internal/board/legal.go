package board

// InCheck reports whether the given color's king is attacked. A board with
// no king of that color reports false; the game layer treats the missing
// king itself as a terminal state.
func InCheck(b *Board, c Color) bool {
	k := b.FindKing(c)
	if k == NoCoord {
		return false
	}
	return IsAttacked(b, k, c.Other())
}

// IsLegalMove is the single source of truth for move legality: the move must
// fit the piece's rules AND, after simulating it, must not leave the mover's
// own king in check. The simulation uses the in-place undo log, so the board
// is unchanged on return.
func IsLegalMove(b *Board, p *Piece, from, to Coord) bool {
	if !IsLegalPieceMove(b, p, from, to) {
		return false
	}
	u := b.Apply(Move{From: from, To: to})
	ok := !InCheck(b, p.Color)
	b.Revert(u)
	return ok
}

// LegalMoves enumerates every destination square and keeps those passing
// IsLegalMove. Callers that re-query inside search memoize by board hash.
func LegalMoves(b *Board, p *Piece) []Move {
	from := p.Pos
	var out []Move
	for to := Coord(0); to < NoCoord; to++ {
		if IsLegalMove(b, p, from, to) {
			out = append(out, Move{From: from, To: to})
		}
	}
	return out
}

// AllLegalMoves enumerates the legal moves of every piece of the color.
func AllLegalMoves(b *Board, c Color) []Move {
	var out []Move
	for _, p := range b.Pieces(c) {
		out = append(out, LegalMoves(b, p)...)
	}
	return out
}

// hasAnyLegalMove short-circuits on the first legal move found.
func hasAnyLegalMove(b *Board, c Color) bool {
	for _, p := range b.Pieces(c) {
		from := p.Pos
		for to := Coord(0); to < NoCoord; to++ {
			if IsLegalMove(b, p, from, to) {
				return true
			}
		}
	}
	return false
}

// IsCheckmate reports whether the color is in check with no legal escape.
func IsCheckmate(b *Board, c Color) bool {
	return InCheck(b, c) && !hasAnyLegalMove(b, c)
}

// IsStalemate reports whether the color is NOT in check yet has no legal
// move.
func IsStalemate(b *Board, c Color) bool {
	return !InCheck(b, c) && !hasAnyLegalMove(b, c)
}
