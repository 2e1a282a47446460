package board

// pawnDir returns the forward rank direction for the color: white pawns
// advance toward rank 8, black pawns toward rank 1.
func pawnDir(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

// pawnHomeRank returns the rank pawns of the color start on.
func pawnHomeRank(c Color) int {
	if c == White {
		return 1
	}
	return 6
}

// IsLegalPieceMove reports whether moving p from one square to another fits
// the piece's movement rules on this board snapshot. It is pure: no turn
// tracking and no own-king-in-check test, those belong to the game layer.
func IsLegalPieceMove(b *Board, p *Piece, from, to Coord) bool {
	if !from.IsValid() || !to.IsValid() || from == to {
		return false
	}
	if p == nil || b.PieceAt(from) != p {
		return false
	}
	if dst := b.PieceAt(to); dst != nil && dst.Color == p.Color {
		return false
	}

	switch p.Type {
	case Pawn:
		return legalPawnMove(b, p, from, to)
	case Knight:
		return legalKnightMove(from, to)
	case Bishop:
		return diagonalLine(from, to) && pathClear(b, from, to)
	case Rook:
		return straightLine(from, to) && pathClear(b, from, to)
	case Queen:
		return (straightLine(from, to) || diagonalLine(from, to)) && pathClear(b, from, to)
	case King:
		return legalKingMove(b, p, from, to)
	}
	return false
}

func legalPawnMove(b *Board, p *Piece, from, to Coord) bool {
	dir := pawnDir(p.Color)
	df := to.File() - from.File()
	dr := to.Rank() - from.Rank()

	// Single step forward onto an empty square.
	if df == 0 && dr == dir {
		return b.IsEmpty(to)
	}

	// Double step from the home rank through an empty square.
	if df == 0 && dr == 2*dir && from.Rank() == pawnHomeRank(p.Color) {
		mid := NewCoord(from.File(), from.Rank()+dir)
		return b.IsEmpty(mid) && b.IsEmpty(to)
	}

	// Diagonal step only captures.
	if abs(df) == 1 && dr == dir {
		dst := b.PieceAt(to)
		return dst != nil && dst.Color != p.Color
	}

	return false
}

func legalKnightMove(from, to Coord) bool {
	df := abs(to.File() - from.File())
	dr := abs(to.Rank() - from.Rank())
	return (df == 1 && dr == 2) || (df == 2 && dr == 1)
}

func legalKingMove(b *Board, p *Piece, from, to Coord) bool {
	df := to.File() - from.File()
	dr := to.Rank() - from.Rank()

	if abs(df) <= 1 && abs(dr) <= 1 {
		return true
	}

	// A two-file step along the rank is a castling attempt.
	if dr == 0 && abs(df) == 2 {
		return legalCastle(b, p, from, to)
	}

	return false
}

// legalCastle checks the full castling conditions: unmoved king, matching
// unmoved rook, clear path between them, king not in check, and the king
// neither passing through nor landing on an attacked square.
func legalCastle(b *Board, king *Piece, from, to Coord) bool {
	if king.Moved {
		return false
	}

	rank := from.Rank()
	var rookFrom Coord
	if to.File() > from.File() {
		rookFrom = NewCoord(7, rank)
	} else {
		rookFrom = NewCoord(0, rank)
	}

	rook := b.PieceAt(rookFrom)
	if rook == nil || rook.Type != Rook || rook.Color != king.Color || rook.Moved {
		return false
	}

	if !pathClear(b, from, rookFrom) {
		return false
	}

	enemy := king.Color.Other()
	if IsAttacked(b, from, enemy) {
		return false
	}

	step := 1
	if to.File() < from.File() {
		step = -1
	}
	mid := NewCoord(from.File()+step, rank)
	return !IsAttacked(b, mid, enemy) && !IsAttacked(b, to, enemy)
}

func straightLine(from, to Coord) bool {
	return from.File() == to.File() || from.Rank() == to.Rank()
}

func diagonalLine(from, to Coord) bool {
	return abs(to.File()-from.File()) == abs(to.Rank()-from.Rank())
}

// pathClear scans every square strictly between from and to along a rank,
// file or diagonal and fails if any is occupied.
func pathClear(b *Board, from, to Coord) bool {
	df := sign(to.File() - from.File())
	dr := sign(to.Rank() - from.Rank())

	file := from.File() + df
	rank := from.Rank() + dr
	for file != to.File() || rank != to.Rank() {
		if !b.IsEmpty(NewCoord(file, rank)) {
			return false
		}
		file += df
		rank += dr
	}
	return true
}

// IsAttacked reports whether any piece of the given color attacks the target
// square. Attacks are shape-based: pawns threaten their capture diagonals
// whether or not the target is occupied, and kings threaten plain adjacency
// only (castling is a move, never an attack).
func IsAttacked(b *Board, target Coord, by Color) bool {
	for i := Coord(0); i < NoCoord; i++ {
		p := b.squares[i].Piece
		if p == nil || p.Color != by {
			continue
		}
		if attacks(b, p, i, target) {
			return true
		}
	}
	return false
}

func attacks(b *Board, p *Piece, from, to Coord) bool {
	df := to.File() - from.File()
	dr := to.Rank() - from.Rank()

	switch p.Type {
	case Pawn:
		return abs(df) == 1 && dr == pawnDir(p.Color)
	case Knight:
		return legalKnightMove(from, to)
	case Bishop:
		return diagonalLine(from, to) && pathClear(b, from, to)
	case Rook:
		return straightLine(from, to) && pathClear(b, from, to)
	case Queen:
		return (straightLine(from, to) || diagonalLine(from, to)) && pathClear(b, from, to)
	case King:
		return abs(df) <= 1 && abs(dr) <= 1 && (df != 0 || dr != 0)
	}
	return false
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
