package board

import "strings"

// Square is one cell of the grid: a fixed coordinate plus shade and an
// optional occupant. Identity is immutable; only the occupant changes.
type Square struct {
	Coord Coord
	Shade Shade
	Piece *Piece
}

// Board is an 8x8 ordered grid of squares. Structural validity (64 squares,
// checkerboard shades) always holds; legality is a property of moves, not of
// static boards. The Hash field is the incremental Zobrist key of the piece
// placement.
type Board struct {
	squares [64]Square
	nextID  int

	// Hash is the XOR of the Zobrist piece keys of every occupant.
	Hash uint64
}

// New returns an empty board with no pieces.
func New() *Board {
	b := &Board{nextID: 1}
	for c := Coord(0); c < NoCoord; c++ {
		b.squares[c] = Square{Coord: c, Shade: ShadeOf(c)}
	}
	return b
}

// backRank is the standard back-rank piece order, a-file to h-file.
var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewGame returns a board set up in the standard starting position:
// white on ranks 1-2, black on ranks 7-8.
func NewGame() *Board {
	b := New()
	for file := 0; file < 8; file++ {
		b.Place(backRank[file], White, NewCoord(file, 0))
		b.Place(Pawn, White, NewCoord(file, 1))
		b.Place(Pawn, Black, NewCoord(file, 6))
		b.Place(backRank[file], Black, NewCoord(file, 7))
	}
	return b
}

// Place puts a new piece on the board and returns it. The piece gets a fresh
// identity that stays stable for the lifetime of the game.
func (b *Board) Place(pt PieceType, c Color, at Coord) *Piece {
	p := &Piece{ID: b.nextID, Type: pt, Color: c, Pos: at}
	b.nextID++
	b.squares[at].Piece = p
	b.Hash ^= zobristPiece[c][pt][at]
	return p
}

// Remove takes the piece off the given square, if any.
func (b *Board) Remove(at Coord) *Piece {
	p := b.squares[at].Piece
	if p != nil {
		b.squares[at].Piece = nil
		b.Hash ^= zobristPiece[p.Color][p.Type][at]
	}
	return p
}

// PieceAt returns the occupant of the square, or nil when empty.
func (b *Board) PieceAt(c Coord) *Piece {
	if !c.IsValid() {
		return nil
	}
	return b.squares[c].Piece
}

// SquareAt returns the square at the coordinate.
func (b *Board) SquareAt(c Coord) *Square {
	return &b.squares[c]
}

// IsEmpty returns true if the square has no occupant.
func (b *Board) IsEmpty(c Coord) bool {
	return b.squares[c].Piece == nil
}

// FindKing returns the coordinate of the given color's king, or NoCoord if
// the board has none. A missing king is a legal terminal state, not an error.
func (b *Board) FindKing(c Color) Coord {
	for i := Coord(0); i < NoCoord; i++ {
		if p := b.squares[i].Piece; p != nil && p.Type == King && p.Color == c {
			return i
		}
	}
	return NoCoord
}

// Pieces returns all pieces of the given color in board order.
func (b *Board) Pieces(c Color) []*Piece {
	var out []*Piece
	for i := Coord(0); i < NoCoord; i++ {
		if p := b.squares[i].Piece; p != nil && p.Color == c {
			out = append(out, p)
		}
	}
	return out
}

// Clone returns a deep copy of the board. Piece identities are preserved so
// cloned boards can be diffed against the original.
func (b *Board) Clone() *Board {
	nb := &Board{nextID: b.nextID, Hash: b.Hash}
	for i := Coord(0); i < NoCoord; i++ {
		nb.squares[i] = Square{Coord: i, Shade: b.squares[i].Shade}
		if p := b.squares[i].Piece; p != nil {
			cp := *p
			nb.squares[i].Piece = &cp
		}
	}
	return nb
}

// Undo records the squares changed by one applied move so it can be
// reverted in place. Using an undo log instead of cloning per simulated
// move keeps the search loop free of allocations.
type Undo struct {
	From, To  Coord
	Moved     *Piece
	HadMoved  bool
	Captured  *Piece
	RookFrom  Coord
	RookTo    Coord
	RookMoved bool
	PrevHash  uint64
}

// Apply executes the move in place and returns the undo record. The move is
// assumed rule-legal; castling is recognized by a king stepping two files
// and shuffles the rook as a side effect.
func (b *Board) Apply(m Move) Undo {
	p := b.squares[m.From].Piece
	u := Undo{
		From:     m.From,
		To:       m.To,
		Moved:    p,
		HadMoved: p.Moved,
		Captured: b.squares[m.To].Piece,
		RookFrom: NoCoord,
		RookTo:   NoCoord,
		PrevHash: b.Hash,
	}

	if u.Captured != nil {
		b.Hash ^= zobristPiece[u.Captured.Color][u.Captured.Type][m.To]
	}
	b.Hash ^= zobristPiece[p.Color][p.Type][m.From]
	b.Hash ^= zobristPiece[p.Color][p.Type][m.To]

	b.squares[m.From].Piece = nil
	b.squares[m.To].Piece = p
	p.Pos = m.To
	p.Moved = true

	if p.Type == King && abs(m.To.File()-m.From.File()) == 2 {
		u.RookFrom, u.RookTo = castleRookShuffle(m)
		rook := b.squares[u.RookFrom].Piece
		if rook != nil {
			u.RookMoved = rook.Moved
			b.Hash ^= zobristPiece[rook.Color][rook.Type][u.RookFrom]
			b.Hash ^= zobristPiece[rook.Color][rook.Type][u.RookTo]
			b.squares[u.RookFrom].Piece = nil
			b.squares[u.RookTo].Piece = rook
			rook.Pos = u.RookTo
			rook.Moved = true
		}
	}

	return u
}

// Revert undoes a move applied with Apply, restoring occupants, piece
// positions, moved flags and the hash.
func (b *Board) Revert(u Undo) {
	p := u.Moved
	b.squares[u.From].Piece = p
	b.squares[u.To].Piece = u.Captured
	p.Pos = u.From
	p.Moved = u.HadMoved
	if u.Captured != nil {
		u.Captured.Pos = u.To
	}

	if u.RookFrom != NoCoord {
		rook := b.squares[u.RookTo].Piece
		if rook != nil {
			b.squares[u.RookTo].Piece = nil
			b.squares[u.RookFrom].Piece = rook
			rook.Pos = u.RookFrom
			rook.Moved = u.RookMoved
		}
	}

	b.Hash = u.PrevHash
}

// castleRookShuffle returns the rook's from/to squares for a castling king
// move.
func castleRookShuffle(m Move) (from, to Coord) {
	rank := m.From.Rank()
	if m.To.File() > m.From.File() {
		return NewCoord(7, rank), NewCoord(5, rank) // king side
	}
	return NewCoord(0, rank), NewCoord(3, rank) // queen side
}

// String renders the board as ASCII, rank 8 first.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte('1' + byte(rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			p := b.squares[NewCoord(file, rank)].Piece
			if p == nil {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(p.FENChar())
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h")
	return sb.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
