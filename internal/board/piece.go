package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Symbol returns the algebraic notation letter for the type.
// Pawns have no letter.
func (pt PieceType) Symbol() string {
	switch pt {
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return ""
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	chars := []byte{'p', 'n', 'b', 'r', 'q', 'k', ' '}
	if pt > NoPieceType {
		return ' '
	}
	return chars[pt]
}

// TypeFromChar converts a FEN character (either case) to a PieceType.
func TypeFromChar(ch byte) PieceType {
	switch ch {
	case 'p', 'P':
		return Pawn
	case 'n', 'N':
		return Knight
	case 'b', 'B':
		return Bishop
	case 'r', 'R':
		return Rook
	case 'q', 'Q':
		return Queen
	case 'k', 'K':
		return King
	default:
		return NoPieceType
	}
}

// Piece is a single chess piece. The ID is assigned once when the piece
// enters the board and never changes across moves, so a piece that moved
// can be told apart from a captured-and-replaced one.
type Piece struct {
	ID    int
	Type  PieceType
	Color Color
	Pos   Coord
	Moved bool
}

// FENChar returns the piece's FEN character: uppercase white, lowercase black.
func (p *Piece) FENChar() byte {
	ch := p.Type.Char()
	if p.Color == White {
		return ch - 'a' + 'A'
	}
	return ch
}
