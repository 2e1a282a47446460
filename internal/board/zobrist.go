package board

// Zobrist keys for incremental position hashing, one random constant per
// (color, piece type, square) plus a side-to-move key. The board XORs piece
// keys in and out as occupants change; the side key is folded in by callers
// that cache per side to move.
var (
	zobristPiece      [2][6][64]uint64
	zobristSideToMove uint64
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x6B7A54D1C0FFEE42) // Fixed seed

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := Coord(0); sq < NoCoord; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}

	zobristSideToMove = rng.next()
}

// ZobristPiece returns the key for a piece on a square.
func ZobristPiece(c Color, pt PieceType, sq Coord) uint64 {
	return zobristPiece[c][pt][sq]
}

// ZobristSideToMove returns the side-to-move key.
func ZobristSideToMove() uint64 {
	return zobristSideToMove
}

// PositionKey combines the board's placement hash with the side to move.
// This is the key used by the transposition table and move caches.
func PositionKey(b *Board, sideToMove Color) uint64 {
	key := b.Hash
	if sideToMove == Black {
		key ^= zobristSideToMove
	}
	return key
}

// ComputeHash recomputes the placement hash from scratch. Used by tests to
// verify the incremental updates done in Apply and Revert.
func ComputeHash(b *Board) uint64 {
	var h uint64
	for sq := Coord(0); sq < NoCoord; sq++ {
		if p := b.PieceAt(sq); p != nil {
			h ^= zobristPiece[p.Color][p.Type][sq]
		}
	}
	return h
}
