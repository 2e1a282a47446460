// Package board implements the chess board as an 8x8 grid of squares
// together with the per-piece move legality rules.
package board

import "fmt"

// Coord identifies a square on the board (0-63).
// Uses Little-Endian Rank-File Mapping: A1=0, H1=7, A8=56, H8=63.
type Coord uint8

// Coord constants for the squares referenced by the rules.
const (
	A1 Coord = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

const (
	A8 Coord = 56 + iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

const (
	E2 Coord = 12
	E4 Coord = 28
	E5 Coord = 36
	E7 Coord = 52
)

// NoCoord marks an invalid or absent square.
const NoCoord Coord = 64

// File returns the file (column) of the coordinate (0-7, where 0=a, 7=h).
func (c Coord) File() int {
	return int(c) & 7
}

// Rank returns the rank (row) of the coordinate (0-7, where 0=1, 7=8).
func (c Coord) Rank() int {
	return int(c) >> 3
}

// IsValid returns true if the coordinate is on the board.
func (c Coord) IsValid() bool {
	return c < NoCoord
}

// String returns the algebraic notation for the coordinate (e.g., "e4").
func (c Coord) String() string {
	if !c.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+c.File(), '1'+c.Rank())
}

// NewCoord creates a coordinate from file and rank (0-indexed).
func NewCoord(file, rank int) Coord {
	return Coord(rank*8 + file)
}

// ParseCoord parses algebraic notation (e.g., "e4") into a Coord.
func ParseCoord(s string) (Coord, error) {
	if len(s) != 2 {
		return NoCoord, fmt.Errorf("invalid square: %q", s)
	}

	file := int(s[0] - 'a')
	rank := int(s[1] - '1')

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoCoord, fmt.Errorf("invalid square: %q", s)
	}

	return NewCoord(file, rank), nil
}

// Shade is the fixed light/dark color of a square.
type Shade uint8

const (
	Light Shade = iota
	Dark
)

// ShadeOf returns the checkerboard shade of a coordinate. A1 is dark.
func ShadeOf(c Coord) Shade {
	if (c.File()+c.Rank())&1 == 0 {
		return Dark
	}
	return Light
}
