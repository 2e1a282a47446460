// Package game owns the mutable state of one chess game: turn tracking,
// move validation and application, terminal classification and notation.
// The engine and worker packages only ever see immutable board snapshots.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tbern/chessforge/internal/board"
	"github.com/tbern/chessforge/internal/engine"
	"github.com/tbern/chessforge/internal/worker"
)

// Winner identifies how a finished game ended.
type Winner int

const (
	WinnerNone Winner = iota
	WinnerWhite
	WinnerBlack
	WinnerDraw
)

// String returns the winner name.
func (w Winner) String() string {
	switch w {
	case WinnerWhite:
		return "white"
	case WinnerBlack:
		return "black"
	case WinnerDraw:
		return "draw"
	}
	return "none"
}

// MoveKind classifies an applied move.
type MoveKind int

const (
	KindNormal MoveKind = iota
	KindCapture

	// Declared for API completeness; MakeMove never reports these.
	// Castling executes as a king move and reports KindNormal, en passant
	// and promotion are outside the implemented rules.
	KindCastle
	KindEnPassant
	KindPromotion
)

// String returns the move kind name.
func (k MoveKind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindCapture:
		return "capture"
	case KindCastle:
		return "castle"
	case KindEnPassant:
		return "en-passant"
	case KindPromotion:
		return "promotion"
	}
	return "unknown"
}

// Invalid-input failures. Reported synchronously, never mutate state.
var (
	ErrGameOver    = errors.New("game: game is over")
	ErrNoPiece     = errors.New("game: no piece at source square")
	ErrWrongTurn   = errors.New("game: piece belongs to the other side")
	ErrIllegalMove = errors.New("game: move violates the rules")
	ErrSearchBusy  = errors.New("game: an AI computation is already in progress")
)

// MoveResult is the structured outcome of an applied move, emitted directly
// by the applier so no observer has to reconstruct it by diffing boards.
type MoveResult struct {
	Kind      MoveKind
	Captured  *board.Piece
	Notation  string
	Check     bool // the side now to move is in check
	Checkmate bool
	Stalemate bool
}

type moveCacheKey struct {
	position uint64
	from     board.Coord
}

// State is one game in progress. It is owned by a single coordinating
// goroutine; the board it holds is replaced wholesale on every applied move,
// so snapshots handed to search workers stay valid without locking.
type State struct {
	board     *board.Board
	turn      board.Color
	over      bool
	winner    Winner
	moveCount int
	captures  [2]int // pieces taken by each color
	history   []string

	difficulty engine.Difficulty
	cfg        engine.Config
	rng        *rand.Rand
	pool       *worker.Pool
	ownPool    bool // pool was created lazily and is closed by Close
	searching  atomic.Bool

	// Legal-move memo, keyed by (position key, origin square). Cleared on
	// every applied move and between search retries.
	moveCache map[moveCacheKey][]board.Move
}

// New resets to the standard starting position with the default difficulty.
func New() *State {
	return NewWithPool(nil)
}

// NewWithPool is New with an explicit worker pool. A nil pool is created on
// first use with the default size.
func NewWithPool(pool *worker.Pool) *State {
	s := &State{
		board:     board.NewGame(),
		turn:      board.White,
		winner:    WinnerNone,
		pool:      pool,
		moveCache: make(map[moveCacheKey][]board.Move),
	}
	s.setDifficulty(engine.Medium)
	return s
}

// NewFromFEN starts a game from an arbitrary position.
func NewFromFEN(fen string) (*State, error) {
	b, stm, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	s := NewWithPool(nil)
	s.board = b
	s.turn = stm
	return s, nil
}

// Close releases the worker pool if the state created it lazily. Pools
// supplied by the caller are left alone; they outlive the game.
func (s *State) Close() {
	if s.ownPool && s.pool != nil {
		s.pool.Close()
	}
	s.pool = nil
	s.ownPool = false
}

// Board returns the current board snapshot. Callers must treat it as
// read-only; it is replaced, never mutated, when a move applies.
func (s *State) Board() *board.Board { return s.board }

// Turn returns the side to move.
func (s *State) Turn() board.Color { return s.turn }

// Over reports whether the game has ended.
func (s *State) Over() bool { return s.over }

// Winner returns the game outcome, WinnerNone while in progress.
func (s *State) Winner() Winner { return s.winner }

// MoveCount returns the number of applied moves.
func (s *State) MoveCount() int { return s.moveCount }

// CaptureCount returns how many pieces the given color has taken.
func (s *State) CaptureCount(c board.Color) int { return s.captures[c] }

// History returns the notated moves in order.
func (s *State) History() []string {
	return append([]string(nil), s.history...)
}

// Difficulty returns the current AI difficulty.
func (s *State) Difficulty() engine.Difficulty { return s.difficulty }

// SetDifficulty remaps the AI strategy and invalidates cached search state.
func (s *State) SetDifficulty(d engine.Difficulty) {
	s.setDifficulty(d)
	s.invalidateCaches()
}

func (s *State) setDifficulty(d engine.Difficulty) {
	s.difficulty = d
	s.cfg = engine.DifficultySettings[d]
	s.rng = engine.NewRand(s.cfg.RandSeed)
}

// SetSearchBudget overrides the wall-clock budget of the current
// difficulty's search. Zero restores the difficulty default.
func (s *State) SetSearchBudget(d time.Duration) {
	if d <= 0 {
		s.cfg.MoveTime = engine.DifficultySettings[s.difficulty].MoveTime
		return
	}
	s.cfg.MoveTime = d
}

// SetSearchDepth overrides the full-width depth of the current difficulty's
// search. Zero restores the difficulty default.
func (s *State) SetSearchDepth(n int) {
	if n <= 0 {
		s.cfg.Depth = engine.DifficultySettings[s.difficulty].Depth
		return
	}
	s.cfg.Depth = n
}

// ValidateMove checks a move against the current turn without applying it.
// It is side-effect-free and idempotent: calling it twice without an
// intervening MakeMove returns identical results.
func (s *State) ValidateMove(from, to string) (MoveKind, error) {
	m, mover, err := s.resolve(from, to)
	if err != nil {
		return KindNormal, err
	}
	if !board.IsLegalMove(s.board, mover, m.From, m.To) {
		return KindNormal, ErrIllegalMove
	}
	if s.board.PieceAt(m.To) != nil {
		return KindCapture, nil
	}
	return KindNormal, nil
}

// MakeMove validates and applies a move for the side to move.
func (s *State) MakeMove(from, to string) (*MoveResult, error) {
	m, mover, err := s.resolve(from, to)
	if err != nil {
		return nil, err
	}
	if !board.IsLegalMove(s.board, mover, m.From, m.To) {
		return nil, ErrIllegalMove
	}
	return s.applyMove(m)
}

// resolve parses the squares and runs the synchronous input checks: range,
// piece presence and turn.
func (s *State) resolve(from, to string) (board.Move, *board.Piece, error) {
	if s.over {
		return board.NoMove, nil, ErrGameOver
	}
	f, err := board.ParseCoord(from)
	if err != nil {
		return board.NoMove, nil, err
	}
	t, err := board.ParseCoord(to)
	if err != nil {
		return board.NoMove, nil, err
	}
	p := s.board.PieceAt(f)
	if p == nil {
		return board.NoMove, nil, fmt.Errorf("%w: %s", ErrNoPiece, from)
	}
	if p.Color != s.turn {
		return board.NoMove, nil, fmt.Errorf("%w: %s to move", ErrWrongTurn, s.turn)
	}
	return board.Move{From: f, To: t}, p, nil
}

// applyMove executes an already-validated move: the board is cloned, the
// move applied to the clone, and the clone swapped in wholesale.
func (s *State) applyMove(m board.Move) (*MoveResult, error) {
	next := s.board.Clone()
	mover := next.PieceAt(m.From)
	u := next.Apply(m)

	res := &MoveResult{
		Kind:     KindNormal,
		Captured: u.Captured,
		Notation: notate(mover.Type, m, u.Captured != nil),
	}
	if u.Captured != nil {
		res.Kind = KindCapture
	}

	s.board = next
	s.moveCount++
	if u.Captured != nil {
		s.captures[mover.Color]++
	}
	s.history = append(s.history, res.Notation)
	s.turn = s.turn.Other()
	s.invalidateCaches()

	s.classify(res, mover.Color)
	return res, nil
}

// classify re-runs check detection for both kings and settles terminal
// states. A board missing either king ends the game immediately in favor of
// the opposing color, with no further checks.
func (s *State) classify(res *MoveResult, moved board.Color) {
	opponent := moved.Other()

	if s.board.FindKing(opponent) == board.NoCoord {
		s.finish(winnerFor(moved))
		return
	}
	if s.board.FindKing(moved) == board.NoCoord {
		s.finish(winnerFor(opponent))
		return
	}

	res.Check = board.InCheck(s.board, opponent)
	if res.Check {
		if board.IsCheckmate(s.board, opponent) {
			res.Checkmate = true
			s.finish(winnerFor(moved))
		}
		return
	}
	if board.IsStalemate(s.board, opponent) {
		res.Stalemate = true
		s.finish(WinnerDraw)
	}
}

func (s *State) finish(w Winner) {
	s.over = true
	s.winner = w
}

func winnerFor(c board.Color) Winner {
	if c == board.White {
		return WinnerWhite
	}
	return WinnerBlack
}

// LegalMovesFrom enumerates the legal moves for the piece on the square,
// memoized by position key until the next applied move.
func (s *State) LegalMovesFrom(from string) ([]board.Move, error) {
	f, err := board.ParseCoord(from)
	if err != nil {
		return nil, err
	}
	p := s.board.PieceAt(f)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoPiece, from)
	}

	key := moveCacheKey{position: board.PositionKey(s.board, s.turn), from: f}
	if moves, ok := s.moveCache[key]; ok {
		return moves, nil
	}
	moves := board.LegalMoves(s.board, p)
	s.moveCache[key] = moves
	return moves, nil
}

// allLegalMoves enumerates all legal moves for the side, sharing the
// per-square memo.
func (s *State) allLegalMoves(side board.Color) []board.Move {
	var out []board.Move
	for _, p := range s.board.Pieces(side) {
		key := moveCacheKey{position: board.PositionKey(s.board, s.turn), from: p.Pos}
		moves, ok := s.moveCache[key]
		if !ok {
			moves = board.LegalMoves(s.board, p)
			s.moveCache[key] = moves
		}
		out = append(out, moves...)
	}
	return out
}

// invalidateCaches drops memoized legal moves. The most recently applied
// move always invalidates outstanding caches tied to the prior position.
func (s *State) invalidateCaches() {
	s.moveCache = make(map[moveCacheKey][]board.Move)
}

// notate renders a move as <pieceSymbol><from><x if capture><to>.
func notate(pt board.PieceType, m board.Move, capture bool) string {
	var sb strings.Builder
	sb.WriteString(pt.Symbol())
	sb.WriteString(m.From.String())
	if capture {
		sb.WriteByte('x')
	}
	sb.WriteString(m.To.String())
	return sb.String()
}
