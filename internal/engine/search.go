package engine

import (
	"errors"
	"sort"
	"time"

	"github.com/tbern/chessforge/internal/board"
)

// Search constants.
const (
	Infinity  = 1 << 20
	MateScore = 1 << 19

	// deadlineCheckMask throttles deadline polling: the wall clock is read
	// once per 256 nodes instead of on every recursive call.
	deadlineCheckMask = 255

	// tieBreakDivisor folds a small fraction of the static score of the
	// position after a root move into its search score.
	tieBreakDivisor = 16
)

// ErrNoMoves is returned when a search is asked to choose among zero
// candidates.
var ErrNoMoves = errors.New("engine: no candidate moves")

// Searcher runs one depth-limited minimax search with alpha-beta pruning,
// quiescence extension and transposition caching. A Searcher is used by a
// single goroutine for a single search invocation; its table dies with it.
type Searcher struct {
	cfg      Config
	tt       *Table
	deadline time.Time
	nodes    uint64
	timedOut bool
	rootMax  bool
}

// NewSearcher creates a searcher for one invocation of the given config.
func NewSearcher(cfg Config) *Searcher {
	if cfg.Depth < 1 {
		cfg.Depth = 1
	}
	if cfg.QuiescenceDepth < 0 {
		cfg.QuiescenceDepth = 0
	}
	if cfg.BranchLimit < 1 {
		cfg.BranchLimit = 64
	}
	return &Searcher{cfg: cfg, tt: NewTable(cfg.TableMB)}
}

// Nodes returns the number of nodes visited.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// expired polls the wall-clock budget. Once the deadline passes, every
// subsequent call reports true without touching the clock again.
func (s *Searcher) expired() bool {
	if s.timedOut {
		return true
	}
	if s.deadline.IsZero() {
		return false
	}
	s.nodes++
	if s.nodes&deadlineCheckMask != 0 {
		return false
	}
	if time.Now().After(s.deadline) {
		s.timedOut = true
	}
	return s.timedOut
}

// sentinel is the extreme value returned by a branch cut off by the
// deadline, chosen so the unexplored branch is never preferred at the root.
func (s *Searcher) sentinel() int {
	if s.rootMax {
		return -Infinity
	}
	return Infinity
}

func sideFor(maximizing bool) board.Color {
	if maximizing {
		return board.Black
	}
	return board.White
}

// Minimax searches the position to the given depth. maximizing means Black
// to move, per the evaluator's sign convention. The board is mutated during
// recursion via the undo log and restored before returning.
func (s *Searcher) Minimax(b *board.Board, depth, ply, alpha, beta int, maximizing bool) int {
	if s.expired() {
		return s.sentinel()
	}

	side := sideFor(maximizing)
	key := board.PositionKey(b, side)
	if score, ok := s.tt.Probe(key, depth); ok {
		return score
	}

	if depth <= 0 {
		return s.quiesce(b, alpha, beta, maximizing, s.cfg.QuiescenceDepth)
	}

	moves := board.AllLegalMoves(b, side)
	if len(moves) == 0 {
		if board.InCheck(b, side) {
			// Mated side to move; prefer faster mates.
			if maximizing {
				return -(MateScore - ply)
			}
			return MateScore - ply
		}
		return 0 // stalemate
	}

	orderByCaptureValue(b, moves)
	if len(moves) > s.cfg.BranchLimit {
		moves = moves[:s.cfg.BranchLimit]
	}

	var best int
	if maximizing {
		best = -Infinity
		for _, m := range moves {
			u := b.Apply(m)
			v := s.Minimax(b, depth-1, ply+1, alpha, beta, false)
			b.Revert(u)
			if s.timedOut {
				return s.sentinel()
			}
			if v > best {
				best = v
			}
			if best > alpha {
				alpha = best
			}
			if alpha >= beta {
				break
			}
		}
	} else {
		best = Infinity
		for _, m := range moves {
			u := b.Apply(m)
			v := s.Minimax(b, depth-1, ply+1, alpha, beta, true)
			b.Revert(u)
			if s.timedOut {
				return s.sentinel()
			}
			if v < best {
				best = v
			}
			if best < beta {
				beta = best
			}
			if alpha >= beta {
				break
			}
		}
	}

	s.tt.Store(key, depth, best)
	return best
}

// quiesce keeps resolving capture moves past the horizon until no capture
// improves on the static evaluation or the extra depth is exhausted,
// avoiding the horizon effect of judging a position mid-exchange.
func (s *Searcher) quiesce(b *board.Board, alpha, beta int, maximizing bool, qdepth int) int {
	stand := Evaluate(b)
	if qdepth <= 0 || s.expired() {
		return stand
	}

	side := sideFor(maximizing)
	captures := captureMoves(b, side)
	if len(captures) == 0 {
		return stand
	}
	orderByCaptureValue(b, captures)

	if maximizing {
		if stand >= beta {
			return stand
		}
		if stand > alpha {
			alpha = stand
		}
		best := stand
		for _, m := range captures {
			u := b.Apply(m)
			v := s.quiesce(b, alpha, beta, false, qdepth-1)
			b.Revert(u)
			if v > best {
				best = v
			}
			if best > alpha {
				alpha = best
			}
			if alpha >= beta {
				break
			}
		}
		return best
	}

	if stand <= alpha {
		return stand
	}
	if stand < beta {
		beta = stand
	}
	best := stand
	for _, m := range captures {
		u := b.Apply(m)
		v := s.quiesce(b, alpha, beta, true, qdepth-1)
		b.Revert(u)
		if v < best {
			best = v
		}
		if best < beta {
			beta = best
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// captureMoves filters the side's legal moves down to captures.
func captureMoves(b *board.Board, side board.Color) []board.Move {
	all := board.AllLegalMoves(b, side)
	caps := all[:0]
	for _, m := range all {
		if b.PieceAt(m.To) != nil {
			caps = append(caps, m)
		}
	}
	return caps
}

// orderByCaptureValue sorts candidates by captured-piece value descending.
// Quiet moves keep their enumeration order at the tail.
func orderByCaptureValue(b *board.Board, moves []board.Move) {
	sort.SliceStable(moves, func(i, j int) bool {
		return VictimWorth(b, moves[i]) > VictimWorth(b, moves[j])
	})
}

// BestAmong searches the given candidate moves for side and returns the one
// with the highest combined score: the minimax score of the reply tree plus
// a small fraction of the static evaluation as a tie-breaker. The returned
// Score is from the moving side's perspective (higher is better for side).
// If the wall-clock budget runs out mid-loop, the best move found so far is
// returned.
func BestAmong(b *board.Board, side board.Color, moves []board.Move, cfg Config) (board.ScoredMove, error) {
	if len(moves) == 0 {
		return board.ScoredMove{Move: board.NoMove}, ErrNoMoves
	}

	s := NewSearcher(cfg)
	s.rootMax = side == board.Black
	if cfg.MoveTime > 0 {
		s.deadline = time.Now().Add(cfg.MoveTime)
	}

	work := b.Clone()
	ordered := append([]board.Move(nil), moves...)
	orderByCaptureValue(work, ordered)

	best := board.ScoredMove{Move: board.NoMove, Score: -Infinity}
	for _, m := range ordered {
		if s.timedOut {
			break
		}

		u := work.Apply(m)
		v := s.Minimax(work, s.cfg.Depth-1, 1, -Infinity, Infinity, !s.rootMax)
		static := Evaluate(work)
		work.Revert(u)

		combined := v + static/tieBreakDivisor
		if side == board.White {
			combined = -combined
		}

		if best.Move == board.NoMove || combined > best.Score {
			best = board.ScoredMove{Move: m, Score: combined}
		}
	}

	return best, nil
}

// FindBestMove runs the full search over every legal move for side.
func FindBestMove(b *board.Board, side board.Color, cfg Config) (board.ScoredMove, error) {
	return BestAmong(b, side, board.AllLegalMoves(b, side), cfg)
}
