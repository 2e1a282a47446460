package engine

import (
	"math/rand"
	"sort"
	"time"

	"github.com/tbern/chessforge/internal/board"
)

// RankByStatic scores every candidate with the static evaluator only
// (apply, evaluate, revert) and returns them sorted best-first from the
// moving side's perspective.
func RankByStatic(b *board.Board, side board.Color, moves []board.Move) []board.ScoredMove {
	work := b.Clone()
	ranked := make([]board.ScoredMove, 0, len(moves))
	for _, m := range moves {
		u := work.Apply(m)
		score := Evaluate(work)
		work.Revert(u)
		if side == board.White {
			score = -score
		}
		ranked = append(ranked, board.ScoredMove{Move: m, Score: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// PickGreedy returns the single best move by static heuristic.
func PickGreedy(b *board.Board, side board.Color, moves []board.Move) (board.ScoredMove, error) {
	if len(moves) == 0 {
		return board.ScoredMove{Move: board.NoMove}, ErrNoMoves
	}
	return RankByStatic(b, side, moves)[0], nil
}

// PickRandomTop ranks the candidates statically and picks one at random
// among the top window moves.
func PickRandomTop(b *board.Board, side board.Color, moves []board.Move, window int, rng *rand.Rand) (board.ScoredMove, error) {
	if len(moves) == 0 {
		return board.ScoredMove{Move: board.NoMove}, ErrNoMoves
	}
	if window < 1 {
		window = 1
	}
	ranked := RankByStatic(b, side, moves)
	if window > len(ranked) {
		window = len(ranked)
	}
	return ranked[rng.Intn(window)], nil
}

// NewRand builds the strategy RNG. A zero seed uses the wall clock; any
// other seed makes the random-top strategy reproducible.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
