package game

import (
	"context"

	"github.com/tbern/chessforge/internal/board"
	"github.com/tbern/chessforge/internal/engine"
	"github.com/tbern/chessforge/internal/worker"
)

// AIMove is the outcome of a completed opponent move request.
type AIMove struct {
	Move   board.Move
	Score  int
	Result *MoveResult
}

// RequestAIMove computes and applies the best reply for the side to move.
// The search runs on the worker pool; the call blocks until the move is
// applied, the context is cancelled, or the dispatcher gives up. A request
// issued while a previous computation is outstanding is rejected with
// ErrSearchBusy rather than double-dispatched. On any error the board is
// left unchanged.
func (s *State) RequestAIMove(ctx context.Context) (*AIMove, error) {
	if s.over {
		return nil, ErrGameOver
	}
	if !s.searching.CompareAndSwap(false, true) {
		return nil, ErrSearchBusy
	}
	defer s.searching.Store(false)

	side := s.turn
	moves := s.allLegalMoves(side)
	if len(moves) == 0 {
		// Terminal position that classify has not seen yet; nothing to play.
		return nil, nil
	}

	var (
		sm  board.ScoredMove
		err error
	)
	switch s.cfg.Strategy {
	case engine.StrategyRandomTop:
		sm, err = engine.PickRandomTop(s.board, side, moves, s.cfg.TopMoveWindow, s.rng)
	case engine.StrategyGreedy:
		sm, err = engine.PickGreedy(s.board, side, moves)
	default:
		if s.pool == nil {
			s.pool = worker.NewPool(0)
			s.ownPool = true
		}
		sm, err = s.pool.Dispatch(ctx, worker.Request{
			Board:   s.board,
			Side:    side,
			Moves:   moves,
			Config:  s.cfg,
			OnRetry: s.invalidateCaches,
		})
	}
	if err != nil {
		return nil, err
	}

	// An abort that raced the completed search discards the result; the
	// workers were left to run out on their own.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	res, err := s.applyMove(sm.Move)
	if err != nil {
		return nil, err
	}
	return &AIMove{Move: sm.Move, Score: sm.Score, Result: res}, nil
}
