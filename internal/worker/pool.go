// Package worker distributes a move-evaluation workload across a fixed pool
// of concurrent search workers and merges their partial results.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/tbern/chessforge/internal/board"
	"github.com/tbern/chessforge/internal/engine"
)

const (
	maxWorkers = 8

	// Candidate lists at or below this size are routed whole to one worker.
	singleWorkerThreshold = 6

	maxAttempts    = 3
	initialBackoff = 50 * time.Millisecond

	// Slack past the search budget before the dispatcher gives up on a
	// worker reply.
	dispatchGrace = 2 * time.Second
)

// ErrTimeout is returned when the aggregated result loses the race against
// the dispatch deadline.
var ErrTimeout = errors.New("worker: search timed out")

// SearchError is the terminal failure surfaced once the retry budget is
// exhausted. The board is left untouched, so the caller can retry or
// disable the opponent.
type SearchError struct {
	Attempts int
	Cause    error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search failed after %d attempts: %v", e.Attempts, e.Cause)
}

func (e *SearchError) Unwrap() error { return e.Cause }

// job is one dispatched partition: an immutable board copy plus the slice
// of candidate moves this worker owns. The id correlates out-of-order
// completions with their request.
type job struct {
	id    uuid.UUID
	board *board.Board
	side  board.Color
	moves []board.Move
	cfg   engine.Config
}

type partial struct {
	id   uuid.UUID
	best board.ScoredMove
	err  error
}

// Pool is a fixed-size pool of search workers. Workers share no mutable
// state: each receives a deep board copy and returns a value, so searches
// run fully in parallel with no locking.
type Pool struct {
	size    int
	jobs    chan job
	results chan partial
}

// DefaultSize derives the pool size from hardware parallelism, bounded to a
// sane range.
func DefaultSize() int {
	n := runtime.NumCPU()
	if n < 1 {
		n = 1
	}
	if n > maxWorkers {
		n = maxWorkers
	}
	return n
}

// NewPool starts a pool with the given number of workers; size <= 0 uses
// DefaultSize.
func NewPool(size int) *Pool {
	if size < 1 {
		size = DefaultSize()
	}
	if size > maxWorkers {
		size = maxWorkers
	}
	p := &Pool{
		size:    size,
		jobs:    make(chan job, size),
		results: make(chan partial, size*4),
	}
	for i := 0; i < size; i++ {
		go p.worker()
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return p.size }

// Close stops the workers once queued jobs drain.
func (p *Pool) Close() { close(p.jobs) }

func (p *Pool) worker() {
	for j := range p.jobs {
		p.results <- p.run(j)
	}
}

func (p *Pool) run(j job) (res partial) {
	res.id = j.id
	defer func() {
		if r := recover(); r != nil {
			res.err = fmt.Errorf("worker panic: %v", r)
		}
	}()
	res.best, res.err = engine.BestAmong(j.board, j.side, j.moves, j.cfg)
	return res
}

// Request describes one best-move search.
type Request struct {
	Board  *board.Board
	Side   board.Color
	Moves  []board.Move
	Config engine.Config

	// OnRetry runs before each retry attempt. The coordinator hooks its
	// cache invalidation here, on the theory that stale cache entries may
	// have contributed to the failure.
	OnRetry func()
}

// Dispatch runs the request with bounded retries and increasing backoff.
// Transient faults (worker panic, timeout) are retried; exhausting the
// budget surfaces a SearchError carrying the attempt count and cause.
// Cancelling the context aborts between attempts; workers already running
// finish on their own and their results are discarded as stale.
func (p *Pool) Dispatch(ctx context.Context, req Request) (board.ScoredMove, error) {
	none := board.ScoredMove{Move: board.NoMove}
	if len(req.Moves) == 0 {
		return none, engine.ErrNoMoves
	}

	var lastErr error
	backoff := initialBackoff
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if req.OnRetry != nil {
				req.OnRetry()
			}
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return none, &SearchError{Attempts: attempt - 1, Cause: ctx.Err()}
			}
			backoff *= 2
		}

		best, err := p.dispatchOnce(ctx, req)
		if err == nil {
			return best, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return none, &SearchError{Attempts: attempt, Cause: err}
		}
		log.Printf("worker: dispatch attempt %d failed: %v", attempt, err)
	}

	return none, &SearchError{Attempts: maxAttempts, Cause: lastErr}
}

// dispatchOnce partitions the candidates, fans them out and reduces the
// partial results. Every partition must report back before reduction; there
// is no early return on the first completion, since the partitions hold
// disjoint moves that all need comparing.
func (p *Pool) dispatchOnce(ctx context.Context, req Request) (board.ScoredMove, error) {
	none := board.ScoredMove{Move: board.NoMove}
	id := uuid.New()
	parts := partition(req.Moves, p.size)

	for _, moves := range parts {
		p.jobs <- job{
			id:    id,
			board: req.Board.Clone(),
			side:  req.Side,
			moves: moves,
			cfg:   req.Config,
		}
	}

	timeout := req.Config.MoveTime + dispatchGrace
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	collected := make([]partial, 0, len(parts))
	for len(collected) < len(parts) {
		select {
		case r := <-p.results:
			if r.id != id {
				continue // stale result from an earlier aborted dispatch
			}
			collected = append(collected, r)
		case <-timer.C:
			return none, ErrTimeout
		case <-ctx.Done():
			return none, ctx.Err()
		}
	}

	best := none
	var firstErr error
	for _, r := range collected {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		if best.Move == board.NoMove || r.best.Score > best.Score {
			best = r.best
		}
	}
	if firstErr != nil {
		// A failed partition means part of the candidate space went
		// uncompared; fail the attempt so the retry covers it all.
		return none, firstErr
	}
	return best, nil
}

// partition splits the candidate list as evenly as possible across at most
// n workers. Small workloads stay on a single worker.
func partition(moves []board.Move, n int) [][]board.Move {
	if n < 1 || len(moves) <= singleWorkerThreshold {
		return [][]board.Move{moves}
	}
	if n > len(moves) {
		n = len(moves)
	}

	parts := make([][]board.Move, 0, n)
	base := len(moves) / n
	rem := len(moves) % n
	at := 0
	for i := 0; i < n; i++ {
		size := base
		if i < rem {
			size++
		}
		parts = append(parts, moves[at:at+size])
		at += size
	}
	return parts
}
