package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbern/chessforge/internal/board"
	"github.com/tbern/chessforge/internal/engine"
	"github.com/tbern/chessforge/internal/testutil"
	"github.com/tbern/chessforge/internal/worker"
)

func TestAIMoveGreedy(t *testing.T) {
	s := New()
	s.SetDifficulty(engine.Medium)

	ai, err := s.RequestAIMove(context.Background())
	testutil.AssertNoError(t, err)

	if ai == nil || ai.Move == board.NoMove {
		t.Fatal("no move played")
	}
	testutil.AssertEqual(t, s.MoveCount(), 1)
	testutil.AssertEqual(t, s.Turn(), board.Black)
	if ai.Result == nil || ai.Result.Notation == "" {
		t.Error("AI move missing its structured result")
	}
}

func TestAIMoveEasy(t *testing.T) {
	s := New()
	s.SetDifficulty(engine.Easy)

	ai, err := s.RequestAIMove(context.Background())
	testutil.AssertNoError(t, err)
	if ai == nil || ai.Move == board.NoMove {
		t.Fatal("no move played")
	}

	// The pick must be a legal move for the mover, whatever the RNG said.
	testutil.AssertEqual(t, s.MoveCount(), 1)
}

func TestAIMoveHardUsesPool(t *testing.T) {
	pool := worker.NewPool(2)
	defer pool.Close()

	s := NewWithPool(pool)
	s.SetDifficulty(engine.Hard)
	s.SetSearchBudget(150 * time.Millisecond)

	ai, err := s.RequestAIMove(context.Background())
	testutil.AssertNoError(t, err)
	if ai == nil || ai.Move == board.NoMove {
		t.Fatal("no move played")
	}
	testutil.AssertEqual(t, s.MoveCount(), 1)
}

func TestAIMoveFindsMate(t *testing.T) {
	pool := worker.NewPool(2)
	defer pool.Close()

	s, err := NewFromFEN("6k1/8/6K1/8/8/8/8/R7 w")
	testutil.AssertNoError(t, err)
	s.SetDifficulty(engine.Hard)
	s.SetSearchBudget(2 * time.Second)
	s.pool = pool

	ai, err := s.RequestAIMove(context.Background())
	testutil.AssertNoError(t, err)

	want, _ := board.ParseMove("a1a8")
	testutil.AssertEqual(t, ai.Move, want)
	testutil.AssertTrue(t, ai.Result.Checkmate, "mate not classified")
	testutil.AssertEqual(t, s.Winner(), WinnerWhite)
}

func TestAIMoveAfterGameOver(t *testing.T) {
	s := New()
	for _, m := range [][2]string{{"f2", "f3"}, {"e7", "e5"}, {"g2", "g4"}, {"d8", "h4"}} {
		_, err := s.MakeMove(m[0], m[1])
		testutil.AssertNoError(t, err)
	}

	_, err := s.RequestAIMove(context.Background())
	if !errors.Is(err, ErrGameOver) {
		t.Errorf("got %v, want ErrGameOver", err)
	}
}

func TestAIMoveNoMovesAvailable(t *testing.T) {
	// A stalemate position loaded directly: nothing to play, no error.
	s, err := NewFromFEN("7k/8/6Q1/8/8/8/8/K7 b")
	testutil.AssertNoError(t, err)
	s.SetDifficulty(engine.Medium)

	ai, err := s.RequestAIMove(context.Background())
	testutil.AssertNoError(t, err)
	if ai != nil {
		t.Errorf("played %s in a position with no legal moves", ai.Move)
	}
}

func TestAIMoveRejectsConcurrentRequest(t *testing.T) {
	pool := worker.NewPool(2)
	defer pool.Close()

	s := NewWithPool(pool)
	s.SetDifficulty(engine.Hard)
	s.SetSearchBudget(2 * time.Second)

	done := make(chan error, 1)
	go func() {
		_, err := s.RequestAIMove(context.Background())
		done <- err
	}()

	// Give the first request time to dispatch, then race a second one
	// against the outstanding search.
	time.Sleep(100 * time.Millisecond)
	_, err := s.RequestAIMove(context.Background())
	if !errors.Is(err, ErrSearchBusy) {
		t.Errorf("second request got %v, want ErrSearchBusy", err)
	}

	testutil.AssertNoError(t, <-done)
	testutil.AssertEqual(t, s.MoveCount(), 1)
}

func TestCloseReleasesOwnedPool(t *testing.T) {
	s := New()
	s.SetDifficulty(engine.Hard)
	s.SetSearchBudget(100 * time.Millisecond)

	_, err := s.RequestAIMove(context.Background())
	testutil.AssertNoError(t, err)
	if s.pool == nil {
		t.Fatal("search did not create a pool")
	}

	s.Close()
	if s.pool != nil {
		t.Error("owned pool still attached after Close")
	}

	// A caller-supplied pool must survive the game that used it.
	pool := worker.NewPool(2)
	defer pool.Close()
	s2 := NewWithPool(pool)
	s2.Close()
	testutil.AssertEqual(t, pool.Size(), 2)
}

func TestAIMoveCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New()
	s.SetDifficulty(engine.Medium)

	_, err := s.RequestAIMove(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
	testutil.AssertEqual(t, s.MoveCount(), 0)
}
