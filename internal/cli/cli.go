// Package cli implements the interactive text front end. It is a thin
// consumer of the game API and carries no rules logic of its own.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tbern/chessforge/internal/engine"
	"github.com/tbern/chessforge/internal/game"
	"github.com/tbern/chessforge/internal/storage"
	"github.com/tbern/chessforge/internal/worker"
)

// Options are the session tunables resolved by the caller. Zero values mean
// the difficulty's own defaults.
type Options struct {
	Difficulty engine.Difficulty
	Budget     time.Duration // search wall-clock budget override
	Depth      int           // search depth override
}

// CLI drives one interactive session.
type CLI struct {
	state *game.State
	pool  *worker.Pool
	store *storage.Store // nil disables the score log
	opts  Options
	in    io.Reader
	out   io.Writer
}

// New creates a session. store may be nil when persistence is unavailable.
func New(pool *worker.Pool, store *storage.Store, opts Options, in io.Reader, out io.Writer) *CLI {
	c := &CLI{
		pool:  pool,
		store: store,
		opts:  opts,
		in:    in,
		out:   out,
	}
	c.state = c.newState(opts.Difficulty)
	return c
}

func (c *CLI) newState(d engine.Difficulty) *game.State {
	s := game.NewWithPool(c.pool)
	s.SetDifficulty(d)
	s.SetSearchBudget(c.opts.Budget)
	s.SetSearchDepth(c.opts.Depth)
	return s
}

// Run reads commands until quit or EOF.
func (c *CLI) Run() {
	defer func() { c.state.Close() }()

	fmt.Fprintln(c.out, "chessforge - type 'help' for commands")
	c.show()

	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			c.handleHelp()
		case "new":
			c.handleNew()
		case "move":
			c.handleMove(args)
		case "ai":
			c.handleAI()
		case "legal":
			c.handleLegal(args)
		case "show":
			c.show()
		case "difficulty":
			c.handleDifficulty(args)
		case "stats":
			c.handleStats()
		case "quit", "exit":
			return
		default:
			fmt.Fprintf(c.out, "unknown command: %s\n", cmd)
		}
	}
}

func (c *CLI) handleHelp() {
	fmt.Fprintln(c.out, "commands:")
	fmt.Fprintln(c.out, "  move <from> <to>   apply a move, e.g. 'move e2 e4'")
	fmt.Fprintln(c.out, "  ai                 let the engine move for the side to play")
	fmt.Fprintln(c.out, "  legal <square>     list legal moves for the piece on a square")
	fmt.Fprintln(c.out, "  show               print the board")
	fmt.Fprintln(c.out, "  difficulty <lvl>   easy | medium | hard")
	fmt.Fprintln(c.out, "  stats              show the past-game score log")
	fmt.Fprintln(c.out, "  new                start a fresh game")
	fmt.Fprintln(c.out, "  quit               leave")
}

func (c *CLI) handleNew() {
	c.state.Close()
	c.state = c.newState(c.state.Difficulty())
	c.show()
}

func (c *CLI) handleMove(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.out, "usage: move <from> <to>")
		return
	}
	res, err := c.state.MakeMove(args[0], args[1])
	if err != nil {
		fmt.Fprintf(c.out, "rejected: %v\n", err)
		return
	}
	c.report(res)
}

func (c *CLI) handleAI() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ai, err := c.state.RequestAIMove(ctx)
	if err != nil {
		var se *worker.SearchError
		if errors.As(err, &se) {
			fmt.Fprintf(c.out, "opponent unavailable after %d attempts: %v\n", se.Attempts, se.Unwrap())
		} else {
			fmt.Fprintf(c.out, "ai move failed: %v\n", err)
		}
		return
	}
	if ai == nil {
		fmt.Fprintln(c.out, "no move available")
		return
	}
	fmt.Fprintf(c.out, "engine plays %s (score %d)\n", ai.Move, ai.Score)
	c.report(ai.Result)
}

func (c *CLI) handleLegal(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "usage: legal <square>")
		return
	}
	moves, err := c.state.LegalMovesFrom(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "rejected: %v\n", err)
		return
	}
	if len(moves) == 0 {
		fmt.Fprintln(c.out, "no legal moves")
		return
	}
	var dests []string
	for _, m := range moves {
		dests = append(dests, m.To.String())
	}
	fmt.Fprintln(c.out, strings.Join(dests, " "))
}

func (c *CLI) handleDifficulty(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(c.out, "difficulty is %s\n", c.state.Difficulty())
		return
	}
	d, err := engine.ParseDifficulty(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "rejected: %v\n", err)
		return
	}
	c.state.SetDifficulty(d)
	c.state.SetSearchBudget(c.opts.Budget)
	c.state.SetSearchDepth(c.opts.Depth)
	if c.store != nil {
		prefs, err := c.store.LoadPreferences()
		if err == nil {
			prefs.Difficulty = d.String()
			if err := c.store.SavePreferences(prefs); err != nil {
				fmt.Fprintf(c.out, "warning: preferences not saved: %v\n", err)
			}
		}
	}
	fmt.Fprintf(c.out, "difficulty set to %s\n", d)
}

func (c *CLI) handleStats() {
	if c.store == nil {
		fmt.Fprintln(c.out, "score log unavailable")
		return
	}
	scores, err := c.store.Scores()
	if err != nil {
		fmt.Fprintf(c.out, "score log unavailable: %v\n", err)
		return
	}
	if len(scores) == 0 {
		fmt.Fprintln(c.out, "no finished games yet")
		return
	}
	for _, s := range scores {
		fmt.Fprintf(c.out, "%s  %-5s in %d moves\n", s.When.Format("2006-01-02 15:04"), s.Outcome, s.Moves)
	}
}

func (c *CLI) report(res *game.MoveResult) {
	fmt.Fprintf(c.out, "%s (%s)\n", res.Notation, res.Kind)
	c.show()

	switch {
	case res.Checkmate:
		fmt.Fprintf(c.out, "checkmate - %s wins\n", c.state.Winner())
	case res.Stalemate:
		fmt.Fprintln(c.out, "stalemate - draw")
	case res.Check:
		fmt.Fprintln(c.out, "check")
	}

	if c.state.Over() {
		c.recordScore()
	}
}

// recordScore appends the finished game to the score log.
func (c *CLI) recordScore() {
	if c.store == nil {
		return
	}
	err := c.store.AppendScore(storage.ScoreEntry{
		Outcome: c.state.Winner().String(),
		Moves:   c.state.MoveCount(),
		When:    time.Now(),
	})
	if err != nil {
		fmt.Fprintf(c.out, "warning: score not recorded: %v\n", err)
	}
}

func (c *CLI) show() {
	fmt.Fprintln(c.out, c.state.Board())
	if !c.state.Over() {
		fmt.Fprintf(c.out, "%s to move\n", c.state.Turn())
	}
}
