package cli

import (
	"strings"
	"testing"

	"github.com/tbern/chessforge/internal/engine"
)

// runSession feeds a scripted command sequence through a CLI with no
// persistence and returns everything it printed.
func runSession(t *testing.T, script string) string {
	t.Helper()
	var out strings.Builder
	c := New(nil, nil, Options{Difficulty: engine.Medium}, strings.NewReader(script), &out)
	c.Run()
	return out.String()
}

func TestMoveCommand(t *testing.T) {
	out := runSession(t, "move e2 e4\nquit\n")

	if !strings.Contains(out, "e2e4 (normal)") {
		t.Errorf("move not reported:\n%s", out)
	}
	if !strings.Contains(out, "Black to move") {
		t.Errorf("turn not flipped:\n%s", out)
	}
}

func TestRejectedMoveReported(t *testing.T) {
	out := runSession(t, "move e7 e5\nmove e2 e9\nquit\n")

	if strings.Count(out, "rejected:") != 2 {
		t.Errorf("expected two rejections:\n%s", out)
	}
	// The board is untouched, so white is still to move.
	if !strings.Contains(out, "White to move") {
		t.Errorf("state advanced on a rejected move:\n%s", out)
	}
}

func TestLegalCommand(t *testing.T) {
	out := runSession(t, "legal e2\nquit\n")

	if !strings.Contains(out, "e3 e4") {
		t.Errorf("legal destinations for e2 missing:\n%s", out)
	}
}

func TestDifficultyCommand(t *testing.T) {
	out := runSession(t, "difficulty\ndifficulty hard\ndifficulty\ndifficulty extreme\nquit\n")

	if !strings.Contains(out, "difficulty is medium") {
		t.Errorf("initial difficulty not reported:\n%s", out)
	}
	if !strings.Contains(out, "difficulty set to hard") {
		t.Errorf("difficulty change not applied:\n%s", out)
	}
	if !strings.Contains(out, "difficulty is hard") {
		t.Errorf("changed difficulty not reported:\n%s", out)
	}
	if !strings.Contains(out, "rejected:") {
		t.Errorf("unknown difficulty accepted:\n%s", out)
	}
}

func TestStatsWithoutStore(t *testing.T) {
	out := runSession(t, "stats\nquit\n")
	if !strings.Contains(out, "score log unavailable") {
		t.Errorf("missing store not reported:\n%s", out)
	}
}

func TestNewResetsGame(t *testing.T) {
	out := runSession(t, "move e2 e4\nnew\nlegal e2\nquit\n")

	// After the reset the e2 pawn is back with both of its steps.
	if !strings.Contains(out, "e3 e4") {
		t.Errorf("new game did not reset the board:\n%s", out)
	}
}

func TestUnknownCommand(t *testing.T) {
	out := runSession(t, "castle\nquit\n")
	if !strings.Contains(out, "unknown command: castle") {
		t.Errorf("unknown command not reported:\n%s", out)
	}
}

func TestCheckmateReported(t *testing.T) {
	script := "move f2 f3\nmove e7 e5\nmove g2 g4\nmove d8 h4\nquit\n"
	out := runSession(t, script)

	if !strings.Contains(out, "checkmate - black wins") {
		t.Errorf("checkmate not announced:\n%s", out)
	}
}
