package cli

import (
	"bytes"
	"context"
	"dragchess/src"
	"dragchess/src/engine"
	"dragchess/src/engine/enginetest"
	"dragchess/src/logic/anim"
	"dragchess/src/logic/board"
	"dragchess/src/logic/convert/convcoord"
	"dragchess/src/logx"
	"strings"
	"testing"
	"time"
)

func newTestCLI(t *testing.T, input string, async bool, replies ...string) (*CLIProcessing, *src.Game, *bytes.Buffer) {
	t.Helper()
	geo := convcoord.Classic
	reg := board.NewClassic(geo)
	eng := enginetest.New(replies...)
	a := engine.NewAdapter(eng, logx.Nop(), engine.Policy{Timeout: time.Second})
	g := src.NewGame(geo, reg, a, anim.NewTicks(reg, 8), logx.Nop(), src.Options{Async: async})
	t.Cleanup(g.Close)

	var out bytes.Buffer
	c := NewCLI(g, PrintSnapshot, strings.NewReader(input), &out)
	c.poll = time.Millisecond
	return c, g, &out
}

func TestLineModePlaysBothSides(t *testing.T) {
	for _, async := range []bool{false, true} {
		c, g, out := newTestCLI(t, "e2e4\ng1f3\nhistory\nq\n", async, "e7e5", "b8c6")
		if err := c.RunLineMode(context.Background()); err != nil {
			t.Fatal(err)
		}
		if got := g.History().String(); got != "e2e4 e7e5 g1f3 b8c6 " {
			t.Errorf("async=%v history = %q", async, got)
		}
		for _, want := range []string{"light: e2e4", "dark: e7e5", "dark: b8c6", "e2e4 e7e5 g1f3 b8c6\n"} {
			if !strings.Contains(out.String(), want) {
				t.Errorf("async=%v output misses %q:\n%s", async, want, out.String())
			}
		}
	}
}

func TestLineModeRejectsBadInput(t *testing.T) {
	c, g, out := newTestCLI(t, "e2e9\ne4e5\nhello\nquit\n", false, "e7e5")
	if err := c.RunLineMode(context.Background()); err != nil {
		t.Fatal(err)
	}
	if g.History().Len() != 0 {
		t.Errorf("history = %q", g.History().String())
	}
	if n := strings.Count(out.String(), "Invalid move"); n != 3 {
		t.Errorf("invalid moves reported = %d:\n%s", n, out.String())
	}
}

func TestLineModeStalledEngine(t *testing.T) {
	c, g, out := newTestCLI(t, "e2e4\nd2d4\n\n\nq\n", false, "e7", "e7", "e7", "e7", "e7", "e7e5")
	if err := c.RunLineMode(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Engine failed 3 times") {
		t.Errorf("stall not reported:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Engine is still thinking") {
		t.Errorf("move during engine turn accepted:\n%s", out.String())
	}
	// the empty lines pumped the engine again
	if got := g.History().String(); got != "e2e4 e7e5 " {
		t.Errorf("history = %q", got)
	}
}

func TestLineModeFEN(t *testing.T) {
	c, _, out := newTestCLI(t, "e2e4\nfen\nq\n", false, "e7e5")
	if err := c.RunLineMode(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w ") {
		t.Errorf("fen missing:\n%s", out.String())
	}

	// the board accepts moves the rules do not
	c, _, out = newTestCLI(t, "e2e5\nfen\nq\n", false, "e7e6")
	if err := c.RunLineMode(context.Background()); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"rnbqkbnr/pppp1ppp/4p3/4P3/8/8/PPPP1PPP/RNBQKBNR w - - 0 1", "rules replay stopped at e2e5"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output misses %q:\n%s", want, out.String())
		}
	}
}

func TestPrintSnapshotPlain(t *testing.T) {
	var buf bytes.Buffer
	PrintSnapshot(&buf, board.NewClassic(convcoord.Classic).Snapshot(), false)
	lines := strings.Split(buf.String(), "\n")
	// blank, files, rank 8 ...
	if !strings.HasPrefix(lines[2], "8  ♜  ♞  ♝  ♛  ♚  ♝  ♞  ♜") {
		t.Errorf("rank 8 = %q", lines[2])
	}
	if !strings.HasPrefix(lines[5], "5  .  .  .") {
		t.Errorf("rank 5 = %q", lines[5])
	}
	if !strings.HasPrefix(lines[9], "1  ♖  ♘  ♗  ♕  ♔  ♗  ♘  ♖") {
		t.Errorf("rank 1 = %q", lines[9])
	}
}
