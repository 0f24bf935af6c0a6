package cli

import (
	"bufio"
	"context"
	"dragchess/src"
	"dragchess/src/base"
	"dragchess/src/logic/convert/convcoord"
	"dragchess/src/logic/convert/convfen"
	"dragchess/src/logic/convert/convpgn"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const (
	defaultPoll        = 5 * time.Millisecond
	defaultMaxFailures = 3
	frame              = 16 * time.Millisecond
)

type DrawFunc func(w io.Writer, snap [8]string, colored bool)

type CLIProcessing struct {
	game    *src.Game
	draw    DrawFunc
	in      io.Reader
	out     io.Writer
	colored bool

	// engine pumping
	poll        time.Duration
	maxFailures int
}

func NewCLI(g *src.Game, draw DrawFunc, in io.Reader, out io.Writer) *CLIProcessing {
	c := &CLIProcessing{
		game:        g,
		draw:        draw,
		in:          in,
		out:         out,
		colored:     isTerminal(out),
		poll:        defaultPoll,
		maxFailures: defaultMaxFailures,
	}
	g.OnMove(c.printMove)
	return c
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (c *CLIProcessing) paint(attrs ...color.Attribute) *color.Color {
	p := color.New(attrs...)
	if c.colored {
		p.EnableColor()
	} else {
		p.DisableColor()
	}
	return p
}

// RunLineMode reads one command per line:
// - a long algebraic move (e2e4) plays it as a drag from cell to cell
// - history / pgn / fen / board print the game
// - an empty line retries a stalled engine
// - q or quit exits
func (c *CLIProcessing) RunLineMode(ctx context.Context) error {
	scanner := bufio.NewScanner(c.in)
	c.draw(c.out, c.game.Registry().Snapshot(), c.colored)
	fmt.Fprintln(c.out, "Enter a move like e2e4. Use 'history', 'pgn', 'fen', 'board', 'q' to quit.")
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if !c.game.HumanToMove() {
			c.pumpEngine(ctx)
			if line == "" {
				continue
			}
		}
		switch line {
		case "":
			continue
		case "q", "quit":
			return nil
		case "history", "moves":
			fmt.Fprintln(c.out, strings.TrimSpace(c.game.History().String()))
			continue
		case "board":
			c.draw(c.out, c.game.Registry().Snapshot(), c.colored)
			continue
		case "pgn":
			fmt.Fprintln(c.out, "--------- PGN FORMAT---------")
			if err := convpgn.WritePGN(c.out, c.game.History().String(), nil); err != nil {
				fmt.Fprintf(c.out, "error write pgn %v\n", err)
			}
			fmt.Fprintln(c.out, "--------- PGN FORMAT---------")
			continue
		case "fen":
			c.printFEN()
			continue
		}

		if !c.game.HumanToMove() {
			c.paint(color.FgYellow).Fprintln(c.out, "Engine is still thinking, press Enter to wait for it")
			continue
		}
		if err := c.play(line); err != nil {
			c.paint(color.FgRed).Fprintf(c.out, "Invalid move: %v\n", err)
			continue
		}
		c.pumpEngine(ctx)
		c.draw(c.out, c.game.Registry().Snapshot(), c.colored)
	}
	return scanner.Err()
}

// play drags the light piece on the source cell to the center of the
// destination cell
func (c *CLIProcessing) play(s string) error {
	mv, err := convcoord.ParseMove(s)
	if err != nil {
		return err
	}
	geo := c.game.Geometry()
	from, _ := convcoord.GridFromAlgebraic(mv.From)
	to, _ := convcoord.GridFromAlgebraic(mv.To)
	p, q := geo.CenterOf(from), geo.CenterOf(to)
	if _, ok := c.game.Registry().FindPieceContaining(base.Light, p.X, p.Y); !ok {
		return fmt.Errorf("no %v piece on %s", base.Light, mv.From)
	}

	before := c.game.History().Len()
	c.game.HandleEvent(src.Event{Type: src.Press, X: p.X, Y: p.Y})
	c.game.HandleEvent(src.Event{Type: src.Motion, X: q.X, Y: q.Y})
	c.game.HandleEvent(src.Event{Type: src.Release, X: q.X, Y: q.Y})
	if c.game.History().Len() == before {
		return fmt.Errorf("%s was not played", mv)
	}
	return nil
}

// pumpEngine runs frames until the engine move has been animated, the
// engine failed maxFailures times in a row or ctx ends
func (c *CLIProcessing) pumpEngine(ctx context.Context) {
	for !c.game.HumanToMove() && !c.game.Closed() {
		if ctx.Err() != nil {
			return
		}
		c.game.Update(frame)
		if c.game.EngineFailures() >= c.maxFailures {
			c.paint(color.FgRed).Fprintf(c.out, "Engine failed %d times, press Enter to retry\n", c.game.EngineFailures())
			return
		}
		if c.game.Phase() == src.EnginePending {
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.poll):
			}
		}
	}
}

func (c *CLIProcessing) printMove(ev src.MoveEvent) {
	p := c.paint(color.FgCyan, color.Bold)
	if ev.Side == base.Dark {
		p = c.paint(color.FgMagenta, color.Bold)
	}
	p.Fprintf(c.out, "%s: %s", ev.Side, ev.Move)
	if len(ev.Captured) > 0 {
		c.paint(color.FgRed).Fprintf(c.out, " (captures %d)", len(ev.Captured))
	}
	fmt.Fprintln(c.out)
}

// printFEN prefers the replayed game and falls back to what the board shows
func (c *CLIProcessing) printFEN() {
	fen, rest := convfen.FromHistory(c.game.History().String())
	if len(rest) == 0 {
		fmt.Fprintln(c.out, fen)
		return
	}
	fmt.Fprintln(c.out, convfen.FromBoard(c.game.Registry().Snapshot(), c.game.HumanToMove()))
	c.paint(color.FgYellow).Fprintf(c.out, "rules replay stopped at %s\n", rest[0])
}
