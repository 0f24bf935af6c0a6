package src

import (
	"context"
	"dragchess/src/base"
	"dragchess/src/engine"
	"dragchess/src/logic/anim"
	"dragchess/src/logic/board"
	"dragchess/src/logic/convert/convcoord"
	"dragchess/src/logic/history"
	"dragchess/src/logx"
	"time"
)

// how long Close waits for a cancelled engine query to wind down
const closeWait = 500 * time.Millisecond

type Phase uint8

const (
	HumanIdle Phase = iota
	HumanDragging
	EnginePending
	EngineAnimating
)

func (p Phase) String() string {
	switch p {
	case HumanIdle:
		return "human idle"
	case HumanDragging:
		return "human dragging"
	case EnginePending:
		return "engine pending"
	case EngineAnimating:
		return "engine animating"
	default:
		return "unknown"
	}
}

type EventType uint8

const (
	Press EventType = iota
	Motion
	Release
	Close
)

// Event is one pointer or window event in screen pixels
type Event struct {
	Type EventType
	X, Y float64
}

// MoveEvent describes a completed move
type MoveEvent struct {
	Side     base.Side
	Move     convcoord.Move
	Captured []int // indices of the opponent's pieces killed by the move
	History  string
}

type Options struct {
	// Async runs engine queries off the loop and polls them every frame
	Async bool
}

// Game is the turn state machine. HandleEvent and Update must be called
// from the same loop; only the async engine query runs elsewhere.
type Game struct {
	geo     convcoord.Geometry
	reg     *board.Registry
	adapter *engine.Adapter
	anim    *anim.Animator
	history *history.History
	logx    logx.Logger
	opts    Options

	ctx    context.Context
	cancel context.CancelFunc

	phase     Phase
	humanTurn bool
	closed    bool

	// drag or animation in progress
	selected   int
	selSide    base.Side
	hasSel     bool
	lastX      float64
	lastY      float64
	moveSource string

	pending   *engine.Pending
	engineMv  convcoord.Move
	lastMove  string
	observers []func(MoveEvent)
}

func NewGame(geo convcoord.Geometry, reg *board.Registry, adapter *engine.Adapter, animator *anim.Animator, logger logx.Logger, opts Options) *Game {
	ctx, cancel := context.WithCancel(context.Background())
	return &Game{
		geo:       geo,
		reg:       reg,
		adapter:   adapter,
		anim:      animator,
		history:   history.NewHistory(),
		logx:      logger,
		opts:      opts,
		ctx:       ctx,
		cancel:    cancel,
		phase:     HumanIdle,
		humanTurn: true,
		selected:  -1,
	}
}

func (g *Game) Phase() Phase                 { return g.phase }
func (g *Game) HumanToMove() bool            { return g.humanTurn }
func (g *Game) History() *history.History    { return g.history }
func (g *Game) Registry() *board.Registry    { return g.reg }
func (g *Game) Geometry() convcoord.Geometry { return g.geo }
func (g *Game) Closed() bool                 { return g.closed }
func (g *Game) LastMove() string             { return g.lastMove }
func (g *Game) EngineFailures() int          { return g.adapter.Failures() }

// Selected returns the piece being dragged or animated
func (g *Game) Selected() (base.Side, int, bool) {
	return g.selSide, g.selected, g.hasSel
}

// OnMove registers fn to be called after every completed move
func (g *Game) OnMove(fn func(MoveEvent)) {
	g.observers = append(g.observers, fn)
}

func (g *Game) HandleEvent(ev Event) {
	if g.closed {
		return
	}
	switch ev.Type {
	case Press:
		g.press(ev.X, ev.Y)
	case Motion:
		g.motion(ev.X, ev.Y)
	case Release:
		g.release(ev.X, ev.Y)
	case Close:
		g.Close()
	}
}

func (g *Game) press(x, y float64) {
	if g.phase != HumanIdle || !g.humanTurn {
		return
	}
	i, ok := g.reg.FindPieceContaining(base.Light, x, y)
	if !ok {
		return
	}
	c, ok := g.geo.GridFromScreen(x, y)
	if !ok || !c.InBoard() {
		return
	}
	g.selSide, g.selected, g.hasSel = base.Light, i, true
	g.lastX, g.lastY = x, y
	g.moveSource = convcoord.AlgebraicFromGrid(c)
	g.phase = HumanDragging
	g.logx.Debugf("select %v piece %d on %s", base.Light, i, g.moveSource)
}

func (g *Game) motion(x, y float64) {
	if g.phase != HumanDragging {
		return
	}
	g.reg.Translate(g.selSide, g.selected, x-g.lastX, y-g.lastY)
	g.lastX, g.lastY = x, y
}

func (g *Game) release(x, y float64) {
	if g.phase != HumanDragging {
		return
	}
	g.motion(x, y)
	defer g.clearSelection()
	g.phase = HumanIdle

	c, ok := g.geo.GridFromScreen(x, y)
	if !ok || !c.InBoard() {
		// the piece stays where it was dropped
		g.logx.Debugf("drop outside the board at %v, move from %s abandoned", base.Point{X: x, Y: y}, g.moveSource)
		return
	}
	dst := convcoord.AlgebraicFromGrid(c)
	g.reg.MoveTo(g.selSide, g.selected, g.geo.SnapPixel(c))
	if dst == g.moveSource {
		// deliberate deviation: a drop on the source cell is not a move,
		// so nothing like "e2e2" reaches the history and the turn stays
		return
	}

	killed := g.reg.Capture(base.Dark, x, y)
	mv := convcoord.Move{From: g.moveSource, To: dst}
	g.history.Append(mv.String())
	g.humanTurn = false
	g.phase = EnginePending
	g.complete(base.Light, mv, killed)
}

// Update runs once per frame and drives the engine side of the turn
func (g *Game) Update(dt time.Duration) {
	if g.closed {
		return
	}
	switch g.phase {
	case EnginePending:
		g.updatePending()
	case EngineAnimating:
		g.updateAnimating(dt)
	}
}

func (g *Game) updatePending() {
	if g.opts.Async {
		if g.pending == nil {
			if !g.adapter.Ready() {
				return
			}
			g.pending = g.adapter.Start(g.ctx, g.history.String())
		}
		r, ok := g.pending.Poll()
		if !ok {
			return
		}
		g.pending = nil
		g.resolve(r.Move, r.Err)
		return
	}

	if !g.adapter.Ready() {
		return
	}
	mv, err := g.adapter.Query(g.ctx, g.history.String())
	g.resolve(mv, err)
}

func (g *Game) resolve(mv convcoord.Move, err error) {
	if err != nil {
		g.adapter.Failed()
		g.logx.Errorf("engine query failed (attempt %d): %v", g.adapter.Failures(), err)
		return
	}
	src, _ := convcoord.GridFromAlgebraic(mv.From)
	i, ok := g.reg.FindPieceAtGrid(base.Dark, src)
	if !ok {
		g.adapter.Failed()
		g.logx.Errorf("engine move %s: no live %v piece on %s", mv, base.Dark, mv.From)
		return
	}
	dst, _ := g.geo.PixelFromAlgebraic(mv.To)

	g.adapter.Succeeded()
	g.history.Append(mv.String())
	g.engineMv = mv
	g.selSide, g.selected, g.hasSel = base.Dark, i, true
	g.anim.Start(base.Dark, i, dst)
	g.phase = EngineAnimating
	g.logx.Debugf("engine answered %s, animate piece %d to %v", mv, i, dst)
}

func (g *Game) updateAnimating(dt time.Duration) {
	pos, done := g.anim.Advance(dt)
	if !done {
		return
	}
	killed := g.reg.Capture(base.Light, pos.X, pos.Y)
	g.clearSelection()
	g.humanTurn = true
	g.phase = HumanIdle
	g.complete(base.Dark, g.engineMv, killed)
}

func (g *Game) complete(s base.Side, mv convcoord.Move, killed []int) {
	g.lastMove = mv.String()
	if len(killed) > 0 {
		g.logx.Infof("%v move %s captures %v", s, mv, killed)
	} else {
		g.logx.Infof("%v move %s", s, mv)
	}
	ev := MoveEvent{Side: s, Move: mv, Captured: killed, History: g.history.String()}
	for _, fn := range g.observers {
		fn(ev)
	}
}

func (g *Game) clearSelection() {
	g.selected, g.hasSel = -1, false
	g.moveSource = ""
}

// Close stops the game and cancels an engine query in flight. It returns
// once the query has given up (or after closeWait), so the engine can be
// closed next.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	if g.pending != nil {
		g.pending.Cancel()
		ctx, cancel := context.WithTimeout(context.Background(), closeWait)
		if _, err := g.pending.Wait(ctx); err != nil {
			g.logx.Errorf("engine query still running after close: %v", err)
		}
		cancel()
		g.pending = nil
	}
	g.cancel()
	g.logx.Infof("game closed in phase %v after %d moves", g.phase, g.history.Len())
}
