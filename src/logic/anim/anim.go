package anim

import (
	"dragchess/src/base"
	"dragchess/src/logic/board"
	"math"
	"time"
)

// DefaultTicks is the frame budget of one engine move in tick mode
const DefaultTicks = 10000

const DefaultDuration = 400 * time.Millisecond

// snapping error tolerance, float drift after many small steps stays far below it
const snapEpsilon = 1e-6

type Mode uint8

const (
	// ModeTicks moves the piece by a fixed delta once per frame
	ModeTicks Mode = iota
	// ModeDuration interpolates over wall clock time
	ModeDuration
)

func (m Mode) String() string {
	switch m {
	case ModeTicks:
		return "ticks"
	case ModeDuration:
		return "duration"
	default:
		return "invalid"
	}
}

func ModeFromString(s string) (Mode, bool) {
	switch s {
	case "ticks":
		return ModeTicks, true
	case "duration":
		return ModeDuration, true
	default:
		return ModeTicks, false
	}
}

type Animator struct {
	reg *board.Registry

	mode     Mode
	total    int
	duration time.Duration

	// current move
	active    bool
	side      base.Side
	index     int
	src, dst  base.Point
	dx, dy    float64
	remaining int
	elapsed   time.Duration
}

func NewTicks(reg *board.Registry, total int) *Animator {
	if total <= 0 {
		total = DefaultTicks
	}
	return &Animator{reg: reg, mode: ModeTicks, total: total}
}

func NewDuration(reg *board.Registry, d time.Duration) *Animator {
	if d <= 0 {
		d = DefaultDuration
	}
	return &Animator{reg: reg, mode: ModeDuration, duration: d, total: DefaultTicks}
}

func (a *Animator) Mode() Mode         { return a.mode }
func (a *Animator) Active() bool       { return a.active }
func (a *Animator) Remaining() int     { return a.remaining }
func (a *Animator) Target() base.Point { return a.dst }
func (a *Animator) Piece() (base.Side, int) {
	return a.side, a.index
}

// Start begins moving piece (s,i) from its current position to dst
func (a *Animator) Start(s base.Side, i int, dst base.Point) {
	a.active = true
	a.side = s
	a.index = i
	a.src = a.reg.Position(s, i)
	a.dst = dst
	a.dx = (dst.X - a.src.X) / float64(a.total)
	a.dy = (dst.Y - a.src.Y) / float64(a.total)
	a.remaining = a.total
	a.elapsed = 0
}

// Step advances one frame in tick mode. The frame that spends the last
// tick snaps the piece and returns its final position with done=true.
func (a *Animator) Step() (base.Point, bool) {
	if !a.active {
		return base.Point{}, false
	}
	if a.remaining > 0 {
		a.reg.Translate(a.side, a.index, a.dx, a.dy)
		a.remaining--
	}
	if a.remaining == 0 {
		return a.finish(), true
	}
	return a.reg.Position(a.side, a.index), false
}

// Advance moves the piece by dt of wall time in duration mode
func (a *Animator) Advance(dt time.Duration) (base.Point, bool) {
	if !a.active {
		return base.Point{}, false
	}
	if a.mode == ModeTicks {
		return a.Step()
	}
	a.elapsed += dt
	k := 1.0
	if a.elapsed < a.duration {
		k = float64(a.elapsed) / float64(a.duration)
	}
	p := base.Point{
		X: a.src.X + (a.dst.X-a.src.X)*k,
		Y: a.src.Y + (a.dst.Y-a.src.Y)*k,
	}
	a.reg.MoveTo(a.side, a.index, p)
	if k >= 1 {
		return a.finish(), true
	}
	a.remaining = int(float64(a.total) * (1 - k))
	return p, false
}

func (a *Animator) finish() base.Point {
	pos := a.reg.Position(a.side, a.index)
	pos.X = roundUp(pos.X)
	pos.Y = roundUp(pos.Y)
	a.reg.MoveTo(a.side, a.index, pos)
	a.active = false
	a.remaining = 0
	return pos
}

// roundUp corrects the drift of repeated float additions by rounding up,
// so a piece never stops a fraction short of its cell
func roundUp(v float64) float64 {
	return math.Ceil(v - snapEpsilon)
}
