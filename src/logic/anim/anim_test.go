package anim

import (
	"dragchess/src/base"
	"dragchess/src/logic/board"
	"dragchess/src/logic/convert/convcoord"
	"testing"
	"time"
)

func registryAt(p base.Point) *board.Registry {
	var light, dark [base.PiecesPerSide]board.Piece
	for i := range light {
		light[i] = board.Piece{Sprite: board.NewBox(base.Point{X: 500, Y: 500}, 10, 10)}
		dark[i] = board.Piece{Sprite: board.NewBox(base.Point{X: 500, Y: 500}, 10, 10)}
	}
	dark[0].Sprite.SetPosition(p)
	return board.NewRegistry(convcoord.Classic, light, dark)
}

func TestTicksLandExactly(t *testing.T) {
	for _, n := range []int{1, 3, 7, 1000, DefaultTicks} {
		reg := registryAt(base.Point{X: 0, Y: 0})
		a := NewTicks(reg, n)
		a.Start(base.Dark, 0, base.Point{X: 80, Y: 80})

		var (
			pos  base.Point
			done bool
		)
		for i := 0; i < n; i++ {
			if done {
				t.Fatalf("n=%d: done early at tick %d", n, i)
			}
			pos, done = a.Step()
		}
		if !done {
			t.Fatalf("n=%d: not done after %d ticks", n, n)
		}
		if pos != (base.Point{X: 80, Y: 80}) {
			t.Errorf("n=%d: final = %v, want (80,80)", n, pos)
		}
		if got := reg.Position(base.Dark, 0); got != pos {
			t.Errorf("n=%d: registry = %v", n, got)
		}
		if a.Active() {
			t.Errorf("n=%d: still active", n)
		}
	}
}

func TestTicksBackwards(t *testing.T) {
	reg := registryAt(base.Point{X: 276, Y: 390})
	a := NewTicks(reg, 3)
	a.Start(base.Dark, 0, base.Point{X: 48, Y: 48})
	var pos base.Point
	for i := 0; i < 3; i++ {
		pos, _ = a.Step()
	}
	if pos != (base.Point{X: 48, Y: 48}) {
		t.Errorf("final = %v", pos)
	}
}

func TestTicksLinear(t *testing.T) {
	reg := registryAt(base.Point{X: 0, Y: 0})
	a := NewTicks(reg, 4)
	a.Start(base.Dark, 0, base.Point{X: 80, Y: 40})
	pos, done := a.Step()
	if done || pos != (base.Point{X: 20, Y: 10}) {
		t.Errorf("first step = %v,%v", pos, done)
	}
	if a.Remaining() != 3 {
		t.Errorf("remaining = %d", a.Remaining())
	}
	// other pieces untouched
	if p := reg.Position(base.Dark, 1); p != (base.Point{X: 500, Y: 500}) {
		t.Errorf("bystander moved to %v", p)
	}
}

func TestStepIdle(t *testing.T) {
	a := NewTicks(registryAt(base.Point{}), 5)
	if _, done := a.Step(); done {
		t.Error("idle animator reported done")
	}
}

func TestDefaultTicks(t *testing.T) {
	reg := registryAt(base.Point{})
	a := NewTicks(reg, 0)
	a.Start(base.Dark, 0, base.Point{X: 1, Y: 1})
	if a.Remaining() != DefaultTicks {
		t.Errorf("remaining = %d", a.Remaining())
	}
}

func TestDurationMode(t *testing.T) {
	reg := registryAt(base.Point{X: 0, Y: 0})
	a := NewDuration(reg, 400*time.Millisecond)
	a.Start(base.Dark, 0, base.Point{X: 80, Y: 80})

	pos, done := a.Advance(100 * time.Millisecond)
	if done || pos != (base.Point{X: 20, Y: 20}) {
		t.Fatalf("after 100ms = %v,%v", pos, done)
	}
	pos, done = a.Advance(200 * time.Millisecond)
	if done || pos != (base.Point{X: 60, Y: 60}) {
		t.Fatalf("after 300ms = %v,%v", pos, done)
	}
	// overshooting the duration still lands on the target
	pos, done = a.Advance(time.Second)
	if !done || pos != (base.Point{X: 80, Y: 80}) {
		t.Fatalf("final = %v,%v", pos, done)
	}
}

func TestAdvanceInTickMode(t *testing.T) {
	reg := registryAt(base.Point{X: 0, Y: 0})
	a := NewTicks(reg, 2)
	a.Start(base.Dark, 0, base.Point{X: 10, Y: 0})
	// wall time is ignored in tick mode
	if _, done := a.Advance(time.Hour); done {
		t.Fatal("done after one tick")
	}
	if pos, done := a.Advance(0); !done || pos.X != 10 {
		t.Fatalf("final = %v,%v", pos, done)
	}
}

func TestModeFromString(t *testing.T) {
	if m, ok := ModeFromString("duration"); !ok || m != ModeDuration {
		t.Error("duration")
	}
	if m, ok := ModeFromString("ticks"); !ok || m != ModeTicks {
		t.Error("ticks")
	}
	if _, ok := ModeFromString("easing"); ok {
		t.Error("easing accepted")
	}
}
