package convcoord

import (
	"dragchess/src/base"
	"errors"
	"testing"
)

func TestAlgebraicRoundTrip(t *testing.T) {
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			c := base.Grid{X: x, Y: y}
			sq := AlgebraicFromGrid(c)
			got, err := GridFromAlgebraic(sq)
			if err != nil {
				t.Fatalf("GridFromAlgebraic(%q): %v", sq, err)
			}
			if got != c {
				t.Errorf("round trip %v -> %q -> %v", c, sq, got)
			}
		}
	}
}

func TestAlgebraicFromGrid(t *testing.T) {
	tests := []struct {
		c    base.Grid
		want string
	}{
		{base.Grid{X: 0, Y: 0}, "a8"},
		{base.Grid{X: 7, Y: 7}, "h1"},
		{base.Grid{X: 0, Y: 6}, "a2"},
		{base.Grid{X: 4, Y: 4}, "e4"},
	}
	for _, tt := range tests {
		if got := AlgebraicFromGrid(tt.c); got != tt.want {
			t.Errorf("AlgebraicFromGrid(%v) = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestGridFromAlgebraicRejectsMalformed(t *testing.T) {
	for _, sq := range []string{"", "a", "a9", "i1", "A1", "a0", "e44"} {
		if _, err := GridFromAlgebraic(sq); !errors.Is(err, ErrBadSquare) {
			t.Errorf("GridFromAlgebraic(%q) err = %v, want ErrBadSquare", sq, err)
		}
	}
}

func TestGridFromScreenInside(t *testing.T) {
	g := Classic
	lo := float64(g.Border)
	hi := float64(g.Border + 8*g.CellW)
	for x := lo; x < hi; x += 7 {
		for y := lo; y < hi; y += 11 {
			c, ok := g.GridFromScreen(x, y)
			if !ok {
				t.Fatalf("GridFromScreen(%v,%v) off board", x, y)
			}
			if !c.InBoard() {
				t.Fatalf("GridFromScreen(%v,%v) = %v, out of range", x, y, c)
			}
		}
	}
}

func TestGridFromScreenOutside(t *testing.T) {
	g := Classic
	tests := []struct{ x, y float64 }{
		{0, 0},
		{47, 500},
		{500, 47},
		{47.9, 47.9},
		{-10, 100},
	}
	for _, tt := range tests {
		c, ok := g.GridFromScreen(tt.x, tt.y)
		if ok || c != base.OffBoard {
			t.Errorf("GridFromScreen(%v,%v) = %v,%v, want off board", tt.x, tt.y, c, ok)
		}
	}
}

func TestGridFromScreenNoUpperClamp(t *testing.T) {
	g := Classic
	c, ok := g.GridFromScreen(1000, 1000)
	if !ok {
		t.Fatal("far edge reported off board")
	}
	if c.X != 8 || c.Y != 8 {
		t.Errorf("GridFromScreen(1000,1000) = %v, want {8 8}", c)
	}
}

func TestGridFromScreenCellEdges(t *testing.T) {
	g := Classic
	c, _ := g.GridFromScreen(48, 48)
	if c != (base.Grid{X: 0, Y: 0}) {
		t.Errorf("top-left corner = %v", c)
	}
	c, _ = g.GridFromScreen(48+114-0.5, 48+114)
	if c != (base.Grid{X: 0, Y: 1}) {
		t.Errorf("edge = %v, want {0 1}", c)
	}
}

func TestPixelFromAlgebraic(t *testing.T) {
	g := Classic
	p, err := g.PixelFromAlgebraic("a8")
	if err != nil {
		t.Fatal(err)
	}
	if p != (base.Point{X: 48, Y: 48}) {
		t.Errorf("a8 = %v", p)
	}
	p, _ = g.PixelFromAlgebraic("e4")
	if p != (base.Point{X: 48 + 4*114, Y: 48 + 4*114}) {
		t.Errorf("e4 = %v", p)
	}
	if _, err := g.PixelFromAlgebraic("z1"); !errors.Is(err, ErrBadSquare) {
		t.Errorf("z1 err = %v", err)
	}
}

func TestSnapPixelLift(t *testing.T) {
	g := Classic
	if p := g.SnapPixel(base.Grid{X: 2, Y: 3}); p != g.PixelFromGrid(base.Grid{X: 2, Y: 3}) {
		t.Errorf("row 3 lifted: %v", p)
	}
	p := g.SnapPixel(base.Grid{X: 2, Y: 6})
	want := g.PixelFromGrid(base.Grid{X: 2, Y: 6})
	want.Y -= 6
	if p != want {
		t.Errorf("SnapPixel row 6 = %v, want %v", p, want)
	}

	flat := NewGeometry(1008, 1008, 48, 112, 114, false)
	if p := flat.SnapPixel(base.Grid{X: 2, Y: 6}); p != flat.PixelFromGrid(base.Grid{X: 2, Y: 6}) {
		t.Errorf("no-lift geometry lifted: %v", p)
	}
}

func TestParseMove(t *testing.T) {
	mv, err := ParseMove("e2e4")
	if err != nil {
		t.Fatal(err)
	}
	if mv.From != "e2" || mv.To != "e4" || mv.String() != "e2e4" {
		t.Errorf("ParseMove = %+v", mv)
	}
	for _, s := range []string{"", "e2e", "e7e8q", "e2e9", "x2e4", "(none)"} {
		if _, err := ParseMove(s); !errors.Is(err, ErrBadMove) {
			t.Errorf("ParseMove(%q) err = %v, want ErrBadMove", s, err)
		}
	}
}
