package board

import (
	"dragchess/src/base"
	"dragchess/src/logic/convert/convcoord"
	"testing"
)

func TestNewClassicLayout(t *testing.T) {
	r := NewClassic(convcoord.Classic)
	want := [8]string{
		"rnbqkbnr",
		"pppppppp",
		"........",
		"........",
		"........",
		"........",
		"PPPPPPPP",
		"RNBQKBNR",
	}
	if got := r.Snapshot(); got != want {
		t.Fatalf("Snapshot() =\n%v\nwant\n%v", got, want)
	}
	if r.Live(base.Light) != 16 || r.Live(base.Dark) != 16 {
		t.Errorf("live = %d/%d", r.Live(base.Light), r.Live(base.Dark))
	}
	// pawn a2 is index 8
	if p := r.Piece(base.Light, 8); p.Kind != base.Pawn {
		t.Errorf("light[8] kind = %v", p.Kind)
	}
	if c, ok := r.Cell(base.Light, 8); !ok || convcoord.AlgebraicFromGrid(c) != "a2" {
		t.Errorf("light[8] cell = %v", c)
	}
}

func TestFindPieceContaining(t *testing.T) {
	r := NewClassic(convcoord.Classic)
	geo := convcoord.Classic
	c := geo.CenterOf(base.Grid{X: 4, Y: 6}) // e2
	i, ok := r.FindPieceContaining(base.Light, c.X, c.Y)
	if !ok || i != 12 {
		t.Fatalf("e2 = %d,%v, want 12", i, ok)
	}
	if _, ok := r.FindPieceContaining(base.Dark, c.X, c.Y); ok {
		t.Error("dark piece found on e2")
	}
	// empty square
	c = geo.CenterOf(base.Grid{X: 4, Y: 4})
	if _, ok := r.FindPieceContaining(base.Light, c.X, c.Y); ok {
		t.Error("piece found on e4")
	}
	// dead pieces are skipped
	r.Kill(base.Light, 12)
	c = geo.CenterOf(base.Grid{X: 4, Y: 6})
	if _, ok := r.FindPieceContaining(base.Light, c.X, c.Y); ok {
		t.Error("dead piece hit")
	}
}

func TestFindPieceContainingLowestIndexWins(t *testing.T) {
	r := NewClassic(convcoord.Classic)
	// a2 pawn (8) and a1 rook (0) overlap on y in [839,840)
	i, ok := r.FindPieceContaining(base.Light, 60, 839.5)
	if !ok || i != 0 {
		t.Errorf("overlap = %d,%v, want 0", i, ok)
	}
	// stack the h-pawn onto the a-pawn
	r.MoveTo(base.Light, 15, r.Position(base.Light, 8))
	c := convcoord.Classic.CenterOf(base.Grid{X: 0, Y: 6})
	i, _ = r.FindPieceContaining(base.Light, c.X, c.Y)
	if i != 8 {
		t.Errorf("stacked = %d, want 8", i)
	}
}

func TestFindPieceAtGrid(t *testing.T) {
	r := NewClassic(convcoord.Classic)
	tests := []struct {
		side base.Side
		sq   string
		want int
	}{
		{base.Dark, "e7", 12},
		{base.Dark, "g8", 6},
		{base.Dark, "a8", 0},
	}
	for _, tt := range tests {
		c, _ := convcoord.GridFromAlgebraic(tt.sq)
		i, ok := r.FindPieceAtGrid(tt.side, c)
		if !ok || i != tt.want {
			t.Errorf("FindPieceAtGrid(%v,%s) = %d,%v, want %d", tt.side, tt.sq, i, ok, tt.want)
		}
	}
	c, _ := convcoord.GridFromAlgebraic("e5")
	if _, ok := r.FindPieceAtGrid(base.Dark, c); ok {
		t.Error("found a piece on e5")
	}
	c, _ = convcoord.GridFromAlgebraic("e7")
	r.Kill(base.Dark, 12)
	if _, ok := r.FindPieceAtGrid(base.Dark, c); ok {
		t.Error("dead piece found on e7")
	}
}

func TestKillIdempotent(t *testing.T) {
	r := NewClassic(convcoord.Classic)
	r.Kill(base.Dark, 3)
	r.Kill(base.Dark, 3)
	if !r.Piece(base.Dark, 3).IsDead {
		t.Fatal("not dead")
	}
	if r.Live(base.Dark) != 15 {
		t.Errorf("live = %d", r.Live(base.Dark))
	}
}

func TestMoveToAndTranslate(t *testing.T) {
	r := NewClassic(convcoord.Classic)
	r.MoveTo(base.Light, 0, base.Point{X: 10, Y: 20})
	r.Translate(base.Light, 0, 5, -5)
	if p := r.Position(base.Light, 0); p != (base.Point{X: 15, Y: 15}) {
		t.Errorf("position = %v", p)
	}
}
