package board

import (
	"dragchess/src/base"
	"dragchess/src/logic/convert/convcoord"
	"strings"
)

// Sprite is the piece box owned by the renderer
type Sprite interface {
	Position() base.Point
	SetPosition(p base.Point)
	Move(dx, dy float64)
	Bounds() base.Rect
}

// Box is a plain positioned rectangle
type Box struct {
	pos  base.Point
	w, h float64
}

func NewBox(p base.Point, w, h float64) *Box {
	return &Box{pos: p, w: w, h: h}
}

func (b *Box) Position() base.Point     { return b.pos }
func (b *Box) SetPosition(p base.Point) { b.pos = p }
func (b *Box) Bounds() base.Rect        { return base.Rect{X: b.pos.X, Y: b.pos.Y, W: b.w, H: b.h} }

func (b *Box) Move(dx, dy float64) {
	b.pos.X += dx
	b.pos.Y += dy
}

type Piece struct {
	Sprite Sprite
	Kind   base.Kind
	IsDead bool
}

// Registry holds both sides. A piece keeps its index for the whole game,
// capture only flips IsDead.
type Registry struct {
	geo    convcoord.Geometry
	pieces [2][base.PiecesPerSide]Piece
}

// NewClassic places the starting position: indices 0..7 are the back rank
// a..h, 8..15 the pawns a..h. Dark starts on top.
func NewClassic(geo convcoord.Geometry) *Registry {
	r := &Registry{geo: geo}
	place := func(s base.Side, i int, k base.Kind, c base.Grid) {
		r.pieces[s][i] = Piece{
			Sprite: NewBox(geo.SnapPixel(c), geo.PieceW, geo.PieceH),
			Kind:   k,
		}
	}
	for i := 0; i < 8; i++ {
		place(base.Dark, i, base.BackRank[i], base.Grid{X: i, Y: 0})
		place(base.Light, i, base.BackRank[i], base.Grid{X: i, Y: 7})
		place(base.Dark, i+8, base.Pawn, base.Grid{X: i, Y: 1})
		place(base.Light, i+8, base.Pawn, base.Grid{X: i, Y: 6})
	}
	return r
}

// NewRegistry wraps pieces created elsewhere (e.g. renderer-backed sprites)
func NewRegistry(geo convcoord.Geometry, light, dark [base.PiecesPerSide]Piece) *Registry {
	r := &Registry{geo: geo}
	r.pieces[base.Light] = light
	r.pieces[base.Dark] = dark
	return r
}

func (r *Registry) Geometry() convcoord.Geometry { return r.geo }

func (r *Registry) Piece(s base.Side, i int) Piece {
	return r.pieces[s][i]
}

func (r *Registry) Position(s base.Side, i int) base.Point {
	return r.pieces[s][i].Sprite.Position()
}

// FindPieceContaining returns the lowest index live piece whose box contains (x,y)
func (r *Registry) FindPieceContaining(s base.Side, x, y float64) (int, bool) {
	for i := range r.pieces[s] {
		p := &r.pieces[s][i]
		if !p.IsDead && p.Sprite.Bounds().Contains(x, y) {
			return i, true
		}
	}
	return -1, false
}

// FindPieceAtGrid returns the first live piece whose position maps to cell c
func (r *Registry) FindPieceAtGrid(s base.Side, c base.Grid) (int, bool) {
	for i := range r.pieces[s] {
		p := &r.pieces[s][i]
		if p.IsDead {
			continue
		}
		pos := p.Sprite.Position()
		if pc, ok := r.geo.GridFromScreen(pos.X, pos.Y); ok && pc == c {
			return i, true
		}
	}
	return -1, false
}

func (r *Registry) MoveTo(s base.Side, i int, p base.Point) {
	r.pieces[s][i].Sprite.SetPosition(p)
}

func (r *Registry) Translate(s base.Side, i int, dx, dy float64) {
	r.pieces[s][i].Sprite.Move(dx, dy)
}

func (r *Registry) Kill(s base.Side, i int) {
	r.pieces[s][i].IsDead = true
}

func (r *Registry) Live(s base.Side) int {
	n := 0
	for i := range r.pieces[s] {
		if !r.pieces[s][i].IsDead {
			n++
		}
	}
	return n
}

// Each calls fn for every live piece, dark side first
func (r *Registry) Each(fn func(s base.Side, i int, p Piece)) {
	for _, s := range []base.Side{base.Dark, base.Light} {
		for i := range r.pieces[s] {
			if !r.pieces[s][i].IsDead {
				fn(s, i, r.pieces[s][i])
			}
		}
	}
}

// Cell finds the cell a live piece occupies, judged by the center of its box
func (r *Registry) Cell(s base.Side, i int) (base.Grid, bool) {
	b := r.pieces[s][i].Sprite.Bounds()
	c, ok := r.geo.GridFromScreen(b.X+b.W/2, b.Y+b.H/2)
	if !ok || !c.InBoard() {
		return base.OffBoard, false
	}
	return c, true
}

// Snapshot is a text board, row 0 on top: light pieces upper case, '.' empty
func (r *Registry) Snapshot() [8]string {
	var cells [8][8]byte
	for y := range cells {
		for x := range cells[y] {
			cells[y][x] = '.'
		}
	}
	r.Each(func(s base.Side, i int, p Piece) {
		c, ok := r.Cell(s, i)
		if !ok {
			return
		}
		ch := byte(p.Kind.Rune())
		if s == base.Light {
			ch = byte(strings.ToUpper(string(ch))[0])
		}
		cells[c.Y][c.X] = ch
	})
	var out [8]string
	for y := range cells {
		out[y] = string(cells[y][:])
	}
	return out
}
