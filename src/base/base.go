package base

import "fmt"

const PiecesPerSide = 16

// Point is a screen position in pixels
type Point struct {
	X float64
	Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", p.X, p.Y)
}

// Rect is a pixel box; the right and bottom edges are exclusive
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Grid is a board cell in display orientation: (0,0) is the top-left square (a8)
type Grid struct {
	X int
	Y int
}

var OffBoard = Grid{X: -1, Y: -1}

func (g Grid) InBoard() bool {
	return g.X >= 0 && g.X < 8 && g.Y >= 0 && g.Y < 8
}

type Side uint8

const (
	Light Side = iota // human
	Dark              // engine
)

func (s Side) Opponent() Side {
	if s == Light {
		return Dark
	}
	return Light
}

func (s Side) String() string {
	switch s {
	case Light:
		return "light"
	case Dark:
		return "dark"
	default:
		return "invalid"
	}
}

// Kind order matches the columns of the figures sprite sheet
type Kind uint8

const (
	Rook Kind = iota
	Knight
	Bishop
	Queen
	King
	Pawn
)

func (k Kind) Rune() rune {
	switch k {
	case Rook:
		return 'r'
	case Knight:
		return 'n'
	case Bishop:
		return 'b'
	case Queen:
		return 'q'
	case King:
		return 'k'
	case Pawn:
		return 'p'
	default:
		return '?'
	}
}

// Glyph returns the unicode figure for the piece of side s
func (k Kind) Glyph(s Side) string {
	light := [...]string{"♖", "♘", "♗", "♕", "♔", "♙"}
	dark := [...]string{"♜", "♞", "♝", "♛", "♚", "♟"}
	if int(k) >= len(light) {
		return "?"
	}
	if s == Light {
		return light[k]
	}
	return dark[k]
}

// BackRank is the kind order of indices 0..7 (files a..h)
var BackRank = [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
