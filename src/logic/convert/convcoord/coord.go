package convcoord

import (
	"dragchess/src/base"
	"errors"
	"fmt"
	"math"
)

var (
	ErrBadSquare = errors.New("bad square")
	ErrBadMove   = errors.New("bad move")
)

// Geometry keeps every board dimension in one place.
// Board image is drawn at (0,0); the playable area starts after Border.
type Geometry struct {
	BoardW int
	BoardH int
	Border int
	CellW  int
	CellH  int

	// piece sprite box (figure frame * scale)
	PieceW float64
	PieceH float64

	// lift pieces on rows > 3 by row pixels so the sprites sit on the squares
	LiftRows bool
}

// Classic is the 1008x1008 board (504px image at scale 2) with 56x57 figures
var Classic = NewGeometry(1008, 1008, 48, 112, 114, true)

func NewGeometry(boardW, boardH, border int, pieceW, pieceH float64, lift bool) Geometry {
	return Geometry{
		BoardW:   boardW,
		BoardH:   boardH,
		Border:   border,
		CellW:    (boardW - 2*border) / 8,
		CellH:    (boardH - 2*border) / 8,
		PieceW:   pieceW,
		PieceH:   pieceH,
		LiftRows: lift,
	}
}

// GridFromScreen maps a pixel to a cell. Points above or left of the border
// are off board. There is no upper clamp: points past the far edge give
// cells >= 8 and callers have to cope with it.
func (g Geometry) GridFromScreen(x, y float64) (base.Grid, bool) {
	if x < float64(g.Border) || y < float64(g.Border) {
		return base.OffBoard, false
	}
	gx := int(math.Floor((x - float64(g.Border)) / float64(g.CellW)))
	gy := int(math.Floor((y - float64(g.Border)) / float64(g.CellH)))
	return base.Grid{X: gx, Y: gy}, true
}

// PixelFromGrid returns the top-left pixel of the cell
func (g Geometry) PixelFromGrid(c base.Grid) base.Point {
	return base.Point{
		X: float64(g.Border + g.CellW*c.X),
		Y: float64(g.Border + g.CellH*c.Y),
	}
}

// SnapPixel is where a piece rests on cell c
func (g Geometry) SnapPixel(c base.Grid) base.Point {
	p := g.PixelFromGrid(c)
	if g.LiftRows && c.Y > 3 {
		p.Y -= float64(c.Y)
	}
	return p
}

func (g Geometry) CenterOf(c base.Grid) base.Point {
	p := g.PixelFromGrid(c)
	p.X += float64(g.CellW) / 2
	p.Y += float64(g.CellH) / 2
	return p
}

// PixelFromAlgebraic gives the top-left pixel of the square, not its center
func (g Geometry) PixelFromAlgebraic(sq string) (base.Point, error) {
	c, err := GridFromAlgebraic(sq)
	if err != nil {
		return base.Point{}, err
	}
	return g.PixelFromGrid(c), nil
}

// AlgebraicFromGrid: (0,0) -> "a8", (7,7) -> "h1"
func AlgebraicFromGrid(c base.Grid) string {
	return string([]byte{byte('a' + c.X), byte('8' - c.Y)})
}

func GridFromAlgebraic(sq string) (base.Grid, error) {
	if !IsSquare(sq) {
		return base.OffBoard, fmt.Errorf("%w: %q", ErrBadSquare, sq)
	}
	return base.Grid{X: int(sq[0] - 'a'), Y: int('8' - sq[1])}, nil
}

func IsSquare(sq string) bool {
	return len(sq) == 2 && sq[0] >= 'a' && sq[0] <= 'h' && sq[1] >= '1' && sq[1] <= '8'
}

// Move is a long algebraic move record: "e2e4"
type Move struct {
	From string
	To   string
}

func (m Move) String() string {
	return m.From + m.To
}

func ParseMove(s string) (Move, error) {
	if len(s) != 4 {
		return Move{}, fmt.Errorf("%w: %q has length %d", ErrBadMove, s, len(s))
	}
	mv := Move{From: s[0:2], To: s[2:4]}
	if !IsSquare(mv.From) || !IsSquare(mv.To) {
		return Move{}, fmt.Errorf("%w: %q", ErrBadMove, s)
	}
	return mv, nil
}
