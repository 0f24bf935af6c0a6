package gimages

import (
	"dragchess/src/base"
	"dragchess/src/logic/convert/convcoord"
	"dragchess/ui/gui/gbase"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/image/font"
)

// sheet layout: one column per base.Kind, dark pieces on the top row
const (
	SheetCols = 6
	SheetRows = 2
)

func LoadImage(path string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	return img, err
}

// SplitSheet cuts the figures sheet into [side][kind] frames
func SplitSheet(sheet *ebiten.Image) [2][SheetCols]*ebiten.Image {
	var out [2][SheetCols]*ebiten.Image
	b := sheet.Bounds()
	fw, fh := b.Dx()/SheetCols, b.Dy()/SheetRows
	for col := 0; col < SheetCols; col++ {
		for _, s := range []base.Side{base.Dark, base.Light} {
			row := 0
			if s == base.Light {
				row = 1
			}
			r := image.Rect(b.Min.X+col*fw, b.Min.Y+row*fh, b.Min.X+(col+1)*fw, b.Min.Y+(row+1)*fh)
			out[s][col] = sheet.SubImage(r).(*ebiten.Image)
		}
	}
	return out
}

func setRGBA(dc *gg.Context, c color.RGBA) {
	dc.SetRGBA255(int(c.R), int(c.G), int(c.B), int(c.A))
}

// RenderBoard draws a board matching geo when board.png is missing
func RenderBoard(geo convcoord.Geometry, p gbase.Palette, face font.Face) image.Image {
	dc := gg.NewContext(geo.BoardW, geo.BoardH)
	setRGBA(dc, p.Frame)
	dc.Clear()

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			px := geo.PixelFromGrid(base.Grid{X: x, Y: y})
			if (x+y)%2 == 0 {
				setRGBA(dc, p.LightSquare)
			} else {
				setRGBA(dc, p.DarkSquare)
			}
			dc.DrawRectangle(px.X, px.Y, float64(geo.CellW), float64(geo.CellH))
			dc.Fill()
		}
	}

	if face != nil {
		dc.SetFontFace(face)
	}
	setRGBA(dc, p.Coord)
	border := float64(geo.Border)
	for i := 0; i < 8; i++ {
		file := convcoord.AlgebraicFromGrid(base.Grid{X: i, Y: 0})[:1]
		rank := convcoord.AlgebraicFromGrid(base.Grid{X: 0, Y: i})[1:]
		c := geo.CenterOf(base.Grid{X: i, Y: i})
		dc.DrawStringAnchored(file, c.X, border/2, 0.5, 0.5)
		dc.DrawStringAnchored(file, c.X, float64(geo.BoardH)-border/2, 0.5, 0.5)
		dc.DrawStringAnchored(rank, border/2, c.Y, 0.5, 0.5)
		dc.DrawStringAnchored(rank, float64(geo.BoardW)-border/2, c.Y, 0.5, 0.5)
	}
	return dc.Image()
}

// RenderFigures draws a figures sheet of w x h frames when figures.png is missing
func RenderFigures(w, h int, p gbase.Palette, face font.Face) image.Image {
	dc := gg.NewContext(w*SheetCols, h*SheetRows)
	if face != nil {
		dc.SetFontFace(face)
	}
	r := float64(min(w, h))/2 - 6
	for col := 0; col < SheetCols; col++ {
		k := base.Kind(col)
		for row, s := range []base.Side{base.Dark, base.Light} {
			fill, ink := p.DarkPiece, p.LightPiece
			if s == base.Light {
				fill, ink = p.LightPiece, p.DarkPiece
			}
			cx := float64(col*w) + float64(w)/2
			cy := float64(row*h) + float64(h)/2
			dc.DrawCircle(cx, cy, r)
			setRGBA(dc, fill)
			dc.FillPreserve()
			setRGBA(dc, ink)
			dc.SetLineWidth(3)
			dc.Stroke()
			dc.DrawStringAnchored(string(k.Rune()-'a'+'A'), cx, cy, 0.5, 0.4)
		}
	}
	return dc.Image()
}
