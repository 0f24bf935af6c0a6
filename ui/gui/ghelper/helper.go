package ghelper

import (
	"dragchess/src/base"
	"dragchess/ui/gui/gbase"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
)

// RenderStatusPanel draws the rounded status bar background once, anti-aliased by gg
func RenderStatusPanel(w, h int, p gbase.Palette) *ebiten.Image {
	const radius, lineW = 8, 2
	dc := gg.NewContext(w, h)
	dc.SetColor(p.StatusFill)
	dc.DrawRoundedRectangle(lineW/2, lineW/2, float64(w-lineW), float64(h-lineW), radius)
	dc.FillPreserve()
	dc.SetColor(p.StatusLine)
	dc.SetLineWidth(lineW)
	dc.Stroke()
	return ebiten.NewImageFromImage(dc.Image())
}

var pixel *ebiten.Image

// StrokeBox outlines a piece box, the stroke stays inside r
func StrokeBox(screen *ebiten.Image, r base.Rect, thickness float64, col color.Color) {
	if screen == nil || r.W <= 0 || r.H <= 0 || thickness <= 0 {
		return
	}
	thickness = math.Min(thickness, math.Min(r.W, r.H)/2)
	if pixel == nil {
		pixel = ebiten.NewImage(1, 1)
		pixel.Fill(color.White)
	}

	edges := [4]base.Rect{
		{X: r.X, Y: r.Y, W: r.W, H: thickness},                                             // top
		{X: r.X, Y: r.Y + r.H - thickness, W: r.W, H: thickness},                           // bottom
		{X: r.X, Y: r.Y + thickness, W: thickness, H: r.H - 2*thickness},                   // left
		{X: r.X + r.W - thickness, Y: r.Y + thickness, W: thickness, H: r.H - 2*thickness}, // right
	}
	for _, e := range edges {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(e.W, e.H)
		op.GeoM.Translate(e.X, e.Y)
		op.ColorScale.ScaleWithColor(col)
		screen.DrawImage(pixel, op)
	}
}
