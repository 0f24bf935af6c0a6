package gbase

import "image/color"

// --- UI constants ---

const (
	StatusH   = 48 // status bar under the board
	StatusPad = 14
)

// ---- Styles (palettes) ----

type Palette struct {
	Frame       color.RGBA // board border
	LightSquare color.RGBA
	DarkSquare  color.RGBA
	Coord       color.RGBA // file and rank labels
	LightPiece  color.RGBA
	DarkPiece   color.RGBA
	StatusFill  color.RGBA
	StatusLine  color.RGBA
	StatusText  color.RGBA
	Accent      color.RGBA // engine thinking
	Error       color.RGBA
}

var ClassicPalette = Palette{
	Frame:       color.RGBA{0x5a, 0x3a, 0x22, 0xff},
	LightSquare: color.RGBA{0xee, 0xd8, 0xb5, 0xff},
	DarkSquare:  color.RGBA{0xb0, 0x7e, 0x55, 0xff},
	Coord:       color.RGBA{0xf0, 0xe0, 0xc8, 0xff},
	LightPiece:  color.RGBA{0xfa, 0xfa, 0xfa, 0xff},
	DarkPiece:   color.RGBA{0x22, 0x22, 0x22, 0xff},
	StatusFill:  color.RGBA{0xf7, 0xf7, 0xf7, 0xff},
	StatusLine:  color.RGBA{0x88, 0x88, 0x88, 0xff},
	StatusText:  color.RGBA{0x22, 0x22, 0x22, 0xff},
	Accent:      color.RGBA{0x22, 0x88, 0xcc, 0xff},
	Error:       color.RGBA{0xcc, 0x33, 0x33, 0xff},
}
