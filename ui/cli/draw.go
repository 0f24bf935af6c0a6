package cli

import (
	"dragchess/src/base"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var kinds = []base.Kind{base.Rook, base.Knight, base.Bishop, base.Queen, base.King, base.Pawn}

// glyphOf maps a snapshot rune (upper case = light) to a unicode figure
func glyphOf(ch byte) (string, base.Side, bool) {
	s := base.Dark
	lower := strings.ToLower(string(ch))
	if lower != string(ch) {
		s = base.Light
	}
	for _, k := range kinds {
		if string(k.Rune()) == lower {
			return k.Glyph(s), s, true
		}
	}
	return " ", s, false
}

// PrintSnapshot draws the board, rank 8 on top
func PrintSnapshot(w io.Writer, snap [8]string, colored bool) {
	paint := func(attrs ...color.Attribute) *color.Color {
		p := color.New(attrs...)
		if colored {
			p.EnableColor()
		} else {
			p.DisableColor()
		}
		return p
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "   a  b  c  d  e  f  g  h")
	for row := 0; row < 8; row++ {
		rank := 8 - row
		fmt.Fprintf(w, "%d ", rank)
		for file := 0; file < 8; file++ {
			g, s, ok := glyphOf(snap[row][file])

			bg := color.BgHiBlack
			if (row+file)%2 == 0 {
				bg = color.BgWhite
			}
			fg := color.FgHiBlack
			if ok && s == base.Light {
				fg = color.FgHiWhite
			} else if ok {
				fg = color.FgBlack
			}
			if !colored && !ok {
				g = "."
			}
			paint(bg, fg).Fprintf(w, " %s ", g)
		}
		fmt.Fprintf(w, " %d\n", rank)
	}
	fmt.Fprintln(w, "   a  b  c  d  e  f  g  h")
	fmt.Fprintln(w)
}
