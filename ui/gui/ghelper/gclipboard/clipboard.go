package gclipboard

import (
	"dragchess/src/logic/convert/convfen"
	"dragchess/src/logic/convert/convpgn"
	"strings"

	"github.com/atotto/clipboard"
)

// write is swapped in tests, a headless runner has no clipboard
var write = clipboard.WriteAll

// CopyFEN puts the FEN of the game on the clipboard. When the rules
// library cannot replay the history the board's own FEN is used.
func CopyFEN(history string, snap [8]string, lightToMove bool) (string, error) {
	fen, rest := convfen.FromHistory(history)
	if len(rest) > 0 {
		fen = convfen.FromBoard(snap, lightToMove)
	}
	return fen, write(fen)
}

func CopyPGN(history string, headers map[convpgn.PGNHeader]string) error {
	var b strings.Builder
	if err := convpgn.WritePGN(&b, history, headers); err != nil {
		return err
	}
	return write(b.String())
}
