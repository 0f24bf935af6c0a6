package convfen

import (
	"dragchess/src/logic/convert/convpgn"
	"strconv"
	"strings"
)

// Placement converts a board snapshot (row 0 is rank 8, '.' empty) to the
// piece placement field of a FEN record
func Placement(snap [8]string) string {
	var b strings.Builder
	for y, row := range snap {
		empty := 0
		for x := 0; x < 8; x++ {
			ch := byte('.')
			if x < len(row) {
				ch = row[x]
			}
			if ch == '.' {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			b.WriteByte(ch)
		}
		if empty > 0 {
			b.WriteString(strconv.Itoa(empty))
		}
		if y < 7 {
			b.WriteByte('/')
		}
	}
	return b.String()
}

// FromBoard is a FEN of what the board shows. Castling and en passant
// rights are unknown to the board and left empty.
func FromBoard(snap [8]string, lightToMove bool) string {
	side := "b"
	if lightToMove {
		side = "w"
	}
	return Placement(snap) + " " + side + " - - 0 1"
}

// FromHistory replays the history with the rules library. The moves it
// could not apply are returned and the FEN is of the last good position.
func FromHistory(history string) (string, []string) {
	game, rest := convpgn.Replay(strings.Fields(history))
	return game.FEN(), rest
}
