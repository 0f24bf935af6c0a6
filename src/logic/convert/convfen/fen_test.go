package convfen

import (
	"strings"
	"testing"
)

// en passant and clock fields differ between library versions
func placementAndSide(fen string) string {
	f := strings.Fields(fen)
	if len(f) < 2 {
		return fen
	}
	return f[0] + " " + f[1]
}

var start = [8]string{
	"rnbqkbnr",
	"pppppppp",
	"........",
	"........",
	"........",
	"........",
	"PPPPPPPP",
	"RNBQKBNR",
}

func TestPlacement(t *testing.T) {
	if got := Placement(start); got != "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR" {
		t.Errorf("placement = %q", got)
	}

	snap := start
	snap[4] = "....P..."
	snap[6] = "PPPP.PPP"
	if got := FromBoard(snap, false); got != "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b - - 0 1" {
		t.Errorf("fen = %q", got)
	}
}

func TestFromHistory(t *testing.T) {
	fen, rest := FromHistory("e2e4 e7e5 ")
	if len(rest) != 0 {
		t.Fatalf("unreplayed = %q", rest)
	}
	if placementAndSide(fen) != "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w" {
		t.Errorf("fen = %q", fen)
	}

	fen, rest = FromHistory("e2e4 e7e4 g1f3 ")
	if len(rest) != 2 || rest[0] != "e7e4" {
		t.Errorf("unreplayed = %q", rest)
	}
	if placementAndSide(fen) != "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b" {
		t.Errorf("fen = %q", fen)
	}
}
