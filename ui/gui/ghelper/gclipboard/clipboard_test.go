package gclipboard

import (
	"strings"
	"testing"
)

func fakeClipboard(t *testing.T) *string {
	t.Helper()
	var got string
	old := write
	write = func(s string) error {
		got = s
		return nil
	}
	t.Cleanup(func() { write = old })
	return &got
}

var start = [8]string{"rnbqkbnr", "pppppppp", "........", "........", "........", "........", "PPPPPPPP", "RNBQKBNR"}

func TestCopyFEN(t *testing.T) {
	got := fakeClipboard(t)
	fen, err := CopyFEN("", start, true)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(*got, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w") || *got != fen {
		t.Errorf("clipboard = %q, returned %q", *got, fen)
	}
}

func TestCopyFENFallsBackToBoard(t *testing.T) {
	got := fakeClipboard(t)
	if _, err := CopyFEN("a2a5 ", start, false); err != nil {
		t.Fatal(err)
	}
	if *got != "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b - - 0 1" {
		t.Errorf("clipboard = %q", *got)
	}
}

func TestCopyPGN(t *testing.T) {
	got := fakeClipboard(t)
	if err := CopyPGN("e2e4 e7e5 ", nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(*got, "e4") || !strings.Contains(*got, "e5") {
		t.Errorf("clipboard = %q", *got)
	}
}
