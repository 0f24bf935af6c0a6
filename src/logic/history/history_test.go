package history

import "testing"

func TestAppend(t *testing.T) {
	h := NewHistory()
	if h.String() != "" || h.Len() != 0 {
		t.Fatalf("new history = %q/%d", h.String(), h.Len())
	}
	if _, ok := h.Last(); ok {
		t.Error("Last on empty history")
	}

	h.Append("a2a4")
	if h.String() != "a2a4 " {
		t.Errorf("String() = %q", h.String())
	}
	h.Append("e7e5")
	if h.String() != "a2a4 e7e5 " {
		t.Errorf("String() = %q", h.String())
	}
	if last, _ := h.Last(); last != "e7e5" {
		t.Errorf("Last() = %q", last)
	}

	moves := h.Moves()
	moves[0] = "xxxx"
	if h.Moves()[0] != "a2a4" {
		t.Error("Moves() leaks internal slice")
	}
}

func TestReset(t *testing.T) {
	h := NewHistory()
	h.Append("d2d4")
	h.Reset()
	if h.String() != "" || h.Len() != 0 {
		t.Errorf("after reset = %q/%d", h.String(), h.Len())
	}
}
