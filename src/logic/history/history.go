package history

import "strings"

// History is the whole game as the engine sees it: "e2e4 e7e5 "
type History struct {
	b     strings.Builder
	moves []string
}

func NewHistory() *History {
	return &History{moves: make([]string, 0, 64)}
}

// Append adds one move record followed by the separator
func (h *History) Append(move string) {
	h.b.WriteString(move)
	h.b.WriteByte(' ')
	h.moves = append(h.moves, move)
}

func (h *History) String() string { return h.b.String() }
func (h *History) Len() int       { return len(h.moves) }

func (h *History) Moves() []string {
	out := make([]string, len(h.moves))
	copy(out, h.moves)
	return out
}

func (h *History) Last() (string, bool) {
	if len(h.moves) == 0 {
		return "", false
	}
	return h.moves[len(h.moves)-1], true
}

func (h *History) Reset() {
	h.b.Reset()
	h.moves = h.moves[:0]
}
