package board

import "dragchess/src/base"

// Capture kills every live piece of side s whose box contains (x,y).
// It is a pixel overlap test, not a cell comparison, so call it only after
// the mover has settled.
func (r *Registry) Capture(s base.Side, x, y float64) []int {
	var killed []int
	for i := range r.pieces[s] {
		p := &r.pieces[s][i]
		if !p.IsDead && p.Sprite.Bounds().Contains(x, y) {
			p.IsDead = true
			killed = append(killed, i)
		}
	}
	return killed
}
