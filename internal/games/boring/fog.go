package boring

import (
	"github.com/vovakirdan/tui-drill/internal/core"
	"github.com/vovakirdan/tui-drill/internal/drill"
	"github.com/vovakirdan/tui-drill/internal/terrain"
)

// fogMask tracks which world cells the player has seen.
type fogMask struct {
	w, h     int
	revealed []bool
}

// newFogMask uncovers the sky, a band below the surface two goal widths
// deep and the river.
func newFogMask(s *terrain.Scene) *fogMask {
	f := &fogMask{w: s.Width(), h: s.Height(), revealed: make([]bool, s.Width()*s.Height())}
	band := s.GroundLevel() + 2*s.Config().GoalW
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			if y < band || s.At(x, y) == drill.CategoryRiver {
				f.revealed[y*f.w+x] = true
			}
		}
	}
	return f
}

// reveal uncovers a circle around p.
func (f *fogMask) reveal(p core.Vec2, radius float64) {
	r := int(radius) + 1
	cx, cy := int(p.X), int(p.Y)
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if x < 0 || x >= f.w || y < 0 || y >= f.h {
				continue
			}
			if p.Dist(core.V(float64(x)+0.5, float64(y)+0.5)) <= radius {
				f.revealed[y*f.w+x] = true
			}
		}
	}
}

// hidden reports whether world cell (x, y) is still covered.
func (f *fogMask) hidden(x, y int) bool {
	if f == nil || x < 0 || x >= f.w || y < 0 || y >= f.h {
		return false
	}
	return !f.revealed[y*f.w+x]
}
