package drill

import (
	"math"

	"github.com/vovakirdan/tui-drill/internal/core"
)

// stubTerrain classifies every point with classify (ground when nil) and
// returns a fixed or hashed noise value.
type stubTerrain struct {
	classify func(x, y float64) Category
	noise    float64
	hashed   bool
}

func (t stubTerrain) Classify(x, y float64) Category {
	if t.classify == nil {
		return CategoryGround
	}
	return t.classify(x, y)
}

func (t stubTerrain) Noise(x, y float64) float64 {
	if !t.hashed {
		return t.noise
	}
	v := math.Sin(x*12.9898+y*78.233) * 43758.5453
	return v - math.Floor(v)
}

func staticBuilder(c Classifier) Builder {
	return func(Source) Classifier { return c }
}

func everywhere(c Category) func(x, y float64) Category {
	return func(x, y float64) Category { return c }
}

func testParams() Params {
	p := DefaultParams()
	p.PipeLength = 10
	p.ConnectionTicks = 3
	return p
}

func newTestSession(c Classifier) *Session {
	return NewSession(testParams(), 42, staticBuilder(c))
}

// drillTo ticks until the active run holds n steps or the session stops
// drilling for a reason other than a pipe connection.
func drillTo(s *Session, n int) {
	for guard := 0; s.tracker.Len() < n && guard < 10*n+100; guard++ {
		if s.state != StateDrilling && s.state != StateConnection {
			return
		}
		s.Tick()
	}
}

func angleOf(v core.Vec2) float64 {
	return v.Heading()
}
