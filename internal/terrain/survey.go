package terrain

import (
	"math"

	"github.com/vovakirdan/tui-drill/internal/core"
	"github.com/vovakirdan/tui-drill/internal/drill"
)

// Reflection is one acoustic survey reading: the estimated depth below
// the surface of the nearest boulder under a sender/receiver pair.
type Reflection struct {
	X     float64 // midpoint between sender and receiver
	Depth float64 // estimated depth below ground level
	Found bool
}

// surveyAngles is the number of points sampled on each boulder edge.
const surveyAngles = 36

// surveyError is the maximum relative error of a reading.
const surveyError = 0.10

// Survey simulates a surface acoustic survey with sender and receiver
// spacing units apart, stepped one unit at a time. Every reading draws one
// value from src for its measurement error.
func Survey(s *Scene, spacing float64, src drill.Source) []Reflection {
	if spacing <= 0 {
		spacing = float64(s.cfg.GoalW)
	}
	gl := float64(s.cfg.GroundLevel)

	var out []Reflection
	for x := 0.0; x < float64(s.cfg.Width)-spacing; x++ {
		travel, found := shortestEcho(s.boulders, x, x+spacing, gl)
		noise := 1 + src.Uniform(-surveyError, surveyError)
		out = append(out, Reflection{
			X:     x + spacing/2,
			Depth: noise * travel / 2,
			Found: found,
		})
	}
	return out
}

// shortestEcho returns the shortest sender-to-boulder-to-receiver path over
// boulder edge points lying between x0 and x1.
func shortestEcho(boulders []drill.Boulder, x0, x1, gl float64) (float64, bool) {
	best := math.Inf(1)
	sender, receiver := core.V(x0, gl), core.V(x1, gl)
	for _, b := range boulders {
		center := core.V(b.X, b.Y)
		for i := 0; i < surveyAngles; i++ {
			p := center.Add(core.FromAngle(float64(i)*2*math.Pi/surveyAngles, b.Radius))
			if p.X < x0 || p.X > x1 {
				continue
			}
			if d := sender.Dist(p) + receiver.Dist(p); d < best {
				best = d
			}
		}
	}
	if math.IsInf(best, 1) {
		return 0, false
	}
	return best, true
}
