package drill

import (
	"math"

	"github.com/vovakirdan/tui-drill/internal/core"
)

// Params holds the rule and physics constants of a session.
type Params struct {
	// World bounds in world units.
	Width  float64
	Height float64

	Start      core.Vec2
	StartAngle float64 // radians, screen coordinates (y grows downward)
	StartBias  int

	TurnAngle    float64 // radians per unit of travel at full bias
	SpeedDivider int     // ropd: drill advances 1/SpeedDivider units per tick
	Randomness   int     // rnd: 0..100 scale of terrain-noise steering error

	PipeLength      int // steps per pipe segment
	ConnectionTicks int // ticks spent connecting a new segment

	MaxStuck      int
	MaxStarts     int
	MaxSideTracks int

	SideTrackRadius float64
	RevealRadius    float64

	// ReplayDelay is the number of ticks the replayer waits after a pause
	// or stuck event before issuing the next scripted action.
	ReplayDelay int
}

// DefaultParams returns the standard rules.
func DefaultParams() Params {
	return Params{
		Width:           600,
		Height:          400,
		Start:           core.V(10, 100),
		StartAngle:      math.Pi / 6,
		StartBias:       1,
		TurnAngle:       0.01,
		SpeedDivider:    1,
		Randomness:      0,
		PipeLength:      40,
		ConnectionTicks: 20,
		MaxStuck:        3,
		MaxStarts:       12,
		MaxSideTracks:   3,
		SideTrackRadius: 1.5,
		RevealRadius:    20,
		ReplayDelay:     15,
	}
}

// Speed returns the distance advanced per tick.
func (p Params) Speed() float64 {
	if p.SpeedDivider <= 0 {
		return 1
	}
	return 1 / float64(p.SpeedDivider)
}

// normalized fills zero fields with defaults.
func (p Params) normalized() Params {
	d := DefaultParams()
	if p.Width <= 0 {
		p.Width = d.Width
	}
	if p.Height <= 0 {
		p.Height = d.Height
	}
	if p.StartBias != 1 && p.StartBias != -1 {
		p.StartBias = d.StartBias
	}
	if p.TurnAngle <= 0 {
		p.TurnAngle = d.TurnAngle
	}
	if p.SpeedDivider <= 0 {
		p.SpeedDivider = d.SpeedDivider
	}
	if p.Randomness < 0 {
		p.Randomness = 0
	}
	if p.PipeLength <= 0 {
		p.PipeLength = d.PipeLength
	}
	if p.ConnectionTicks < 0 {
		p.ConnectionTicks = 0
	}
	if p.SideTrackRadius <= 0 {
		p.SideTrackRadius = d.SideTrackRadius
	}
	if p.ReplayDelay < 0 {
		p.ReplayDelay = 0
	}
	return p
}
