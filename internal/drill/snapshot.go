package drill

// Snapshot captures the session state compared by determinism tests and
// stored with finished runs.
type Snapshot struct {
	Tick       uint64
	State      State
	X, Y       float64
	HeadingX   float64
	HeadingY   float64
	Bias       int
	RunLen     int
	OldRunLens []int
	Actions    int
	Stuck      int
	Starts     int
	SideTracks int
	PulledBack int
	Countdown  int
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	old := make([]int, len(s.tracker.old))
	for i, r := range s.tracker.old {
		old[i] = len(r)
	}
	return Snapshot{
		Tick:       s.ticks,
		State:      s.state,
		X:          s.pos.X,
		Y:          s.pos.Y,
		HeadingX:   s.heading.X,
		HeadingY:   s.heading.Y,
		Bias:       s.bias,
		RunLen:     s.tracker.Len(),
		OldRunLens: old,
		Actions:    s.recorder.Len(),
		Stuck:      s.stuckCount,
		Starts:     s.startCount,
		SideTracks: s.sideTrackCount,
		PulledBack: s.pulledBackSteps,
		Countdown:  s.countdown,
	}
}
