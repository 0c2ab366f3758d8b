package drill

import "github.com/vovakirdan/tui-drill/internal/core"

// Session owns one attempt at a level: the drill head, the state machine,
// the path history and the decision log. Live input and the replayer drive
// it through the same command methods. A Session is not safe for
// concurrent use; all calls happen on the tick goroutine.
type Session struct {
	params  Params
	seed    int64
	build   Builder
	rng     Source
	terrain Classifier
	sink    Sink

	state     State
	pos       core.Vec2
	heading   core.Vec2
	bias      int
	countdown int

	tracker  Tracker
	recorder Recorder
	replayer *Replayer

	ticks           uint64
	stuckCount      int
	startCount      int
	sideTrackCount  int
	sideTracked     bool
	pulledBackSteps int
}

// Option configures a Session.
type Option func(*Session)

// WithSink sets the event sink.
func WithSink(sink Sink) Option {
	return func(s *Session) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithSource replaces the default PCG random stream.
func WithSource(src Source) Option {
	return func(s *Session) {
		if src != nil {
			s.rng = src
		}
	}
}

// WithPlayback puts the session in playback mode for script.
func WithPlayback(script Sequence) Option {
	return func(s *Session) {
		s.replayer = NewReplayer(script, s.params.ReplayDelay)
	}
}

// NewSession seeds the random stream, builds the terrain and places the
// drill at its start.
func NewSession(p Params, seed int64, build Builder, opts ...Option) *Session {
	s := &Session{
		params: p.normalized(),
		seed:   seed,
		build:  build,
		sink:   discardSink{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewRNG(seed)
	}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.rng.Reseed(s.seed)
	if s.build != nil {
		s.terrain = s.build(s.rng)
	}
	if s.terrain == nil {
		s.terrain = openGround{}
	}

	s.state = StatePaused
	s.pos = s.params.Start
	s.heading = core.FromAngle(s.params.StartAngle, s.params.Speed())
	s.bias = s.params.StartBias
	s.countdown = 0
	s.tracker.Reset()
	s.recorder.Reset()
	s.ticks = 0
	s.stuckCount = 0
	s.startCount = 0
	s.sideTrackCount = 0
	s.sideTracked = false
	s.pulledBackSteps = 0
	if s.replayer != nil {
		s.replayer.Rewind()
	}
}

// Restart resets the attempt on the same level: the stream is reseeded and
// the terrain rebuilt, so the ground is identical.
func (s *Session) Restart() {
	prev := s.state
	s.reset()
	s.emit(Event{Kind: EventStateChanged, State: s.state, Prev: prev})
}

// Pause stops drilling. Only a drilling session can pause; a connection
// finishes on its own.
func (s *Session) Pause() {
	if s.state != StateDrilling {
		return
	}
	s.recorder.Append(SymbolPause)
	s.setState(StatePaused)
}

// Resume starts drilling from PAUSED or STUCK.
func (s *Session) Resume() {
	s.resume(true)
}

// TogglePause pauses a drilling session or resumes a paused or stuck one.
func (s *Session) TogglePause() {
	switch {
	case s.state == StateDrilling:
		s.Pause()
	case s.state.CanResume():
		s.Resume()
	}
}

func (s *Session) resume(record bool) {
	if !s.state.CanResume() {
		return
	}
	if record {
		s.recorder.Append(SymbolPause)
	}
	s.startCount++

	if !s.sideTracked {
		if old, ok := s.tracker.LastOld(); ok && len(old) > 0 {
			if s.pos.Dist(old[0].Pos) <= s.params.SideTrackRadius {
				s.sideTrackCount++
				s.sideTracked = true
			}
		}
	}

	switch {
	case exceeded(s.startCount, s.params.MaxStarts),
		exceeded(s.sideTrackCount, s.params.MaxSideTracks):
		s.setState(StateLose)
	default:
		s.setState(StateDrilling)
	}
}

// SetBias sets the steering bias. Values are clamped to -1 or +1.
// Bias changes are not recorded; every drilled tick records the bias used.
func (s *Session) SetBias(bias int) {
	if bias < 0 {
		s.bias = -1
	} else {
		s.bias = 1
	}
}

// ToggleBias flips the steering bias.
func (s *Session) ToggleBias() {
	s.SetBias(-s.bias)
}

// PullBack retracts the drill to the previous pipe joint, archiving the
// removed steps, and leaves the session paused. It does nothing before the
// first joint or outside PAUSED, DRILLING and STUCK.
func (s *Session) PullBack() {
	if !s.state.CanPullBack() {
		return
	}
	tail, ok := s.tracker.PullBack(s.params.PipeLength)
	if !ok {
		return
	}
	s.pulledBackSteps += len(tail)
	s.sideTracked = false
	s.restoreLast()
	s.recorder.Append(SymbolPullBack)
	s.emit(Event{Kind: EventPullBack, Archived: len(tail), Point: s.pos})
	s.setState(StatePaused)
}

// Step advances one frame: the replayer acts first in playback mode, then
// the simulation ticks.
func (s *Session) Step() {
	if s.replayer != nil {
		s.replayer.Drive(s)
	}
	s.Tick()
}

// Tick advances the simulation by one fixed step.
func (s *Session) Tick() {
	if s.state.Finished() {
		return
	}
	s.ticks++

	switch s.state {
	case StateConnection:
		s.countdown--
		if s.countdown <= 0 {
			s.countdown = 0
			s.setState(StateDrilling)
		}
	case StateDrilling:
		s.drill()
	}
}

func (s *Session) drill() {
	p := s.params
	speed := p.Speed()
	bias := float64(s.bias)

	// Screen y grows downward: a positive bias turns the head upward.
	s.heading = s.heading.Rotate(-p.TurnAngle * bias * speed)

	// Terrain texture scales a random error that only ever weakens the turn.
	texture := 0.5 + s.terrain.Noise(s.pos.X, s.pos.Y)
	r := s.rng.Uniform(-float64(p.Randomness), 0) / 100 * texture * p.TurnAngle * speed * bias
	s.heading = s.heading.Rotate(-r)

	step := PathStep{Pos: s.pos, Heading: s.heading, Bias: s.bias}
	s.tracker.Append(step)
	s.recorder.Append(BiasSymbol(s.bias))
	s.emit(Event{Kind: EventPathAppended, Step: step, Point: step.Pos})

	if s.tracker.Len()%p.PipeLength == 0 {
		s.countdown = p.ConnectionTicks
		s.setState(StateConnection)
	}

	s.pos = s.pos.Add(s.heading)
	s.emit(Event{Kind: EventReveal, Point: s.pos, Radius: p.RevealRadius})
	s.checkPosition()
}

func (s *Session) checkPosition() {
	p := s.params
	if s.pos.X < 0 || s.pos.X > p.Width || s.pos.Y > p.Height {
		s.setState(StateLose)
		return
	}

	switch c := s.terrain.Classify(s.pos.X, s.pos.Y); {
	case c == CategoryGoal:
		s.setState(StateWin)
	case c == CategoryBoulder:
		s.stuckCount++
		if s.params.MaxStuck > 0 && s.stuckCount >= s.params.MaxStuck {
			s.setState(StateLose)
			return
		}
		s.restoreLast()
		s.setState(StateStuck)
	case c.Fatal():
		s.setState(StateLose)
	}
}

// restoreLast moves the head back onto the last stored step.
func (s *Session) restoreLast() {
	if last, ok := s.tracker.Last(); ok {
		s.pos = last.Pos
		s.heading = last.Heading
		return
	}
	s.pos = s.params.Start
	s.heading = core.FromAngle(s.params.StartAngle, s.params.Speed())
}

func (s *Session) setState(next State) {
	if next == s.state {
		return
	}
	prev := s.state
	s.state = next
	s.emit(Event{Kind: EventStateChanged, State: next, Prev: prev, Point: s.pos})
}

func (s *Session) emit(ev Event) {
	s.sink.Handle(ev)
}

// exceeded reports whether count is past a limit; limits <= 0 are unlimited.
func exceeded(count, limit int) bool {
	return limit > 0 && count > limit
}

// State returns the current drill state.
func (s *Session) State() State { return s.state }

// Position returns the drill head position.
func (s *Session) Position() core.Vec2 { return s.pos }

// Heading returns the drill head direction; its length is the speed.
func (s *Session) Heading() core.Vec2 { return s.heading }

// Bias returns the steering bias, -1 or +1.
func (s *Session) Bias() int { return s.bias }

// Seed returns the level seed.
func (s *Session) Seed() int64 { return s.seed }

// Params returns the normalized session parameters.
func (s *Session) Params() Params { return s.params }

// Terrain returns the classifier built for the level.
func (s *Session) Terrain() Classifier { return s.terrain }

// Run returns the active run. The slice must not be modified.
func (s *Session) Run() Run { return s.tracker.Run() }

// OldRuns returns the runs archived by pull-backs.
func (s *Session) OldRuns() []Run { return s.tracker.OldRuns() }

// Actions returns a copy of the recorded decisions.
func (s *Session) Actions() Sequence { return s.recorder.Sequence() }

// ActionCount returns the number of recorded decisions.
func (s *Session) ActionCount() int { return s.recorder.Len() }

// Playback reports whether the session replays a script.
func (s *Session) Playback() bool { return s.replayer != nil }

// PlaybackDone reports whether a playback session issued its whole script.
func (s *Session) PlaybackDone() bool {
	return s.replayer != nil && s.replayer.Exhausted(s)
}

// Countdown returns the remaining connection ticks.
func (s *Session) Countdown() int { return s.countdown }

// Ticks returns the number of simulated ticks since the last restart.
func (s *Session) Ticks() uint64 { return s.ticks }

// StuckCount returns how many times the drill hit a boulder.
func (s *Session) StuckCount() int { return s.stuckCount }

// StartCount returns how many times drilling was resumed.
func (s *Session) StartCount() int { return s.startCount }

// SideTrackCount returns how many times drilling resumed next to an
// abandoned run.
func (s *Session) SideTrackCount() int { return s.sideTrackCount }

// PulledBackSteps returns the total steps archived by pull-backs.
func (s *Session) PulledBackSteps() int { return s.pulledBackSteps }

// PipeSegments returns the number of completed pipe segments in the
// active run.
func (s *Session) PipeSegments() int {
	return s.tracker.Len() / s.params.PipeLength
}

// openGround is used when no terrain builder is given.
type openGround struct{}

func (openGround) Classify(x, y float64) Category { return CategoryGround }
func (openGround) Noise(x, y float64) float64     { return 0 }
