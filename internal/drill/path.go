package drill

import "github.com/vovakirdan/tui-drill/internal/core"

// PathStep is one drilled tick: the position before the move, the heading
// used for it and the bias in effect.
type PathStep struct {
	Pos     core.Vec2
	Heading core.Vec2
	Bias    int
}

// Run is a contiguous sequence of steps since the last start or pull-back.
type Run []PathStep

// Tracker keeps the active run and the runs abandoned by pull-backs.
type Tracker struct {
	run Run
	old []Run
}

// Append adds a step to the active run.
func (t *Tracker) Append(step PathStep) {
	t.run = append(t.run, step)
}

// Len returns the number of steps in the active run.
func (t *Tracker) Len() int {
	return len(t.run)
}

// Last returns the most recent step of the active run.
func (t *Tracker) Last() (PathStep, bool) {
	if len(t.run) == 0 {
		return PathStep{}, false
	}
	return t.run[len(t.run)-1], true
}

// Run returns the active run. The slice must not be modified.
func (t *Tracker) Run() Run {
	return t.run
}

// OldRuns returns the abandoned runs, oldest first. The slices must not be
// modified.
func (t *Tracker) OldRuns() []Run {
	return t.old
}

// LastOld returns the most recently abandoned run.
func (t *Tracker) LastOld() (Run, bool) {
	if len(t.old) == 0 {
		return nil, false
	}
	return t.old[len(t.old)-1], true
}

// Boundary returns the pipe joint a pull-back would retract to: the last
// multiple of pipeLength strictly before the current step index.
func (t *Tracker) Boundary(pipeLength int) int {
	if pipeLength <= 0 || len(t.run) == 0 {
		return 0
	}
	return (len(t.run) - 1) / pipeLength * pipeLength
}

// PullBack truncates the active run at the previous pipe joint and archives
// the removed tail. It reports false and changes nothing when the joint is
// the start of the run.
func (t *Tracker) PullBack(pipeLength int) (Run, bool) {
	b := t.Boundary(pipeLength)
	if b <= 0 {
		return nil, false
	}
	tail := make(Run, len(t.run)-b)
	copy(tail, t.run[b:])
	t.old = append(t.old, tail)
	t.run = t.run[:b:b]
	return tail, true
}

// Reset clears all runs.
func (t *Tracker) Reset() {
	t.run = nil
	t.old = nil
}
