package drill

import (
	"errors"
	"fmt"
)

// Symbol is one recorded player decision.
type Symbol uint8

const (
	SymbolSteerDown Symbol = 0 // drilling tick with bias -1
	SymbolPause     Symbol = 1 // pause or resume
	SymbolSteerUp   Symbol = 2 // drilling tick with bias +1
	SymbolPullBack  Symbol = 3
)

// ErrInvalidSymbol is returned when a decoded value is outside 0..3.
var ErrInvalidSymbol = errors.New("drill: invalid action symbol")

// BiasSymbol returns the steering symbol recorded for a tick drilled with bias.
func BiasSymbol(bias int) Symbol {
	if bias < 0 {
		return SymbolSteerDown
	}
	return SymbolSteerUp
}

// Valid reports whether s is a known symbol.
func (s Symbol) Valid() bool { return s <= SymbolPullBack }

// Steering reports whether s records a drilled tick.
func (s Symbol) Steering() bool { return s == SymbolSteerDown || s == SymbolSteerUp }

// Sequence is an ordered list of recorded decisions.
type Sequence []Symbol

// Bytes returns the raw symbol values.
func (q Sequence) Bytes() []byte {
	out := make([]byte, len(q))
	for i, s := range q {
		out[i] = byte(s)
	}
	return out
}

// ParseSymbols validates raw values and converts them to a Sequence.
func ParseSymbols(raw []byte) (Sequence, error) {
	out := make(Sequence, len(raw))
	for i, b := range raw {
		s := Symbol(b)
		if !s.Valid() {
			return nil, fmt.Errorf("%w: %d at index %d", ErrInvalidSymbol, b, i)
		}
		out[i] = s
	}
	return out, nil
}

// Recorder is the append-only log of decisions for the current attempt.
type Recorder struct {
	seq Sequence
}

// Append records a decision.
func (r *Recorder) Append(s Symbol) { r.seq = append(r.seq, s) }

// Len returns the number of recorded decisions.
func (r *Recorder) Len() int { return len(r.seq) }

// Sequence returns a copy of the recorded decisions.
func (r *Recorder) Sequence() Sequence {
	out := make(Sequence, len(r.seq))
	copy(out, r.seq)
	return out
}

// Reset clears the log.
func (r *Recorder) Reset() { r.seq = r.seq[:0] }

// Replayer feeds a recorded script back into a session. Its cursor is the
// session's recorded length, so every scripted decision is consumed by the
// same command that recorded it.
type Replayer struct {
	script Sequence
	delay  int
	wait   int
	seen   State
}

// NewReplayer creates a replayer that waits delay ticks after the drill
// pauses or gets stuck before acting again.
func NewReplayer(script Sequence, delay int) *Replayer {
	return &Replayer{script: script, delay: delay, seen: StatePaused}
}

// Script returns the script being replayed.
func (r *Replayer) Script() Sequence { return r.script }

// Rewind prepares the replayer for a restarted session.
func (r *Replayer) Rewind() {
	r.wait = 0
	r.seen = StatePaused
}

// Exhausted reports whether every scripted decision has been issued.
func (r *Replayer) Exhausted(s *Session) bool {
	return s.recorder.Len() >= len(r.script)
}

// Drive issues the next scripted decision, if any, to s.
func (r *Replayer) Drive(s *Session) {
	st := s.state
	if st != r.seen {
		r.seen = st
		if st == StatePaused || st == StateStuck {
			r.wait = r.delay
		}
	}
	switch st {
	case StateConnection, StateWin, StateLose:
		return
	}
	if r.wait > 0 {
		r.wait--
		return
	}

	cursor := s.recorder.Len()
	if cursor >= len(r.script) {
		return
	}
	switch action := r.script[cursor]; action {
	case SymbolPause:
		s.TogglePause()
	case SymbolPullBack:
		s.PullBack()
	default:
		s.SetBias(int(action) - 1)
		if s.state != StateDrilling {
			s.resume(false)
		}
	}

	// A resume is followed by a drilled tick in the same frame; it must use
	// the bias recorded for that tick, which may have changed while paused.
	if next := s.recorder.Len(); s.state == StateDrilling && next < len(r.script) {
		if a := r.script[next]; a.Steering() {
			s.SetBias(int(a) - 1)
		}
	}
	r.seen = s.state
	if r.seen == StatePaused || r.seen == StateStuck {
		r.wait = r.delay
	}
}
