package drill

// State is the drill's position in the game state machine.
// Exactly one state is active at a time.
type State int

const (
	StatePaused State = iota
	StateDrilling
	StateStuck
	StateConnection
	StateWin
	StateLose
)

// String returns the state name as shown in the HUD.
func (s State) String() string {
	switch s {
	case StatePaused:
		return "PAUSED"
	case StateDrilling:
		return "DRILLING"
	case StateStuck:
		return "STUCK"
	case StateConnection:
		return "CONNECTION"
	case StateWin:
		return "WIN"
	case StateLose:
		return "LOSE"
	default:
		return "UNKNOWN"
	}
}

// Finished reports whether the state ends the run.
func (s State) Finished() bool {
	return s == StateWin || s == StateLose
}

// CanResume reports whether a resume command is accepted in this state.
func (s State) CanResume() bool {
	return s == StatePaused || s == StateStuck
}

// CanPullBack reports whether a pull-back command is accepted in this state.
func (s State) CanPullBack() bool {
	return s == StatePaused || s == StateDrilling || s == StateStuck
}
