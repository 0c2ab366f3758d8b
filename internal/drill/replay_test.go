package drill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func replayParams() Params {
	p := testParams()
	p.Randomness = 60
	return p
}

func noisyBuilder() Builder {
	return staticBuilder(stubTerrain{hashed: true})
}

// playLive drives a session the way a player would: commands issued on
// fixed ticks, one tick per frame.
func playLive(s *Session) {
	s.Resume()
	for i := 0; i < 120; i++ {
		switch i {
		case 15:
			s.ToggleBias()
		case 30:
			s.Pause()
		case 33:
			s.ToggleBias()
		case 36:
			s.Resume()
		case 60:
			s.PullBack()
		case 64:
			s.Resume()
		case 80:
			s.ToggleBias()
		}
		s.Tick()
	}
}

func replay(t *testing.T, script Sequence, seed int64) *Session {
	t.Helper()
	s := NewSession(replayParams(), seed, noisyBuilder(), WithPlayback(script))
	for guard := 0; !s.PlaybackDone(); guard++ {
		require.Less(t, guard, 10000, "replay did not finish")
		s.Step()
	}
	return s
}

func TestLiveRunIsDeterministic(t *testing.T) {
	a := NewSession(replayParams(), 1234, noisyBuilder())
	b := NewSession(replayParams(), 1234, noisyBuilder())
	playLive(a)
	playLive(b)

	assert.Equal(t, a.Snapshot(), b.Snapshot())
	assert.Equal(t, a.Run(), b.Run())
	assert.Equal(t, a.OldRuns(), b.OldRuns())
	assert.Equal(t, a.Actions(), b.Actions())
}

func TestReplayReproducesLiveRun(t *testing.T) {
	live := NewSession(replayParams(), 1234, noisyBuilder())
	playLive(live)
	require.NotEmpty(t, live.OldRuns(), "the live run should include a pull-back")

	got := replay(t, live.Actions(), 1234)

	assert.Equal(t, live.Actions(), got.Actions())
	assert.Equal(t, live.Run(), got.Run())
	assert.Equal(t, live.OldRuns(), got.OldRuns())
	assert.Equal(t, live.Position(), got.Position())
	assert.Equal(t, live.Heading(), got.Heading())
	assert.Equal(t, live.StartCount(), got.StartCount())
	assert.Equal(t, live.SideTrackCount(), got.SideTrackCount())
}

func TestReplayTwiceIsIdentical(t *testing.T) {
	live := NewSession(replayParams(), 99, noisyBuilder())
	playLive(live)

	a := replay(t, live.Actions(), 99)
	b := replay(t, live.Actions(), 99)
	assert.Equal(t, a.Snapshot(), b.Snapshot())
	assert.Equal(t, a.Run(), b.Run())
}

func TestReplayWaitsAfterPause(t *testing.T) {
	p := testParams()
	p.ReplayDelay = 4
	script := Sequence{SymbolPause, SymbolSteerUp, SymbolPause, SymbolPause, SymbolSteerUp}
	s := NewSession(p, 1, staticBuilder(stubTerrain{}), WithPlayback(script))

	s.Step() // resume + drill
	s.Step() // pause
	require.Equal(t, StatePaused, s.State())
	require.Equal(t, 3, s.ActionCount())

	for i := 0; i < 4; i++ {
		s.Step()
		assert.Equal(t, StatePaused, s.State(), "frame %d of the delay", i)
	}
	s.Step()
	assert.Equal(t, StateDrilling, s.State())
	assert.True(t, s.PlaybackDone())
}

func TestReplayExhaustedStopsIssuingActions(t *testing.T) {
	script := Sequence{SymbolPause, SymbolSteerUp, SymbolSteerUp}
	s := NewSession(testParams(), 1, staticBuilder(stubTerrain{}), WithPlayback(script))

	for i := 0; i < 8; i++ {
		s.Step()
	}

	assert.True(t, s.PlaybackDone())
	assert.Equal(t, StateDrilling, s.State(), "the drill keeps its last state")
	assert.Len(t, s.Run(), 8)
}

func TestReplayImplicitResumeIsNotRecorded(t *testing.T) {
	script := Sequence{SymbolSteerDown, SymbolSteerDown}
	s := NewSession(testParams(), 1, staticBuilder(stubTerrain{}), WithPlayback(script))

	s.Step()
	s.Step()

	assert.Equal(t, script, s.Actions())
	assert.Equal(t, -1, s.Bias())
	assert.Equal(t, 1, s.StartCount())
}

func TestReplayAfterRestart(t *testing.T) {
	live := NewSession(replayParams(), 5, noisyBuilder())
	playLive(live)

	s := replay(t, live.Actions(), 5)
	s.Restart()
	for guard := 0; !s.PlaybackDone(); guard++ {
		require.Less(t, guard, 10000)
		s.Step()
	}
	assert.Equal(t, live.Run(), s.Run())
}

func TestParseSymbols(t *testing.T) {
	seq, err := ParseSymbols([]byte{0, 1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, Sequence{SymbolSteerDown, SymbolPause, SymbolSteerUp, SymbolPullBack}, seq)
	assert.Equal(t, []byte{0, 1, 2, 3}, seq.Bytes())

	_, err = ParseSymbols([]byte{0, 4})
	assert.ErrorIs(t, err, ErrInvalidSymbol)
}

func TestBiasSymbol(t *testing.T) {
	assert.Equal(t, SymbolSteerDown, BiasSymbol(-1))
	assert.Equal(t, SymbolSteerUp, BiasSymbol(1))
}

func TestSymbolSteering(t *testing.T) {
	assert.True(t, SymbolSteerDown.Steering())
	assert.True(t, SymbolSteerUp.Steering())
	assert.False(t, SymbolPause.Steering())
	assert.False(t, SymbolPullBack.Steering())
}
