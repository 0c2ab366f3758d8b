package drill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-drill/internal/core"
)

func fillTracker(n int) *Tracker {
	tr := &Tracker{}
	for i := 0; i < n; i++ {
		tr.Append(PathStep{Pos: core.V(float64(i), 0), Heading: core.V(1, 0), Bias: 1})
	}
	return tr
}

func TestTrackerBoundary(t *testing.T) {
	tests := []struct {
		steps int
		want  int
	}{
		{0, 0},
		{1, 0},
		{10, 0},
		{11, 10},
		{20, 10},
		{21, 20},
		{39, 30},
	}

	for _, tt := range tests {
		tr := fillTracker(tt.steps)
		assert.Equal(t, tt.want, tr.Boundary(10), "Boundary with %d steps", tt.steps)
	}
}

func TestTrackerPullBackCopiesTail(t *testing.T) {
	tr := fillTracker(23)

	tail, ok := tr.PullBack(10)
	require.True(t, ok)
	require.Len(t, tail, 3)
	assert.Equal(t, core.V(20, 0), tail[0].Pos)
	assert.Equal(t, 20, tr.Len())

	// Appending after the cut must not overwrite the archived tail.
	tr.Append(PathStep{Pos: core.V(-1, -1)})
	old, ok := tr.LastOld()
	require.True(t, ok)
	assert.Equal(t, core.V(20, 0), old[0].Pos)

	last, ok := tr.Last()
	require.True(t, ok)
	assert.Equal(t, core.V(-1, -1), last.Pos)
}

func TestTrackerPullBackAtStart(t *testing.T) {
	tr := fillTracker(10)
	_, ok := tr.PullBack(10)
	assert.False(t, ok)
	assert.Equal(t, 10, tr.Len())
	assert.Empty(t, tr.OldRuns())
}

func TestTrackerReset(t *testing.T) {
	tr := fillTracker(25)
	tr.PullBack(10)
	tr.Reset()
	assert.Zero(t, tr.Len())
	assert.Empty(t, tr.OldRuns())
	_, ok := tr.Last()
	assert.False(t, ok)
}
