package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-drill/internal/drill"
)

func generate(t *testing.T, cfg Config, seed int64) *Scene {
	t.Helper()
	return Generate(cfg, drill.NewRNG(seed))
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := generate(t, DefaultConfig(), 42)
	b := generate(t, DefaultConfig(), 42)
	c := generate(t, DefaultConfig(), 43)

	assert.Equal(t, a.cells, b.cells)
	assert.Equal(t, a.layers, b.layers)
	assert.Equal(t, a.Boulders(), b.Boulders())
	assert.NotEqual(t, a.Boulders(), c.Boulders())
}

func TestGroundAndSky(t *testing.T) {
	s := generate(t, DefaultConfig(), 1)

	assert.Equal(t, drill.CategoryBackground, s.Classify(10, 50))
	assert.Equal(t, drill.CategoryGround, s.Classify(10, 100.5))
	assert.Equal(t, drill.CategoryBackground, s.Classify(10, -5))
	assert.Equal(t, drill.CategoryBoundary, s.Classify(-1, 200))
	assert.Equal(t, drill.CategoryBoundary, s.Classify(600, 200))
	assert.Equal(t, drill.CategoryBoundary, s.Classify(300, 399.5), "bottom row is bedrock")
	assert.Equal(t, drill.CategoryBoundary, s.Classify(300, 400))
}

func TestRiverAndGoal(t *testing.T) {
	s := generate(t, DefaultConfig(), 1)

	assert.Equal(t, drill.CategoryRiver, s.Classify(300, 110))
	assert.Equal(t, drill.CategoryGoal, s.Classify(550, 90))
	assert.Equal(t, drill.CategoryGoal, s.Classify(550, 101), "the goal reaches into the ground")
	assert.Equal(t, drill.CategoryGoal, s.Classify(550, 70), "roof")
}

func TestBouldersWithinBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Boulders = 10
	s := generate(t, cfg, 7)

	require.Len(t, s.Boulders(), 10)
	for _, b := range s.Boulders() {
		assert.GreaterOrEqual(t, b.Radius, 8.0)
		assert.Less(t, b.Radius, 36.0)
		assert.GreaterOrEqual(t, b.Y, 150.0)
		assert.Less(t, b.Y, 350.0)
		assert.Equal(t, drill.CategoryBoulder, s.Classify(b.X, b.Y),
			"boulder center (%.1f, %.1f) should classify as boulder", b.X, b.Y)
	}
}

func TestLevelClamped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Boulders = 50
	assert.Len(t, generate(t, cfg, 1).Boulders(), 10)
}

func TestSurfaceFeaturesAvoidStartAndRiver(t *testing.T) {
	s := generate(t, DefaultConfig(), 11)
	for x := 0; x < 60; x++ {
		for y := 0; y < 100; y++ {
			c := s.At(x, y)
			assert.NotEqual(t, drill.CategoryHouse, c)
			assert.NotEqual(t, drill.CategoryHill, c)
		}
	}
	for _, h := range s.Houses() {
		assert.True(t, h.Right() <= 150 || h.X >= 450, "house %+v over the river", h)
		assert.Equal(t, 100, h.Bottom())
	}
}

func TestClassicScene(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scene = SceneClassic
	s := generate(t, cfg, 1)

	assert.Empty(t, s.Boulders())
	assert.Empty(t, s.Houses())
	assert.Equal(t, drill.CategoryRiver, s.Classify(150, 110), "classic river is wider")
	assert.Equal(t, drill.CategoryGoal, s.Classify(545, 85))
	assert.Equal(t, drill.CategoryBackground, s.Classify(545, 75), "classic goal has no roof")
}

func TestNoiseInRange(t *testing.T) {
	s := generate(t, DefaultConfig(), 3)
	for x := 0.0; x < 600; x += 37 {
		for y := 100.0; y < 400; y += 23 {
			n := s.Noise(x, y)
			assert.GreaterOrEqual(t, n, 0.0)
			assert.LessOrEqual(t, n, 1.0)
			assert.Equal(t, n, s.Noise(x, y))
		}
	}
}

func TestSurvey(t *testing.T) {
	s := generate(t, DefaultConfig(), 5)
	readings := Survey(s, 20, drill.NewRNG(5))

	require.Len(t, readings, 580)
	found := 0
	for _, r := range readings {
		if !r.Found {
			continue
		}
		found++
		// A boulder edge lies at least 50-36 units below the surface, so the
		// echo depth is never smaller than that minus the error margin.
		assert.Greater(t, r.Depth, 0.9*14)
	}
	assert.Positive(t, found)
}

func TestSurveyWithoutBoulders(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Boulders = 0
	for _, r := range Survey(generate(t, cfg, 1), 20, drill.NewRNG(1)) {
		assert.False(t, r.Found)
	}
}

// The drill curves upward from the start point; for the first pipe segment
// it stays in open ground on any generated level.
func TestDrillStaysInGroundOnFirstSegment(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Boulders = 10
	build := func(src drill.Source) drill.Classifier { return Generate(cfg, src) }
	s := drill.NewSession(drill.DefaultParams(), 42, build)

	const n = 30
	s.Resume()
	for i := 0; i < n; i++ {
		s.Tick()
	}

	assert.Equal(t, drill.StateDrilling, s.State())
	assert.Len(t, s.Run(), n)
}
