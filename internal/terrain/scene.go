// Package terrain generates the ground cross-section a drill moves through
// and answers classification queries against it.
package terrain

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/vovakirdan/tui-drill/internal/core"
	"github.com/vovakirdan/tui-drill/internal/drill"
)

// Scene names.
const (
	SceneFull    = "full"
	SceneClassic = "classic"
)

// Scenes returns the known scene names.
func Scenes() []string {
	return []string{SceneFull, SceneClassic}
}

// Config describes how a scene is generated.
type Config struct {
	Scene       string
	Width       int
	Height      int
	GroundLevel int
	DirtLayers  int
	Boulders    int // level: number of boulders
	MinRadius   float64
	MaxRadius   float64
	Houses      int
	Hills       int
	GoalX       int
	GoalW       int
	// TextureScale is the world distance covered by one unit of steering
	// noise.
	TextureScale float64
}

// DefaultConfig returns the standard full scene.
func DefaultConfig() Config {
	return Config{
		Scene:        SceneFull,
		Width:        600,
		Height:       400,
		GroundLevel:  100,
		DirtLayers:   7,
		Boulders:     5,
		MinRadius:    8,
		MaxRadius:    36,
		Houses:       3,
		Hills:        2,
		GoalX:        540,
		GoalW:        20,
		TextureScale: 25,
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.Scene != SceneClassic {
		c.Scene = SceneFull
	}
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	if c.GroundLevel <= 0 || c.GroundLevel >= c.Height {
		c.GroundLevel = c.Height / 4
	}
	if c.DirtLayers < 1 {
		c.DirtLayers = 1
	}
	c.Boulders = core.Clamp(c.Boulders, 0, 10)
	if c.MinRadius <= 0 {
		c.MinRadius = d.MinRadius
	}
	if c.MaxRadius < c.MinRadius {
		c.MaxRadius = c.MinRadius
	}
	if c.GoalW <= 0 {
		c.GoalW = d.GoalW
	}
	if c.GoalX <= 0 || c.GoalX+c.GoalW >= c.Width {
		c.GoalX = c.Width - 3*c.GoalW
	}
	if c.TextureScale <= 0 {
		c.TextureScale = d.TextureScale
	}
	return c
}

// Scene is a generated level. It implements drill.Classifier.
type Scene struct {
	cfg      Config
	cells    []drill.Category
	layers   []uint8
	boulders []drill.Boulder
	houses   []core.Rect
	texture  opensimplex.Noise
}

var _ drill.Classifier = (*Scene)(nil)

// Config returns the normalized generation config.
func (s *Scene) Config() Config { return s.cfg }

// Width returns the scene width in world units.
func (s *Scene) Width() int { return s.cfg.Width }

// Height returns the scene height in world units.
func (s *Scene) Height() int { return s.cfg.Height }

// GroundLevel returns the surface y.
func (s *Scene) GroundLevel() int { return s.cfg.GroundLevel }

// Boulders returns the generated boulders.
func (s *Scene) Boulders() []drill.Boulder { return s.boulders }

// Houses returns the generated house footprints.
func (s *Scene) Houses() []core.Rect { return s.houses }

// Goal returns the goal box on the surface.
func (s *Scene) Goal() core.Rect {
	return core.NewRect(s.cfg.GoalX, s.cfg.GroundLevel-s.cfg.GoalW, s.cfg.GoalW, s.cfg.GoalW)
}

// At returns the category of grid cell (x, y), or boundary outside the grid.
func (s *Scene) At(x, y int) drill.Category {
	if x < 0 || x >= s.cfg.Width || y < 0 || y >= s.cfg.Height {
		return drill.CategoryBoundary
	}
	return s.cells[y*s.cfg.Width+x]
}

// Layer returns the dirt layer index of grid cell (x, y); 0 outside ground.
func (s *Scene) Layer(x, y int) int {
	if x < 0 || x >= s.cfg.Width || y < 0 || y >= s.cfg.Height {
		return 0
	}
	return int(s.layers[y*s.cfg.Width+x])
}

// Classify returns the category under world point (x, y).
func (s *Scene) Classify(x, y float64) drill.Category {
	if y < 0 {
		return drill.CategoryBackground
	}
	return s.At(int(math.Floor(x)), int(math.Floor(y)))
}

// Noise returns the terrain texture at (x, y) in [0, 1].
func (s *Scene) Noise(x, y float64) float64 {
	return core.ClampF(s.texture.Eval2(x/s.cfg.TextureScale, y/s.cfg.TextureScale), 0, 1)
}

func (s *Scene) set(x, y int, c drill.Category) {
	if x < 0 || x >= s.cfg.Width || y < 0 || y >= s.cfg.Height {
		return
	}
	s.cells[y*s.cfg.Width+x] = c
}
