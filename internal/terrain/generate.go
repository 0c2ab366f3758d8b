package terrain

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/vovakirdan/tui-drill/internal/core"
	"github.com/vovakirdan/tui-drill/internal/drill"
)

// layerSpread scales how far each dirt layer sinks below the previous one.
const layerSpread = 2.5

// Generate builds a scene, drawing every random value from src. The same
// config and stream position always produce the same scene.
func Generate(cfg Config, src drill.Source) *Scene {
	cfg = cfg.normalized()
	s := &Scene{
		cfg:    cfg,
		cells:  make([]drill.Category, cfg.Width*cfg.Height),
		layers: make([]uint8, cfg.Width*cfg.Height),
	}
	s.texture = opensimplex.NewNormalized(subSeed(src))

	if cfg.Scene == SceneClassic {
		s.paintGround(nil)
		s.paintRiver(200, 100)
		s.paintRect(core.NewRect(cfg.GoalX, cfg.GroundLevel-cfg.GoalW, cfg.GoalW, cfg.GoalW), drill.CategoryGoal)
		s.paintBedrock()
		return s
	}

	s.paintGround(dirtLayers(cfg, src))
	s.paintRiver(float64(cfg.Width)/4, float64(cfg.Width)/8)
	s.placeBoulders(src)
	s.placeHouses(src)
	s.placeHills(src)
	s.paintGoal()
	s.paintBedrock()
	return s
}

func subSeed(src drill.Source) int64 {
	return int64(src.Uniform(0, math.MaxInt32))
}

// dirtLayers returns, per layer, the top edge of that layer for every column.
func dirtLayers(cfg Config, src drill.Source) [][]float64 {
	noise := make([]opensimplex.Noise, cfg.DirtLayers)
	for l := range noise {
		noise[l] = opensimplex.NewNormalized(subSeed(src))
	}

	step := layerSpread * float64(cfg.Height-cfg.GroundLevel) / float64(cfg.DirtLayers)
	tops := make([][]float64, cfg.DirtLayers)
	for l := range tops {
		tops[l] = make([]float64, cfg.Width)
		for x := 0; x < cfg.Width; x++ {
			y := float64(cfg.GroundLevel)
			for i := 0; i < l; i++ {
				y += step * noise[i].Eval2(float64(x)/100, 0)
			}
			tops[l][x] = y
		}
	}
	return tops
}

// paintGround fills background above the surface and ground below it,
// recording the deepest layer whose top edge is above each cell.
func (s *Scene) paintGround(tops [][]float64) {
	gl := s.cfg.GroundLevel
	for y := 0; y < s.cfg.Height; y++ {
		for x := 0; x < s.cfg.Width; x++ {
			i := y*s.cfg.Width + x
			if y < gl {
				s.cells[i] = drill.CategoryBackground
				continue
			}
			s.cells[i] = drill.CategoryGround
			for l := len(tops) - 1; l > 0; l-- {
				if float64(y) >= tops[l][x] {
					s.layers[i] = uint8(l)
					break
				}
			}
		}
	}
}

// paintRiver carves a half ellipse below the surface at the center.
func (s *Scene) paintRiver(rx, ry float64) {
	cx := float64(s.cfg.Width) / 2
	gl := s.cfg.GroundLevel
	for y := gl; y <= gl+int(ry); y++ {
		dy := (float64(y) + 0.5 - float64(gl)) / ry
		for x := int(cx - rx); x <= int(cx+rx); x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			if dx*dx+dy*dy <= 1 {
				s.set(x, y, drill.CategoryRiver)
			}
		}
	}
}

func (s *Scene) placeBoulders(src drill.Source) {
	cfg := s.cfg
	gl := float64(cfg.GroundLevel)
	for i := 0; i < cfg.Boulders; i++ {
		b := drill.Boulder{Radius: src.Uniform(cfg.MinRadius, cfg.MaxRadius)}
		b.X = src.Uniform(0, float64(cfg.Width))
		b.Y = src.Uniform(gl+50, float64(cfg.Height)-50)
		s.boulders = append(s.boulders, b)
		s.paintCircle(b)
	}
}

func (s *Scene) paintCircle(b drill.Boulder) {
	for y := int(b.Y - b.Radius); y <= int(b.Y+b.Radius); y++ {
		for x := int(b.X - b.Radius); x <= int(b.X+b.Radius); x++ {
			if b.Contains(float64(x)+0.5, float64(y)+0.5) {
				s.set(x, y, drill.CategoryBoulder)
			}
		}
	}
}

// surfaceClear reports whether a surface feature spanning [x0, x1] stays
// away from the start, the river, the goal and earlier houses.
func (s *Scene) surfaceClear(x0, x1 float64) bool {
	cx := float64(s.cfg.Width) / 2
	rx := float64(s.cfg.Width) / 4
	switch {
	case x0 < 60:
		return false
	case x1 > float64(s.cfg.GoalX)-30:
		return false
	case x1 > cx-rx && x0 < cx+rx:
		return false
	}
	for _, h := range s.houses {
		if x1 > float64(h.X) && x0 < float64(h.Right()) {
			return false
		}
	}
	return true
}

const placementTries = 20

func (s *Scene) placeHouses(src drill.Source) {
	gl := s.cfg.GroundLevel
	for i := 0; i < s.cfg.Houses; i++ {
		for try := 0; try < placementTries; try++ {
			w := src.Uniform(12, 22)
			h := src.Uniform(8, 16)
			x := src.Uniform(0, float64(s.cfg.Width))
			if !s.surfaceClear(x, x+w) {
				continue
			}
			r := core.NewRect(int(x), gl-int(h), int(w), int(h))
			s.houses = append(s.houses, r)
			s.paintRect(r, drill.CategoryHouse)
			break
		}
	}
}

func (s *Scene) placeHills(src drill.Source) {
	gl := float64(s.cfg.GroundLevel)
	for i := 0; i < s.cfg.Hills; i++ {
		for try := 0; try < placementTries; try++ {
			rx := src.Uniform(15, 40)
			ry := src.Uniform(5, 15)
			cx := src.Uniform(0, float64(s.cfg.Width))
			if !s.surfaceClear(cx-rx, cx+rx) {
				continue
			}
			for y := int(gl - ry); y < int(gl); y++ {
				dy := (gl - float64(y) - 0.5) / ry
				for x := int(cx - rx); x <= int(cx+rx); x++ {
					dx := (float64(x) + 0.5 - cx) / rx
					if dx*dx+dy*dy <= 1 && s.At(x, y) == drill.CategoryBackground {
						s.set(x, y, drill.CategoryHill)
					}
				}
			}
			break
		}
	}
}

// paintGoal draws the goal box, reaching two rows into the ground, and its
// roof.
func (s *Scene) paintGoal() {
	gx, gw, gl := s.cfg.GoalX, s.cfg.GoalW, s.cfg.GroundLevel
	s.paintRect(core.NewRect(gx-2, gl-gw-2, gw+4, gw+4), drill.CategoryGoal)

	base := float64(gl - gw - 2)
	peak := float64(gl) - float64(gw)*1.8
	left, right := float64(gx-6), float64(gx+gw+6)
	mid := float64(gx) + float64(gw)/2
	for y := int(peak); y < int(base); y++ {
		t := (base - float64(y)) / (base - peak)
		x0 := left + (mid-left)*t
		x1 := right - (right-mid)*t
		for x := int(x0); x <= int(x1); x++ {
			s.set(x, y, drill.CategoryGoal)
		}
	}
}

func (s *Scene) paintRect(r core.Rect, c drill.Category) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.set(x, y, c)
		}
	}
}

func (s *Scene) paintBedrock() {
	for x := 0; x < s.cfg.Width; x++ {
		s.set(x, s.cfg.Height-1, drill.CategoryBoundary)
	}
}
