package boring

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-drill/internal/core"
	"github.com/vovakirdan/tui-drill/internal/drill"
)

// viewport maps world units onto the screen rows between the HUD lines.
type viewport struct {
	cols, rows int
	ww, wh     float64
}

const viewTop = 1

func (v viewport) world(cx, cy int) (int, int) {
	x := (float64(cx) + 0.5) * v.ww / float64(v.cols)
	y := (float64(cy) + 0.5) * v.wh / float64(v.rows)
	return int(x), int(y)
}

func (v viewport) plot(dst *core.Screen, p core.Vec2, r rune, c core.Color) {
	cx := int(math.Floor(p.X * float64(v.cols) / v.ww))
	cy := int(math.Floor(p.Y * float64(v.rows) / v.wh))
	if cx < 0 || cx >= v.cols || cy < 0 || cy >= v.rows {
		return
	}
	dst.SetColored(cx, viewTop+cy, r, c)
}

// Render draws the cross-section, paths and HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.tooSmall || dst.Width() < minWidth || dst.Height() < minHeight {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		return
	}
	if g.session == nil || g.world == nil {
		return
	}

	s := g.session
	v := viewport{
		cols: dst.Width(),
		rows: dst.Height() - 2,
		ww:   float64(g.world.Width()),
		wh:   float64(g.world.Height()),
	}
	fogged := g.showFog && g.fog != nil && !s.State().Finished()

	for cy := 0; cy < v.rows; cy++ {
		for cx := 0; cx < v.cols; cx++ {
			x, y := v.world(cx, cy)
			if fogged && g.fog.hidden(x, y) {
				dst.SetColored(cx, viewTop+cy, '▓', core.ColorDarkGray)
				continue
			}
			r, c := glyph(g.world.At(x, y), g.world.Layer(x, y))
			dst.SetColored(cx, viewTop+cy, r, c)
		}
	}

	gl := float64(g.world.GroundLevel())
	for _, r := range g.reflections {
		if r.Found {
			v.plot(dst, core.V(r.X, gl+r.Depth), '∙', core.ColorMagenta)
		}
	}

	if g.showLimits && !s.State().Finished() {
		for _, arc := range steeringArcs(s.Params(), s.Position(), s.Heading()) {
			for _, p := range arc {
				v.plot(dst, p, '·', core.ColorCyan)
			}
		}
	}

	for _, run := range s.OldRuns() {
		for _, st := range run {
			v.plot(dst, st.Pos, '·', core.ColorGray)
		}
	}
	for _, st := range s.Run() {
		v.plot(dst, st.Pos, '•', core.ColorBrightWhite)
	}
	v.plot(dst, s.Position(), '◆', headColor(s.State()))

	g.renderHUD(dst)
	if s.State().Finished() {
		g.renderEnd(dst)
	}
}

func glyph(c drill.Category, layer int) (rune, core.Color) {
	switch c {
	case drill.CategoryGround:
		if layer%2 == 0 {
			return '░', core.ColorBrown
		}
		return '░', core.ColorDarkBrown
	case drill.CategoryGoal:
		return '█', core.ColorBrightYellow
	case drill.CategoryBoulder:
		return '█', core.ColorGray
	case drill.CategoryRiver:
		return '≈', core.ColorBlue
	case drill.CategoryBoundary:
		return '▀', core.ColorDarkGray
	case drill.CategoryHouse:
		return '▓', core.ColorRed
	case drill.CategoryHill:
		return '▲', core.ColorGreen
	default:
		return ' ', core.ColorSky
	}
}

func headColor(st drill.State) core.Color {
	switch st {
	case drill.StateStuck, drill.StateLose:
		return core.ColorBrightRed
	case drill.StateConnection:
		return core.ColorOrange
	case drill.StateWin:
		return core.ColorBrightGreen
	default:
		return core.ColorBrightYellow
	}
}

// steeringArcs returns the paths the head would follow at full bias in
// each direction, up to 1.2 * pi/4 of turn.
func steeringArcs(p drill.Params, pos, heading core.Vec2) [2][]core.Vec2 {
	var arcs [2][]core.Vec2
	if p.TurnAngle <= 0 {
		return arcs
	}
	steps := int(1.2 * math.Pi / 4 / p.TurnAngle)
	start := core.FromAngle(heading.Heading(), 1)
	for i, bias := range []float64{1, -1} {
		pt, dir := pos, start
		arcs[i] = make([]core.Vec2, 0, steps)
		for k := 0; k < steps; k++ {
			dir = dir.Rotate(-p.TurnAngle * bias)
			pt = pt.Add(dir)
			arcs[i] = append(arcs[i], pt)
		}
	}
	return arcs
}

func (g *Game) renderHUD(dst *core.Screen) {
	s := g.session
	p := s.Params()

	state := s.State().String()
	if s.State() == drill.StateConnection {
		state = fmt.Sprintf("CONNECTING %d", s.Countdown())
	}
	if s.Playback() {
		state = "REPLAY " + state
	}
	bias := "↑"
	if s.Bias() < 0 {
		bias = "↓"
	}

	hud := fmt.Sprintf(" %s | pipe %d (%d joints) | bias %s | stuck %d/%d | starts %d/%d | side %d/%d | seed %d",
		state, len(s.Run()), s.PipeSegments(), bias,
		s.StuckCount(), p.MaxStuck, s.StartCount(), p.MaxStarts, s.SideTrackCount(), p.MaxSideTracks,
		g.level.Seed)
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)

	help := " space drill/pause  ↑↓ steer  t toggle  x pull back  f fog  l arcs  r retry  n new  q quit"
	if s.Playback() {
		help = " replaying shared attempt  r restart  f fog  l arcs  n new level  q quit"
	}
	dst.DrawTextColored(0, dst.Height()-1, help, core.ColorGray)
}

func (g *Game) renderEnd(dst *core.Screen) {
	title := "DRILL LOST"
	color := core.ColorBrightRed
	if g.session.State() == drill.StateWin {
		title = "PIPE CONNECTED!"
		color = core.ColorBrightGreen
	}
	lines := []string{title, fmt.Sprintf("Score: %d", g.score), "space/r retry   n new level"}

	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	box := core.NewRect((dst.Width()-w-4)/2, dst.Height()/2-3, w+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, l := range lines {
		c := core.ColorBrightWhite
		if i == 0 {
			c = color
		}
		x := box.X + (box.W-len([]rune(l)))/2
		dst.DrawTextColored(x, box.Y+1+i, l, c)
	}
}
