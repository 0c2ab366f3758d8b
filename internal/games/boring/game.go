// Package boring implements the directional drilling game on top of the
// drill simulation: input mapping, fog, scoring and rendering.
package boring

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-drill/internal/config"
	"github.com/vovakirdan/tui-drill/internal/core"
	"github.com/vovakirdan/tui-drill/internal/drill"
	"github.com/vovakirdan/tui-drill/internal/registry"
	"github.com/vovakirdan/tui-drill/internal/share"
	"github.com/vovakirdan/tui-drill/internal/terrain"
	"github.com/vovakirdan/tui-drill/internal/token"
)

// Minimum terminal size for a readable cross-section.
const (
	minWidth  = 40
	minHeight = 12
)

// Game implements registry.Game for one scene.
type Game struct {
	scene    string
	settings Settings
	cfg      config.DrillConfig
	log      *log.Logger

	session     *drill.Session
	world       *terrain.Scene
	reflections []terrain.Reflection
	fog         *fogMask
	level       share.Level

	showFog    bool
	showLimits bool

	score    int
	finished bool
	attempt  registry.Attempt

	screenW  int
	screenH  int
	tooSmall bool

	// Set once the player asks for a fresh level; a shared link no longer
	// applies after that.
	detached bool
}

// New creates the full scene game.
func New() *Game {
	return &Game{scene: terrain.SceneFull}
}

// NewClassic creates the classic scene game: ground, river and goal only.
func NewClassic() *Game {
	return &Game{scene: terrain.SceneClassic}
}

func init() {
	registry.Register("drill", func() registry.Game {
		return New()
	})
	registry.Register("drill_classic", func() registry.Game {
		return NewClassic()
	})
}

var (
	_ registry.Recorder       = (*Game)(nil)
	_ registry.Resizer        = (*Game)(nil)
	_ registry.LevelGenerator = (*Game)(nil)
)

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.scene == terrain.SceneClassic {
		return "drill_classic"
	}
	return "drill"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.scene == terrain.SceneClassic {
		return "Directional Drill (Classic)"
	}
	return "Directional Drill"
}

// Reset builds a new level from the current settings. A shared link, when
// set, fixes the seed and level and may start a replay.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.settings = CurrentSettings()
	g.log = g.settings.logger().With("game", g.ID())
	g.cfg = g.loadConfig()
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	scene := g.scene
	seed := cfg.Seed
	var playback drill.Sequence
	if link := g.settings.Link; link != nil && !g.detached {
		seed = link.Level.Seed
		applyLevel(&g.cfg, link.Level)
		if link.Level.Scene != "" {
			scene = link.Level.Scene
		}
		actions, err := link.Actions()
		if err != nil {
			g.log.Error("ignoring recorded attempt", "err", err)
		}
		playback = actions
	}
	g.cfg.Terrain.Scene = scene

	g.level = share.Level{
		Seed:         seed,
		SpeedDivider: g.cfg.Physics.SpeedDivider,
		Randomness:   g.cfg.Physics.Randomness,
		Boulders:     g.cfg.Terrain.Level,
		Scene:        scene,
		MaxStarts:    g.cfg.Rules.MaxStarts,
	}
	g.showFog = scene == terrain.SceneFull
	g.showLimits = false
	g.score = 0
	g.finished = false
	g.attempt = registry.Attempt{}

	opts := []drill.Option{drill.WithSink(g)}
	if len(playback) > 0 {
		opts = append(opts, drill.WithPlayback(playback))
	}
	g.session = drill.NewSession(Params(g.cfg), seed, g.build, opts...)

	g.log.Info("level ready",
		"seed", seed,
		"scene", scene,
		"level", g.cfg.Terrain.Level,
		"rnd", g.cfg.Physics.Randomness,
		"ropd", g.cfg.Physics.SpeedDivider,
		"starts", g.cfg.Rules.MaxStarts,
		"playback", len(playback) > 0,
	)
}

// NewLevel leaves any shared attempt behind and generates a level from
// cfg.Seed.
func (g *Game) NewLevel(cfg core.RuntimeConfig) {
	g.detached = true
	g.Reset(cfg)
}

func (g *Game) loadConfig() config.DrillConfig {
	cfg, err := config.LoadDrill(g.settings.ConfigPath)
	if err != nil {
		g.log.Warn("using default config", "err", err)
		cfg = config.DefaultDrillConfig()
	}
	config.ApplyDrillPreset(&cfg, g.settings.Preset)
	applyLevel(&cfg, share.Level{
		Boulders:     g.settings.Level,
		Randomness:   g.settings.Randomness,
		SpeedDivider: g.settings.SpeedDivider,
	})
	return cfg
}

// applyLevel copies the non-zero level overrides into cfg.
func applyLevel(cfg *config.DrillConfig, l share.Level) {
	if l.Boulders > 0 {
		cfg.Terrain.Level = core.Clamp(l.Boulders, 1, 10)
	}
	if l.Randomness >= 0 {
		cfg.Physics.Randomness = core.Clamp(l.Randomness, 0, 100)
	}
	if l.SpeedDivider > 0 {
		cfg.Physics.SpeedDivider = l.SpeedDivider
	}
	if l.MaxStarts > 0 {
		cfg.Rules.MaxStarts = l.MaxStarts
	}
}

// build generates the terrain, survey and fog for a (re)started session.
func (g *Game) build(src drill.Source) drill.Classifier {
	g.world = terrain.Generate(TerrainConfig(g.cfg), src)
	g.reflections = nil
	g.fog = nil
	if g.world.Config().Scene == terrain.SceneFull {
		g.reflections = terrain.Survey(g.world, float64(g.cfg.Terrain.GoalW), src)
		g.fog = newFogMask(g.world)
	}
	return g.world
}

// Params converts the loaded config into simulation parameters.
func Params(cfg config.DrillConfig) drill.Params {
	return drill.Params{
		Width:           float64(cfg.Terrain.Width),
		Height:          float64(cfg.Terrain.Height),
		Start:           core.V(cfg.Physics.StartX, cfg.Physics.StartY),
		StartAngle:      cfg.Physics.StartAngleDeg * math.Pi / 180,
		StartBias:       1,
		TurnAngle:       cfg.Physics.TurnAngle,
		SpeedDivider:    cfg.Physics.SpeedDivider,
		Randomness:      cfg.Physics.Randomness,
		PipeLength:      cfg.Rules.PipeLength,
		ConnectionTicks: cfg.Rules.ConnectionTicks,
		MaxStuck:        cfg.Rules.MaxStuck,
		MaxStarts:       cfg.Rules.MaxStarts,
		MaxSideTracks:   cfg.Rules.MaxSideTracks,
		SideTrackRadius: cfg.Rules.SideTrackRadius,
		RevealRadius:    float64(cfg.Terrain.GoalW),
		ReplayDelay:     cfg.Replay.DelayTicks,
	}
}

// TerrainConfig converts the loaded config into terrain generation settings.
func TerrainConfig(cfg config.DrillConfig) terrain.Config {
	return terrain.Config{
		Scene:        cfg.Terrain.Scene,
		Width:        cfg.Terrain.Width,
		Height:       cfg.Terrain.Height,
		GroundLevel:  cfg.Terrain.GroundLevel,
		DirtLayers:   cfg.Terrain.DirtLayers,
		Boulders:     cfg.Terrain.Level,
		MinRadius:    8,
		MaxRadius:    36,
		Houses:       cfg.Terrain.Houses,
		Hills:        cfg.Terrain.Hills,
		GoalX:        cfg.Terrain.GoalX,
		GoalW:        cfg.Terrain.GoalW,
		TextureScale: cfg.Terrain.TextureScale,
	}
}

// Resize adapts rendering to a new terminal size without touching the run.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minWidth || h < minHeight
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{State: g.State()}
	}
	s := g.session

	if in.Has(core.ActionFog) {
		g.showFog = !g.showFog
	}
	if in.Has(core.ActionLimits) {
		g.showLimits = !g.showLimits
	}
	if in.Has(core.ActionRestart) || (in.Has(core.ActionPause) && s.State().Finished()) {
		s.Restart()
		return core.StepResult{State: g.State()}
	}

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// A replay owns the controls.
	if !s.Playback() {
		switch {
		case in.Has(core.ActionUp):
			s.SetBias(1)
		case in.Has(core.ActionDown):
			s.SetBias(-1)
		case in.Has(core.ActionToggle):
			s.ToggleBias()
		}
		if in.Has(core.ActionPullBack) {
			s.PullBack()
		}
		if in.Has(core.ActionPause) {
			s.TogglePause()
		}
	}

	s.Step()
	return core.StepResult{State: g.State()}
}

// Handle receives simulation events.
func (g *Game) Handle(ev drill.Event) {
	switch ev.Kind {
	case drill.EventReveal:
		if g.fog != nil {
			g.fog.reveal(ev.Point, ev.Radius)
		}
	case drill.EventPullBack:
		g.log.Info("pulled back", "steps", ev.Archived, "pipe", len(g.session.Run()))
	case drill.EventStateChanged:
		g.log.Debug("state changed", "from", ev.Prev, "to", ev.State,
			"x", math.Round(ev.Point.X), "y", math.Round(ev.Point.Y))
		switch {
		case ev.State.Finished():
			g.finish(ev.State)
		case ev.Prev.Finished():
			g.score = 0
			g.finished = false
			g.attempt = registry.Attempt{}
		}
	}
}

func (g *Game) finish(state drill.State) {
	s := g.session
	g.finished = true
	g.score = 0
	if state == drill.StateWin {
		g.score = Score(g.cfg.Scoring, s)
	}

	scheme := token.Scheme(g.cfg.Replay.Scheme)
	link, err := share.NewLink(g.level, s.Actions(), scheme)
	if err != nil {
		g.log.Error("encode attempt", "err", err)
	}
	g.attempt = registry.Attempt{
		Seed:         g.level.Seed,
		Scene:        g.level.Scene,
		Level:        g.level.Boulders,
		Randomness:   g.level.Randomness,
		SpeedDivider: g.level.SpeedDivider,
		MaxStarts:    g.level.MaxStarts,
		Scheme:       string(link.Scheme),
		Token:        link.Token,
		Result:       state.String(),
		PipeLength:   len(s.Run()),
		Score:        g.score,
		Link:         link.String(),
	}

	g.log.Info("attempt finished",
		"result", state,
		"score", g.score,
		"pipe", len(s.Run()),
		"stuck", s.StuckCount(),
		"sidetracks", s.SideTrackCount(),
		"pulled_back", s.PulledBackSteps(),
		"playback", s.Playback(),
	)
}

// Score rates a winning session: shorter pipe and fewer mistakes score
// higher. Never less than 1.
func Score(sc config.DrillScoring, s *drill.Session) int {
	v := sc.Base - len(s.Run()) - sc.Penalty*(s.StuckCount()+s.SideTrackCount()) - s.PulledBackSteps()
	return max(1, v)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	st := g.session.State()
	return core.GameState{
		Score:    g.score,
		GameOver: st.Finished(),
		Paused:   st == drill.StatePaused,
		Won:      st == drill.StateWin,
	}
}

// Attempt returns the finished attempt for storage and sharing.
func (g *Game) Attempt() (registry.Attempt, bool) {
	return g.attempt, g.finished
}

// Session returns the running simulation.
func (g *Game) Session() *drill.Session {
	return g.session
}

// Level returns the shareable description of the current level.
func (g *Game) Level() share.Level {
	return g.level
}
