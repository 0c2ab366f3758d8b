package boring

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-drill/internal/config"
	"github.com/vovakirdan/tui-drill/internal/core"
	"github.com/vovakirdan/tui-drill/internal/drill"
	"github.com/vovakirdan/tui-drill/internal/share"
	"github.com/vovakirdan/tui-drill/internal/terrain"
	"github.com/vovakirdan/tui-drill/internal/token"
)

func testConfig(w, h int) core.RuntimeConfig {
	return core.RuntimeConfig{Seed: 42, ScreenW: w, ScreenH: h, TickRate: 60}
}

// setup isolates config lookup and installs settings for the test.
func setup(t *testing.T, s Settings) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	Configure(s)
	t.Cleanup(func() { Configure(Settings{Randomness: -1}) })
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// drive feeds a fixed input script to g for n ticks.
func drive(g *Game, n int) {
	for i := 0; i < n; i++ {
		var in core.InputFrame
		switch i {
		case 0:
			in = press(core.ActionPause)
		case 25:
			in = press(core.ActionDown)
		case 60:
			in = press(core.ActionPause)
		case 70:
			in = press(core.ActionUp, core.ActionPause)
		case 120:
			in = press(core.ActionPullBack)
		case 130:
			in = press(core.ActionPause)
		default:
			in = core.NewInputFrame()
		}
		g.Step(in)
	}
}

func TestDeterminism(t *testing.T) {
	setup(t, Settings{Randomness: 40})

	g1 := New()
	g1.Reset(testConfig(80, 24))
	g2 := New()
	g2.Reset(testConfig(80, 24))

	drive(g1, 200)
	drive(g2, 200)

	snap1, snap2 := g1.Snapshot(), g2.Snapshot()
	if snap1.X != snap2.X || snap1.Y != snap2.Y {
		t.Errorf("Head position mismatch: (%v,%v) vs (%v,%v)", snap1.X, snap1.Y, snap2.X, snap2.Y)
	}
	if snap1.State != snap2.State {
		t.Errorf("State mismatch: %v vs %v", snap1.State, snap2.State)
	}
	if snap1.RunLen != snap2.RunLen || snap1.Actions != snap2.Actions {
		t.Errorf("Path mismatch: %d/%d steps, %d/%d actions", snap1.RunLen, snap2.RunLen, snap1.Actions, snap2.Actions)
	}
}

func TestGameIDs(t *testing.T) {
	if New().ID() != "drill" {
		t.Errorf("Expected ID 'drill', got %q", New().ID())
	}
	if NewClassic().ID() != "drill_classic" {
		t.Errorf("Expected ID 'drill_classic', got %q", NewClassic().ID())
	}
}

func TestTitles(t *testing.T) {
	if New().Title() != "Directional Drill" {
		t.Errorf("Unexpected title %q", New().Title())
	}
	if !strings.Contains(NewClassic().Title(), "Classic") {
		t.Errorf("Unexpected classic title %q", NewClassic().Title())
	}
}

func TestStartAndSteer(t *testing.T) {
	setup(t, Settings{Randomness: -1})
	g := New()
	g.Reset(testConfig(80, 24))

	if !g.State().Paused {
		t.Fatal("Expected a new level to start paused")
	}

	g.Step(press(core.ActionPause))
	if g.Session().State() != drill.StateDrilling {
		t.Fatalf("Expected DRILLING after space, got %v", g.Session().State())
	}

	g.Step(press(core.ActionDown))
	if g.Session().Bias() != -1 {
		t.Errorf("Expected bias -1 after down, got %d", g.Session().Bias())
	}
	g.Step(press(core.ActionToggle))
	if g.Session().Bias() != 1 {
		t.Errorf("Expected bias +1 after toggle, got %d", g.Session().Bias())
	}
	if n := len(g.Session().Run()); n != 3 {
		t.Errorf("Expected 3 drilled steps, got %d", n)
	}
}

func TestSurfacingLosesAndRecordsAttempt(t *testing.T) {
	setup(t, Settings{Randomness: -1})
	g := NewClassic()
	g.Reset(testConfig(80, 24))

	// Bias +1 curves the head back up through the surface.
	g.Step(press(core.ActionPause))
	for i := 0; i < 400 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}

	if !g.State().GameOver || g.State().Won {
		t.Fatalf("Expected a lost game, got %+v", g.State())
	}
	if g.State().Score != 0 {
		t.Errorf("Expected score 0 on loss, got %d", g.State().Score)
	}

	att, ok := g.Attempt()
	if !ok {
		t.Fatal("Expected a finished attempt")
	}
	if att.Result != "LOSE" || att.Seed != 42 || att.Scene != terrain.SceneClassic {
		t.Errorf("Unexpected attempt %+v", att)
	}

	link, err := share.Parse(att.Link)
	if err != nil {
		t.Fatalf("Attempt link does not parse: %v", err)
	}
	actions, err := link.Actions()
	if err != nil {
		t.Fatalf("Attempt token does not decode: %v", err)
	}
	if len(actions) != g.Session().ActionCount() {
		t.Errorf("Expected %d recorded actions, got %d", g.Session().ActionCount(), len(actions))
	}
}

func TestReplayLinkReproducesRun(t *testing.T) {
	setup(t, Settings{Randomness: 30})
	live := New()
	live.Reset(testConfig(80, 24))
	drive(live, 220)

	link, err := share.NewLink(live.Level(), live.Session().Actions(), token.SchemeRLE)
	if err != nil {
		t.Fatalf("NewLink: %v", err)
	}
	parsed, err := share.Parse(link.String())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	Configure(Settings{Randomness: -1, Link: &parsed})
	replay := New()
	replay.Reset(core.RuntimeConfig{Seed: 999, ScreenW: 80, ScreenH: 24})
	if !replay.Session().Playback() {
		t.Fatal("Expected playback mode")
	}
	for i := 0; i < 5000 && !replay.Session().PlaybackDone() && !replay.State().GameOver; i++ {
		replay.Step(press(core.ActionDown))
	}

	a, b := live.Session(), replay.Session()
	if a.Seed() != b.Seed() {
		t.Fatalf("Seed mismatch: %d vs %d", a.Seed(), b.Seed())
	}
	if len(a.Run()) != len(b.Run()) || len(a.OldRuns()) != len(b.OldRuns()) {
		t.Fatalf("Path mismatch: %d/%d steps, %d/%d old runs",
			len(a.Run()), len(b.Run()), len(a.OldRuns()), len(b.OldRuns()))
	}
	for i := range a.Run() {
		if a.Run()[i] != b.Run()[i] {
			t.Fatalf("Step %d differs: %+v vs %+v", i, a.Run()[i], b.Run()[i])
		}
	}
}

func TestReplayKeepsPresetRules(t *testing.T) {
	setup(t, Settings{Preset: config.DifficultyHard, Randomness: -1})
	live := New()
	live.Reset(testConfig(80, 24))

	// Pausing and resuming every tick burns through the allowed starts.
	for i := 0; i < 100 && !live.State().GameOver; i++ {
		live.Step(press(core.ActionPause))
	}
	ls := live.Session()
	if ls.State() != drill.StateLose {
		t.Fatalf("Expected the start limit to lose, got %v after %d starts", ls.State(), ls.StartCount())
	}

	att, ok := live.Attempt()
	if !ok {
		t.Fatal("Expected a finished attempt")
	}
	if !strings.Contains(att.Link, "starts=8") {
		t.Errorf("Expected the hard start limit in the link, got %s", att.Link)
	}
	link, err := share.Parse(att.Link)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	Configure(Settings{Randomness: -1, Link: &link})
	replay := New()
	replay.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})
	for i := 0; i < 5000 && !replay.Session().PlaybackDone() && !replay.State().GameOver; i++ {
		replay.Step(core.NewInputFrame())
	}

	rs := replay.Session()
	if rs.State() != ls.State() || rs.StartCount() != ls.StartCount() {
		t.Errorf("Replay diverged: live %v with %d starts, replay %v with %d starts",
			ls.State(), ls.StartCount(), rs.State(), rs.StartCount())
	}
}

func TestRestartKeepsLevel(t *testing.T) {
	setup(t, Settings{Randomness: -1})
	g := New()
	g.Reset(testConfig(80, 24))
	boulders := append([]drill.Boulder(nil), g.world.Boulders()...)

	drive(g, 50)
	g.Step(press(core.ActionRestart))

	s := g.Session()
	if s.State() != drill.StatePaused || len(s.Run()) != 0 || s.ActionCount() != 0 {
		t.Errorf("Expected a fresh attempt, got %v with %d steps", s.State(), len(s.Run()))
	}
	if len(boulders) != len(g.world.Boulders()) {
		t.Fatalf("Boulder count changed: %d vs %d", len(boulders), len(g.world.Boulders()))
	}
	for i, b := range boulders {
		if g.world.Boulders()[i] != b {
			t.Errorf("Boulder %d moved: %+v vs %+v", i, b, g.world.Boulders()[i])
		}
	}
}

func TestFogReveal(t *testing.T) {
	setup(t, Settings{Randomness: -1})
	g := New()
	g.Reset(testConfig(80, 24))

	if !g.fog.hidden(300, 300) {
		t.Error("Deep ground should start hidden")
	}
	if g.fog.hidden(10, 50) {
		t.Error("Sky should start visible")
	}

	g.Handle(drill.Event{Kind: drill.EventReveal, Point: core.V(300, 300), Radius: 5})
	if g.fog.hidden(300, 300) {
		t.Error("Expected fog cleared at the revealed point")
	}
	if !g.fog.hidden(300, 310) {
		t.Error("Expected fog kept outside the reveal radius")
	}

	g.Reset(testConfig(80, 24))
	if !g.fog.hidden(300, 300) {
		t.Error("Expected fog restored for a new level")
	}
}

func TestClassicHasNoFog(t *testing.T) {
	setup(t, Settings{Randomness: -1})
	g := NewClassic()
	g.Reset(testConfig(80, 24))
	if g.fog != nil || g.showFog {
		t.Error("Classic scene should not be fogged")
	}
}

func TestScore(t *testing.T) {
	setup(t, Settings{Randomness: -1})
	g := New()
	g.Reset(testConfig(80, 24))
	sc := config.DefaultDrillConfig().Scoring

	if got := Score(sc, g.Session()); got != sc.Base {
		t.Errorf("Expected base score %d for an empty run, got %d", sc.Base, got)
	}

	g.Step(press(core.ActionPause))
	for i := 0; i < 9; i++ {
		g.Step(core.NewInputFrame())
	}
	if got := Score(sc, g.Session()); got != sc.Base-10 {
		t.Errorf("Expected %d after 10 steps, got %d", sc.Base-10, got)
	}

	if got := Score(config.DrillScoring{Base: 5, Penalty: 100}, g.Session()); got != 1 {
		t.Errorf("Expected score floor of 1, got %d", got)
	}
}

func TestPlaybackIgnoresPlayerSteering(t *testing.T) {
	link := share.Link{Level: share.Level{Seed: 42, Scene: "full"}, Scheme: token.SchemeRLE}
	tok, err := token.EncodeRLE([]byte{1, 2, 2, 2, 2, 2})
	if err != nil {
		t.Fatal(err)
	}
	link.Token = tok
	setup(t, Settings{Randomness: -1, Link: &link})

	g := New()
	g.Reset(testConfig(80, 24))
	for i := 0; i < 5; i++ {
		g.Step(press(core.ActionDown, core.ActionPullBack))
	}
	if g.Session().Bias() != 1 {
		t.Errorf("Expected scripted bias +1, got %d", g.Session().Bias())
	}
	if len(g.Session().Run()) != 5 {
		t.Errorf("Expected 5 replayed steps, got %d", len(g.Session().Run()))
	}
}

func TestWindowTooSmall(t *testing.T) {
	setup(t, Settings{Randomness: -1})
	g := New()
	g.Reset(testConfig(30, 10))

	g.Step(press(core.ActionPause))
	if len(g.Session().Run()) != 0 {
		t.Error("Simulation should not advance in a too small window")
	}

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Error("Expected a too small message")
	}
}

func TestRender(t *testing.T) {
	setup(t, Settings{Randomness: -1})
	g := New()
	g.Reset(testConfig(80, 24))
	g.Step(press(core.ActionPause))
	for i := 0; i < 20; i++ {
		g.Step(core.NewInputFrame())
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	if !strings.Contains(screen.Row(0), "DRILLING") {
		t.Errorf("HUD should show the state, got %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(0), "seed 42") {
		t.Errorf("HUD should show the seed, got %q", screen.Row(0))
	}
	if !strings.ContainsRune(out, '◆') {
		t.Error("Expected the drill head on screen")
	}
	if !strings.ContainsRune(out, '█') {
		t.Error("Expected the goal on screen")
	}
}

func TestSteeringArcs(t *testing.T) {
	p := drill.DefaultParams()
	arcs := steeringArcs(p, core.V(100, 150), core.V(1, 0))

	for i, arc := range arcs {
		if len(arc) != 94 {
			t.Errorf("Arc %d: expected 94 points, got %d", i, len(arc))
		}
	}
	up, down := arcs[0][len(arcs[0])-1], arcs[1][len(arcs[1])-1]
	if up.Y >= 150 || down.Y <= 150 {
		t.Errorf("Expected the first arc above and the second below, got %+v and %+v", up, down)
	}
}

func TestNewLevelLeavesReplay(t *testing.T) {
	link := share.Link{Level: share.Level{Seed: 42, Scene: "full"}, Scheme: token.SchemeRLE}
	tok, err := token.EncodeRLE([]byte{1, 2, 2})
	if err != nil {
		t.Fatal(err)
	}
	link.Token = tok
	setup(t, Settings{Randomness: -1, Link: &link})

	g := New()
	g.Reset(testConfig(80, 24))
	if !g.Session().Playback() {
		t.Fatal("Expected playback from the shared link")
	}

	g.NewLevel(core.RuntimeConfig{Seed: 7, ScreenW: 80, ScreenH: 24})
	if g.Session().Playback() {
		t.Error("A new level should not replay the shared attempt")
	}
	if g.Level().Seed != 7 {
		t.Errorf("Expected seed 7, got %d", g.Level().Seed)
	}
}
