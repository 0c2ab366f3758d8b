package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-drill/internal/config"
	"github.com/vovakirdan/tui-drill/internal/core"
	"github.com/vovakirdan/tui-drill/internal/games/boring"
	"github.com/vovakirdan/tui-drill/internal/platform/tui"
	"github.com/vovakirdan/tui-drill/internal/registry"
	"github.com/vovakirdan/tui-drill/internal/share"
	"github.com/vovakirdan/tui-drill/internal/storage"
	"github.com/vovakirdan/tui-drill/internal/terrain"
	"github.com/vovakirdan/tui-drill/internal/token"
)

var (
	flagDifficulty string
	flagLevel      int
	flagRnd        int
	flagRopd       int
	flagSol        string
	flagS4         string
	flagLink       string
	flagPick       bool
)

var playCmd = &cobra.Command{
	Use:   "play [scene]",
	Short: "Play a level",
	Long: `Start drilling. The scene is "full" (default: fog, houses, hills,
boulders and a seismic survey) or "classic" (ground, river and goal only).

Controls:
  Space/P       - Start or pause drilling
  Up/Down       - Steer up or down
  T             - Flip the steering bias
  X/Backspace   - Pull back to the last pipe joint
  F             - Toggle fog
  L             - Show steering limits
  R             - Retry the level
  N             - New level
  B/Esc         - Back (while paused or finished)
  Q/Ctrl+C      - Quit

A shared attempt is replayed when --link, --s4 or --sol is given.

Examples:
  drill play
  drill play classic --seed 42
  drill play --difficulty hard
  drill play --level 8 --rnd 30
  drill play --pick
  drill play --seed 42 --s4 BRYQ`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	addLevelFlags(playCmd)
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagS4, "s4", "", "Replay a run-length encoded attempt")
	playCmd.Flags().StringVar(&flagSol, "sol", "", "Replay a packed attempt")
	playCmd.Flags().StringVar(&flagLink, "link", "", "Play or replay a share link")
	playCmd.Flags().BoolVar(&flagPick, "pick", false, "Choose difficulty or level from a menu")
}

// addLevelFlags registers the flags describing a level.
func addLevelFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagLevel, "level", 0, "Number of boulders 1-10 (0 = config)")
	cmd.Flags().IntVar(&flagRnd, "rnd", -1, "Steering randomness 0-100 (-1 = config)")
	cmd.Flags().IntVar(&flagRopd, "ropd", 0, "Speed divider, ticks per unit of advance (0 = config)")
}

func runPlay(_ *cobra.Command, args []string) error {
	scene := terrain.SceneFull
	if len(args) == 1 {
		scene = args[0]
	}
	gameID, err := gameIDForScene(scene)
	if err != nil {
		return err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	link, err := linkFromFlags(scene)
	if err != nil {
		return err
	}
	if link != nil {
		if gameID, err = gameIDForScene(link.Level.Scene); err != nil {
			return err
		}
	}

	cfg := terminalConfig()
	level := flagLevel
	if flagPick && link == nil {
		sel, err := tui.RunLevelSelector(cfg)
		if err != nil {
			return err
		}
		if sel == nil {
			return nil
		}
		preset, level = sel.Preset, sel.Level
	}

	boring.Configure(boring.Settings{
		ConfigPath:   flagConfig,
		Preset:       preset,
		Level:        level,
		Randomness:   flagRnd,
		SpeedDivider: flagRopd,
		Link:         link,
		Logger:       gameLogger(),
	})

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	res, err := tui.Run(game, store, cfg, gameLogger())
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	printAttempt(res)
	return nil
}

// gameIDForScene maps a scene or game ID to the registered game.
func gameIDForScene(scene string) (string, error) {
	switch scene {
	case "", terrain.SceneFull, "drill":
		return "drill", nil
	case terrain.SceneClassic, "drill_classic":
		return "drill_classic", nil
	}
	return "", fmt.Errorf("unknown scene %q (want %s or %s)", scene, terrain.SceneFull, terrain.SceneClassic)
}

// linkFromFlags builds the shared level from --link or from --seed with a
// token flag. It returns nil when neither is given.
func linkFromFlags(scene string) (*share.Link, error) {
	if flagLink != "" {
		link, err := share.Parse(flagLink)
		if err != nil {
			return nil, err
		}
		return &link, validateLink(link)
	}

	if flagS4 == "" && flagSol == "" {
		return nil, nil
	}
	if flagSeed == 0 {
		return nil, errors.New("replaying a token needs the level --seed")
	}

	link := share.Link{Level: share.Level{
		Seed:         flagSeed,
		Randomness:   max(flagRnd, 0),
		SpeedDivider: flagRopd,
		Boulders:     flagLevel,
		Scene:        scene,
	}}
	switch {
	case flagS4 != "":
		link.Scheme, link.Token = token.SchemeRLE, flagS4
	default:
		link.Scheme, link.Token = token.SchemePacked, flagSol
	}
	return &link, validateLink(link)
}

func validateLink(link share.Link) error {
	if _, err := link.Actions(); err != nil {
		return fmt.Errorf("invalid recorded attempt: %w", err)
	}
	return nil
}

// terminalConfig sizes the runtime config to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the database, or returns nil so play continues without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		return nil
	}
	return store
}

func printAttempt(res tui.Result) {
	if !res.HasAttempt {
		return
	}
	a := res.Attempt
	fmt.Printf("Last attempt: %s, pipe %d", a.Result, a.PipeLength)
	if a.Score > 0 {
		fmt.Printf(", score %d", a.Score)
	}
	fmt.Println()
	fmt.Printf("Share: %s\n", a.Link)
}
