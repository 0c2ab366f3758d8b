package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-drill/internal/core"
	"github.com/vovakirdan/tui-drill/internal/games/boring"
	"github.com/vovakirdan/tui-drill/internal/platform/tui"
	"github.com/vovakirdan/tui-drill/internal/registry"
	"github.com/vovakirdan/tui-drill/internal/share"
	"github.com/vovakirdan/tui-drill/internal/storage"
)

var (
	flagReplayRun    int64
	flagReplayTUI    bool
	flagReplayWidth  int
	flagReplayHeight int
	flagReplayMax    int
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a shared or stored attempt",
	Long: `Replay an attempt from a share link or from the runs database.

Without --tui the replay runs headless as fast as possible and prints the
outcome and the final cross-section.

Examples:
  drill replay --link 'drill://play?seed=42&s4=BRYQ'
  drill replay --run 7
  drill replay --run 7 --tui`,
	Args: cobra.NoArgs,
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagLink, "link", "", "Share link to replay")
	replayCmd.Flags().Int64Var(&flagReplayRun, "run", 0, "ID of a stored run to replay")
	replayCmd.Flags().BoolVar(&flagReplayTUI, "tui", false, "Watch the replay in the terminal UI")
	replayCmd.Flags().IntVar(&flagReplayWidth, "width", 100, "Width of the printed cross-section")
	replayCmd.Flags().IntVar(&flagReplayHeight, "height", 30, "Height of the printed cross-section")
	replayCmd.Flags().IntVar(&flagReplayMax, "max-ticks", 200000, "Give up after this many ticks")
}

func runReplay(_ *cobra.Command, _ []string) error {
	link, err := replayLink()
	if err != nil {
		return err
	}
	if !link.Playback() {
		return errors.New("the link carries no recorded attempt")
	}
	if err := validateLink(link); err != nil {
		return err
	}
	gameID, err := gameIDForScene(link.Level.Scene)
	if err != nil {
		return err
	}

	gameLog := logger
	if flagReplayTUI {
		gameLog = gameLogger()
	}
	boring.Configure(boring.Settings{
		ConfigPath: flagConfig,
		Randomness: -1,
		Link:       &link,
		Logger:     gameLog,
	})

	if flagReplayTUI {
		game, err := registry.Create(gameID)
		if err != nil {
			return err
		}
		_, err = tui.Run(game, nil, terminalConfig(), gameLog)
		return err
	}

	game := boring.New()
	if gameID == "drill_classic" {
		game = boring.NewClassic()
	}
	game.Reset(core.RuntimeConfig{ScreenW: flagReplayWidth, ScreenH: flagReplayHeight, TickRate: flagFPS})

	s := game.Session()
	ticks := 0
	for ; ticks < flagReplayMax && !s.PlaybackDone() && !s.State().Finished(); ticks++ {
		game.Step(core.NewInputFrame())
	}

	screen := core.NewScreen(flagReplayWidth, flagReplayHeight)
	game.Render(screen)
	fmt.Println(screen.String())
	fmt.Println()

	fmt.Printf("Result: %s after %d ticks\n", s.State(), ticks)
	fmt.Printf("Pipe: %d steps, %d joints, %d pulled back\n", len(s.Run()), s.PipeSegments(), s.PulledBackSteps())
	fmt.Printf("Stuck: %d  Starts: %d  Side tracks: %d\n", s.StuckCount(), s.StartCount(), s.SideTrackCount())
	if game.State().Won {
		fmt.Printf("Score: %d\n", game.State().Score)
	}
	if !s.State().Finished() {
		logger.Warn("replay ended before the attempt finished", "ticks", ticks, "done", s.PlaybackDone())
	}
	return nil
}

// replayLink resolves --link or --run.
func replayLink() (share.Link, error) {
	switch {
	case flagLink != "":
		return share.Parse(flagLink)
	case flagReplayRun > 0:
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return share.Link{}, err
		}
		defer store.Close()

		run, err := store.RunByID(flagReplayRun)
		if err != nil {
			return share.Link{}, err
		}
		if run == nil {
			return share.Link{}, fmt.Errorf("no run with id %d", flagReplayRun)
		}
		return runLink(*run), nil
	}
	return share.Link{}, errors.New("give a --link or a --run id")
}
