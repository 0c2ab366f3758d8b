package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-drill/internal/games/boring"
	"github.com/vovakirdan/tui-drill/internal/platform/tui"
	"github.com/vovakirdan/tui-drill/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick scenes and levels from a menu",
	Long: `Start in interactive menu mode.

Pick a scene, then a difficulty preset or an exact boulder level. Press
B or Esc while paused or after an attempt to return to the menu. Tab on
the main menu opens the scoreboard.

Examples:
  drill menu
  drill menu --fps 30
  drill menu --db ./drill.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}
	cfg := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		sel, err := tui.RunLevelSelector(cfg)
		if err != nil {
			return err
		}
		if sel == nil {
			continue // Back to the scene list
		}

		boring.Configure(boring.Settings{
			ConfigPath: flagConfig,
			Preset:     sel.Preset,
			Level:      sel.Level,
			Randomness: -1,
			Logger:     gameLogger(),
		})

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("create game", "id", menuResult.GameID, "err", err)
			continue
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		res, err := tui.Run(game, store, cfg, gameLogger())
		if err != nil {
			return err
		}
		if !res.BackToMenu {
			printAttempt(res)
			return nil
		}
	}
}
