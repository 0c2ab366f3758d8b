// drill is a directional drilling game for the terminal: steer a pipe
// under a river to the goal, then share the attempt as a link.
//
// Usage:
//
//	drill play [scene]        - Play a level (full or classic)
//	drill menu                - Pick scenes and levels interactively
//	drill replay --link <url> - Replay a shared attempt headless or in the TUI
//	drill runs                - List recorded attempts
//	drill scores [game]       - Show high scores
//	drill link new|inspect    - Build or inspect share links
//	drill token encode|decode - Convert action sequences and tokens
//	drill serve               - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set the level seed
//	--db <path>         - Set database path (default: ~/.arcade/drill.db)
//	--config <path>     - Load a custom drill config YAML
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-drill/internal/games/boring"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

var (
	logger  = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "drill"})
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "drill",
	Short: "Directional Drill - steer a pipe under the river",
	Long: `Directional Drill is a terminal game about horizontal directional
drilling. Start the drill, flip the steering bias to curve the pipe up or
down, dodge boulders and bring the head up inside the goal on the far bank.

Every attempt is recorded and can be shared as a link that replays it.

Examples:
  drill play
  drill play classic --seed 42
  drill menu
  drill replay --link 'drill://play?seed=42&s4=BRYQ'
  drill serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Level seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/drill.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom drill config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(serveCmd)
}

func setupLogging(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		w = f
	}

	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "drill",
		Level:           level,
	})
	return nil
}

// gameLogger is the logger for full-screen commands. Stderr shares the
// terminal with the game, so logs are kept only with --log-file.
func gameLogger() *log.Logger {
	if flagLogFile == "" {
		return log.New(io.Discard)
	}
	return logger
}
