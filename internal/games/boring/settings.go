package boring

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-drill/internal/config"
	"github.com/vovakirdan/tui-drill/internal/share"
)

// Settings are chosen by the CLI or a menu before a game is created.
// Zero override values keep the loaded config.
type Settings struct {
	ConfigPath   string
	Preset       config.DifficultyPreset
	Level        int // boulders, 1..10
	Randomness   int // negative keeps the config value
	SpeedDivider int
	Link         *share.Link // replays or replicates a shared level
	Logger       *log.Logger
}

var (
	settingsMu sync.RWMutex
	settings   = Settings{Randomness: -1}
)

// Configure replaces the settings used by games created afterwards.
func Configure(s Settings) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = s
}

// SetLevel sets the number of boulders (1-10). 0 keeps the config value.
func SetLevel(level int) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings.Level = level
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings.Preset = preset
}

// SetLink makes new games play the given shared level.
func SetLink(link *share.Link) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings.Link = link
}

// CurrentSettings returns a copy of the active settings.
func CurrentSettings() Settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

var discardLogger = log.New(io.Discard)

func (s Settings) logger() *log.Logger {
	if s.Logger == nil {
		return discardLogger
	}
	return s.Logger
}
