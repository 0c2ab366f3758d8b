package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-drill/internal/config"
	"github.com/vovakirdan/tui-drill/internal/core"
)

// levelCount is the number of boulder levels offered by the picker.
const levelCount = 10

// LevelSelection holds the user's choice from the level menu.
type LevelSelection struct {
	Preset config.DifficultyPreset
	Level  int // 0 = use the preset, 1-10 = boulder count
}

// LevelModel lets users choose a difficulty preset or an exact level.
type LevelModel struct {
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	keyMapper     *KeyMapper
	selection     LevelSelection
	choosing      bool
	quitting      bool
	back          bool
}

// NewLevelModel creates a new level selection model.
func NewLevelModel(width, height int) LevelModel {
	return LevelModel{
		width:       width,
		height:      height,
		keyMapper:   NewKeyMapper(),
		choosing:    true,
		levelCursor: 4,
	}
}

// Init initializes the model.
func (m LevelModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelectKey(action)
		}
		return m.handlePresetKey(action)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

// handlePresetKey moves over the presets and the trailing "Select Level..." entry.
func (m LevelModel) handlePresetKey(action MenuAction) (tea.Model, tea.Cmd) {
	presets := config.Presets()

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(presets) {
			m.cursor++
		}
	case MenuActionSelect:
		if m.cursor == len(presets) {
			m.inLevelSelect = true
			return m, nil
		}
		m.choosing = false
		m.selection = LevelSelection{Preset: presets[m.cursor]}
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m LevelModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < levelCount-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = LevelSelection{
			Preset: config.DifficultyFixed,
			Level:  m.levelCursor + 1, // 1-indexed
		}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the preset or level selection.
func (m LevelModel) View() string {
	if m.quitting || m.back {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewPresetSelect()
}

var presetNotes = map[config.DifficultyPreset]string{
	config.DifficultyEasy:   "few boulders, steady steering",
	config.DifficultyNormal: "more boulders, some drift",
	config.DifficultyHard:   "crowded ground, strong drift",
	config.DifficultyFixed:  "use the config file as is",
}

func (m LevelModel) viewPresetSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("D R I L L", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	presets := config.Presets()
	for i := 0; i <= len(presets); i++ {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := "Select Level..."
		if i < len(presets) {
			p := presets[i]
			line = fmt.Sprintf("%-7s %s", strings.ToUpper(string(p[:1]))+string(p[1:]), presetNotes[p])
		}
		b.WriteString(centerText(cursor+line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m LevelModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	for i := 0; i < levelCount; i++ {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}
		noun := "boulders"
		if i == 0 {
			noun = "boulder"
		}
		b.WriteString(centerText(fmt.Sprintf("%s%2d. %d %s", cursor, i+1, i+1, noun), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m LevelModel) Selected() *LevelSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m LevelModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector runs the level selection and returns the selection,
// or nil if the user backed out.
func RunLevelSelector(cfg core.RuntimeConfig) (*LevelSelection, error) {
	p := tea.NewProgram(
		NewLevelModel(cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(LevelModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}
	return m.Selected(), nil
}
