package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/rolling-stone/internal/config"
	"github.com/vovakirdan/rolling-stone/internal/core"
)

// MenuEntry is a start menu line.
type MenuEntry int

const (
	EntryPlay MenuEntry = iota
	EntryDifficulty
	EntryScores
	EntryQuit
)

var menuEntries = []MenuEntry{EntryPlay, EntryDifficulty, EntryScores, EntryQuit}

// presetCycle is the order left/right steps through on the difficulty line.
var presetCycle = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	pickStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
)

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	cursor         int
	preset         int
	best           float64
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	play           bool
	openScoreboard bool
}

// NewMenuModel creates a start menu. best is the player's longest run in
// meters, shown under the title when positive.
func NewMenuModel(cfg core.RuntimeConfig, preset config.DifficultyPreset, best float64) MenuModel {
	m := MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		best:      best,
		keyMapper: NewKeyMapper(),
		preset:    1,
	}
	for i, p := range presetCycle {
		if p == preset {
			m.preset = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuEntries)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if menuEntries[m.cursor] == EntryDifficulty {
			m.preset = (m.preset + len(presetCycle) - 1) % len(presetCycle)
		}

	case MenuActionRight:
		if menuEntries[m.cursor] == EntryDifficulty {
			m.preset = (m.preset + 1) % len(presetCycle)
		}

	case MenuActionSelect:
		switch menuEntries[m.cursor] {
		case EntryPlay:
			m.play = true
			return m, tea.Quit
		case EntryDifficulty:
			m.preset = (m.preset + 1) % len(presetCycle)
		case EntryScores:
			m.openScoreboard = true
			return m, tea.Quit
		case EntryQuit:
			m.quitting = true
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

func (m MenuModel) label(e MenuEntry) string {
	switch e {
	case EntryPlay:
		return "Play"
	case EntryDifficulty:
		return fmt.Sprintf("Difficulty: < %s >", m.Preset())
	case EntryScores:
		return "Scores"
	default:
		return "Quit"
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  R O L L I N G   S T O N E  "), m.width))
	b.WriteString("\n\n")

	subtitle := "Keep the stone on the track"
	if m.best > 0 {
		subtitle = fmt.Sprintf("Best run: %.0f m", m.best)
	}
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	for i, e := range menuEntries {
		line := "  " + m.label(e)
		if i == m.cursor {
			line = pickStyle.Render("> " + m.label(e))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Difficulty  |  Enter: Select  |  Q: Quit"
	b.WriteString(helpStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// Preset returns the chosen difficulty preset.
func (m MenuModel) Preset() config.DifficultyPreset {
	return presetCycle[m.preset]
}

// WantsPlay returns true once Play was selected.
func (m MenuModel) WantsPlay() bool {
	return m.play
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}
