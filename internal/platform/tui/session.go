package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rolling-stone/internal/config"
	"github.com/vovakirdan/rolling-stone/internal/core"
	"github.com/vovakirdan/rolling-stone/internal/runner"
	"github.com/vovakirdan/rolling-stone/internal/sound"
	"github.com/vovakirdan/rolling-stone/internal/storage"
)

// SessionOptions configure a SessionModel.
type SessionOptions struct {
	Config    config.RunnerConfig
	Preset    config.DifficultyPreset
	Store     storage.Store
	Player    string
	Sound     sound.Player
	FixedSeed bool
	Logger    *log.Logger
}

type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenScores
)

// SessionModel manages the full flow: menu -> game -> scores -> menu.
// This is the top-level model for both local and SSH play.
type SessionModel struct {
	opts     SessionOptions
	config   core.RuntimeConfig
	logger   *log.Logger
	current  screenKind
	menu     MenuModel
	game     *GameModel
	scores   ScoreboardModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions, cfg core.RuntimeConfig) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Preset == "" {
		opts.Preset = config.DifficultyNormal
	}
	m := SessionModel{
		opts:   opts,
		config: cfg,
		logger: opts.Logger.With("component", "session", "player", opts.Player),
	}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	return NewMenuModel(m.config, m.opts.Preset, m.bestMeters())
}

func (m SessionModel) bestMeters() float64 {
	if m.opts.Store == nil {
		return 0
	}
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	best, err := m.opts.Store.BestDistance(ctx, m.opts.Player)
	if err != nil {
		m.logger.Warn("best distance", "err", err)
		return 0
	}
	return best * m.opts.Config.Game.MetersPerUnit
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.opts.Preset = m.menu.Preset()
		m.openScores()
		return m, nil

	case m.menu.WantsPlay():
		m.opts.Preset = m.menu.Preset()
		m.config = m.menu.Config()
		return m, m.startGame()
	}

	return m, cmd
}

// startGame builds a game for the chosen preset.
func (m *SessionModel) startGame() tea.Cmd {
	cfg := m.opts.Config
	config.ApplyPreset(&cfg, m.opts.Preset)

	game := runner.New(cfg, runner.Options{Sound: m.opts.Sound, Logger: m.opts.Logger})
	gm := NewGameModel(game, m.config, GameOptions{
		Store:      m.opts.Store,
		Player:     m.opts.Player,
		Difficulty: string(m.opts.Preset),
		FixedSeed:  m.opts.FixedSeed,
		Logger:     m.opts.Logger,
	})
	m.logger.Info("run started", "difficulty", m.opts.Preset, "seed", m.config.Seed)
	m.game = &gm
	m.current = screenGame
	return m.game.Init()
}

func (m *SessionModel) closeGame() {
	if m.game != nil {
		m.game.Game().Close()
		m.game = nil
	}
}

func (m *SessionModel) openScores() {
	m.scores = NewScoreboardModel(m.opts.Store, m.opts.Player, m.config.ScreenW, m.config.ScreenH).Embedded()
	m.current = screenScores
}

func (m *SessionModel) backToMenu() tea.Cmd {
	m.closeGame()
	m.menu = m.newMenu()
	m.current = screenMenu
	return m.menu.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	switch {
	case m.game.IsQuitting():
		m.closeGame()
		m.quitting = true
		return m, tea.Quit

	case m.game.BackToMenu():
		return m, m.backToMenu()

	case m.game.WantsScoreboard():
		m.closeGame()
		m.openScores()
		return m, nil
	}

	return m, cmd
}

// updateScores handles updates on the scoreboard.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = sb
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		return m, m.backToMenu()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// Run plays locally on the controlling terminal until the player quits.
func Run(opts SessionOptions, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(NewSessionModel(opts, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
