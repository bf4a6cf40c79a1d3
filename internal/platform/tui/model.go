package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rolling-stone/internal/core"
	"github.com/vovakirdan/rolling-stone/internal/runner"
	"github.com/vovakirdan/rolling-stone/internal/storage"
)

// saveTimeout bounds the best-effort run save on game over.
const saveTimeout = 3 * time.Second

// GameOptions wire a GameModel.
type GameOptions struct {
	Store      storage.Store // nil disables saving
	Player     string
	Difficulty string
	FixedSeed  bool // keep the configured seed on restart
	Logger     *log.Logger
}

// GameModel runs one runner.Game in real time.
type GameModel struct {
	game       *runner.Game
	opts       GameOptions
	screen     *core.Screen
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	resetErr   error
	scoreSaved bool
	quitting   bool
	backToMenu bool
	wantScores bool
}

// NewGameModel creates a game model and starts the first run.
func NewGameModel(game *runner.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := GameModel{
		game:       game,
		opts:       opts,
		screen:     core.NewScreen(cfg.ScreenW, gameRows(cfg.ScreenH)),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		logger:     logger.With("component", "tui"),
		inputFrame: core.NewInputFrame(),
	}
	m.help.Width = cfg.ScreenW
	m.reset()
	return m
}

// gameRows leaves the last terminal row for the help line.
func gameRows(h int) int {
	if h > 1 {
		return h - 1
	}
	return h
}

func (m *GameModel) reset() {
	m.resetErr = m.game.Reset(m.config)
	if m.resetErr != nil {
		m.logger.Error("game reset", "err", m.resetErr)
	}
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.lastTick = time.Time{}
	m.inputFrame.Clear()
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, gameRows(msg.Height))
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Scores) && m.gameState.GameOver:
		m.wantScores = true
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action == core.ActionBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, nil
	}
	if action == core.ActionRestart && !m.gameState.GameOver {
		return m, nil
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick runs one frame with the real time since the previous tick.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		if !m.opts.FixedSeed {
			m.config.Seed = time.Now().UnixNano()
		}
		m.reset()
		return m, tickCmd(m.config.TickRate)
	}

	dt := frameDelta(m.lastTick, now, m.config.TickRate)
	m.lastTick = now

	result := m.game.Frame(m.inputFrame, dt)
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveRun()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m *GameModel) saveRun() {
	if m.opts.Store == nil || m.gameState.Score <= 0 {
		return
	}
	res := m.game.Result()
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	_, err := m.opts.Store.SaveRun(ctx, storage.Run{
		ID:         res.RunID,
		Player:     m.opts.Player,
		Score:      res.Score,
		Distance:   res.Distance,
		Duration:   res.Duration,
		Reason:     res.Reason,
		Seed:       res.Seed,
		Difficulty: m.opts.Difficulty,
		Completed:  res.Completed,
	})
	if err != nil {
		// Best-effort save, game continues regardless
		m.logger.Warn("run not saved", "run", res.RunID, "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".rollingstone", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the game and a help line.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	status := m.help.View(m.keyMapper.Keys())
	if m.resetErr != nil {
		status = "config problem, see log"
	} else if m.gameState.GameOver {
		status = "r restart • tab scores • esc menu • q quit"
	}
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(status)
}

// State returns the last game state.
func (m GameModel) State() core.GameState { return m.gameState }

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool { return m.backToMenu }

// WantsScoreboard returns true after tab on the game over screen.
func (m GameModel) WantsScoreboard() bool { return m.wantScores }

// Game returns the running game.
func (m GameModel) Game() *runner.Game { return m.game }
