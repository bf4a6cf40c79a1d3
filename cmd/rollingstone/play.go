package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/rolling-stone/internal/core"
	"github.com/vovakirdan/rolling-stone/internal/platform/tui"
	"github.com/vovakirdan/rolling-stone/internal/sound/audio"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the menu and play in this terminal.

Controls:
  Left/Right, A/D   - Steer
  Space/Up          - Jump
  P                 - Pause
  R                 - Restart (after game over)
  Tab               - Scores (after game over)
  Esc               - Menu (paused or after game over)
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  rollingstone play
  rollingstone play --difficulty easy
  rollingstone play --seed 42
  rollingstone play --config ./my-track.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name recorded with your runs (default: $USER)")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, preset, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var logOut io.Writer = io.Discard
	if logFile, logErr := openLogFile(); logErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", logErr)
	} else {
		defer logFile.Close()
		logOut = logFile
	}
	logger := newLogger(logOut)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed(),
	}

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	player, closeSound := audio.New(cfg.Sound.Enabled, cfg.Sound.SampleRate, cfg.Sound.Volume, logger)

	name := flagPlayer
	if name == "" {
		name = os.Getenv("USER")
	}

	runErr := tui.Run(tui.SessionOptions{
		Config:    cfg,
		Preset:    preset,
		Store:     store,
		Player:    name,
		Sound:     player,
		FixedSeed: flagSeed != 0,
		Logger:    logger,
	}, runtime)

	closeSound()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
