package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-arcade/internal/core"
	"github.com/vovakirdan/snake-arcade/internal/games/snake"
	"github.com/vovakirdan/snake-arcade/internal/platform/tui"
	"github.com/vovakirdan/snake-arcade/internal/session"
)

var flagPlayMode string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake",
	Long: `Start the game. Without --mode the mode menu opens first.

Controls:
  Arrows/WASD  - Steer
  Space/P      - Pause / resume
  Esc          - Back to menu
  R            - Play again (after game over)
  Tab          - High scores
  Q/Ctrl+C     - Quit

Modes:
  classic, speed, obstacles, time_attack, zen

Examples:
  snake play
  snake play --mode speed --difficulty hard
  snake play --mode zen --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayMode, "mode", "", "Start this mode right away")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs go to a file
	logPath, logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := newLogger(logFile)

	rc := core.DefaultConfig()
	rc.Seed = runSeed()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}

	l, closeStore := openLedger(cfg, logger)
	defer closeStore()

	engine := snake.NewEngine(cfg, rc.Seed)
	sched := session.NewManualScheduler()
	machine := session.NewMachine(engine, l, sched, session.WithLogger(logger))

	if flagPlayMode != "" {
		mode, err := snake.ParseMode(flagPlayMode)
		if err != nil {
			return err
		}
		if err := machine.Start(mode); err != nil {
			return err
		}
	}

	logger.Info("Starting", "seed", rc.Seed, "db", flagDBPath, "log", logPath)
	if err := tui.Run(machine, sched, l, rc, logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// openLogFile opens ~/.snake/snake.log for appending.
func openLogFile() (string, *os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil, fmt.Errorf("cannot find home directory: %w", err)
	}
	dir := filepath.Join(home, ".snake")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	path := filepath.Join(dir, "snake.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return "", nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return path, f, nil
}
