// snake is the terminal edition of Snake Ultimate: five game modes,
// powerups and per-mode high-score tables.
//
// Usage:
//
//	snake play [--mode m]    - Play (opens the mode menu unless --mode is given)
//	snake modes              - List game modes and their rules
//	snake scores [mode]      - Show high scores
//	snake sim --mode m       - Run headless autopilot games
//	snake import <file>      - Merge a JSON high-score file into the ledger
//
// Global flags:
//
//	--db <path>          - Score storage; a .json path uses the JSON file layout (default: ~/.snake/scores.db)
//	--config <path>      - Custom game config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--seed <value>       - RNG seed for reproducible gameplay
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arcade/internal/config"
	"github.com/vovakirdan/snake-arcade/internal/ledger"
	"github.com/vovakirdan/snake-arcade/internal/storage"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake Ultimate - five ways to play snake in your terminal",
	Long: `Snake Ultimate is a terminal snake game with five modes, powerups
and persistent high scores.

Available commands:
  play     - Play interactively
  modes    - Show all game modes
  scores   - View high scores
  sim      - Run headless games with the autopilot
  import   - Merge an existing JSON score file

Examples:
  snake play
  snake play --mode zen
  snake scores "Time Attack"
  snake sim --mode obstacles --runs 5`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/scores.db", "Path to scores database (.json for a plain file)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(importCmd)
}

// newLogger builds the structured logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "snake",
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("Unknown log level, using info", "level", flagLogLevel)
	}
	return logger
}

// loadConfig reads the game config and applies the difficulty preset.
func loadConfig() (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplySnakePreset(&cfg, preset)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config after %s preset: %w", preset, err)
	}
	return cfg, nil
}

// openLedger opens score storage and loads the ledger from it.
// Without storage the ledger still works, in memory only.
func openLedger(cfg config.SnakeConfig, logger *log.Logger) (*ledger.Ledger, func()) {
	backend, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("Could not open scores storage, scores will not be saved", "path", flagDBPath, "error", err)
		return ledger.New(nil, ledger.WithKeep(cfg.Ledger.Keep), ledger.WithLogger(logger)), func() {}
	}

	l := ledger.New(backend, ledger.WithKeep(cfg.Ledger.Keep), ledger.WithLogger(logger))
	return l, func() {
		if err := backend.Close(); err != nil {
			logger.Warn("Could not close scores storage", "error", err)
		}
	}
}

// runSeed returns the --seed flag or a time-based seed.
func runSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
