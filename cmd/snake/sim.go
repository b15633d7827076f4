package main

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arcade/internal/core"
	"github.com/vovakirdan/snake-arcade/internal/games/snake"
	"github.com/vovakirdan/snake-arcade/internal/ledger"
	"github.com/vovakirdan/snake-arcade/internal/session"
)

var (
	flagSimMode    string
	flagSimRuns    int
	flagSimDryRun  bool
	flagSimTimeout time.Duration
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless games with the autopilot",
	Long: `Plays games without a terminal UI: a greedy autopilot steers the snake
toward the food while real timers drive the ticks at the mode's speed.
Each finished run is logged and recorded in the high-score ledger unless
--dry-run is set.

Examples:
  snake sim --mode classic
  snake sim --mode zen --runs 3 --timeout 30s
  snake sim --mode time_attack --dry-run --seed 42`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimMode, "mode", "classic", "Mode to simulate")
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of runs")
	simCmd.Flags().BoolVar(&flagSimDryRun, "dry-run", false, "Do not record results")
	simCmd.Flags().DurationVar(&flagSimTimeout, "timeout", 5*time.Minute, "Abandon a run after this long")
}

func runSim(cmd *cobra.Command, args []string) error {
	mode, err := snake.ParseMode(flagSimMode)
	if err != nil {
		return err
	}
	if flagSimRuns < 1 {
		return errors.New("--runs must be at least 1")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr())

	var l *ledger.Ledger
	if flagSimDryRun {
		l = ledger.New(nil, ledger.WithKeep(cfg.Ledger.Keep), ledger.WithLogger(logger))
	} else {
		var closeStore func()
		l, closeStore = openLedger(cfg, logger)
		defer closeStore()
	}

	seed := runSeed()
	engine := snake.NewEngine(cfg, seed)
	pol := engine.Policy(mode)
	logger.Info("Simulating", "mode", mode, "runs", flagSimRuns, "seed", seed)

	best := 0
	for i := range flagSimRuns {
		res, ok := simulate(engine, l, mode, pol, logger)
		if !ok {
			logger.Warn("Run timed out, abandoned", "run", i+1, "timeout", flagSimTimeout)
			continue
		}
		best = max(best, res.Record.Score)
		fmt.Printf("run %d: %-10s score %-5d length %-4d food %-4d moves %-6d rank %d\n",
			i+1, res.Reason, res.Record.Score, res.Record.Length, res.Record.Food, res.Record.Moves, res.Rank)
	}

	logger.Info("Simulation finished", "mode", mode, "best", best)
	return nil
}

// simulate plays one run on real timers. The observer steers after every
// tick and reports the result once the machine reaches game over.
func simulate(engine *snake.Engine, l *ledger.Ledger, mode snake.Mode, pol snake.Policy, logger *log.Logger) (session.Result, bool) {
	done := make(chan session.Result, 1)
	var m *session.Machine

	// The observer also fires for the intents it sends itself, so steer
	// only once per tick. Stored as tick+1 so zero means none yet.
	var steered atomic.Uint64

	m = session.NewMachine(engine, l, session.NewTimerScheduler(),
		session.WithLogger(logger),
		session.WithObserver(func(s session.Snapshot) {
			switch s.Screen {
			case session.ScreenGameOver:
				select {
				case done <- s.Result:
				default:
				}
			case session.ScreenPlaying:
				if steered.Swap(s.World.Tick+1) != s.World.Tick+1 {
					m.Handle(steer(s.World, pol))
				}
			}
		}),
	)
	defer m.Close()

	if err := m.Start(mode); err != nil {
		logger.Error("Cannot start run", "mode", mode, "error", err)
		return session.Result{}, false
	}

	select {
	case res := <-done:
		return res, true
	case <-time.After(flagSimTimeout):
		return session.Result{}, false
	}
}

// steer asks the autopilot for a direction and converts it to an intent.
func steer(w snake.Snapshot, pol snake.Policy) core.Action {
	world := snake.World{
		Mode:      w.Mode,
		Size:      w.Size,
		Snake:     w.Snake,
		Dir:       w.Dir,
		Food:      w.Food,
		HasFood:   w.HasFood,
		Obstacles: make(map[snake.Point]bool, len(w.Obstacles)),
	}
	for _, p := range w.Obstacles {
		world.Obstacles[p] = true
	}

	switch snake.Steer(world, pol) {
	case snake.DirUp:
		return core.ActionUp
	case snake.DirDown:
		return core.ActionDown
	case snake.DirLeft:
		return core.ActionLeft
	default:
		return core.ActionRight
	}
}
