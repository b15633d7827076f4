// Package session drives the screen flow around a snake run: menu,
// playing, paused and game over. It owns the tick timer, routes player
// intents to the engine and records finished runs in the ledger.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-arcade/internal/core"
	"github.com/vovakirdan/snake-arcade/internal/games/snake"
	"github.com/vovakirdan/snake-arcade/internal/ledger"
)

// Screen is the current application screen.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenPlaying
	ScreenPaused
	ScreenGameOver
)

func (s Screen) String() string {
	switch s {
	case ScreenMenu:
		return "menu"
	case ScreenPlaying:
		return "playing"
	case ScreenPaused:
		return "paused"
	case ScreenGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// ErrNotAvailable is returned by Start outside the menu and game-over screens.
var ErrNotAvailable = errors.New("session: cannot start a run from this screen")

// ReasonBoardFull is the game-over reason when no cell is left for food.
const ReasonBoardFull = "board full"

// Result summarizes a finished run.
type Result struct {
	Mode    snake.Mode
	Record  ledger.Record
	Reason  string
	Rank    int  // 1-based position in the high-score table, 0 if not ranked
	NewBest bool // Score matches or beats the best recorded score
}

// Snapshot is everything the rendering layer needs for one frame.
type Snapshot struct {
	Screen    Screen
	Mode      snake.Mode
	World     snake.Snapshot
	HasWorld  bool
	Result    Result
	HasResult bool
	Best      int // Best recorded score of the current mode
}

// Machine is the screen state machine. All methods are safe for concurrent
// use; ticks never overlap.
type Machine struct {
	mu       sync.Mutex
	engine   *snake.Engine
	ledger   *ledger.Ledger
	sched    Scheduler
	logger   *log.Logger
	observer func(Snapshot)

	screen   Screen
	mode     snake.Mode
	world    snake.World
	hasWorld bool
	result   Result
	hasRes   bool
	gen      uint64 // Bumped whenever pending ticks must be ignored
	pausedAt time.Time
}

// Option customizes a Machine.
type Option func(*Machine)

// WithLogger sets the machine's logger.
func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithObserver registers a callback invoked with a fresh snapshot after
// every state change. It runs outside the machine lock, on whichever
// goroutine caused the change.
func WithObserver(fn func(Snapshot)) Option {
	return func(m *Machine) {
		m.observer = fn
	}
}

// NewMachine creates a machine on the menu screen.
func NewMachine(engine *snake.Engine, l *ledger.Ledger, sched Scheduler, opts ...Option) *Machine {
	m := &Machine{
		engine: engine,
		ledger: l,
		sched:  sched,
		logger: log.Default(),
		screen: ScreenMenu,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Screen returns the current screen.
func (m *Machine) Screen() Screen {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.screen
}

// Start begins a run of the given mode. Allowed from the menu and from the
// game-over screen.
func (m *Machine) Start(mode snake.Mode) error {
	m.mu.Lock()
	if m.screen != ScreenMenu && m.screen != ScreenGameOver {
		m.mu.Unlock()
		return fmt.Errorf("%w (%s)", ErrNotAvailable, m.screen)
	}
	err := m.startLocked(mode)
	m.mu.Unlock()

	if err != nil {
		return err
	}
	m.notify()
	return nil
}

func (m *Machine) startLocked(mode snake.Mode) error {
	w, err := m.engine.NewWorld(mode)
	if err != nil {
		return fmt.Errorf("session: cannot start %s: %w", mode, err)
	}

	m.mode = mode
	m.world = w
	m.hasWorld = true
	m.result = Result{}
	m.hasRes = false
	m.screen = ScreenPlaying
	m.gen++
	m.scheduleLocked()

	m.logger.Debug("Run started", "mode", mode, "interval", w.Interval)
	return nil
}

// Handle applies a player intent. Intents that mean nothing on the current
// screen are ignored and reported as false.
func (m *Machine) Handle(a core.Action) bool {
	m.mu.Lock()
	handled := m.handleLocked(a)
	m.mu.Unlock()

	if handled {
		m.notify()
	}
	return handled
}

func (m *Machine) handleLocked(a core.Action) bool {
	switch m.screen {
	case ScreenPlaying:
		switch {
		case a.IsDirection():
			return m.world.Queue(toDirection(a))
		case a == core.ActionPause:
			m.pauseLocked()
			return true
		case a == core.ActionBack:
			m.toMenuLocked()
			return true
		}

	case ScreenPaused:
		switch a {
		case core.ActionPause:
			m.resumeLocked()
			return true
		case core.ActionBack:
			m.toMenuLocked()
			return true
		}

	case ScreenGameOver:
		switch a {
		case core.ActionRestart:
			if err := m.startLocked(m.mode); err != nil {
				m.logger.Error("Cannot restart", "mode", m.mode, "error", err)
				return false
			}
			return true
		case core.ActionBack:
			m.toMenuLocked()
			return true
		}
	}

	return false
}

func toDirection(a core.Action) snake.Direction {
	switch a {
	case core.ActionUp:
		return snake.DirUp
	case core.ActionDown:
		return snake.DirDown
	case core.ActionLeft:
		return snake.DirLeft
	default:
		return snake.DirRight
	}
}

func (m *Machine) pauseLocked() {
	m.screen = ScreenPaused
	m.gen++
	m.sched.Cancel()
	m.pausedAt = m.engine.Now()
}

// resumeLocked continues the run. Time spent paused is not charged to the
// Time Attack clock.
func (m *Machine) resumeLocked() {
	m.world.StartedAt = m.world.StartedAt.Add(m.engine.Now().Sub(m.pausedAt))
	m.screen = ScreenPlaying
	m.gen++
	m.scheduleLocked()
}

// toMenuLocked abandons any run without recording it.
func (m *Machine) toMenuLocked() {
	if m.screen == ScreenPlaying || m.screen == ScreenPaused {
		m.logger.Debug("Run abandoned", "mode", m.mode, "score", m.world.Score)
	}
	m.screen = ScreenMenu
	m.gen++
	m.sched.Cancel()
	m.hasWorld = false
	m.hasRes = false
}

func (m *Machine) scheduleLocked() {
	gen := m.gen
	m.sched.Schedule(m.world.Interval, func() {
		m.tick(gen)
	})
}

// tick advances the run by one step. Fires from an older generation are
// dropped.
func (m *Machine) tick(gen uint64) {
	m.mu.Lock()
	if gen != m.gen || m.screen != ScreenPlaying {
		m.mu.Unlock()
		return
	}

	next, out, err := m.engine.Step(m.world)
	m.world = next

	switch {
	case err != nil:
		m.logger.Warn("Cannot place food", "mode", m.mode, "error", err)
		m.finishLocked(ReasonBoardFull)
	case out.Terminal():
		m.finishLocked(out.Reason())
	default:
		if out.HasCollected {
			m.logger.Debug("Powerup collected", "kind", out.Collected, "tick", next.Tick)
		}
		m.scheduleLocked()
	}
	m.mu.Unlock()

	m.notify()
}

// finishLocked ends the run and records it.
func (m *Machine) finishLocked(reason string) {
	m.screen = ScreenGameOver
	m.gen++
	m.sched.Cancel()

	w := m.world
	rec := ledger.NewRecord(w.Score, len(w.Snake), w.FoodEaten, w.Moves, m.engine.Now())
	res := Result{
		Mode:   m.mode,
		Record: rec,
		Reason: reason,
	}

	if m.ledger != nil {
		rank, err := m.ledger.Record(m.mode.String(), rec)
		if err != nil {
			m.logger.Error("Cannot save high score", "mode", m.mode, "error", err)
		}
		res.Rank = rank
		if best, ok := m.ledger.Best(m.mode.String()); ok {
			res.NewBest = rec.Score > 0 && rec.Score >= best.Score
		}
	}

	m.result = res
	m.hasRes = true

	m.logger.Info("Game over",
		"mode", m.mode,
		"reason", reason,
		"score", rec.Score,
		"length", rec.Length,
		"moves", rec.Moves,
		"rank", res.Rank,
	)
}

// Close stops the pending tick. The machine returns to the menu.
func (m *Machine) Close() {
	m.mu.Lock()
	m.toMenuLocked()
	m.mu.Unlock()
}

// Snapshot returns the current frame.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Machine) snapshotLocked() Snapshot {
	snap := Snapshot{
		Screen:    m.screen,
		Mode:      m.mode,
		HasWorld:  m.hasWorld,
		Result:    m.result,
		HasResult: m.hasRes,
	}
	if m.hasWorld {
		snap.World = m.world.Snapshot()
	}
	if m.ledger != nil {
		if best, ok := m.ledger.Best(m.mode.String()); ok {
			snap.Best = best.Score
		}
	}
	return snap
}

func (m *Machine) notify() {
	if m.observer == nil {
		return
	}
	m.observer(m.Snapshot())
}
