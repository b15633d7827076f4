package session

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-arcade/internal/config"
	"github.com/vovakirdan/snake-arcade/internal/core"
	"github.com/vovakirdan/snake-arcade/internal/games/snake"
	"github.com/vovakirdan/snake-arcade/internal/ledger"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type harness struct {
	m      *Machine
	sched  *ManualScheduler
	clock  *fakeClock
	ledger *ledger.Ledger
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg := config.DefaultSnakeConfig()
	cfg.Powerups.SpawnChance = 0
	cfg.Powerups.DecayChance = 0

	clock := &fakeClock{t: time.Date(2026, 5, 6, 7, 8, 0, 0, time.UTC)}
	engine := snake.NewEngine(cfg, 1, snake.WithClock(clock.Now))
	l := ledger.New(nil)
	sched := NewManualScheduler()
	logger := log.New(io.Discard)

	return &harness{
		m:      NewMachine(engine, l, sched, WithLogger(logger)),
		sched:  sched,
		clock:  clock,
		ledger: l,
	}
}

// fire advances the clock by the pending interval and runs the tick.
func (h *harness) fire(t *testing.T) {
	t.Helper()
	after, ok := h.sched.Pending()
	if !ok {
		t.Fatal("no tick pending")
	}
	h.clock.Advance(after)
	h.sched.Fire()
}

func TestStartsOnMenu(t *testing.T) {
	h := newHarness(t)
	snap := h.m.Snapshot()
	if snap.Screen != ScreenMenu || snap.HasWorld {
		t.Errorf("initial snapshot = %+v", snap)
	}
	if _, ok := h.sched.Pending(); ok {
		t.Error("no tick should be pending on the menu")
	}
}

func TestStartSchedulesTick(t *testing.T) {
	h := newHarness(t)
	if err := h.m.Start(snake.ModeSpeed); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if h.m.Screen() != ScreenPlaying {
		t.Errorf("screen = %v, expected playing", h.m.Screen())
	}
	after, ok := h.sched.Pending()
	if !ok || after != 150*time.Millisecond {
		t.Errorf("pending tick = %v/%v, expected 150ms", after, ok)
	}

	h.fire(t)
	snap := h.m.Snapshot()
	if snap.World.Tick != 1 || snap.World.Moves != 1 {
		t.Errorf("tick/moves = %d/%d after one fire", snap.World.Tick, snap.World.Moves)
	}
	if _, ok := h.sched.Pending(); !ok {
		t.Error("next tick should be scheduled")
	}
}

func TestStartRejectedWhilePlaying(t *testing.T) {
	h := newHarness(t)
	h.m.Start(snake.ModeClassic)

	if err := h.m.Start(snake.ModeZen); err == nil {
		t.Error("Start() should fail while playing")
	}
	if h.m.Snapshot().Mode != snake.ModeClassic {
		t.Error("mode changed by rejected Start()")
	}
}

func TestIntentFiltering(t *testing.T) {
	tests := []struct {
		name    string
		screen  Screen
		action  core.Action
		handled bool
		after   Screen
	}{
		{"menu ignores direction", ScreenMenu, core.ActionUp, false, ScreenMenu},
		{"menu ignores pause", ScreenMenu, core.ActionPause, false, ScreenMenu},
		{"menu ignores restart", ScreenMenu, core.ActionRestart, false, ScreenMenu},
		{"playing takes direction", ScreenPlaying, core.ActionUp, true, ScreenPlaying},
		{"playing ignores restart", ScreenPlaying, core.ActionRestart, false, ScreenPlaying},
		{"playing pauses", ScreenPlaying, core.ActionPause, true, ScreenPaused},
		{"playing back to menu", ScreenPlaying, core.ActionBack, true, ScreenMenu},
		{"paused ignores direction", ScreenPaused, core.ActionUp, false, ScreenPaused},
		{"paused resumes", ScreenPaused, core.ActionPause, true, ScreenPlaying},
		{"paused back to menu", ScreenPaused, core.ActionBack, true, ScreenMenu},
		{"game over ignores direction", ScreenGameOver, core.ActionDown, false, ScreenGameOver},
		{"game over ignores pause", ScreenGameOver, core.ActionPause, false, ScreenGameOver},
		{"game over restarts", ScreenGameOver, core.ActionRestart, true, ScreenPlaying},
		{"game over back to menu", ScreenGameOver, core.ActionBack, true, ScreenMenu},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.reach(t, tt.screen)

			if got := h.m.Handle(tt.action); got != tt.handled {
				t.Errorf("Handle(%v) = %v, expected %v", tt.action, got, tt.handled)
			}
			if s := h.m.Screen(); s != tt.after {
				t.Errorf("screen = %v, expected %v", s, tt.after)
			}
		})
	}
}

// reach drives the machine to the given screen.
func (h *harness) reach(t *testing.T, s Screen) {
	t.Helper()
	switch s {
	case ScreenMenu:
		return
	case ScreenPlaying:
		h.m.Start(snake.ModeClassic)
	case ScreenPaused:
		h.m.Start(snake.ModeClassic)
		h.m.Handle(core.ActionPause)
	case ScreenGameOver:
		h.crash(t)
	}
	if got := h.m.Screen(); got != s {
		t.Fatalf("could not reach %v, at %v", s, got)
	}
}

// crash starts a Classic run and drives it into the right wall.
func (h *harness) crash(t *testing.T) {
	t.Helper()
	h.m.Start(snake.ModeClassic)
	for range 20 {
		if h.m.Screen() != ScreenPlaying {
			return
		}
		h.fire(t)
	}
}

func TestReversalIgnored(t *testing.T) {
	h := newHarness(t)
	h.m.Start(snake.ModeClassic)

	if h.m.Handle(core.ActionLeft) {
		t.Error("reversal should not be accepted")
	}
}

// Wall collision ends the run and records it.
func TestGameOverRecords(t *testing.T) {
	h := newHarness(t)
	h.crash(t)

	snap := h.m.Snapshot()
	if snap.Screen != ScreenGameOver || !snap.HasResult {
		t.Fatalf("expected game over, got %+v", snap.Screen)
	}
	if snap.Result.Reason != "hit wall" {
		t.Errorf("reason = %q", snap.Result.Reason)
	}
	if snap.Result.Mode != snake.ModeClassic {
		t.Errorf("mode = %v", snap.Result.Mode)
	}
	if snap.Result.Rank != 1 {
		t.Errorf("rank = %d, expected 1", snap.Result.Rank)
	}
	if _, ok := h.sched.Pending(); ok {
		t.Error("no tick should be pending after game over")
	}

	top := h.ledger.Top("Classic", 0)
	if len(top) != 1 || top[0].Score != snap.Result.Record.Score {
		t.Errorf("ledger = %+v", top)
	}
	if top[0].Date != "2026-05-06 07:08" {
		t.Errorf("date = %q", top[0].Date)
	}
	if snap.World.Length != top[0].Length || snap.World.Moves != top[0].Moves {
		t.Errorf("record %+v does not match world", top[0])
	}
}

func TestNewBestFlag(t *testing.T) {
	h := newHarness(t)
	h.ledger.Record("Classic", ledger.Record{Score: 1000})
	h.crash(t)

	if h.m.Snapshot().Result.NewBest {
		t.Error("a run below the best should not be flagged")
	}

	h2 := newHarness(t)
	h2.m.Start(snake.ModeClassic)
	h2.m.world.Score = 40 // Pretend the run went well
	h2.m.mu.Lock()
	h2.m.finishLocked("hit wall")
	h2.m.mu.Unlock()

	res := h2.m.Snapshot().Result
	if !res.NewBest || res.Rank != 1 {
		t.Errorf("result = %+v, expected new best", res)
	}
}

func TestAbandonDoesNotRecord(t *testing.T) {
	h := newHarness(t)
	h.m.Start(snake.ModeZen)
	h.fire(t)
	h.m.Handle(core.ActionBack)

	if len(h.ledger.Modes()) != 0 {
		t.Error("abandoned run should not be recorded")
	}
	if _, ok := h.sched.Pending(); ok {
		t.Error("tick should be cancelled on return to menu")
	}
	if h.m.Snapshot().HasWorld {
		t.Error("menu should not carry a world")
	}
}

func TestPauseCancelsAndResumeReschedules(t *testing.T) {
	h := newHarness(t)
	h.m.Start(snake.ModeClassic)
	h.fire(t)

	h.m.Handle(core.ActionPause)
	if _, ok := h.sched.Pending(); ok {
		t.Fatal("pause should cancel the pending tick")
	}
	before := h.m.Snapshot().World.Tick

	h.m.Handle(core.ActionPause)
	after, ok := h.sched.Pending()
	if !ok || after != 100*time.Millisecond {
		t.Errorf("resume scheduled %v/%v", after, ok)
	}
	if h.m.Snapshot().World.Tick != before {
		t.Error("pause/resume should not step the world")
	}
}

func TestResumeUsesCurrentInterval(t *testing.T) {
	h := newHarness(t)
	h.m.Start(snake.ModeClassic)

	h.m.mu.Lock()
	h.m.world.Interval = 50 * time.Millisecond // A SpeedBoost in effect
	h.m.mu.Unlock()

	h.m.Handle(core.ActionPause)
	h.m.Handle(core.ActionPause)

	if after, _ := h.sched.Pending(); after != 50*time.Millisecond {
		t.Errorf("resume scheduled %v, expected 50ms", after)
	}
}

func TestStaleTickIgnored(t *testing.T) {
	h := newHarness(t)
	h.m.Start(snake.ModeClassic)

	stale, ok := h.sched.Take()
	if !ok {
		t.Fatal("no tick pending")
	}

	// Pause and resume bump the generation; the old fire must do nothing
	h.m.Handle(core.ActionPause)
	h.m.Handle(core.ActionPause)
	stale()

	if tick := h.m.Snapshot().World.Tick; tick != 0 {
		t.Errorf("stale fire advanced the world to tick %d", tick)
	}

	h.fire(t)
	if tick := h.m.Snapshot().World.Tick; tick != 1 {
		t.Errorf("tick = %d, expected 1", tick)
	}
}

func TestStaleTickAfterMenuIgnored(t *testing.T) {
	h := newHarness(t)
	h.m.Start(snake.ModeClassic)
	stale, _ := h.sched.Take()

	h.m.Handle(core.ActionBack)
	h.m.Start(snake.ModeClassic)
	stale()

	if tick := h.m.Snapshot().World.Tick; tick != 0 {
		t.Errorf("stale fire from the previous run advanced tick to %d", tick)
	}
}

func TestTimeAttackExcludesPausedTime(t *testing.T) {
	h := newHarness(t)
	h.m.Start(snake.ModeTimeAttack)

	h.m.Handle(core.ActionPause)
	h.clock.Advance(10 * time.Minute)
	h.m.Handle(core.ActionPause)

	h.fire(t)
	snap := h.m.Snapshot()
	if snap.Screen != ScreenPlaying {
		t.Fatalf("run ended after resume: %+v", snap.Result)
	}
	if left := snap.World.TimeLeft; left != 120*time.Second-100*time.Millisecond {
		t.Errorf("TimeLeft = %v", left)
	}
}

// The clock running out ends a Time Attack run.
func TestTimeAttackEnds(t *testing.T) {
	h := newHarness(t)
	h.m.Start(snake.ModeTimeAttack)

	h.fire(t)
	h.clock.Advance(2 * time.Minute)
	h.fire(t)

	snap := h.m.Snapshot()
	if snap.Screen != ScreenGameOver || snap.Result.Reason != "time up" {
		t.Errorf("expected time up, got %v %q", snap.Screen, snap.Result.Reason)
	}
}

func TestObserverNotified(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	engine := snake.NewEngine(cfg, 3)
	sched := NewManualScheduler()

	var screens []Screen
	m := NewMachine(engine, nil, sched,
		WithLogger(log.New(io.Discard)),
		WithObserver(func(s Snapshot) { screens = append(screens, s.Screen) }),
	)

	m.Start(snake.ModeClassic)
	sched.Fire()
	m.Handle(core.ActionPause)

	expected := []Screen{ScreenPlaying, ScreenPlaying, ScreenPaused}
	if len(screens) != len(expected) {
		t.Fatalf("observer saw %v", screens)
	}
	for i := range expected {
		if screens[i] != expected[i] {
			t.Errorf("screens[%d] = %v, expected %v", i, screens[i], expected[i])
		}
	}
}

func TestTimerSchedulerRunsToGameOver(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Modes.Classic.IntervalMS = 1
	engine := snake.NewEngine(cfg, 4)
	l := ledger.New(nil)

	done := make(chan Result, 1)
	m := NewMachine(engine, l, NewTimerScheduler(),
		WithLogger(log.New(io.Discard)),
		WithObserver(func(s Snapshot) {
			if s.Screen == ScreenGameOver && s.HasResult {
				select {
				case done <- s.Result:
				default:
				}
			}
		}),
	)
	defer m.Close()

	if err := m.Start(snake.ModeClassic); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	select {
	case res := <-done:
		if res.Reason != "hit wall" {
			t.Errorf("reason = %q, expected hit wall", res.Reason)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not end")
	}

	if len(l.Top("Classic", 0)) != 1 {
		t.Error("run was not recorded")
	}
}
