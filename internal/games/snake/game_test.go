package snake

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/warpsnake/internal/config"
	"github.com/vovakirdan/warpsnake/internal/core"
	"github.com/vovakirdan/warpsnake/internal/games/snake/sim"
	"github.com/vovakirdan/warpsnake/internal/registry"
)

const frame = 50 * time.Millisecond

type memStore struct {
	best    map[string]int
	writes  int
	failGet bool
	failSet bool
}

func (m *memStore) BestScore(id string) (int, error) {
	if m.failGet {
		return 0, errors.New("disk on fire")
	}
	return m.best[id], nil
}

func (m *memStore) SetBestScore(id string, score int) error {
	m.writes++
	if m.failSet {
		return errors.New("disk on fire")
	}
	if m.best == nil {
		m.best = make(map[string]int)
	}
	m.best[id] = max(m.best[id], score)
	return nil
}

func newTestGame(t *testing.T, id string, mutate func(*config.SnakeConfig)) *Game {
	t.Helper()
	v, ok := LookupVariant(id)
	if !ok {
		t.Fatalf("unknown variant %q", id)
	}
	cfg := config.DefaultSnakeConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	g := New(v, cfg)
	g.SetLogger(log.New(io.Discard))
	g.Reset(core.RuntimeConfig{Seed: 12345})
	return g
}

func input(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// runUntil steps empty frames until cond holds or the budget runs out.
func runUntil(g *Game, budget int, cond func() bool) bool {
	for range budget {
		if cond() {
			return true
		}
		g.Step(input(), frame)
	}
	return cond()
}

func TestVariantsRegistered(t *testing.T) {
	for _, v := range Variants {
		if !registry.Exists(v.ID) {
			t.Errorf("Variant %q not registered", v.ID)
		}
		g, err := registry.Create(v.ID)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", v.ID, err)
		}
		if g.Title() != v.Title {
			t.Errorf("Title() = %q, expected %q", g.Title(), v.Title)
		}
	}
}

func TestHeadlessResetUsesConfiguredGrid(t *testing.T) {
	g := newTestGame(t, "timewarp", nil)
	snap := g.Snapshot()

	if snap.Width != 40 || snap.Height != 40 {
		t.Errorf("Grid = %dx%d, expected 40x40", snap.Width, snap.Height)
	}
	if len(snap.Snake) != 4 || snap.Snake[0] != (sim.Cell{X: 20, Y: 20}) {
		t.Errorf("Initial snake = %v", snap.Snake)
	}
	if snap.Phase != sim.NotStarted {
		t.Errorf("Phase = %v, expected not_started", snap.Phase)
	}
	if snap.HistoryCap != 160 {
		t.Errorf("HistoryCap = %d, expected 160", snap.HistoryCap)
	}
}

func TestFirstInputMovesOnNextFrame(t *testing.T) {
	g := newTestGame(t, "timewarp", nil)

	res := g.Step(input(core.ActionUp), time.Millisecond)
	if res.Ticks != 1 {
		t.Fatalf("First input should fire a tick immediately, got %d", res.Ticks)
	}
	if head := g.Snapshot().Snake[0]; head != (sim.Cell{X: 20, Y: 19}) {
		t.Errorf("Head = %v, expected (20,19)", head)
	}
}

func TestNoTicksBeforeStart(t *testing.T) {
	g := newTestGame(t, "classic", nil)
	for range 10 {
		if res := g.Step(input(), time.Second); res.Ticks != 0 {
			t.Fatalf("Unstarted game ran %d ticks", res.Ticks)
		}
	}
}

func TestCrashEndsOnceAndRewindRecovers(t *testing.T) {
	g := newTestGame(t, "timewarp", nil)
	g.Step(input(core.ActionUp), frame)

	ended := 0
	for range 40 {
		if g.Step(input(), frame).Ended {
			ended++
		}
	}
	if !g.State().GameOver || g.Phase() != sim.Crashed {
		t.Fatalf("Expected a wall crash, phase %v", g.Phase())
	}
	if ended != 1 {
		t.Errorf("Ended reported %d times, expected once", ended)
	}

	res := g.Step(input(core.ActionRewind), frame)
	if !res.State.Rewinding {
		t.Fatal("Rewind key should start rewinding")
	}
	if g.Phase() != sim.Running || res.State.GameOver {
		t.Errorf("Rewind should recover from the crash, phase %v", g.Phase())
	}
}

func TestKeyboardHoldLeaseExpires(t *testing.T) {
	g := newTestGame(t, "timewarp", nil)
	g.Step(input(core.ActionUp), frame)
	runUntil(g, 5, func() bool { return false })

	g.Step(input(core.ActionRewind), frame)
	if !g.Rewinding() {
		t.Fatal("Expected rewinding after key press")
	}
	// Auto-repeat renews the lease.
	for range 20 {
		g.Step(input(core.ActionRewind), 30*time.Millisecond)
	}
	if !g.Rewinding() {
		t.Error("Repeated presses should keep rewind held")
	}

	g.Step(input(), 600*time.Millisecond)
	if g.Rewinding() {
		t.Error("Rewind should release once the lease runs out")
	}
}

func TestToggleMode(t *testing.T) {
	g := newTestGame(t, "timewarp", func(c *config.SnakeConfig) { c.Rewind.Mode = "toggle" })
	g.Step(input(core.ActionUp), frame)

	g.Step(input(core.ActionRewind), frame)
	if g.lease != 0 {
		t.Errorf("Toggle mode should not arm a hold lease, got %v", g.lease)
	}
	g.Step(input(), 2*time.Second)
	if !g.Rewinding() {
		t.Fatal("Toggle mode should stay rewinding without repeats")
	}
	g.Step(input(core.ActionRewind), frame)
	if g.Rewinding() {
		t.Error("Second press should stop rewinding")
	}

	g.ToggleRewind()
	if !g.Rewinding() {
		t.Error("ToggleRewind() should start rewinding")
	}
}

func TestRemoteSourcesHold(t *testing.T) {
	g := newTestGame(t, "timewarp", nil)
	g.SetRewindHeld("touch:1", true)
	g.SetRewindHeld("touch:2", true)
	g.SetRewindHeld("touch:1", false)
	if !g.Rewinding() {
		t.Error("Second contact still holds rewind")
	}
	g.SetRewindHeld("touch:2", false)
	if g.Rewinding() {
		t.Error("Rewind should stop when every contact lifts")
	}
}

func TestNonRewindVariantsIgnoreRewind(t *testing.T) {
	for _, id := range []string{"classic", "gravity", "portal"} {
		t.Run(id, func(t *testing.T) {
			g := newTestGame(t, id, nil)
			g.Step(input(core.ActionUp), frame)
			g.Step(input(core.ActionRewind), frame)
			g.SetRewindHeld("touch:1", true)
			if g.Rewinding() || g.Snapshot().CanRewind {
				t.Error("Variant should not rewind")
			}
		})
	}
}

func TestDirectionsIgnoredWhileRewinding(t *testing.T) {
	g := newTestGame(t, "timewarp", nil)
	g.Step(input(core.ActionUp), frame)
	g.Step(input(), frame)

	g.SetRewindHeld(KeyboardSource, true)
	g.Step(input(core.ActionLeft), frame)
	g.SetRewindHeld(KeyboardSource, false)
	g.Step(input(), frame)

	if dir := g.Snapshot().Dir; dir != sim.Up {
		t.Errorf("Turn during rewind leaked through, dir = %v", dir)
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(t, "classic", nil)
	g.Step(input(core.ActionPause), frame)
	if g.State().Paused {
		t.Error("Pause before start should be ignored")
	}

	g.Step(input(core.ActionUp), frame)
	g.Step(input(core.ActionPause), frame)
	before := g.Snapshot().Tick
	for range 10 {
		if res := g.Step(input(core.ActionLeft), frame); res.Ticks != 0 {
			t.Fatal("Paused game should not tick")
		}
	}
	if g.Snapshot().Tick != before {
		t.Error("Tick advanced while paused")
	}
	g.Step(input(core.ActionPause), frame)
	if g.State().Paused {
		t.Error("Second pause should resume")
	}
}

func TestPauseDropsPartialStep(t *testing.T) {
	g := newTestGame(t, "classic", func(c *config.SnakeConfig) { c.Gameplay.TicksPerSecond = 20 })
	// Primed start plus 30ms: one tick fires and 30ms stays banked.
	if res := g.Step(input(core.ActionUp), 30*time.Millisecond); res.Ticks != 1 {
		t.Fatalf("Start frame ticks = %d, expected 1", res.Ticks)
	}
	if acc := g.driver.Accumulated(); acc != 30*time.Millisecond {
		t.Fatalf("Accumulated() = %v, expected 30ms", acc)
	}

	g.Step(input(core.ActionPause), 10*time.Millisecond)
	if acc := g.driver.Accumulated(); acc != 0 {
		t.Errorf("Accumulated() = %v while paused, expected 0", acc)
	}
	g.Step(input(core.ActionPause), 0)
	if res := g.Step(input(), 30*time.Millisecond); res.Ticks != 0 {
		t.Errorf("Resume fired %d ticks from time banked before the pause", res.Ticks)
	}
}

func TestRestartAnyTime(t *testing.T) {
	g := newTestGame(t, "timewarp", nil)
	g.Step(input(core.ActionUp), frame)
	runUntil(g, 5, func() bool { return false })

	g.Step(input(core.ActionRestart), frame)
	snap := g.Snapshot()
	if snap.Phase != sim.NotStarted || snap.Tick != 0 || snap.History != 0 {
		t.Errorf("Restart should start a fresh run, got %+v", snap)
	}
}

// greedy steers toward the food without reversing.
func greedy(s Snapshot) core.Action {
	if s.Food == nil {
		return core.ActionNone
	}
	head := s.Snake[0]
	want := []core.Action{}
	switch {
	case s.Food.X > head.X:
		want = append(want, core.ActionRight)
	case s.Food.X < head.X:
		want = append(want, core.ActionLeft)
	}
	switch {
	case s.Food.Y > head.Y:
		want = append(want, core.ActionDown)
	case s.Food.Y < head.Y:
		want = append(want, core.ActionUp)
	}
	want = append(want, core.ActionUp, core.ActionLeft)
	for _, a := range want {
		d, _ := directionFor(a)
		if !sim.IsOpposite(d, s.Dir) {
			return a
		}
	}
	return core.ActionNone
}

func TestBestScorePersistsWhenBeaten(t *testing.T) {
	store := &memStore{best: map[string]int{"classic": 0}}
	g := newTestGame(t, "classic", func(c *config.SnakeConfig) {
		c.Grid = config.SnakeGrid{Width: 10, Height: 10}
	})
	g.AttachScores(store)
	g.Step(input(core.ActionUp), frame)

	for range 500 {
		if g.State().Score > 0 {
			break
		}
		if g.State().GameOver {
			g.Step(input(core.ActionRestart), frame)
			g.Step(input(core.ActionUp), frame)
			continue
		}
		g.Step(input(greedy(g.Snapshot())), frame)
	}

	if g.State().Score == 0 {
		t.Fatal("Greedy player never ate")
	}
	if store.best["classic"] != g.State().Best || store.writes == 0 {
		t.Errorf("Store best = %d (writes %d), game best = %d", store.best["classic"], store.writes, g.State().Best)
	}
}

func TestAttachScoresReadsBest(t *testing.T) {
	g := newTestGame(t, "portal", nil)
	g.AttachScores(&memStore{best: map[string]int{"portal": 17}})
	if g.State().Best != 17 {
		t.Errorf("Best = %d, expected 17", g.State().Best)
	}
}

func TestStoreFailuresAreSwallowed(t *testing.T) {
	g := newTestGame(t, "timewarp", nil)
	g.AttachScores(&memStore{failGet: true, failSet: true})
	g.Step(input(core.ActionUp), frame)
	runUntil(g, 30, func() bool { return g.State().GameOver })
	if g.State().Best != 0 && g.State().Best != g.State().Score {
		t.Error("Best should track the live score despite storage errors")
	}
}

func TestSnapshotJSON(t *testing.T) {
	g := newTestGame(t, "portal", nil)
	g.Step(input(core.ActionUp), frame)

	data, err := json.Marshal(g.Snapshot())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	out := string(data)
	for _, want := range []string{`"phase":"running"`, `"dir":"up"`, `"variant":"portal"`, `"exit":{"x":`} {
		if !strings.Contains(out, want) {
			t.Errorf("Snapshot JSON missing %s: %s", want, out)
		}
	}
}

func TestRenderOverlays(t *testing.T) {
	v, _ := LookupVariant("timewarp")
	g := New(v, config.DefaultSnakeConfig())
	g.SetLogger(log.New(io.Discard))
	g.Reset(core.RuntimeConfig{ScreenW: 90, ScreenH: 46, Seed: 7})

	screen := core.NewScreen(90, 46)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Time Warp Snake") {
		t.Error("Title overlay missing before start")
	}

	g.Step(input(core.ActionUp), frame)
	runUntil(g, 60, func() bool { return g.State().GameOver })
	g.Render(screen)
	if !strings.Contains(screen.String(), "CRASH!") {
		t.Error("Crash overlay missing")
	}

	g.Step(input(core.ActionRewind), frame)
	g.Render(screen)
	out := screen.String()
	if strings.Contains(out, "CRASH!") || !strings.Contains(out, "REWIND") {
		t.Error("Rewind should hide overlays and label the board")
	}
}

func TestRenderFitsSmallTerminal(t *testing.T) {
	v, _ := LookupVariant("classic")
	g := New(v, config.DefaultSnakeConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})

	grid := g.Grid()
	if grid.Width != 40 || grid.Height != 20 {
		t.Errorf("Grid = %+v, expected 40x20 on 80x24", grid)
	}

	g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 8, Seed: 1})
	screen := core.NewScreen(30, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "small") {
		t.Errorf("Expected too-small notice, got:\n%s", screen.String())
	}
	if res := g.Step(input(core.ActionUp), frame); res.Ticks != 0 {
		t.Error("Too-small game should not run")
	}
}
