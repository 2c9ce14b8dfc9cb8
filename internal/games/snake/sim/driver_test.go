package sim

import (
	"testing"
	"time"
)

type countingTicker struct {
	active   bool
	forward  int
	rewinds  int
	lastMode bool
}

func (c *countingTicker) Active(bool) bool { return c.active }

func (c *countingTicker) Tick(rewinding bool) TickResult {
	c.lastMode = rewinding
	if rewinding {
		c.rewinds++
		return TickResult{Kind: TickRewound}
	}
	c.forward++
	return TickResult{Kind: TickForward}
}

func TestDriverStallIsCappedAndDropped(t *testing.T) {
	d := NewDriver(DriverConfig{Step: 50 * time.Millisecond, MaxTicksPerFrame: 8})
	tk := &countingTicker{active: true}

	if n := d.Advance(500*time.Millisecond, false, tk); n != 8 {
		t.Errorf("Advance() ran %d ticks, expected 8", n)
	}
	if tk.forward != 8 {
		t.Errorf("Ticker saw %d ticks, expected 8", tk.forward)
	}
	if d.Accumulated() != 0 {
		t.Errorf("Accumulated() = %v, expected 0 after hitting the cap", d.Accumulated())
	}
}

func TestDriverDefaultClampLimitsStall(t *testing.T) {
	d := NewDriver(DriverConfig{
		Step:             50 * time.Millisecond,
		MaxTicksPerFrame: RewindTicksPerFrame,
		MaxFrameDelta:    DefaultMaxFrameDelta,
	})
	tk := &countingTicker{active: true}

	if n := d.Advance(500*time.Millisecond, false, tk); n != 2 {
		t.Errorf("Advance() ran %d ticks, expected 2 with 100ms clamp", n)
	}
}

func TestDriverCarriesRemainder(t *testing.T) {
	d := NewDriver(DriverConfig{Step: 50 * time.Millisecond, MaxTicksPerFrame: 5})
	tk := &countingTicker{active: true}

	d.Advance(30*time.Millisecond, false, tk)
	if tk.forward != 0 {
		t.Fatal("No tick should fire before a full step accumulates")
	}
	d.Advance(30*time.Millisecond, false, tk)
	if tk.forward != 1 {
		t.Errorf("Expected one tick after 60ms, got %d", tk.forward)
	}
	if d.Accumulated() != 10*time.Millisecond {
		t.Errorf("Accumulated() = %v, expected 10ms", d.Accumulated())
	}
}

func TestDriverInactiveResetsAccumulator(t *testing.T) {
	d := NewDriver(DriverConfig{Step: 50 * time.Millisecond})
	tk := &countingTicker{active: true}
	d.Advance(40*time.Millisecond, false, tk)

	tk.active = false
	if n := d.Advance(time.Second, false, tk); n != 0 {
		t.Errorf("Inactive ticker ran %d ticks", n)
	}
	if d.Accumulated() != 0 {
		t.Errorf("Accumulated() = %v, expected 0 while inactive", d.Accumulated())
	}
}

func TestDriverPrimeFiresImmediately(t *testing.T) {
	d := NewDriver(DriverConfig{Step: 50 * time.Millisecond})
	tk := &countingTicker{active: true}
	d.Prime()

	if n := d.Advance(0, false, tk); n != 1 {
		t.Errorf("Primed driver ran %d ticks on a zero delta, expected 1", n)
	}
}

func TestDriverPassesRewindFlag(t *testing.T) {
	d := NewDriver(DriverConfig{Step: 50 * time.Millisecond})
	tk := &countingTicker{active: true}
	d.Advance(100*time.Millisecond, true, tk)

	if tk.rewinds != 2 || tk.forward != 0 || !tk.lastMode {
		t.Errorf("Expected 2 rewind ticks, got rewinds=%d forward=%d", tk.rewinds, tk.forward)
	}
}

func TestDriverDefaults(t *testing.T) {
	d := NewDriver(DriverConfig{})
	cfg := d.Config()
	if cfg.Step != 50*time.Millisecond {
		t.Errorf("Step = %v, expected 50ms", cfg.Step)
	}
	if cfg.MaxTicksPerFrame != DefaultTicksPerFrame {
		t.Errorf("MaxTicksPerFrame = %d, expected %d", cfg.MaxTicksPerFrame, DefaultTicksPerFrame)
	}
}

func TestDriverWithEngineStartsImmediately(t *testing.T) {
	e := New(Config{Grid: Grid{Width: 20, Height: 20}, TicksPerSecond: 20, HistorySeconds: 8, InitialLength: 4}, Classic{}, nil)
	d := NewDriver(DriverConfig{Step: e.Config().StepInterval(), MaxTicksPerFrame: RewindTicksPerFrame})

	if n := d.Advance(time.Second, false, e); n != 0 {
		t.Fatalf("Unstarted engine should not tick, got %d", n)
	}
	if e.Enqueue(Up, false) {
		d.Prime()
	}
	d.Advance(time.Millisecond, false, e)
	if e.Ticks() != 1 {
		t.Errorf("Ticks() = %d, expected the first move on the next frame", e.Ticks())
	}
}
