package sim

import "time"

// Frame pacing defaults.
const (
	DefaultMaxFrameDelta = 100 * time.Millisecond
	RewindTicksPerFrame  = 8
	DefaultTicksPerFrame = 5
)

// Ticker is the simulation surface the driver schedules.
type Ticker interface {
	Active(rewinding bool) bool
	Tick(rewinding bool) TickResult
}

// DriverConfig tunes a Driver.
type DriverConfig struct {
	// Step is the simulated duration of one tick.
	Step time.Duration
	// MaxTicksPerFrame caps catch-up after a stall.
	MaxTicksPerFrame int
	// MaxFrameDelta clamps a single frame delta. Zero disables the clamp.
	MaxFrameDelta time.Duration
}

// Driver converts wall-clock frame deltas into whole simulation ticks.
type Driver struct {
	cfg         DriverConfig
	accumulator time.Duration
}

// NewDriver creates a fixed-timestep driver.
func NewDriver(cfg DriverConfig) *Driver {
	if cfg.Step <= 0 {
		cfg.Step = time.Second / 20
	}
	if cfg.MaxTicksPerFrame <= 0 {
		cfg.MaxTicksPerFrame = DefaultTicksPerFrame
	}
	return &Driver{cfg: cfg}
}

// Advance feeds one rendered frame of dt into the accumulator and runs the
// ticks that are due, strictly in sequence. When the per-frame cap is hit the
// remainder is dropped instead of carried into a catch-up burst. An inactive
// ticker resets the accumulator so no stale backlog fires later.
func (d *Driver) Advance(dt time.Duration, rewinding bool, t Ticker) int {
	if !t.Active(rewinding) {
		d.accumulator = 0
		return 0
	}
	if dt < 0 {
		dt = 0
	}
	if d.cfg.MaxFrameDelta > 0 && dt > d.cfg.MaxFrameDelta {
		dt = d.cfg.MaxFrameDelta
	}

	d.accumulator += dt
	steps := 0
	for d.accumulator >= d.cfg.Step && steps < d.cfg.MaxTicksPerFrame {
		t.Tick(rewinding)
		d.accumulator -= d.cfg.Step
		steps++
	}
	if steps == d.cfg.MaxTicksPerFrame {
		d.accumulator = 0
	}
	return steps
}

// Prime makes the next frame fire a tick immediately. Used when a run
// starts so the first move has no dead interval.
func (d *Driver) Prime() {
	d.accumulator = d.cfg.Step
}

// Reset clears the accumulator.
func (d *Driver) Reset() {
	d.accumulator = 0
}

// Accumulated returns the unspent frame time.
func (d *Driver) Accumulated() time.Duration {
	return d.accumulator
}

// Config returns the driver settings.
func (d *Driver) Config() DriverConfig {
	return d.cfg
}
