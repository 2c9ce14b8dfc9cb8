package sim

import (
	"fmt"
	"math/rand"
	"time"
)

// Phase is the lifecycle stage of a run. Rewinding is not a phase of its
// own: it is requested per tick and may apply to Running or Crashed runs.
type Phase int

const (
	NotStarted Phase = iota
	Running
	Crashed
	Won
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not_started"
	case Running:
		return "running"
	case Crashed:
		return "crashed"
	case Won:
		return "won"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(b []byte) error {
	for _, v := range []Phase{NotStarted, Running, Crashed, Won} {
		if v.String() == string(b) {
			*p = v
			return nil
		}
	}
	return fmt.Errorf("sim: unknown phase %q", b)
}

// Config sizes an engine.
type Config struct {
	Grid           Grid
	TicksPerSecond int
	HistorySeconds int
	InitialLength  int
}

// StepInterval is the wall-clock duration of one tick.
func (c Config) StepInterval() time.Duration {
	if c.TicksPerSecond <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.TicksPerSecond)
}

// HistoryCapacity is the number of snapshots kept for rewind.
func (c Config) HistoryCapacity() int {
	return c.TicksPerSecond * c.HistorySeconds
}

// TickKind tells what a tick did.
type TickKind int

const (
	TickIdle TickKind = iota
	TickForward
	TickRewound
)

// TickResult reports the effect of one Tick call.
type TickResult struct {
	Kind    TickKind
	Outcome Outcome
	Ate     bool
}

// Engine owns the live state, its history and the pending turns. It is not
// safe for concurrent use; one goroutine drives it.
type Engine struct {
	cfg     Config
	policy  StepPolicy
	rng     *rand.Rand
	state   State
	phase   Phase
	queue   DirectionQueue
	history *HistoryRing
	ticks   uint64
}

// New creates an engine and resets it to the initial position.
func New(cfg Config, policy StepPolicy, rng *rand.Rand) *Engine {
	if policy == nil {
		policy = Classic{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.InitialLength <= 0 {
		cfg.InitialLength = 1
	}
	e := &Engine{cfg: cfg, policy: policy, rng: rng}
	e.Reset()
	return e
}

// Reset starts a fresh run: centered snake facing right, new food, empty
// queue and a newly allocated history ring.
func (e *Engine) Reset() {
	cx := e.cfg.Grid.Width / 2
	cy := e.cfg.Grid.Height / 2
	n := min(e.cfg.InitialLength, cx+1)

	snake := make([]Cell, 0, n)
	for i := range n {
		snake = append(snake, Cell{X: cx - i, Y: cy})
	}

	e.state = State{
		Snake:   snake,
		Dir:     Right,
		Gravity: Right,
	}
	e.phase = NotStarted
	e.queue.Clear()
	e.history = NewHistoryRing(e.cfg.HistoryCapacity())
	e.ticks = 0

	if !e.policy.Place(&e.state, e.cfg.Grid, e.rng) {
		e.state.Won = true
		e.phase = Won
	}
}

// Enqueue routes a direction intent. The first intent of a run commits the
// heading and starts it, returning true so the caller can schedule the first
// move without waiting a full interval. Intents are ignored while rewinding
// or after the run has ended.
func (e *Engine) Enqueue(d Direction, rewinding bool) (started bool) {
	if rewinding || !d.Valid() {
		return false
	}
	switch e.phase {
	case NotStarted:
		if len(e.state.Snake) > 1 && IsOpposite(d, e.state.Dir) {
			return false
		}
		e.state.Dir = d
		e.state.Gravity = d
		e.queue.Clear()
		e.phase = Running
		return true
	case Running:
		e.queue.Enqueue(d, e.state.Dir)
	}
	return false
}

// Active reports whether ticks should be scheduled at all. Rewind works
// from a crashed run; forward ticks need a running one.
func (e *Engine) Active(rewinding bool) bool {
	if rewinding {
		return e.phase == Running || e.phase == Crashed
	}
	return e.phase == Running
}

// Tick performs one simulation step: a history pop when rewinding,
// otherwise a forward move recorded after its pre-step snapshot.
func (e *Engine) Tick(rewinding bool) TickResult {
	if rewinding {
		return e.rewind()
	}
	if e.phase != Running {
		return TickResult{}
	}

	e.history.Push(e.state.Clone())
	e.ticks++

	if next, ok := e.queue.Consume(); ok && !IsOpposite(next, e.state.Dir) {
		e.state.Dir = next
	}

	res := e.policy.Step(e.state, e.state.Dir, e.cfg.Grid, e.rng)
	e.state = res.Next
	if res.ClearQueue {
		e.queue.Clear()
	}
	switch res.Outcome {
	case Crash:
		e.phase = Crashed
	case Win:
		e.phase = Won
	}
	return TickResult{Kind: TickForward, Outcome: res.Outcome, Ate: res.Ate}
}

func (e *Engine) rewind() TickResult {
	if e.phase != Running && e.phase != Crashed {
		return TickResult{}
	}
	snap, ok := e.history.Pop()
	if !ok {
		return TickResult{}
	}

	e.state = snap.Clone()
	e.queue.Clear()
	if e.ticks > 0 {
		e.ticks--
	}
	if e.state.Terminal {
		e.phase = Crashed
	} else {
		e.phase = Running
	}
	return TickResult{Kind: TickRewound, Outcome: Continue}
}

// State returns a copy of the live state.
func (e *Engine) State() State {
	return e.state.Clone()
}

// Score returns the live score without copying the state.
func (e *Engine) Score() int {
	return e.state.Score
}

// Phase returns the current lifecycle stage.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Config returns the engine sizing.
func (e *Engine) Config() Config {
	return e.cfg
}

// Policy returns the variant rules in use.
func (e *Engine) Policy() StepPolicy {
	return e.policy
}

// HistoryLen returns how many ticks can currently be rewound.
func (e *Engine) HistoryLen() int {
	return e.history.Len()
}

// HistoryCap returns the rewind depth limit.
func (e *Engine) HistoryCap() int {
	return e.history.Cap()
}

// Pending returns the queued turns.
func (e *Engine) Pending() []Direction {
	return e.queue.Pending()
}

// Ticks returns the number of forward ticks in the live timeline.
func (e *Engine) Ticks() uint64 {
	return e.ticks
}
