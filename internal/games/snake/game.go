package snake

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/warpsnake/internal/config"
	"github.com/vovakirdan/warpsnake/internal/core"
	"github.com/vovakirdan/warpsnake/internal/games/snake/sim"
)

// KeyboardSource names the rewind source fed by key presses.
const KeyboardSource = "key"

// ScoreStore persists the best score per variant.
type ScoreStore interface {
	BestScore(gameID string) (int, error)
	SetBestScore(gameID string, score int) error
}

// Game adapts the simulation engine to the platform: it owns the engine,
// the frame driver, rewind input and the best score.
type Game struct {
	variant Variant
	cfg     config.SnakeConfig
	logger  *log.Logger
	store   ScoreStore

	engine *sim.Engine
	driver *sim.Driver
	rewind *sim.RewindControl
	// lease keeps the keyboard rewind source held; terminals send no
	// key-up events, so auto-repeat renews it.
	lease time.Duration

	layout layout
	paused bool
	best   int
	ended  bool
}

// New creates a game for variant v. Reset must be called before use.
func New(v Variant, cfg config.SnakeConfig) *Game {
	cfg.Normalize()
	return &Game{
		variant: v,
		cfg:     cfg,
		logger:  log.Default(),
	}
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Variant returns the variant this game plays.
func (g *Game) Variant() Variant {
	return g.variant
}

// SetLogger replaces the logger used for swallowed storage failures.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.logger = l
	}
}

// AttachScores reads the stored best score once and keeps store for
// updates. Storage failures are logged and otherwise ignored.
func (g *Game) AttachScores(store ScoreStore) {
	g.store = store
	if store == nil {
		return
	}
	best, err := store.BestScore(g.variant.ID)
	if err != nil {
		g.logger.Debug("best score read failed", "game", g.variant.ID, "error", err)
		return
	}
	g.best = max(g.best, best)
}

// Reset builds a fresh engine sized for the screen and starts a new run.
func (g *Game) Reset(rc core.RuntimeConfig) {
	seed := rc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.layout = fitLayout(g.cfg.Grid, rc.ScreenW, rc.ScreenH)

	policy, err := sim.PolicyFor(g.variant.Policy)
	if err != nil {
		g.logger.Warn("falling back to classic rules", "game", g.variant.ID, "error", err)
		policy = sim.Classic{}
	}

	g.engine = sim.New(sim.Config{
		Grid:           g.layout.grid,
		TicksPerSecond: g.cfg.Gameplay.TicksPerSecond,
		HistorySeconds: g.cfg.Gameplay.HistorySeconds,
		InitialLength:  g.cfg.Gameplay.InitialLength,
	}, policy, rand.New(rand.NewSource(seed)))

	perFrame := sim.DefaultTicksPerFrame
	if g.variant.Rewind {
		perFrame = sim.RewindTicksPerFrame
	}
	g.driver = sim.NewDriver(sim.DriverConfig{
		Step:             g.engine.Config().StepInterval(),
		MaxTicksPerFrame: perFrame,
		MaxFrameDelta:    g.cfg.MaxFrameDelta(),
	})
	g.rewind = sim.NewRewindControl(sim.RewindMode(g.cfg.Rewind.Mode))
	g.clearRun()
}

// Restart abandons the current run and starts a new one on the same grid.
// Allowed at any time.
func (g *Game) Restart() {
	g.engine.Reset()
	g.driver.Reset()
	g.rewind.Reset()
	g.clearRun()
}

func (g *Game) clearRun() {
	g.lease = 0
	g.paused = false
	g.ended = false
}

// Step applies one frame of input and runs the ticks due for dt.
func (g *Game) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	if in.Has(core.ActionRestart) {
		g.Restart()
		return core.StepResult{State: g.State()}
	}
	if g.layout.tooSmall {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.TogglePause()
	}

	g.expireLease(dt)
	if in.Has(core.ActionRewind) {
		g.pressRewindKey()
	}
	if g.paused {
		g.driver.Reset()
		return core.StepResult{State: g.State()}
	}

	for _, a := range in.Directions() {
		if d, ok := directionFor(a); ok {
			g.Turn(d)
		}
	}

	ticks := g.driver.Advance(dt, g.Rewinding(), g.engine)
	g.trackBest()
	return core.StepResult{State: g.State(), Ticks: ticks, Ended: g.checkEnded()}
}

// Turn routes a direction intent to the engine. The first intent of a run
// starts it and fires the first move on the next frame.
func (g *Game) Turn(d sim.Direction) {
	if g.paused {
		return
	}
	if g.engine.Enqueue(d, g.Rewinding()) {
		g.driver.Prime()
	}
}

// TogglePause pauses a running game or resumes a paused one.
func (g *Game) TogglePause() {
	if g.paused {
		g.paused = false
		return
	}
	if g.engine.Phase() == sim.Running {
		g.paused = true
		g.rewind.Reset()
		g.lease = 0
	}
}

// SetRewindHeld reports a hold or release from a source with real key-up
// or touch-end events. In toggle mode only presses count.
func (g *Game) SetRewindHeld(source string, held bool) {
	if !g.variant.Rewind {
		return
	}
	if held {
		g.rewind.Press(source)
	} else {
		g.rewind.Release(source)
	}
}

// ToggleRewind flips rewind in toggle mode.
func (g *Game) ToggleRewind() {
	if g.variant.Rewind {
		g.rewind.Toggle()
	}
}

// Rewinding reports whether rewind is currently requested.
func (g *Game) Rewinding() bool {
	return g.variant.Rewind && g.rewind.Active()
}

func (g *Game) pressRewindKey() {
	if !g.variant.Rewind {
		return
	}
	g.rewind.Press(KeyboardSource)
	if g.rewind.Mode() == sim.RewindHold {
		g.lease = g.cfg.HoldLease()
	}
}

func (g *Game) expireLease(dt time.Duration) {
	if g.lease <= 0 {
		return
	}
	g.lease -= dt
	if g.lease <= 0 {
		g.lease = 0
		g.rewind.Release(KeyboardSource)
	}
}

// trackBest raises the best score and persists it when beaten.
func (g *Game) trackBest() {
	score := g.engine.Score()
	if score <= g.best {
		return
	}
	g.best = score
	if g.store == nil {
		return
	}
	if err := g.store.SetBestScore(g.variant.ID, score); err != nil {
		g.logger.Debug("best score write failed", "game", g.variant.ID, "error", err)
	}
}

// checkEnded reports the first transition of a run into a terminal phase.
func (g *Game) checkEnded() bool {
	if g.ended || !g.terminal() {
		return false
	}
	g.ended = true
	return true
}

func (g *Game) terminal() bool {
	p := g.engine.Phase()
	return p == sim.Crashed || p == sim.Won
}

// State returns the coarse game status.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.engine.Score(),
		Best:      g.best,
		GameOver:  g.terminal(),
		Paused:    g.paused,
		Rewinding: g.Rewinding(),
	}
}

// Phase returns the engine lifecycle stage.
func (g *Game) Phase() sim.Phase {
	return g.engine.Phase()
}

func directionFor(a core.Action) (sim.Direction, bool) {
	switch a {
	case core.ActionUp:
		return sim.Up, true
	case core.ActionRight:
		return sim.Right, true
	case core.ActionDown:
		return sim.Down, true
	case core.ActionLeft:
		return sim.Left, true
	}
	return 0, false
}
