package sim

import (
	"fmt"
	"math/rand"
)

// Outcome classifies the result of one forward step.
type Outcome int

const (
	Continue Outcome = iota
	Crash
	Win
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Crash:
		return "crash"
	case Win:
		return "win"
	default:
		return "unknown"
	}
}

// Result is what a StepPolicy produces for one tick.
type Result struct {
	Next    State
	Outcome Outcome
	// Ate is set when the head consumed food this tick.
	Ate bool
	// ClearQueue asks the engine to drop pending turns.
	ClearQueue bool
}

// StepPolicy is the per-variant transition rule. Step receives a state the
// caller no longer uses and a direction already filtered for legality.
type StepPolicy interface {
	// Name identifies the variant ("classic", "gravity", "portal").
	Name() string
	// Place puts fresh food on the grid. It returns false and clears the
	// food when no valid placement exists.
	Place(st *State, g Grid, rng *rand.Rand) bool
	// Step advances st by one cell in dir.
	Step(st State, dir Direction, g Grid, rng *rand.Rand) Result
}

// PolicyFor returns the step policy registered under name.
func PolicyFor(name string) (StepPolicy, error) {
	switch name {
	case "classic", "":
		return Classic{}, nil
	case "gravity":
		return GravityFlip{}, nil
	case "portal":
		return Portal{}, nil
	}
	return nil, fmt.Errorf("sim: unknown step policy %q", name)
}

// crashed marks st terminal, keeping the snake at its fatal position.
func crashed(st State) Result {
	st.Terminal = true
	return Result{Next: st, Outcome: Crash}
}

// won marks st as a cleared board.
func won(st State) Result {
	st.Won = true
	st.Food = nil
	return Result{Next: st, Outcome: Win, Ate: true}
}

// slither moves the head onto head. The tail stays when eating.
func slither(st State, head Cell, eating bool) State {
	keep := len(st.Snake)
	if !eating {
		keep--
	}
	body := make([]Cell, 0, keep+1)
	body = append(body, head)
	body = append(body, st.Snake[:keep]...)
	st.Snake = body
	return st
}

// Classic is the plain rule set: eat, grow, respawn food anywhere empty.
type Classic struct{}

func (Classic) Name() string { return "classic" }

// Place samples food uniformly over the empty cells.
func (Classic) Place(st *State, g Grid, rng *rand.Rand) bool {
	c, ok := g.RandomEmpty(st.occupied(), rng)
	if !ok {
		st.Food = nil
		return false
	}
	st.Food = &Food{Cell: c}
	return true
}

// Step moves the snake one cell.
func (p Classic) Step(st State, dir Direction, g Grid, rng *rand.Rand) Result {
	st.Dir = dir
	dx, dy := dir.Vector()
	head := st.Head().Add(dx, dy)

	if WallCollision(g, head) {
		return crashed(st)
	}
	eating := st.Food != nil && head == st.Food.Cell
	if SelfCollision(head, st.Snake, eating) {
		return crashed(st)
	}

	st = slither(st, head, eating)
	if !eating {
		return Result{Next: st, Outcome: Continue}
	}

	st.Score++
	if !p.Place(&st, g, rng) {
		return won(st)
	}
	return Result{Next: st, Outcome: Continue, Ate: true}
}
