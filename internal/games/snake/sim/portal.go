package sim

import "math/rand"

// PortalMargin keeps portal entrances off the outer ring of cells.
const PortalMargin = 1

// Portal turns food into a portal pair: stepping onto the food cell moves
// the head to the paired exit cell instead.
type Portal struct{}

func (Portal) Name() string { return "portal" }

// Place draws a new food/exit pair. Food prefers the interior when at least
// two interior cells are free; the exit may be any other empty cell.
func (Portal) Place(st *State, g Grid, rng *rand.Rand) bool {
	return placePair(st, g, rng, st.occupied())
}

// replacePair draws a pair that avoids the consumed one, reusing its cells
// only when nothing else is left.
func replacePair(st *State, g Grid, rng *rand.Rand, consumed Food) bool {
	occ := st.occupied()
	occ[consumed.Cell] = struct{}{}
	occ[consumed.Exit] = struct{}{}
	if len(g.EmptyCells(g.Bounds(), occ)) >= 2 {
		return placePair(st, g, rng, occ)
	}
	return placePair(st, g, rng, st.occupied())
}

func placePair(st *State, g Grid, rng *rand.Rand, occ Occupancy) bool {
	candidates := g.EmptyCells(g.Interior(PortalMargin), occ)
	if len(candidates) < 2 {
		candidates = g.EmptyCells(g.Bounds(), occ)
	}
	food, ok := pick(candidates, rng)
	if !ok {
		st.Food = nil
		return false
	}
	occ[food] = struct{}{}
	exit, ok := g.RandomEmpty(occ, rng)
	if !ok {
		st.Food = nil
		return false
	}
	st.Food = &Food{Cell: food, Exit: exit, HasExit: true}
	return true
}

// Step moves the snake, teleporting through the portal when entering it.
// Collision is checked on the exit cell with the tail still in place.
func (Portal) Step(st State, dir Direction, g Grid, rng *rand.Rand) Result {
	st.Dir = dir
	dx, dy := dir.Vector()
	head := st.Head().Add(dx, dy)

	if WallCollision(g, head) {
		return crashed(st)
	}
	eating := st.Food != nil && head == st.Food.Cell
	if eating && st.Food.HasExit {
		head = st.Food.Exit
	}
	if SelfCollision(head, st.Snake, eating) {
		return crashed(st)
	}

	st = slither(st, head, eating)
	if !eating {
		return Result{Next: st, Outcome: Continue}
	}

	consumed := *st.Food
	st.Score++
	if !replacePair(&st, g, rng, consumed) {
		return won(st)
	}
	return Result{Next: st, Outcome: Continue, Ate: true}
}
