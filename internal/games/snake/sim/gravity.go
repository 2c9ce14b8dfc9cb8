package sim

import "math/rand"

// GravityFlip moves like Classic, but every meal flips gravity: a new
// forced heading replaces the live direction and cancels planned turns.
type GravityFlip struct{}

func (GravityFlip) Name() string { return "gravity" }

// Place uses the classic food placement.
func (GravityFlip) Place(st *State, g Grid, rng *rand.Rand) bool {
	return Classic{}.Place(st, g, rng)
}

// Step moves the snake and flips gravity after eating.
func (GravityFlip) Step(st State, dir Direction, g Grid, rng *rand.Rand) Result {
	length := len(st.Snake)
	res := Classic{}.Step(st, dir, g, rng)
	if res.Outcome != Continue || !res.Ate {
		return res
	}

	res.Next.Gravity = NextGravity(res.Next.Gravity, dir, length, rng)
	res.Next.Dir = res.Next.Gravity
	res.ClearQueue = true
	return res
}

// NextGravity picks a heading uniformly, excluding the current gravity and,
// for snakes longer than one segment, the reverse of the pre-eat heading
// (which would drive the head into the neck). If that excludes everything,
// only the current gravity is excluded.
func NextGravity(current, moving Direction, length int, rng *rand.Rand) Direction {
	options := make([]Direction, 0, len(Directions))
	for _, d := range Directions {
		if d == current {
			continue
		}
		if length > 1 && d == Opposite(moving) {
			continue
		}
		options = append(options, d)
	}
	if len(options) == 0 {
		for _, d := range Directions {
			if d != current {
				options = append(options, d)
			}
		}
	}
	return options[rng.Intn(len(options))]
}
