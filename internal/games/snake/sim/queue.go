package sim

// MaxQueuedTurns bounds how many turns a player can plan ahead.
const MaxQueuedTurns = 2

// DirectionQueue buffers turn intents between ticks. Each forward tick
// consumes at most one entry, so a burst of input never produces more
// direction changes than the snake can realize.
type DirectionQueue struct {
	pending [MaxQueuedTurns]Direction
	n       int
}

// Enqueue offers d as the next turn. It is compared with the most recently
// queued turn, or with live when nothing is queued, and rejected if equal or
// opposite. When the queue is full the last slot is overwritten so the
// newest intent wins while the first pending turn is preserved. The
// replacement is then checked against the entry it will follow.
func (q *DirectionQueue) Enqueue(d Direction, live Direction) bool {
	if !d.Valid() {
		return false
	}
	if q.n < MaxQueuedTurns {
		if !legalAfter(d, q.before(q.n, live)) {
			return false
		}
		q.pending[q.n] = d
		q.n++
		return true
	}
	if d == q.pending[q.n-1] || !legalAfter(d, q.before(q.n-1, live)) {
		return false
	}
	q.pending[q.n-1] = d
	return true
}

// before returns the turn preceding slot i.
func (q *DirectionQueue) before(i int, live Direction) Direction {
	if i == 0 {
		return live
	}
	return q.pending[i-1]
}

func legalAfter(d, prev Direction) bool {
	return d != prev && !IsOpposite(d, prev)
}

// Consume pops the front entry.
func (q *DirectionQueue) Consume() (Direction, bool) {
	if q.n == 0 {
		return 0, false
	}
	d := q.pending[0]
	copy(q.pending[:], q.pending[1:q.n])
	q.n--
	return d, true
}

// Len returns the number of pending turns.
func (q *DirectionQueue) Len() int {
	return q.n
}

// Pending returns a copy of the queued turns in order.
func (q *DirectionQueue) Pending() []Direction {
	out := make([]Direction, q.n)
	copy(out, q.pending[:q.n])
	return out
}

// Clear drops every pending turn.
func (q *DirectionQueue) Clear() {
	q.n = 0
}
