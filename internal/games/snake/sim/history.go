package sim

// HistoryRing is a fixed-capacity undo stack laid over a circular array.
// Pushing past capacity silently overwrites the oldest entry, so rewind depth
// is bounded no matter how long a run lasts.
type HistoryRing struct {
	slots []State
	head  int // index of the most recent entry, -1 when never pushed
	size  int
}

// NewHistoryRing allocates a ring holding up to capacity snapshots.
func NewHistoryRing(capacity int) *HistoryRing {
	if capacity <= 0 {
		capacity = 1
	}
	return &HistoryRing{
		slots: make([]State, capacity),
		head:  -1,
	}
}

// Push records s as the newest entry. The ring stores s as given; callers
// hand over a copy they no longer mutate.
func (h *HistoryRing) Push(s State) {
	h.head = (h.head + 1) % len(h.slots)
	h.slots[h.head] = s
	if h.size < len(h.slots) {
		h.size++
	}
}

// Pop removes and returns the newest entry.
func (h *HistoryRing) Pop() (State, bool) {
	if h.size == 0 {
		return State{}, false
	}
	s := h.slots[h.head]
	h.slots[h.head] = State{}
	h.head = (h.head - 1 + len(h.slots)) % len(h.slots)
	h.size--
	return s, true
}

// Peek returns the newest entry without removing it.
func (h *HistoryRing) Peek() (State, bool) {
	if h.size == 0 {
		return State{}, false
	}
	return h.slots[h.head], true
}

// Len returns the number of recoverable snapshots.
func (h *HistoryRing) Len() int {
	return h.size
}

// Cap returns the ring capacity.
func (h *HistoryRing) Cap() int {
	return len(h.slots)
}
