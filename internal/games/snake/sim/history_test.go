package sim

import (
	"reflect"
	"testing"
)

func stateWithScore(score int) State {
	return State{Snake: []Cell{{score, 0}}, Score: score, Dir: Right}
}

func TestHistoryPushPopLIFO(t *testing.T) {
	h := NewHistoryRing(4)
	for i := 1; i <= 3; i++ {
		h.Push(stateWithScore(i))
	}
	for want := 3; want >= 1; want-- {
		s, ok := h.Pop()
		if !ok {
			t.Fatalf("Pop() reported empty, expected score %d", want)
		}
		if s.Score != want {
			t.Errorf("Pop() score = %d, expected %d", s.Score, want)
		}
	}
	if _, ok := h.Pop(); ok {
		t.Error("Pop() on empty ring should report none")
	}
}

func TestHistoryOverflowEvictsOldest(t *testing.T) {
	const capacity = 5
	const extra = 3
	h := NewHistoryRing(capacity)
	for i := 1; i <= capacity+extra; i++ {
		h.Push(stateWithScore(i))
	}

	if h.Len() != capacity {
		t.Fatalf("Len() = %d, expected %d", h.Len(), capacity)
	}

	var got []int
	for {
		s, ok := h.Pop()
		if !ok {
			break
		}
		got = append(got, s.Score)
	}
	want := []int{8, 7, 6, 5, 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Recovered %v, expected %v (oldest %d lost)", got, want, extra)
	}
}

func TestHistoryPopAfterPushIsIdentical(t *testing.T) {
	h := NewHistoryRing(3)
	orig := State{
		Snake:   []Cell{{3, 3}, {2, 3}, {2, 4}},
		Food:    &Food{Cell: Cell{7, 7}, Exit: Cell{1, 1}, HasExit: true},
		Dir:     Up,
		Gravity: Left,
		Score:   9,
	}
	h.Push(orig.Clone())

	got, ok := h.Pop()
	if !ok {
		t.Fatal("Pop() should return the pushed snapshot")
	}
	if !got.Equal(orig) || !reflect.DeepEqual(got, orig) {
		t.Errorf("Pop() = %+v, expected %+v", got, orig)
	}
}

func TestHistoryPeekAndWrapAround(t *testing.T) {
	h := NewHistoryRing(2)
	if _, ok := h.Peek(); ok {
		t.Error("Peek() on empty ring should report none")
	}
	h.Push(stateWithScore(1))
	h.Push(stateWithScore(2))
	h.Push(stateWithScore(3))
	h.Pop()
	h.Push(stateWithScore(4))

	s, _ := h.Peek()
	if s.Score != 4 {
		t.Errorf("Peek() score = %d, expected 4", s.Score)
	}
	h.Pop()
	s, _ = h.Pop()
	if s.Score != 2 {
		t.Errorf("Second pop score = %d, expected 2", s.Score)
	}
	if h.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", h.Len())
	}
}

func TestHistoryMinimumCapacity(t *testing.T) {
	h := NewHistoryRing(0)
	if h.Cap() != 1 {
		t.Errorf("Cap() = %d, expected 1", h.Cap())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := State{Snake: []Cell{{1, 1}, {0, 1}}, Food: &Food{Cell: Cell{4, 4}}}
	c := orig.Clone()
	c.Snake[0] = Cell{9, 9}
	c.Food.Cell = Cell{5, 5}

	if orig.Snake[0] != (Cell{1, 1}) {
		t.Error("Mutating clone snake changed original")
	}
	if orig.Food.Cell != (Cell{4, 4}) {
		t.Error("Mutating clone food changed original")
	}
	if orig.Equal(c) {
		t.Error("Diverged states should not be equal")
	}
}
