package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEventHeap_TimeOrdering tests that events are processed in time order
func TestEventHeap_TimeOrdering(t *testing.T) {
	h := NewEventHeap()

	h.Schedule(NewArrivalEvent(10, 0))
	h.Schedule(NewArrivalEvent(5, 1))
	h.Schedule(NewArrivalEvent(15, 2))

	var times []float64
	for h.Len() > 0 {
		e, ok := h.PopNext()
		require.True(t, ok)
		times = append(times, e.Time)
	}
	assert.Equal(t, []float64{5, 10, 15}, times)
}

// TestEventHeap_KindPriorityOrdering tests that same-time events use kind priority
// regardless of insertion order.
func TestEventHeap_KindPriorityOrdering(t *testing.T) {
	insertions := map[string][]Event{
		"priority order": {NewEndOfExamEvent(7, 0), NewArrivalEvent(7, 3), NewCloseEvent(7)},
		"reverse order":  {NewCloseEvent(7), NewArrivalEvent(7, 3), NewEndOfExamEvent(7, 0)},
		"mixed order":    {NewArrivalEvent(7, 3), NewCloseEvent(7), NewEndOfExamEvent(7, 0)},
	}
	for name, events := range insertions {
		t.Run(name, func(t *testing.T) {
			h := NewEventHeap()
			for _, e := range events {
				h.Schedule(e)
			}
			var kinds []EventKind
			for h.Len() > 0 {
				e, _ := h.PopNext()
				kinds = append(kinds, e.Kind)
			}
			assert.Equal(t, []EventKind{EventEndOfExam, EventArrival, EventClose}, kinds)
		})
	}
}

// TestEventHeap_SequenceOrdering tests same-time same-kind events pop in scheduling order
func TestEventHeap_SequenceOrdering(t *testing.T) {
	h := NewEventHeap()
	for room := 0; room < 5; room++ {
		h.Schedule(NewEndOfExamEvent(3, room))
	}

	var rooms []int
	var lastSeq uint64
	for h.Len() > 0 {
		e, _ := h.PopNext()
		assert.Greater(t, e.Seq(), lastSeq)
		lastSeq = e.Seq()
		rooms = append(rooms, e.RoomID)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, rooms)
}

func TestEventHeap_EmptyPopAndPeek(t *testing.T) {
	h := NewEventHeap()

	_, ok := h.PopNext()
	assert.False(t, ok)
	_, ok = h.Peek()
	assert.False(t, ok)

	h.Schedule(NewCloseEvent(1))
	e, ok := h.Peek()
	require.True(t, ok)
	assert.Equal(t, EventClose, e.Kind)
	assert.Equal(t, 1, h.Len(), "Peek must not remove the event")
}

func TestEventHeap_CountKind(t *testing.T) {
	h := NewEventHeap()
	h.Schedule(NewEndOfExamEvent(1, 0))
	h.Schedule(NewEndOfExamEvent(2, 1))
	h.Schedule(NewArrivalEvent(1, 0))

	assert.Equal(t, 2, h.CountKind(EventEndOfExam))
	assert.Equal(t, 1, h.CountKind(EventArrival))
	assert.Equal(t, 0, h.CountKind(EventClose))
	assert.Len(t, h.Items(), 3)
}
