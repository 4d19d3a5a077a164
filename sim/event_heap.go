package sim

import "container/heap"

// EventHeap implements a priority queue with deterministic ordering.
// Ordering: time → kind priority → scheduling sequence (see Less).
type EventHeap struct {
	events  []Event
	nextSeq uint64
}

// NewEventHeap creates a new event heap
func NewEventHeap() *EventHeap {
	h := &EventHeap{
		events: make([]Event, 0),
	}
	heap.Init(h)
	return h
}

// Len implements heap.Interface
func (h *EventHeap) Len() int {
	return len(h.events)
}

// Less implements heap.Interface
func (h *EventHeap) Less(i, j int) bool {
	return Less(h.events[i], h.events[j])
}

// Swap implements heap.Interface
func (h *EventHeap) Swap(i, j int) {
	h.events[i], h.events[j] = h.events[j], h.events[i]
}

// Push implements heap.Interface
func (h *EventHeap) Push(x any) {
	h.events = append(h.events, x.(Event))
}

// Pop implements heap.Interface
func (h *EventHeap) Pop() any {
	old := h.events
	n := len(old)
	item := old[n-1]
	h.events = old[0 : n-1]
	return item
}

// Schedule stamps the event with the next sequence number and adds it to the heap.
func (h *EventHeap) Schedule(e Event) {
	h.nextSeq++
	e.seq = h.nextSeq
	heap.Push(h, e)
}

// PopNext removes and returns the next event. ok is false when the heap is empty.
func (h *EventHeap) PopNext() (e Event, ok bool) {
	if h.Len() == 0 {
		return Event{}, false
	}
	return heap.Pop(h).(Event), true
}

// Peek returns the next event without removing it.
func (h *EventHeap) Peek() (e Event, ok bool) {
	if h.Len() == 0 {
		return Event{}, false
	}
	return h.events[0], true
}

// Items returns the pending events in heap order (not sorted).
// The returned slice is the heap's internal storage; callers MUST NOT modify it.
func (h *EventHeap) Items() []Event {
	return h.events
}

// CountKind returns the number of pending events of the given kind.
func (h *EventHeap) CountKind(kind EventKind) int {
	n := 0
	for _, e := range h.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
