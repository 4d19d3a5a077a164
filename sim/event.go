package sim

import "fmt"

// EventKind is the closed set of clinic events.
type EventKind int

const (
	EventEndOfExam EventKind = iota
	EventArrival
	EventClose
)

// EventKindPriority defines ordering for simultaneous events.
// Lower values are processed first: a room freed at time T is visible to an
// arrival at T, and an arrival at T is still admitted when the clinic closes at T.
var EventKindPriority = map[EventKind]int{
	EventEndOfExam: 0,
	EventArrival:   1,
	EventClose:     2,
}

// Priority returns the tie-break priority of the kind. Panics on an unknown kind.
func (k EventKind) Priority() int {
	p, ok := EventKindPriority[k]
	if !ok {
		panic(fmt.Sprintf("unknown event kind %d", int(k)))
	}
	return p
}

func (k EventKind) String() string {
	switch k {
	case EventEndOfExam:
		return "EndOfExam"
	case EventArrival:
		return "Arrival"
	case EventClose:
		return "Close"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a scheduled occurrence in simulated time (hours).
// PatientID is meaningful for Arrival events and RoomID for EndOfExam events;
// the unused reference is -1.
type Event struct {
	Kind      EventKind
	Time      float64
	PatientID int
	RoomID    int

	seq uint64 // assigned by EventHeap.Schedule
}

// NewArrivalEvent creates the arrival of patient `patientID` at time t.
func NewArrivalEvent(t float64, patientID int) Event {
	return Event{Kind: EventArrival, Time: t, PatientID: patientID, RoomID: -1}
}

// NewEndOfExamEvent creates the end of the exam in room `roomID` at time t.
func NewEndOfExamEvent(t float64, roomID int) Event {
	return Event{Kind: EventEndOfExam, Time: t, PatientID: -1, RoomID: roomID}
}

// NewCloseEvent creates the event that stops admissions at time t.
func NewCloseEvent(t float64) Event {
	return Event{Kind: EventClose, Time: t, PatientID: -1, RoomID: -1}
}

// Seq returns the scheduling sequence number (0 until scheduled).
func (e Event) Seq() uint64 {
	return e.seq
}

func (e Event) String() string {
	switch e.Kind {
	case EventArrival:
		return fmt.Sprintf("%s(t=%g, patient=%d)", e.Kind, e.Time, e.PatientID)
	case EventEndOfExam:
		return fmt.Sprintf("%s(t=%g, room=%d)", e.Kind, e.Time, e.RoomID)
	default:
		return fmt.Sprintf("%s(t=%g)", e.Kind, e.Time)
	}
}

// Less reports whether a must be processed before b.
// Order by: time → kind priority → scheduling sequence.
func Less(a, b Event) bool {
	if a.Time != b.Time {
		return a.Time < b.Time
	}
	pa, pb := a.Kind.Priority(), b.Kind.Priority()
	if pa != pb {
		return pa < pb
	}
	return a.seq < b.seq
}
