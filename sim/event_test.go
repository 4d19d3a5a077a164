package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventKind_Priority_EndOfExamBeforeArrivalBeforeClose(t *testing.T) {
	assert.Less(t, EventEndOfExam.Priority(), EventArrival.Priority())
	assert.Less(t, EventArrival.Priority(), EventClose.Priority())
}

func TestEventKind_Priority_UnknownKindPanics(t *testing.T) {
	assert.Panics(t, func() { EventKind(9).Priority() })
	assert.Equal(t, "EventKind(9)", EventKind(9).String())
}

func TestLess(t *testing.T) {
	tests := []struct {
		name string
		a, b Event
		want bool
	}{
		{"earlier time wins over priority", NewCloseEvent(1), NewEndOfExamEvent(2, 0), true},
		{"later time loses", NewEndOfExamEvent(2, 0), NewCloseEvent(1), false},
		{"end of exam before arrival at same time", NewEndOfExamEvent(4, 0), NewArrivalEvent(4, 1), true},
		{"arrival before close at same time", NewArrivalEvent(4, 1), NewCloseEvent(4), true},
		{"close after end of exam at same time", NewCloseEvent(4), NewEndOfExamEvent(4, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Less(tt.a, tt.b))
		})
	}
}

func TestEventConstructors_SetOnlyRelevantReference(t *testing.T) {
	a := NewArrivalEvent(1.5, 4)
	assert.Equal(t, Event{Kind: EventArrival, Time: 1.5, PatientID: 4, RoomID: -1}, a)

	e := NewEndOfExamEvent(2.5, 2)
	assert.Equal(t, Event{Kind: EventEndOfExam, Time: 2.5, PatientID: -1, RoomID: 2}, e)

	c := NewCloseEvent(8)
	assert.Equal(t, Event{Kind: EventClose, Time: 8, PatientID: -1, RoomID: -1}, c)

	assert.Equal(t, "Arrival(t=1.5, patient=4)", a.String())
	assert.Equal(t, "EndOfExam(t=2.5, room=2)", e.String())
	assert.Equal(t, "Close(t=8)", c.String())
}
