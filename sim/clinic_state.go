package sim

import "fmt"

// ClinicState holds everything the event handlers read and mutate:
// exam rooms, the wait queue, the admissions flag and run counters.
type ClinicState struct {
	Rooms          []*ExamRoom
	WaitQ          *WaitQueue
	AdmissionsOpen bool
	ClosedAt       float64 // time of the Close event; valid once AdmissionsOpen is false

	PatientsAdmitted   int
	PatientsServed     int
	PatientsTurnedAway int
	TotalWaitTime      float64 // sum of wait times of served patients
	TotalTimeInSystem  float64 // sum of arrival→departure of served patients
	PeakQueueLen       int

	queueArea   float64 // integral of queue length over time
	lastAdvance float64
}

// NewClinicState creates an open clinic with nExamRooms free rooms and an empty queue.
func NewClinicState(nExamRooms int) *ClinicState {
	rooms := make([]*ExamRoom, nExamRooms)
	for i := range rooms {
		rooms[i] = NewExamRoom(i)
	}
	return &ClinicState{
		Rooms:          rooms,
		WaitQ:          &WaitQueue{},
		AdmissionsOpen: true,
	}
}

// Room returns the room with the given index. Panics on an unknown room.
func (cs *ClinicState) Room(id int) *ExamRoom {
	if id < 0 || id >= len(cs.Rooms) {
		panic(fmt.Sprintf("unknown exam room %d (have %d)", id, len(cs.Rooms)))
	}
	return cs.Rooms[id]
}

// FreeRoom returns the lowest-index free room, if any.
func (cs *ClinicState) FreeRoom() (*ExamRoom, bool) {
	for _, r := range cs.Rooms {
		if !r.Busy {
			return r, true
		}
	}
	return nil, false
}

// BusyRooms returns the number of occupied rooms.
func (cs *ClinicState) BusyRooms() int {
	n := 0
	for _, r := range cs.Rooms {
		if r.Busy {
			n++
		}
	}
	return n
}

// AvgQueueLen returns the time-weighted mean queue length over [0, until].
func (cs *ClinicState) AvgQueueLen(until float64) float64 {
	if until <= 0 {
		return 0
	}
	return cs.queueArea / until
}

// advance integrates the queue length up to `now`. Called before each event.
func (cs *ClinicState) advance(now float64) {
	cs.queueArea += float64(cs.WaitQ.Len()) * (now - cs.lastAdvance)
	cs.lastAdvance = now
}

func (cs *ClinicState) enqueue(patientID int) {
	cs.WaitQ.Enqueue(patientID)
	if cs.WaitQ.Len() > cs.PeakQueueLen {
		cs.PeakQueueLen = cs.WaitQ.Len()
	}
}

// close stops admissions. It may happen only once.
func (cs *ClinicState) close(now float64) {
	if !cs.AdmissionsOpen {
		panic(fmt.Sprintf("clinic closed twice: at %v and at %v", cs.ClosedAt, now))
	}
	cs.AdmissionsOpen = false
	cs.ClosedAt = now
}
