package sim

import "fmt"

// ExamRoom is a single-capacity server.
// A room is Busy iff it holds exactly one patient and an EndOfExam event
// for it is pending at CompletionTime.
type ExamRoom struct {
	ID             int
	Busy           bool
	PatientID      int     // -1 when free
	ServiceStart   float64 // start of the current exam
	CompletionTime float64 // scheduled end of the current exam

	BusyTime float64 // accumulated exam time over the run
	Served   int     // exams completed in this room
}

// NewExamRoom creates a free room.
func NewExamRoom(id int) *ExamRoom {
	return &ExamRoom{ID: id, PatientID: -1}
}

// Assign occupies the room with `patientID` from `now` until `completion`.
func (r *ExamRoom) Assign(patientID int, now, completion float64) {
	if r.Busy {
		panic(fmt.Sprintf("%s: assigning patient %d while busy with patient %d", r, patientID, r.PatientID))
	}
	if completion < now {
		panic(fmt.Sprintf("%s: completion %v before start %v", r, completion, now))
	}
	r.Busy = true
	r.PatientID = patientID
	r.ServiceStart = now
	r.CompletionTime = completion
}

// Release frees the room at `now` and returns the patient it held.
func (r *ExamRoom) Release(now float64) int {
	if !r.Busy {
		panic(fmt.Sprintf("%s: release of a free room at %v", r, now))
	}
	if now != r.CompletionTime {
		panic(fmt.Sprintf("%s: release at %v, exam scheduled to end at %v", r, now, r.CompletionTime))
	}
	id := r.PatientID
	r.BusyTime += now - r.ServiceStart
	r.Served++
	r.Busy = false
	r.PatientID = -1
	return id
}

func (r *ExamRoom) String() string {
	return fmt.Sprintf("Exam room %d", r.ID)
}
