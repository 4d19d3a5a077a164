// Package trace provides timestamped event-trace recording for clinic runs.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// Kind classifies a trace record.
type Kind string

const (
	KindArrivalScheduled   Kind = "arrival_scheduled"
	KindAdmitted           Kind = "admitted"
	KindQueued             Kind = "queued"
	KindTurnedAway         Kind = "turned_away"
	KindExamStarted        Kind = "exam_started"
	KindEndOfExamScheduled Kind = "end_of_exam_scheduled"
	KindDeparted           Kind = "departed"
	KindCloseScheduled     Kind = "close_scheduled"
	KindClosed             Kind = "closed"
)

// Record captures a single trace message.
type Record struct {
	Clock     float64 `json:"clock" yaml:"clock"`
	Kind      Kind    `json:"kind" yaml:"kind"`
	PatientID int     `json:"patient_id" yaml:"patient_id"` // -1 if not about a patient
	RoomID    int     `json:"room_id" yaml:"room_id"`       // -1 if not about a room
	Message   string  `json:"message" yaml:"message"`
}
