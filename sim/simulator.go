// sim/simulator.go
package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/clinic-sim/sim/trace"
)

// EventObserver is invoked after each event handler returns.
// Observers must treat the state as read-only.
type EventObserver func(ev Event, state *ClinicState)

// Simulator is the core object that holds simulation time, clinic state and the event loop.
type Simulator struct {
	Clock  float64
	Params Parameters
	Key    SimulationKey
	// EventQueue has all pending events: arrivals, end of exams and the close
	EventQueue *EventHeap
	State      *ClinicState
	// Patients is the patient table, indexed by Patient.ID
	Patients []*Patient
	Trace    *trace.SimulationTrace // nil when tracing is disabled
	Metrics  *Metrics               // set by Run

	EventsProcessed int

	traceConfig trace.TraceConfig
	rng         *PartitionedRNG
	lastArrival float64
	observer    EventObserver
	initialized bool
	finished    bool
}

// NewSimulator validates the parameters and returns a simulator ready to Run.
func NewSimulator(params Parameters, key SimulationKey, traceConfig trace.TraceConfig) (*Simulator, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid clinic parameters: %w", err)
	}
	if !trace.IsValidTraceLevel(string(traceConfig.Level)) {
		return nil, fmt.Errorf("unknown trace level %q", traceConfig.Level)
	}
	return &Simulator{
		Params:      params,
		Key:         key,
		traceConfig: traceConfig,
	}, nil
}

// SetObserver installs fn to be called after every processed event.
func (sim *Simulator) SetObserver(fn EventObserver) {
	sim.observer = fn
}

// Initialize resets all run state, then schedules the Close event at HoursOpen
// and the first Arrival.
func (sim *Simulator) Initialize() {
	sim.Clock = 0
	sim.EventQueue = NewEventHeap()
	sim.State = NewClinicState(sim.Params.NExamRooms)
	sim.Patients = make([]*Patient, 0)
	sim.Metrics = nil
	sim.EventsProcessed = 0
	sim.lastArrival = 0
	sim.rng = NewPartitionedRNG(sim.Key)
	sim.Trace = nil
	if sim.traceConfig.Enabled() {
		sim.Trace = trace.NewSimulationTrace(sim.traceConfig)
	}
	sim.initialized = true
	sim.finished = false

	sim.Schedule(NewCloseEvent(sim.Params.HoursOpen))
	sim.tracef(trace.KindCloseScheduled, -1, -1, "Clinic will close at time %s.", sim.fmtTime(sim.Params.HoursOpen))
	sim.scheduleNextArrival()
}

// Schedule pushes an event into the simulator's EventQueue.
// Events in the past, at a negative time or at NaN are invariant violations.
func (sim *Simulator) Schedule(ev Event) {
	if !sim.initialized {
		panic("Schedule called before Initialize")
	}
	if math.IsNaN(ev.Time) || ev.Time < 0 {
		panic(fmt.Sprintf("cannot schedule %s: invalid time", ev))
	}
	if ev.Time < sim.Clock {
		panic(fmt.Sprintf("cannot schedule %s before clock %v", ev, sim.Clock))
	}
	sim.EventQueue.Schedule(ev)
}

// Step processes the next pending event. It returns false when no event is left.
func (sim *Simulator) Step() bool {
	if !sim.initialized {
		sim.Initialize()
	}
	ev, ok := sim.EventQueue.PopNext()
	if !ok {
		return false
	}
	if ev.Time < sim.Clock {
		panic(fmt.Sprintf("Clock went backwards: %v < %v", ev.Time, sim.Clock))
	}
	sim.State.advance(ev.Time)
	sim.Clock = ev.Time
	sim.EventsProcessed++
	logrus.Debugf("[t=%010.4f] Executing %s", sim.Clock, ev)

	sim.dispatch(ev)

	if sim.observer != nil {
		sim.observer(ev, sim.State)
	}
	return true
}

// Run processes events until the queue is empty and returns the run statistics.
// A finished simulator is re-initialized, so calling Run twice repeats the same run.
func (sim *Simulator) Run() *Metrics {
	if !sim.initialized || sim.finished {
		sim.Initialize()
	}
	for sim.Step() {
	}
	sim.finished = true

	if busy, waiting := sim.State.BusyRooms(), sim.State.WaitQ.Len(); busy > 0 || waiting > 0 {
		panic(fmt.Sprintf("run ended with %d busy rooms and %d waiting patients", busy, waiting))
	}

	sim.Metrics = ComputeMetrics(sim)
	logrus.Infof("[t=%.4f] Simulation ended after %d events: %d admitted, %d served, %d turned away",
		sim.Clock, sim.EventsProcessed, sim.State.PatientsAdmitted, sim.State.PatientsServed, sim.State.PatientsTurnedAway)
	return sim.Metrics
}

func (sim *Simulator) dispatch(ev Event) {
	switch ev.Kind {
	case EventArrival:
		sim.handleArrival(ev)
	case EventEndOfExam:
		sim.handleEndOfExam(ev)
	case EventClose:
		sim.handleClose(ev)
	default:
		panic(fmt.Sprintf("unknown event kind %d", int(ev.Kind)))
	}
}

// Event handlers

func (sim *Simulator) handleArrival(ev Event) {
	p := sim.patient(ev.PatientID)
	if ev.Time != p.ArrivalTime {
		panic(fmt.Sprintf("arrival event at %v for %s, who arrives at %v", ev.Time, p, p.ArrivalTime))
	}
	if ev.Time < sim.lastArrival {
		panic(fmt.Sprintf("arrival of %s at %v precedes previous arrival at %v", p, ev.Time, sim.lastArrival))
	}
	sim.lastArrival = ev.Time

	if !sim.State.AdmissionsOpen {
		sim.State.PatientsTurnedAway++
		sim.tracef(trace.KindTurnedAway, p.ID, -1, "%s turned away at time %s: clinic is closed.", p, sim.fmtTime(ev.Time))
		return
	}

	sim.State.PatientsAdmitted++
	sim.tracef(trace.KindAdmitted, p.ID, -1, "%s arrived at time %s.", p, sim.fmtTime(ev.Time))

	if room, ok := sim.State.FreeRoom(); ok {
		sim.startExam(p, room)
	} else {
		sim.State.enqueue(p.ID)
		sim.tracef(trace.KindQueued, p.ID, -1, "%s joined the wait queue (%d waiting).", p, sim.State.WaitQ.Len())
	}

	sim.scheduleNextArrival()
}

func (sim *Simulator) handleEndOfExam(ev Event) {
	room := sim.State.Room(ev.RoomID)
	if !room.Busy {
		panic(fmt.Sprintf("end of exam at %v for %s, which is free", ev.Time, room))
	}
	p := sim.patient(room.Release(ev.Time))
	p.Depart(ev.Time)

	sim.State.PatientsServed++
	sim.State.TotalWaitTime += p.WaitTime()
	sim.State.TotalTimeInSystem += p.TimeInSystem()
	sim.tracef(trace.KindDeparted, p.ID, room.ID, "%s left %s at time %s.", p, room, sim.fmtTime(ev.Time))

	if next, ok := sim.State.WaitQ.Dequeue(); ok {
		sim.startExam(sim.patient(next), room)
	}
}

func (sim *Simulator) handleClose(ev Event) {
	sim.State.close(ev.Time)
	logrus.Infof("[t=%.4f] Clinic closed to new patients: %d in exam, %d waiting",
		ev.Time, sim.State.BusyRooms(), sim.State.WaitQ.Len())
	sim.tracef(trace.KindClosed, -1, -1, "Clinic closed at time %s.", sim.fmtTime(ev.Time))
}

// startExam puts p into the free room and schedules the end of its exam.
func (sim *Simulator) startExam(p *Patient, room *ExamRoom) {
	d := sim.Params.ExamTimeDist.Sample(sim.rng.ForSubsystem(SubsystemExams))
	checkDuration("exam duration", d)

	p.StartService(sim.Clock, room.ID)
	room.Assign(p.ID, sim.Clock, sim.Clock+d)
	sim.Schedule(NewEndOfExamEvent(room.CompletionTime, room.ID))

	sim.tracef(trace.KindExamStarted, p.ID, room.ID, "%s started exam in %s at time %s.", p, room, sim.fmtTime(sim.Clock))
	sim.tracef(trace.KindEndOfExamScheduled, p.ID, room.ID, "%s will finish service at time %s.", room, sim.fmtTime(room.CompletionTime))
}

// scheduleNextArrival creates the next patient and schedules its arrival.
func (sim *Simulator) scheduleNextArrival() {
	gap := sim.Params.ArrivalTimeDist.Sample(sim.rng.ForSubsystem(SubsystemArrivals))
	checkDuration("inter-arrival gap", gap)

	p := NewPatient(len(sim.Patients), sim.Clock+gap)
	sim.Patients = append(sim.Patients, p)
	sim.Schedule(NewArrivalEvent(p.ArrivalTime, p.ID))
	sim.tracef(trace.KindArrivalScheduled, p.ID, -1, "%s will arrive at time %s.", p, sim.fmtTime(p.ArrivalTime))
}

func (sim *Simulator) patient(id int) *Patient {
	if id < 0 || id >= len(sim.Patients) {
		panic(fmt.Sprintf("unknown patient %d (have %d)", id, len(sim.Patients)))
	}
	return sim.Patients[id]
}

// tracef records a trace message at the current clock.
func (sim *Simulator) tracef(kind trace.Kind, patientID, roomID int, format string, args ...any) {
	if sim.Trace == nil {
		return
	}
	sim.Trace.Addf(sim.Clock, kind, patientID, roomID, format, args...)
}

// fmtTime renders t with the trace's decimals, or "" when tracing is off.
func (sim *Simulator) fmtTime(t float64) string {
	if sim.Trace == nil {
		return ""
	}
	return sim.Trace.FormatTime(t)
}

func checkDuration(what string, d float64) {
	if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		panic(fmt.Sprintf("sampled %s %v is not a finite non-negative duration", what, d))
	}
}
