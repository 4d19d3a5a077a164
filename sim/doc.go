// Package sim provides the discrete-event simulation engine for an urgent-care clinic.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - event.go: the closed set of event kinds (EndOfExam, Arrival, Close) and their tie-break order
//   - clinic_state.go: exam rooms, the wait queue, the admissions flag and counters
//   - simulator.go: the event loop and the three event handlers
//
// # Architecture
//
// A run is driven by a single Simulator. Initialize schedules the Close event at
// HoursOpen and the first Arrival; Run pops events from the EventHeap in
// (time, kind priority, sequence) order until the heap is empty. Handlers mutate
// ClinicState and schedule follow-up events. After Close no patient is admitted;
// patients already in a room or in the queue drain through the EndOfExam chain.
//
// All randomness flows through a PartitionedRNG owned by the Simulator, with
// independent streams for inter-arrival gaps and exam durations. Two simulators
// built from the same Parameters and SimulationKey produce identical results.
//
// Sub-packages:
//   - sim/trace/: timestamped trace records for arrivals, exams and closing
package sim
