package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inference-sim/clinic-sim/sim/trace"
)

// seqSampler returns scripted durations in order and repeats the last one.
type seqSampler struct {
	values []float64
	next   int
}

func (s *seqSampler) Sample(_ *rand.Rand) float64 {
	v := s.values[min(s.next, len(s.values)-1)]
	s.next++
	return v
}

// newScriptedSimulator builds a simulator whose gaps and exam durations are fixed.
// The samplers are stateful, so the simulator is meant for a single run.
func newScriptedSimulator(t *testing.T, hoursOpen float64, rooms int, gaps, exams []float64) *Simulator {
	t.Helper()
	params := Parameters{
		HoursOpen:       hoursOpen,
		NExamRooms:      rooms,
		ArrivalTimeDist: &seqSampler{values: gaps},
		ExamTimeDist:    &seqSampler{values: exams},
	}
	s, err := NewSimulator(params, NewSimulationKey(1), trace.TraceConfig{Level: trace.TraceLevelEvents, Decimals: 2})
	require.NoError(t, err)
	return s
}

// newSeededSimulator builds a simulator with exponential distributions.
func newSeededSimulator(t *testing.T, hoursOpen float64, rooms int, meanArrival, meanExam float64, seed int64, level trace.TraceLevel) *Simulator {
	t.Helper()
	s, err := NewSimulator(NewParameters(hoursOpen, rooms, meanArrival, meanExam), NewSimulationKey(seed),
		trace.TraceConfig{Level: level, Decimals: trace.DefaultDecimals})
	require.NoError(t, err)
	return s
}

// processed records (kind, time) of every executed event.
type processed struct {
	Kind EventKind
	Time float64
}

func recordEvents(s *Simulator) *[]processed {
	out := &[]processed{}
	s.SetObserver(func(ev Event, _ *ClinicState) {
		*out = append(*out, processed{Kind: ev.Kind, Time: ev.Time})
	})
	return out
}
