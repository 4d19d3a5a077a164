package trace

import (
	"fmt"
	"io"
	"strconv"
)

// TraceLevel controls the verbosity of event tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEvents captures arrivals, exams, departures and closing.
	TraceLevelEvents TraceLevel = "events"
)

// DefaultDecimals is the number of decimals used for times in trace messages.
const DefaultDecimals = 2

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelEvents: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level    TraceLevel
	Decimals int // decimals for times in messages; zero or negative means DefaultDecimals
}

// Enabled reports whether the config records anything.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelEvents
}

// SimulationTrace collects trace records during a clinic run.
type SimulationTrace struct {
	Config  TraceConfig
	Records []Record
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	if config.Decimals <= 0 {
		config.Decimals = DefaultDecimals
	}
	return &SimulationTrace{
		Config:  config,
		Records: make([]Record, 0),
	}
}

// Add appends a record.
func (st *SimulationTrace) Add(record Record) {
	st.Records = append(st.Records, record)
}

// Addf formats a message and appends it as a record.
func (st *SimulationTrace) Addf(clock float64, kind Kind, patientID, roomID int, format string, args ...any) {
	st.Add(Record{
		Clock:     clock,
		Kind:      kind,
		PatientID: patientID,
		RoomID:    roomID,
		Message:   fmt.Sprintf(format, args...),
	})
}

// FormatTime renders t with the configured number of decimals.
func (st *SimulationTrace) FormatTime(t float64) string {
	return strconv.FormatFloat(t, 'f', st.Config.Decimals, 64)
}

// Messages returns the messages in recording order.
func (st *SimulationTrace) Messages() []string {
	out := make([]string, len(st.Records))
	for i, r := range st.Records {
		out[i] = r.Message
	}
	return out
}

// Print writes one message per line, prefixed by the formatted clock.
func (st *SimulationTrace) Print(w io.Writer) error {
	for _, r := range st.Records {
		if _, err := fmt.Fprintf(w, "[%s] %s\n", st.FormatTime(r.Clock), r.Message); err != nil {
			return err
		}
	}
	return nil
}
