// Tracks run-wide and per-room statistics such as wait time and room utilization.

package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"
)

// runNamespace scopes run IDs generated by NewRunID.
var runNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/inference-sim/clinic-sim/runs"))

// NewRunID derives a stable run identifier from the key and parameters.
// The same configuration always yields the same ID.
func NewRunID(key SimulationKey, params Parameters) string {
	name := fmt.Sprintf("seed=%d|hours=%g|rooms=%d|arrival=%v|exam=%v",
		int64(key), params.HoursOpen, params.NExamRooms, params.ArrivalTimeDist, params.ExamTimeDist)
	return uuid.NewSHA1(runNamespace, []byte(name)).String()
}

// Metrics aggregates statistics about one clinic run for final reporting.
// Times are in simulated hours.
type Metrics struct {
	RunID string `json:"run_id" yaml:"run_id"`
	Seed  int64  `json:"seed" yaml:"seed"`

	PatientsAdmitted   int `json:"patients_admitted" yaml:"patients_admitted"`
	PatientsServed     int `json:"patients_served" yaml:"patients_served"`
	PatientsTurnedAway int `json:"patients_turned_away" yaml:"patients_turned_away"`

	MeanWaitTime     float64 `json:"mean_wait_time" yaml:"mean_wait_time"`
	MaxWaitTime      float64 `json:"max_wait_time" yaml:"max_wait_time"`
	P90WaitTime      float64 `json:"p90_wait_time" yaml:"p90_wait_time"`
	MeanTimeInSystem float64 `json:"mean_time_in_system" yaml:"mean_time_in_system"`

	TotalRoomBusyTime   float64   `json:"total_room_busy_time" yaml:"total_room_busy_time"`
	MeanRoomUtilization float64   `json:"mean_room_utilization" yaml:"mean_room_utilization"`
	RoomUtilization     []float64 `json:"room_utilization" yaml:"room_utilization"`

	AvgQueueLength  float64 `json:"avg_queue_length" yaml:"avg_queue_length"`
	PeakQueueLength int     `json:"peak_queue_length" yaml:"peak_queue_length"`

	ClosedAt     float64 `json:"closed_at" yaml:"closed_at"`
	SimEndedTime float64 `json:"sim_ended_time" yaml:"sim_ended_time"`

	WaitTimes []float64 `json:"-" yaml:"-"` // per served patient, in departure order
}

// ComputeMetrics derives the final statistics from a finished simulator.
func ComputeMetrics(sim *Simulator) *Metrics {
	st := sim.State
	m := &Metrics{
		RunID:              NewRunID(sim.Key, sim.Params),
		Seed:               int64(sim.Key),
		PatientsAdmitted:   st.PatientsAdmitted,
		PatientsServed:     st.PatientsServed,
		PatientsTurnedAway: st.PatientsTurnedAway,
		PeakQueueLength:    st.PeakQueueLen,
		ClosedAt:           st.ClosedAt,
		SimEndedTime:       sim.Clock,
		AvgQueueLength:     st.AvgQueueLen(sim.Clock),
		RoomUtilization:    make([]float64, len(st.Rooms)),
	}

	departed := make([]*Patient, 0, st.PatientsServed)
	for _, p := range sim.Patients {
		if p.Departed() {
			departed = append(departed, p)
		}
	}
	sort.SliceStable(departed, func(i, j int) bool { return departed[i].Departure < departed[j].Departure })

	m.WaitTimes = make([]float64, len(departed))
	inSystem := make([]float64, len(departed))
	for i, p := range departed {
		m.WaitTimes[i] = p.WaitTime()
		inSystem[i] = p.TimeInSystem()
	}
	if len(departed) > 0 {
		m.MeanWaitTime = stat.Mean(m.WaitTimes, nil)
		m.MaxWaitTime = floats.Max(m.WaitTimes)
		sorted := append([]float64(nil), m.WaitTimes...)
		sort.Float64s(sorted)
		m.P90WaitTime = stat.Quantile(0.9, stat.Empirical, sorted, nil)
		m.MeanTimeInSystem = stat.Mean(inSystem, nil)
	}

	for i, r := range st.Rooms {
		m.TotalRoomBusyTime += r.BusyTime
		if sim.Clock > 0 {
			m.RoomUtilization[i] = r.BusyTime / sim.Clock
		}
	}
	if sim.Clock > 0 && len(st.Rooms) > 0 {
		m.MeanRoomUtilization = m.TotalRoomBusyTime / (sim.Clock * float64(len(st.Rooms)))
	}
	return m
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Run ID               : %s\n", m.RunID)
	fmt.Fprintf(w, "Seed                 : %d\n", m.Seed)
	fmt.Fprintf(w, "Patients Admitted    : %d\n", m.PatientsAdmitted)
	fmt.Fprintf(w, "Patients Served      : %d\n", m.PatientsServed)
	fmt.Fprintf(w, "Patients Turned Away : %d\n", m.PatientsTurnedAway)
	if m.PatientsServed > 0 {
		fmt.Fprintf(w, "Mean Wait Time       : %.4f hours\n", m.MeanWaitTime)
		fmt.Fprintf(w, "P90 Wait Time        : %.4f hours\n", m.P90WaitTime)
		fmt.Fprintf(w, "Max Wait Time        : %.4f hours\n", m.MaxWaitTime)
		fmt.Fprintf(w, "Mean Time In System  : %.4f hours\n", m.MeanTimeInSystem)
	}
	fmt.Fprintf(w, "Room Busy Time       : %.4f hours\n", m.TotalRoomBusyTime)
	fmt.Fprintf(w, "Mean Utilization     : %.2f%%\n", 100*m.MeanRoomUtilization)
	for i, u := range m.RoomUtilization {
		fmt.Fprintf(w, "  Exam room %-3d      : %.2f%%\n", i, 100*u)
	}
	fmt.Fprintf(w, "Avg Queue Length     : %.4f\n", m.AvgQueueLength)
	fmt.Fprintf(w, "Peak Queue Length    : %d\n", m.PeakQueueLength)
	fmt.Fprintf(w, "Closed At            : %.4f hours\n", m.ClosedAt)
	fmt.Fprintf(w, "Simulation Ended At  : %.4f hours\n", m.SimEndedTime)
}

// SaveResults writes the metrics to path as YAML when the extension is
// .yaml or .yml, and as indented JSON otherwise.
func (m *Metrics) SaveResults(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(m)
	default:
		data, err = json.MarshalIndent(m, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encoding metrics: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
