package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/inference-sim/clinic-sim/sim"
	"github.com/inference-sim/clinic-sim/sim/trace"
)

// ClinicConfig is the clinic.yaml structure. Every field can also be set by a CLI flag.
type ClinicConfig struct {
	HoursOpen        float64 `yaml:"hours_open"`
	ExamRooms        int     `yaml:"exam_rooms"`
	MeanArrivalTime  float64 `yaml:"mean_arrival_time"`
	MeanExamDuration float64 `yaml:"mean_exam_duration"`
	Seed             int64   `yaml:"seed"`
	Trace            string  `yaml:"trace"`
	TraceDecimals    int     `yaml:"trace_decimals"`
}

// DefaultClinicConfig returns the configuration used when neither a file nor flags set a value.
func DefaultClinicConfig() ClinicConfig {
	return ClinicConfig{
		HoursOpen:        20,
		ExamRooms:        1,
		MeanArrivalTime:  10,
		MeanExamDuration: 5,
		Seed:             42,
		Trace:            string(trace.TraceLevelNone),
		TraceDecimals:    trace.DefaultDecimals,
	}
}

// LoadClinicConfig parses a clinic YAML file on top of the defaults.
// Uses strict field checking: typos must cause errors.
func LoadClinicConfig(path string) (ClinicConfig, error) {
	cfg := DefaultClinicConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading clinic config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	// An empty or comment-only file sets nothing
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing clinic config %s: %w", path, err)
	}
	return cfg, nil
}

// Parameters converts the config into simulation parameters.
func (c ClinicConfig) Parameters() sim.Parameters {
	return sim.NewParameters(c.HoursOpen, c.ExamRooms, c.MeanArrivalTime, c.MeanExamDuration)
}

// TraceConfig converts the trace settings.
func (c ClinicConfig) TraceConfig() trace.TraceConfig {
	return trace.TraceConfig{Level: trace.TraceLevel(c.Trace), Decimals: c.TraceDecimals}
}

// Validate rejects configurations that cannot start a run.
func (c ClinicConfig) Validate() error {
	if err := c.Parameters().Validate(); err != nil {
		return err
	}
	if !trace.IsValidTraceLevel(c.Trace) {
		return fmt.Errorf("unknown trace level %q (want none or events)", c.Trace)
	}
	if c.TraceDecimals < 1 {
		return fmt.Errorf("trace decimals must be >= 1, got %d", c.TraceDecimals)
	}
	return nil
}
