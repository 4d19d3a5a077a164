package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/clinic-sim/sim"
	"github.com/inference-sim/clinic-sim/sim/trace"
)

var (
	// CLI flags for the clinic
	seed             int64   // Seed for arrivals and exam durations
	hoursOpen        float64 // Time after which no new patient is admitted
	examRooms        int     // Number of exam rooms
	meanArrivalTime  float64 // Mean inter-arrival time
	meanExamDuration float64 // Mean exam duration

	// CLI flags for the run
	configPath    string // Optional clinic.yaml
	logLevel      string // Log verbosity level
	traceLevel    string // Trace level (none, events)
	traceDecimals int    // Decimals for times in trace messages
	resultsPath   string // File to save metrics to (JSON, or YAML by extension)
	replications  int    // Number of independent runs with consecutive seeds
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "clinic-sim",
	Short: "Discrete-event simulator for urgent-care clinics",
}

// runCmd executes the simulation using parameters from the config file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the clinic simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := DefaultClinicConfig()
		if configPath != "" {
			if cfg, err = LoadClinicConfig(configPath); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		// Explicit flags win over the config file
		applyFlagOverrides(cmd.Flags().Changed, &cfg)

		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid clinic configuration: %v", err)
		}
		if replications < 1 {
			logrus.Fatalf("--replications must be >= 1, got %d", replications)
		}

		logrus.Infof("Starting simulation: hours_open=%g, exam_rooms=%d, mean_arrival=%g, mean_exam=%g, seed=%d, replications=%d",
			cfg.HoursOpen, cfg.ExamRooms, cfg.MeanArrivalTime, cfg.MeanExamDuration, cfg.Seed, replications)

		startTime := time.Now()
		if _, err := runReplications(cfg, replications, resultsPath, os.Stdout); err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Infof("Simulation complete in %s.", time.Since(startTime))
	},
}

// applyFlagOverrides copies every flag the user set onto cfg.
// changed reports whether the named flag was given on the command line.
func applyFlagOverrides(changed func(name string) bool, cfg *ClinicConfig) {
	if changed("seed") {
		cfg.Seed = seed
	}
	if changed("hours-open") {
		cfg.HoursOpen = hoursOpen
	}
	if changed("exam-rooms") {
		cfg.ExamRooms = examRooms
	}
	if changed("mean-arrival-time") {
		cfg.MeanArrivalTime = meanArrivalTime
	}
	if changed("mean-exam-duration") {
		cfg.MeanExamDuration = meanExamDuration
	}
	if changed("trace") {
		cfg.Trace = traceLevel
	}
	if changed("trace-decimals") {
		cfg.TraceDecimals = traceDecimals
	}
}

// runReplications runs n independent simulations with seeds cfg.Seed, cfg.Seed+1, ...
// and writes each trace (if enabled) and report to out.
func runReplications(cfg ClinicConfig, n int, resultsPath string, out io.Writer) ([]*sim.Metrics, error) {
	results := make([]*sim.Metrics, 0, n)
	for i := 0; i < n; i++ {
		s, err := sim.NewSimulator(cfg.Parameters(), sim.NewSimulationKey(cfg.Seed+int64(i)), cfg.TraceConfig())
		if err != nil {
			return results, err
		}
		m := s.Run()
		if s.Trace != nil {
			if err := s.Trace.Print(out); err != nil {
				return results, fmt.Errorf("writing trace: %w", err)
			}
			ts := trace.Summarize(s.Trace)
			fmt.Fprintf(out, "Trace: %d records (%d admitted, %d queued, %d turned away, %d departed)\n",
				ts.TotalRecords, ts.Admitted, ts.Queued, ts.TurnedAway, ts.Departed)
		}
		m.Print(out)
		if resultsPath != "" {
			if err := m.SaveResults(replicationPath(resultsPath, i, n)); err != nil {
				return results, err
			}
		}
		results = append(results, m)
	}
	return results, nil
}

// replicationPath returns path unchanged for a single run and inserts the
// replication index before the extension otherwise: results.json becomes results-1.json.
func replicationPath(path string, i, n int) string {
	if n == 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), i, ext)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := DefaultClinicConfig()

	runCmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "Seed for random arrivals and exam durations")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a clinic YAML config (flags override its values)")

	// Clinic configs
	runCmd.Flags().Float64Var(&hoursOpen, "hours-open", defaults.HoursOpen, "Time after which the clinic stops admitting patients")
	runCmd.Flags().IntVar(&examRooms, "exam-rooms", defaults.ExamRooms, "Number of exam rooms")
	runCmd.Flags().Float64Var(&meanArrivalTime, "mean-arrival-time", defaults.MeanArrivalTime, "Mean time between patient arrivals")
	runCmd.Flags().Float64Var(&meanExamDuration, "mean-exam-duration", defaults.MeanExamDuration, "Mean exam duration")

	// Output configs
	runCmd.Flags().StringVar(&traceLevel, "trace", defaults.Trace, "Trace level (none, events)")
	runCmd.Flags().IntVar(&traceDecimals, "trace-decimals", defaults.TraceDecimals, "Decimals for times in trace messages (>= 1)")
	runCmd.Flags().StringVar(&resultsPath, "results-path", "", "Save metrics to this file (.json, .yaml or .yml)")
	runCmd.Flags().IntVar(&replications, "replications", 1, "Number of independent runs with consecutive seeds")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
