package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFlagOverrides_OnlyChangedFlags(t *testing.T) {
	// GIVEN a config loaded from file and flag values that were partly set by the user
	cfg := DefaultClinicConfig()
	cfg.ExamRooms = 3
	cfg.Seed = 7

	examRooms, seed, hoursOpen = 9, 100, 99
	changed := map[string]bool{"exam-rooms": true, "seed": true}

	// WHEN overrides are applied
	applyFlagOverrides(func(name string) bool { return changed[name] }, &cfg)

	// THEN only the changed flags replaced file values
	assert.Equal(t, 9, cfg.ExamRooms)
	assert.Equal(t, int64(100), cfg.Seed)
	assert.Equal(t, DefaultClinicConfig().HoursOpen, cfg.HoursOpen)
}

func TestRunReplications_PrintsReportPerRun(t *testing.T) {
	// GIVEN the default clinic
	cfg := DefaultClinicConfig()

	// WHEN three replications run
	var out bytes.Buffer
	results, err := runReplications(cfg, 3, "", &out)

	// THEN three reports with consecutive seeds are produced
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, m := range results {
		assert.Equal(t, cfg.Seed+int64(i), m.Seed)
	}
	assert.Equal(t, 3, strings.Count(out.String(), "=== Simulation Metrics ==="))
	assert.NotEqual(t, results[0].RunID, results[1].RunID)
}

func TestRunReplications_SameSeedSameReport(t *testing.T) {
	cfg := DefaultClinicConfig()
	var out1, out2 bytes.Buffer
	_, err := runReplications(cfg, 1, "", &out1)
	require.NoError(t, err)
	_, err = runReplications(cfg, 1, "", &out2)
	require.NoError(t, err)
	assert.Equal(t, out1.String(), out2.String())
}

func TestRunReplications_TraceWrittenWhenEnabled(t *testing.T) {
	cfg := DefaultClinicConfig()
	cfg.Trace = "events"
	var out bytes.Buffer
	_, err := runReplications(cfg, 1, "", &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[0.00] Clinic will close at time 20.00.")
	assert.Contains(t, out.String(), "Trace: ")
}

func TestRunReplications_SavesResults(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultClinicConfig()

	_, err := runReplications(cfg, 2, filepath.Join(dir, "results.json"), &bytes.Buffer{})
	require.NoError(t, err)

	for _, name := range []string{"results-0.json", "results-1.json"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestRunReplications_InvalidConfig(t *testing.T) {
	cfg := DefaultClinicConfig()
	cfg.ExamRooms = 0
	_, err := runReplications(cfg, 1, "", &bytes.Buffer{})
	assert.ErrorContains(t, err, "invalid clinic parameters")
}

func TestReplicationPath(t *testing.T) {
	assert.Equal(t, "out/results.json", replicationPath("out/results.json", 0, 1))
	assert.Equal(t, "out/results-2.yaml", replicationPath("out/results.yaml", 2, 3))
	assert.Equal(t, "results-0", replicationPath("results", 0, 2))
}
