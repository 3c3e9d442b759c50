package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pilot/domain/result"
	"pilot/domain/workload"
)

func TestWriteAllProducesExpectedFiles(t *testing.T) {
	dir := t.TempDir()

	c := workload.NewContainer("export-test")
	c.SetNumOfPI(1)
	c.SetPIInfo(0, workload.PIDescriptor{Name: "throughput"})
	_, err := c.IngestRound(100, 1_000_000_000, []float64{42}, [][]float64{{1, 5, 10}})
	require.NoError(t, err)

	snap := result.Compute(c)

	w, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, w.WriteAll(context.Background(), c, snap))

	for _, name := range []string{
		"readings.csv",
		"unit_readings_piid_0_round_0.csv",
		"summary.txt",
		"readings.xlsx",
		"summary.html",
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "expected %s to exist", name)
	}
}

func TestReadingsCSVContainsIngestedValues(t *testing.T) {
	dir := t.TempDir()

	c := workload.NewContainer("export-test")
	c.SetNumOfPI(1)
	c.SetPIInfo(0, workload.PIDescriptor{Name: "throughput"})
	_, err := c.IngestRound(100, 1_000_000_000, []float64{42}, [][]float64{{1}})
	require.NoError(t, err)

	w, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, w.writeReadingsCSV(c))

	data, err := os.ReadFile(filepath.Join(dir, "readings.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "throughput")
	assert.Contains(t, string(data), "42")
}
