package container

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pilot/domain/core"
	"pilot/internal/config"
	"pilot/domain/workload"
)

func newTestWorkload(t *testing.T) *workload.Container {
	t.Helper()
	wc := workload.NewContainer("container-test")
	wc.SetNumOfPI(1)
	wc.SetPIInfo(0, workload.PIDescriptor{Name: "throughput"})
	wc.SetWorkAmountLimit(200)
	wc.SetWorkloadFunc(func(ctx context.Context, round core.RoundID, workAmount uint64) (workload.Result, error) {
		return workload.Result{
			Readings:      []float64{42},
			UnitReadings:  [][]float64{{1, 2, 3}},
			DurationNanos: 1_000_000_000,
		}, nil
	})
	wc.SetHook(workload.HookPostWorkloadRun, func(ctx context.Context, round core.RoundID) bool {
		return false
	})
	return wc
}

func TestNewWiresDefaultComponents(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{ExportDir: dir, LogLevel: "INFO"}

	c, err := New(cfg, newTestWorkload(t))
	require.NoError(t, err)

	assert.NotNil(t, c.Sink)
	assert.NotNil(t, c.Controller)
	assert.NotNil(t, c.Exporter)
	assert.Nil(t, c.Status)
}

func TestRunAndExportWritesFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{ExportDir: dir, LogLevel: "INFO"}

	c, err := New(cfg, newTestWorkload(t))
	require.NoError(t, err)

	_ = c.RunAndExport(context.Background())

	_, statErr := os.Stat(filepath.Join(dir, "summary.txt"))
	assert.NoError(t, statErr)
}

func TestNewLoadsBaselineFile(t *testing.T) {
	dir := t.TempDir()
	baselinePath := filepath.Join(dir, "baseline.csv")
	require.NoError(t, os.WriteFile(baselinePath, []byte("piid,reading_type,mean,sample_size,variance\n0,0,10,30,1\n"), 0o644))

	cfg := &config.Config{ExportDir: dir, LogLevel: "INFO", BaselineFile: baselinePath}

	c, err := New(cfg, newTestWorkload(t))
	require.NoError(t, err)

	b, ok := c.Workload.Baseline(0, workload.ReadingTypeReading)
	require.True(t, ok)
	assert.Equal(t, 10.0, b.Mean)
}
