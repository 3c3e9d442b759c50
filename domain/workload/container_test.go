package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pilot/domain/core"
)

func newTestContainer(t *testing.T) *Container {
	t.Helper()
	c := NewContainer("test-workload")
	c.SetNumOfPI(1)
	c.SetPIInfo(0, PIDescriptor{Name: "throughput", Unit: "ops/s"})
	return c
}

func TestSetNumOfPIPanicsAfterData(t *testing.T) {
	c := newTestContainer(t)
	_, err := c.IngestRound(10, int64(1e9), []float64{1}, [][]float64{{1, 2, 3}})
	require.NoError(t, err)

	assert.Panics(t, func() { c.SetNumOfPI(2) })
}

func TestSetPIInfoOutOfRangePanics(t *testing.T) {
	c := newTestContainer(t)
	assert.Panics(t, func() { c.SetPIInfo(5, PIDescriptor{}) })
}

func TestIngestRoundRejectsShortRounds(t *testing.T) {
	c := newTestContainer(t)
	c.SetShortWorkloadCheck(true)
	c.SetShortRoundDetectionThreshold(2_000_000_000) // 2s

	r, err := c.IngestRound(10, 1_000_000_000, []float64{1}, [][]float64{{1}})
	require.NoError(t, err)
	assert.True(t, r.Rejected)
	assert.Empty(t, c.NonRejectedRounds())
}

func TestIngestRoundRequiresWorkAmountWhenWPSEnabled(t *testing.T) {
	c := newTestContainer(t)
	c.SetWPSAnalysis(true, false)

	_, err := c.IngestRound(0, int64(1e9), []float64{1}, [][]float64{{1}})
	assert.Error(t, err)
}

func TestImportBenchmarkResultsAppendsOrReplaces(t *testing.T) {
	c := newTestContainer(t)
	require.NoError(t, c.ImportBenchmarkResults(0, 10, int64(1e9), []float64{42}, [][]float64{{1, 5, 10}}))
	require.Len(t, c.Rounds(), 1)

	// round == num_rounds -> append
	require.NoError(t, c.ImportBenchmarkResults(1, 20, int64(1e9), []float64{43}, [][]float64{{2, 6, 11}}))
	require.Len(t, c.Rounds(), 2)

	// round < num_rounds -> replace
	require.NoError(t, c.ImportBenchmarkResults(0, 99, int64(1e9), []float64{100}, [][]float64{{9}}))
	require.Len(t, c.Rounds(), 2)
	assert.Equal(t, uint64(99), c.Rounds()[0].WorkAmount)
}

func TestRequiredConfidenceIntervalRequiresOneActiveKnob(t *testing.T) {
	c := newTestContainer(t)
	err := c.SetRequiredConfidenceInterval(-1, -1)
	assert.Error(t, err)

	require.NoError(t, c.SetRequiredConfidenceInterval(0.1, -1))
	assert.InDelta(t, 10.0, c.Config().RequiredCIWidth(100), 1e-9)
}

func TestWarmUpFixedPercentageStripsLeadingFraction(t *testing.T) {
	c := newTestContainer(t)
	c.SetWarmUpRemovalMethod(WarmUpFixedPercentage)
	require.NoError(t, c.SetWarmUpRemovalPercentage(0.2))

	r, err := c.IngestRound(10, int64(1e9), []float64{1}, [][]float64{{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}})
	require.NoError(t, err)
	assert.Equal(t, 2, r.WarmupBegin[0])
	assert.Equal(t, 10, r.WarmupEnd[0])

	assert.Equal(t, []float64{3, 4, 5, 6, 7, 8, 9, 10}, c.WarmedUpUnitReadings(0))
}

func TestSetBaselineAndLookup(t *testing.T) {
	c := newTestContainer(t)
	require.NoError(t, c.SetBaseline(0, ReadingTypeReading, 10, 30, 2))
	b, ok := c.Baseline(0, ReadingTypeReading)
	require.True(t, ok)
	assert.Equal(t, core.PIID(0), b.PIID)
	assert.Equal(t, 10.0, b.Mean)

	_, ok = c.Baseline(0, ReadingTypeUnitReading)
	assert.False(t, ok)
}

func TestRequestStopIsObservable(t *testing.T) {
	c := newTestContainer(t)
	assert.False(t, c.StopRequested())
	c.RequestStop()
	assert.True(t, c.StopRequested())
}
