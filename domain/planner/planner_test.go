package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pilot/domain/result"
	"pilot/domain/workload"
)

func newTestContainer(t *testing.T) *workload.Container {
	t.Helper()
	c := workload.NewContainer("planner-test")
	c.SetNumOfPI(1)
	c.SetPIInfo(0, workload.PIDescriptor{Name: "throughput", ReadingMustSatisfy: true})
	c.SetInitWorkAmount(100)
	return c
}

func TestMinDurationPlannerRequestsFirstRound(t *testing.T) {
	c := newTestContainer(t)
	need, amount := MinDurationPlanner{}.Evaluate(c, nil)
	assert.True(t, need)
	assert.Equal(t, uint64(100), amount)
}

func TestMinDurationPlannerExtrapolatesFromLastRound(t *testing.T) {
	c := newTestContainer(t)
	c.SetShortRoundDetectionThreshold(2_000_000_000)
	_, err := c.IngestRound(100, 1_000_000_000, []float64{1}, [][]float64{{1}})
	require.NoError(t, err)

	need, amount := MinDurationPlanner{}.Evaluate(c, nil)
	assert.True(t, need)
	assert.Equal(t, uint64(200), amount)
}

func TestMinDurationPlannerSatisfiedAboveThreshold(t *testing.T) {
	c := newTestContainer(t)
	c.SetShortRoundDetectionThreshold(500_000_000)
	_, err := c.IngestRound(100, 1_000_000_000, []float64{1}, [][]float64{{1}})
	require.NoError(t, err)

	need, _ := MinDurationPlanner{}.Evaluate(c, nil)
	assert.False(t, need)
}

func TestReadingsCIPlannerNeedsMoreWhenInsufficientSamples(t *testing.T) {
	c := newTestContainer(t)
	snap := &result.Snapshot{PIs: []result.PISnapshot{{
		Raw: result.SampleStats{SampleCount: 2, RequiredSampleSize: 34, Mean: 10},
	}}}

	need, amount := ReadingsCIPlanner{}.Evaluate(c, snap)
	assert.True(t, need)
	assert.Equal(t, uint64(100), amount)
}

func TestReadingsCIPlannerSatisfied(t *testing.T) {
	c := newTestContainer(t)
	snap := &result.Snapshot{PIs: []result.PISnapshot{{
		Raw: result.SampleStats{SampleCount: 40, RequiredSampleSize: 34, Mean: 10},
	}}}

	need, _ := ReadingsCIPlanner{}.Evaluate(c, snap)
	assert.False(t, need)
}

func TestComparisonPlannerNeedsMoreWhenInconclusive(t *testing.T) {
	c := newTestContainer(t)
	require.NoError(t, c.SetBaseline(0, workload.ReadingTypeReading, 10, 30, 1))

	snap := &result.Snapshot{PIs: []result.PISnapshot{{
		Raw: result.SampleStats{SampleCount: 30, Mean: 10.05, Variance: 1},
	}}}

	need, _ := ComparisonPlanner{}.Evaluate(c, snap)
	assert.True(t, need)
}

func TestAggregateHonorsWorkAmountLimit(t *testing.T) {
	c := newTestContainer(t)
	c.SetWorkAmountLimit(50)

	planners := []Planner{MinDurationPlanner{}}
	need, amount := Aggregate(c, nil, planners)
	assert.True(t, need)
	assert.Equal(t, uint64(50), amount)
}

func TestAggregateNextRoundWorkAmountHookOverridesPlanners(t *testing.T) {
	c := newTestContainer(t)
	c.SetNextRoundWorkAmountHook(func(c *workload.Container) uint64 { return 7 })

	need, amount := Aggregate(c, nil, Default())
	assert.True(t, need)
	assert.Equal(t, uint64(7), amount)
}
