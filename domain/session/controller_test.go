package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pilerr "pilot/internal/errors"
	"pilot/domain/core"
	"pilot/domain/workload"
)

func newTestContainer(t *testing.T) *workload.Container {
	t.Helper()
	c := workload.NewContainer("session-test")
	c.SetNumOfPI(1)
	c.SetPIInfo(0, workload.PIDescriptor{Name: "throughput", ReadingMustSatisfy: true})
	return c
}

// TestRunWorkloadStopsOnPostHook reproduces spec.md §8 scenario 7: a single
// round is ingested byte-identical to what the callback returned, then the
// POST_WORKLOAD_RUN hook stops the session.
func TestRunWorkloadStopsOnPostHook(t *testing.T) {
	c := newTestContainer(t)
	c.SetWorkAmountLimit(500)

	wantReadings := []float64{42}
	wantUnitReadings := [][]float64{{1, 5, 10, 20, 30, 40, 42, 42, 42}}

	c.SetWorkloadFunc(func(ctx context.Context, round core.RoundID, workAmount uint64) (workload.Result, error) {
		return workload.Result{
			Readings:      wantReadings,
			UnitReadings:  wantUnitReadings,
			DurationNanos: 1_000_000_000,
		}, nil
	})
	c.SetHook(workload.HookPostWorkloadRun, func(ctx context.Context, round core.RoundID) bool {
		return false
	})

	ctl := NewController(c)
	err := ctl.RunWorkload(context.Background())

	require.Error(t, err)
	assert.Equal(t, pilerr.StoppedByHook, pilerr.GetNumericCode(err))

	rounds := c.Rounds()
	require.Len(t, rounds, 1)
	assert.Equal(t, wantReadings, rounds[0].Readings)
	assert.Equal(t, wantUnitReadings, rounds[0].UnitReadings)
	assert.Equal(t, StateStopped, ctl.State())
}

func TestRunWorkloadFailsWithoutWorkloadFunc(t *testing.T) {
	c := newTestContainer(t)
	ctl := NewController(c)

	err := ctl.RunWorkload(context.Background())
	require.Error(t, err)
	assert.Equal(t, pilerr.NotInit, pilerr.GetNumericCode(err))
}

func TestRunWorkloadFailsOnNilReadings(t *testing.T) {
	c := newTestContainer(t)
	c.SetWorkloadFunc(func(ctx context.Context, round core.RoundID, workAmount uint64) (workload.Result, error) {
		return workload.Result{}, nil
	})

	ctl := NewController(c)
	err := ctl.RunWorkload(context.Background())
	require.Error(t, err)
	assert.Equal(t, pilerr.WLFail, pilerr.GetNumericCode(err))
}

func TestRunWorkloadStopsOnRequest(t *testing.T) {
	c := newTestContainer(t)
	c.SetWorkAmountLimit(100000)
	c.SetShortRoundDetectionThreshold(0)

	rounds := 0
	c.SetWorkloadFunc(func(ctx context.Context, round core.RoundID, workAmount uint64) (workload.Result, error) {
		rounds++
		if rounds == 2 {
			c.RequestStop()
		}
		return workload.Result{
			Readings:      []float64{float64(rounds)},
			UnitReadings:  [][]float64{{float64(rounds)}},
			DurationNanos: 1_000_000_000,
		}, nil
	})

	ctl := NewController(c)
	err := ctl.RunWorkload(context.Background())

	require.Error(t, err)
	assert.Equal(t, pilerr.StoppedByRequest, pilerr.GetNumericCode(err))
	assert.Equal(t, 2, rounds)
}

func TestRunWorkloadTooManyRejectedRounds(t *testing.T) {
	c := newTestContainer(t)
	c.SetShortWorkloadCheck(true)
	c.SetShortRoundDetectionThreshold(10_000_000_000)
	c.SetWorkAmountLimit(100000)

	c.SetWorkloadFunc(func(ctx context.Context, round core.RoundID, workAmount uint64) (workload.Result, error) {
		return workload.Result{
			Readings:      []float64{1},
			UnitReadings:  [][]float64{{1}},
			DurationNanos: 1_000_000,
		}, nil
	})

	ctl := NewController(c)
	err := ctl.RunWorkload(context.Background())

	require.Error(t, err)
	assert.Equal(t, pilerr.TooManyRejectedRounds, pilerr.GetNumericCode(err))
}
