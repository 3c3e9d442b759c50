package planner

import (
	"math"

	"pilot/domain/result"
	"pilot/domain/workload"
)

// MinDurationPlanner implements spec.md §4.8's min_duration row: the most
// recent round's duration must reach short_round_detection_threshold.
type MinDurationPlanner struct{}

func (MinDurationPlanner) Name() string { return "min_duration" }

func (MinDurationPlanner) Evaluate(c *workload.Container, _ *result.Snapshot) (bool, uint64) {
	rounds := c.Rounds()
	threshold := int64(c.Config().ShortRoundThreshold)

	if len(rounds) == 0 {
		return true, c.Config().InitWorkAmount
	}

	last := rounds[len(rounds)-1]
	if last.DurationNanos >= threshold {
		return false, 0
	}

	if last.WorkAmount == 0 {
		// No reliable w/d ratio to extrapolate from; the short-workload
		// policy (spec.md §4.9) falls back to geometric doubling.
		return true, doubled(c.Config().InitWorkAmount)
	}

	ratio := float64(last.WorkAmount) / float64(last.DurationNanos)
	proposed := uint64(math.Ceil(float64(threshold) * ratio))
	if proposed <= last.WorkAmount {
		proposed = doubled(last.WorkAmount)
	}
	return true, proposed
}

func doubled(amount uint64) uint64 {
	if amount == 0 {
		return 1
	}
	return amount * 2
}
