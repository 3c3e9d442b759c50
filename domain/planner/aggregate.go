package planner

import (
	"pilot/domain/result"
	"pilot/domain/workload"
)

// Aggregate implements spec.md §4.8's aggregation: need = OR of planners'
// needs; work_amount = min(work_amount_limit, max(each planner's proposed
// amount)). If c has a NextRoundWorkAmountHook set, it replaces this
// aggregation entirely (spec.md §4.8's "User overrides").
func Aggregate(c *workload.Container, snap *result.Snapshot, planners []Planner) (needMore bool, workAmount uint64) {
	if hook := c.NextRoundWorkAmountHook(); hook != nil {
		amount := hook(c)
		return amount > 0, clampToLimit(c, amount)
	}

	var maxProposed uint64
	for _, p := range planners {
		need, proposed := p.Evaluate(c, snap)
		if need {
			needMore = true
		}
		if proposed > maxProposed {
			maxProposed = proposed
		}
	}
	return needMore, clampToLimit(c, maxProposed)
}

func clampToLimit(c *workload.Container, amount uint64) uint64 {
	limit := c.Config().WorkAmountLimit
	if limit > 0 && amount > limit {
		return limit
	}
	return amount
}
