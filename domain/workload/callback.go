package workload

import (
	"context"

	"pilot/domain/core"
)

// Result is what a workload callback returns for one round: one Reading and
// one UnitReadings slice per PI, plus the round's wall-clock duration. A
// non-nil error from the callback maps to ERR_WL_FAIL (spec.md §6).
type Result struct {
	Readings      []float64
	UnitReadings  [][]float64
	DurationNanos int64
}

// Func is the user-supplied workload callback (spec.md §6). Per spec.md
// §9's resolution of the two disagreeing original headers, this follows the
// newer `pilot/libpilot.h` signature shape, adapted to Go idiom: no
// allocator handle is threaded through since the callback simply returns
// owned Go slices and the container takes ownership of the slice headers on
// return (spec.md §9, "Ownership of callback-allocated buffers").
type Func func(ctx context.Context, round core.RoundID, workAmount uint64) (Result, error)

// HookKind selects which of the two lifecycle hooks a Func is registered
// for (spec.md §4.7's set_hook(PRE|POST, fn)).
type HookKind int

const (
	HookPreWorkloadRun HookKind = iota
	HookPostWorkloadRun
)

// Hook runs before/after a round; returning false aborts the session with
// ERR_STOPPED_BY_HOOK (spec.md §4.9 steps 1 and 7).
type Hook func(ctx context.Context, round core.RoundID) bool

// CalcRequiredReadingsFunc overrides the default per-PI required
// reading-sample-size calculation (spec.md §4.7/§4.8's
// calc_required_readings_func override).
type CalcRequiredReadingsFunc func(c *Container, pi core.PIID) int

// CalcRequiredUnitReadingsFunc is CalcRequiredReadingsFunc's unit-reading
// counterpart.
type CalcRequiredUnitReadingsFunc func(c *Container, pi core.PIID) int

// NextRoundWorkAmountHook replaces the planner aggregation entirely when
// set (spec.md §4.8's "User overrides").
type NextRoundWorkAmountHook func(c *Container) uint64
