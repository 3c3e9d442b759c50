package workload

import "pilot/domain/core"

// Round is one round record (spec.md §3's "Round record"). Warmup bounds are
// [begin, end) indices into UnitReadings for the corresponding PI, populated
// by warm-up removal (spec.md §4.4) after ingest.
type Round struct {
	ID           core.RoundID
	WorkAmount   uint64
	DurationNanos int64

	Readings     []float64   // len == NumPI
	UnitReadings [][]float64 // len == NumPI, each possibly empty

	WarmupBegin []int // len == NumPI
	WarmupEnd   []int // len == NumPI

	Rejected bool // duration below short_round_detection_threshold
}

// durationTooShort reports whether this round's duration falls under
// threshold (spec.md §3 invariant: "rounds with d_r < short_round_threshold
// are marked rejected and excluded from statistics").
func (r *Round) durationTooShort(threshold int64) bool {
	return r.DurationNanos < threshold
}
