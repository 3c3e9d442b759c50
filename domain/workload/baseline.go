package workload

import "pilot/domain/core"

// ReadingType distinguishes which per-PI quantity a Baseline describes
// (spec.md §6's baseline-file reading-type enum).
type ReadingType int

const (
	ReadingTypeReading ReadingType = iota
	ReadingTypeUnitReading
	ReadingTypeWPS
)

// Baseline is a recorded (mean, sample size, variance) for one (PI,
// reading-type) pair, used by the comparison planner (spec.md §3, §4.8).
type Baseline struct {
	PIID        core.PIID
	ReadingType ReadingType
	Mean        float64
	N           int
	Variance    float64
}

type baselineKey struct {
	piid core.PIID
	kind ReadingType
}
