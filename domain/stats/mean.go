// Package stats implements pilot's statistics engine: mean accumulators,
// subsession statistics, the optimal sample-size calculator, change-point
// detection, WPS linear regression and hypothesis-test utilities (spec.md
// §4.1-§4.6). It is the CORE of the specification and imports nothing from
// domain/workload, domain/planner or domain/session — those build on top of
// it, never the other way around.
package stats

import "gonum.org/v1/gonum/stat"

// MeanMethod selects the accumulator used to aggregate a sample.
type MeanMethod int

const (
	// Arithmetic mean: sum(x) / n.
	Arithmetic MeanMethod = iota
	// Harmonic mean: n / sum(1/x). Requires every sample > 0; behavior is
	// undefined (caller's responsibility, spec.md §4.1) otherwise.
	Harmonic
)

// Mean aggregates x under the given method.
func Mean(x []float64, method MeanMethod) float64 {
	switch method {
	case Harmonic:
		return harmonicMean(x)
	default:
		return stat.Mean(x, nil)
	}
}

func harmonicMean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sumInv float64
	for _, v := range x {
		sumInv += 1 / v
	}
	return float64(len(x)) / sumInv
}
