// Package result implements spec.md §4.10's analytical-result aggregator: a
// snapshot struct, recomputed at the end of each round, that the UI and any
// other consumer reads. It depends on domain/stats and domain/workload but
// nothing reaches back into it — the snapshot is pure derived data.
package result

import "time"

// SampleStats is one (sample-count, mean, variance, ...) block, computed
// either over "raw" data or over the EDM "dominant segment" (spec.md §4.10).
type SampleStats struct {
	SampleCount int
	Mean        float64
	MeanFormatted float64
	Variance    float64
	Autocorrelation float64

	RequiredSampleSize int // -1 if insufficient data to compute
	OptimalSubsessionSize int
	SubsessionVariance float64
	SubsessionAutocorrelation float64
	CIWidth float64
	CIWidthFormatted float64
}

// Extras are presentation-only enrichment fields computed with
// github.com/montanaflynn/stats; no planner or stop condition ever reads
// them, so they cannot change control-loop semantics (spec.md §4.10
// EXPANSION).
type Extras struct {
	Median float64
	Min    float64
	Max    float64
}

// PISnapshot is one PI's section of the analytical result.
type PISnapshot struct {
	Name string
	Unit string

	Raw      SampleStats
	Dominant *SampleStats // nil when change-point detection found no dominant segment

	UnitReadingRaw      SampleStats
	UnitReadingDominant *SampleStats

	UnitReadingRequiredFromHook bool // true if calc_required_unit_readings_func supplied the required size

	LastChangepoint int // -1 if none detected
}

// WPSSnapshot is the WPS regression section (spec.md §4.10's "WPS section").
type WPSSnapshot struct {
	HasData bool

	HarmonicMean float64
	NaiveVError  float64 // not computed by Compute; always 0

	Alpha float64
	V     float64
	VCI   float64
	H     int

	Err        float64 // SSR
	ErrPercent float64 // SSR%
}

// Snapshot is the full analytical result (spec.md §4.10).
type Snapshot struct {
	PIs []PISnapshot
	WPS WPSSnapshot

	PIExtras []Extras

	NumPI          int
	NumRounds      int
	SessionDuration time.Duration
}
