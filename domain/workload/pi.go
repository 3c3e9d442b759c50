package workload

import "pilot/domain/stats"

// DisplayFormatter converts a raw reading into a presentation value. It is
// used only for presentation fields in the analytical result (spec.md §6);
// it never participates in a statistical computation.
type DisplayFormatter func(raw float64) float64

// PIDescriptor describes one performance index (spec.md §3's "PI
// descriptor"). It is immutable once the first round has been ingested.
type PIDescriptor struct {
	Name   string
	Unit   string

	ReadingFormatter     DisplayFormatter
	UnitReadingFormatter DisplayFormatter

	ReadingMeanMethod   stats.MeanMethod
	UnitReadingMeanMethod stats.MeanMethod
	ReadingCIType       stats.CIType

	ReadingMustSatisfy     bool
	UnitReadingMustSatisfy bool
}

func formatOrIdentity(f DisplayFormatter, raw float64) float64 {
	if f == nil {
		return raw
	}
	return f(raw)
}
