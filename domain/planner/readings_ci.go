package planner

import (
	"pilot/domain/core"
	"pilot/domain/result"
	"pilot/domain/workload"
)

// ReadingsCIPlanner implements spec.md §4.8's readings_ci row: any PI with
// reading_must_satisfy that has not yet met its required CI width or
// sample size needs more rounds.
type ReadingsCIPlanner struct{}

func (ReadingsCIPlanner) Name() string { return "readings_ci" }

func (ReadingsCIPlanner) Evaluate(c *workload.Container, snap *result.Snapshot) (bool, uint64) {
	if snap == nil {
		return true, c.Config().InitWorkAmount
	}
	for p := 0; p < c.NumPI(); p++ {
		pi := c.PI(core.PIID(p))
		if !pi.ReadingMustSatisfy {
			continue
		}
		raw := snap.PIs[p].Raw
		if needsMoreSamples(raw, c.Config().RequiredCIWidth(raw.Mean)) {
			return true, c.Config().InitWorkAmount
		}
	}
	return false, 0
}

func needsMoreSamples(s result.SampleStats, requiredCIWidth float64) bool {
	// Fewer than two samples give no variance, so neither a CI nor a
	// required sample size can be derived yet: keep collecting.
	if s.SampleCount < 2 {
		return true
	}
	if s.RequiredSampleSize >= 0 && s.SampleCount < s.RequiredSampleSize {
		return true
	}
	if requiredCIWidth > 0 && s.CIWidth > 0 && s.CIWidth > requiredCIWidth {
		return true
	}
	return false
}
