package planner

import (
	"math"

	"pilot/domain/core"
	"pilot/domain/result"
	"pilot/domain/workload"
)

// UnitReadingsCIPlanner implements spec.md §4.8's unit_readings_ci row: any
// PI with unit_reading_must_satisfy that has too wide a CI or too few
// post-warmup unit readings needs more rounds, extrapolated from the
// observed unit-readings-per-work-unit rate.
type UnitReadingsCIPlanner struct{}

func (UnitReadingsCIPlanner) Name() string { return "unit_readings_ci" }

func (UnitReadingsCIPlanner) Evaluate(c *workload.Container, snap *result.Snapshot) (bool, uint64) {
	if snap == nil {
		return true, c.Config().InitWorkAmount
	}

	var deficit int
	for p := 0; p < c.NumPI(); p++ {
		pi := c.PI(core.PIID(p))
		if !pi.UnitReadingMustSatisfy {
			continue
		}
		ur := snap.PIs[p].UnitReadingRaw
		requiredCIWidth := c.Config().RequiredCIWidth(ur.Mean)
		if !needsMoreSamples(ur, requiredCIWidth) {
			continue
		}
		if d := ur.RequiredSampleSize - ur.SampleCount; d > deficit {
			deficit = d
		}
	}
	if deficit <= 0 {
		return false, 0
	}

	rate := unitReadingsPerWorkUnit(c)
	if rate <= 0 {
		return true, doubled(lastWorkAmount(c))
	}
	proposed := uint64(math.Ceil(float64(deficit) / rate))
	if proposed == 0 {
		proposed = 1
	}
	return true, proposed
}

func unitReadingsPerWorkUnit(c *workload.Container) float64 {
	rounds := c.NonRejectedRounds()
	if len(rounds) == 0 {
		return 0
	}
	last := rounds[len(rounds)-1]
	if last.WorkAmount == 0 {
		return 0
	}
	var total int
	for _, ur := range last.UnitReadings {
		total += len(ur)
	}
	return float64(total) / float64(last.WorkAmount)
}

func lastWorkAmount(c *workload.Container) uint64 {
	rounds := c.Rounds()
	if len(rounds) == 0 {
		return c.Config().InitWorkAmount
	}
	return rounds[len(rounds)-1].WorkAmount
}
