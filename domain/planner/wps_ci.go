package planner

import (
	"pilot/domain/result"
	"pilot/domain/workload"
)

// WPSCIPlanner implements spec.md §4.8's wps_ci row: when WPS analysis is
// enabled and its v_ci exceeds what's required, push toward regression
// stability by requesting the largest work amount currently allowed.
type WPSCIPlanner struct{}

func (WPSCIPlanner) Name() string { return "wps_ci" }

func (WPSCIPlanner) Evaluate(c *workload.Container, snap *result.Snapshot) (bool, uint64) {
	cfg := c.Config()
	if !cfg.WPSEnabled || !cfg.WPSMustSatisfy || snap == nil {
		return false, 0
	}
	if !snap.WPS.HasData {
		return true, doubled(lastWorkAmount(c))
	}

	required := cfg.RequiredCIWidth(snap.WPS.V)
	if required <= 0 || snap.WPS.VCI <= required {
		return false, 0
	}

	if cfg.WorkAmountLimit > 0 {
		return true, cfg.WorkAmountLimit
	}
	return true, doubled(lastWorkAmount(c))
}
