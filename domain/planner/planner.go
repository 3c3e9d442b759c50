// Package planner implements spec.md §4.8's five next-round planners and
// their aggregation. Each Planner is a pure function of the workload
// container and its current analytical-result snapshot.
package planner

import (
	"pilot/domain/result"
	"pilot/domain/workload"
)

// Planner proposes whether another round is needed and, if so, how much
// work the next round should request.
type Planner interface {
	Name() string
	Evaluate(c *workload.Container, snap *result.Snapshot) (needMore bool, workAmount uint64)
}

// Default returns the five built-in planners in a fixed order, mirroring
// the teacher's fixed-slice stage registration (adapters/stats/stages).
func Default() []Planner {
	return []Planner{
		MinDurationPlanner{},
		ReadingsCIPlanner{},
		UnitReadingsCIPlanner{},
		WPSCIPlanner{},
		ComparisonPlanner{},
	}
}
