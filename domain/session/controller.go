// Package session implements spec.md §4.9's controller / session-loop state
// machine on top of a *workload.Container. It is kept separate from
// domain/workload so the loop can depend on domain/planner and
// domain/result without either of those importing back into workload,
// avoiding a workload -> session -> workload import cycle (see DESIGN.md).
package session

import (
	"context"
	"errors"

	pilerr "pilot/internal/errors"
	"pilot/domain/core"
	"pilot/domain/pilotlog"
	"pilot/domain/planner"
	"pilot/domain/result"
	"pilot/domain/workload"
)

// maxConsecutiveRejectedRounds is spec.md §4.9 step 5's "threshold (e.g., 5
// consecutive)"; the spec names the example value directly rather than
// exposing it as a workload setting.
const maxConsecutiveRejectedRounds = 5

// State is one of the session loop's named states (spec.md §4.9).
type State int

const (
	StateFresh State = iota
	StateRunning
	StateWaitingForWorkload
	StateAnalyzingRound
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateFresh:
		return "Fresh"
	case StateRunning:
		return "Running"
	case StateWaitingForWorkload:
		return "WaitingForWorkload"
	case StateAnalyzingRound:
		return "AnalyzingRound"
	case StateStopping:
		return "Stopping"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Controller drives a *workload.Container through repeated rounds until a
// planner is satisfied or the session is stopped (spec.md §4.9). It is not
// safe for concurrent use except for the two escape hatches documented on
// workload.Container itself (RequestStop, and whatever print-message hook
// the embedding program wires up outside this package).
type Controller struct {
	container *workload.Container
	planners  []planner.Planner
	sink      pilotlog.Sink

	state                State
	consecutiveRejections int
	lastSnapshot          *result.Snapshot
}

// NewController wraps c with the default five planners (spec.md §4.8) and a
// no-op log sink. Use SetPlanners/SetSink to override either.
func NewController(c *workload.Container) *Controller {
	return &Controller{
		container: c,
		planners:  planner.Default(),
		sink:      pilotlog.NopSink{},
		state:     StateFresh,
	}
}

// SetPlanners overrides the default planner set.
func (ctl *Controller) SetPlanners(p []planner.Planner) { ctl.planners = p }

// SetSink replaces the event sink every loop iteration emits through.
func (ctl *Controller) SetSink(s pilotlog.Sink) {
	if s == nil {
		s = pilotlog.NopSink{}
	}
	ctl.sink = s
}

// State returns the controller's current state-machine state.
func (ctl *Controller) State() State { return ctl.state }

// Container exposes the wrapped workload container.
func (ctl *Controller) Container() *workload.Container { return ctl.container }

// StopWorkload requests a cooperative stop (spec.md §5): the current round
// finishes, then the loop exits with ERR_STOPPED_BY_REQUEST.
func (ctl *Controller) StopWorkload() { ctl.container.RequestStop() }

// AnalyticalResult recomputes the snapshot from everything currently stored
// in the container (spec.md §4.7's analytical_result). prev is accepted for
// API symmetry with the source's "update in place" form but is not
// otherwise consulted; Compute always derives the snapshot fresh from the
// container's stored rounds.
func (ctl *Controller) AnalyticalResult(prev *result.Snapshot) *result.Snapshot {
	_ = prev
	ctl.lastSnapshot = result.Compute(ctl.container)
	return ctl.lastSnapshot
}

// Destroy drops all state held by the controller and its container
// (spec.md §4.7's destroy).
func (ctl *Controller) Destroy() {
	ctl.container.Destroy()
	ctl.lastSnapshot = nil
	ctl.state = StateStopped
}

// RunWorkload enters the session loop (spec.md §4.9) and runs it to
// completion, synchronously, on the calling goroutine. It returns nil on a
// clean need_more=false exit, or one of the *errors.AppError session-stop
// codes otherwise (ERR_STOPPED_BY_HOOK, ERR_WL_FAIL,
// ERR_TOO_MANY_REJECTED_ROUNDS, ERR_STOPPED_BY_DURATION_LIMIT,
// ERR_STOPPED_BY_REQUEST).
func (ctl *Controller) RunWorkload(ctx context.Context) error {
	if ctl.container.WorkloadFunc() == nil {
		return pilerr.Code(pilerr.NotInit)
	}

	ctl.container.MarkStarted()
	ctl.state = StateRunning
	ctl.consecutiveRejections = 0

	for {
		if err := ctl.runOneRound(ctx); err != nil {
			if err == errNeedNoMore {
				ctl.state = StateStopped
				return nil
			}
			ctl.state = StateStopped
			return err
		}

		if ctl.container.Config().SessionDurationLimit > 0 &&
			ctl.container.SessionDuration() >= ctl.container.Config().SessionDurationLimit {
			ctl.state = StateStopped
			pilotlog.Infof(ctl.sink, nil, "session stopped: duration limit reached")
			return pilerr.Code(pilerr.StoppedByDurationLimit)
		}
		if ctl.container.StopRequested() {
			ctl.state = StateStopped
			pilotlog.Infof(ctl.sink, nil, "session stopped: stop requested")
			return pilerr.Code(pilerr.StoppedByRequest)
		}
	}
}

// errNeedNoMore is a private sentinel for "planners say no more rounds are
// needed"; it never escapes RunWorkload.
var errNeedNoMore = errors.New("need_more=false")

// runOneRound executes spec.md §4.9 steps 1-8 for a single round.
func (ctl *Controller) runOneRound(ctx context.Context) error {
	nextRound := core.RoundID(len(ctl.container.Rounds()))

	// Step 1: PRE_WORKLOAD_RUN hook.
	if hook := ctl.container.PreHook(); hook != nil {
		ctl.state = StateWaitingForWorkload
		if !hook(ctx, nextRound) {
			pilotlog.Infof(ctl.sink, map[string]interface{}{"round": nextRound}, "pre-workload hook stopped session")
			return pilerr.Code(pilerr.StoppedByHook)
		}
	}

	// Step 2: consult planners (or the user override).
	snap := ctl.lastSnapshot
	needMore, workAmount := planner.Aggregate(ctl.container, snap, ctl.planners)
	if !needMore {
		pilotlog.Infof(ctl.sink, map[string]interface{}{"round": nextRound}, "planners satisfied, stopping")
		return errNeedNoMore
	}
	if workAmount == 0 {
		workAmount = ctl.container.Config().InitWorkAmount
	}

	// Step 3: invoke the workload callback synchronously.
	ctl.state = StateWaitingForWorkload
	res, err := ctl.container.WorkloadFunc()(ctx, nextRound, workAmount)
	if err != nil {
		pilotlog.Errorf(ctl.sink, map[string]interface{}{"round": nextRound}, "workload callback failed: %v", err)
		return pilerr.Codef(pilerr.WLFail, "workload callback failed: %v", err)
	}
	// Step 4/5: a nil readings slice is treated the same as a non-zero
	// ret_code from the original C callback shape (spec.md §6).
	if res.Readings == nil {
		return pilerr.Code(pilerr.WLFail)
	}

	ctl.state = StateAnalyzingRound

	round, err := ctl.container.IngestRound(workAmount, res.DurationNanos, res.Readings, res.UnitReadings)
	if err != nil {
		return err
	}

	if round.Rejected {
		ctl.consecutiveRejections++
		pilotlog.Warnf(ctl.sink, map[string]interface{}{"round": nextRound}, "round rejected: duration below short-round threshold")
		if ctl.consecutiveRejections > maxConsecutiveRejectedRounds {
			return pilerr.Code(pilerr.TooManyRejectedRounds)
		}
	} else {
		ctl.consecutiveRejections = 0
	}

	// Step 7: POST_WORKLOAD_RUN hook.
	if hook := ctl.container.PostHook(); hook != nil {
		if !hook(ctx, nextRound) {
			pilotlog.Infof(ctl.sink, map[string]interface{}{"round": nextRound}, "post-workload hook stopped session")
			return pilerr.Code(pilerr.StoppedByHook)
		}
	}

	// Step 8: recompute the analytical result.
	ctl.lastSnapshot = result.Compute(ctl.container)
	ctl.state = StateRunning

	pilotlog.Infof(ctl.sink, map[string]interface{}{
		"round":       nextRound,
		"work_amount": workAmount,
	}, "round %d complete", nextRound)

	return nil
}
