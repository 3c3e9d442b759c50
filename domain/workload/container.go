// Package workload implements spec.md §4.7's workload container: per-PI
// readings and per-round unit-readings storage, PI metadata, baseline data,
// and the workload-user callback registry. It owns round records
// exclusively (spec.md §3's ownership rule) and never runs the session
// loop itself — that belongs to domain/session, which holds a *Container.
package workload

import (
	"sync/atomic"
	"time"

	"pilot/domain/core"
	"pilot/domain/stats"
	pilerr "pilot/internal/errors"
)

// edmDominantSegmentMinSize and edmSignificance are the defaults for the
// EDM-mode warm-up removal's dominant-segment search (spec.md §4.4 names
// min_size=30 as its own default, distinct from MinSampleSize's 200).
// edmDegree picks the energy-statistic's distance exponent; the spec leaves
// both significance level and degree unspecified, so these are fixed
// constants rather than exposed knobs.
const (
	edmDominantSegmentMinSize = 30
	edmSignificance           = 0.05
	edmDegree                 = 2
)

// Container is a workload created by create(name) (spec.md §4.7). Its zero
// value is not usable; use NewContainer.
type Container struct {
	id   core.WorkloadID
	name string

	numPI int
	pis   []PIDescriptor

	workloadFunc Func
	workloadData any

	config Config

	baselines map[baselineKey]Baseline

	preHook  Hook
	postHook Hook

	calcRequiredReadings     CalcRequiredReadingsFunc
	calcRequiredUnitReadings CalcRequiredUnitReadingsFunc
	nextRoundWorkAmountHook  NextRoundWorkAmountHook

	rounds []Round

	stopRequested atomic.Bool
	startedAt     core.Timestamp
}

// NewContainer implements create(name).
func NewContainer(name string) *Container {
	return &Container{
		id:        core.NewWorkloadID(),
		name:      name,
		config:    DefaultConfig(),
		baselines: make(map[baselineKey]Baseline),
	}
}

func (c *Container) ID() core.WorkloadID { return c.id }
func (c *Container) Name() string        { return c.name }

// hasData reports whether any round has been ingested; several setters are
// programmer errors once this is true (spec.md §3: "PI count N is fixed
// once any data has been ingested").
func (c *Container) hasData() bool { return len(c.rounds) > 0 }

func (c *Container) requireNoData(op string) {
	if c.hasData() {
		panic("workload: " + op + " is not legal once a round has been ingested")
	}
}

// SetNumOfPI implements set_num_of_pi(N): only legal when no round is
// stored.
func (c *Container) SetNumOfPI(n int) {
	c.requireNoData("set_num_of_pi")
	if n < 0 {
		panic("workload: num_of_pi must be >= 0")
	}
	c.numPI = n
	c.pis = make([]PIDescriptor, n)
}

func (c *Container) NumPI() int { return c.numPI }

func (c *Container) checkPIID(p core.PIID) {
	if int(p) < 0 || int(p) >= c.numPI {
		panic("workload: PI index out of range")
	}
}

// SetPIInfo implements set_pi_info. Immutable after the first round is
// ingested.
func (c *Container) SetPIInfo(p core.PIID, desc PIDescriptor) {
	c.requireNoData("set_pi_info")
	c.checkPIID(p)
	c.pis[p] = desc
}

// PI returns the descriptor for PI p. Panics on an out-of-range index —
// a programmer error per spec.md §7 taxonomy (a).
func (c *Container) PI(p core.PIID) PIDescriptor {
	c.checkPIID(p)
	return c.pis[p]
}

func (c *Container) SetWorkloadFunc(fn Func)   { c.workloadFunc = fn }
func (c *Container) WorkloadFunc() Func        { return c.workloadFunc }
func (c *Container) SetWorkloadData(data any)  { c.workloadData = data }
func (c *Container) WorkloadData() any         { return c.workloadData }

// SetConfig validates and installs cfg. Returns ERR_WRONG_PARAM on
// validation failure (spec.md §7 taxonomy (b)).
func (c *Container) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.config = cfg
	return nil
}

func (c *Container) Config() Config { return c.config }

func (c *Container) SetInitWorkAmount(v uint64)  { c.config.InitWorkAmount = v }
func (c *Container) SetWorkAmountLimit(v uint64) { c.config.WorkAmountLimit = v }
func (c *Container) SetShortWorkloadCheck(b bool) { c.config.ShortWorkloadCheck = b }

func (c *Container) SetShortRoundDetectionThreshold(d time.Duration) {
	c.config.ShortRoundThreshold = d
}

// SetRequiredConfidenceInterval implements spec.md §4.7's
// set_required_confidence_interval(fraction_of_mean, absolute): at least one
// of the two must be non-negative. When both are, the fraction-of-mean
// value is the one used (see Config.RequiredCIWidth).
func (c *Container) SetRequiredConfidenceInterval(fractionOfMean, absolute float64) error {
	if fractionOfMean < 0 && absolute < 0 {
		return pilerr.Code(pilerr.WrongParam)
	}
	c.config.RequiredCIFractionOfMean = fractionOfMean
	c.config.RequiredCIAbsolute = absolute
	return nil
}

func (c *Container) SetAutocorrelationCoefficient(v float64) error {
	if v <= 0 || v > 1 {
		return pilerr.Code(pilerr.WrongParam)
	}
	c.config.AutocorrelationLimit = v
	return nil
}

func (c *Container) SetWarmUpRemovalMethod(m WarmUpMethod) { c.config.WarmUpMethod = m }

func (c *Container) SetWarmUpRemovalPercentage(p float64) error {
	if p < 0 || p > 1 {
		return pilerr.Code(pilerr.WrongParam)
	}
	c.config.WarmUpPercentage = p
	return nil
}

func (c *Container) SetSessionDesiredDuration(d time.Duration) { c.config.SessionDesiredDuration = d }
func (c *Container) SetSessionDurationLimit(d time.Duration)   { c.config.SessionDurationLimit = d }

func (c *Container) SetMinSampleSize(n int) error {
	if n < 1 {
		return pilerr.Code(pilerr.WrongParam)
	}
	c.config.MinSampleSize = n
	return nil
}

func (c *Container) SetWPSAnalysis(enabled, mustSatisfy bool) {
	c.config.WPSEnabled = enabled
	c.config.WPSMustSatisfy = mustSatisfy
}

// SetBaseline implements set_baseline(piid, rt, mean, n, variance).
func (c *Container) SetBaseline(piid core.PIID, rt ReadingType, mean float64, n int, variance float64) error {
	c.checkPIID(piid)
	c.baselines[baselineKey{piid, rt}] = Baseline{PIID: piid, ReadingType: rt, Mean: mean, N: n, Variance: variance}
	return nil
}

// Baseline returns the recorded baseline for (piid, rt), if any.
func (c *Container) Baseline(piid core.PIID, rt ReadingType) (Baseline, bool) {
	b, ok := c.baselines[baselineKey{piid, rt}]
	return b, ok
}

func (c *Container) SetHook(kind HookKind, fn Hook) {
	switch kind {
	case HookPreWorkloadRun:
		c.preHook = fn
	case HookPostWorkloadRun:
		c.postHook = fn
	default:
		panic("workload: unknown hook kind")
	}
}

func (c *Container) PreHook() Hook  { return c.preHook }
func (c *Container) PostHook() Hook { return c.postHook }

func (c *Container) SetCalcRequiredReadingsFunc(fn CalcRequiredReadingsFunc) {
	c.calcRequiredReadings = fn
}
func (c *Container) SetCalcRequiredUnitReadingsFunc(fn CalcRequiredUnitReadingsFunc) {
	c.calcRequiredUnitReadings = fn
}
func (c *Container) SetNextRoundWorkAmountHook(fn NextRoundWorkAmountHook) {
	c.nextRoundWorkAmountHook = fn
}

func (c *Container) CalcRequiredReadingsFunc() CalcRequiredReadingsFunc {
	return c.calcRequiredReadings
}
func (c *Container) CalcRequiredUnitReadingsFunc() CalcRequiredUnitReadingsFunc {
	return c.calcRequiredUnitReadings
}
func (c *Container) NextRoundWorkAmountHook() NextRoundWorkAmountHook {
	return c.nextRoundWorkAmountHook
}

// RequestStop implements stop_workload(): asynchronous, observed at round
// boundaries (spec.md §4.9 step 9, §5).
func (c *Container) RequestStop() { c.stopRequested.Store(true) }

// StopRequested reports whether RequestStop has been called.
func (c *Container) StopRequested() bool { return c.stopRequested.Load() }

// Rounds returns all stored round records, in round-ID order.
func (c *Container) Rounds() []Round { return c.rounds }

// NonRejectedRounds returns the rounds that statistics use, i.e. every
// round except the rejected ones spec.md §3's invariant excludes.
func (c *Container) NonRejectedRounds() []Round {
	out := make([]Round, 0, len(c.rounds))
	for _, r := range c.rounds {
		if !r.Rejected {
			out = append(out, r)
		}
	}
	return out
}

func (c *Container) MarkStarted() {
	if c.startedAt.IsZero() {
		c.startedAt = core.Now()
	}
}

func (c *Container) SessionDuration() time.Duration {
	if c.startedAt.IsZero() {
		return 0
	}
	return core.Now().Sub(c.startedAt)
}

// IngestRound validates and stores one round's data, applying the
// short-round rejection rule and warm-up removal (spec.md §4.9 steps 5-6).
// It assigns the next strictly-monotonic RoundID.
func (c *Container) IngestRound(workAmount uint64, durationNanos int64, readings []float64, unitReadings [][]float64) (*Round, error) {
	if len(readings) != c.numPI || len(unitReadings) != c.numPI {
		return nil, pilerr.Code(pilerr.WLFail)
	}
	if durationNanos <= 0 {
		return nil, pilerr.Code(pilerr.WLFail)
	}
	if c.config.WPSEnabled && workAmount == 0 {
		return nil, pilerr.Code(pilerr.WLFail)
	}

	r := Round{
		ID:            core.RoundID(len(c.rounds)),
		WorkAmount:    workAmount,
		DurationNanos: durationNanos,
		Readings:      readings,
		UnitReadings:  unitReadings,
		WarmupBegin:   make([]int, c.numPI),
		WarmupEnd:     make([]int, c.numPI),
	}
	if c.config.ShortWorkloadCheck && r.durationTooShort(int64(c.config.ShortRoundThreshold)) {
		r.Rejected = true
	}

	c.applyWarmupRemoval(&r)
	c.rounds = append(c.rounds, r)
	return &c.rounds[len(c.rounds)-1], nil
}

// ImportBenchmarkResults implements import_benchmark_results: overwrite the
// round if `round` already exists, else append (spec.md §4.7).
func (c *Container) ImportBenchmarkResults(round core.RoundID, workAmount uint64, durationNanos int64, readings []float64, unitReadings [][]float64) error {
	if len(readings) != c.numPI || len(unitReadings) != c.numPI {
		return pilerr.Code(pilerr.WrongParam)
	}
	r := Round{
		ID:            round,
		WorkAmount:    workAmount,
		DurationNanos: durationNanos,
		Readings:      readings,
		UnitReadings:  unitReadings,
		WarmupBegin:   make([]int, c.numPI),
		WarmupEnd:     make([]int, c.numPI),
	}
	c.applyWarmupRemoval(&r)

	if int(round) == len(c.rounds) {
		c.rounds = append(c.rounds, r)
		return nil
	}
	if int(round) < 0 || int(round) > len(c.rounds) {
		return pilerr.Code(pilerr.WrongParam)
	}
	c.rounds[round] = r
	return nil
}

// applyWarmupRemoval fills in r.WarmupBegin/End for every PI per the
// container's configured WarmUpMethod (spec.md §4.4).
func (c *Container) applyWarmupRemoval(r *Round) {
	for p := 0; p < c.numPI; p++ {
		ur := r.UnitReadings[p]
		n := len(ur)
		switch c.config.WarmUpMethod {
		case WarmUpFixedPercentage:
			begin := int(c.config.WarmUpPercentage * float64(n))
			r.WarmupBegin[p] = begin
			r.WarmupEnd[p] = n
		case WarmUpEDM:
			begin, end, err := stats.FindDominantSegment(ur, edmDominantSegmentMinSize, edmSignificance, edmDegree)
			if err != nil {
				r.WarmupBegin[p] = 0
				r.WarmupEnd[p] = n
				continue
			}
			r.WarmupBegin[p] = begin
			r.WarmupEnd[p] = end
		default:
			r.WarmupBegin[p] = 0
			r.WarmupEnd[p] = n
		}
	}
}

// WarmedUpUnitReadings returns PI p's unit readings across all non-rejected
// rounds, with each round's warm-up prefix stripped.
func (c *Container) WarmedUpUnitReadings(p core.PIID) []float64 {
	c.checkPIID(p)
	var out []float64
	for _, r := range c.rounds {
		if r.Rejected {
			continue
		}
		ur := r.UnitReadings[p]
		begin, end := r.WarmupBegin[p], r.WarmupEnd[p]
		if begin < 0 || end > len(ur) || begin > end {
			begin, end = 0, len(ur)
		}
		out = append(out, ur[begin:end]...)
	}
	return out
}

// Readings returns PI p's per-round reading across all non-rejected rounds.
func (c *Container) Readings(p core.PIID) []float64 {
	c.checkPIID(p)
	var out []float64
	for _, r := range c.rounds {
		if r.Rejected {
			continue
		}
		out = append(out, r.Readings[p])
	}
	return out
}

// Destroy drops all state (spec.md §4.7's destroy). The emptied Container
// that results must not be reused; let it be garbage collected.
func (c *Container) Destroy() {
	c.rounds = nil
	c.baselines = nil
	c.numPI = 0
	c.pis = nil
	c.workloadFunc = nil
	c.workloadData = nil
	c.preHook, c.postHook = nil, nil
	c.calcRequiredReadings = nil
	c.calcRequiredUnitReadings = nil
	c.nextRoundWorkAmountHook = nil
}
