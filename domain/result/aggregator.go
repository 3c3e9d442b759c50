package result

import (
	mstats "github.com/montanaflynn/stats"

	"pilot/domain/core"
	"pilot/domain/stats"
	"pilot/domain/workload"
)

// confidenceLevel is the confidence level used throughout the analytical
// result; spec.md does not expose it as a workload-level setting and every
// literal scenario in spec.md §8 uses 0.95.
const confidenceLevel = 0.95

// dominantSegmentMinSize mirrors domain/workload's EDM warm-up default
// (spec.md §4.4's own stated default of 30).
const dominantSegmentMinSize = 30
const dominantSegmentSignificance = 0.05
const dominantSegmentDegree = 2

// Compute implements spec.md §4.10: recompute the full analytical result
// from everything currently stored in c.
func Compute(c *workload.Container) *Snapshot {
	snap := &Snapshot{
		NumPI:           c.NumPI(),
		NumRounds:       len(c.Rounds()),
		SessionDuration: c.SessionDuration(),
	}

	for p := 0; p < c.NumPI(); p++ {
		snap.PIs = append(snap.PIs, computePI(c, core.PIID(p)))
		snap.PIExtras = append(snap.PIExtras, computeExtras(c.Readings(core.PIID(p))))
	}

	snap.WPS = computeWPS(c)
	return snap
}

func computePI(c *workload.Container, p core.PIID) PISnapshot {
	desc := c.PI(p)
	out := PISnapshot{Name: desc.Name, Unit: desc.Unit, LastChangepoint: -1}

	readings := c.Readings(p)
	out.Raw = sampleStats(c, p, readings, desc.ReadingMeanMethod, desc.ReadingCIType, desc.ReadingFormatter, c.CalcRequiredReadingsFunc())

	if cps := stats.DetectChangepoints(readings, dominantSegmentSignificance, dominantSegmentDegree); len(cps) > 0 {
		out.LastChangepoint = cps[len(cps)-1]
	}
	if begin, end, err := stats.FindDominantSegment(readings, dominantSegmentMinSize, dominantSegmentSignificance, dominantSegmentDegree); err == nil {
		s := sampleStats(c, p, readings[begin:end], desc.ReadingMeanMethod, desc.ReadingCIType, desc.ReadingFormatter, c.CalcRequiredReadingsFunc())
		out.Dominant = &s
	}

	unitReadings := c.WarmedUpUnitReadings(p)
	out.UnitReadingRaw = sampleStats(c, p, unitReadings, desc.UnitReadingMeanMethod, stats.SampleMean, desc.UnitReadingFormatter, nil)
	if c.CalcRequiredUnitReadingsFunc() != nil {
		out.UnitReadingRaw.RequiredSampleSize = c.CalcRequiredUnitReadingsFunc()(c, p)
		out.UnitReadingRequiredFromHook = true
	}
	if begin, end, err := stats.FindDominantSegment(unitReadings, dominantSegmentMinSize, dominantSegmentSignificance, dominantSegmentDegree); err == nil {
		s := sampleStats(c, p, unitReadings[begin:end], desc.UnitReadingMeanMethod, stats.SampleMean, desc.UnitReadingFormatter, nil)
		out.UnitReadingDominant = &s
	}

	return out
}

func sampleStats(c *workload.Container, p core.PIID, x []float64, method stats.MeanMethod, ciType stats.CIType, fmtFn workload.DisplayFormatter, calcRequired workload.CalcRequiredReadingsFunc) SampleStats {
	out := SampleStats{SampleCount: len(x), RequiredSampleSize: -1}
	if len(x) == 0 {
		return out
	}

	out.Mean = stats.Mean(x, method)
	if fmtFn != nil {
		out.MeanFormatted = fmtFn(out.Mean)
	} else {
		out.MeanFormatted = out.Mean
	}

	q := stats.OptimalSubsessionSize(x, method, c.Config().AutocorrelationLimit)
	if q >= 1 {
		out.OptimalSubsessionSize = q
		out.SubsessionVariance = stats.Var(x, q, out.Mean, method)
		out.SubsessionAutocorrelation = stats.AutocorrelationCoefficient(x, q, method)
		if width, ok := stats.ConfidenceIntervalWidth(x, q, confidenceLevel, method, ciType); ok {
			out.CIWidth = width
			if fmtFn != nil {
				out.CIWidthFormatted = fmtFn(width)
			} else {
				out.CIWidthFormatted = width
			}
		}
	}

	if len(x) >= 2 {
		out.Variance = stats.Var(x, 1, out.Mean, method)
		out.Autocorrelation = stats.AutocorrelationCoefficient(x, 1, method)
	}

	if calcRequired != nil {
		out.RequiredSampleSize = calcRequired(c, p)
	} else if ciWidth := c.Config().RequiredCIWidth(out.Mean); ciWidth > 0 {
		if n, _, err := stats.OptimalSampleSize(x, ciWidth, confidenceLevel, method, ciType, c.Config().AutocorrelationLimit); err == nil {
			out.RequiredSampleSize = n
		}
	}

	return out
}

func computeExtras(x []float64) Extras {
	if len(x) == 0 {
		return Extras{}
	}
	median, _ := mstats.Median(x)
	min, _ := mstats.Min(x)
	max, _ := mstats.Max(x)
	return Extras{Median: median, Min: min, Max: max}
}

func computeWPS(c *workload.Container) WPSSnapshot {
	if !c.Config().WPSEnabled {
		return WPSSnapshot{}
	}

	var w []float64
	var d []int64
	for _, r := range c.NonRejectedRounds() {
		w = append(w, float64(r.WorkAmount))
		d = append(d, r.DurationNanos)
	}
	if len(w) == 0 {
		return WPSSnapshot{}
	}

	out := WPSSnapshot{HarmonicMean: stats.Mean(w, stats.Harmonic)}

	fit, err := stats.FitWPS(w, d, c.Config().AutocorrelationLimit, int64(c.Config().ShortRoundThreshold))
	if err != nil {
		return out
	}

	out.HasData = true
	out.Alpha = fit.Alpha
	out.V = fit.V
	out.VCI = fit.VCI
	out.H = fit.H
	out.Err = fit.SSR
	out.ErrPercent = fit.SSRPercent
	return out
}
