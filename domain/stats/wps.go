package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"

	pilerr "pilot/internal/errors"
)

// WPSResult is the fitted work-per-second model (spec.md §4.5): duration in
// seconds as a linear function of work amount, t = alpha + w/v.
type WPSResult struct {
	Alpha      float64 // seconds
	V          float64 // work units per second
	VCI        float64 // full width of the CI of v (per spec.md, "v_ci")
	SSR        float64 // sum of squared residuals, seconds^2, over filtered raw rounds
	SSRPercent float64 // sqrt(SSR) / total duration (seconds)
	H          int     // subsession sample size used for the fit
	Q          int     // subsession size (rounds grouped per point)
}

// FitWPS implements spec.md §4.5. w and durationNanos are parallel,
// same-length per-round arrays (work amount, round duration in nanoseconds);
// their length is n_raw. rhoMax is the autocorrelation coefficient limit and
// thresholdNanos is the short-round duration threshold.
//
// Deviation from the original pilot-tool implementation (documented in
// DESIGN.md): the reference C++ computes the raw-round SSR and the grouping
// loop by indexing the *filtered* work/duration vectors with the *unfiltered*
// round count, which over-reads whenever any round was filtered out. Here the
// residual sum and the subsession grouping both operate on the filtered
// arrays only ("raw rounds" in spec.md §4.5 step 5 is read as "ungrouped
// filtered rounds", contrasted with "subsession-grouped"); the (n_raw-1)
// scaling of Var(w) in step 6 is kept exactly as specified.
func FitWPS(w []float64, durationNanos []int64, rhoMax float64, thresholdNanos int64) (*WPSResult, error) {
	nRaw := len(w)

	var wf []float64
	var df []int64
	for i := range w {
		if durationNanos[i] > thresholdNanos {
			wf = append(wf, w[i])
			df = append(df, durationNanos[i])
		}
	}
	if len(wf) < 3 {
		return nil, pilerr.Code(pilerr.NotEnoughData)
	}

	naiveV := make([]float64, len(wf))
	for i := range wf {
		naiveV[i] = wf[i] / float64(df[i])
	}
	q := OptimalSubsessionSize(naiveV, Harmonic, rhoMax)
	if q < 1 {
		return nil, pilerr.Code(pilerr.NotEnoughData)
	}

	h := len(wf) / q
	if h < 3 {
		return nil, pilerr.Code(pilerr.NotEnoughData)
	}

	groupedW := make([]float64, h)
	groupedDSec := make([]float64, h)
	for i := 0; i < h; i++ {
		var sumW float64
		var sumD int64
		for j := i * q; j < (i+1)*q; j++ {
			sumW += wf[j]
			sumD += df[j]
		}
		groupedW[i] = sumW
		groupedDSec[i] = float64(sumD) / 1e9
	}

	m := stat.Covariance(groupedW, groupedDSec, nil) / stat.Variance(groupedW, nil)
	alpha := stat.Mean(groupedDSec, nil) - m*stat.Mean(groupedW, nil)
	v := 1 / m

	var subSessionSSR float64
	for i := 0; i < h; i++ {
		resid := alpha + m*groupedW[i] - groupedDSec[i]
		subSessionSSR += resid * resid
	}

	var ssr, durSum float64
	for i := range wf {
		dSec := float64(df[i]) / 1e9
		resid := alpha + m*wf[i] - dSec
		ssr += resid * resid
		durSum += dSec
	}
	ssrPercent := math.Sqrt(ssr) / durSum

	sigmaSqr := subSessionSSR / float64(h-2)
	waMean := Mean(wf, Arithmetic)
	sumVar := Var(wf, q, waMean, Arithmetic) * float64(nRaw-1)
	stdErrM := math.Sqrt(sigmaSqr / sumVar)
	vCI := math.Abs(1/(m-2*stdErrM) - 1/(m+2*stdErrM))

	return &WPSResult{
		Alpha:      alpha,
		V:          v,
		VCI:        vCI,
		SSR:        ssr,
		SSRPercent: ssrPercent,
		H:          h,
		Q:          q,
	}, nil
}
