package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// CIType selects the confidence-interval formula a PI uses (spec.md §4.2).
type CIType int

const (
	// SampleMean uses the Student-t interval around a sample mean.
	SampleMean CIType = iota
	// BinomialProportion uses the Wald interval for a 0/1 proportion.
	BinomialProportion
)

// blockMeans splits x into h = n/q contiguous blocks of q samples each and
// returns the mean of each block under method. Extra trailing samples (when
// q does not evenly divide n) are dropped, matching the "n/q = h" contract.
func blockMeans(x []float64, q int, method MeanMethod) []float64 {
	h := len(x) / q
	u := make([]float64, h)
	for i := 0; i < h; i++ {
		u[i] = Mean(x[i*q:(i+1)*q], method)
	}
	return u
}

// AutoCov computes the lag-1 auto-covariance of the block-mean series at
// subsession size q (spec.md §4.2). Panics if h = n/q < 2, per spec ("aborts
// if h < 2" is a programmer error: the caller must pick q with n/q >= 2).
func AutoCov(x []float64, q int, sampleMean float64, method MeanMethod) float64 {
	u := blockMeans(x, q, method)
	h := len(u)
	if h < 2 {
		panic("stats: AutoCov requires n/q >= 2")
	}
	var sum float64
	for i := 0; i < h-1; i++ {
		sum += (u[i] - sampleMean) * (u[i+1] - sampleMean)
	}
	return sum / float64(h-1)
}

// Var computes the subsession variance of the block-mean series at q
// (spec.md §4.2). Panics under the same condition as AutoCov.
func Var(x []float64, q int, sampleMean float64, method MeanMethod) float64 {
	u := blockMeans(x, q, method)
	h := len(u)
	if h < 2 {
		panic("stats: Var requires n/q >= 2")
	}
	var sum float64
	for i := 0; i < h; i++ {
		d := u[i] - sampleMean
		sum += d * d
	}
	return sum / float64(h-1)
}

// AutocorrelationCoefficient is AutoCov/Var; by convention (spec.md §4.2) a
// zero or NaN variance reports 1 — "high correlation", the conservative
// answer that prevents a degenerate series from looking decorrelated.
func AutocorrelationCoefficient(x []float64, q int, method MeanMethod) float64 {
	sampleMean := Mean(x, method)
	v := Var(x, q, sampleMean, method)
	if v == 0 {
		return 1
	}
	rho := AutoCov(x, q, sampleMean, method) / v
	if math.IsNaN(rho) {
		return 1
	}
	return rho
}

// OptimalSubsessionSize searches q = 1..floor(n/3) for the smallest q whose
// autocorrelation coefficient has magnitude <= rhoMax, returning -1 if no
// such q exists (spec.md §4.2).
func OptimalSubsessionSize(x []float64, method MeanMethod, rhoMax float64) int {
	n := len(x)
	maxQ := n / 3
	for q := 1; q <= maxQ; q++ {
		if n/q < 2 {
			continue
		}
		rho := AutocorrelationCoefficient(x, q, method)
		if math.Abs(rho) <= rhoMax {
			return q
		}
	}
	return -1
}

// ConfidenceIntervalWidth returns the two-sided CI width at confidence level
// cl for the given subsession size q and CI type (spec.md §4.2). For
// BinomialProportion, mean must lie in [0,1]; the second return value is
// false otherwise (the "fail otherwise" the spec requires).
func ConfidenceIntervalWidth(x []float64, q int, cl float64, method MeanMethod, ciType CIType) (width float64, ok bool) {
	switch ciType {
	case BinomialProportion:
		mean := Mean(x, method)
		if mean < 0 || mean > 1 {
			return 0, false
		}
		h := len(x)
		t := tQuantileUpperTail(float64(h-1), (1-cl)/2)
		return 2 * t * math.Sqrt(mean*(1-mean)/float64(h)), true
	default:
		sampleMean := Mean(x, method)
		h := len(x) / q
		if h < 2 {
			return 0, false
		}
		v := Var(x, q, sampleMean, method)
		t := tQuantileUpperTail(float64(h-1), (1-cl)/2)
		return 2 * t * math.Sqrt(v/float64(h)), true
	}
}

// tQuantileUpperTail returns T such that P(StudentsT(dof) > T) = alpha, the
// two-sided critical value used throughout §4.2-§4.6.
func tQuantileUpperTail(dof, alpha float64) float64 {
	d := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dof}
	return d.Quantile(1 - alpha)
}
