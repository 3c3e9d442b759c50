package stats

import (
	"math"
	"math/rand"
	"sort"

	pilerr "pilot/internal/errors"
)

// edmPermutations is the number of permutations used by the significance
// test behind DetectChangepoints / FindOneChangepoint. The literal value
// mirrors the R=199 default of the E-Divisive-with-Means reference
// implementation (R's ecp::e.divisive).
const edmPermutations = 199

// edmSeed seeds the permutation test's RNG. A fixed seed (rather than a
// time-based one) makes change-point detection deterministic and
// reproducible across runs: the same series always yields the same
// change-points.
const edmSeed = 0xE0D11

// energyStatistic computes the E-Divisive two-sample energy statistic for
// splitting x at index tau (x[:tau] vs x[tau:]), using |a-b|^degree as the
// base distance. Larger values indicate a stronger mean/distribution shift
// at tau.
func energyStatistic(x []float64, tau, degree int) float64 {
	n1, n2 := tau, len(x)-tau
	left, right := x[:tau], x[tau:]

	dist := func(a, b float64) float64 {
		d := math.Abs(a - b)
		if degree == 1 {
			return d
		}
		return math.Pow(d, float64(degree))
	}

	var between float64
	for _, a := range left {
		for _, b := range right {
			between += dist(a, b)
		}
	}
	betweenMean := between / float64(n1*n2)

	withinMean := func(group []float64) float64 {
		n := len(group)
		if n < 2 {
			return 0
		}
		var sum float64
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				sum += dist(group[i], group[j])
			}
		}
		return sum / float64(n*(n-1))
	}

	q := 2*betweenMean - withinMean(left) - withinMean(right)
	return (float64(n1*n2) / float64(n1+n2)) * q
}

// bestSplit returns the index tau in [minSize, n-minSize] maximizing the
// energy statistic, and that maximum value.
func bestSplit(x []float64, minSize, degree int) (tau int, stat float64) {
	n := len(x)
	tau = -1
	stat = math.Inf(-1)
	for t := minSize; t <= n-minSize; t++ {
		s := energyStatistic(x, t, degree)
		if s > stat {
			stat = s
			tau = t
		}
	}
	return tau, stat
}

// significant runs a permutation test: shuffle x edmPermutations times,
// recompute the best split's statistic each time, and accept observedStat as
// significant when the fraction of permuted statistics at or above it is
// <= percent.
func significant(x []float64, observedStat float64, minSize, degree int, percent float64) bool {
	if observedStat <= 0 {
		return false
	}
	rng := rand.New(rand.NewSource(edmSeed))
	shuffled := make([]float64, len(x))
	exceed := 0
	for p := 0; p < edmPermutations; p++ {
		copy(shuffled, x)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		_, s := bestSplit(shuffled, minSize, degree)
		if s >= observedStat {
			exceed++
		}
	}
	pValue := float64(exceed+1) / float64(edmPermutations+1)
	return pValue <= percent
}

// DetectChangepoints implements spec.md §4.4's detect_changepoints: a
// recursive E-Divisive-with-Means binary segmentation that returns the
// sorted list of significant change-point indices.
func DetectChangepoints(x []float64, percent float64, degree int) []int {
	const minSize = 1
	var cps []int
	var recurse func(lo, hi int)
	recurse = func(lo, hi int) {
		segment := x[lo:hi]
		if len(segment) < 2*minSize+1 {
			return
		}
		tau, stat := bestSplit(segment, minSize, degree)
		if tau < 0 || !significant(segment, stat, minSize, degree, percent) {
			return
		}
		cps = append(cps, lo+tau)
		recurse(lo, lo+tau)
		recurse(lo+tau, hi)
	}
	recurse(0, len(x))
	sort.Ints(cps)
	return cps
}

// FindOneChangepoint implements spec.md §4.4's "EDM tail" variant: a single,
// non-recursive search for the most significant change-point in the whole
// series. The container's warm-up removal modes do not call it. Returns
// ERR_NO_CHANGEPOINT if no split is significant.
func FindOneChangepoint(x []float64, percent float64, degree int) (int, error) {
	const minSize = 1
	if len(x) < 2*minSize+1 {
		return 0, pilerr.Code(pilerr.NoChangepoint)
	}
	tau, stat := bestSplit(x, minSize, degree)
	if tau < 0 || !significant(x, stat, minSize, degree, percent) {
		return 0, pilerr.Code(pilerr.NoChangepoint)
	}
	return tau, nil
}

// FindDominantSegment implements spec.md §4.4: the longest inter-change-point
// segment whose length exceeds ceil(n/2) and is >= minSize (default 30).
// Returned indices are the segment's [begin, end) bounds over x. Per
// spec.md §9's open question, these bounds are the raw EDM change-point
// indices without post-hoc snapping, so callers should treat begin/end as
// approximate, not exact.
func FindDominantSegment(x []float64, minSize int, percent float64, degree int) (begin, end int, err error) {
	n := len(x)
	cps := DetectChangepoints(x, percent, degree)

	bounds := make([]int, 0, len(cps)+2)
	bounds = append(bounds, 0)
	bounds = append(bounds, cps...)
	bounds = append(bounds, n)

	threshold := (n + 1) / 2 // ceil(n/2)
	bestLen := -1
	for i := 0; i < len(bounds)-1; i++ {
		segBegin, segEnd := bounds[i], bounds[i+1]
		length := segEnd - segBegin
		if length > threshold && length >= minSize && length > bestLen {
			bestLen = length
			begin, end = segBegin, segEnd
		}
	}
	if bestLen < 0 {
		return 0, 0, pilerr.Code(pilerr.NoDominantSegment)
	}
	return begin, end, nil
}
