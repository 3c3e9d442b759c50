package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// DegOfFreedom computes the Welch-Satterthwaite degrees of freedom for two
// samples described by their (variance, size) pairs (spec.md §4.6).
func DegOfFreedom(var1 float64, n1 int, var2 float64, n2 int) float64 {
	a := var1 / float64(n1)
	b := var2 / float64(n2)
	num := (a + b) * (a + b)
	den := (a*a)/float64(n1-1) + (b*b)/float64(n2-1)
	return num / den
}

// PEq implements spec.md §4.6's two-sided equal-means hypothesis test: given
// the two samples' (mean, variance, size), it returns the p-value and the CI
// of (mean1 - mean2) at confidence level cl. A p-value below the caller's
// significance threshold rejects the null hypothesis that the two means are
// equal.
func PEq(mean1 float64, var1 float64, n1 int, mean2 float64, var2 float64, n2 int, cl float64) (pValue float64, ciLow float64, ciHigh float64) {
	dof := DegOfFreedom(var1, n1, var2, n2)
	se := math.Sqrt(var1/float64(n1) + var2/float64(n2))
	diff := mean1 - mean2

	t := diff / se
	d := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dof}
	pValue = 2 * (1 - d.CDF(math.Abs(t)))

	crit := tQuantileUpperTail(dof, (1-cl)/2)
	half := crit * se
	return pValue, diff - half, diff + half
}

// OptSampleSizeForEqTest implements spec.md §4.6: the sample size (assumed
// equal for both groups) needed so that the equal-means test can detect a
// true difference of at least delta between two populations with the given
// variances, at confidence level cl and desired power via the two-sided
// critical value (the reference implementation does not model power
// separately from confidence level, so neither does this one).
func OptSampleSizeForEqTest(var1, var2, delta, cl float64) int {
	// Iterate because the Student-t critical value itself depends on the
	// degrees of freedom, which depend on n. Start from n = 2 and refine
	// until n stops changing, for at most 50 iterations.
	n := 2
	for i := 0; i < 50; i++ {
		dof := DegOfFreedom(var1, n, var2, n)
		t := tQuantileUpperTail(dof, (1-cl)/2)
		next := int(math.Ceil(2 * t * t * (var1 + var2) / (delta * delta)))
		if next < 2 {
			next = 2
		}
		if next == n {
			return n
		}
		n = next
	}
	return n
}
