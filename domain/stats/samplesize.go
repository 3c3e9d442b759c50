package stats

import (
	"math"

	pilerr "pilot/internal/errors"
)

// OptimalSampleSize implements spec.md §4.3: given data x, a desired CI
// half-width e = ciWidth/2, the mean method, CI type, confidence level and
// autocorrelation limit, returns the required sample size and the q it was
// computed at.
func OptimalSampleSize(x []float64, ciWidth, cl float64, method MeanMethod, ciType CIType, rhoMax float64) (requiredN int, q int, err error) {
	if ciType == SampleMean {
		q = OptimalSubsessionSize(x, method, rhoMax)
		if q < 1 {
			return 0, 0, pilerr.Code(pilerr.NotEnoughDataForCI)
		}
	} else {
		q = 1
	}

	h := len(x) / q
	if h < 2 {
		return 0, 0, pilerr.Code(pilerr.NotEnoughDataForCI)
	}

	e := ciWidth / 2
	t := tQuantileUpperTail(float64(h-1), (1-cl)/2)
	sampleMean := Mean(x, method)
	v := Var(x, q, sampleMean, method)

	required := math.Ceil(v * (t / e) * (t / e))
	return int(required), q, nil
}
