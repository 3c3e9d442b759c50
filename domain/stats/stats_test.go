package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// responseTime is Ferrari's response-time series, [Ferrari78] page 79.
var responseTime = []float64{
	1.21, 1.67, 1.71, 1.53, 2.03, 2.15, 1.88, 2.02, 1.75, 1.84, 1.61, 1.35, 1.43, 1.64, 1.52, 1.44, 1.17, 1.42, 1.64, 1.86, 1.68, 1.91, 1.73, 2.18,
	2.27, 1.93, 2.19, 2.04, 1.92, 1.97, 1.65, 1.71, 1.89, 1.70, 1.62, 1.48, 1.55, 1.39, 1.45, 1.67, 1.62, 1.77, 1.88, 1.82, 1.93, 2.09, 2.24, 2.16,
}

func TestMeanArithmetic(t *testing.T) {
	assert.InDelta(t, 1.756458333333333, Mean(responseTime, Arithmetic), 1e-12)
}

func TestHarmonicMean(t *testing.T) {
	d := []float64{1.21, 1.67, 1.71, 1.53, 2.03, 2.15}
	assert.InDelta(t, 1.6568334130160711, Mean(d, Harmonic), 1e-12)
}

func TestSubsessionStatisticsOnResponseTime(t *testing.T) {
	sampleMean := Mean(responseTime, Arithmetic)
	require.InDelta(t, 1.756458333333333, sampleMean, 1e-12)

	assert.InDelta(t, 0.073474423758865273, Var(responseTime, 1, sampleMean, Arithmetic), 1e-12)
	assert.InDelta(t, 0.046770566452423196, AutoCov(responseTime, 1, sampleMean, Arithmetic), 1e-12)
	assert.InDelta(t, 0.63655574361384437, AutocorrelationCoefficient(responseTime, 1, Arithmetic), 1e-9)
	assert.InDelta(t, 0.55892351761172487, AutocorrelationCoefficient(responseTime, 2, Arithmetic), 1e-9)
	assert.InDelta(t, 0.05264711174242424, Var(responseTime, 4, sampleMean, Arithmetic), 1e-9)
	assert.InDelta(t, 0.08230986644266707, AutocorrelationCoefficient(responseTime, 4, Arithmetic), 1e-8)

	width, ok := ConfidenceIntervalWidth(responseTime, 4, 0.95, Arithmetic, SampleMean)
	require.True(t, ok)
	assert.InDelta(t, 0.29157062128900485, width, 1e-8)

	assert.Equal(t, 4, OptimalSubsessionSize(responseTime, Arithmetic, 0.1))
}

func TestOptimalSampleSizeOnResponseTime(t *testing.T) {
	sampleMean := Mean(responseTime, Arithmetic)
	n, q, err := OptimalSampleSize(responseTime, sampleMean*0.1, 0.95, Arithmetic, SampleMean, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 4, q)
	assert.Equal(t, 34, n)
}

func TestBinomialProportionConfidenceInterval(t *testing.T) {
	binary := []float64{1, 0, 0, 0, 1, 1, 1, 0, 1, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1}
	width, ok := ConfidenceIntervalWidth(binary, 1, 0.95, Arithmetic, BinomialProportion)
	require.True(t, ok)
	assert.InDelta(t, 0.46566845477273205, width, 1e-8)
}

func TestAutocorrelationCoefficientDegenerate(t *testing.T) {
	constant := []float64{5, 5, 5, 5, 5, 5}
	assert.Equal(t, 1.0, AutocorrelationCoefficient(constant, 1, Arithmetic))
}

func TestFitWPSLinearRegressionInjectedResiduals(t *testing.T) {
	const expAlpha = 42.0
	const expV = 0.5
	workAmount := []float64{50, 100, 150, 200, 250}
	errs := []float64{20, -9, -18, -25, 30}

	var expSSR float64
	for _, e := range errs {
		expSSR += e * e
	}

	durationNanos := make([]int64, len(workAmount))
	for i, w := range workAmount {
		seconds := (1.0/expV)*w + expAlpha + errs[i]
		durationNanos[i] = int64(seconds * 1e9)
	}

	result, err := FitWPS(workAmount, durationNanos, 1, 0)
	require.NoError(t, err)
	assert.InDelta(t, expSSR, result.SSR, 10)
	assert.InDelta(t, 44, result.Alpha, 4)
	assert.InDelta(t, expV, result.V, 0.1)
	assert.InDelta(t, 0.1803, result.VCI, 0.01)
}

func TestDetectChangepointsStepSeries(t *testing.T) {
	x := make([]float64, 0, 90)
	for i := 0; i < 30; i++ {
		x = append(x, 1.1)
	}
	for i := 0; i < 30; i++ {
		x = append(x, 5.1)
	}
	for i := 0; i < 30; i++ {
		x = append(x, 1.1)
	}

	cps := DetectChangepoints(x, 0.05, 2)
	require.Len(t, cps, 2)
	assert.Equal(t, 30, cps[0])
	assert.Equal(t, 60, cps[1])
}

func TestFindDominantSegment(t *testing.T) {
	x := make([]float64, 0, 190)
	for i := 0; i < 30; i++ {
		x = append(x, 1.1)
	}
	for i := 0; i < 130; i++ {
		x = append(x, 5.1)
	}
	for i := 0; i < 30; i++ {
		x = append(x, 1.1)
	}

	begin, end, err := FindDominantSegment(x, 30, 0.05, 2)
	require.NoError(t, err)
	assert.Equal(t, 30, begin)
	assert.Equal(t, 160, end)
}

func TestFindDominantSegmentNoneFound(t *testing.T) {
	x := make([]float64, 0, 90)
	for i := 0; i < 30; i++ {
		x = append(x, 1.1)
	}
	for i := 0; i < 30; i++ {
		x = append(x, 5.1)
	}
	for i := 0; i < 30; i++ {
		x = append(x, 1.1)
	}

	_, _, err := FindDominantSegment(x, 30, 0.05, 2)
	assert.Error(t, err)
}

func TestPEqRejectsUnequalMeans(t *testing.T) {
	p, low, high := PEq(10, 1, 30, 12, 1, 30, 0.95)
	assert.Less(t, p, 0.05)
	assert.Less(t, low, -2.0)
	assert.Greater(t, high, -2.0)
}

func TestPEqAcceptsEqualMeans(t *testing.T) {
	p, _, _ := PEq(10, 4, 30, 10.1, 4, 30, 0.95)
	assert.Greater(t, p, 0.05)
}

func TestDegOfFreedomMatchesWelchSatterthwaite(t *testing.T) {
	dof := DegOfFreedom(2, 10, 8, 10)
	assert.Greater(t, dof, 9.0)
	assert.Less(t, dof, 18.0)
}
