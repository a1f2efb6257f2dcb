package calibration

import (
	"math"
	"testing"

	"intellilab-gc-be/pkg/plot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referenceCurve = []Point{
	{0.1, 1250}, {0.5, 6180}, {1.0, 12400}, {2.0, 24650}, {5.0, 61200}, {10.0, 122800},
}

func TestValidateReferenceCurve(t *testing.T) {
	v := Validate(referenceCurve)

	assert.True(t, v.IsValid)
	assert.Empty(t, v.Errors)
	assert.Empty(t, v.Warnings)
	assert.Equal(t, 6, v.ValidPoints)
	assert.Equal(t, 0, v.IgnoredPoints)
}

func TestValidateTooFewValidPoints(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
	}{
		{"empty", nil},
		{"two points", []Point{{1, 10}, {10, 100}}},
		{"zeros ignored", []Point{{0, 10}, {1, 0}, {2, 20}, {20, 200}}},
		{"negatives and NaN ignored", []Point{{-1, 10}, {math.NaN(), 5}, {1, math.Inf(1)}, {5, 50}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Validate(tt.points)
			assert.False(t, v.IsValid)
			assert.Contains(t, v.Errors, ErrTooFewPoints)
		})
	}
}

func TestValidateWarningsAreIndependent(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   []string
	}{
		{
			name:   "duplicate only",
			points: []Point{{1, 100}, {1, 105}, {10, 1000}, {100, 10000}},
			want:   []string{WarnDuplicateConc},
		},
		{
			name:   "narrow span only",
			points: []Point{{1, 100}, {2, 200}, {5, 500}},
			want:   []string{WarnNarrowSpan},
		},
		{
			name:   "non monotonic only",
			points: []Point{{1, 100}, {10, 90}, {100, 10000}},
			want:   []string{WarnNonMonotonicSignal},
		},
		{
			name:   "all three",
			points: []Point{{1, 100}, {1, 120}, {2, 80}, {3, 300}},
			want:   []string{WarnDuplicateConc, WarnNarrowSpan, WarnNonMonotonicSignal},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Validate(tt.points)
			assert.True(t, v.IsValid)
			assert.Equal(t, tt.want, v.Warnings)
		})
	}
}

func TestFitLinearExactLine(t *testing.T) {
	points := []Point{{1, 12}, {2, 22}, {3, 32}, {4, 42}}
	fit, err := FitLinear(points)
	require.NoError(t, err)

	assert.InDelta(t, 10, fit.Slope, 1e-9)
	assert.InDelta(t, 2, fit.Intercept, 1e-9)
	assert.InDelta(t, 1, fit.RSquared, 1e-12)
	assert.InDelta(t, 0, fit.StdError, 1e-9)
	assert.Equal(t, 4, fit.N)
}

func TestFitLinearErrors(t *testing.T) {
	_, err := FitLinear([]Point{{1, 1}, {2, 2}})
	assert.ErrorIs(t, err, ErrInsufficientPoints)

	_, err = FitLinear([]Point{{2, 1}, {2, 2}, {2, 3}})
	assert.ErrorIs(t, err, ErrDegenerateX)
}

func TestComputeReferenceCurve(t *testing.T) {
	res, v, err := Compute(referenceCurve, Method3Sigma)
	require.NoError(t, err)
	require.True(t, v.IsValid)

	assert.InDelta(t, 12280, res.Slope, 50)
	assert.Greater(t, res.RSquared, 0.999)
	assert.Greater(t, res.LOD, 0.0)
	assert.InDelta(t, res.LOQ/res.LOD, LOQFactor/LODFactor, 1e-9)
	assert.Equal(t, res.LOD, res.DetectionLimit)

	res10, _, err := Compute(referenceCurve, Method10Sigma)
	require.NoError(t, err)
	assert.Equal(t, res10.LOQ, res10.DetectionLimit)
}

func TestComputeRejectsInvalidAndFlatCurves(t *testing.T) {
	_, v, err := Compute([]Point{{1, 10}}, Method3Sigma)
	assert.ErrorIs(t, err, ErrInsufficientPoints)
	assert.False(t, v.IsValid)

	_, _, err = Compute([]Point{{1, 300}, {10, 200}, {100, 100}}, Method3Sigma)
	assert.ErrorIs(t, err, ErrNonPositiveSlope)
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("")
	require.NoError(t, err)
	assert.Equal(t, Method3Sigma, m)

	m, err = ParseMethod("10sigma")
	require.NoError(t, err)
	assert.Equal(t, Method10Sigma, m)

	_, err = ParseMethod("5sigma")
	assert.Error(t, err)
}

func TestBuildSeriesResiduals(t *testing.T) {
	res, _, err := Compute(referenceCurve, Method3Sigma)
	require.NoError(t, err)

	s := BuildSeries(referenceCurve, res)
	require.Len(t, s.Residuals, len(referenceCurve))
	for i, p := range referenceCurve {
		assert.InDelta(t, p.Area-res.Predict(p.Concentration), s.Residuals[i].Y, 1e-9)
	}
	assert.Len(t, s.Regression, regressionSamples)
	assert.Equal(t, res.LOD, s.LODMarker.X)
	assert.Equal(t, res.LOQ, s.LOQMarker.X)
}

func TestRenderPlotSVG(t *testing.T) {
	res, _, err := Compute(referenceCurve, Method3Sigma)
	require.NoError(t, err)

	out, err := RenderPlot(BuildSeries(referenceCurve, res), res, plot.FormatSVG)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<svg")
}
