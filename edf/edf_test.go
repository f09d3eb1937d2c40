package edf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/mean-estimation/common"
	"github.com/uyouii/mean-estimation/model"
	"gonum.org/v1/gonum/stat"
)

func TestPlainEndpoints(t *testing.T) {
	f, err := Plain(4)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, f)
}

func TestPlainRejectsEmptySample(t *testing.T) {
	_, err := Plain(0)
	assert.ErrorIs(t, err, common.ErrorInvalidValue)
}

func TestPlainIntegratesToSampleMean(t *testing.T) {
	tt := []struct {
		name   string
		sorted []float64
	}{
		{name: "single", sorted: []float64{3.5}},
		{name: "uniform spaced", sorted: []float64{0.1, 0.3, 0.5, 0.7, 0.9}},
		{name: "with ties", sorted: []float64{1, 2, 2, 2, 7}},
		{name: "negative values", sorted: []float64{-4, -1, 0, 2.5}},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			f, err := Plain(len(tc.sorted))
			require.NoError(t, err)
			assert.InDelta(t, stat.Mean(tc.sorted, nil), Integrate(f, tc.sorted), 1e-12)
		})
	}
}

func TestKaplanMeierSurvivalNoCensoring(t *testing.T) {
	obs := model.NewObservationList([]float64{1, 2, 3, 4}, nil)
	s, err := KaplanMeierSurvival(obs)
	require.NoError(t, err)
	// uncensored product-limit collapses to (n-i)/n
	assert.InDeltaSlice(t, []float64{1, 0.75, 0.5, 0.25, 0}, s, 1e-12)
}

func TestKaplanMeierSurvivalLastCensored(t *testing.T) {
	obs := model.NewObservationList([]float64{1, 2, 3}, []bool{false, false, true})
	s, err := KaplanMeierSurvival(obs)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 2.0 / 3, 1.0 / 3, 1.0 / 3}, s, 1e-12)

	// incomplete mass is valid: the curve never reaches zero
	f := FromSurvival(s)
	assert.Less(t, f[len(f)-1], 1.0)
}

func TestKaplanMeierSurvivalAllCensored(t *testing.T) {
	obs := model.NewObservationList([]float64{1, 2, 3}, []bool{true, true, true})
	s, err := KaplanMeierSurvival(obs)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1, 1}, s)
}

func TestKaplanMeierSurvivalNonIncreasing(t *testing.T) {
	obs := model.NewObservationList(
		[]float64{0.2, 0.5, 0.7, 1.1, 1.9, 2.4},
		[]bool{false, true, false, true, false, false})
	s, err := KaplanMeierSurvival(obs)
	require.NoError(t, err)
	for i := 1; i < len(s); i++ {
		assert.LessOrEqual(t, s[i], s[i-1])
	}
}

func TestCountBelow(t *testing.T) {
	sorted := []float64{0.1, 0.3, 0.5, 0.7, 0.9}
	tt := []struct {
		name string
		xq   float64
		exp  int
	}{
		{name: "below min", xq: 0.05, exp: 0},
		{name: "between", xq: 0.4, exp: 2},
		{name: "exactly on order statistic", xq: 0.5, exp: 2},
		{name: "above max", xq: 1.5, exp: 5},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.exp, CountBelow(sorted, tc.xq))
		})
	}
}

func TestQuantileAdjustHitsAnchor(t *testing.T) {
	f, err := Plain(5)
	require.NoError(t, err)

	g, err := QuantileAdjust(f, 2, 0.5)
	require.NoError(t, err)

	// the adjusted curve passes exactly through q at the anchor position
	assert.InDelta(t, 0.5, g[2], 1e-12)
	assert.InDelta(t, 0.0, g[0], 1e-12)
	assert.InDelta(t, 1.0, g[5], 1e-12)

	// mass below keeps relative spacing: G_1/G_2 == F_1/F_2
	assert.InDelta(t, f[1]/f[2], g[1]/g[2], 1e-12)
}

func TestQuantileAdjustMonotone(t *testing.T) {
	f, err := Plain(8)
	require.NoError(t, err)
	g, err := QuantileAdjust(f, 3, 0.2)
	require.NoError(t, err)
	for i := 1; i < len(g); i++ {
		assert.LessOrEqual(t, g[i-1], g[i])
	}
}

func TestQuantileAdjustDegenerateSplit(t *testing.T) {
	f, err := Plain(5)
	require.NoError(t, err)

	_, err = QuantileAdjust(f, 0, 0.5)
	assert.ErrorIs(t, err, common.ErrorDegenerateSplit)

	_, err = QuantileAdjust(f, 5, 0.5)
	assert.ErrorIs(t, err, common.ErrorDegenerateSplit)
}

func TestQuantileAdjustRejectsBadLevel(t *testing.T) {
	f, err := Plain(5)
	require.NoError(t, err)

	for _, q := range []float64{0, 1, -0.2, 1.7} {
		_, err = QuantileAdjust(f, 2, q)
		assert.ErrorIs(t, err, common.ErrorInvalidValue)
	}
}
