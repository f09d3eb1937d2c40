package estimator

import (
	"errors"
	"sort"

	"github.com/uyouii/mean-estimation/common"
	"github.com/uyouii/mean-estimation/edf"
	"github.com/uyouii/mean-estimation/model"
	"gonum.org/v1/gonum/stat"
)

// Estimator names, used as keys in aggregated statistics.
const (
	QuantileAdjustedName    = "quantile_adjusted"
	ProjectionName          = "projection"
	KaplanMeierName         = "kaplan_meier"
	KaplanMeierQuantileName = "kaplan_meier_quantile"
	PairwiseQuantileName    = "pairwise_quantile"
)

// AllNames lists every estimator under study.
var AllNames = []string{
	QuantileAdjustedName,
	ProjectionName,
	KaplanMeierName,
	KaplanMeierQuantileName,
	PairwiseQuantileName,
}

// QuantileSensitiveNames lists the estimators whose output depends on
// the anchor level q.
var QuantileSensitiveNames = []string{
	QuantileAdjustedName,
	ProjectionName,
	KaplanMeierQuantileName,
	PairwiseQuantileName,
}

func sortedCopy(sample []float64) []float64 {
	res := make([]float64, len(sample))
	copy(res, sample)
	sort.Float64s(res)
	return res
}

// QuantileAdjustedMean estimates the mean by integrating the sample
// values against a plain EDF rescaled to pass through the anchor.
// When the anchor leaves an empty side the adjustment is undefined and
// the plain sample mean is returned instead.
func QuantileAdjustedMean(sample []float64, anchor model.QuantileAnchor) (float64, error) {
	if len(sample) == 0 {
		return 0, common.ErrorInvalidValue
	}
	if !anchor.Valid() {
		return 0, common.ErrorInvalidValue
	}

	values := sortedCopy(sample)
	f, err := edf.Plain(len(values))
	if err != nil {
		return 0, err
	}

	r := edf.CountBelow(values, anchor.Value)
	g, err := edf.QuantileAdjust(f, r, anchor.Level)
	if errors.Is(err, common.ErrorDegenerateSplit) {
		return stat.Mean(values, nil), nil
	}
	if err != nil {
		return 0, err
	}
	return edf.Integrate(g, values), nil
}

// ProjectionMean combines the sub-sample means on either side of the
// anchor with the anchor's own weights: q below, 1-q above. With an
// empty side it reduces to the plain sample mean.
func ProjectionMean(sample []float64, anchor model.QuantileAnchor) (float64, error) {
	if len(sample) == 0 {
		return 0, common.ErrorInvalidValue
	}
	if !anchor.Valid() {
		return 0, common.ErrorInvalidValue
	}

	var lowSum, highSum float64
	var r int
	for _, v := range sample {
		if v < anchor.Value {
			lowSum += v
			r++
		} else {
			highSum += v
		}
	}
	n := len(sample)
	if r == 0 || r == n {
		return stat.Mean(sample, nil), nil
	}
	q := anchor.Level
	return q*lowSum/float64(r) + (1-q)*highSum/float64(n-r), nil
}

// KaplanMeierMean weighs each uncensored observation with the
// probability mass released by the survival curve at its order
// position. Censored observations contribute no direct mass; they
// shape the curve only through the risk set.
func KaplanMeierMean(obs model.ObservationList) (float64, error) {
	if len(obs) == 0 {
		return 0, common.ErrorInvalidValue
	}
	sorted := obs.Sorted()
	survival, err := edf.KaplanMeierSurvival(sorted)
	if err != nil {
		return 0, err
	}
	res := 0.0
	for i := 1; i < len(survival); i++ {
		if sorted[i-1].Censored {
			continue
		}
		res += (survival[i-1] - survival[i]) * sorted[i-1].Value
	}
	return res, nil
}

// KaplanMeierQuantileMean applies the anchor adjustment to the
// Kaplan-Meier EDF before integrating. The anchor position is the
// count of sorted values below the anchor, so an anchor falling
// between two order statistics or exactly on one resolves to the same
// index the plain estimator uses. Degenerate splits fall back to the
// plain sample mean.
func KaplanMeierQuantileMean(obs model.ObservationList, anchor model.QuantileAnchor) (float64, error) {
	if len(obs) == 0 {
		return 0, common.ErrorInvalidValue
	}
	if !anchor.Valid() {
		return 0, common.ErrorInvalidValue
	}

	sorted := obs.Sorted()
	survival, err := edf.KaplanMeierSurvival(sorted)
	if err != nil {
		return 0, err
	}
	f := edf.FromSurvival(survival)
	values := sorted.Values()

	r := edf.CountBelow(values, anchor.Value)
	g, err := edf.QuantileAdjust(f, r, anchor.Level)
	if errors.Is(err, common.ErrorDegenerateSplit) {
		return stat.Mean(values, nil), nil
	}
	if err != nil {
		return 0, err
	}
	return edf.Integrate(g, values), nil
}

// PairwiseQuantileMean averages the anchor-corrected kernel over all
// ordered pairs of distinct sample points. No sorting is needed and no
// degenerate split exists: q(1-q) is nonzero by the anchor contract.
// The correction factor grows as q approaches 0 or 1, which is left to
// the caller's retry policy rather than clamped here.
func PairwiseQuantileMean(sample []float64, anchor model.QuantileAnchor) (float64, error) {
	n := len(sample)
	if n < 2 {
		return 0, common.ErrorInvalidValue
	}
	if !anchor.Valid() {
		return 0, common.ErrorInvalidValue
	}

	q := anchor.Level
	centered := make([]float64, n)
	for i, v := range sample {
		indicator := 0.0
		if v <= anchor.Value {
			indicator = 1.0
		}
		centered[i] = indicator - q
	}

	norm := q * (1 - q)
	res := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			res += sample[i] * (1 - centered[i]*centered[j]/norm)
		}
	}
	return res / float64(n*(n-1)), nil
}
