package edf

import (
	"sort"

	"github.com/uyouii/mean-estimation/common"
	"github.com/uyouii/mean-estimation/model"
)

// Plain returns the empirical distribution function for a sorted sample
// of size n as cumulative values F_0 = 0 .. F_n = 1, with F_i = i/n.
// The slice is aligned so that F_i is the mass at or below the i-th
// order statistic.
func Plain(n int) ([]float64, error) {
	if n < 1 {
		return nil, common.ErrorInvalidValue
	}
	res := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		res[i] = float64(i) / float64(n)
	}
	return res, nil
}

// KaplanMeierSurvival computes the product-limit survival curve
// S_0 = 1 .. S_n for observations sorted in increasing value order.
// Uncensored points shrink the curve by (n-k)/(n-k+1); censored points
// leave it unchanged. If the largest observation is censored the curve
// never reaches zero, which downstream code must accept as valid.
func KaplanMeierSurvival(obs model.ObservationList) ([]float64, error) {
	n := len(obs)
	if n < 1 {
		return nil, common.ErrorInvalidValue
	}
	res := make([]float64, n+1)
	res[0] = 1
	for k := 1; k <= n; k++ {
		factor := 1.0
		if !obs[k-1].Censored {
			factor = float64(n-k) / float64(n-k+1)
		}
		res[k] = res[k-1] * factor
	}
	return res, nil
}

// FromSurvival converts a survival curve to its distribution function,
// F_i = 1 - S_i.
func FromSurvival(survival []float64) []float64 {
	res := make([]float64, len(survival))
	for i, s := range survival {
		res[i] = 1 - s
	}
	return res
}

// CountBelow returns the number of sorted sample values strictly less
// than xq. That count is also the index whose EDF entry is F-hat, the
// base distribution value just before the anchor.
func CountBelow(sorted []float64, xq float64) int {
	return sort.SearchFloat64s(sorted, xq)
}

// QuantileAdjust rescales a base EDF so it passes exactly through the
// anchor level q at order position r (the count of sample values below
// the anchor value). Mass below the anchor is scaled by q/F-hat, mass
// above by (1-q)/(1-F-hat), so relative spacing on each side survives.
// A degenerate split (F-hat = 0 or F-hat >= 1) cannot be adjusted and
// is reported as an error for the caller to fall back on.
func QuantileAdjust(f []float64, r int, q float64) ([]float64, error) {
	if q <= 0 || q >= 1 {
		return nil, common.ErrorInvalidValue
	}
	if r < 0 || r >= len(f) {
		return nil, common.ErrorInvalidValue
	}
	fhat := f[r]
	if fhat == 0 || fhat >= 1 {
		return nil, common.ErrorDegenerateSplit
	}
	res := make([]float64, len(f))
	for i := range f {
		if i <= r {
			res[i] = q * f[i] / fhat
		} else {
			res[i] = q + (1-q)*(f[i]-fhat)/(1-fhat)
		}
	}
	return res, nil
}

// Integrate computes the Stieltjes integral of the identity against a
// step distribution: sum over order statistics of the probability mass
// jump times the sample value. values must be sorted and one shorter
// than f.
func Integrate(f []float64, values []float64) float64 {
	res := 0.0
	for i := 1; i < len(f) && i <= len(values); i++ {
		res += (f[i] - f[i-1]) * values[i-1]
	}
	return res
}
