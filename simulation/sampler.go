package simulation

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution is the sampling collaborator the harness needs: i.i.d.
// draws, the quantile function for deriving the true anchor, and the
// true mean the estimators are judged against. gonum's distuv
// distributions satisfy it directly.
type Distribution interface {
	Rand() float64
	Quantile(p float64) float64
	Mean() float64
}

// DistributionFactory builds a Distribution over a caller-owned random
// source, so every parallel configuration gets an independent stream.
type DistributionFactory func(src rand.Source) Distribution

func UniformFactory(min, max float64) DistributionFactory {
	return func(src rand.Source) Distribution {
		return distuv.Uniform{Min: min, Max: max, Src: src}
	}
}

func NormalFactory(mu, sigma float64) DistributionFactory {
	return func(src rand.Source) Distribution {
		return distuv.Normal{Mu: mu, Sigma: sigma, Src: src}
	}
}

func drawSample(dist Distribution, n int) []float64 {
	res := make([]float64, n)
	for i := range res {
		res[i] = dist.Rand()
	}
	return res
}

// censorMask marks exactly floor(fraction*n) indices, chosen uniformly
// at random without replacement.
func censorMask(rng *rand.Rand, n int, fraction float64) []bool {
	mask := make([]bool, n)
	cnt := int(fraction * float64(n))
	if cnt <= 0 {
		return mask
	}
	for _, idx := range rng.Perm(n)[:cnt] {
		mask[idx] = true
	}
	return mask
}

// observedSample shrinks censored entries by the observation
// coefficient, simulating that only a truncated value was recorded.
func observedSample(sample []float64, mask []bool, coefficient float64) []float64 {
	res := make([]float64, len(sample))
	for i, v := range sample {
		if mask[i] {
			res[i] = v * coefficient
		} else {
			res[i] = v
		}
	}
	return res
}
