package simulation

import (
	"fmt"
	"math"

	"github.com/uyouii/mean-estimation/common"
)

// Config is the full option surface of a Monte-Carlo study. Zero
// values are filled in from the package defaults by Normalize; Validate
// rejects a bad configuration before any simulation work starts.
type Config struct {
	// QuantileLevel is the fixed anchor level used by the sample-size
	// sweep.
	QuantileLevel float64

	// Replications is M, the number of independent draws per
	// configuration.
	Replications int

	// CensoredFraction selects which share of each sample is censored.
	// CensoredFraction * N must be a whole number for every swept N.
	CensoredFraction float64

	// ObservationCoefficient shrinks censored values multiplicatively
	// to produce the observed sample. Must lie in (0, 1].
	ObservationCoefficient float64

	// Sample-size sweep bounds, inclusive.
	SampleSizeMin  int
	SampleSizeMax  int
	SampleSizeStep int

	// Quantile sweep: fixed sample size and grid over (0, 1).
	FixedSampleSize  int
	QuantileMin      float64
	QuantileMax      float64
	QuantileGridSize int

	// MaxRetries caps the resample-on-non-finite loop per replication.
	MaxRetries int

	// Seed anchors every per-configuration random stream.
	Seed uint64
}

func DefaultConfig() Config {
	return Config{
		QuantileLevel:          DefaultQuantileLevel,
		Replications:           DefaultReplications,
		CensoredFraction:       DefaultCensoredFraction,
		ObservationCoefficient: DefaultObservationCoefficient,
		SampleSizeMin:          DefaultSampleSizeMin,
		SampleSizeMax:          DefaultSampleSizeMax,
		SampleSizeStep:         DefaultSampleSizeStep,
		FixedSampleSize:        DefaultFixedSampleSize,
		QuantileMin:            DefaultQuantileMin,
		QuantileMax:            DefaultQuantileMax,
		QuantileGridSize:       DefaultQuantileGridSize,
		MaxRetries:             DefaultMaxRetries,
		Seed:                   DefaultSeed,
	}
}

// Normalize fills unset fields with defaults so a partially built
// Config can still validate.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.QuantileLevel == 0 {
		c.QuantileLevel = def.QuantileLevel
	}
	if c.Replications == 0 {
		c.Replications = def.Replications
	}
	if c.ObservationCoefficient == 0 {
		c.ObservationCoefficient = def.ObservationCoefficient
	}
	if c.SampleSizeMin == 0 {
		c.SampleSizeMin = def.SampleSizeMin
	}
	if c.SampleSizeMax == 0 {
		c.SampleSizeMax = def.SampleSizeMax
	}
	if c.SampleSizeStep == 0 {
		c.SampleSizeStep = def.SampleSizeStep
	}
	if c.FixedSampleSize == 0 {
		c.FixedSampleSize = def.FixedSampleSize
	}
	if c.QuantileMin == 0 {
		c.QuantileMin = def.QuantileMin
	}
	if c.QuantileMax == 0 {
		c.QuantileMax = def.QuantileMax
	}
	if c.QuantileGridSize == 0 {
		c.QuantileGridSize = def.QuantileGridSize
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = def.MaxRetries
	}
	if c.Seed == 0 {
		c.Seed = def.Seed
	}
}

func (c *Config) Validate() error {
	if c.QuantileLevel <= 0 || c.QuantileLevel >= 1 {
		return fmt.Errorf("%w: quantile level %v must lie in (0, 1)",
			common.ErrorInvalidConfig, c.QuantileLevel)
	}
	if c.Replications < 2 {
		return fmt.Errorf("%w: replications %v must be at least 2",
			common.ErrorInvalidConfig, c.Replications)
	}
	if c.CensoredFraction < 0 || c.CensoredFraction >= 1 {
		return fmt.Errorf("%w: censored fraction %v must lie in [0, 1)",
			common.ErrorInvalidConfig, c.CensoredFraction)
	}
	if c.ObservationCoefficient <= 0 || c.ObservationCoefficient > 1 {
		return fmt.Errorf("%w: observation coefficient %v must lie in (0, 1]",
			common.ErrorInvalidConfig, c.ObservationCoefficient)
	}
	if c.SampleSizeMin < 2 {
		return fmt.Errorf("%w: sample size %v must be at least 2",
			common.ErrorInvalidConfig, c.SampleSizeMin)
	}
	if c.SampleSizeMax < c.SampleSizeMin {
		return fmt.Errorf("%w: sample size interval [%v, %v] is empty",
			common.ErrorInvalidConfig, c.SampleSizeMin, c.SampleSizeMax)
	}
	if c.SampleSizeStep < 1 {
		return fmt.Errorf("%w: sample size step %v must be at least 1",
			common.ErrorInvalidConfig, c.SampleSizeStep)
	}
	if c.FixedSampleSize < 2 {
		return fmt.Errorf("%w: fixed sample size %v must be at least 2",
			common.ErrorInvalidConfig, c.FixedSampleSize)
	}
	if c.QuantileMin <= 0 || c.QuantileMax >= 1 || c.QuantileMin > c.QuantileMax {
		return fmt.Errorf("%w: quantile sweep range [%v, %v] must lie inside (0, 1)",
			common.ErrorInvalidConfig, c.QuantileMin, c.QuantileMax)
	}
	if c.QuantileGridSize < 2 {
		return fmt.Errorf("%w: quantile grid size %v must be at least 2",
			common.ErrorInvalidConfig, c.QuantileGridSize)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("%w: max retries %v must be at least 1",
			common.ErrorInvalidConfig, c.MaxRetries)
	}

	for _, n := range c.SampleSizes() {
		if err := c.checkWholeCensorCount(n); err != nil {
			return err
		}
	}
	return c.checkWholeCensorCount(c.FixedSampleSize)
}

func (c *Config) checkWholeCensorCount(n int) error {
	cnt := c.CensoredFraction * float64(n)
	if math.Abs(cnt-math.Round(cnt)) > 1e-9 {
		return fmt.Errorf("%w: censored fraction %v times sample size %v is not a whole number",
			common.ErrorInvalidConfig, c.CensoredFraction, n)
	}
	return nil
}

// SampleSizes expands the configured [min, max] interval by step.
func (c *Config) SampleSizes() []int {
	res := []int{}
	for n := c.SampleSizeMin; n <= c.SampleSizeMax; n += c.SampleSizeStep {
		res = append(res, n)
	}
	return res
}
