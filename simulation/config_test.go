package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/mean-estimation/common"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejects(t *testing.T) {
	tt := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "quantile level above one", mutate: func(c *Config) { c.QuantileLevel = 1.2 }},
		{name: "quantile level at one", mutate: func(c *Config) { c.QuantileLevel = 1 }},
		{name: "single replication", mutate: func(c *Config) { c.Replications = 1 }},
		{name: "censored fraction at one", mutate: func(c *Config) { c.CensoredFraction = 1 }},
		{name: "negative censored fraction", mutate: func(c *Config) { c.CensoredFraction = -0.1 }},
		{name: "observation coefficient above one", mutate: func(c *Config) { c.ObservationCoefficient = 1.5 }},
		{name: "sample size below two", mutate: func(c *Config) { c.SampleSizeMin = 1; c.SampleSizeMax = 1 }},
		{name: "empty sample size interval", mutate: func(c *Config) { c.SampleSizeMin = 100; c.SampleSizeMax = 50 }},
		{name: "fractional censor count", mutate: func(c *Config) { c.CensoredFraction = 0.15 }},
		{name: "fractional censor count fixed n", mutate: func(c *Config) { c.FixedSampleSize = 55 }},
		{name: "quantile grid too small", mutate: func(c *Config) { c.QuantileGridSize = 1 }},
		{name: "quantile sweep range outside unit interval", mutate: func(c *Config) { c.QuantileMax = 1 }},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), common.ErrorInvalidConfig)
		})
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	cfg := Config{}
	cfg.Normalize()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultReplications, cfg.Replications)
	assert.Equal(t, DefaultQuantileLevel, cfg.QuantileLevel)
}

func TestSampleSizes(t *testing.T) {
	cfg := Config{SampleSizeMin: 50, SampleSizeMax: 100, SampleSizeStep: 20}
	assert.Equal(t, []int{50, 70, 90}, cfg.SampleSizes())
}
