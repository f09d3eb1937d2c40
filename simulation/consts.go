package simulation

const (
	DefaultReplications           = 1000
	DefaultMaxRetries             = 100
	DefaultQuantileLevel          = 0.5
	DefaultCensoredFraction       = 0.1
	DefaultObservationCoefficient = 0.8

	DefaultSampleSizeMin  = 50
	DefaultSampleSizeMax  = 150
	DefaultSampleSizeStep = 10

	// sweep B defaults: fixed N, fine grid over (0, 1)
	DefaultFixedSampleSize  = 100
	DefaultQuantileMin      = 0.02
	DefaultQuantileMax      = 0.98
	DefaultQuantileGridSize = 49

	DefaultSeed = 20240817
)
