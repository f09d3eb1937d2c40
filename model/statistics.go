package model

// EstimatorStats aggregates one estimator's behaviour over the M
// replications of a single configuration.
type EstimatorStats struct {
	Bias      float64 `json:"bias"`
	Variance  float64 `json:"var"`
	MSE       float64 `json:"mse"`
	ScaledMSE float64 `json:"scaled_mse"` // N * MSE
}

// ConfigurationStatistics holds the aggregated results for one (N, q)
// configuration, keyed by estimator name. Immutable once the harness
// has finished aggregating.
type ConfigurationStatistics struct {
	SampleSize    int                        `json:"n"`
	QuantileLevel float64                    `json:"q"`
	Replications  int                        `json:"m"`
	Estimators    map[string]*EstimatorStats `json:"estimators"`
}

func (s *ConfigurationStatistics) GetEstimatorStats(name string) (*EstimatorStats, bool) {
	if s == nil || s.Estimators == nil {
		return nil, false
	}
	stats, ok := s.Estimators[name]
	return stats, ok
}

func (s *ConfigurationStatistics) IsEmpty() bool {
	if s == nil {
		return true
	}
	return len(s.Estimators) == 0
}
