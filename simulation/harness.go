package simulation

import (
	"context"
	"fmt"
	"runtime"

	"github.com/uyouii/mean-estimation/common"
	"github.com/uyouii/mean-estimation/estimator"
	"github.com/uyouii/mean-estimation/model"
	"github.com/uyouii/mean-estimation/utils"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// seed offset separating the quantile sweep's random streams from the
// sample-size sweep's.
const quantileSweepSeedOffset = 1 << 32

// Harness runs the Monte-Carlo comparison of the mean estimators. Each
// (N, q) configuration is an independent unit of work with its own
// random stream and its own local accumulators, merged only through the
// result slice.
type Harness struct {
	cfg     Config
	factory DistributionFactory
}

func NewHarness(cfg Config, factory DistributionFactory) (*Harness, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if factory == nil {
		factory = UniformFactory(0, 1)
	}
	return &Harness{cfg: cfg, factory: factory}, nil
}

func (h *Harness) Config() Config {
	return h.cfg
}

type StudyResult struct {
	BySampleSize []*model.ConfigurationStatistics `json:"by_sample_size"`
	ByQuantile   []*model.ConfigurationStatistics `json:"by_quantile"`
}

// Run executes both sweeps and returns their complete statistics. A run
// either finishes every configured replication or fails with no partial
// output.
func (h *Harness) Run(ctx context.Context) (res *StudyResult, err error) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("simulation run recover panic error!", zap.Any("err", r),
				zap.String("panic info", utils.GetPanicInfo()))
			res, err = nil, fmt.Errorf("simulation panic: %v", r)
		}
	}()

	bySize, err := h.SweepBySampleSize(ctx)
	if err != nil {
		logger.Error("sample size sweep failed", zap.Error(err))
		return nil, err
	}

	byQuantile, err := h.SweepByQuantile(ctx)
	if err != nil {
		logger.Error("quantile sweep failed", zap.Error(err))
		return nil, err
	}

	return &StudyResult{BySampleSize: bySize, ByQuantile: byQuantile}, nil
}

// SweepBySampleSize evaluates all five estimators at the fixed anchor
// level for every N in the configured interval.
func (h *Harness) SweepBySampleSize(ctx context.Context) ([]*model.ConfigurationStatistics, error) {
	logger := utils.GetLogger(ctx)

	sizes := h.cfg.SampleSizes()
	logger.Info("begin sample size sweep", zap.Int("configurations", len(sizes)),
		zap.Float64("q", h.cfg.QuantileLevel), zap.Int("replications", h.cfg.Replications))

	results := make([]*model.ConfigurationStatistics, len(sizes))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, n := range sizes {
		i, n := i, n
		group.Go(func() error {
			src := rand.NewSource(h.cfg.Seed + uint64(i))
			stats, err := h.runConfiguration(groupCtx, n, h.cfg.QuantileLevel, estimator.AllNames, src)
			if err != nil {
				return err
			}
			results[i] = stats
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	logger.Info("sample size sweep finished", zap.Int("configurations", len(sizes)))
	return results, nil
}

// SweepByQuantile evaluates the quantile-sensitive estimators at a
// fixed sample size over a fine grid of anchor levels, recomputing the
// true anchor value at each level.
func (h *Harness) SweepByQuantile(ctx context.Context) ([]*model.ConfigurationStatistics, error) {
	logger := utils.GetLogger(ctx)

	levels := utils.Linspace(h.cfg.QuantileMin, h.cfg.QuantileMax, h.cfg.QuantileGridSize)
	logger.Info("begin quantile sweep", zap.Int("configurations", len(levels)),
		zap.Int("n", h.cfg.FixedSampleSize), zap.Int("replications", h.cfg.Replications))

	results := make([]*model.ConfigurationStatistics, len(levels))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, q := range levels {
		i, q := i, q
		group.Go(func() error {
			src := rand.NewSource(h.cfg.Seed + quantileSweepSeedOffset + uint64(i))
			stats, err := h.runConfiguration(groupCtx, h.cfg.FixedSampleSize, q,
				estimator.QuantileSensitiveNames, src)
			if err != nil {
				return err
			}
			results[i] = stats
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	logger.Info("quantile sweep finished", zap.Int("configurations", len(levels)))
	return results, nil
}

func (h *Harness) runConfiguration(ctx context.Context, n int, q float64,
	names []string, src rand.Source) (*model.ConfigurationStatistics, error) {
	dist := h.factory(src)
	rng := rand.New(src)

	trueMean := dist.Mean()
	anchor := model.QuantileAnchor{Value: dist.Quantile(q), Level: q}

	estimates := make(map[string][]float64, len(names))
	for _, name := range names {
		estimates[name] = make([]float64, 0, h.cfg.Replications)
	}

	for rep := 0; rep < h.cfg.Replications; rep++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		est, err := h.replicate(dist, rng, n, anchor, names)
		if err != nil {
			return nil, err
		}
		for name, v := range est {
			estimates[name] = append(estimates[name], v)
		}
	}

	res := &model.ConfigurationStatistics{
		SampleSize:    n,
		QuantileLevel: q,
		Replications:  h.cfg.Replications,
		Estimators:    make(map[string]*model.EstimatorStats, len(names)),
	}
	for name, values := range estimates {
		res.Estimators[name] = aggregate(values, trueMean, n)
	}
	return res, nil
}

// replicate draws and evaluates one replication, redrawing the whole
// sample whenever any estimator comes back non-finite. The redraw loop
// is bounded; exhausting it fails the run.
func (h *Harness) replicate(dist Distribution, rng *rand.Rand, n int,
	anchor model.QuantileAnchor, names []string) (map[string]float64, error) {
	for attempt := 0; attempt < h.cfg.MaxRetries; attempt++ {
		est, ok, err := h.tryReplication(dist, rng, n, anchor, names)
		if err != nil {
			return nil, err
		}
		if ok {
			return est, nil
		}
	}
	return nil, fmt.Errorf("%w: %v redraws at n=%v %v",
		common.ErrorRetryExceeded, h.cfg.MaxRetries, n, anchor)
}

func (h *Harness) tryReplication(dist Distribution, rng *rand.Rand, n int,
	anchor model.QuantileAnchor, names []string) (map[string]float64, bool, error) {
	sample := drawSample(dist, n)
	mask := censorMask(rng, n, h.cfg.CensoredFraction)
	observed := model.NewObservationList(
		observedSample(sample, mask, h.cfg.ObservationCoefficient), mask)

	res := make(map[string]float64, len(names))
	for _, name := range names {
		var v float64
		var err error
		switch name {
		case estimator.QuantileAdjustedName:
			v, err = estimator.QuantileAdjustedMean(sample, anchor)
		case estimator.ProjectionName:
			v, err = estimator.ProjectionMean(sample, anchor)
		case estimator.KaplanMeierName:
			v, err = estimator.KaplanMeierMean(observed)
		case estimator.KaplanMeierQuantileName:
			v, err = estimator.KaplanMeierQuantileMean(observed, anchor)
		case estimator.PairwiseQuantileName:
			v, err = estimator.PairwiseQuantileMean(sample, anchor)
		default:
			return nil, false, fmt.Errorf("%w: unknown estimator %v",
				common.ErrorInvalidValue, name)
		}
		if err != nil {
			return nil, false, err
		}
		if !utils.IsFinite(v) {
			// recoverable, redraw the whole replication
			return nil, false, nil
		}
		res[name] = v
	}
	return res, true, nil
}

func aggregate(estimates []float64, trueMean float64, n int) *model.EstimatorStats {
	mse := 0.0
	for _, v := range estimates {
		d := v - trueMean
		mse += d * d
	}
	mse /= float64(len(estimates))

	return &model.EstimatorStats{
		Bias:      stat.Mean(estimates, nil) - trueMean,
		Variance:  stat.Variance(estimates, nil),
		MSE:       mse,
		ScaledMSE: float64(n) * mse,
	}
}
