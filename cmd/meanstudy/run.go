package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/uyouii/mean-estimation/model"
	"github.com/uyouii/mean-estimation/simulation"
	"github.com/uyouii/mean-estimation/utils"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run both estimator sweeps and print the statistics tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStudy(cmd)
	},
}

func init() {
	flags := runCmd.Flags()

	flags.String("config", "", "optional yaml config file")
	flags.Float64("quantile", simulation.DefaultQuantileLevel, "anchor level q for the sample size sweep")
	flags.Int("replications", simulation.DefaultReplications, "replications M per configuration")
	flags.Float64("censored-fraction", simulation.DefaultCensoredFraction, "share of each sample that is censored")
	flags.Float64("observation-coefficient", simulation.DefaultObservationCoefficient, "multiplicative shrinkage of censored values")
	flags.Int("n-min", simulation.DefaultSampleSizeMin, "smallest sample size")
	flags.Int("n-max", simulation.DefaultSampleSizeMax, "largest sample size")
	flags.Int("n-step", simulation.DefaultSampleSizeStep, "sample size step")
	flags.Int("fixed-n", simulation.DefaultFixedSampleSize, "sample size for the quantile sweep")
	flags.Float64("q-min", simulation.DefaultQuantileMin, "lowest anchor level in the quantile sweep")
	flags.Float64("q-max", simulation.DefaultQuantileMax, "highest anchor level in the quantile sweep")
	flags.Int("q-grid", simulation.DefaultQuantileGridSize, "grid points in the quantile sweep")
	flags.Uint64("seed", simulation.DefaultSeed, "base random seed")
	flags.String("dist", "uniform", "true distribution family: uniform or normal")
	flags.Float64("dist-a", 0, "uniform lower bound / normal mean")
	flags.Float64("dist-b", 1, "uniform upper bound / normal stddev")

	viper.BindPFlags(flags)
	rootCmd.AddCommand(runCmd)
}

func runStudy(cmd *cobra.Command) error {
	if path := viper.GetString("config"); path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("could not read config file: %w", err)
		}
	}

	cfg := simulation.Config{
		QuantileLevel:          viper.GetFloat64("quantile"),
		Replications:           viper.GetInt("replications"),
		CensoredFraction:       viper.GetFloat64("censored-fraction"),
		ObservationCoefficient: viper.GetFloat64("observation-coefficient"),
		SampleSizeMin:          viper.GetInt("n-min"),
		SampleSizeMax:          viper.GetInt("n-max"),
		SampleSizeStep:         viper.GetInt("n-step"),
		FixedSampleSize:        viper.GetInt("fixed-n"),
		QuantileMin:            viper.GetFloat64("q-min"),
		QuantileMax:            viper.GetFloat64("q-max"),
		QuantileGridSize:       viper.GetInt("q-grid"),
		Seed:                   viper.GetUint64("seed"),
	}

	factory, err := buildFactory()
	if err != nil {
		return err
	}

	harness, err := simulation.NewHarness(cfg, factory)
	if err != nil {
		return err
	}

	res, err := harness.Run(cmd.Context())
	if err != nil {
		return err
	}

	printStatistics(os.Stdout, "sweep by sample size", res.BySampleSize)
	printStatistics(os.Stdout, "sweep by quantile level", res.ByQuantile)
	return nil
}

func buildFactory() (simulation.DistributionFactory, error) {
	a, b := viper.GetFloat64("dist-a"), viper.GetFloat64("dist-b")
	switch dist := viper.GetString("dist"); dist {
	case "uniform":
		return simulation.UniformFactory(a, b), nil
	case "normal":
		return simulation.NormalFactory(a, b), nil
	default:
		return nil, fmt.Errorf("unknown distribution family: %v", dist)
	}
}

func printStatistics(out *os.File, title string, configs []*model.ConfigurationStatistics) {
	fmt.Fprintf(out, "\n%s\n", title)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "n\tq\testimator\tbias\tvariance\tmse\tn*mse")
	for _, cfg := range configs {
		if cfg.IsEmpty() {
			continue
		}
		names := make([]string, 0, len(cfg.Estimators))
		for name := range cfg.Estimators {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			stats := cfg.Estimators[name]
			fmt.Fprintf(w, "%v\t%v\t%s\t%v\t%v\t%v\t%v\n",
				cfg.SampleSize, utils.FormatFloat(cfg.QuantileLevel, 4), name,
				utils.FormatFloat(stats.Bias, 6), utils.FormatFloat(stats.Variance, 6),
				utils.FormatFloat(stats.MSE, 6), utils.FormatFloat(stats.ScaledMSE, 6))
		}
	}
	w.Flush()
}
