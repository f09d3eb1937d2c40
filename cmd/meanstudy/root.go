package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base Cobra command; the run subcommand does the work.
var rootCmd = &cobra.Command{
	Use:   "meanstudy",
	Short: "Monte-Carlo comparison of quantile-anchored and censoring-aware mean estimators",
}

// Execute runs the root Cobra command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
