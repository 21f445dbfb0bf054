package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "pdash",
	Short: "pdash - portfolio dashboard backend",
	Long: `pdash serves a trading-portfolio dashboard backend. Without a live
trading connection it builds a synthetic example portfolio from historical
daily price archives: an equal-dollar buy-and-hold allocation aggregated into
an equity curve, positions, an account snapshot and a benchmark series.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
