// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the reviewlens CLI. Each insight
// card is a subcommand over the shared analytics engine; seed loads the
// review corpus. See docs/ARCHITECTURE § CLI Surface.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/reviewlens/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the reviewlens CLI.
var rootCmd = &cobra.Command{
	Use:   "reviewlens",
	Short: "Personalized analytics over a music-review project",
	Long: `reviewlens derives per-participant insights from a corpus of song
reviews: taste-twin matching, crowd divergence, cohort percentiles, theme
and era affinities, popularity bias, reviewing cadence, and a
predictability report.

Seed the local database once with "reviewlens seed", then query any
insight card by participant ID.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./reviewlens.yaml or ~/.config/reviewlens/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "SQLite database path (overrides config)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("reviewlens")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "reviewlens"))
		}
	}

	viper.SetEnvPrefix("REVIEWLENS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// projectConfig assembles the effective configuration from the config
// file, environment, and flags.
func projectConfig(cmd *cobra.Command) types.ProjectConfig {
	var cfg types.ProjectConfig
	cfg.Store.DBPath = viper.GetString("store.db_path")
	cfg.Store.FetchBatchSize = viper.GetInt("store.fetch_batch_size")

	cfg.Analytics.MinOverlap = viper.GetInt("analytics.min_overlap")
	cfg.Analytics.MinCohortSize = viper.GetInt("analytics.min_cohort_size")
	cfg.Analytics.TopHotTakes = viper.GetInt("analytics.top_hot_takes")
	cfg.Analytics.TopAlignedHotTakes = viper.GetInt("analytics.top_aligned_hot_takes")
	cfg.Analytics.StreakMinLength = viper.GetInt("analytics.streak_min_length")
	cfg.Analytics.StreakWindow = viper.GetDuration("analytics.streak_window")
	cfg.Analytics.Workers = viper.GetInt("analytics.workers")

	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.Store.DBPath = db
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
