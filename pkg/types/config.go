// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// StoreConfig holds settings for the SQLite storage collaborator.
type StoreConfig struct {
	// DBPath is the SQLite database file (default "data/reviewlens.db").
	DBPath string `json:"db_path" yaml:"db_path"`

	// FetchBatchSize is the page size for snapshot reads (default 1000).
	// Snapshots always fetch every page; a partial read is an error.
	FetchBatchSize int `json:"fetch_batch_size" yaml:"fetch_batch_size"`
}

// AnalyticsConfig holds the engine's tunable thresholds. Zero values fall
// back to the defaults documented on each field.
type AnalyticsConfig struct {
	// MinOverlap is the minimum number of co-rated songs required before a
	// taste-twin candidate is compared at all (default 5). Small corpora
	// can lower this to 3; the engine never infers a value from corpus size.
	MinOverlap int `json:"min_overlap" yaml:"min_overlap"`

	// MinCohortSize is the smallest cohort for which a percentile is
	// reported (default 3). Smaller cohorts are suppressed.
	MinCohortSize int `json:"min_cohort_size" yaml:"min_cohort_size"`

	// TopHotTakes is how many hot takes the divergence report lists (default 5).
	TopHotTakes int `json:"top_hot_takes" yaml:"top_hot_takes"`

	// TopAlignedHotTakes is how many shared hot takes the taste-twin
	// report lists (default 10).
	TopAlignedHotTakes int `json:"top_aligned_hot_takes" yaml:"top_aligned_hot_takes"`

	// StreakMinLength is the review count that qualifies a run as a binge
	// streak (default 20).
	StreakMinLength int `json:"streak_min_length" yaml:"streak_min_length"`

	// StreakWindow is the trailing window a streak must fit in (default 3h).
	StreakWindow time.Duration `json:"streak_window" yaml:"streak_window"`

	// Workers bounds the fan-out of the per-candidate correlation loop
	// (default 4). Results do not depend on the worker count.
	Workers int `json:"workers" yaml:"workers"`
}

// Defaults for AnalyticsConfig.
const (
	DefaultMinOverlap         = 5
	DefaultMinCohortSize      = 3
	DefaultTopHotTakes        = 5
	DefaultTopAlignedHotTakes = 10
	DefaultStreakMinLength    = 20
	DefaultStreakWindow       = 3 * time.Hour
	DefaultWorkers            = 4
)

// WithDefaults returns a copy with zero fields replaced by defaults.
func (c AnalyticsConfig) WithDefaults() AnalyticsConfig {
	if c.MinOverlap <= 0 {
		c.MinOverlap = DefaultMinOverlap
	}
	if c.MinCohortSize <= 0 {
		c.MinCohortSize = DefaultMinCohortSize
	}
	if c.TopHotTakes <= 0 {
		c.TopHotTakes = DefaultTopHotTakes
	}
	if c.TopAlignedHotTakes <= 0 {
		c.TopAlignedHotTakes = DefaultTopAlignedHotTakes
	}
	if c.StreakMinLength <= 0 {
		c.StreakMinLength = DefaultStreakMinLength
	}
	if c.StreakWindow <= 0 {
		c.StreakWindow = DefaultStreakWindow
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	return c
}

// ProjectConfig groups all configuration sections.
type ProjectConfig struct {
	Store     StoreConfig     `json:"store" yaml:"store"`
	Analytics AnalyticsConfig `json:"analytics" yaml:"analytics"`
}
