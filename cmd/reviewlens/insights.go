// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/reviewlens/internal/analytics"
	"github.com/pdiddy/reviewlens/internal/store"
)

// loadEngine opens the store, reads a full snapshot, and indexes it.
// The store handle is released as soon as the snapshot is in memory.
func loadEngine(cmd *cobra.Command) (*analytics.Engine, error) {
	cfg := projectConfig(cmd)

	s, err := store.Open(cfg.Store)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	snap, err := s.Snapshot(context.Background())
	if err != nil {
		return nil, err
	}
	return analytics.New(snap, cfg.Analytics), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// --- twin ---

var twinCmd = &cobra.Command{
	Use:   "twin [participant-id]",
	Short: "Find the participant whose ratings correlate most with yours",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		result, err := eng.TasteTwin(args[0])
		if errors.Is(err, analytics.ErrNotFound) {
			return fmt.Errorf("no taste twin for %s: no reviews or no candidate with enough shared songs", args[0])
		}
		if err != nil {
			return err
		}
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return printJSON(result)
		}

		fmt.Printf("Taste twin: %s (%s)\n", result.TwinName, result.TwinID)
		fmt.Printf("Correlation %.3f over %d shared songs\n\n", result.Correlation, result.OverlapCount)
		if len(result.AlignedHotTakes) > 0 {
			fmt.Printf("%-30s  %-6s  %-6s  %-6s\n", "Shared hot take", "You", "Twin", "Crowd")
			fmt.Println(strings.Repeat("-", 56))
			for _, t := range result.AlignedHotTakes {
				fmt.Printf("%-30s  %-6.1f  %-6.1f  %-6.2f\n",
					truncate(t.TrackName, 30), t.UserRating, t.TwinRating, t.CrowdAvg)
			}
		}
		return nil
	},
}

// --- hot-takes ---

var hotTakesCmd = &cobra.Command{
	Use:   "hot-takes [participant-id]",
	Short: "Measure divergence from the crowd and rank it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		report, err := eng.HotTakeIndex(args[0])
		if errors.Is(err, analytics.ErrNotFound) {
			return fmt.Errorf("no reviews found for %s", args[0])
		}
		if err != nil {
			return err
		}
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return printJSON(report)
		}

		fmt.Printf("Hot-take index %.2f (bolder than %.0f%% of participants)\n\n",
			report.Index, report.Percentile)
		fmt.Printf("%-30s  %-6s  %-6s  %s\n", "Song", "You", "Crowd", "Delta")
		fmt.Println(strings.Repeat("-", 56))
		for _, t := range report.TopHotTakes {
			fmt.Printf("%-30s  %-6.1f  %-6.2f  %+.2f\n",
				truncate(t.TrackName, 30), t.Rating, t.CrowdAvg, t.Delta)
		}
		return nil
	},
}

// --- percentile ---

var percentileCmd = &cobra.Command{
	Use:   "percentile [participant-id]",
	Short: "Rank your average rating overall and within your cohorts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		report, err := eng.CohortReport(args[0])
		if errors.Is(err, analytics.ErrNotFound) {
			return fmt.Errorf("no reviews found for %s", args[0])
		}
		if err != nil {
			return err
		}
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return printJSON(report)
		}

		fmt.Printf("Average rating %.2f over %d reviews (corpus average %.2f)\n",
			report.UserMean, report.ReviewCount, report.OverallMean)
		fmt.Printf("Higher than or equal to %.0f%% of participants\n\n", report.AllPercentile)
		for _, c := range report.Cohorts {
			if c.Suppressed {
				fmt.Printf("  %-14s  suppressed (cohort too small)\n", c.Dimension)
				continue
			}
			fmt.Printf("  %-14s  %s: %.0f%% of %d\n", c.Dimension, c.Value, c.Percentile, c.CohortSize)
		}
		return nil
	},
}

// --- themes ---

var themesCmd = &cobra.Command{
	Use:   "themes [participant-id]",
	Short: "Relate thematic content to your ratings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		report, err := eng.ThemeAffinities(args[0])
		if errors.Is(err, analytics.ErrNotFound) {
			return fmt.Errorf("no reviews found for %s", args[0])
		}
		if err != nil {
			return err
		}
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return printJSON(report)
		}

		fmt.Printf("Theme personality: %s\n\n", report.Personality)
		fmt.Printf("%-18s  %-8s  %-14s  %s\n", "Theme", "Diff", "Present/Absent", "Songs")
		fmt.Println(strings.Repeat("-", 56))
		for _, a := range report.Affinities {
			fmt.Printf("%-18s  %+-8.2f  %.2f / %.2f    %d/%d\n",
				a.Theme, a.Diff, a.HighMean, a.LowMean, a.HighCount, a.LowCount)
		}
		fmt.Printf("\nSong length correlation: %+.2f (%s)\n", report.LengthCorrelation, report.LengthStrength)
		return nil
	},
}

// --- era ---

var eraCmd = &cobra.Command{
	Use:   "era [participant-id]",
	Short: "Show rating bias across release decades",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		report, err := eng.EraBias(args[0])
		if errors.Is(err, analytics.ErrNotFound) {
			return fmt.Errorf("no dated reviews found for %s", args[0])
		}
		if err != nil {
			return err
		}
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return printJSON(report)
		}

		for _, d := range report.Decades {
			fmt.Printf("  %ds  %.2f over %d songs\n", d.Decade, d.Mean, d.Count)
		}
		fmt.Printf("\nBest decade %ds, worst %ds\n", report.BestDecade, report.WorstDecade)
		fmt.Printf("Trend %s (slope %+.4f per decade)\n", report.TrendDirection, report.TrendSlope)
		return nil
	},
}

// --- popularity ---

var popularityCmd = &cobra.Command{
	Use:   "popularity [participant-id]",
	Short: "Relate song popularity to your ratings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		report, err := eng.PopularityProfile(args[0])
		if errors.Is(err, analytics.ErrNotFound) {
			return fmt.Errorf("no ranked songs among reviews for %s", args[0])
		}
		if err != nil {
			return err
		}
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return printJSON(report)
		}

		fmt.Printf("Popularity profile: %s (r=%+.2f vs rank, %s, %d ranked songs)\n\n",
			report.Personality, report.Correlation, report.Strength, report.RankedSongs)
		fmt.Println("Most popular rated songs:")
		for _, s := range report.PopularExamples {
			fmt.Printf("  #%-5d %-30s  %.1f\n", s.PopularityRank, truncate(s.TrackName, 30), s.Rating)
		}
		fmt.Println("Most obscure rated songs:")
		for _, s := range report.ObscureExamples {
			fmt.Printf("  #%-5d %-30s  %.1f\n", s.PopularityRank, truncate(s.TrackName, 30), s.Rating)
		}
		return nil
	},
}

// --- cadence ---

var cadenceCmd = &cobra.Command{
	Use:   "cadence [participant-id]",
	Short: "Derive reviewing habits and a behavioral archetype",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		report, err := eng.CadenceArchetype(args[0])
		if errors.Is(err, analytics.ErrNotFound) {
			return fmt.Errorf("no reviews found for %s", args[0])
		}
		if err != nil {
			return err
		}
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return printJSON(report)
		}

		fmt.Printf("Archetype: %s (%s person, most active on %s at %02d:00)\n",
			report.Archetype, report.TimePreference, report.DayPreference, report.MostActiveHour)
		fmt.Printf("Review lag: mean %.1f days, median %.1f days\n",
			report.Lag.MeanDays, report.Lag.MedianDays)
		fmt.Printf("%.1f reviews per active day over %d days, %d binge streaks\n",
			report.ReviewsPerActiveDay, report.ActiveDays, report.StreakCount)
		return nil
	},
}

// --- predict ---

var predictCmd = &cobra.Command{
	Use:   "predict [participant-id]",
	Short: "Grade how predictable your ratings are",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		report, err := eng.Predictability(args[0])
		if errors.Is(err, analytics.ErrNotFound) {
			return fmt.Errorf("no reviews found for %s", args[0])
		}
		if err != nil {
			return err
		}
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return printJSON(report)
		}

		fmt.Printf("Predictability grade %s (score %.2f)\n\n", report.Grade, report.Predictability)
		for _, f := range report.Factors {
			fmt.Printf("  %-12s  weight %.2f  value %.2f  %s\n", f.Name, f.Weight, f.Value, f.Description)
		}
		fmt.Println()
		for _, insight := range report.Insights {
			fmt.Printf("  - %s\n", insight)
		}
		return nil
	},
}

// --- albums ---

var albumsCmd = &cobra.Command{
	Use:   "albums [participant-id]",
	Short: "Name your favorite and least favorite albums",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		report, err := eng.AlbumPreferences(args[0])
		if errors.Is(err, analytics.ErrNotFound) {
			return fmt.Errorf("no album with enough rated songs for %s", args[0])
		}
		if err != nil {
			return err
		}
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return printJSON(report)
		}

		fmt.Printf("Favorite album: %s (%.2f over %d songs); %d others liked it more\n",
			report.Favorite.Album, report.Favorite.Mean, report.Favorite.Count, report.LikedFavoriteMore)
		fmt.Printf("Least favorite: %s (%.2f over %d songs); %d others liked it less\n",
			report.LeastFavorite.Album, report.LeastFavorite.Mean, report.LeastFavorite.Count, report.LikedLeastLess)
		return nil
	},
}

// truncate shortens s to max runes, slicing on rune boundaries so
// multi-byte track names never render as broken UTF-8.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func init() {
	cards := []*cobra.Command{
		twinCmd, hotTakesCmd, percentileCmd, themesCmd, eraCmd,
		popularityCmd, cadenceCmd, predictCmd, albumsCmd,
	}
	for _, c := range cards {
		c.Flags().Bool("json", false, "output the report as JSON")
		rootCmd.AddCommand(c)
	}
}
