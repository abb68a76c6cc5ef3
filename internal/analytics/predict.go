// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analytics

import (
	"math"

	"github.com/pdiddy/reviewlens/pkg/types"
)

// Factor weights for the predictability score. The baseline always
// contributes; the middle three join only when their signal clears the
// threshold noted on each factor.
const (
	weightBaseline    = 0.4
	weightTheme       = 0.2
	weightPopularity  = 0.15
	weightEra         = 0.15
	weightConsistency = 0.1
)

// Predictability grades how well a handful of taste signals explain the
// participant's ratings. Factor values are normalized into [0, 1] before
// weighting; the grade bands the weighted average.
func (e *Engine) Predictability(participantID string) (types.PredictionReport, error) {
	stats, ok := e.UserStats(participantID)
	if !ok {
		return types.PredictionReport{}, ErrNotFound
	}

	report := types.PredictionReport{
		UserMean:   stats.Mean,
		UserStdDev: stats.StdDev,
	}

	report.Factors = append(report.Factors, types.PredictionFactor{
		Name:        "baseline",
		Weight:      weightBaseline,
		Value:       e.normalizedMean(stats.Mean),
		Description: "the user's typical rating level",
	})

	if theme, err := e.ThemeAffinities(participantID); err == nil {
		strongest := 0.0
		for _, a := range theme.Affinities {
			if d := math.Abs(a.Diff); d > strongest {
				strongest = d
			}
		}
		if strongest > 0.2 {
			report.Factors = append(report.Factors, types.PredictionFactor{
				Name:        "themes",
				Weight:      weightTheme,
				Value:       math.Min(strongest/2, 1),
				Description: "how much thematic content moves the ratings",
			})
			if strongest > 0.6 {
				report.Insights = append(report.Insights, "ratings are strongly influenced by song themes")
			}
		}
	}

	if pop, err := e.PopularityProfile(participantID); err == nil {
		if r := math.Abs(pop.Correlation); r > 0.1 {
			report.Factors = append(report.Factors, types.PredictionFactor{
				Name:        "popularity",
				Weight:      weightPopularity,
				Value:       r,
				Description: "how much song popularity moves the ratings",
			})
			if r > 0.3 {
				report.Insights = append(report.Insights, "song popularity significantly affects the ratings")
			}
		}
	}

	if era, err := e.EraBias(participantID); err == nil && len(era.Decades) > 1 {
		means := make([]float64, len(era.Decades))
		lo, hi := era.Decades[0].Mean, era.Decades[0].Mean
		for i, d := range era.Decades {
			means[i] = d.Mean
			lo = math.Min(lo, d.Mean)
			hi = math.Max(hi, d.Mean)
		}
		if v := variancePop(means); v > 0.5 {
			report.Factors = append(report.Factors, types.PredictionFactor{
				Name:        "era",
				Weight:      weightEra,
				Value:       math.Min(v/2, 1),
				Description: "how much release era moves the ratings",
			})
		}
		if hi-lo > 1 {
			report.Insights = append(report.Insights, "strong preferences for certain musical eras")
		}
	}

	report.Factors = append(report.Factors, types.PredictionFactor{
		Name:        "consistency",
		Weight:      weightConsistency,
		Value:       math.Max(0, 1-stats.StdDev/3),
		Description: "how tightly the ratings cluster",
	})

	switch {
	case stats.StdDev < 1:
		report.Insights = append(report.Insights, "very consistent rating patterns")
	case stats.StdDev > 2:
		report.Insights = append(report.Insights, "ratings vary widely, hard to predict")
	}
	if len(report.Insights) == 0 {
		report.Insights = append(report.Insights, "taste is balanced across the measured factors")
	}

	var weightSum, scoreSum float64
	for _, f := range report.Factors {
		weightSum += f.Weight
		scoreSum += f.Weight * f.Value
	}
	if weightSum > 0 {
		report.Predictability = scoreSum / weightSum
	} else {
		report.Predictability = 0.5
	}
	report.Grade = predictionGrade(report.Predictability)
	return report, nil
}

// normalizedMean maps a mean rating into [0, 1] against the rating range
// observed in the snapshot. A corpus with a single distinct rating
// normalizes to 0.5.
func (e *Engine) normalizedMean(m float64) float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, id := range e.participantIDs {
		for _, r := range e.reviews[id] {
			lo = math.Min(lo, r.Rating)
			hi = math.Max(hi, r.Rating)
		}
	}
	if hi <= lo {
		return 0.5
	}
	return (m - lo) / (hi - lo)
}

func predictionGrade(score float64) string {
	switch {
	case score >= 0.8:
		return "A+"
	case score >= 0.7:
		return "A"
	case score >= 0.6:
		return "B"
	case score >= 0.4:
		return "C"
	default:
		return "D"
	}
}
