// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analytics

import (
	"math"
	"sort"

	"github.com/pdiddy/reviewlens/pkg/types"
)

// Theme personality classification labels.
const (
	PersonalityEnthusiast = "theme_enthusiast"
	PersonalityAvoider    = "theme_avoider"
	PersonalityOpenMinded = "open_minded"
	PersonalityBalanced   = "balanced"
)

// personalityDiffThreshold is the mean top-3 difference beyond which a
// user counts as a theme enthusiast (positive) or avoider (negative).
const personalityDiffThreshold = 0.5

// ThemeAffinities relates each thematic attribute to the participant's
// own ratings. For a theme, the score is the mean rating of songs where
// the theme is present (ordinal score >= 2) minus songs where it is
// absent (score == 1); an empty side falls back to the user's overall
// mean instead of failing. Song length, a continuous attribute, is
// related by Pearson correlation instead.
func (e *Engine) ThemeAffinities(participantID string) (types.ThemeReport, error) {
	reviews := e.reviews[participantID]
	if len(reviews) == 0 {
		return types.ThemeReport{}, ErrNotFound
	}

	stats, _ := e.UserStats(participantID)
	report := types.ThemeReport{UserMean: stats.Mean}

	var lengths, ratings []float64
	for _, r := range reviews {
		song, ok := e.songs[r.SongID]
		if !ok {
			continue
		}
		if song.LengthSeconds > 0 {
			lengths = append(lengths, song.LengthSeconds)
			ratings = append(ratings, r.Rating)
		}
	}
	report.LengthCorrelation = pearson(lengths, ratings)
	report.LengthStrength = correlationStrength(report.LengthCorrelation)

	for _, theme := range types.ThemeKeys {
		report.Affinities = append(report.Affinities, e.themeAffinity(reviews, theme, stats.Mean))
	}

	scored := make([]types.ThemeAffinity, 0, len(report.Affinities))
	for _, a := range report.Affinities {
		if a.Diff != 0 {
			scored = append(scored, a)
		}
	}
	sort.Slice(scored, func(i, j int) bool {
		ai, aj := math.Abs(scored[i].Diff), math.Abs(scored[j].Diff)
		if ai != aj {
			return ai > aj
		}
		return scored[i].Theme < scored[j].Theme
	})

	for _, a := range scored {
		if a.Diff > 0 && len(report.TopAffinities) < 3 {
			report.TopAffinities = append(report.TopAffinities, a)
		}
		if a.Diff < 0 && len(report.TopAversions) < 3 {
			report.TopAversions = append(report.TopAversions, a)
		}
	}

	// With no true aversions, list the weakest positive preferences as
	// relative aversions so the report always has a second axis.
	if len(report.TopAversions) == 0 && len(scored) > 0 {
		weakest := make([]types.ThemeAffinity, 0, 3)
		for i := len(scored) - 1; i >= 0 && len(weakest) < 3; i-- {
			if scored[i].Diff > 0 {
				a := scored[i]
				a.Relative = true
				weakest = append(weakest, a)
			}
		}
		report.TopAversions = weakest
	}

	report.Personality = classifyThemePersonality(report.TopAffinities, report.TopAversions)
	return report, nil
}

// themeAffinity computes one theme's present-vs-absent rating difference.
func (e *Engine) themeAffinity(reviews []types.Review, theme string, userMean float64) types.ThemeAffinity {
	var high, low []float64
	for _, r := range reviews {
		song, ok := e.songs[r.SongID]
		if !ok {
			continue
		}
		score, ok := song.Themes[theme]
		if !ok {
			continue
		}
		switch {
		case score >= 2:
			high = append(high, r.Rating)
		case score == 1:
			low = append(low, r.Rating)
		}
	}

	highMean, lowMean := userMean, userMean
	if len(high) > 0 {
		highMean = mean(high)
	}
	if len(low) > 0 {
		lowMean = mean(low)
	}

	return types.ThemeAffinity{
		Theme:     theme,
		Diff:      highMean - lowMean,
		HighMean:  highMean,
		LowMean:   lowMean,
		HighCount: len(high),
		LowCount:  len(low),
	}
}

func classifyThemePersonality(affinities, aversions []types.ThemeAffinity) string {
	var posSum, negSum float64
	truePos, trueNeg := 0, 0
	for _, a := range affinities {
		posSum += a.Diff
		truePos++
	}
	for _, a := range aversions {
		if !a.Relative {
			negSum += a.Diff
			trueNeg++
		}
	}

	switch {
	case truePos > 0 && posSum/float64(truePos) > personalityDiffThreshold:
		return PersonalityEnthusiast
	case trueNeg > 0 && negSum/float64(trueNeg) < -personalityDiffThreshold:
		return PersonalityAvoider
	case truePos == 0 && trueNeg == 0:
		return PersonalityOpenMinded
	default:
		return PersonalityBalanced
	}
}
