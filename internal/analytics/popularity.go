// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analytics

import (
	"sort"

	"github.com/pdiddy/reviewlens/pkg/types"
)

// Popularity personality labels. Thresholds apply to the popularity
// affinity, which is the correlation with the rank axis inverted so that
// positive means "likes popular songs".
const (
	PopMainstream  = "mainstream_lover"
	PopAppreciator = "popularity_appreciator"
	PopBalanced    = "balanced"
	PopIndie       = "indie_enthusiast"
	PopUnderground = "underground_explorer"
)

// PopularityProfile correlates the participant's ratings with song
// popularity rank across their rated songs that carry a rank. The
// reported Correlation is against the raw rank, where a lower rank means
// a more popular song; the personality label reads the inverted sign.
// ErrNotFound is returned when none of the user's rated songs are ranked.
func (e *Engine) PopularityProfile(participantID string) (types.PopularityReport, error) {
	reviews := e.reviews[participantID]
	if len(reviews) == 0 {
		return types.PopularityReport{}, ErrNotFound
	}

	var ranked []types.RatedSong
	var ranks, ratings []float64
	for _, r := range reviews {
		song, ok := e.songs[r.SongID]
		if !ok || song.PopularityRank <= 0 {
			continue
		}
		ranked = append(ranked, types.RatedSong{
			SongID:         song.ID,
			TrackName:      song.TrackName,
			Album:          song.Album,
			Year:           song.Year,
			PopularityRank: song.PopularityRank,
			Rating:         r.Rating,
		})
		ranks = append(ranks, float64(song.PopularityRank))
		ratings = append(ratings, r.Rating)
	}
	if len(ranked) == 0 {
		return types.PopularityReport{}, ErrNotFound
	}

	r := pearson(ranks, ratings)
	affinity := -r

	var personality string
	switch {
	case affinity > 0.3:
		personality = PopMainstream
	case affinity > 0.1:
		personality = PopAppreciator
	case affinity < -0.3:
		personality = PopUnderground
	case affinity < -0.1:
		personality = PopIndie
	default:
		personality = PopBalanced
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].PopularityRank != ranked[j].PopularityRank {
			return ranked[i].PopularityRank < ranked[j].PopularityRank
		}
		return ranked[i].SongID < ranked[j].SongID
	})

	report := types.PopularityReport{
		Correlation: r,
		Strength:    correlationStrength(r),
		Personality: personality,
		RankedSongs: len(ranked),
	}

	n := 3
	if n > len(ranked) {
		n = len(ranked)
	}
	report.PopularExamples = append(report.PopularExamples, ranked[:n]...)
	for i := len(ranked) - 1; i >= len(ranked)-n; i-- {
		report.ObscureExamples = append(report.ObscureExamples, ranked[i])
	}
	return report, nil
}
