// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analytics

import (
	"math"
	"sort"

	"github.com/pdiddy/reviewlens/pkg/types"
)

// HotTakeIndex measures how far the participant's ratings deviate from
// the crowd and ranks that deviation against every other participant.
// The crowd-average snapshot is computed once and shared across all
// users so the percentile comparison is internally consistent.
func (e *Engine) HotTakeIndex(participantID string) (types.HotTakeReport, error) {
	target := e.vectors[participantID]
	if len(target) == 0 {
		return types.HotTakeReport{}, ErrNotFound
	}

	crowd := e.CrowdAverages()

	takes := e.hotTakes(target, crowd)
	index, ok := hotTakeIndex(target, crowd)
	if !ok {
		return types.HotTakeReport{}, ErrNotFound
	}

	// Index every other participant against the same crowd snapshot.
	var others []float64
	for _, id := range e.participantIDs {
		if id == participantID {
			continue
		}
		if idx, ok := hotTakeIndex(e.vectors[id], crowd); ok {
			others = append(others, idx)
		}
	}

	percentile := 0.0
	if len(others) > 0 {
		below := 0
		for _, idx := range others {
			if idx < index {
				below++
			}
		}
		percentile = 100 * float64(below) / float64(len(others))
	}

	sort.Slice(takes, func(i, j int) bool {
		ai, aj := math.Abs(takes[i].Delta), math.Abs(takes[j].Delta)
		if ai != aj {
			return ai > aj
		}
		return takes[i].SongID < takes[j].SongID
	})
	if len(takes) > e.cfg.TopHotTakes {
		takes = takes[:e.cfg.TopHotTakes]
	}

	return types.HotTakeReport{
		Index:       index,
		Percentile:  percentile,
		TopHotTakes: takes,
	}, nil
}

// hotTakeIndex is the mean absolute delta between a rating vector and
// the crowd averages. Songs without a defined crowd average are excluded
// from the mean rather than counted as zero deviation. The second return
// is false when no song has a defined average.
func hotTakeIndex(vector map[string]float64, crowd map[string]CrowdAverage) (float64, bool) {
	var sum float64
	var n int
	for songID, rating := range vector {
		avg, ok := crowd[songID]
		if !ok || avg.Count == 0 {
			continue
		}
		sum += math.Abs(rating - avg.Mean)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// hotTakes materializes the per-song deltas for the report.
func (e *Engine) hotTakes(vector map[string]float64, crowd map[string]CrowdAverage) []types.HotTake {
	var takes []types.HotTake
	for songID, rating := range vector {
		avg, ok := crowd[songID]
		if !ok || avg.Count == 0 {
			continue
		}
		takes = append(takes, types.HotTake{
			SongID:    songID,
			TrackName: e.trackName(songID),
			Rating:    rating,
			CrowdAvg:  avg.Mean,
			Delta:     rating - avg.Mean,
		})
	}
	return takes
}
