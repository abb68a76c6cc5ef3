// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analytics

import (
	"math"
	"sort"
	"sync"

	"github.com/pdiddy/reviewlens/pkg/types"
)

// corrTieEpsilon is the correlation difference below which two taste-twin
// candidates count as tied and the larger overlap wins.
const corrTieEpsilon = 0.01

// twinCandidate is one scored candidate from the pairwise search.
type twinCandidate struct {
	id      string
	corr    float64
	overlap int
}

// TasteTwin finds the other participant whose ratings correlate most
// strongly with the target's over their co-rated songs. Candidates with
// fewer than MinOverlap co-rated songs are not compared at all.
// Candidates within corrTieEpsilon of the best correlation count as
// tied; ties go to the larger overlap, then the smaller participant ID.
// ErrNotFound is returned when the target has no reviews or no
// candidate qualifies.
func (e *Engine) TasteTwin(participantID string) (types.TasteTwinResult, error) {
	target := e.vectors[participantID]
	if len(target) == 0 {
		return types.TasteTwinResult{}, ErrNotFound
	}

	candidates := e.scoreCandidates(participantID, target)
	if len(candidates) == 0 {
		return types.TasteTwinResult{}, ErrNotFound
	}
	best := selectTwin(candidates)

	crowd := e.CrowdAverages()
	result := types.TasteTwinResult{
		TwinID:          best.id,
		TwinName:        e.participants[best.id].Name,
		Correlation:     best.corr,
		OverlapCount:    best.overlap,
		AlignedHotTakes: e.alignedHotTakes(target, e.vectors[best.id], crowd),
	}
	return result, nil
}

// selectTwin picks the winner from a non-empty candidate set. The rule
// reads the whole set before deciding, so the result cannot depend on
// the order candidates arrived from the workers: the best correlation
// is found first, everything within corrTieEpsilon of it counts as
// tied, and ties resolve by larger overlap, then smaller ID.
func selectTwin(candidates []twinCandidate) twinCandidate {
	maxCorr := candidates[0].corr
	for _, c := range candidates[1:] {
		if c.corr > maxCorr {
			maxCorr = c.corr
		}
	}

	var best twinCandidate
	found := false
	for _, c := range candidates {
		if maxCorr-c.corr >= corrTieEpsilon {
			continue
		}
		switch {
		case !found:
			best, found = c, true
		case c.overlap > best.overlap:
			best = c
		case c.overlap == best.overlap && c.id < best.id:
			best = c
		}
	}
	return best
}

// scoreCandidates fans the per-candidate correlation out across the
// configured worker count. Each candidate is independent and read-only,
// so execution order cannot affect the scores.
func (e *Engine) scoreCandidates(targetID string, target map[string]float64) []twinCandidate {
	jobs := make(chan string)
	results := make(chan twinCandidate)

	var wg sync.WaitGroup
	for w := 0; w < e.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				if c, ok := e.scoreCandidate(target, e.vectors[id], id); ok {
					results <- c
				}
			}
		}()
	}

	go func() {
		for _, id := range e.participantIDs {
			if id != targetID {
				jobs <- id
			}
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var candidates []twinCandidate
	for c := range results {
		candidates = append(candidates, c)
	}
	return candidates
}

// scoreCandidate computes the Pearson correlation between the target and
// one candidate over their co-rated songs. It returns false for
// candidates below the minimum overlap; that gate is internal to the
// search and surfaces only as absence from the result set.
func (e *Engine) scoreCandidate(target, candidate map[string]float64, candidateID string) (twinCandidate, bool) {
	overlap := make([]string, 0, len(target))
	for songID := range target {
		if _, ok := candidate[songID]; ok {
			overlap = append(overlap, songID)
		}
	}
	if len(overlap) < e.cfg.MinOverlap {
		return twinCandidate{}, false
	}

	x := make([]float64, len(overlap))
	y := make([]float64, len(overlap))
	for i, songID := range overlap {
		x[i] = target[songID]
		y[i] = candidate[songID]
	}

	return twinCandidate{
		id:      candidateID,
		corr:    pearson(x, y),
		overlap: len(overlap),
	}, true
}

// alignedHotTakes lists the co-rated songs where both parties disagree
// with the crowd in the same direction, strongest disagreements first.
func (e *Engine) alignedHotTakes(target, twin map[string]float64, crowd map[string]CrowdAverage) []types.AlignedHotTake {
	var takes []types.AlignedHotTake
	for songID, userRating := range target {
		twinRating, ok := twin[songID]
		if !ok {
			continue
		}
		avg, ok := crowd[songID]
		if !ok || avg.Count == 0 {
			continue
		}

		userDelta := userRating - avg.Mean
		twinDelta := twinRating - avg.Mean
		if userDelta*twinDelta <= 0 {
			continue
		}

		takes = append(takes, types.AlignedHotTake{
			SongID:     songID,
			TrackName:  e.trackName(songID),
			UserRating: userRating,
			TwinRating: twinRating,
			CrowdAvg:   avg.Mean,
			Strength:   math.Abs(userDelta) + math.Abs(twinDelta),
		})
	}

	sort.Slice(takes, func(i, j int) bool {
		if takes[i].Strength != takes[j].Strength {
			return takes[i].Strength > takes[j].Strength
		}
		return takes[i].SongID < takes[j].SongID
	})
	if len(takes) > e.cfg.TopAlignedHotTakes {
		takes = takes[:e.cfg.TopAlignedHotTakes]
	}
	return takes
}
