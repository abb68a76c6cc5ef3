// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analytics

import (
	"sort"

	"github.com/pdiddy/reviewlens/pkg/types"
)

// Trend direction labels and the slope band treated as flat.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"

	trendSlopeEpsilon = 0.01
)

// EraBias buckets the participant's rated songs by release decade and
// fits a least-squares trend of mean rating on decade. A single decade
// is stable with slope 0 by convention. Songs without a known release
// year are excluded; ErrNotFound is returned when nothing remains.
func (e *Engine) EraBias(participantID string) (types.EraReport, error) {
	reviews := e.reviews[participantID]
	if len(reviews) == 0 {
		return types.EraReport{}, ErrNotFound
	}

	byDecade := make(map[int][]float64)
	for _, r := range reviews {
		song, ok := e.songs[r.SongID]
		if !ok {
			continue
		}
		decade := song.Decade()
		if decade == 0 {
			continue
		}
		byDecade[decade] = append(byDecade[decade], r.Rating)
	}
	if len(byDecade) == 0 {
		return types.EraReport{}, ErrNotFound
	}

	decades := make([]int, 0, len(byDecade))
	for d := range byDecade {
		decades = append(decades, d)
	}
	sort.Ints(decades)

	report := types.EraReport{}
	var xs, ys []float64
	for _, d := range decades {
		stat := types.DecadeStat{
			Decade: d,
			Mean:   mean(byDecade[d]),
			Count:  len(byDecade[d]),
		}
		report.Decades = append(report.Decades, stat)
		xs = append(xs, float64(d))
		ys = append(ys, stat.Mean)
	}

	// Best and worst by mean; the earlier decade wins a tie because the
	// scan goes in ascending decade order with strict comparisons.
	best, worst := report.Decades[0], report.Decades[0]
	for _, stat := range report.Decades[1:] {
		if stat.Mean > best.Mean {
			best = stat
		}
		if stat.Mean < worst.Mean {
			worst = stat
		}
	}
	report.BestDecade = best.Decade
	report.WorstDecade = worst.Decade

	if len(report.Decades) >= 2 {
		report.TrendSlope = olsSlope(xs, ys)
	}
	switch {
	case report.TrendSlope > trendSlopeEpsilon:
		report.TrendDirection = TrendIncreasing
	case report.TrendSlope < -trendSlopeEpsilon:
		report.TrendDirection = TrendDecreasing
	default:
		report.TrendDirection = TrendStable
	}
	return report, nil
}
