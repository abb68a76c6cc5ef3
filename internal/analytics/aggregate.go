// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analytics

// CrowdAverage is the mean rating for one song across all participants
// in the snapshot. A Count of zero means the song has no ratings and the
// Mean is undefined; callers must branch on Count, never read Mean as 0.
type CrowdAverage struct {
	Mean  float64
	Count int
}

// CrowdAverages computes the per-song crowd average over the whole
// snapshot. Reports that compare multiple users call this once and share
// the result so all comparisons use the same baseline.
func (e *Engine) CrowdAverages() map[string]CrowdAverage {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, id := range e.participantIDs {
		for songID, rating := range e.vectors[id] {
			sums[songID] += rating
			counts[songID]++
		}
	}

	avgs := make(map[string]CrowdAverage, len(sums))
	for songID, sum := range sums {
		n := counts[songID]
		avgs[songID] = CrowdAverage{Mean: sum / float64(n), Count: n}
	}
	return avgs
}

// UserStat summarizes one participant's ratings. StdDev is the
// population standard deviation.
type UserStat struct {
	Mean   float64
	StdDev float64
	Count  int
}

// UserStats returns descriptive statistics for one participant's
// ratings. The second return is false when the participant has none.
func (e *Engine) UserStats(participantID string) (UserStat, bool) {
	reviews := e.reviews[participantID]
	if len(reviews) == 0 {
		return UserStat{}, false
	}
	ratings := make([]float64, len(reviews))
	for i, r := range reviews {
		ratings[i] = r.Rating
	}
	return UserStat{
		Mean:   mean(ratings),
		StdDev: stdDevPop(ratings),
		Count:  len(ratings),
	}, true
}

// userMeans returns the mean rating of every participant with at least
// one review, keyed by participant ID.
func (e *Engine) userMeans() map[string]float64 {
	means := make(map[string]float64, len(e.vectors))
	for _, id := range e.participantIDs {
		if st, ok := e.UserStats(id); ok {
			means[id] = st.Mean
		}
	}
	return means
}

// ratings returns one participant's ratings as a slice, in review order.
func (e *Engine) ratings(participantID string) []float64 {
	reviews := e.reviews[participantID]
	out := make([]float64, len(reviews))
	for i, r := range reviews {
		out[i] = r.Rating
	}
	return out
}
