// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analytics

import (
	"errors"
	"fmt"

	"github.com/pdiddy/reviewlens/pkg/types"
)

// CohortPercentile ranks the participant's mean rating within the cohort
// of other participants sharing one categorical attribute value. Cohorts
// below MinCohortSize are withheld: small cohorts make for meaningless
// and potentially de-anonymizing percentiles. Suppression is reported as
// ErrSuppressed alongside a result with Suppressed set, so callers can
// branch on the sentinel or inspect the entry. An unknown dimension is a
// plain error; a missing attribute value suppresses.
func (e *Engine) CohortPercentile(participantID, dimension string) (types.CohortPercentile, error) {
	if !validDimension(dimension) {
		return types.CohortPercentile{}, fmt.Errorf("unknown cohort dimension %q", dimension)
	}

	target, ok := e.participants[participantID]
	if !ok {
		return types.CohortPercentile{}, ErrNotFound
	}
	stats, ok := e.UserStats(participantID)
	if !ok {
		return types.CohortPercentile{}, ErrNotFound
	}

	result := types.CohortPercentile{
		Dimension: dimension,
		Value:     target.CohortValue(dimension),
	}
	if result.Value == "" {
		result.Suppressed = true
		return result, ErrSuppressed
	}

	means := e.userMeans()
	var cohort []float64
	for _, id := range e.participantIDs {
		if id == participantID {
			continue
		}
		if e.participants[id].CohortValue(dimension) != result.Value {
			continue
		}
		if m, ok := means[id]; ok {
			cohort = append(cohort, m)
		}
	}

	result.CohortSize = len(cohort)
	if result.CohortSize < e.cfg.MinCohortSize {
		result.Suppressed = true
		return result, ErrSuppressed
	}

	atOrBelow := 0
	for _, m := range cohort {
		if m <= stats.Mean {
			atOrBelow++
		}
	}
	result.Percentile = 100 * float64(atOrBelow) / float64(result.CohortSize)
	return result, nil
}

// CohortReport evaluates every cohort dimension independently alongside
// the participant's overall standing. A suppressed dimension never
// blocks the others.
func (e *Engine) CohortReport(participantID string) (types.CohortReport, error) {
	stats, ok := e.UserStats(participantID)
	if !ok {
		return types.CohortReport{}, ErrNotFound
	}

	var all []float64
	for _, id := range e.participantIDs {
		for _, r := range e.reviews[id] {
			all = append(all, r.Rating)
		}
	}

	report := types.CohortReport{
		UserMean:    stats.Mean,
		ReviewCount: stats.Count,
		OverallMean: mean(all),
	}

	means := e.userMeans()
	others := 0
	atOrBelow := 0
	for _, id := range e.participantIDs {
		if id == participantID {
			continue
		}
		m, ok := means[id]
		if !ok {
			continue
		}
		others++
		if m <= stats.Mean {
			atOrBelow++
		}
	}
	if others > 0 {
		report.AllPercentile = 100 * float64(atOrBelow) / float64(others)
	}

	for _, dim := range types.CohortDimensions {
		cp, err := e.CohortPercentile(participantID, dim)
		if err != nil && !errors.Is(err, ErrSuppressed) {
			// Dimensions are independent; record the failure as a
			// suppressed entry rather than abandoning the report.
			cp = types.CohortPercentile{Dimension: dim, Suppressed: true}
		}
		report.Cohorts = append(report.Cohorts, cp)
	}
	return report, nil
}

func validDimension(dimension string) bool {
	for _, d := range types.CohortDimensions {
		if d == dimension {
			return true
		}
	}
	return false
}
