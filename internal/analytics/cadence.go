// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analytics

import (
	"sort"
	"time"

	"github.com/pdiddy/reviewlens/pkg/types"
)

// Cadence archetype labels and the thresholds that separate them.
const (
	ArchetypeEarlyBird   = "early_bird"
	ArchetypeLateBloomer = "late_bloomer"
	ArchetypeBinge       = "binge"
	ArchetypeDeliberate  = "deliberate"
	ArchetypeBalanced    = "balanced"

	earlyLagDays       = 1.0
	lateLagDays        = 30.0
	bingeReviewsPerDay = 5.0
	deliberatePerDay   = 1.0
)

// Time-of-day preference labels keyed by the most active hour.
const (
	TimeMorning   = "morning"   // 06-11
	TimeAfternoon = "afternoon" // 12-17
	TimeEvening   = "evening"   // 18-21
	TimeNight     = "night"     // 22-05
)

var dayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// CadenceArchetype derives the participant's temporal reviewing habits:
// hour and weekday histograms, review lag against song release dates,
// binge-streak count, and a behavioral archetype label.
func (e *Engine) CadenceArchetype(participantID string) (types.CadenceReport, error) {
	reviews := e.reviews[participantID]
	if len(reviews) == 0 {
		return types.CadenceReport{}, ErrNotFound
	}

	var report types.CadenceReport
	activeDays := make(map[string]struct{})
	var lags []float64
	times := make([]time.Time, 0, len(reviews))

	for _, r := range reviews {
		report.HourHistogram[r.ReviewedAt.Hour()]++
		report.DayHistogram[int(r.ReviewedAt.Weekday())]++
		activeDays[r.ReviewedAt.Format("2006-01-02")] = struct{}{}
		times = append(times, r.ReviewedAt)

		if song, ok := e.songs[r.SongID]; ok && !song.ReleaseDate.IsZero() {
			lags = append(lags, r.ReviewedAt.Sub(song.ReleaseDate).Hours()/24)
		}
	}

	report.MostActiveHour = argMax(report.HourHistogram[:])
	report.MostActiveDay = argMax(report.DayHistogram[:])
	report.DayPreference = dayNames[report.MostActiveDay]
	report.TimePreference = timePreference(report.MostActiveHour)

	report.Lag = types.LagStats{
		MeanDays:   mean(lags),
		MedianDays: medianLower(lags),
	}

	report.ActiveDays = len(activeDays)
	report.ReviewsPerActiveDay = float64(len(reviews)) / float64(len(activeDays))
	report.StreakCount = countStreaks(times, e.cfg.StreakMinLength, e.cfg.StreakWindow)
	report.Archetype = classifyArchetype(report.Lag.MeanDays, len(lags) > 0, report.ReviewsPerActiveDay)
	return report, nil
}

// countStreaks scans the timestamps chronologically. A streak is a
// maximal contiguous run whose members all fall within the trailing
// window of the run's first timestamp and whose length reaches minLen.
// After a qualifying run the scan resumes past its last member, so
// streaks never overlap; otherwise it advances one review at a time.
func countStreaks(times []time.Time, minLen int, window time.Duration) int {
	sorted := make([]time.Time, len(times))
	copy(sorted, times)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	streaks := 0
	for i := 0; i < len(sorted); {
		j := i
		for j+1 < len(sorted) && sorted[j+1].Sub(sorted[i]) <= window {
			j++
		}
		if j-i+1 >= minLen {
			streaks++
			i = j + 1
			continue
		}
		i++
	}
	return streaks
}

// classifyArchetype applies the fixed archetype thresholds. Lag rules
// are skipped when no rated song had a release date, since a zero mean
// lag would otherwise read as immediate reviewing.
func classifyArchetype(meanLag float64, hasLag bool, perDay float64) string {
	switch {
	case hasLag && meanLag < earlyLagDays:
		return ArchetypeEarlyBird
	case hasLag && meanLag > lateLagDays:
		return ArchetypeLateBloomer
	case perDay > bingeReviewsPerDay:
		return ArchetypeBinge
	case perDay < deliberatePerDay:
		return ArchetypeDeliberate
	default:
		return ArchetypeBalanced
	}
}

func timePreference(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return TimeMorning
	case hour >= 12 && hour < 18:
		return TimeAfternoon
	case hour >= 18 && hour < 22:
		return TimeEvening
	default:
		return TimeNight
	}
}

// argMax returns the index of the largest count; ties go to the lowest
// index.
func argMax(counts []int) int {
	best := 0
	for i, c := range counts {
		if c > counts[best] {
			best = i
		}
	}
	return best
}
