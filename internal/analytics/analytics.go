// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analytics derives per-participant insight reports from a
// snapshot of reviews, songs, and participants: taste-twin matching,
// crowd divergence, cohort percentiles, theme and era affinities, and
// reviewing-cadence patterns.
//
// Every report is a pure function of one Snapshot, recomputed from
// scratch per request. The engine holds no locks, owns no storage, and
// never mutates its inputs. See docs/ARCHITECTURE § Analytics Engine.
package analytics

import (
	"errors"
	"sort"

	"github.com/pdiddy/reviewlens/pkg/types"
)

// Caller-visible failure modes. Anything numeric inside a computation
// (zero variance, empty subset) resolves to a defined fallback instead.
var (
	// ErrNotFound means the participant has no reviews, or no qualifying
	// comparison candidate exists for the requested report.
	ErrNotFound = errors.New("no data for participant")

	// ErrSuppressed means a cohort is below the minimum size and its
	// percentile is withheld as policy, not failure.
	ErrSuppressed = errors.New("cohort below minimum size")
)

// Engine computes insight reports over one immutable Snapshot. An Engine
// is safe for concurrent use: all state is built in New and read-only
// afterwards.
type Engine struct {
	cfg types.AnalyticsConfig

	songs        map[string]types.Song
	participants map[string]types.Participant

	// vectors holds each participant's song -> rating map. Only
	// completed participants appear; the store guarantees the snapshot
	// was already filtered, this is the engine's working index of it.
	vectors map[string]map[string]float64

	// reviews holds each participant's reviews in snapshot order.
	reviews map[string][]types.Review

	// participantIDs is the stable iteration order for cross-user loops.
	participantIDs []string
}

// New indexes a snapshot for analysis. Reviews by participants missing
// from the snapshot's participant set are ignored.
func New(snap types.Snapshot, cfg types.AnalyticsConfig) *Engine {
	e := &Engine{
		cfg:          cfg.WithDefaults(),
		songs:        make(map[string]types.Song, len(snap.Songs)),
		participants: make(map[string]types.Participant, len(snap.Participants)),
		vectors:      make(map[string]map[string]float64),
		reviews:      make(map[string][]types.Review),
	}

	for _, s := range snap.Songs {
		e.songs[s.ID] = s
	}
	for _, p := range snap.Participants {
		e.participants[p.ID] = p
	}
	for _, r := range snap.Reviews {
		if _, ok := e.participants[r.ParticipantID]; !ok {
			continue
		}
		v := e.vectors[r.ParticipantID]
		if v == nil {
			v = make(map[string]float64)
			e.vectors[r.ParticipantID] = v
		}
		v[r.SongID] = r.Rating
		e.reviews[r.ParticipantID] = append(e.reviews[r.ParticipantID], r)
	}

	e.participantIDs = make([]string, 0, len(e.participants))
	for id := range e.participants {
		e.participantIDs = append(e.participantIDs, id)
	}
	sort.Strings(e.participantIDs)

	return e
}

// Config returns the engine's effective configuration after defaults.
func (e *Engine) Config() types.AnalyticsConfig {
	return e.cfg
}

// trackName resolves a song ID to its title, falling back to the ID for
// songs missing from the snapshot.
func (e *Engine) trackName(songID string) string {
	if s, ok := e.songs[songID]; ok && s.TrackName != "" {
		return s.TrackName
	}
	return songID
}
