// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pdiddy/reviewlens/pkg/types"
)

// Snapshot reads the complete record set for all three read models. Only
// completed participants and their reviews are included: partially
// finished participants never enter cross-user comparisons.
//
// Reads are paginated at the configured batch size, and every page must
// arrive before the snapshot is returned. A failed page aborts the whole
// snapshot, because aggregates computed over a partial fetch would be
// silently wrong. The error is propagated unchanged; retrying is the
// caller's decision, not the store's.
func (s *Store) Snapshot(ctx context.Context) (types.Snapshot, error) {
	var snap types.Snapshot
	var err error

	if snap.Participants, err = s.fetchParticipants(ctx); err != nil {
		return types.Snapshot{}, err
	}
	if snap.Songs, err = s.fetchSongs(ctx); err != nil {
		return types.Snapshot{}, err
	}
	if snap.Reviews, err = s.fetchReviews(ctx); err != nil {
		return types.Snapshot{}, err
	}
	return snap, nil
}

func (s *Store) fetchParticipants(ctx context.Context) ([]types.Participant, error) {
	var out []types.Participant
	for offset := 0; ; offset += s.batchSize {
		rows, err := s.db.QueryContext(ctx,
			`SELECT id, name, gender, birth_decade, city, urban_rural, works_in_music
			 FROM participants WHERE completed = 1
			 ORDER BY id LIMIT ? OFFSET ?`, s.batchSize, offset)
		if err != nil {
			return nil, fmt.Errorf("fetching participants page at offset %d: %w", offset, err)
		}

		n := 0
		for rows.Next() {
			var p types.Participant
			var name, gender, decade, city, urbanRural, works sql.NullString
			if err := rows.Scan(&p.ID, &name, &gender, &decade, &city, &urbanRural, &works); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning participant: %w", err)
			}
			p.Name = name.String
			p.Gender = gender.String
			p.BirthDecade = decade.String
			p.City = city.String
			p.UrbanRural = urbanRural.String
			p.WorksInMusic = works.String
			p.Completed = true
			out = append(out, p)
			n++
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("reading participants page at offset %d: %w", offset, err)
		}
		rows.Close()

		if n < s.batchSize {
			return out, nil
		}
	}
}

func (s *Store) fetchSongs(ctx context.Context) ([]types.Song, error) {
	var out []types.Song
	for offset := 0; ; offset += s.batchSize {
		rows, err := s.db.QueryContext(ctx,
			`SELECT id, track_name, album, year, release_date, length_seconds, popularity_rank, themes
			 FROM songs ORDER BY id LIMIT ? OFFSET ?`, s.batchSize, offset)
		if err != nil {
			return nil, fmt.Errorf("fetching songs page at offset %d: %w", offset, err)
		}

		n := 0
		for rows.Next() {
			var song types.Song
			var trackName, album, releaseDate, themes sql.NullString
			var year, rank sql.NullInt64
			var length sql.NullFloat64
			if err := rows.Scan(&song.ID, &trackName, &album, &year, &releaseDate, &length, &rank, &themes); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning song: %w", err)
			}
			song.TrackName = trackName.String
			song.Album = album.String
			song.Year = int(year.Int64)
			song.LengthSeconds = length.Float64
			song.PopularityRank = int(rank.Int64)
			if releaseDate.Valid && releaseDate.String != "" {
				t, err := time.Parse(time.RFC3339, releaseDate.String)
				if err != nil {
					rows.Close()
					return nil, fmt.Errorf("parsing release date for %s: %w", song.ID, err)
				}
				song.ReleaseDate = t
			}
			if themes.Valid && themes.String != "" && themes.String != "null" {
				if err := json.Unmarshal([]byte(themes.String), &song.Themes); err != nil {
					rows.Close()
					return nil, fmt.Errorf("parsing themes for %s: %w", song.ID, err)
				}
			}
			out = append(out, song)
			n++
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("reading songs page at offset %d: %w", offset, err)
		}
		rows.Close()

		if n < s.batchSize {
			return out, nil
		}
	}
}

func (s *Store) fetchReviews(ctx context.Context) ([]types.Review, error) {
	var out []types.Review
	for offset := 0; ; offset += s.batchSize {
		rows, err := s.db.QueryContext(ctx,
			`SELECT r.participant_id, r.song_id, r.rating, r.reviewed_at
			 FROM reviews r
			 JOIN participants p ON p.id = r.participant_id
			 WHERE p.completed = 1
			 ORDER BY r.participant_id, r.song_id LIMIT ? OFFSET ?`, s.batchSize, offset)
		if err != nil {
			return nil, fmt.Errorf("fetching reviews page at offset %d: %w", offset, err)
		}

		n := 0
		for rows.Next() {
			var r types.Review
			var reviewedAt string
			if err := rows.Scan(&r.ParticipantID, &r.SongID, &r.Rating, &reviewedAt); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning review: %w", err)
			}
			t, err := time.Parse(time.RFC3339, reviewedAt)
			if err != nil {
				rows.Close()
				return nil, fmt.Errorf("parsing review time for %s/%s: %w", r.ParticipantID, r.SongID, err)
			}
			r.ReviewedAt = t
			out = append(out, r)
			n++
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("reading reviews page at offset %d: %w", offset, err)
		}
		rows.Close()

		if n < s.batchSize {
			return out, nil
		}
	}
}
