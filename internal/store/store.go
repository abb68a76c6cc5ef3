// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store is the SQLite storage collaborator for reviewlens. It
// owns the schema and hands the analytics engine complete, immutable
// snapshots of the three read models. See docs/ARCHITECTURE § Storage.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/reviewlens/pkg/types"
)

const defaultFetchBatchSize = 1000

// Store wraps the SQLite database holding reviews, songs, and
// participants.
type Store struct {
	db        *sql.DB
	batchSize int
}

// Open opens or creates the database at cfg.DBPath and ensures the
// schema exists.
func Open(cfg types.StoreConfig) (*Store, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = filepath.Join("data", "reviewlens.db")
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	batchSize := cfg.FetchBatchSize
	if batchSize <= 0 {
		batchSize = defaultFetchBatchSize
	}

	s := &Store{db: db, batchSize: batchSize}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS participants (
			id TEXT PRIMARY KEY,
			name TEXT,
			gender TEXT,
			birth_decade TEXT,
			city TEXT,
			urban_rural TEXT,
			works_in_music TEXT,
			completed INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS songs (
			id TEXT PRIMARY KEY,
			track_name TEXT,
			album TEXT,
			year INTEGER,
			release_date TEXT,
			length_seconds REAL,
			popularity_rank INTEGER,
			themes TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			participant_id TEXT NOT NULL REFERENCES participants(id),
			song_id TEXT NOT NULL REFERENCES songs(id),
			rating REAL NOT NULL,
			reviewed_at TEXT NOT NULL,
			PRIMARY KEY (participant_id, song_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_song ON reviews(song_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SeedSummary holds counts from a seed run.
type SeedSummary struct {
	Participants int
	Songs        int
	Reviews      int
}

// Seed loads a validated YAML dump into the database inside a single
// transaction. Existing rows with the same keys are replaced, so a seed
// file can be re-applied.
func (s *Store) Seed(ctx context.Context, path string, w io.Writer) (SeedSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SeedSummary{}, fmt.Errorf("reading seed file: %w", err)
	}
	var seed types.SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return SeedSummary{}, fmt.Errorf("parsing seed file: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SeedSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range seed.Participants {
		_, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO participants
				(id, name, gender, birth_decade, city, urban_rural, works_in_music, completed)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Gender, p.BirthDecade, p.City, p.UrbanRural,
			p.WorksInMusic, boolToInt(p.Completed),
		)
		if err != nil {
			return SeedSummary{}, fmt.Errorf("inserting participant %s: %w", p.ID, err)
		}
	}

	for _, song := range seed.Songs {
		themesJSON, err := json.Marshal(song.Themes)
		if err != nil {
			return SeedSummary{}, fmt.Errorf("encoding themes for %s: %w", song.ID, err)
		}
		releaseDate := ""
		if !song.ReleaseDate.IsZero() {
			releaseDate = song.ReleaseDate.UTC().Format(time.RFC3339)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO songs
				(id, track_name, album, year, release_date, length_seconds, popularity_rank, themes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			song.ID, song.TrackName, song.Album, song.Year, releaseDate,
			song.LengthSeconds, song.PopularityRank, string(themesJSON),
		)
		if err != nil {
			return SeedSummary{}, fmt.Errorf("inserting song %s: %w", song.ID, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO reviews (participant_id, song_id, rating, reviewed_at)
		 VALUES (?, ?, ?, ?)`)
	if err != nil {
		return SeedSummary{}, fmt.Errorf("preparing review insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range seed.Reviews {
		_, err := stmt.ExecContext(ctx,
			r.ParticipantID, r.SongID, r.Rating,
			r.ReviewedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return SeedSummary{}, fmt.Errorf("inserting review %s/%s: %w", r.ParticipantID, r.SongID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return SeedSummary{}, fmt.Errorf("committing seed: %w", err)
	}

	summary := SeedSummary{
		Participants: len(seed.Participants),
		Songs:        len(seed.Songs),
		Reviews:      len(seed.Reviews),
	}
	fmt.Fprintf(w, "seeded: %d participants, %d songs, %d reviews\n",
		summary.Participants, summary.Songs, summary.Reviews)
	return summary, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
