// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared record, result, and configuration types
// for reviewlens. Records mirror the storage schema; result types are the
// shapes returned by the analytics engine. See docs/ARCHITECTURE § Data Model.
package types

import "time"

// Review is one participant's rating of one song. Reviews are unique per
// (participant, song) pair and immutable once stored.
type Review struct {
	// ParticipantID identifies the reviewer.
	ParticipantID string `json:"participant_id" yaml:"participant_id"`

	// SongID identifies the rated song.
	SongID string `json:"song_id" yaml:"song_id"`

	// Rating is the given grade on the project's bounded scale (4-10).
	Rating float64 `json:"rating" yaml:"rating"`

	// ReviewedAt is when the review was submitted.
	ReviewedAt time.Time `json:"reviewed_at" yaml:"reviewed_at"`
}

// Theme attribute keys carried by Song.Themes. Scores are ordinal,
// typically 1 (absent) to 3 (dominant).
const (
	ThemeSexual    = "sexual_themes"
	ThemePG13      = "pg13"
	ThemeTragic    = "tragic_story"
	ThemeEscapism  = "escapism"
	ThemeAntihero  = "antihero"
	ThemeLGBT      = "lgbt"
	ThemeSubstance = "substance_abuse"
)

// ThemeKeys lists the known theme attributes in a stable order.
var ThemeKeys = []string{
	ThemeSexual, ThemePG13, ThemeTragic, ThemeEscapism,
	ThemeAntihero, ThemeLGBT, ThemeSubstance,
}

// Song is one entry in the review project's song list.
type Song struct {
	// ID identifies the song.
	ID string `json:"id" yaml:"id"`

	// TrackName is the song title.
	TrackName string `json:"track_name" yaml:"track_name"`

	// Album is the album the song appears on.
	Album string `json:"album" yaml:"album"`

	// Year is the release year.
	Year int `json:"year" yaml:"year"`

	// ReleaseDate is the full release date, used for review lag.
	ReleaseDate time.Time `json:"release_date" yaml:"release_date"`

	// LengthSeconds is the song length.
	LengthSeconds float64 `json:"length_seconds" yaml:"length_seconds"`

	// PopularityRank is the song's chart position; lower is more popular.
	// Zero means unranked.
	PopularityRank int `json:"popularity_rank,omitempty" yaml:"popularity_rank,omitempty"`

	// Themes maps theme attribute keys to ordinal scores (1-3).
	Themes map[string]int `json:"themes,omitempty" yaml:"themes,omitempty"`
}

// Decade returns the song's release decade (floor(year/10)*10), or 0
// when the year is unknown.
func (s Song) Decade() int {
	if s.Year <= 0 {
		return 0
	}
	return s.Year / 10 * 10
}

// Cohort dimension names accepted by the cohort percentile engine.
const (
	CohortGender       = "gender"
	CohortDecade       = "decade"
	CohortCity         = "city"
	CohortUrbanRural   = "urban_rural"
	CohortWorksInMusic = "works_in_music"
)

// CohortDimensions lists the supported dimensions in a stable order.
var CohortDimensions = []string{
	CohortGender, CohortDecade, CohortCity, CohortUrbanRural, CohortWorksInMusic,
}

// Participant is one member of the review project.
type Participant struct {
	// ID identifies the participant.
	ID string `json:"id" yaml:"id"`

	// Name is the display name.
	Name string `json:"name" yaml:"name"`

	// Gender, BirthDecade, City, UrbanRural, and WorksInMusic are the
	// categorical cohort fields from the signup survey.
	Gender       string `json:"gender,omitempty" yaml:"gender,omitempty"`
	BirthDecade  string `json:"birth_decade,omitempty" yaml:"birth_decade,omitempty"`
	City         string `json:"city,omitempty" yaml:"city,omitempty"`
	UrbanRural   string `json:"urban_rural,omitempty" yaml:"urban_rural,omitempty"`
	WorksInMusic string `json:"works_in_music,omitempty" yaml:"works_in_music,omitempty"`

	// Completed reports whether the participant finished the project.
	// Only completed participants enter cross-user comparisons.
	Completed bool `json:"completed" yaml:"completed"`
}

// CohortValue returns the participant's value for a cohort dimension,
// or "" for an unknown dimension.
func (p Participant) CohortValue(dimension string) string {
	switch dimension {
	case CohortGender:
		return p.Gender
	case CohortDecade:
		return p.BirthDecade
	case CohortCity:
		return p.City
	case CohortUrbanRural:
		return p.UrbanRural
	case CohortWorksInMusic:
		return p.WorksInMusic
	default:
		return ""
	}
}

// Snapshot is a complete, immutable read of the three record sets at one
// point in time. Every analytics request computes from a single Snapshot
// so that crowd averages and percentiles stay internally consistent.
type Snapshot struct {
	Reviews      []Review      `json:"reviews" yaml:"reviews"`
	Songs        []Song        `json:"songs" yaml:"songs"`
	Participants []Participant `json:"participants" yaml:"participants"`
}

// SeedFile is the on-disk YAML shape consumed by the seed command.
type SeedFile struct {
	Songs        []Song        `json:"songs" yaml:"songs"`
	Participants []Participant `json:"participants" yaml:"participants"`
	Reviews      []Review      `json:"reviews" yaml:"reviews"`
}
