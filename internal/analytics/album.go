// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analytics

import (
	"sort"

	"github.com/pdiddy/reviewlens/pkg/types"
)

// minAlbumSongs is how many rated songs an album needs before it can be
// a favorite or least favorite; a single track is not an album opinion.
const minAlbumSongs = 2

// AlbumPreferences finds the participant's highest- and lowest-rated
// albums and counts how many other participants rated the favorite even
// higher (or the least favorite even lower). ErrNotFound is returned
// when no album reaches minAlbumSongs rated songs.
func (e *Engine) AlbumPreferences(participantID string) (types.AlbumReport, error) {
	own := e.albumStats(participantID, 0)

	var eligible []types.AlbumStat
	for _, stat := range own {
		if stat.Count >= minAlbumSongs {
			eligible = append(eligible, stat)
		}
	}
	if len(eligible) == 0 {
		return types.AlbumReport{}, ErrNotFound
	}

	// eligible is already sorted by album name; strict comparisons make
	// the alphabetically first album win ties.
	favorite, least := eligible[0], eligible[0]
	for _, stat := range eligible[1:] {
		if stat.Mean > favorite.Mean {
			favorite = stat
		}
		if stat.Mean < least.Mean {
			least = stat
		}
	}

	report := types.AlbumReport{Favorite: favorite, LeastFavorite: least}
	for _, id := range e.participantIDs {
		if id == participantID {
			continue
		}
		other := e.albumStats(id, 0)
		if stat, ok := findAlbum(other, favorite.Album); ok && stat.Mean > favorite.Mean {
			report.LikedFavoriteMore++
		}
		if stat, ok := findAlbum(other, least.Album); ok && stat.Mean < least.Mean {
			report.LikedLeastLess++
		}
	}
	return report, nil
}

// albumStats aggregates one participant's ratings per album, sorted by
// album name. Albums with fewer than minCount rated songs are skipped;
// zero keeps everything.
func (e *Engine) albumStats(participantID string, minCount int) []types.AlbumStat {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range e.reviews[participantID] {
		song, ok := e.songs[r.SongID]
		if !ok || song.Album == "" {
			continue
		}
		sums[song.Album] += r.Rating
		counts[song.Album]++
	}

	albums := make([]string, 0, len(sums))
	for album := range sums {
		if counts[album] >= minCount {
			albums = append(albums, album)
		}
	}
	sort.Strings(albums)

	stats := make([]types.AlbumStat, 0, len(albums))
	for _, album := range albums {
		stats = append(stats, types.AlbumStat{
			Album: album,
			Mean:  sums[album] / float64(counts[album]),
			Count: counts[album],
		})
	}
	return stats
}

func findAlbum(stats []types.AlbumStat, album string) (types.AlbumStat, bool) {
	for _, s := range stats {
		if s.Album == album {
			return s, true
		}
	}
	return types.AlbumStat{}, false
}
