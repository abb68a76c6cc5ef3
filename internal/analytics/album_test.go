package analytics

import (
	"errors"
	"testing"

	"github.com/pdiddy/reviewlens/pkg/types"
)

func albumSong(id, album string) types.Song {
	return types.Song{ID: id, TrackName: "Track " + id, Album: album}
}

// albumFixture: alice loves Aurora, dislikes Basalt, and rated one lone
// Coda track that never qualifies.
func albumFixture() types.Snapshot {
	return types.Snapshot{
		Songs: []types.Song{
			albumSong("s-a", "Aurora"), albumSong("s-b", "Aurora"),
			albumSong("s-c", "Basalt"), albumSong("s-d", "Basalt"),
			albumSong("s-e", "Coda"),
		},
		Participants: []types.Participant{
			participant("alice", "Alice"),
			participant("bob", "Bob"),
			participant("carol", "Carol"),
		},
		Reviews: []types.Review{
			review("alice", "s-a", 9), review("alice", "s-b", 9),
			review("alice", "s-c", 5), review("alice", "s-d", 5),
			review("alice", "s-e", 10),

			// bob likes Aurora even more and Basalt even less.
			review("bob", "s-a", 10), review("bob", "s-b", 10),
			review("bob", "s-c", 4), review("bob", "s-d", 4),

			// carol sits between alice's two albums.
			review("carol", "s-a", 7), review("carol", "s-b", 7),
			review("carol", "s-c", 6), review("carol", "s-d", 6),
		},
	}
}

func TestAlbumPreferences(t *testing.T) {
	e := newTestEngine(t, albumFixture())

	report, err := e.AlbumPreferences("alice")
	if err != nil {
		t.Fatalf("AlbumPreferences: %v", err)
	}

	if report.Favorite.Album != "Aurora" {
		t.Errorf("Favorite = %q, want Aurora", report.Favorite.Album)
	}
	if report.Favorite.Mean != 9 || report.Favorite.Count != 2 {
		t.Errorf("Favorite stat = %+v, want mean 9 count 2", report.Favorite)
	}
	if report.LeastFavorite.Album != "Basalt" {
		t.Errorf("LeastFavorite = %q, want Basalt", report.LeastFavorite.Album)
	}

	// Only bob out-rates alice on Aurora and under-rates her on Basalt.
	if report.LikedFavoriteMore != 1 {
		t.Errorf("LikedFavoriteMore = %d, want 1", report.LikedFavoriteMore)
	}
	if report.LikedLeastLess != 1 {
		t.Errorf("LikedLeastLess = %d, want 1", report.LikedLeastLess)
	}
}

func TestAlbumPreferencesIgnoresSingleTrackAlbums(t *testing.T) {
	e := newTestEngine(t, albumFixture())

	// Coda carries alice's highest rating but only one track.
	report, err := e.AlbumPreferences("alice")
	if err != nil {
		t.Fatal(err)
	}
	if report.Favorite.Album == "Coda" {
		t.Error("single-track album selected as favorite")
	}
}

func TestAlbumPreferencesTieGoesAlphabetical(t *testing.T) {
	snap := types.Snapshot{
		Songs: []types.Song{
			albumSong("s-a", "Zenith"), albumSong("s-b", "Zenith"),
			albumSong("s-c", "Apex"), albumSong("s-d", "Apex"),
		},
		Participants: []types.Participant{participant("alice", "Alice")},
		Reviews: []types.Review{
			review("alice", "s-a", 7), review("alice", "s-b", 7),
			review("alice", "s-c", 7), review("alice", "s-d", 7),
		},
	}
	e := newTestEngine(t, snap)

	report, err := e.AlbumPreferences("alice")
	if err != nil {
		t.Fatal(err)
	}
	if report.Favorite.Album != "Apex" {
		t.Errorf("Favorite = %q, want the alphabetically first Apex", report.Favorite.Album)
	}
	if report.LeastFavorite.Album != "Apex" {
		t.Errorf("LeastFavorite = %q, want the alphabetically first Apex", report.LeastFavorite.Album)
	}
}

func TestAlbumPreferencesNotFound(t *testing.T) {
	// Every album has a single rated track.
	snap := types.Snapshot{
		Songs: []types.Song{
			albumSong("s-a", "Aurora"), albumSong("s-b", "Basalt"),
		},
		Participants: []types.Participant{participant("alice", "Alice")},
		Reviews: []types.Review{
			review("alice", "s-a", 8), review("alice", "s-b", 6),
		},
	}
	e := newTestEngine(t, snap)
	if _, err := e.AlbumPreferences("alice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if _, err := e.AlbumPreferences("nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("nobody err = %v, want ErrNotFound", err)
	}
}

func TestAlbumStatsSortedAndFiltered(t *testing.T) {
	e := newTestEngine(t, albumFixture())

	all := e.albumStats("alice", 0)
	wantOrder := []string{"Aurora", "Basalt", "Coda"}
	if len(all) != len(wantOrder) {
		t.Fatalf("got %d albums, want %d", len(all), len(wantOrder))
	}
	for i, want := range wantOrder {
		if all[i].Album != want {
			t.Errorf("album %d = %q, want %q", i, all[i].Album, want)
		}
	}

	filtered := e.albumStats("alice", 2)
	if len(filtered) != 2 {
		t.Errorf("got %d albums with 2+ tracks, want 2", len(filtered))
	}
}
