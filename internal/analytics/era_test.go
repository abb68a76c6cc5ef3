package analytics

import (
	"errors"
	"testing"

	"github.com/pdiddy/reviewlens/pkg/types"
)

func datedSong(id string, year int) types.Song {
	return types.Song{ID: id, TrackName: "Track " + id, Year: year}
}

func eraFixture() types.Snapshot {
	return types.Snapshot{
		Songs: []types.Song{
			datedSong("s-a", 1972), datedSong("s-b", 1978),
			datedSong("s-c", 1985), datedSong("s-d", 1989),
			datedSong("s-e", 1994), datedSong("s-f", 1999),
		},
		Participants: []types.Participant{participant("alice", "Alice")},
		Reviews: []types.Review{
			review("alice", "s-a", 4), review("alice", "s-b", 6), // 1970s mean 5
			review("alice", "s-c", 6), review("alice", "s-d", 8), // 1980s mean 7
			review("alice", "s-e", 8), review("alice", "s-f", 10), // 1990s mean 9
		},
	}
}

func TestEraBias(t *testing.T) {
	e := newTestEngine(t, eraFixture())

	report, err := e.EraBias("alice")
	if err != nil {
		t.Fatalf("EraBias: %v", err)
	}

	wantDecades := []types.DecadeStat{
		{Decade: 1970, Mean: 5, Count: 2},
		{Decade: 1980, Mean: 7, Count: 2},
		{Decade: 1990, Mean: 9, Count: 2},
	}
	if len(report.Decades) != len(wantDecades) {
		t.Fatalf("got %d decades, want %d", len(report.Decades), len(wantDecades))
	}
	for i, want := range wantDecades {
		if report.Decades[i] != want {
			t.Errorf("decade %d = %+v, want %+v", i, report.Decades[i], want)
		}
	}

	if report.BestDecade != 1990 {
		t.Errorf("BestDecade = %d, want 1990", report.BestDecade)
	}
	if report.WorstDecade != 1970 {
		t.Errorf("WorstDecade = %d, want 1970", report.WorstDecade)
	}
	approx(t, report.TrendSlope, 0.2, 1e-9, "TrendSlope")
	if report.TrendDirection != TrendIncreasing {
		t.Errorf("TrendDirection = %q, want %q", report.TrendDirection, TrendIncreasing)
	}
}

func TestEraBiasSingleDecade(t *testing.T) {
	snap := types.Snapshot{
		Songs:        []types.Song{datedSong("s-a", 1991), datedSong("s-b", 1995)},
		Participants: []types.Participant{participant("alice", "Alice")},
		Reviews: []types.Review{
			review("alice", "s-a", 6), review("alice", "s-b", 10),
		},
	}
	e := newTestEngine(t, snap)

	report, err := e.EraBias("alice")
	if err != nil {
		t.Fatal(err)
	}
	if report.TrendSlope != 0 {
		t.Errorf("TrendSlope = %v, want 0 for a single decade", report.TrendSlope)
	}
	if report.TrendDirection != TrendStable {
		t.Errorf("TrendDirection = %q, want %q", report.TrendDirection, TrendStable)
	}
	if report.BestDecade != 1990 || report.WorstDecade != 1990 {
		t.Errorf("best/worst = %d/%d, want 1990/1990", report.BestDecade, report.WorstDecade)
	}
}

func TestEraBiasTieGoesToEarlierDecade(t *testing.T) {
	snap := types.Snapshot{
		Songs: []types.Song{
			datedSong("s-a", 1975), datedSong("s-b", 1985),
		},
		Participants: []types.Participant{participant("alice", "Alice")},
		Reviews: []types.Review{
			review("alice", "s-a", 7), review("alice", "s-b", 7),
		},
	}
	e := newTestEngine(t, snap)

	report, err := e.EraBias("alice")
	if err != nil {
		t.Fatal(err)
	}
	if report.BestDecade != 1970 {
		t.Errorf("BestDecade = %d, want the earlier 1970 on a tie", report.BestDecade)
	}
	if report.WorstDecade != 1970 {
		t.Errorf("WorstDecade = %d, want the earlier 1970 on a tie", report.WorstDecade)
	}
}

func TestEraBiasSkipsUndatedSongs(t *testing.T) {
	snap := types.Snapshot{
		Songs: []types.Song{
			datedSong("s-a", 1988), datedSong("s-b", 0),
		},
		Participants: []types.Participant{participant("alice", "Alice")},
		Reviews: []types.Review{
			review("alice", "s-a", 8), review("alice", "s-b", 4),
		},
	}
	e := newTestEngine(t, snap)

	report, err := e.EraBias("alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Decades) != 1 {
		t.Fatalf("got %d decades, want 1", len(report.Decades))
	}
	if report.Decades[0].Mean != 8 {
		t.Errorf("1980s mean = %v, want 8 with the undated song excluded", report.Decades[0].Mean)
	}
}

func TestEraBiasNotFound(t *testing.T) {
	e := newTestEngine(t, eraFixture())
	if _, err := e.EraBias("nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	// Reviews exist but no song has a known year.
	snap := types.Snapshot{
		Songs:        []types.Song{datedSong("s-a", 0)},
		Participants: []types.Participant{participant("alice", "Alice")},
		Reviews:      []types.Review{review("alice", "s-a", 7)},
	}
	e = newTestEngine(t, snap)
	if _, err := e.EraBias("alice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("undated-only err = %v, want ErrNotFound", err)
	}
}
