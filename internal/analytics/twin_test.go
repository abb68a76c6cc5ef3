package analytics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pdiddy/reviewlens/pkg/types"
)

// twinFixture gives alice a strong positive correlate (bob), a perfect
// negative correlate (carol), and a candidate below the overlap minimum
// (dave).
func twinFixture() types.Snapshot {
	return types.Snapshot{
		Songs: songs(4),
		Participants: []types.Participant{
			participant("alice", "Alice"),
			participant("bob", "Bob"),
			participant("carol", "Carol"),
			participant("dave", "Dave"),
		},
		Reviews: []types.Review{
			review("alice", "s-a", 4), review("alice", "s-b", 6),
			review("alice", "s-c", 8), review("alice", "s-d", 10),

			review("bob", "s-a", 5), review("bob", "s-b", 6),
			review("bob", "s-c", 9), review("bob", "s-d", 10),

			review("carol", "s-a", 10), review("carol", "s-b", 8),
			review("carol", "s-c", 6), review("carol", "s-d", 4),

			review("dave", "s-a", 7), review("dave", "s-b", 7),
		},
	}
}

func TestTasteTwin(t *testing.T) {
	e := newTestEngine(t, twinFixture())

	result, err := e.TasteTwin("alice")
	if err != nil {
		t.Fatalf("TasteTwin: %v", err)
	}
	if result.TwinID != "bob" {
		t.Fatalf("TwinID = %q, want bob", result.TwinID)
	}
	if result.TwinName != "Bob" {
		t.Errorf("TwinName = %q, want Bob", result.TwinName)
	}
	if result.OverlapCount != 4 {
		t.Errorf("OverlapCount = %d, want 4", result.OverlapCount)
	}
	approx(t, result.Correlation, 0.97618706, 1e-6, "Correlation")
}

func TestTasteTwinDeterministic(t *testing.T) {
	// The fan-out must not leak worker scheduling into the result.
	e := newTestEngine(t, twinFixture())
	first, err := e.TasteTwin("alice")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		again, err := e.TasteTwin("alice")
		if err != nil {
			t.Fatal(err)
		}
		if again.TwinID != first.TwinID || again.Correlation != first.Correlation {
			t.Fatalf("run %d: twin %q corr %v, first run had %q corr %v",
				i, again.TwinID, again.Correlation, first.TwinID, first.Correlation)
		}
	}
}

func TestTasteTwinSkipsLowOverlap(t *testing.T) {
	e := newTestEngine(t, twinFixture())

	// Dave co-rated only two songs with alice, below MinOverlap 3, so he
	// must never appear even though his scores match hers closely.
	result, err := e.TasteTwin("alice")
	if err != nil {
		t.Fatal(err)
	}
	if result.TwinID == "dave" {
		t.Error("candidate below the overlap minimum was selected")
	}
}

func TestTasteTwinTieBreaks(t *testing.T) {
	// bob and carol both correlate perfectly with alice; bob over more
	// songs. The larger overlap must win the tie.
	snap := types.Snapshot{
		Songs: songs(5),
		Participants: []types.Participant{
			participant("alice", "Alice"),
			participant("bob", "Bob"),
			participant("carol", "Carol"),
		},
		Reviews: []types.Review{
			review("alice", "s-a", 4), review("alice", "s-b", 6),
			review("alice", "s-c", 8), review("alice", "s-d", 10),

			review("bob", "s-a", 4), review("bob", "s-b", 6),
			review("bob", "s-c", 8), review("bob", "s-d", 10),

			review("carol", "s-a", 4), review("carol", "s-b", 6),
			review("carol", "s-c", 8),
		},
	}
	e := newTestEngine(t, snap)

	result, err := e.TasteTwin("alice")
	if err != nil {
		t.Fatal(err)
	}
	if result.TwinID != "bob" {
		t.Errorf("TwinID = %q, want bob (larger overlap wins the tie)", result.TwinID)
	}
}

func TestTasteTwinTieBreaksOnID(t *testing.T) {
	// Equal correlation and equal overlap: the smaller ID wins.
	snap := types.Snapshot{
		Songs: songs(3),
		Participants: []types.Participant{
			participant("zoe", "Zoe"),
			participant("bob", "Bob"),
			participant("ann", "Ann"),
		},
		Reviews: []types.Review{
			review("zoe", "s-a", 4), review("zoe", "s-b", 6), review("zoe", "s-c", 8),
			review("bob", "s-a", 4), review("bob", "s-b", 6), review("bob", "s-c", 8),
			review("ann", "s-a", 4), review("ann", "s-b", 6), review("ann", "s-c", 8),
		},
	}
	e := newTestEngine(t, snap)

	result, err := e.TasteTwin("zoe")
	if err != nil {
		t.Fatal(err)
	}
	if result.TwinID != "ann" {
		t.Errorf("TwinID = %q, want ann (smaller ID wins the tie)", result.TwinID)
	}
}

func TestSelectTwinOrderIndependent(t *testing.T) {
	// Thirty candidates with correlations stepped by 0.004: adjacent
	// pairs are tied, pairs two apart are not, so a pairwise comparator
	// would cycle. Only the top three sit within the epsilon of the
	// best; equal overlaps leave the smallest ID of those, cand27.
	forward := make([]twinCandidate, 30)
	for i := range forward {
		forward[i] = twinCandidate{
			id:      fmt.Sprintf("cand%02d", i),
			corr:    0.004 * float64(i),
			overlap: 5,
		}
	}

	reversed := make([]twinCandidate, len(forward))
	for i, c := range forward {
		reversed[len(forward)-1-i] = c
	}
	interleaved := make([]twinCandidate, 0, len(forward))
	for i := 0; i < len(forward)/2; i++ {
		interleaved = append(interleaved, forward[i], forward[len(forward)-1-i])
	}

	for _, order := range [][]twinCandidate{forward, reversed, interleaved} {
		if got := selectTwin(order).id; got != "cand27" {
			t.Errorf("selectTwin = %s, want cand27 regardless of input order", got)
		}
	}
}

func TestSelectTwinTieRules(t *testing.T) {
	tests := []struct {
		name       string
		candidates []twinCandidate
		want       string
	}{
		{
			"clear winner outside epsilon",
			[]twinCandidate{
				{id: "a", corr: 0.95, overlap: 10},
				{id: "b", corr: 0.90, overlap: 50},
			},
			"a",
		},
		{
			"overlap breaks an epsilon tie",
			[]twinCandidate{
				{id: "a", corr: 0.950, overlap: 10},
				{id: "b", corr: 0.945, overlap: 50},
			},
			"b",
		},
		{
			"id breaks a full tie",
			[]twinCandidate{
				{id: "b", corr: 0.95, overlap: 10},
				{id: "a", corr: 0.95, overlap: 10},
			},
			"a",
		},
		{
			"exactly epsilon apart is not a tie",
			[]twinCandidate{
				{id: "a", corr: 0.95, overlap: 10},
				{id: "b", corr: 0.94, overlap: 50},
			},
			"a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := selectTwin(tt.candidates).id; got != tt.want {
				t.Errorf("selectTwin = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTasteTwinNearTiedCorpusIsStable(t *testing.T) {
	// alice against three candidates whose correlations land close
	// together; repeated runs must keep returning the same winner even
	// though the workers deliver candidates in arbitrary order.
	snap := types.Snapshot{
		Songs: songs(4),
		Participants: []types.Participant{
			participant("alice", "Alice"),
			participant("bob", "Bob"),
			participant("carol", "Carol"),
			participant("dave", "Dave"),
		},
		Reviews: []types.Review{
			review("alice", "s-a", 4), review("alice", "s-b", 6),
			review("alice", "s-c", 8), review("alice", "s-d", 10),

			review("bob", "s-a", 4), review("bob", "s-b", 6),
			review("bob", "s-c", 8), review("bob", "s-d", 10),

			review("carol", "s-a", 4), review("carol", "s-b", 6),
			review("carol", "s-c", 8), review("carol", "s-d", 10),

			review("dave", "s-a", 4), review("dave", "s-b", 6),
			review("dave", "s-c", 8), review("dave", "s-d", 10),
		},
	}
	e := newTestEngine(t, snap)

	for i := 0; i < 100; i++ {
		result, err := e.TasteTwin("alice")
		if err != nil {
			t.Fatal(err)
		}
		if result.TwinID != "bob" {
			t.Fatalf("run %d: TwinID = %q, want bob every run", i, result.TwinID)
		}
	}
}

func TestTasteTwinIdenticalConstantRaters(t *testing.T) {
	// Two raters in exact constant agreement correlate at 1; a third
	// constant rater at a different level carries no signal.
	snap := types.Snapshot{
		Songs: songs(3),
		Participants: []types.Participant{
			participant("u1", "One"),
			participant("u2", "Two"),
			participant("u3", "Three"),
		},
		Reviews: []types.Review{
			review("u1", "s-a", 8), review("u1", "s-b", 8), review("u1", "s-c", 8),
			review("u2", "s-a", 8), review("u2", "s-b", 8), review("u2", "s-c", 8),
			review("u3", "s-a", 2), review("u3", "s-b", 2), review("u3", "s-c", 2),
		},
	}
	e := newTestEngine(t, snap)

	result, err := e.TasteTwin("u1")
	if err != nil {
		t.Fatal(err)
	}
	if result.TwinID != "u2" {
		t.Errorf("TwinID = %q, want u2", result.TwinID)
	}
	if result.Correlation != 1.0 {
		t.Errorf("Correlation = %v, want 1.0 for identical constant raters", result.Correlation)
	}
}

func TestTasteTwinNotFound(t *testing.T) {
	tests := []struct {
		name string
		snap types.Snapshot
		id   string
	}{
		{"no reviews", twinFixture(), "nobody"},
		{
			"no qualifying candidate",
			types.Snapshot{
				Songs: songs(3),
				Participants: []types.Participant{
					participant("alice", "Alice"),
					participant("bob", "Bob"),
				},
				Reviews: []types.Review{
					review("alice", "s-a", 8), review("alice", "s-b", 7), review("alice", "s-c", 6),
					review("bob", "s-a", 8),
				},
			},
			"alice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, tt.snap)
			if _, err := e.TasteTwin(tt.id); !errors.Is(err, ErrNotFound) {
				t.Errorf("err = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestAlignedHotTakes(t *testing.T) {
	e := newTestEngine(t, twinFixture())

	result, err := e.TasteTwin("alice")
	if err != nil {
		t.Fatal(err)
	}

	// Every co-rated song in the fixture has alice and bob on the same
	// side of the crowd; strength ties between s-a and s-d break on the
	// song ID.
	wantOrder := []string{"s-a", "s-d", "s-c", "s-b"}
	if len(result.AlignedHotTakes) != len(wantOrder) {
		t.Fatalf("got %d aligned hot takes, want %d", len(result.AlignedHotTakes), len(wantOrder))
	}
	for i, want := range wantOrder {
		if got := result.AlignedHotTakes[i].SongID; got != want {
			t.Errorf("aligned take %d = %s, want %s", i, got, want)
		}
	}

	first := result.AlignedHotTakes[0]
	if first.UserRating != 4 || first.TwinRating != 5 {
		t.Errorf("s-a ratings = (%v, %v), want (4, 5)", first.UserRating, first.TwinRating)
	}
	approx(t, first.CrowdAvg, 6.5, 1e-12, "s-a crowd average")
	approx(t, first.Strength, 4.0, 1e-12, "s-a strength")
}

func TestAlignedHotTakesExcludeOpposedDeltas(t *testing.T) {
	// alice above the crowd, bob below it on s-a: not an aligned take.
	snap := types.Snapshot{
		Songs: songs(4),
		Participants: []types.Participant{
			participant("alice", "Alice"),
			participant("bob", "Bob"),
			participant("carol", "Carol"),
		},
		Reviews: []types.Review{
			review("alice", "s-a", 10), review("alice", "s-b", 6),
			review("alice", "s-c", 8), review("alice", "s-d", 9),

			review("bob", "s-a", 4), review("bob", "s-b", 5),
			review("bob", "s-c", 7), review("bob", "s-d", 8),

			review("carol", "s-a", 7), review("carol", "s-b", 8),
			review("carol", "s-c", 9), review("carol", "s-d", 10),
		},
	}
	e := newTestEngine(t, snap)

	result, err := e.TasteTwin("alice")
	if err != nil {
		t.Fatal(err)
	}
	for _, take := range result.AlignedHotTakes {
		if take.SongID == "s-a" {
			t.Error("opposed-delta song listed as an aligned hot take")
		}
	}
}

func TestAlignedHotTakesCapped(t *testing.T) {
	cfg := testConfig()
	cfg.TopAlignedHotTakes = 2
	e := New(twinFixture(), cfg)

	result, err := e.TasteTwin("alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(result.AlignedHotTakes) != 2 {
		t.Errorf("got %d aligned hot takes, want cap of 2", len(result.AlignedHotTakes))
	}
}
