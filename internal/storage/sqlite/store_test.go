package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hunty/huntcore/internal/hunt"
	"github.com/hunty/huntcore/internal/hunt/event"
	"github.com/hunty/huntcore/internal/storage"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "hunty.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func TestHuntRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()

	want := hunt.Hunt{
		ID:          1,
		Creator:     "GCREATOR",
		Title:       "Harbor Walk",
		Description: "Find the old lighthouse",
		Status:      hunt.StatusActive,
		CreatedAt:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		ActivatedAt: time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Reward: hunt.RewardConfig{
			XLMPool:     10_000,
			NFTEnabled:  true,
			NFTContract: "CNFT",
			MaxWinners:  3,
		},
		TotalClues:    2,
		RequiredClues: 1,
	}
	if err := store.PutHunt(ctx, want); err != nil {
		t.Fatalf("put hunt: %v", err)
	}

	got, err := store.GetHunt(ctx, 1)
	if err != nil {
		t.Fatalf("get hunt: %v", err)
	}
	if got.Status != hunt.StatusActive {
		t.Fatalf("status = %v, want active", got.Status)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) || !got.ActivatedAt.Equal(want.ActivatedAt) || !got.EndTime.Equal(want.EndTime) {
		t.Fatalf("timestamp round trip mismatch: %+v", got)
	}
	if got.Reward != want.Reward {
		t.Fatalf("reward = %+v, want %+v", got.Reward, want.Reward)
	}
	if got.TotalClues != 2 || got.RequiredClues != 1 {
		t.Fatalf("clue counters = %d/%d", got.TotalClues, got.RequiredClues)
	}
}

func TestHuntZeroTimestamps(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()

	draft := hunt.Hunt{
		ID:        2,
		Creator:   "GCREATOR",
		Title:     "Unbounded",
		Status:    hunt.StatusDraft,
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := store.PutHunt(ctx, draft); err != nil {
		t.Fatalf("put hunt: %v", err)
	}

	got, err := store.GetHunt(ctx, 2)
	if err != nil {
		t.Fatalf("get hunt: %v", err)
	}
	if !got.ActivatedAt.IsZero() || !got.EndTime.IsZero() {
		t.Fatalf("zero timestamps did not survive: %+v", got)
	}
}

func TestGetHuntNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if _, err := store.GetHunt(context.Background(), 42); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNextHuntID(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()

	current, err := store.CurrentHuntID(ctx)
	if err != nil {
		t.Fatalf("current hunt id: %v", err)
	}
	if current != 0 {
		t.Fatalf("fresh store counter = %d, want 0", current)
	}

	for want := uint64(1); want <= 3; want++ {
		id, err := store.NextHuntID(ctx)
		if err != nil {
			t.Fatalf("next hunt id: %v", err)
		}
		if id != want {
			t.Fatalf("next hunt id = %d, want %d", id, want)
		}
	}
}

func TestClueRoundTripAndOrder(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()

	clues := []hunt.Clue{
		{HuntID: 5, ClueID: 1, Question: "Q1?", AnswerHash: "h1", Points: 50, IsRequired: true},
		{HuntID: 5, ClueID: 2, Question: "Q2?", AnswerHash: "h2", Points: 25, Hint: "look up",
			HasLocation: true, Location: hunt.Location{Latitude: 45_523_000, Longitude: -122_676_000, Radius: 25}},
		{HuntID: 5, ClueID: 3, Question: "Q3?", AnswerHash: "h3"},
	}
	for _, c := range clues {
		if err := store.PutClue(ctx, c); err != nil {
			t.Fatalf("put clue %d: %v", c.ClueID, err)
		}
	}
	// Overwrite keeps the original position.
	if err := store.PutClue(ctx, hunt.Clue{HuntID: 5, ClueID: 2, Question: "Q2 revised?", AnswerHash: "h2"}); err != nil {
		t.Fatalf("overwrite clue: %v", err)
	}

	ids, err := store.ListClueIDs(ctx, 5)
	if err != nil {
		t.Fatalf("list clue ids: %v", err)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Fatalf("clue ids = %v, want [1 2 3]", ids)
	}

	got, err := store.GetClue(ctx, 5, 2)
	if err != nil {
		t.Fatalf("get clue: %v", err)
	}
	if got.Question != "Q2 revised?" {
		t.Fatalf("overwrite not visible: %+v", got)
	}
	if got.HasLocation {
		t.Fatal("overwrite kept a stale geofence")
	}

	listed, err := store.ListClues(ctx, 5)
	if err != nil {
		t.Fatalf("list clues: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 clues, got %d", len(listed))
	}

	if _, err := store.GetClue(ctx, 5, 9); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClueGeofenceRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()

	want := hunt.Clue{
		HuntID: 1, ClueID: 1, Question: "Where?", AnswerHash: "h",
		HasLocation: true,
		Location:    hunt.Location{Latitude: 45_523_000, Longitude: -122_676_000, Radius: 25},
	}
	if err := store.PutClue(ctx, want); err != nil {
		t.Fatalf("put clue: %v", err)
	}

	got, err := store.GetClue(ctx, 1, 1)
	if err != nil {
		t.Fatalf("get clue: %v", err)
	}
	if !got.HasLocation || got.Location != want.Location {
		t.Fatalf("geofence round trip mismatch: %+v", got)
	}
}

func TestProgressRoundTripAndOrder(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	started := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, player := range []string{"GALICE", "GBOB"} {
		if err := store.PutProgress(ctx, hunt.NewPlayerProgress(9, player, started)); err != nil {
			t.Fatalf("put progress %s: %v", player, err)
		}
	}

	updated := hunt.NewPlayerProgress(9, "GALICE", started)
	updated.CompleteClue(1, 50)
	updated.CompleteClue(3, 25)
	updated.IsCompleted = true
	updated.CompletedAt = started.Add(time.Hour)
	if err := store.PutProgress(ctx, updated); err != nil {
		t.Fatalf("update progress: %v", err)
	}

	players, err := store.ListPlayers(ctx, 9)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(players) != 2 || players[0] != "GALICE" || players[1] != "GBOB" {
		t.Fatalf("players = %v, want [GALICE GBOB]", players)
	}

	got, err := store.GetProgress(ctx, 9, "GALICE")
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if got.TotalScore != 75 {
		t.Fatalf("score = %d, want 75", got.TotalScore)
	}
	if len(got.CompletedClues) != 2 || got.CompletedClues[0] != 1 || got.CompletedClues[1] != 3 {
		t.Fatalf("completed clues = %v, want [1 3]", got.CompletedClues)
	}
	if !got.IsCompleted || !got.CompletedAt.Equal(updated.CompletedAt) {
		t.Fatalf("completion state mismatch: %+v", got)
	}

	if _, err := store.GetProgress(ctx, 9, "GNOBODY"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEventSeqPerHunt(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	record := func(huntID uint64, typ event.Type, payload string) {
		t.Helper()
		err := store.AppendEvent(ctx, event.Event{
			HuntID:      huntID,
			Timestamp:   ts,
			Type:        typ,
			Actor:       "GCREATOR",
			PayloadJSON: []byte(payload),
		})
		if err != nil {
			t.Fatalf("append event: %v", err)
		}
	}

	record(1, event.TypeHuntCreated, `{"creator":"GCREATOR"}`)
	record(2, event.TypeHuntCreated, `{"creator":"GCREATOR"}`)
	record(1, event.TypeHuntActivated, `{"activated_at":1740830400}`)

	events, err := store.ListEvents(ctx, 1)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events for hunt 1, got %d", len(events))
	}
	if events[0].Seq != 1 || events[1].Seq != 2 {
		t.Fatalf("seqs = %d,%d, want 1,2", events[0].Seq, events[1].Seq)
	}
	if events[0].Type != event.TypeHuntCreated || events[1].Type != event.TypeHuntActivated {
		t.Fatalf("unexpected event order: %+v", events)
	}
	if string(events[1].PayloadJSON) != `{"activated_at":1740830400}` {
		t.Fatalf("payload round trip mismatch: %s", events[1].PayloadJSON)
	}
	if !events[0].Timestamp.Equal(ts) {
		t.Fatalf("timestamp = %v, want %v", events[0].Timestamp, ts)
	}
}

func TestOpenAppliesMigrationsOnce(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hunty.db")
	first, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := first.PutHunt(context.Background(), hunt.Hunt{ID: 1, Creator: "G", Title: "T", Status: hunt.StatusDraft, CreatedAt: time.Now()}); err != nil {
		t.Fatalf("put hunt: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopening an initialized database must not fail or lose data.
	second, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer second.Close()

	if _, err := second.GetHunt(context.Background(), 1); err != nil {
		t.Fatalf("get hunt after reopen: %v", err)
	}
}
