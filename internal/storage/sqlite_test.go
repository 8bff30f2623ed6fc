package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreStartsEmpty(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	runs, err := store.TopRuns(ctx, 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	high, err := store.HighScore(ctx)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() = %d, expected 0", high)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("unexpected stats for an empty journal: %+v", stats)
	}
}

func TestStoresAreIndependent(t *testing.T) {
	a := openTestStore(t)
	b := openTestStore(t)
	ctx := context.Background()

	if _, err := a.SaveRun(ctx, Run{Player: "ann", Score: 3}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := b.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("in-memory journals should not share rows, got %d", len(runs))
	}
}

func TestSaveRunFillsDefaults(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	run, err := store.SaveRun(ctx, Run{Score: 4, Ticks: 900, Flaps: 30})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	if _, err := uuid.Parse(run.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", run.ID, err)
	}
	if run.Player != "anonymous" {
		t.Errorf("Player = %q, expected anonymous", run.Player)
	}
	if run.EndedAt.Before(before) {
		t.Errorf("EndedAt = %v, expected about now", run.EndedAt)
	}

	got, err := store.RunByID(ctx, run.ID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil")
	}
	if *got != run {
		t.Errorf("RunByID() = %+v, expected %+v", *got, run)
	}

	missing, err := store.RunByID(ctx, uuid.NewString())
	if err != nil || missing != nil {
		t.Errorf("RunByID(unknown) = %v, %v; expected nil, nil", missing, err)
	}
}

func TestSaveRunRejectsDuplicateID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run, err := store.SaveRun(ctx, Run{Player: "ann", Score: 1})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(ctx, run); err == nil {
		t.Error("saving the same ID twice should fail")
	}
}

func TestTopAndRecentOrdering(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.UnixMilli(1_700_000_000_000)
	inputs := []Run{
		{Player: "ann", Score: 5, EndedAt: base},
		{Player: "bob", Score: 12, EndedAt: base.Add(time.Minute)},
		{Player: "ann", Score: 5, EndedAt: base.Add(2 * time.Minute)},
		{Player: "cid", Score: 0, EndedAt: base.Add(3 * time.Minute)},
		{Player: "bob", Score: 8, EndedAt: base.Add(4 * time.Minute)},
	}
	saved := make([]Run, len(inputs))
	for i, r := range inputs {
		var err error
		if saved[i], err = store.SaveRun(ctx, r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns(ctx, 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	expectedTop := []string{saved[1].ID, saved[4].ID, saved[0].ID}
	if len(top) != len(expectedTop) {
		t.Fatalf("TopRuns(3) returned %d runs", len(top))
	}
	for i, id := range expectedTop {
		if top[i].ID != id {
			t.Errorf("top[%d] = %s (score %d), expected %s", i, top[i].ID, top[i].Score, id)
		}
	}

	recent, err := store.RecentRuns(ctx, 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != len(inputs) {
		t.Fatalf("RecentRuns(0) returned %d runs, expected all %d", len(recent), len(inputs))
	}
	for i := range recent {
		expected := saved[len(saved)-1-i]
		if recent[i].ID != expected.ID || !recent[i].EndedAt.Equal(expected.EndedAt) {
			t.Errorf("recent[%d] = %+v, expected %+v", i, recent[i], expected)
		}
	}

	high, err := store.HighScore(ctx)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 12 {
		t.Errorf("HighScore() = %d, expected 12", high)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 5 || stats.HighScore != 12 || stats.Players != 3 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 6 {
		t.Errorf("AvgScore = %v, expected 6", stats.AvgScore)
	}
	if !stats.LastPlayed.Equal(base.Add(4 * time.Minute)) {
		t.Errorf("LastPlayed = %v", stats.LastPlayed)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if high, _ := store.HighScore(ctx); high != 0 {
		t.Errorf("HighScore() after Clear = %d", high)
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in, expected int
	}{
		{-1, DefaultLimit},
		{0, DefaultLimit},
		{7, 7},
		{MaxLimit, MaxLimit},
		{MaxLimit + 1, MaxLimit},
	}
	for _, tc := range tests {
		if got := clampLimit(tc.in); got != tc.expected {
			t.Errorf("clampLimit(%d) = %d, expected %d", tc.in, got, tc.expected)
		}
	}
}
