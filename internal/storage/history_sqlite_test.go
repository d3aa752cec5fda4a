package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"setbeast/internal/core/workout"

	"github.com/google/uuid"
)

func openTestHistory(t *testing.T) *HistoryStore {
	t.Helper()
	store, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestHistoryRecordAndRecent(t *testing.T) {
	store := openTestHistory(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		session := workout.Session{
			ID:              uuid.NewString(),
			StartedAt:       start.Add(time.Duration(i) * time.Hour),
			EndedAt:         start.Add(time.Duration(i)*time.Hour + 30*time.Minute),
			DurationSeconds: 1800,
			TotalSets:       i + 1,
			IntervalSeconds: 90,
		}
		if err := store.Record(ctx, session); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(recent))
	}
	if recent[0].TotalSets != 3 || recent[1].TotalSets != 2 {
		t.Errorf("expected newest first, got %d then %d", recent[0].TotalSets, recent[1].TotalSets)
	}
	if !recent[0].StartedAt.Equal(start.Add(2 * time.Hour)) {
		t.Errorf("unexpected start time %v", recent[0].StartedAt)
	}
}

func TestHistoryStats(t *testing.T) {
	store := openTestHistory(t)
	ctx := context.Background()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	sessions := []workout.Session{
		{ID: uuid.NewString(), StartedAt: day.Add(-2 * time.Hour), EndedAt: day.Add(-time.Hour), DurationSeconds: 3600, TotalSets: 12, IntervalSeconds: 120},
		{ID: uuid.NewString(), StartedAt: day.Add(8 * time.Hour), EndedAt: day.Add(9 * time.Hour), DurationSeconds: 3600, TotalSets: 10, IntervalSeconds: 90},
		{ID: uuid.NewString(), StartedAt: day.Add(18 * time.Hour), EndedAt: day.Add(19 * time.Hour), DurationSeconds: 1200, TotalSets: 5, IntervalSeconds: 60},
	}
	for _, session := range sessions {
		if err := store.Record(ctx, session); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	stats, err := store.Stats(ctx, day)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Workouts != 2 || stats.TotalSets != 15 || stats.TotalSeconds != 4800 {
		t.Errorf("unexpected stats %+v", stats)
	}

	empty, err := store.Stats(ctx, day.Add(48*time.Hour))
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if empty != (HistoryStats{}) {
		t.Errorf("expected zero stats, got %+v", empty)
	}
}

func TestHistorySkipsEmptySessions(t *testing.T) {
	store := openTestHistory(t)
	ctx := context.Background()

	if err := store.Record(ctx, workout.Session{ID: uuid.NewString()}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Record(ctx, workout.Session{}); err == nil {
		t.Error("expected error for a session without id")
	}

	recent, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("expected no stored sessions, got %d", len(recent))
	}
}
