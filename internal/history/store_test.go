package history

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"pomotray/internal/core/model"
	"pomotray/internal/core/timer"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "data", FileName))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAppendAndCountSince(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.Local)

	entries := []Entry{
		{Phase: "work", Session: 1, PlannedSeconds: 1500, CompletedAt: now.Add(-26 * time.Hour)},
		{Phase: "work", Session: 1, PlannedSeconds: 1500, CompletedAt: now.Add(-2 * time.Hour)},
		{Phase: "short_break", Session: 1, PlannedSeconds: 300, CompletedAt: now.Add(-90 * time.Minute)},
		{Phase: "work", Session: 2, PlannedSeconds: 1500, CompletedAt: now.Add(-time.Hour)},
	}
	for _, entry := range entries {
		stored, err := store.Append(ctx, entry)
		if err != nil {
			t.Fatalf("append: %v", err)
		}
		if stored.ID == "" {
			t.Fatalf("expected generated id")
		}
	}

	count, err := store.CountSince(ctx, "work", StartOfDay(now))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 work sessions today, got %d", count)
	}

	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 || recent[0].Session != 2 || recent[1].Phase != "short_break" {
		t.Fatalf("unexpected recent entries %+v", recent)
	}
	if !recent[0].CompletedAt.Equal(now.Add(-time.Hour)) {
		t.Fatalf("completed_at round trip: %v", recent[0].CompletedAt)
	}
}

func TestReopenKeepsDataAndSkipsMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := store.Append(context.Background(), Entry{Phase: "work", Session: 1}); err != nil {
		t.Fatalf("append: %v", err)
	}
	_ = store.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	count, err := reopened.CountSince(context.Background(), "work", time.Time{})
	if err != nil || count != 1 {
		t.Fatalf("expected 1 entry after reopen, got %d (%v)", count, err)
	}
}

func TestStartOfDay(t *testing.T) {
	at := time.Date(2026, 1, 2, 23, 59, 59, 0, time.UTC)
	if got := StartOfDay(at); !got.Equal(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("got %v", got)
	}
}

type latestScheduler struct {
	callback func()
}

type nopTicker struct{}

func (nopTicker) Stop() {}

func (scheduler *latestScheduler) Every(_ time.Duration, callback func()) timer.Ticker {
	scheduler.callback = callback
	return nopTicker{}
}

func TestRecorderStoresCompletedPhases(t *testing.T) {
	store := openTestStore(t)
	recorder := NewRecorder(store)

	var mu sync.Mutex
	var recorded []Entry
	recorder.OnRecorded = func(entry Entry) {
		mu.Lock()
		recorded = append(recorded, entry)
		mu.Unlock()
	}

	config := model.DefaultConfig()
	config.WorkDuration = time.Second
	config.ShortBreakDuration = time.Second
	scheduler := &latestScheduler{}
	source := timer.New(model.NewMemoryProvider(config), scheduler)
	recorder.Attach(source)

	source.StartWork()
	scheduler.callback()
	scheduler.callback()
	recorder.Close()
	recorder.Record(Entry{Phase: "work"})

	mu.Lock()
	defer mu.Unlock()
	if len(recorded) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recorded))
	}
	if recorded[0].Phase != "work" || recorded[0].Session != 1 || recorded[0].PlannedSeconds != 1 {
		t.Fatalf("unexpected work entry %+v", recorded[0])
	}
	if recorded[1].Phase != "short_break" || recorded[1].Session != 1 {
		t.Fatalf("unexpected break entry %+v", recorded[1])
	}

	count, err := store.CountSince(context.Background(), "work", time.Time{})
	if err != nil || count != 1 {
		t.Fatalf("expected 1 stored work entry, got %d (%v)", count, err)
	}
}
