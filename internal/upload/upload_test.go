package upload

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/claude/gymdash/internal/ingest/alpha"
	"github.com/claude/gymdash/internal/registry"
	"github.com/claude/gymdash/internal/server"
)

const pushCSV = `"Push · Day 1";"2026-02-17 5:04 h";"1:12 hr"
"1. Bench Press · Barbell · 6 reps";"WU1 · 22,5 kg · 10 reps"
#;KG;REPS;RIR
1;102,5;6;0
2;102,5;6;0
3;100;6;0
"2. Dips · Bodyweight · 10 reps"
#;KG;REPS;RIR
1;+0;10;1
2;+0;9;1
`

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func writeExports(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func openState(t *testing.T) *StateDB {
	t.Helper()
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { state.Close() })
	return state
}

// newDashboard starts a real GymDash server seeded with the starter workout.
func newDashboard(t *testing.T) (*httptest.Server, *registry.Store) {
	t.Helper()
	reg, err := registry.Seed(registry.DefaultSeed)
	if err != nil {
		t.Fatal(err)
	}
	store := registry.NewStore(reg, discard)
	ts := httptest.NewServer(server.New(store, alpha.NewProvider(store, discard), discard))
	t.Cleanup(ts.Close)
	return ts, store
}

// TestUploaderRun verifies new exports are sent once and malformed ones
// are counted as errors without stopping the run.
func TestUploaderRun(t *testing.T) {
	ts, store := newDashboard(t)
	dir := writeExports(t, map[string]string{
		"push.csv":   pushCSV,
		"broken.csv": "1;100;6;0\n",
		"notes.txt":  "ignored",
	})
	state := openState(t)
	ctx := context.Background()

	stats, err := New(NewClient(ts.URL), state, dir, false, discard).Run(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stats.FilesTotal != 2 || stats.FilesUploaded != 1 || stats.FilesErrored != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.WorkoutsCreated != 1 || stats.ExercisesAdded != 2 {
		t.Errorf("stats = %+v", stats)
	}

	workouts, _ := store.ListWorkouts(ctx)
	if len(workouts) != 2 || workouts[1].Name != "Push · Day 1" {
		t.Fatalf("workouts = %+v", workouts)
	}

	// A second run skips the export it already sent.
	stats, err = New(NewClient(ts.URL), state, dir, false, discard).Run(ctx)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if stats.FilesSkipped != 1 || stats.FilesUploaded != 0 {
		t.Errorf("second run stats = %+v", stats)
	}
	if workouts, _ := store.ListWorkouts(ctx); len(workouts) != 2 {
		t.Errorf("workouts after second run = %d, want 2", len(workouts))
	}
}

// TestUploaderChangedFile verifies an edited export is sent again.
func TestUploaderChangedFile(t *testing.T) {
	ts, _ := newDashboard(t)
	dir := writeExports(t, map[string]string{"push.csv": pushCSV})
	state := openState(t)
	ctx := context.Background()

	if _, err := New(NewClient(ts.URL), state, dir, false, discard).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "push.csv"), []byte(pushCSV+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	stats, err := New(NewClient(ts.URL), state, dir, false, discard).Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	// Same session name, so the server skips the workout itself.
	if stats.FilesUploaded != 1 || stats.WorkoutsSkipped != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestUploaderDryRun(t *testing.T) {
	dir := writeExports(t, map[string]string{"push.csv": pushCSV})
	state := openState(t)

	stats, err := New(nil, state, dir, true, discard).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.FilesTotal != 1 || stats.FilesUploaded != 0 || stats.FilesErrored != 0 {
		t.Errorf("stats = %+v", stats)
	}

	path := filepath.Join(dir, "push.csv")
	info, _ := os.Stat(path)
	hash, _ := HashFile(path)
	uploaded, err := state.IsUploaded(context.Background(), "push.csv", info.Size(), hash)
	if err != nil {
		t.Fatal(err)
	}
	if uploaded {
		t.Error("dry run marked the export as uploaded")
	}
}

func TestSendAlphaCSVNoRetryOnClientError(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, `{"error":"bad export"}`, http.StatusBadRequest)
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	c.backoff = time.Millisecond
	if _, err := c.SendAlphaCSV(context.Background(), []byte(pushCSV)); err == nil {
		t.Fatal("expected error")
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("hits = %d, want 1", n)
	}
}

func TestSendAlphaCSVRetriesServerError(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		if ct := r.Header.Get("Content-Type"); ct != "text/csv" {
			t.Errorf("Content-Type = %q, want text/csv", ct)
		}
		w.Write([]byte(`{"workouts_created":1,"exercises_added":2}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	c.backoff = time.Millisecond
	result, err := c.SendAlphaCSV(context.Background(), []byte(pushCSV))
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if result.WorkoutsCreated != 1 || result.ExercisesAdded != 2 {
		t.Errorf("result = %+v", result)
	}
	if n := hits.Load(); n != 3 {
		t.Errorf("hits = %d, want 3", n)
	}
}
