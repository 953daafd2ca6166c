package upload

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/claude/gymdash/internal/ingest/alpha"
)

// Stats tracks upload progress.
type Stats struct {
	FilesTotal    int
	FilesUploaded int
	FilesSkipped  int
	FilesErrored  int

	WorkoutsCreated int
	WorkoutsSkipped int
	ExercisesAdded  int
}

// Uploader walks a directory of Alpha Progression CSV exports and POSTs
// each new one to the GymDash server.
type Uploader struct {
	client *Client
	state  *StateDB
	dir    string
	dryRun bool
	log    *slog.Logger
	stats  Stats
}

// New creates a new Uploader. client may be nil in dry-run mode.
func New(client *Client, state *StateDB, dir string, dryRun bool, log *slog.Logger) *Uploader {
	return &Uploader{
		client: client,
		state:  state,
		dir:    dir,
		dryRun: dryRun,
		log:    log,
	}
}

// Run uploads every *.csv file under the directory in name order.
func (u *Uploader) Run(ctx context.Context) (*Stats, error) {
	files, err := filepath.Glob(filepath.Join(u.dir, "*.csv"))
	if err != nil {
		return &u.stats, err
	}
	sort.Strings(files)

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return &u.stats, err
		}
		u.stats.FilesTotal++
		if err := u.processFile(ctx, f); err != nil {
			u.log.Warn("upload failed", "file", f, "error", err)
			u.stats.FilesErrored++
		}
	}

	return &u.stats, nil
}

func (u *Uploader) processFile(ctx context.Context, path string) error {
	relPath, _ := filepath.Rel(u.dir, path)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}
	hash, err := HashFile(path)
	if err != nil {
		return fmt.Errorf("hash: %w", err)
	}

	uploaded, err := u.state.IsUploaded(ctx, relPath, info.Size(), hash)
	if err != nil {
		return fmt.Errorf("state check: %w", err)
	}
	if uploaded {
		u.stats.FilesSkipped++
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	// Parse locally first so malformed exports never reach the server.
	sessions, err := alpha.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	if u.dryRun {
		u.log.Info("dry-run: would send", "file", relPath, "sessions", len(sessions))
		return nil
	}

	result, err := u.client.SendAlphaCSV(ctx, data)
	if err != nil {
		return err
	}

	u.stats.WorkoutsCreated += result.WorkoutsCreated
	u.stats.WorkoutsSkipped += result.WorkoutsSkipped
	u.stats.ExercisesAdded += result.ExercisesAdded

	if err := u.state.MarkUploaded(ctx, relPath, info.Size(), hash, result.WorkoutsCreated); err != nil {
		u.log.Warn("failed to mark uploaded", "file", relPath, "error", err)
	}
	u.stats.FilesUploaded++

	u.log.Info("uploaded export",
		"file", relPath,
		"workouts_created", result.WorkoutsCreated,
		"exercises_added", result.ExercisesAdded,
	)
	return nil
}
