package alpha

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/claude/gymdash/internal/ingest"
	"github.com/claude/gymdash/internal/registry"
)

// Provider loads Alpha Progression exports into the dashboard as workouts.
type Provider struct {
	store *registry.Store
	log   *slog.Logger
}

// NewProvider creates a new Alpha Progression import provider.
func NewProvider(store *registry.Store, log *slog.Logger) *Provider {
	return &Provider{store: store, log: log}
}

// Ingest parses a CSV export and creates one workout per distinct session
// name. Sessions whose name is already on the dashboard are skipped, so
// importing the same export twice is harmless. Sessions the registry rejects
// (a blank name) are skipped too, so a bad session never leaves the import
// half applied.
func (p *Provider) Ingest(ctx context.Context, r io.Reader) (*ingest.Result, error) {
	sessions, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}

	result := &ingest.Result{WorkoutsReceived: len(sessions)}

	seen := map[string]bool{}
	for _, w := range p.store.Snapshot().Workouts {
		seen[w.Name] = true
	}

	for _, s := range sessions {
		result.ExercisesReceived += len(s.Exercises)
		if seen[s.Name] {
			result.WorkoutsSkipped++
			result.SkippedNames = append(result.SkippedNames, s.Name)
			continue
		}
		seen[s.Name] = true

		d, err := p.store.Dispatch(ctx, registry.Action{Type: registry.ActionCreateWorkout, Name: s.Name})
		if registry.IsValidation(err) {
			p.log.Warn("skipping session", "session", s.Name, "error", err)
			result.WorkoutsSkipped++
			result.SkippedNames = append(result.SkippedNames, s.Name)
			continue
		}
		if err != nil {
			return result, fmt.Errorf("creating workout %q: %w", s.Name, err)
		}
		workoutID := d.Workouts[len(d.Workouts)-1].ID
		result.WorkoutsCreated++

		for _, ex := range s.Exercises {
			_, err := p.store.Dispatch(ctx, registry.Action{
				Type:      registry.ActionAddExercise,
				WorkoutID: workoutID,
				Name:      ex.Name,
				Sets:      ex.WorkingSets,
				Reps:      ex.TargetReps,
			})
			if registry.IsValidation(err) {
				p.log.Warn("skipping exercise", "workout", s.Name, "exercise", ex.Name, "error", err)
				result.ExercisesSkipped++
				continue
			}
			if err != nil {
				return result, fmt.Errorf("adding exercise %q to %q: %w", ex.Name, s.Name, err)
			}
			result.ExercisesAdded++
		}
	}

	p.log.Info("alpha import complete",
		"workouts_created", result.WorkoutsCreated,
		"workouts_skipped", result.WorkoutsSkipped,
		"exercises_added", result.ExercisesAdded,
	)
	return result, nil
}
