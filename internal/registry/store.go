package registry

import (
	"context"
	"log/slog"
	"sync"

	"github.com/claude/gymdash/internal/models"
)

// Store owns the live snapshot for a running server. Dispatches are
// serialized: each reducer runs to completion before the next one starts.
type Store struct {
	mu  sync.Mutex
	reg models.Registry
	log *slog.Logger
}

// NewStore creates a Store holding reg.
func NewStore(reg models.Registry, log *slog.Logger) *Store {
	return &Store{reg: reg.Clone(), log: log}
}

// Snapshot returns a copy of the current registry.
func (s *Store) Snapshot() models.Registry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Clone()
}

// Dispatch applies a to the current snapshot and keeps the result. On
// error the snapshot is left as it was and the error is returned.
func (s *Store) Dispatch(ctx context.Context, a Action) (models.Dashboard, error) {
	if err := ctx.Err(); err != nil {
		return models.Dashboard{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := a.Apply(s.reg)
	if err != nil {
		s.log.Info("action rejected", "type", a.Type, "workout_id", a.WorkoutID, "error", err)
		return Dashboard(s.reg), err
	}
	s.reg = next
	s.log.Debug("action applied", "type", a.Type, "workout_id", a.WorkoutID, "workouts", len(next.Workouts))
	return Dashboard(next), nil
}

// ListWorkouts returns every workout in creation order.
func (s *Store) ListWorkouts(_ context.Context) ([]models.Workout, error) {
	return Dashboard(s.Snapshot()).Workouts, nil
}

// GetWorkout returns one workout by id.
func (s *Store) GetWorkout(_ context.Context, id int) (*models.Workout, error) {
	w, ok := s.Snapshot().Workout(id)
	if !ok {
		return nil, ErrWorkoutNotFound
	}
	return &w, nil
}

// GetStats returns the summary for the current snapshot.
func (s *Store) GetStats(_ context.Context) (models.Stats, error) {
	return ComputeStats(s.Snapshot()), nil
}

// GetDashboard returns workouts and stats taken from the same snapshot.
func (s *Store) GetDashboard(_ context.Context) (models.Dashboard, error) {
	return Dashboard(s.Snapshot()), nil
}
