// Package registry holds the workout dashboard state transitions. Every
// operation is a pure function from the current snapshot to the next one;
// a rejected operation returns the input snapshot together with an error.
package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/claude/gymdash/internal/models"
)

var (
	// ErrBlankName is returned when a workout, exercise or member name is empty or whitespace.
	ErrBlankName = errors.New("name must not be blank")
	// ErrInvalidPrescription is returned for an exercise with non-positive sets or reps.
	ErrInvalidPrescription = errors.New("sets and reps must be positive")
	// ErrWorkoutNotFound is returned when no workout has the requested id.
	ErrWorkoutNotFound = errors.New("workout not found")
	// ErrMemberExists is returned when a member is already on the workout's roster.
	ErrMemberExists = errors.New("member already assigned")
	// ErrMemberNotAssigned is returned when completing a workout for someone not on its roster.
	ErrMemberNotAssigned = errors.New("member not assigned to workout")
)

// ExerciseInput is the exercise form: everything but the id.
type ExerciseInput struct {
	Name string `json:"name"`
	Sets int    `json:"sets"`
	Reps int    `json:"reps"`
}

// New returns an empty registry whose first workout gets id 1.
func New() models.Registry {
	return models.Registry{Workouts: []models.Workout{}, NextWorkoutID: 1}
}

// CreateWorkout appends an empty workout named name.
func CreateWorkout(reg models.Registry, name string) (models.Registry, error) {
	if isBlank(name) {
		return reg, ErrBlankName
	}

	next := reg.Clone()
	id := nextWorkoutID(reg)
	next.Workouts = append(next.Workouts, models.Workout{
		ID:             id,
		Name:           name,
		Assigned:       []string{},
		Exercises:      []models.Exercise{},
		Completed:      []string{},
		NextExerciseID: 1,
	})
	next.NextWorkoutID = id + 1
	return next, nil
}

// AddExercise appends an exercise to the workout's list.
func AddExercise(reg models.Registry, workoutID int, in ExerciseInput) (models.Registry, error) {
	if isBlank(in.Name) {
		return reg, ErrBlankName
	}
	if in.Sets <= 0 || in.Reps <= 0 {
		return reg, ErrInvalidPrescription
	}

	return update(reg, workoutID, func(w *models.Workout) error {
		id := nextExerciseID(*w)
		w.Exercises = append(w.Exercises, models.Exercise{
			ID:   id,
			Name: in.Name,
			Sets: in.Sets,
			Reps: in.Reps,
		})
		w.NextExerciseID = id + 1
		return nil
	})
}

// RemoveExercise drops the exercise with the given id. Missing workouts or
// exercises leave the registry as it was.
func RemoveExercise(reg models.Registry, workoutID, exerciseID int) (models.Registry, error) {
	w, ok := reg.Workout(workoutID)
	if !ok {
		return reg, nil
	}
	idx := -1
	for i, ex := range w.Exercises {
		if ex.ID == exerciseID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return reg, nil
	}

	return update(reg, workoutID, func(w *models.Workout) error {
		kept := make([]models.Exercise, 0, len(w.Exercises))
		for _, ex := range w.Exercises {
			if ex.ID != exerciseID {
				kept = append(kept, ex)
			}
		}
		w.Exercises = kept
		return nil
	})
}

// AddMember puts name on the workout's roster. A name appears on a roster
// at most once.
func AddMember(reg models.Registry, workoutID int, name string) (models.Registry, error) {
	if isBlank(name) {
		return reg, ErrBlankName
	}

	return update(reg, workoutID, func(w *models.Workout) error {
		if w.HasMember(name) {
			return fmt.Errorf("%q: %w", name, ErrMemberExists)
		}
		w.Assigned = append(w.Assigned, name)
		return nil
	})
}

// RemoveMember takes name off both the roster and the completed list.
// Removing a name that is not assigned is a no-op.
func RemoveMember(reg models.Registry, workoutID int, name string) (models.Registry, error) {
	w, ok := reg.Workout(workoutID)
	if !ok || (!w.HasMember(name) && !w.HasCompleted(name)) {
		return reg, nil
	}

	return update(reg, workoutID, func(w *models.Workout) error {
		w.Assigned = without(w.Assigned, name)
		w.Completed = without(w.Completed, name)
		return nil
	})
}

// ToggleCompletion flips whether name has finished the workout. Only
// assigned members can be marked complete.
func ToggleCompletion(reg models.Registry, workoutID int, name string) (models.Registry, error) {
	return update(reg, workoutID, func(w *models.Workout) error {
		if w.HasCompleted(name) {
			w.Completed = without(w.Completed, name)
			return nil
		}
		if !w.HasMember(name) {
			return fmt.Errorf("%q: %w", name, ErrMemberNotAssigned)
		}
		w.Completed = append(w.Completed, name)
		return nil
	})
}

// update applies fn to a copy of the workout with the given id and returns
// the registry holding that copy. If fn fails, reg is returned untouched.
func update(reg models.Registry, workoutID int, fn func(*models.Workout) error) (models.Registry, error) {
	for i, w := range reg.Workouts {
		if w.ID != workoutID {
			continue
		}
		changed := w.Clone()
		if err := fn(&changed); err != nil {
			return reg, err
		}
		next := reg.Clone()
		next.Workouts[i] = changed
		return next, nil
	}
	return reg, fmt.Errorf("workout %d: %w", workoutID, ErrWorkoutNotFound)
}

// nextWorkoutID tolerates registries built by hand without a counter.
func nextWorkoutID(reg models.Registry) int {
	id := reg.NextWorkoutID
	for _, w := range reg.Workouts {
		if w.ID >= id {
			id = w.ID + 1
		}
	}
	return max(id, 1)
}

func nextExerciseID(w models.Workout) int {
	id := w.NextExerciseID
	for _, ex := range w.Exercises {
		if ex.ID >= id {
			id = ex.ID + 1
		}
	}
	return max(id, 1)
}

func without(list []string, name string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != name {
			out = append(out, v)
		}
	}
	return out
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
