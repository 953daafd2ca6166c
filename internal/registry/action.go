package registry

import (
	"errors"
	"fmt"

	"github.com/claude/gymdash/internal/models"
)

// ErrUnknownAction is returned for an Action whose Type is not recognised.
var ErrUnknownAction = errors.New("unknown action")

// ActionType names a dashboard event.
type ActionType string

const (
	ActionCreateWorkout    ActionType = "create_workout"
	ActionAddExercise      ActionType = "add_exercise"
	ActionRemoveExercise   ActionType = "remove_exercise"
	ActionAddMember        ActionType = "add_member"
	ActionRemoveMember     ActionType = "remove_member"
	ActionToggleCompletion ActionType = "toggle_completion"
)

// Action is one user event against the dashboard. Fields not used by the
// action type are ignored.
type Action struct {
	Type       ActionType `json:"type"`
	WorkoutID  int        `json:"workout_id,omitempty"`
	ExerciseID int        `json:"exercise_id,omitempty"`
	Name       string     `json:"name,omitempty"`
	Sets       int        `json:"sets,omitempty"`
	Reps       int        `json:"reps,omitempty"`
}

// Apply runs the reducer matching a.Type.
func (a Action) Apply(reg models.Registry) (models.Registry, error) {
	switch a.Type {
	case ActionCreateWorkout:
		return CreateWorkout(reg, a.Name)
	case ActionAddExercise:
		return AddExercise(reg, a.WorkoutID, ExerciseInput{Name: a.Name, Sets: a.Sets, Reps: a.Reps})
	case ActionRemoveExercise:
		return RemoveExercise(reg, a.WorkoutID, a.ExerciseID)
	case ActionAddMember:
		return AddMember(reg, a.WorkoutID, a.Name)
	case ActionRemoveMember:
		return RemoveMember(reg, a.WorkoutID, a.Name)
	case ActionToggleCompletion:
		return ToggleCompletion(reg, a.WorkoutID, a.Name)
	default:
		return reg, fmt.Errorf("%q: %w", a.Type, ErrUnknownAction)
	}
}

// IsValidation reports whether err is a rejection of user input rather
// than a missing workout or an unknown action.
func IsValidation(err error) bool {
	return errors.Is(err, ErrBlankName) ||
		errors.Is(err, ErrInvalidPrescription) ||
		errors.Is(err, ErrMemberExists) ||
		errors.Is(err, ErrMemberNotAssigned)
}
