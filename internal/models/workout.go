package models

import "slices"

// Exercise is a sets x reps prescription scoped to one workout.
type Exercise struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Sets int    `json:"sets" yaml:"sets"`
	Reps int    `json:"reps" yaml:"reps"`
}

// Workout is a named list of exercises plus the members assigned to it
// and the members who finished it in the current session.
type Workout struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Assigned  []string   `json:"assigned"`
	Exercises []Exercise `json:"exercises"`
	Completed []string   `json:"completed"`

	// NextExerciseID is the id handed to the next exercise added. It is
	// internal bookkeeping and stays off the wire.
	NextExerciseID int `json:"-"`
}

// Registry is the complete dashboard state. Values are treated as
// immutable: reducers return a new Registry instead of editing one.
type Registry struct {
	Workouts      []Workout `json:"workouts"`
	NextWorkoutID int       `json:"next_workout_id"`
}

// Stats is the summary row shown above the workout list.
type Stats struct {
	ActiveWorkouts int `json:"active_workouts"`
	TotalMembers   int `json:"total_members"`
	CompletedToday int `json:"completed_today"`
	ActiveSessions int `json:"active_sessions"`
}

// Dashboard bundles a snapshot with its derived stats.
type Dashboard struct {
	Workouts []Workout `json:"workouts"`
	Stats    Stats     `json:"stats"`
}

// Clone returns a deep copy of w.
func (w Workout) Clone() Workout {
	out := w
	out.Assigned = slices.Clone(w.Assigned)
	out.Exercises = slices.Clone(w.Exercises)
	out.Completed = slices.Clone(w.Completed)
	return out
}

// Clone returns a deep copy of r.
func (r Registry) Clone() Registry {
	out := Registry{NextWorkoutID: r.NextWorkoutID}
	if r.Workouts != nil {
		out.Workouts = make([]Workout, len(r.Workouts))
		for i, w := range r.Workouts {
			out.Workouts[i] = w.Clone()
		}
	}
	return out
}

// Workout returns the workout with the given id.
func (r Registry) Workout(id int) (Workout, bool) {
	for _, w := range r.Workouts {
		if w.ID == id {
			return w, true
		}
	}
	return Workout{}, false
}

// HasMember reports whether name is on the workout's roster.
func (w Workout) HasMember(name string) bool {
	return slices.Contains(w.Assigned, name)
}

// HasCompleted reports whether name is marked complete.
func (w Workout) HasCompleted(name string) bool {
	return slices.Contains(w.Completed, name)
}
