package ingest

// Result holds the outcome of a plan import.
type Result struct {
	WorkoutsReceived int      `json:"workouts_received"`
	WorkoutsCreated  int      `json:"workouts_created"`
	WorkoutsSkipped  int      `json:"workouts_skipped"`
	SkippedNames     []string `json:"skipped_names,omitempty"`

	ExercisesReceived int `json:"exercises_received"`
	ExercisesAdded    int `json:"exercises_added"`
	ExercisesSkipped  int `json:"exercises_skipped"`

	Message string `json:"message,omitempty"`
}
