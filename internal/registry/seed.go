package registry

import (
	"fmt"

	"github.com/claude/gymdash/internal/models"
)

// SeedWorkout describes a workout to preload, as read from config.
type SeedWorkout struct {
	Name      string          `yaml:"name"`
	Assigned  []string        `yaml:"assigned"`
	Exercises []ExerciseInput `yaml:"exercises"`
	Completed []string        `yaml:"completed"`
}

// DefaultSeed is the state a fresh dashboard opens with.
var DefaultSeed = []SeedWorkout{
	{
		Name:      "Full Body Workout",
		Assigned:  []string{"John Doe"},
		Exercises: []ExerciseInput{{Name: "Squats", Sets: 3, Reps: 12}},
	},
}

// Seed builds a registry by replaying the reducers over seeds, so seeded
// state obeys the same rules as state built through the API.
func Seed(seeds []SeedWorkout) (models.Registry, error) {
	reg := New()
	for _, s := range seeds {
		next, err := CreateWorkout(reg, s.Name)
		if err != nil {
			return reg, fmt.Errorf("seeding workout %q: %w", s.Name, err)
		}
		reg = next
		id := reg.Workouts[len(reg.Workouts)-1].ID

		for _, ex := range s.Exercises {
			if reg, err = AddExercise(reg, id, ex); err != nil {
				return reg, fmt.Errorf("seeding exercise %q in %q: %w", ex.Name, s.Name, err)
			}
		}
		for _, name := range s.Assigned {
			if reg, err = AddMember(reg, id, name); err != nil {
				return reg, fmt.Errorf("seeding member %q in %q: %w", name, s.Name, err)
			}
		}
		for _, name := range s.Completed {
			if reg, err = ToggleCompletion(reg, id, name); err != nil {
				return reg, fmt.Errorf("seeding completion %q in %q: %w", name, s.Name, err)
			}
		}
	}
	return reg, nil
}
