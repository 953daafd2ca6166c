package registry

import (
	"errors"
	"reflect"
	"testing"

	"github.com/claude/gymdash/internal/models"
)

func mustApply(t *testing.T) func(models.Registry, error) models.Registry {
	return func(reg models.Registry, err error) models.Registry {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return reg
	}
}

// TestCreateWorkoutBlankName verifies that blank and whitespace-only names
// leave the registry unchanged.
func TestCreateWorkoutBlankName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		reg := New()
		got, err := CreateWorkout(reg, name)
		if !errors.Is(err, ErrBlankName) {
			t.Errorf("CreateWorkout(%q) error = %v, want ErrBlankName", name, err)
		}
		if !reflect.DeepEqual(got, reg) {
			t.Errorf("CreateWorkout(%q) changed registry: %+v", name, got)
		}
	}
}

// TestCreateWorkoutOrder verifies distinct ids in creation order.
func TestCreateWorkoutOrder(t *testing.T) {
	reg := New()
	reg = mustApply(t)(CreateWorkout(reg, "A"))
	reg = mustApply(t)(CreateWorkout(reg, "B"))

	if len(reg.Workouts) != 2 {
		t.Fatalf("got %d workouts, want 2", len(reg.Workouts))
	}
	if reg.Workouts[0].Name != "A" || reg.Workouts[1].Name != "B" {
		t.Errorf("order = %q, %q; want A, B", reg.Workouts[0].Name, reg.Workouts[1].Name)
	}
	if reg.Workouts[0].ID != 1 || reg.Workouts[1].ID != 2 {
		t.Errorf("ids = %d, %d; want 1, 2", reg.Workouts[0].ID, reg.Workouts[1].ID)
	}
	w := reg.Workouts[1]
	if len(w.Assigned) != 0 || len(w.Exercises) != 0 || len(w.Completed) != 0 {
		t.Errorf("new workout not empty: %+v", w)
	}
}

// TestCreateWorkoutDoesNotMutateInput checks copy-on-write: the caller's
// snapshot is still valid after a transition.
func TestCreateWorkoutDoesNotMutateInput(t *testing.T) {
	before := mustApply(t)(CreateWorkout(New(), "A"))
	_ = mustApply(t)(CreateWorkout(before, "B"))
	if len(before.Workouts) != 1 {
		t.Errorf("input registry has %d workouts, want 1", len(before.Workouts))
	}
}

// TestCreateWorkoutHandBuiltRegistry checks that ids stay unique when the
// registry was built without a counter.
func TestCreateWorkoutHandBuiltRegistry(t *testing.T) {
	reg := models.Registry{Workouts: []models.Workout{{ID: 1, Name: "A"}, {ID: 5, Name: "B"}}}
	reg = mustApply(t)(CreateWorkout(reg, "C"))
	if got := reg.Workouts[2].ID; got != 6 {
		t.Errorf("id = %d, want 6", got)
	}
}

func TestAddExercise(t *testing.T) {
	base := mustApply(t)(CreateWorkout(New(), "Legs"))

	tests := []struct {
		name    string
		id      int
		in      ExerciseInput
		wantErr error
	}{
		{name: "valid", id: 1, in: ExerciseInput{Name: "Squats", Sets: 3, Reps: 12}},
		{name: "zero sets", id: 1, in: ExerciseInput{Name: "Squats", Sets: 0, Reps: 12}, wantErr: ErrInvalidPrescription},
		{name: "negative reps", id: 1, in: ExerciseInput{Name: "Squats", Sets: 3, Reps: -1}, wantErr: ErrInvalidPrescription},
		{name: "blank name", id: 1, in: ExerciseInput{Name: " ", Sets: 3, Reps: 12}, wantErr: ErrBlankName},
		{name: "unknown workout", id: 9, in: ExerciseInput{Name: "Squats", Sets: 3, Reps: 12}, wantErr: ErrWorkoutNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddExercise(base, tt.id, tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				if !reflect.DeepEqual(got, base) {
					t.Errorf("rejected exercise changed registry")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			ex := got.Workouts[0].Exercises
			if len(ex) != 1 {
				t.Fatalf("got %d exercises, want 1", len(ex))
			}
			want := models.Exercise{ID: 1, Name: "Squats", Sets: 3, Reps: 12}
			if ex[0] != want {
				t.Errorf("exercise = %+v, want %+v", ex[0], want)
			}
		})
	}
}

// TestExerciseIDsNotReused verifies that removing an exercise does not let
// the next one take its id.
func TestExerciseIDsNotReused(t *testing.T) {
	reg := mustApply(t)(CreateWorkout(New(), "Legs"))
	reg = mustApply(t)(AddExercise(reg, 1, ExerciseInput{Name: "Squats", Sets: 3, Reps: 12}))
	reg = mustApply(t)(AddExercise(reg, 1, ExerciseInput{Name: "Lunges", Sets: 3, Reps: 10}))
	reg = mustApply(t)(RemoveExercise(reg, 1, 1))
	reg = mustApply(t)(AddExercise(reg, 1, ExerciseInput{Name: "Deadlift", Sets: 5, Reps: 5}))

	ex := reg.Workouts[0].Exercises
	if len(ex) != 2 {
		t.Fatalf("got %d exercises, want 2", len(ex))
	}
	if ex[0].ID != 2 || ex[1].ID != 3 {
		t.Errorf("ids = %d, %d; want 2, 3", ex[0].ID, ex[1].ID)
	}
}

func TestRemoveExerciseMissing(t *testing.T) {
	reg := mustApply(t)(CreateWorkout(New(), "Legs"))
	reg = mustApply(t)(AddExercise(reg, 1, ExerciseInput{Name: "Squats", Sets: 3, Reps: 12}))

	for _, tc := range []struct{ workout, exercise int }{{1, 42}, {7, 1}} {
		got, err := RemoveExercise(reg, tc.workout, tc.exercise)
		if err != nil {
			t.Errorf("RemoveExercise(%d, %d) error = %v, want nil", tc.workout, tc.exercise, err)
		}
		if !reflect.DeepEqual(got, reg) {
			t.Errorf("RemoveExercise(%d, %d) changed registry", tc.workout, tc.exercise)
		}
	}
}

func TestAddMember(t *testing.T) {
	reg := mustApply(t)(CreateWorkout(New(), "Legs"))

	if _, err := AddMember(reg, 1, "  "); !errors.Is(err, ErrBlankName) {
		t.Errorf("blank name error = %v, want ErrBlankName", err)
	}
	if _, err := AddMember(reg, 0, "John"); !errors.Is(err, ErrWorkoutNotFound) {
		t.Errorf("unselected workout error = %v, want ErrWorkoutNotFound", err)
	}

	reg = mustApply(t)(AddMember(reg, 1, "John"))
	again, err := AddMember(reg, 1, "John")
	if !errors.Is(err, ErrMemberExists) {
		t.Errorf("duplicate error = %v, want ErrMemberExists", err)
	}
	if got := again.Workouts[0].Assigned; !reflect.DeepEqual(got, []string{"John"}) {
		t.Errorf("assigned = %v, want [John]", got)
	}
}

// TestRemoveMemberBothLists verifies a removed member disappears from the
// roster and the completed list, and other workouts are untouched.
func TestRemoveMemberBothLists(t *testing.T) {
	reg := mustApply(t)(CreateWorkout(New(), "A"))
	reg = mustApply(t)(CreateWorkout(reg, "B"))
	for _, id := range []int{1, 2} {
		reg = mustApply(t)(AddMember(reg, id, "John"))
		reg = mustApply(t)(AddMember(reg, id, "Jane"))
		reg = mustApply(t)(ToggleCompletion(reg, id, "John"))
	}

	reg = mustApply(t)(RemoveMember(reg, 1, "John"))

	a := reg.Workouts[0]
	if !reflect.DeepEqual(a.Assigned, []string{"Jane"}) {
		t.Errorf("A assigned = %v, want [Jane]", a.Assigned)
	}
	if len(a.Completed) != 0 {
		t.Errorf("A completed = %v, want empty", a.Completed)
	}

	b := reg.Workouts[1]
	if !reflect.DeepEqual(b.Assigned, []string{"John", "Jane"}) {
		t.Errorf("B assigned = %v, want [John Jane]", b.Assigned)
	}
	if !reflect.DeepEqual(b.Completed, []string{"John"}) {
		t.Errorf("B completed = %v, want [John]", b.Completed)
	}
}

// TestToggleCompletionRoundTrip verifies toggle, toggle restores the
// completed list.
func TestToggleCompletionRoundTrip(t *testing.T) {
	reg := mustApply(t)(CreateWorkout(New(), "A"))
	reg = mustApply(t)(AddMember(reg, 1, "John"))

	on := mustApply(t)(ToggleCompletion(reg, 1, "John"))
	if !reflect.DeepEqual(on.Workouts[0].Completed, []string{"John"}) {
		t.Errorf("completed after first toggle = %v, want [John]", on.Workouts[0].Completed)
	}

	off := mustApply(t)(ToggleCompletion(on, 1, "John"))
	if len(off.Workouts[0].Completed) != 0 {
		t.Errorf("completed after second toggle = %v, want empty", off.Workouts[0].Completed)
	}
}

func TestToggleCompletionUnassigned(t *testing.T) {
	reg := mustApply(t)(CreateWorkout(New(), "A"))

	got, err := ToggleCompletion(reg, 1, "Ghost")
	if !errors.Is(err, ErrMemberNotAssigned) {
		t.Errorf("error = %v, want ErrMemberNotAssigned", err)
	}
	if !reflect.DeepEqual(got, reg) {
		t.Errorf("rejected toggle changed registry")
	}

	if _, err := ToggleCompletion(reg, 3, "John"); !errors.Is(err, ErrWorkoutNotFound) {
		t.Errorf("unknown workout error = %v, want ErrWorkoutNotFound", err)
	}
}
