package registry

import (
	"reflect"
	"testing"

	"github.com/claude/gymdash/internal/models"
)

// TestComputeStatsSharedMember verifies cross-workout dedup of member names.
func TestComputeStatsSharedMember(t *testing.T) {
	reg := mustApply(t)(CreateWorkout(New(), "A"))
	reg = mustApply(t)(CreateWorkout(reg, "B"))
	reg = mustApply(t)(AddMember(reg, 1, "John"))
	reg = mustApply(t)(AddMember(reg, 2, "John"))

	got := ComputeStats(reg)
	if got.TotalMembers != 1 {
		t.Errorf("total_members = %d, want 1", got.TotalMembers)
	}
	if got.ActiveWorkouts != 2 {
		t.Errorf("active_workouts = %d, want 2", got.ActiveWorkouts)
	}
	if got.ActiveSessions != 2 {
		t.Errorf("active_sessions = %d, want 2", got.ActiveSessions)
	}
}

// TestDefaultSeedEndToEnd replays the opening dashboard: one workout with
// John Doe assigned, who then completes it.
func TestDefaultSeedEndToEnd(t *testing.T) {
	reg, err := Seed(DefaultSeed)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}

	w, ok := reg.Workout(1)
	if !ok {
		t.Fatal("workout 1 missing")
	}
	if w.Name != "Full Body Workout" {
		t.Errorf("name = %q, want Full Body Workout", w.Name)
	}
	wantEx := []models.Exercise{{ID: 1, Name: "Squats", Sets: 3, Reps: 12}}
	if !reflect.DeepEqual(w.Exercises, wantEx) {
		t.Errorf("exercises = %+v, want %+v", w.Exercises, wantEx)
	}

	before := ComputeStats(reg)
	want := models.Stats{ActiveWorkouts: 1, TotalMembers: 1, CompletedToday: 0, ActiveSessions: 1}
	if before != want {
		t.Errorf("stats before = %+v, want %+v", before, want)
	}

	reg = mustApply(t)(ToggleCompletion(reg, 1, "John Doe"))
	if got := reg.Workouts[0].Completed; !reflect.DeepEqual(got, []string{"John Doe"}) {
		t.Errorf("completed = %v, want [John Doe]", got)
	}

	after := ComputeStats(reg)
	want = models.Stats{ActiveWorkouts: 1, TotalMembers: 1, CompletedToday: 1, ActiveSessions: 0}
	if after != want {
		t.Errorf("stats after = %+v, want %+v", after, want)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	if got := ComputeStats(New()); got != (models.Stats{}) {
		t.Errorf("stats = %+v, want zero", got)
	}
}

// TestActiveSessionsNoMembers verifies a workout nobody is assigned to does
// not count as an active session.
func TestActiveSessionsNoMembers(t *testing.T) {
	reg := mustApply(t)(CreateWorkout(New(), "A"))
	if got := ComputeStats(reg).ActiveSessions; got != 0 {
		t.Errorf("active_sessions = %d, want 0", got)
	}
}

func TestDashboardEmptyWorkoutsNotNil(t *testing.T) {
	d := Dashboard(models.Registry{})
	if d.Workouts == nil {
		t.Error("workouts is nil, want empty slice")
	}
}
