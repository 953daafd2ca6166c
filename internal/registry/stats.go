package registry

import "github.com/claude/gymdash/internal/models"

// ComputeStats derives the dashboard summary from a snapshot.
// Member counts are distinct names across all workouts.
func ComputeStats(reg models.Registry) models.Stats {
	members := map[string]struct{}{}
	completed := map[string]struct{}{}
	active := 0

	for _, w := range reg.Workouts {
		for _, name := range w.Assigned {
			members[name] = struct{}{}
		}
		for _, name := range w.Completed {
			completed[name] = struct{}{}
		}
		if hasPending(w) {
			active++
		}
	}

	return models.Stats{
		ActiveWorkouts: len(reg.Workouts),
		TotalMembers:   len(members),
		CompletedToday: len(completed),
		ActiveSessions: active,
	}
}

// Dashboard pairs a snapshot's workouts with its stats.
func Dashboard(reg models.Registry) models.Dashboard {
	workouts := reg.Clone().Workouts
	if workouts == nil {
		workouts = []models.Workout{}
	}
	return models.Dashboard{
		Workouts: workouts,
		Stats:    ComputeStats(reg),
	}
}

// hasPending reports whether some assigned member has not completed w.
func hasPending(w models.Workout) bool {
	for _, name := range w.Assigned {
		if !w.HasCompleted(name) {
			return true
		}
	}
	return false
}
