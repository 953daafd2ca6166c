package mcp

import (
	"context"

	"github.com/claude/gymdash/internal/registry"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("List all workouts in creation order with their exercises (sets x reps), assigned members and members who completed the workout."),
)

var toolGetStats = mcp.NewTool("get_stats",
	mcp.WithDescription("Dashboard summary: number of workouts, distinct assigned members, distinct members who completed a workout, and workouts still waiting on at least one member."),
)

var toolCreateWorkout = mcp.NewTool("create_workout",
	mcp.WithDescription("Create an empty workout. Returns the updated dashboard."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Workout name (e.g. 'Full Body Workout')")),
)

var toolAddExercise = mcp.NewTool("add_exercise",
	mcp.WithDescription("Append an exercise to a workout. Sets and reps must be positive."),
	mcp.WithNumber("workout_id", mcp.Required(), mcp.Description("Workout ID")),
	mcp.WithString("name", mcp.Required(), mcp.Description("Exercise name (e.g. 'Squats')")),
	mcp.WithNumber("sets", mcp.Required(), mcp.Description("Number of sets")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Reps per set")),
)

var toolRemoveExercise = mcp.NewTool("remove_exercise",
	mcp.WithDescription("Remove an exercise from a workout. Unknown IDs are ignored."),
	mcp.WithNumber("workout_id", mcp.Required(), mcp.Description("Workout ID")),
	mcp.WithNumber("exercise_id", mcp.Required(), mcp.Description("Exercise ID within the workout")),
)

var toolAddMember = mcp.NewTool("add_member",
	mcp.WithDescription("Assign a member to a workout. A member can be assigned to a workout once."),
	mcp.WithNumber("workout_id", mcp.Required(), mcp.Description("Workout ID")),
	mcp.WithString("name", mcp.Required(), mcp.Description("Member name")),
)

var toolRemoveMember = mcp.NewTool("remove_member",
	mcp.WithDescription("Unassign a member from a workout. Also clears their completion."),
	mcp.WithNumber("workout_id", mcp.Required(), mcp.Description("Workout ID")),
	mcp.WithString("name", mcp.Required(), mcp.Description("Member name")),
)

var toolToggleCompletion = mcp.NewTool("toggle_completion",
	mcp.WithDescription("Mark an assigned member as having completed the workout, or undo that mark."),
	mcp.WithNumber("workout_id", mcp.Required(), mcp.Description("Workout ID")),
	mcp.WithString("name", mcp.Required(), mcp.Description("Member name")),
)

// --- Tool handlers ---

func (h *handlers) listWorkouts(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workouts, err := h.ds.ListWorkouts(ctx)
	if err != nil {
		h.log.Error("mcp list_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.ds.GetStats(ctx)
	if err != nil {
		h.log.Error("mcp get_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) createWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	return h.dispatch(ctx, "create_workout", registry.Action{Type: registry.ActionCreateWorkout, Name: name})
}

func (h *handlers) addExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workoutID, err := req.RequireInt("workout_id")
	if err != nil {
		return mcp.NewToolResultError("workout_id parameter is required"), nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	sets, err := req.RequireInt("sets")
	if err != nil {
		return mcp.NewToolResultError("sets parameter is required"), nil
	}
	reps, err := req.RequireInt("reps")
	if err != nil {
		return mcp.NewToolResultError("reps parameter is required"), nil
	}

	return h.dispatch(ctx, "add_exercise", registry.Action{
		Type:      registry.ActionAddExercise,
		WorkoutID: workoutID,
		Name:      name,
		Sets:      sets,
		Reps:      reps,
	})
}

func (h *handlers) removeExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workoutID, err := req.RequireInt("workout_id")
	if err != nil {
		return mcp.NewToolResultError("workout_id parameter is required"), nil
	}
	exerciseID, err := req.RequireInt("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}

	return h.dispatch(ctx, "remove_exercise", registry.Action{
		Type:       registry.ActionRemoveExercise,
		WorkoutID:  workoutID,
		ExerciseID: exerciseID,
	})
}

func (h *handlers) addMember(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.memberAction(ctx, req, "add_member", registry.ActionAddMember)
}

func (h *handlers) removeMember(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.memberAction(ctx, req, "remove_member", registry.ActionRemoveMember)
}

func (h *handlers) toggleCompletion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.memberAction(ctx, req, "toggle_completion", registry.ActionToggleCompletion)
}

func (h *handlers) memberAction(ctx context.Context, req mcp.CallToolRequest, tool string, typ registry.ActionType) (*mcp.CallToolResult, error) {
	workoutID, err := req.RequireInt("workout_id")
	if err != nil {
		return mcp.NewToolResultError("workout_id parameter is required"), nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	return h.dispatch(ctx, tool, registry.Action{Type: typ, WorkoutID: workoutID, Name: name})
}

// dispatch applies a and returns the updated dashboard. Rejected actions are
// reported as tool errors so the model can correct its input.
func (h *handlers) dispatch(ctx context.Context, tool string, a registry.Action) (*mcp.CallToolResult, error) {
	d, err := h.ds.Dispatch(ctx, a)
	if err != nil {
		h.log.Info("mcp "+tool+" rejected", "error", err)
		return mcp.NewToolResultError(tool + " rejected: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(d)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
