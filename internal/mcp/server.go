package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds Dashboard, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("GymDash", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("GymDash workout dashboard. List workouts and stats, create workouts, manage exercises and assigned members, and mark members complete. State is in-memory and shared with the HTTP dashboard."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListWorkouts, Handler: h.listWorkouts},
		server.ServerTool{Tool: toolGetStats, Handler: h.getStats},
		server.ServerTool{Tool: toolCreateWorkout, Handler: h.createWorkout},
		server.ServerTool{Tool: toolAddExercise, Handler: h.addExercise},
		server.ServerTool{Tool: toolRemoveExercise, Handler: h.removeExercise},
		server.ServerTool{Tool: toolAddMember, Handler: h.addMember},
		server.ServerTool{Tool: toolRemoveMember, Handler: h.removeMember},
		server.ServerTool{Tool: toolToggleCompletion, Handler: h.toggleCompletion},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resDashboard, Handler: h.dashboard},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  Dashboard
	log *slog.Logger
}

// --- Resource definitions ---

var resDashboard = mcp.NewResource(
	"gymdash://dashboard",
	"Dashboard",
	mcp.WithResourceDescription("All workouts with their exercises, assigned and completed members, plus summary stats"),
	mcp.WithMIMEType("application/json"),
)
