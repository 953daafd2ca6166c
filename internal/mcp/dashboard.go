package mcp

import (
	"context"

	"github.com/claude/gymdash/internal/models"
	"github.com/claude/gymdash/internal/registry"
)

// Dashboard abstracts the workout state for MCP tools. Both *registry.Store
// (in-process) and HTTPClient (remote via REST API) satisfy this interface.
type Dashboard interface {
	ListWorkouts(ctx context.Context) ([]models.Workout, error)
	GetStats(ctx context.Context) (models.Stats, error)
	GetDashboard(ctx context.Context) (models.Dashboard, error)
	Dispatch(ctx context.Context, a registry.Action) (models.Dashboard, error)
}

// Compile-time check: *registry.Store satisfies Dashboard.
var _ Dashboard = (*registry.Store)(nil)
