package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claude/gymdash/internal/models"
	"github.com/claude/gymdash/internal/registry"
)

// HTTPClient implements Dashboard by calling the GymDash REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the dashboard lives on the remote server.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies Dashboard.
var _ Dashboard = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, errorMessage(data))
	}

	return data, nil
}

// errorMessage pulls the message out of a {"error": "..."} body.
func errorMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(body))
}

func (c *HTTPClient) ListWorkouts(ctx context.Context) ([]models.Workout, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/workouts", nil)
	if err != nil {
		return nil, err
	}

	var workouts []models.Workout
	if err := json.Unmarshal(body, &workouts); err != nil {
		return nil, fmt.Errorf("httpclient: decode workouts: %w", err)
	}
	return workouts, nil
}

func (c *HTTPClient) GetStats(ctx context.Context) (models.Stats, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/stats", nil)
	if err != nil {
		return models.Stats{}, err
	}

	var stats models.Stats
	if err := json.Unmarshal(body, &stats); err != nil {
		return models.Stats{}, fmt.Errorf("httpclient: decode stats: %w", err)
	}
	return stats, nil
}

func (c *HTTPClient) GetDashboard(ctx context.Context) (models.Dashboard, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/dashboard", nil)
	if err != nil {
		return models.Dashboard{}, err
	}

	var d models.Dashboard
	if err := json.Unmarshal(body, &d); err != nil {
		return models.Dashboard{}, fmt.Errorf("httpclient: decode dashboard: %w", err)
	}
	return d, nil
}

func (c *HTTPClient) Dispatch(ctx context.Context, a registry.Action) (models.Dashboard, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return models.Dashboard{}, fmt.Errorf("httpclient: encode action: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/api/v1/actions", bytes.NewReader(payload))
	if err != nil {
		return models.Dashboard{}, err
	}

	var d models.Dashboard
	if err := json.Unmarshal(body, &d); err != nil {
		return models.Dashboard{}, fmt.Errorf("httpclient: decode dashboard: %w", err)
	}
	return d, nil
}
