package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/claude/gymdash/internal/registry"
	"github.com/go-chi/chi/v5"
)

type nameRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.GetDashboard(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetStats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	workouts, err := s.store.ListWorkouts(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := workoutIDParam(w, r)
	if !ok {
		return
	}
	workout, err := s.store.GetWorkout(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

// handleAction dispatches a raw action and returns the resulting dashboard.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var a registry.Action
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	d, err := s.store.Dispatch(r.Context(), a)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// handleAlphaImport loads an Alpha Progression CSV export as workouts.
func (s *Server) handleAlphaImport(w http.ResponseWriter, r *http.Request) {
	result, err := s.alpha.Ingest(r.Context(), r.Body)
	if err != nil {
		s.log.Error("alpha import error", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	d, err := s.store.Dispatch(r.Context(), registry.Action{Type: registry.ActionCreateWorkout, Name: req.Name})
	if err != nil {
		s.writeError(w, err)
		return
	}
	// The new workout is always last.
	writeJSON(w, http.StatusCreated, d.Workouts[len(d.Workouts)-1])
}

func (s *Server) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := workoutIDParam(w, r)
	if !ok {
		return
	}
	var in registry.ExerciseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.dispatchWorkout(w, r, http.StatusCreated, registry.Action{
		Type:      registry.ActionAddExercise,
		WorkoutID: id,
		Name:      in.Name,
		Sets:      in.Sets,
		Reps:      in.Reps,
	})
}

func (s *Server) handleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := workoutIDParam(w, r)
	if !ok {
		return
	}
	exerciseID, err := strconv.Atoi(chi.URLParam(r, "exerciseID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}
	s.dispatchWorkout(w, r, http.StatusOK, registry.Action{
		Type:       registry.ActionRemoveExercise,
		WorkoutID:  id,
		ExerciseID: exerciseID,
	})
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	id, ok := workoutIDParam(w, r)
	if !ok {
		return
	}
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.dispatchWorkout(w, r, http.StatusCreated, registry.Action{
		Type:      registry.ActionAddMember,
		WorkoutID: id,
		Name:      req.Name,
	})
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	id, ok := workoutIDParam(w, r)
	if !ok {
		return
	}
	s.dispatchWorkout(w, r, http.StatusOK, registry.Action{
		Type:      registry.ActionRemoveMember,
		WorkoutID: id,
		Name:      memberParam(r),
	})
}

func (s *Server) handleToggleCompletion(w http.ResponseWriter, r *http.Request) {
	id, ok := workoutIDParam(w, r)
	if !ok {
		return
	}
	s.dispatchWorkout(w, r, http.StatusOK, registry.Action{
		Type:      registry.ActionToggleCompletion,
		WorkoutID: id,
		Name:      memberParam(r),
	})
}

// dispatchWorkout applies a and responds with the affected workout.
func (s *Server) dispatchWorkout(w http.ResponseWriter, r *http.Request, status int, a registry.Action) {
	d, err := s.store.Dispatch(r.Context(), a)
	if err != nil {
		s.writeError(w, err)
		return
	}
	for _, workout := range d.Workouts {
		if workout.ID == a.WorkoutID {
			writeJSON(w, status, workout)
			return
		}
	}
	// Removals against a missing workout are no-ops, not errors.
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case registry.IsValidation(err):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case errors.Is(err, registry.ErrWorkoutNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, registry.ErrUnknownAction):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		s.log.Error("dispatch error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func workoutIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return 0, false
	}
	return id, true
}

// memberParam returns the decoded {name} path segment. chi matches on
// RawPath when the request carries one, and on the already decoded Path
// otherwise, so only the first case needs unescaping.
func memberParam(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return raw
	}
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
