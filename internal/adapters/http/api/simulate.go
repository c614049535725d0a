// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/certamen-io/certamen/internal/domain/model"
	"github.com/google/uuid"
)

// SimulationDependencies defines the interface for running simulations.
type SimulationDependencies interface {
	Simulate(ctx context.Context, modelIDs []string, prompt model.Prompt) (model.Outcome, error)
}

// SimulationsHandler handles simulation requests.
type SimulationsHandler struct {
	deps SimulationDependencies
}

// NewSimulationsHandler creates a new simulations handler.
func NewSimulationsHandler(deps SimulationDependencies) *SimulationsHandler {
	return &SimulationsHandler{deps: deps}
}

// simulationRequest mirrors the OpenAPI schema for POST /simulations.
type simulationRequest struct {
	ModelIDs []string     `json:"model_ids"`
	Prompt   model.Prompt `json:"prompt"`
}

// simulationResponse wraps the outcome with a per-call envelope. The id
// names this HTTP exchange, not the outcome: identical submissions get
// fresh ids around byte-identical outcomes.
type simulationResponse struct {
	SimulationID string        `json:"simulation_id"`
	ElapsedMS    float64       `json:"elapsed_ms"`
	Outcome      model.Outcome `json:"outcome"`
}

// HandlePostSimulation handles POST /simulations requests.
func (h *SimulationsHandler) HandlePostSimulation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req simulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	start := time.Now()
	outcome, err := h.deps.Simulate(r.Context(), req.ModelIDs, req.Prompt)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidSelection):
			writeError(w, http.StatusBadRequest, "invalid_selection", err)
		case errors.Is(err, model.ErrInvalidPrompt):
			writeError(w, http.StatusBadRequest, "invalid_prompt", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, simulationResponse{
		SimulationID: uuid.NewString(),
		ElapsedMS:    time.Since(start).Seconds() * 1000,
		Outcome:      outcome,
	})
}
