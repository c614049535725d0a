// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/certamen-io/certamen/internal/domain/model"
)

// ModelDependencies defines the interface for catalog reads.
type ModelDependencies interface {
	Selectable() []model.Model
	Model(id string) (model.Model, bool)
	Arbiter() model.Model
}

// ModelsHandler handles catalog requests.
type ModelsHandler struct {
	deps ModelDependencies
}

// NewModelsHandler creates a new models handler.
func NewModelsHandler(deps ModelDependencies) *ModelsHandler {
	return &ModelsHandler{deps: deps}
}

// modelsResponse mirrors the OpenAPI schema for GET /models.
type modelsResponse struct {
	Models  []model.Model `json:"models"`
	Arbiter model.Model   `json:"arbiter"`
}

// HandleListModels handles GET /models requests. The arbiter is never
// part of the selectable list; it rides along so the console can show
// who does the judging.
func (h *ModelsHandler) HandleListModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, modelsResponse{
		Models:  h.deps.Selectable(),
		Arbiter: h.deps.Arbiter(),
	})
}

// HandleGetModel handles GET /models/{id} requests.
func (h *ModelsHandler) HandleGetModel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /models/
	id := strings.TrimPrefix(r.URL.Path, "/models/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	m, ok := h.deps.Model(id)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", fmt.Errorf("%w: unknown model id %q", ErrNotFound, id))
		return
	}
	writeJSON(w, http.StatusOK, m)
}
