package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/omnirelay/console/flow"
	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/validate"
)

func (s *Server) HandleCreateFlow(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	var req model.FlowSaveRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondWithFieldErrors(w, errs)
		return
	}
	created, err := s.flowService.Create(r.Context(), principal.TenantID, req)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

func (s *Server) HandleUpdateFlow(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	var req model.FlowSaveRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondWithFieldErrors(w, errs)
		return
	}
	updated, err := s.flowService.Update(r.Context(), principal.TenantID, mux.Vars(r)["id"], req)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

func (s *Server) HandleGetFlow(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	f, err := s.flowService.Get(r.Context(), principal.TenantID, mux.Vars(r)["id"])
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, f)
}

func (s *Server) HandleListFlows(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	flows, err := s.flowService.List(r.Context(), principal.TenantID)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, flows)
}

func (s *Server) HandleDeleteFlow(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	if err := s.flowService.Delete(r.Context(), principal.TenantID, mux.Vars(r)["id"]); err != nil {
		respondStorageError(w, err)
		return
	}
	respondOK(w, "deleted")
}

type setActiveRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

func (s *Server) HandleSetFlowActive(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	var req setActiveRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondWithFieldErrors(w, errs)
		return
	}
	f, err := s.flowService.SetActive(r.Context(), principal.TenantID, mux.Vars(r)["id"], *req.IsActive)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, f)
}

// HandleFlowPalette serves the node catalog for an editor variant. Both
// palettes come from the same registry, filtered by category.
func (s *Server) HandleFlowPalette(w http.ResponseWriter, r *http.Request) {
	var palette []flow.Descriptor
	switch r.URL.Query().Get("builder") {
	case "call":
		palette = flow.CallPalette()
	case "", "communication":
		palette = flow.CommunicationPalette()
	default:
		respondWithError(w, http.StatusBadRequest, "unknown builder, expected communication or call")
		return
	}
	respondWithJSON(w, http.StatusOK, palette)
}
