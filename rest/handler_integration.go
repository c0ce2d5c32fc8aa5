package rest

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/validate"
)

func (s *Server) HandleCreateIntegration(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	var req model.ApiIntegrationRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondWithFieldErrors(w, errs)
		return
	}
	integration := &model.ApiIntegration{
		ID:       uuid.NewString(),
		TenantID: principal.TenantID,
		Name:     req.Name,
		Provider: req.Provider,
		ApiKey:   req.ApiKey,
		Config:   req.Config,
		IsActive: true,
	}
	if req.IsActive != nil {
		integration.IsActive = *req.IsActive
	}
	if err := s.storage.Integrations().Save(r.Context(), integration); err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, integration)
}

func (s *Server) HandleListIntegrations(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	integrations, err := s.storage.Integrations().List(r.Context(), principal.TenantID)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, integrations)
}

func (s *Server) HandleGetIntegration(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	integration, err := s.storage.Integrations().Get(r.Context(), principal.TenantID, mux.Vars(r)["id"])
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, integration)
}

func (s *Server) HandleUpdateIntegration(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	var req model.ApiIntegrationRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondWithFieldErrors(w, errs)
		return
	}
	integration, err := s.storage.Integrations().Get(r.Context(), principal.TenantID, mux.Vars(r)["id"])
	if err != nil {
		respondStorageError(w, err)
		return
	}
	integration.Name = req.Name
	integration.Provider = req.Provider
	integration.ApiKey = req.ApiKey
	integration.Config = req.Config
	if req.IsActive != nil {
		integration.IsActive = *req.IsActive
	}
	if err := s.storage.Integrations().Update(r.Context(), integration); err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, integration)
}

func (s *Server) HandleDeleteIntegration(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	if err := s.storage.Integrations().Delete(r.Context(), principal.TenantID, mux.Vars(r)["id"]); err != nil {
		respondStorageError(w, err)
		return
	}
	respondOK(w, "deleted")
}

// HandleToggleIntegration flips isActive. Two toggles restore the
// original state.
func (s *Server) HandleToggleIntegration(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	integration, err := s.storage.Integrations().Get(r.Context(), principal.TenantID, mux.Vars(r)["id"])
	if err != nil {
		respondStorageError(w, err)
		return
	}
	integration.IsActive = !integration.IsActive
	if err := s.storage.Integrations().Update(r.Context(), integration); err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, integration)
}
