package rest

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/persistence"
	"github.com/omnirelay/console/validate"
)

func (s *Server) HandleCreateTenant(w http.ResponseWriter, r *http.Request) {
	var req model.TenantCreateRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondWithFieldErrors(w, errs)
		return
	}
	tenant := &model.Tenant{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Email:   req.Email,
		LevelID: req.LevelID,
	}
	if err := s.storage.Tenants().Save(r.Context(), tenant); err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, tenant)
}

// The tenant surface is self-service: a principal only ever sees and manages
// its own tenant row. Any other tenant id answers 404, like every other
// cross-tenant access.
func (s *Server) ownTenantID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if id != principalFrom(r).TenantID {
		respondStorageError(w, persistence.NotFoundError{Entity: "tenant", ID: id})
		return "", false
	}
	return id, true
}

func (s *Server) HandleListTenants(w http.ResponseWriter, r *http.Request) {
	tenant, err := s.storage.Tenants().Get(r.Context(), principalFrom(r).TenantID)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, []model.Tenant{*tenant})
}

func (s *Server) HandleGetTenant(w http.ResponseWriter, r *http.Request) {
	id, ok := s.ownTenantID(w, r)
	if !ok {
		return
	}
	tenant, err := s.storage.Tenants().Get(r.Context(), id)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tenant)
}

func (s *Server) HandleUpdateTenant(w http.ResponseWriter, r *http.Request) {
	id, ok := s.ownTenantID(w, r)
	if !ok {
		return
	}
	var req model.TenantUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondWithFieldErrors(w, errs)
		return
	}
	tenant, err := s.storage.Tenants().Get(r.Context(), id)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	tenant.Name = req.Name
	tenant.Email = req.Email
	tenant.LevelID = req.LevelID
	if req.IsActive != nil {
		tenant.IsActive = *req.IsActive
	}
	if err := s.storage.Tenants().Update(r.Context(), tenant); err != nil {
		respondStorageError(w, err)
		return
	}
	s.tenantCache.Invalidate(id)
	respondWithJSON(w, http.StatusOK, tenant)
}

func (s *Server) HandleDeleteTenant(w http.ResponseWriter, r *http.Request) {
	id, ok := s.ownTenantID(w, r)
	if !ok {
		return
	}
	if err := s.storage.Tenants().Delete(r.Context(), id); err != nil {
		respondStorageError(w, err)
		return
	}
	s.tenantCache.Invalidate(id)
	respondOK(w, "deleted")
}
