package rest

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/validate"
)

func (s *Server) HandleCreateContactList(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	var req model.ContactListRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondWithFieldErrors(w, errs)
		return
	}
	list := &model.ContactList{
		ID:          uuid.NewString(),
		TenantID:    principal.TenantID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.storage.ContactLists().Save(r.Context(), list); err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, list)
}

func (s *Server) HandleListContactLists(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	lists, err := s.storage.ContactLists().List(r.Context(), principal.TenantID)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, lists)
}

func (s *Server) HandleGetContactList(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	list, err := s.storage.ContactLists().Get(r.Context(), principal.TenantID, mux.Vars(r)["id"])
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

func (s *Server) HandleUpdateContactList(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	var req model.ContactListRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondWithFieldErrors(w, errs)
		return
	}
	list := &model.ContactList{
		ID:          mux.Vars(r)["id"],
		TenantID:    principal.TenantID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.storage.ContactLists().Update(r.Context(), list); err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

func (s *Server) HandleDeleteContactList(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	if err := s.storage.ContactLists().Delete(r.Context(), principal.TenantID, mux.Vars(r)["id"]); err != nil {
		respondStorageError(w, err)
		return
	}
	respondOK(w, "deleted")
}

func (s *Server) HandleListChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := s.storage.Channels().List(r.Context())
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, channels)
}
