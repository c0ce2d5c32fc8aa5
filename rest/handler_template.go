package rest

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/validate"
)

func (s *Server) HandleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	var req model.TemplateRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondWithFieldErrors(w, errs)
		return
	}
	if _, err := s.storage.Channels().Get(r.Context(), req.ChannelID); err != nil {
		respondStorageError(w, err)
		return
	}
	template := &model.Template{
		ID:        uuid.NewString(),
		TenantID:  principal.TenantID,
		Name:      req.Name,
		ChannelID: req.ChannelID,
		Content:   req.Content,
		IsActive:  true,
	}
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}
	if err := s.storage.Templates().Save(r.Context(), template); err != nil {
		respondStorageError(w, err)
		return
	}
	template.Variables = model.ExtractVariables(template.Content)
	respondWithJSON(w, http.StatusCreated, template)
}

func (s *Server) HandleListTemplates(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	templates, err := s.storage.Templates().List(r.Context(), principal.TenantID)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, templates)
}

func (s *Server) HandleGetTemplate(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	template, err := s.storage.Templates().Get(r.Context(), principal.TenantID, mux.Vars(r)["id"])
	if err != nil {
		respondStorageError(w, err)
		return
	}
	template.Variables = model.ExtractVariables(template.Content)
	respondWithJSON(w, http.StatusOK, template)
}

func (s *Server) HandleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	var req model.TemplateRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondWithFieldErrors(w, errs)
		return
	}
	template, err := s.storage.Templates().Get(r.Context(), principal.TenantID, mux.Vars(r)["id"])
	if err != nil {
		respondStorageError(w, err)
		return
	}
	template.Name = req.Name
	template.ChannelID = req.ChannelID
	template.Content = req.Content
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}
	if err := s.storage.Templates().Update(r.Context(), template); err != nil {
		respondStorageError(w, err)
		return
	}
	template.Variables = model.ExtractVariables(template.Content)
	respondWithJSON(w, http.StatusOK, template)
}

func (s *Server) HandleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	if err := s.storage.Templates().Delete(r.Context(), principal.TenantID, mux.Vars(r)["id"]); err != nil {
		respondStorageError(w, err)
		return
	}
	respondOK(w, "deleted")
}
