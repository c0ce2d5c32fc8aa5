package rest

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/omnirelay/console/imports"
	"github.com/omnirelay/console/logger"
	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/validate"
)

func contactFromRequest(req model.ContactRequest) model.Contact {
	status := model.ContactStatus(req.Status)
	if req.Status == "" {
		status = model.CONTACT_STATUS_ACTIVE
	}
	return model.Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Whatsapp:  req.Whatsapp,
		Status:    status,
	}
}

func (s *Server) HandleCreateContact(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	var req model.ContactRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondWithFieldErrors(w, errs)
		return
	}
	contact := contactFromRequest(req)
	contact.ID = uuid.NewString()
	contact.TenantID = principal.TenantID
	if err := s.storage.Contacts().Save(r.Context(), &contact); err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, contact)
}

func (s *Server) HandleListContacts(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	contacts, err := s.storage.Contacts().List(r.Context(), principal.TenantID)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, contacts)
}

func (s *Server) HandleGetContact(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	contact, err := s.storage.Contacts().Get(r.Context(), principal.TenantID, mux.Vars(r)["id"])
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, contact)
}

func (s *Server) HandleUpdateContact(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	var req model.ContactRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondWithFieldErrors(w, errs)
		return
	}
	contact := contactFromRequest(req)
	contact.ID = mux.Vars(r)["id"]
	contact.TenantID = principal.TenantID
	if err := s.storage.Contacts().Update(r.Context(), &contact); err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, contact)
}

func (s *Server) HandleDeleteContact(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	if err := s.storage.Contacts().Delete(r.Context(), principal.TenantID, mux.Vars(r)["id"]); err != nil {
		respondStorageError(w, err)
		return
	}
	respondOK(w, "deleted")
}

func (s *Server) HandleExportContacts(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	contacts, err := s.storage.Contacts().List(r.Context(), principal.TenantID)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="contacts.csv"`)
	if err := imports.WriteCSV(w, contacts); err != nil {
		logger.Error("contact export failed", zap.Error(err))
	}
}

// HandleImportContacts accepts either a multipart upload (csv, xlsx,
// xls) or a raw CSV request body.
func (s *Server) HandleImportContacts(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	rows, err := readImportRows(r)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	result, err := s.contactService.Import(r.Context(), principal.TenantID, rows)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

func readImportRows(r *http.Request) ([]imports.Row, error) {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		defer r.Body.Close()
		return imports.ParseCSV(r.Body)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, imports.HeaderError{Message: "missing file field"}
	}
	defer file.Close()
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".xlsx", ".xls":
		return imports.ParseXLSX(file)
	case ".csv", "":
		return imports.ParseCSV(file)
	default:
		return nil, imports.HeaderError{Message: "unsupported file type, expected .csv, .xlsx or .xls"}
	}
}
