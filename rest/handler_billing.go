package rest

import (
	"net/http"

	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/service"
	"github.com/omnirelay/console/validate"
)

func (s *Server) HandleCreateIntent(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	var req model.CreateIntentRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondWithFieldErrors(w, errs)
		return
	}
	intent, err := s.billingService.CreateIntent(r.Context(), principal.TenantID, req.Amount)
	if err != nil {
		if err == service.ErrInvalidAmount {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, intent)
}

func (s *Server) HandleTopup(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	var req model.TopupRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondWithFieldErrors(w, errs)
		return
	}
	tenant, txn, err := s.billingService.ConfirmTopup(r.Context(), principal.TenantID, req.IntentID)
	if err != nil {
		if err == service.ErrUnknownIntent {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondStorageError(w, err)
		return
	}
	s.tenantCache.Invalidate(principal.TenantID)
	respondWithJSON(w, http.StatusOK, map[string]any{
		"tenant":      tenant,
		"transaction": txn,
	})
}

type chargeRequest struct {
	Amount    string `json:"amount" validate:"required"`
	Reference string `json:"reference"`
}

func (s *Server) HandleCharge(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	var req chargeRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondWithFieldErrors(w, errs)
		return
	}
	tenant, txn, err := s.billingService.Charge(r.Context(), principal.TenantID, req.Amount, req.Reference)
	if err != nil {
		if err == service.ErrInvalidAmount {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondStorageError(w, err)
		return
	}
	s.tenantCache.Invalidate(principal.TenantID)
	respondWithJSON(w, http.StatusOK, map[string]any{
		"tenant":      tenant,
		"transaction": txn,
	})
}

func (s *Server) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	txns, err := s.billingService.Transactions(r.Context(), principal.TenantID)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, txns)
}
