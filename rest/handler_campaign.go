package rest

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/validate"
)

// checkCampaignRefs verifies that the optional references point at rows
// the tenant owns. A reference into another tenant is a 404, same as
// any other cross-tenant access.
func (s *Server) checkCampaignRefs(r *http.Request, tenantID string, req model.CampaignRequest) error {
	if req.ChannelID != "" {
		if _, err := s.storage.Channels().Get(r.Context(), req.ChannelID); err != nil {
			return err
		}
	}
	if req.TemplateID != "" {
		if _, err := s.storage.Templates().Get(r.Context(), tenantID, req.TemplateID); err != nil {
			return err
		}
	}
	if req.ListID != "" {
		if _, err := s.storage.ContactLists().Get(r.Context(), tenantID, req.ListID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) HandleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	var req model.CampaignRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondWithFieldErrors(w, errs)
		return
	}
	if err := s.checkCampaignRefs(r, principal.TenantID, req); err != nil {
		respondStorageError(w, err)
		return
	}
	status := model.CampaignStatus(req.Status)
	if req.Status == "" {
		status = model.CAMPAIGN_STATUS_DRAFT
	}
	campaign := &model.Campaign{
		ID:          uuid.NewString(),
		TenantID:    principal.TenantID,
		Name:        req.Name,
		ChannelID:   req.ChannelID,
		TemplateID:  req.TemplateID,
		ListID:      req.ListID,
		Status:      status,
		ScheduledAt: req.ScheduledAt,
	}
	if err := s.storage.Campaigns().Save(r.Context(), campaign); err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, campaign)
}

func (s *Server) HandleListCampaigns(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	campaigns, err := s.storage.Campaigns().List(r.Context(), principal.TenantID)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, campaigns)
}

func (s *Server) HandleGetCampaign(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	campaign, err := s.storage.Campaigns().Get(r.Context(), principal.TenantID, mux.Vars(r)["id"])
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, campaign)
}

func (s *Server) HandleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	var req model.CampaignRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondWithFieldErrors(w, errs)
		return
	}
	if err := s.checkCampaignRefs(r, principal.TenantID, req); err != nil {
		respondStorageError(w, err)
		return
	}
	campaign, err := s.storage.Campaigns().Get(r.Context(), principal.TenantID, mux.Vars(r)["id"])
	if err != nil {
		respondStorageError(w, err)
		return
	}
	campaign.Name = req.Name
	campaign.ChannelID = req.ChannelID
	campaign.TemplateID = req.TemplateID
	campaign.ListID = req.ListID
	if req.Status != "" {
		campaign.Status = model.CampaignStatus(req.Status)
	}
	campaign.ScheduledAt = req.ScheduledAt
	if err := s.storage.Campaigns().Update(r.Context(), campaign); err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, campaign)
}

func (s *Server) HandleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	if err := s.storage.Campaigns().Delete(r.Context(), principal.TenantID, mux.Vars(r)["id"]); err != nil {
		respondStorageError(w, err)
		return
	}
	respondOK(w, "deleted")
}
