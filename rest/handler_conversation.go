package rest

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/validate"
)

type conversationRequest struct {
	ContactID string `json:"contactId" validate:"required"`
	ChannelID string `json:"channelId" validate:"required"`
}

func (s *Server) HandleCreateConversation(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	var req conversationRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondWithFieldErrors(w, errs)
		return
	}
	if _, err := s.storage.Contacts().Get(r.Context(), principal.TenantID, req.ContactID); err != nil {
		respondStorageError(w, err)
		return
	}
	if _, err := s.storage.Channels().Get(r.Context(), req.ChannelID); err != nil {
		respondStorageError(w, err)
		return
	}
	conversation := &model.Conversation{
		ID:        uuid.NewString(),
		TenantID:  principal.TenantID,
		ContactID: req.ContactID,
		ChannelID: req.ChannelID,
		Status:    model.CONVERSATION_STATUS_OPEN,
	}
	if err := s.storage.Conversations().Save(r.Context(), conversation); err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, conversation)
}

func (s *Server) HandleListConversations(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	conversations, err := s.storage.Conversations().List(r.Context(), principal.TenantID)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conversations)
}

func (s *Server) HandleGetConversation(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	conversation, err := s.storage.Conversations().Get(r.Context(), principal.TenantID, mux.Vars(r)["id"])
	if err != nil {
		respondStorageError(w, err)
		return
	}
	messages, err := s.storage.Conversations().Messages(r.Context(), conversation.ID)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{
		"conversation": conversation,
		"messages":     messages,
	})
}

// HandleSendMessage records an outbound message on the conversation.
// Delivery to the channel provider is not wired here.
func (s *Server) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	var req model.SendMessageRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondWithFieldErrors(w, errs)
		return
	}
	conversation, err := s.storage.Conversations().Get(r.Context(), principal.TenantID, mux.Vars(r)["id"])
	if err != nil {
		respondStorageError(w, err)
		return
	}
	msg := &model.Message{
		ID:             uuid.NewString(),
		ConversationID: conversation.ID,
		Direction:      model.MESSAGE_DIRECTION_OUTBOUND,
		Body:           req.Body,
	}
	if err := s.storage.Conversations().AppendMessage(r.Context(), msg); err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, msg)
}

func (s *Server) HandleAssignConversation(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	var req model.AssignRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondWithFieldErrors(w, errs)
		return
	}
	conversation, err := s.storage.Conversations().Get(r.Context(), principal.TenantID, mux.Vars(r)["id"])
	if err != nil {
		respondStorageError(w, err)
		return
	}
	conversation.AssignedTo = req.UserID
	if err := s.storage.Conversations().Update(r.Context(), conversation); err != nil {
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conversation)
}
