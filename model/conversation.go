package model

import "time"

type ConversationStatus string

const CONVERSATION_STATUS_OPEN ConversationStatus = "open"
const CONVERSATION_STATUS_CLOSED ConversationStatus = "closed"

type MessageDirection string

const MESSAGE_DIRECTION_INBOUND MessageDirection = "inbound"
const MESSAGE_DIRECTION_OUTBOUND MessageDirection = "outbound"

type Conversation struct {
	ID         string             `json:"id"`
	TenantID   string             `json:"tenantId"`
	ContactID  string             `json:"contactId"`
	ChannelID  string             `json:"channelId"`
	Status     ConversationStatus `json:"status"`
	AssignedTo string             `json:"assignedTo,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

type Message struct {
	ID             string           `json:"id"`
	ConversationID string           `json:"conversationId"`
	Direction      MessageDirection `json:"direction"`
	Body           string           `json:"body"`
	CreatedAt      time.Time        `json:"createdAt"`
}

type SendMessageRequest struct {
	Body string `json:"body" validate:"required"`
}

type AssignRequest struct {
	UserID string `json:"userId" validate:"required"`
}
