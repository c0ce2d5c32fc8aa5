package model

import "time"

type CampaignStatus string

const CAMPAIGN_STATUS_DRAFT CampaignStatus = "draft"
const CAMPAIGN_STATUS_SCHEDULED CampaignStatus = "scheduled"
const CAMPAIGN_STATUS_RUNNING CampaignStatus = "running"
const CAMPAIGN_STATUS_COMPLETED CampaignStatus = "completed"

type Campaign struct {
	ID          string         `json:"id"`
	TenantID    string         `json:"tenantId"`
	Name        string         `json:"name"`
	ChannelID   string         `json:"channelId,omitempty"`
	TemplateID  string         `json:"templateId,omitempty"`
	ListID      string         `json:"listId,omitempty"`
	Status      CampaignStatus `json:"status"`
	ScheduledAt *time.Time     `json:"scheduledAt,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type CampaignRequest struct {
	Name        string     `json:"name" validate:"required"`
	ChannelID   string     `json:"channelId"`
	TemplateID  string     `json:"templateId"`
	ListID      string     `json:"listId"`
	Status      string     `json:"status" validate:"omitempty,oneof=draft scheduled running completed"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}
