package model

import "time"

type ApiIntegration struct {
	ID        string         `json:"id"`
	TenantID  string         `json:"tenantId"`
	Name      string         `json:"name"`
	Provider  string         `json:"provider"`
	ApiKey    string         `json:"apiKey,omitempty"`
	Config    map[string]any `json:"config,omitempty"`
	IsActive  bool           `json:"isActive"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type ApiIntegrationRequest struct {
	Name     string         `json:"name" validate:"required"`
	Provider string         `json:"provider" validate:"required"`
	ApiKey   string         `json:"apiKey"`
	Config   map[string]any `json:"config"`
	IsActive *bool          `json:"isActive"`
}
