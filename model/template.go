package model

import (
	"regexp"
	"time"
)

type Template struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	Name      string    `json:"name"`
	ChannelID string    `json:"channelId"`
	Content   string    `json:"content"`
	Variables []string  `json:"variables,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var variablePattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_.]+)\s*\}\}`)

// ExtractVariables lists the distinct {{variable}} placeholders in a
// template body, in order of first appearance. The content itself is
// never rewritten; rendering happens at the channel provider, not here.
func ExtractVariables(content string) []string {
	var out []string
	seen := map[string]bool{}
	for _, m := range variablePattern.FindAllStringSubmatch(content, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}

type TemplateRequest struct {
	Name      string `json:"name" validate:"required"`
	ChannelID string `json:"channelId" validate:"required"`
	Content   string `json:"content" validate:"required"`
	IsActive  *bool  `json:"isActive"`
}
