package model

import "time"

// CurrentGraphSchemaVersion is written with every saved graph. Graphs
// persisted with an older version are migrated on read.
const CurrentGraphSchemaVersion = 2

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type FlowNode struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Position Position       `json:"position"`
	Data     map[string]any `json:"data"`
}

type FlowEdge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
}

type Graph struct {
	SchemaVersion int        `json:"schemaVersion"`
	Nodes         []FlowNode `json:"nodes"`
	Edges         []FlowEdge `json:"edges"`
}

type Flow struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenantId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Graph       Graph     `json:"graph"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type FlowSaveRequest struct {
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description"`
	Nodes       []FlowNode `json:"nodes"`
	Edges       []FlowEdge `json:"edges"`
	IsActive    *bool      `json:"isActive"`
}
