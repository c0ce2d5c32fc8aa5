package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/omnirelay/console/flow"
	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/persistence"
)

// FlowService owns the save/load contract for flow definitions: ids are
// normalized, structural invariants are validated before anything is
// written, and graphs read from storage are migrated to the current
// schema version.
type FlowService struct {
	flows persistence.FlowStorage
}

func NewFlowService(flows persistence.FlowStorage) *FlowService {
	return &FlowService{flows: flows}
}

func (s *FlowService) Create(ctx context.Context, tenantID string, req model.FlowSaveRequest) (*model.Flow, error) {
	graph := model.Graph{
		SchemaVersion: model.CurrentGraphSchemaVersion,
		Nodes:         req.Nodes,
		Edges:         req.Edges,
	}
	flow.Normalize(&graph)
	if errs := flow.Validate(graph); errs != nil {
		return nil, errs
	}
	f := &model.Flow{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		Name:        req.Name,
		Description: req.Description,
		Graph:       graph,
	}
	if req.IsActive != nil {
		f.IsActive = *req.IsActive
	}
	if err := s.flows.Save(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FlowService) Update(ctx context.Context, tenantID, id string, req model.FlowSaveRequest) (*model.Flow, error) {
	existing, err := s.flows.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	graph := model.Graph{
		SchemaVersion: model.CurrentGraphSchemaVersion,
		Nodes:         req.Nodes,
		Edges:         req.Edges,
	}
	flow.Normalize(&graph)
	if errs := flow.Validate(graph); errs != nil {
		return nil, errs
	}
	existing.Name = req.Name
	existing.Description = req.Description
	existing.Graph = graph
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	if err := s.flows.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *FlowService) Get(ctx context.Context, tenantID, id string) (*model.Flow, error) {
	f, err := s.flows.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	flow.Migrate(&f.Graph)
	return f, nil
}

func (s *FlowService) List(ctx context.Context, tenantID string) ([]model.Flow, error) {
	flows, err := s.flows.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	for i := range flows {
		flow.Migrate(&flows[i].Graph)
	}
	return flows, nil
}

func (s *FlowService) Delete(ctx context.Context, tenantID, id string) error {
	return s.flows.Delete(ctx, tenantID, id)
}

// SetActive flips the active flag without touching the graph.
func (s *FlowService) SetActive(ctx context.Context, tenantID, id string, active bool) (*model.Flow, error) {
	f, err := s.flows.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	f.IsActive = active
	if err := s.flows.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}
