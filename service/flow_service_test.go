package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/omnirelay/console/flow"
	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/persistence/inmem"
)

func TestFlowService(t *testing.T) {
	for scenario, fn := range map[string]func(
		t *testing.T, svc *FlowService, storage *inmem.Storage,
	){
		"test create and reload":          testFlowCreateAndReload,
		"test invalid graph is rejected":  testFlowInvalidGraphRejected,
		"test update replaces graph":      testFlowUpdateReplacesGraph,
		"test legacy graph migrates":      testFlowLegacyGraphMigrates,
		"test set active":                 testFlowSetActive,
		"test cross tenant get not found": testFlowCrossTenantGet,
	} {
		t.Run(scenario, func(t *testing.T) {
			storage := inmem.NewStorage()
			fn(t, NewFlowService(storage.Flows()), storage)
		})
	}
}

func saveRequest(name string) model.FlowSaveRequest {
	return model.FlowSaveRequest{
		Name: name,
		Nodes: []model.FlowNode{
			{ID: "t1", Type: string(flow.NODE_TRIGGER_WEBHOOK), Data: map[string]any{"label": "start"}},
			{ID: "s1", Type: string(flow.NODE_SMS), Data: map[string]any{"label": "sms", "content": "hi {{firstName}}"}},
		},
		Edges: []model.FlowEdge{{ID: "e1", Source: "t1", Target: "s1"}},
	}
}

func testFlowCreateAndReload(t *testing.T, svc *FlowService, storage *inmem.Storage) {
	ctx := context.Background()
	created, err := svc.Create(ctx, "t-1", saveRequest("welcome"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, model.CurrentGraphSchemaVersion, created.Graph.SchemaVersion)

	loaded, err := svc.Get(ctx, "t-1", created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Graph, loaded.Graph)
	require.Equal(t, "hi {{firstName}}", loaded.Graph.Nodes[1].Data["content"])
}

func testFlowInvalidGraphRejected(t *testing.T, svc *FlowService, storage *inmem.Storage) {
	ctx := context.Background()
	req := saveRequest("broken")
	req.Edges = []model.FlowEdge{{ID: "e1", Source: "t1", Target: "ghost"}}

	_, err := svc.Create(ctx, "t-1", req)
	require.Error(t, err)
	_, ok := err.(flow.ValidationErrors)
	require.True(t, ok)

	flows, err := svc.List(ctx, "t-1")
	require.NoError(t, err)
	require.Empty(t, flows)
}

func testFlowUpdateReplacesGraph(t *testing.T, svc *FlowService, storage *inmem.Storage) {
	ctx := context.Background()
	created, err := svc.Create(ctx, "t-1", saveRequest("welcome"))
	require.NoError(t, err)

	req := saveRequest("welcome v2")
	req.Nodes = append(req.Nodes, model.FlowNode{ID: "w1", Type: string(flow.NODE_WAIT), Data: map[string]any{}})
	updated, err := svc.Update(ctx, "t-1", created.ID, req)
	require.NoError(t, err)
	require.Equal(t, "welcome v2", updated.Name)
	require.Len(t, updated.Graph.Nodes, 3)
}

func testFlowLegacyGraphMigrates(t *testing.T, svc *FlowService, storage *inmem.Storage) {
	ctx := context.Background()
	legacy := &model.Flow{
		ID:       "f-legacy",
		TenantID: "t-1",
		Name:     "old",
		Graph: model.Graph{
			Nodes: []model.FlowNode{{ID: "t1", Type: string(flow.NODE_TRIGGER_WEBHOOK)}},
		},
	}
	require.NoError(t, storage.Flows().Save(ctx, legacy))

	loaded, err := svc.Get(ctx, "t-1", "f-legacy")
	require.NoError(t, err)
	require.Equal(t, model.CurrentGraphSchemaVersion, loaded.Graph.SchemaVersion)
	require.Equal(t, "Trigger: Webhook", loaded.Graph.Nodes[0].Data["label"])
}

func testFlowSetActive(t *testing.T, svc *FlowService, storage *inmem.Storage) {
	ctx := context.Background()
	created, err := svc.Create(ctx, "t-1", saveRequest("welcome"))
	require.NoError(t, err)
	require.False(t, created.IsActive)

	activated, err := svc.SetActive(ctx, "t-1", created.ID, true)
	require.NoError(t, err)
	require.True(t, activated.IsActive)

	loaded, err := svc.Get(ctx, "t-1", created.ID)
	require.NoError(t, err)
	require.True(t, loaded.IsActive)
}

func testFlowCrossTenantGet(t *testing.T, svc *FlowService, storage *inmem.Storage) {
	ctx := context.Background()
	created, err := svc.Create(ctx, "t-1", saveRequest("welcome"))
	require.NoError(t, err)

	_, err = svc.Get(ctx, "t-2", created.ID)
	require.Error(t, err)
}
