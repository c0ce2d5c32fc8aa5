package flow

import (
	"testing"

	"github.com/omnirelay/console/model"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	for scenario, fn := range map[string]func(t *testing.T){
		"test legacy graph gets defaults":   testMigrateLegacyGraph,
		"test current graph is untouched":   testMigrateCurrentGraph,
		"test unknown kinds survive intact": testMigrateUnknownKind,
	} {
		t.Run(scenario, fn)
	}
}

func testMigrateLegacyGraph(t *testing.T) {
	g := model.Graph{
		Nodes: []model.FlowNode{
			{ID: "t1", Type: string(NODE_TRIGGER_WEBHOOK)},
			{ID: "s1", Type: string(NODE_SMS), Data: map[string]any{"label": "my sms"}},
		},
	}
	Migrate(&g)

	require.Equal(t, model.CurrentGraphSchemaVersion, g.SchemaVersion)
	require.Equal(t, "Trigger: Webhook", g.Nodes[0].Data["label"])
	require.Equal(t, "", g.Nodes[0].Data["content"])
	// user-set fields are never overwritten
	require.Equal(t, "my sms", g.Nodes[1].Data["label"])
}

func testMigrateCurrentGraph(t *testing.T) {
	g := model.Graph{
		SchemaVersion: model.CurrentGraphSchemaVersion,
		Nodes: []model.FlowNode{
			{ID: "t1", Type: string(NODE_TRIGGER_WEBHOOK), Data: map[string]any{"label": "kept"}},
		},
	}
	Migrate(&g)

	require.Equal(t, "kept", g.Nodes[0].Data["label"])
	_, present := g.Nodes[0].Data["content"]
	require.False(t, present)
}

func testMigrateUnknownKind(t *testing.T) {
	g := model.Graph{
		Nodes: []model.FlowNode{{ID: "x1", Type: "teleport"}},
	}
	Migrate(&g)

	require.Equal(t, model.CurrentGraphSchemaVersion, g.SchemaVersion)
	require.NotNil(t, g.Nodes[0].Data)
	_, present := g.Nodes[0].Data["label"]
	require.False(t, present)
}
