package flow

import (
	"testing"

	"github.com/omnirelay/console/model"
	"github.com/stretchr/testify/require"
)

func node(id string, kind NodeKind) model.FlowNode {
	return model.FlowNode{ID: id, Type: string(kind), Data: map[string]any{}}
}

func TestGraph(t *testing.T) {
	for scenario, fn := range map[string]func(t *testing.T){
		"test normalize assigns ids":    testNormalizeAssignsIds,
		"test valid graph":              testValidGraph,
		"test duplicate node id":        testDuplicateNodeId,
		"test unknown node type":        testUnknownNodeType,
		"test dangling edge":            testDanglingEdge,
		"test entry node required":      testEntryNodeRequired,
		"test multiple entry nodes":     testMultipleEntryNodes,
		"test undeclared source handle": testUndeclaredHandle,
		"test declared source handle":   testDeclaredHandle,
	} {
		t.Run(scenario, fn)
	}
}

func testNormalizeAssignsIds(t *testing.T) {
	g := model.Graph{
		Nodes: []model.FlowNode{
			{Type: string(NODE_SMS)},
			{Type: string(NODE_SMS)},
		},
		Edges: []model.FlowEdge{{Source: "a", Target: "b"}},
	}
	Normalize(&g)

	require.NotEmpty(t, g.Nodes[0].ID)
	require.NotEmpty(t, g.Nodes[1].ID)
	require.NotEqual(t, g.Nodes[0].ID, g.Nodes[1].ID)
	require.Contains(t, g.Nodes[0].ID, string(NODE_SMS))
	require.NotNil(t, g.Nodes[0].Data)
	require.NotEmpty(t, g.Edges[0].ID)
}

func testValidGraph(t *testing.T) {
	g := model.Graph{
		Nodes: []model.FlowNode{
			node("t1", NODE_TRIGGER_WEBHOOK),
			node("s1", NODE_SMS),
			node("e1", NODE_STOP),
		},
		Edges: []model.FlowEdge{
			{ID: "e-1", Source: "t1", Target: "s1"},
			{ID: "e-2", Source: "s1", Target: "e1"},
		},
	}
	require.Nil(t, Validate(g))
}

func testDuplicateNodeId(t *testing.T) {
	g := model.Graph{
		Nodes: []model.FlowNode{
			node("t1", NODE_TRIGGER_WEBHOOK),
			node("n1", NODE_SMS),
			node("n1", NODE_EMAIL),
		},
	}
	errs := Validate(g)
	require.NotNil(t, errs)
	require.Contains(t, errs.Error(), "duplicate node id")
}

func testUnknownNodeType(t *testing.T) {
	g := model.Graph{
		Nodes: []model.FlowNode{
			node("t1", NODE_TRIGGER_WEBHOOK),
			node("n1", NodeKind("teleport")),
		},
	}
	errs := Validate(g)
	require.NotNil(t, errs)
	require.Contains(t, errs.Error(), "unknown type")
}

func testDanglingEdge(t *testing.T) {
	g := model.Graph{
		Nodes: []model.FlowNode{node("t1", NODE_TRIGGER_WEBHOOK)},
		Edges: []model.FlowEdge{{ID: "e-1", Source: "t1", Target: "ghost"}},
	}
	errs := Validate(g)
	require.NotNil(t, errs)
	require.Contains(t, errs.Error(), "missing target node")
}

func testEntryNodeRequired(t *testing.T) {
	g := model.Graph{
		Nodes: []model.FlowNode{node("s1", NODE_SMS), node("e1", NODE_STOP)},
	}
	errs := Validate(g)
	require.NotNil(t, errs)
	require.Contains(t, errs.Error(), "no entry node")
}

func testMultipleEntryNodes(t *testing.T) {
	g := model.Graph{
		Nodes: []model.FlowNode{
			node("t1", NODE_TRIGGER_WEBHOOK),
			node("c1", NODE_INCOMING_CALL),
		},
	}
	errs := Validate(g)
	require.NotNil(t, errs)
	require.Contains(t, errs.Error(), "exactly one is allowed")
}

func testUndeclaredHandle(t *testing.T) {
	g := model.Graph{
		Nodes: []model.FlowNode{
			node("t1", NODE_TRIGGER_WEBHOOK),
			node("s1", NODE_SMS),
		},
		Edges: []model.FlowEdge{
			{ID: "e-1", Source: "s1", Target: "t1", SourceHandle: "yes"},
		},
	}
	errs := Validate(g)
	require.NotNil(t, errs)
	require.Contains(t, errs.Error(), "does not declare")
}

func testDeclaredHandle(t *testing.T) {
	g := model.Graph{
		Nodes: []model.FlowNode{
			node("t1", NODE_TRIGGER_WEBHOOK),
			node("d1", NODE_DECISION),
			node("s1", NODE_SMS),
			node("e1", NODE_STOP),
		},
		Edges: []model.FlowEdge{
			{ID: "e-1", Source: "t1", Target: "d1"},
			{ID: "e-2", Source: "d1", Target: "s1", SourceHandle: "yes"},
			{ID: "e-3", Source: "d1", Target: "e1", SourceHandle: "no"},
		},
	}
	require.Nil(t, Validate(g))
}
