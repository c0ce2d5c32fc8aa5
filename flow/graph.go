package flow

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/omnirelay/console/model"
)

type ValidationError struct {
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Message
}

type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "graph is invalid"
	}
	return e[0].Message
}

func errf(format string, args ...any) ValidationError {
	return ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Normalize assigns ids to nodes and edges that arrive without one. The
// editor's positional id scheme can collide after delete/re-add, so the
// server never trusts an empty id.
func Normalize(g *model.Graph) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == "" {
			g.Nodes[i].ID = fmt.Sprintf("%s-%s", g.Nodes[i].Type, uuid.NewString()[:8])
		}
		if g.Nodes[i].Data == nil {
			g.Nodes[i].Data = map[string]any{}
		}
	}
	for i := range g.Edges {
		if g.Edges[i].ID == "" {
			g.Edges[i].ID = "edge-" + uuid.NewString()[:8]
		}
	}
}

// Validate checks the structural invariants a saved graph must satisfy:
// unique node ids, known node kinds, edges that reference existing
// nodes, exactly one trigger node, and branch edges that use a handle
// the source kind declares.
func Validate(g model.Graph) ValidationErrors {
	var errs ValidationErrors

	seen := make(map[string]bool, len(g.Nodes))
	triggers := 0
	for _, n := range g.Nodes {
		if n.ID == "" {
			errs = append(errs, errf("node of type %q has no id", n.Type))
			continue
		}
		if seen[n.ID] {
			errs = append(errs, errf("duplicate node id %q", n.ID))
			continue
		}
		seen[n.ID] = true
		d, ok := Lookup(NodeKind(n.Type))
		if !ok {
			errs = append(errs, errf("node %q has unknown type %q", n.ID, n.Type))
			continue
		}
		if d.Entry {
			triggers++
		}
	}
	if triggers == 0 {
		errs = append(errs, errf("flow has no entry node"))
	} else if triggers > 1 {
		errs = append(errs, errf("flow has %d entry nodes, exactly one is allowed", triggers))
	}

	for _, e := range g.Edges {
		if !seen[e.Source] {
			errs = append(errs, errf("edge %q references missing source node %q", e.ID, e.Source))
		}
		if !seen[e.Target] {
			errs = append(errs, errf("edge %q references missing target node %q", e.ID, e.Target))
		}
		if e.SourceHandle != "" && seen[e.Source] {
			if src, ok := nodeByID(g.Nodes, e.Source); ok {
				if d, ok := Lookup(NodeKind(src.Type)); ok && !hasHandle(d, e.SourceHandle) {
					errs = append(errs, errf("edge %q uses handle %q which node type %q does not declare", e.ID, e.SourceHandle, src.Type))
				}
			}
		}
	}
	return errs
}

func nodeByID(nodes []model.FlowNode, id string) (model.FlowNode, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
	}
	return model.FlowNode{}, false
}

func hasHandle(d Descriptor, handle string) bool {
	for _, h := range d.Handles {
		if h == handle {
			return true
		}
	}
	return false
}
