package flow

import "github.com/omnirelay/console/model"

// Migrate upgrades a graph read from storage to the current schema
// version. Old saves never fail to load; missing fields are defaulted
// instead of silently dropped.
//
// Version history:
//
//	1 (and legacy saves with no version) - node data may be nil or
//	  missing label/content; decision edges may omit sourceHandle.
//	2 - data always carries label and content, defaulted from the
//	  registry for the node's kind.
func Migrate(g *model.Graph) {
	if g.SchemaVersion >= model.CurrentGraphSchemaVersion {
		return
	}
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if n.Data == nil {
			n.Data = map[string]any{}
		}
		d, ok := Lookup(NodeKind(n.Type))
		if !ok {
			continue
		}
		if _, present := n.Data["label"]; !present {
			n.Data["label"] = d.DefaultData["label"]
		}
		if _, present := n.Data["content"]; !present {
			n.Data["content"] = ""
		}
	}
	g.SchemaVersion = model.CurrentGraphSchemaVersion
}
