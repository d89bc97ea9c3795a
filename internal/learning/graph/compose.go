// Package graph derives a node/edge view of a workspace for visualization.
package graph

import (
	"github.com/google/uuid"

	types "github.com/Roblokonha/StudyVault/internal/domain"
)

// StructuralLabel names the synthesized parent to child edges.
const StructuralLabel = "is part of"

type EdgeKind string

const (
	EdgeExplicit   EdgeKind = "explicit"
	EdgeStructural EdgeKind = "structural"
)

type Node struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
}

type Edge struct {
	Source uuid.UUID `json:"source"`
	Target uuid.UUID `json:"target"`
	Label  string    `json:"label"`
	Kind   EdgeKind  `json:"kind"`
}

type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

func (g Graph) Empty() bool { return len(g.Nodes) == 0 }

// Compose combines explicit relations with parent to child edges. Nodes keep item
// order; explicit edges come first, then structural ones in item order. Relations
// whose endpoints are not among items are dropped.
func Compose(items []*types.WorkspaceItem, relations []*types.WorkspaceItemRelation) Graph {
	g := Graph{Nodes: []Node{}, Edges: []Edge{}}
	known := make(map[uuid.UUID]struct{}, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if _, dup := known[it.ID]; dup {
			continue
		}
		known[it.ID] = struct{}{}
		g.Nodes = append(g.Nodes, Node{ID: it.ID, Label: it.Title})
	}
	for _, r := range relations {
		if r == nil {
			continue
		}
		_, okSrc := known[r.SourceID]
		_, okDst := known[r.TargetID]
		if !okSrc || !okDst {
			continue
		}
		g.Edges = append(g.Edges, Edge{Source: r.SourceID, Target: r.TargetID, Label: r.Label, Kind: EdgeExplicit})
	}
	for _, it := range items {
		if it == nil || !it.HasParent() {
			continue
		}
		if _, ok := known[*it.ParentID]; !ok {
			continue
		}
		g.Edges = append(g.Edges, Edge{Source: *it.ParentID, Target: it.ID, Label: StructuralLabel, Kind: EdgeStructural})
	}
	return g
}
