// Package merge collapses one workspace item into another.
//
// Planning is pure: NewPlan validates a merge against a snapshot of a document's
// items and relations and records exactly which rows change. Persisting the plan is
// the caller's job and must happen inside one transaction.
package merge

import (
	"github.com/google/uuid"

	types "github.com/Roblokonha/StudyVault/internal/domain"
	domainagg "github.com/Roblokonha/StudyVault/internal/domain/aggregates"
	"github.com/Roblokonha/StudyVault/internal/learning/forest"
)

const op = "workspace.merge"

type Outcome struct {
	SourceID           uuid.UUID `json:"source_id"`
	TargetID           uuid.UUID `json:"target_id"`
	AbsorbedChildren   int       `json:"absorbed_children_count"`
	RewrittenRelations int       `json:"rewritten_relation_count"`
}

type Plan struct {
	DocumentID uuid.UUID
	Source     *types.WorkspaceItem
	Target     *types.WorkspaceItem

	// Children are the items whose parent becomes Target.
	Children []uuid.UUID
	// FromSource holds relations whose source endpoint is rewritten.
	FromSource []uuid.UUID
	// ToSource holds relations whose target endpoint is rewritten.
	ToSource []uuid.UUID
}

// NewPlan validates merging sourceID into targetID. items and relations must be the
// full contents of the document.
func NewPlan(documentID uuid.UUID, items []*types.WorkspaceItem, relations []*types.WorkspaceItemRelation, sourceID, targetID uuid.UUID) (*Plan, error) {
	if sourceID == targetID {
		return nil, domainagg.InvalidOperation(op, "source and target are the same item")
	}
	if len(items) < 2 {
		return nil, domainagg.InsufficientData(op, "document has %d item(s); merging needs at least two", len(items))
	}
	var source, target *types.WorkspaceItem
	for _, it := range items {
		if it == nil || it.DocumentID != documentID {
			continue
		}
		switch it.ID {
		case sourceID:
			source = it
		case targetID:
			target = it
		}
	}
	if source == nil {
		return nil, domainagg.NotFound(op, "item %s not found in document %s", sourceID, documentID)
	}
	if target == nil {
		return nil, domainagg.NotFound(op, "item %s not found in document %s", targetID, documentID)
	}

	idx := forest.ItemIndex(items)
	if idx.IsAncestor(sourceID, targetID) {
		return nil, domainagg.InvalidOperation(op, "target %q lies inside the subtree of %q", target.Title, source.Title)
	}

	p := &Plan{DocumentID: documentID, Source: source, Target: target}
	for _, it := range items {
		if it.ParentID != nil && *it.ParentID == sourceID && it.DocumentID == documentID {
			p.Children = append(p.Children, it.ID)
		}
	}
	for _, r := range relations {
		if r == nil || r.DocumentID != documentID {
			continue
		}
		if r.SourceID == sourceID {
			p.FromSource = append(p.FromSource, r.ID)
		}
		if r.TargetID == sourceID {
			p.ToSource = append(p.ToSource, r.ID)
		}
	}
	return p, nil
}

// Outcome summarizes the plan. A relation with both endpoints on the source counts once.
func (p *Plan) Outcome() Outcome {
	touched := make(map[uuid.UUID]struct{}, len(p.FromSource)+len(p.ToSource))
	for _, id := range p.FromSource {
		touched[id] = struct{}{}
	}
	for _, id := range p.ToSource {
		touched[id] = struct{}{}
	}
	return Outcome{
		SourceID:           p.Source.ID,
		TargetID:           p.Target.ID,
		AbsorbedChildren:   len(p.Children),
		RewrittenRelations: len(touched),
	}
}

// Apply performs the plan on in-memory copies and returns the resulting rows.
// The inputs are left untouched.
func (p *Plan) Apply(items []*types.WorkspaceItem, relations []*types.WorkspaceItemRelation) ([]*types.WorkspaceItem, []*types.WorkspaceItemRelation) {
	sourceID, targetID := p.Source.ID, p.Target.ID
	outItems := make([]*types.WorkspaceItem, 0, len(items))
	for _, it := range items {
		if it.ID == sourceID {
			continue
		}
		cp := *it
		if cp.ParentID != nil && *cp.ParentID == sourceID {
			tid := targetID
			cp.ParentID = &tid
		}
		outItems = append(outItems, &cp)
	}
	outRels := make([]*types.WorkspaceItemRelation, 0, len(relations))
	for _, r := range relations {
		cp := *r
		if cp.SourceID == sourceID {
			cp.SourceID = targetID
		}
		if cp.TargetID == sourceID {
			cp.TargetID = targetID
		}
		outRels = append(outRels, &cp)
	}
	return outItems, outRels
}
