package forest

import (
	"github.com/google/uuid"

	types "github.com/Roblokonha/StudyVault/internal/domain"
)

type ObjectiveNode struct {
	ID            uuid.UUID        `json:"id"`
	Description   string           `json:"description"`
	IsCompleted   bool             `json:"is_completed"`
	SubObjectives []*ObjectiveNode `json:"sub_objectives"`
}

func ObjectiveIndex(objs []*types.LearningObjective) *Index {
	return NewIndex(objs,
		func(o *types.LearningObjective) uuid.UUID { return o.ID },
		func(o *types.LearningObjective) *uuid.UUID { return o.ParentID },
	)
}

// BuildObjectiveTree nests objectives without sorting: input order is display order.
func BuildObjectiveTree(objs []*types.LearningObjective) []*ObjectiveNode {
	idx := ObjectiveIndex(objs)
	nodes := make([]*ObjectiveNode, len(objs))
	for i, o := range objs {
		nodes[i] = &ObjectiveNode{
			ID:            o.ID,
			Description:   o.Description,
			IsCompleted:   o.IsCompleted,
			SubObjectives: []*ObjectiveNode{},
		}
	}
	for i := range objs {
		for _, c := range idx.Children(i) {
			nodes[i].SubObjectives = append(nodes[i].SubObjectives, nodes[c])
		}
	}
	roots := make([]*ObjectiveNode, 0, len(idx.Roots()))
	for _, r := range idx.Roots() {
		roots = append(roots, nodes[r])
	}
	return roots
}
