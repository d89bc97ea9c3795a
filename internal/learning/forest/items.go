package forest

import (
	"sort"

	"github.com/google/uuid"

	types "github.com/Roblokonha/StudyVault/internal/domain"
)

// ItemNode is the nested view of a WorkspaceItem.
type ItemNode struct {
	ID           uuid.UUID   `json:"id"`
	Title        string      `json:"title"`
	Content      string      `json:"content"`
	Order        int         `json:"order"`
	UserContent  string      `json:"user_content"`
	Importance   *string     `json:"importance"`
	LearningRole *string     `json:"learning_role"`
	Difficulty   *string     `json:"difficulty"`
	Children     []*ItemNode `json:"children"`
}

func ItemIndex(items []*types.WorkspaceItem) *Index {
	return NewIndex(items,
		func(it *types.WorkspaceItem) uuid.UUID { return it.ID },
		func(it *types.WorkspaceItem) *uuid.UUID { return it.ParentID },
	)
}

// BuildItemTree nests items under their parents and sorts every sibling list by
// Order. The sort is stable, so equal orders keep their input order.
func BuildItemTree(items []*types.WorkspaceItem) []*ItemNode {
	idx := ItemIndex(items)
	nodes := make([]*ItemNode, len(items))
	for i, it := range items {
		nodes[i] = &ItemNode{
			ID:           it.ID,
			Title:        it.Title,
			Content:      it.Content,
			Order:        it.Order,
			UserContent:  it.UserContent,
			Importance:   it.Importance,
			LearningRole: it.LearningRole,
			Difficulty:   it.Difficulty,
			Children:     []*ItemNode{},
		}
	}
	for i := range items {
		for _, c := range idx.Children(i) {
			nodes[i].Children = append(nodes[i].Children, nodes[c])
		}
		sortByOrder(nodes[i].Children)
	}
	roots := make([]*ItemNode, 0, len(idx.Roots()))
	for _, r := range idx.Roots() {
		roots = append(roots, nodes[r])
	}
	sortByOrder(roots)
	return roots
}

func sortByOrder(nodes []*ItemNode) {
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Order < nodes[j].Order })
}

// CountItems counts every node in the forest.
func CountItems(roots []*ItemNode) int {
	n := 0
	for _, r := range roots {
		n += 1 + CountItems(r.Children)
	}
	return n
}

// NextOrder returns max sibling order + 1 for children of parent (nil for roots).
func NextOrder(items []*types.WorkspaceItem, parent *uuid.UUID) int {
	max := 0
	for _, it := range items {
		if !sameParent(it.ParentID, parent) {
			continue
		}
		if it.Order > max {
			max = it.Order
		}
	}
	return max + 1
}

func sameParent(a, b *uuid.UUID) bool {
	aNil := a == nil || *a == uuid.Nil
	bNil := b == nil || *b == uuid.Nil
	if aNil || bNil {
		return aNil == bNil
	}
	return *a == *b
}
