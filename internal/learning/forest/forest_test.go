package forest

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/Roblokonha/StudyVault/internal/domain"
)

func item(title string, order int, parent *types.WorkspaceItem) *types.WorkspaceItem {
	it := &types.WorkspaceItem{ID: uuid.New(), Title: title, Order: order}
	if parent != nil {
		pid := parent.ID
		it.ParentID = &pid
	}
	return it
}

func titles(nodes []*ItemNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Title)
	}
	return out
}

func TestBuildItemTreeOrdersSiblings(t *testing.T) {
	root := item("root", 1, nil)
	c3 := item("three", 3, root)
	c1 := item("one", 1, root)
	c2 := item("two", 2, root)

	forest := BuildItemTree([]*types.WorkspaceItem{c3, root, c1, c2})
	require.Len(t, forest, 1)
	assert.Equal(t, "root", forest[0].Title)
	assert.Equal(t, []string{"one", "two", "three"}, titles(forest[0].Children))
}

func TestBuildItemTreeStableTies(t *testing.T) {
	a := item("a", 1, nil)
	b := item("b", 1, nil)
	c := item("c", 0, nil)
	d := item("d", 1, nil)

	forest := BuildItemTree([]*types.WorkspaceItem{a, b, c, d})
	assert.Equal(t, []string{"c", "a", "b", "d"}, titles(forest))
}

func TestBuildItemTreePromotesUnresolvedParents(t *testing.T) {
	ghost := uuid.New()
	orphan := &types.WorkspaceItem{ID: uuid.New(), Title: "orphan", Order: 2, ParentID: &ghost}
	root := item("root", 1, nil)

	forest := BuildItemTree([]*types.WorkspaceItem{orphan, root})
	assert.Equal(t, []string{"root", "orphan"}, titles(forest))
}

func TestBuildItemTreeCompleteness(t *testing.T) {
	root := item("root", 1, nil)
	a := item("a", 1, root)
	b := item("b", 2, a)
	c := item("c", 1, b)
	d := item("d", 5, nil)
	items := []*types.WorkspaceItem{c, b, a, root, d}

	forest := BuildItemTree(items)
	assert.Equal(t, len(items), CountItems(forest))

	seen := map[uuid.UUID]int{}
	var walk func([]*ItemNode)
	walk = func(nodes []*ItemNode) {
		for _, n := range nodes {
			seen[n.ID]++
			walk(n.Children)
		}
	}
	walk(forest)
	for _, it := range items {
		assert.Equal(t, 1, seen[it.ID], "item %s", it.Title)
	}
}

func TestBuildItemTreeBreaksCycles(t *testing.T) {
	a := &types.WorkspaceItem{ID: uuid.New(), Title: "a", Order: 1}
	b := &types.WorkspaceItem{ID: uuid.New(), Title: "b", Order: 2}
	a.ParentID = &b.ID
	b.ParentID = &a.ID
	self := &types.WorkspaceItem{ID: uuid.New(), Title: "self", Order: 3}
	self.ParentID = &self.ID

	items := []*types.WorkspaceItem{a, b, self}
	idx := ItemIndex(items)
	assert.False(t, idx.Acyclic())

	forest := BuildItemTree(items)
	assert.Equal(t, 3, CountItems(forest))
	assert.Equal(t, []string{"a", "self"}, titles(forest))
	assert.Equal(t, []string{"b"}, titles(forest[0].Children))
}

func TestBuildItemTreeEmpty(t *testing.T) {
	forest := BuildItemTree(nil)
	require.NotNil(t, forest)
	assert.Empty(t, forest)
}

func TestIndexSubtreeAndCycleChecks(t *testing.T) {
	root := item("root", 1, nil)
	a := item("a", 1, root)
	b := item("b", 1, a)
	other := item("other", 2, nil)
	idx := ItemIndex([]*types.WorkspaceItem{root, a, b, other})

	assert.Equal(t, []uuid.UUID{root.ID, a.ID, b.ID}, idx.Subtree(root.ID))
	assert.Equal(t, []uuid.UUID{b.ID, a.ID, root.ID}, idx.LeafToRoot(root.ID))

	assert.True(t, idx.IsAncestor(root.ID, b.ID))
	assert.False(t, idx.IsAncestor(b.ID, root.ID))
	assert.True(t, idx.WouldCycle(root.ID, &b.ID))
	assert.True(t, idx.WouldCycle(a.ID, &a.ID))
	assert.False(t, idx.WouldCycle(b.ID, &other.ID))
	assert.False(t, idx.WouldCycle(b.ID, nil))

	order := idx.AllLeafToRoot()
	require.Len(t, order, 4)
	position := map[uuid.UUID]int{}
	for i, id := range order {
		position[id] = i
	}
	assert.Less(t, position[b.ID], position[a.ID])
	assert.Less(t, position[a.ID], position[root.ID])
}

func TestNextOrder(t *testing.T) {
	root := item("root", 4, nil)
	a := item("a", 7, root)
	b := item("b", 2, root)
	items := []*types.WorkspaceItem{root, a, b}

	assert.Equal(t, 8, NextOrder(items, &root.ID))
	assert.Equal(t, 5, NextOrder(items, nil))
	assert.Equal(t, 1, NextOrder(items, &a.ID))
}

func TestBuildObjectiveTreeKeepsInsertionOrder(t *testing.T) {
	parent := &types.LearningObjective{ID: uuid.New(), Description: "Pass the exam"}
	second := &types.LearningObjective{ID: uuid.New(), Description: "z later", ParentID: &parent.ID}
	first := &types.LearningObjective{ID: uuid.New(), Description: "a earlier", ParentID: &parent.ID, IsCompleted: true}
	loose := &types.LearningObjective{ID: uuid.New(), Description: "standalone"}

	forest := BuildObjectiveTree([]*types.LearningObjective{parent, second, first, loose})
	require.Len(t, forest, 2)
	assert.Equal(t, "Pass the exam", forest[0].Description)
	require.Len(t, forest[0].SubObjectives, 2)
	assert.Equal(t, "z later", forest[0].SubObjectives[0].Description)
	assert.True(t, forest[0].SubObjectives[1].IsCompleted)
	assert.Empty(t, forest[1].SubObjectives)
}
