// Package forest turns flat parent-referencing records into ordered forests.
//
// Records are held in an arena: a position lookup by id plus a parent to children
// adjacency built fresh for every call. Nothing is traversed through live back
// references, so a malformed parent chain can never send a walk into a loop.
package forest

import "github.com/google/uuid"

// Index is the arena view over one record set. Positions refer to the input slice.
type Index struct {
	ids      []uuid.UUID
	pos      map[uuid.UUID]int
	parent   []int
	children [][]int
	roots    []int
	promoted []int
}

// NewIndex builds the adjacency for records. A record whose parent does not resolve
// inside the set becomes a root. Records on a parent cycle are cut at the first
// repeated position so every record is placed exactly once.
func NewIndex[R any](records []R, id func(R) uuid.UUID, parent func(R) *uuid.UUID) *Index {
	n := len(records)
	idx := &Index{
		ids:      make([]uuid.UUID, n),
		pos:      make(map[uuid.UUID]int, n),
		parent:   make([]int, n),
		children: make([][]int, n),
	}
	for i, r := range records {
		rid := id(r)
		idx.ids[i] = rid
		if _, seen := idx.pos[rid]; !seen {
			idx.pos[rid] = i
		}
	}
	for i, r := range records {
		idx.parent[i] = -1
		p := parent(r)
		if p == nil || *p == uuid.Nil {
			continue
		}
		if j, ok := idx.pos[*p]; ok {
			idx.parent[i] = j
		}
	}

	idx.breakCycles()

	for i := range records {
		if p := idx.parent[i]; p >= 0 {
			idx.children[p] = append(idx.children[p], i)
		} else {
			idx.roots = append(idx.roots, i)
		}
	}
	return idx
}

func (x *Index) breakCycles() {
	const (
		unvisited = iota
		walking
		done
	)
	state := make([]int, len(x.parent))
	var path []int
	for start := range x.parent {
		if state[start] != unvisited {
			continue
		}
		path = path[:0]
		cur := start
		for cur >= 0 && state[cur] == unvisited {
			state[cur] = walking
			path = append(path, cur)
			cur = x.parent[cur]
		}
		if cur >= 0 && state[cur] == walking {
			x.parent[cur] = -1
			x.promoted = append(x.promoted, cur)
		}
		for _, p := range path {
			state[p] = done
		}
	}
}

func (x *Index) Len() int { return len(x.ids) }

// Roots returns root positions in input order.
func (x *Index) Roots() []int { return x.roots }

// Children returns child positions of pos in input order.
func (x *Index) Children(pos int) []int { return x.children[pos] }

// Parent returns the resolved parent position, or -1 for roots.
func (x *Index) Parent(pos int) int { return x.parent[pos] }

func (x *Index) ID(pos int) uuid.UUID { return x.ids[pos] }

func (x *Index) Lookup(id uuid.UUID) (int, bool) {
	p, ok := x.pos[id]
	return p, ok
}

// Acyclic reports whether the input parent references were free of cycles.
func (x *Index) Acyclic() bool { return len(x.promoted) == 0 }

// Subtree returns id and all of its descendants in pre-order.
func (x *Index) Subtree(id uuid.UUID) []uuid.UUID {
	start, ok := x.pos[id]
	if !ok {
		return nil
	}
	var out []uuid.UUID
	stack := []int{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, x.ids[cur])
		kids := x.children[cur]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return out
}

// LeafToRoot returns the subtree of id ordered so every node comes before its parent.
func (x *Index) LeafToRoot(id uuid.UUID) []uuid.UUID {
	pre := x.Subtree(id)
	out := make([]uuid.UUID, len(pre))
	for i, v := range pre {
		out[len(pre)-1-i] = v
	}
	return out
}

// AllLeafToRoot orders every record so descendants precede their ancestors.
func (x *Index) AllLeafToRoot() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(x.ids))
	for i := len(x.roots) - 1; i >= 0; i-- {
		out = append(out, x.LeafToRoot(x.ids[x.roots[i]])...)
	}
	return out
}

// IsAncestor reports whether ancestor lies on the parent chain of node.
// A node counts as its own ancestor.
func (x *Index) IsAncestor(ancestor, node uuid.UUID) bool {
	a, ok := x.pos[ancestor]
	if !ok {
		return false
	}
	cur, ok := x.pos[node]
	if !ok {
		return false
	}
	for steps := 0; cur >= 0 && steps <= len(x.ids); steps++ {
		if cur == a {
			return true
		}
		cur = x.parent[cur]
	}
	return false
}

// WouldCycle reports whether pointing node at newParent would close a loop.
func (x *Index) WouldCycle(node uuid.UUID, newParent *uuid.UUID) bool {
	if newParent == nil || *newParent == uuid.Nil {
		return false
	}
	return x.IsAncestor(node, *newParent)
}
