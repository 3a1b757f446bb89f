package form

// Node is a plain snapshot of one parent record and its children.
type Node[P, C any] struct {
	Value    P
	Children []C
}

// TreeConfig sets the cardinality rules of a two-level Tree.
type TreeConfig[P, C any] struct {
	Min        int
	Blank      func() P
	ChildMin   int
	BlankChild func() C
}

type group[P, C any] struct {
	value    P
	children *List[C]
}

// Tree is a two-level collection editor: every parent record owns its own
// List of children (modules own topics, questions own options).
// Child edits copy the owning group and replace it, so sibling groups keep
// their identity.
type Tree[P, C any] struct {
	cfg    TreeConfig[P, C]
	groups *List[group[P, C]]
}

// NewTree builds a tree from nodes. With no nodes it starts with cfg.Min
// blank parents, each holding cfg.ChildMin blank children.
func NewTree[P, C any](cfg TreeConfig[P, C], nodes ...Node[P, C]) *Tree[P, C] {
	t := &Tree[P, C]{cfg: cfg}
	groups := make([]group[P, C], len(nodes))
	for i, n := range nodes {
		groups[i] = group[P, C]{
			value:    n.Value,
			children: NewList(cfg.ChildMin, cfg.BlankChild, n.Children...),
		}
	}
	t.groups = NewList(cfg.Min, t.blankGroup, groups...)
	return t
}

func (t *Tree[P, C]) blankGroup() group[P, C] {
	return group[P, C]{
		value:    t.cfg.Blank(),
		children: NewList(t.cfg.ChildMin, t.cfg.BlankChild),
	}
}

// Len returns the number of parent records.
func (t *Tree[P, C]) Len() int { return t.groups.Len() }

// At returns the parent record at index pi.
func (t *Tree[P, C]) At(pi int) (P, bool) {
	g, ok := t.groups.At(pi)
	return g.value, ok
}

// ID returns the stable id of the parent at index pi.
func (t *Tree[P, C]) ID(pi int) (string, bool) { return t.groups.ID(pi) }

// Add appends a blank parent with its minimum children.
func (t *Tree[P, C]) Add() string { return t.groups.Add() }

// Remove deletes the parent at pi unless the tree is at its minimum.
func (t *Tree[P, C]) Remove(pi int) bool { return t.groups.Remove(pi) }

// Move swaps the parent at pi with its neighbour.
func (t *Tree[P, C]) Move(pi int, d Direction) bool { return t.groups.Move(pi, d) }

// Update replaces the parent value at pi with fn applied to it.
func (t *Tree[P, C]) Update(pi int, fn func(P) P) bool {
	return t.groups.Update(pi, func(g group[P, C]) group[P, C] {
		g.value = fn(g.value)
		return g
	})
}

// ChildLen returns the number of children of parent pi, or -1.
func (t *Tree[P, C]) ChildLen(pi int) int {
	g, ok := t.groups.At(pi)
	if !ok {
		return -1
	}
	return g.children.Len()
}

// Child returns child ci of parent pi.
func (t *Tree[P, C]) Child(pi, ci int) (C, bool) {
	g, ok := t.groups.At(pi)
	if !ok {
		var zero C
		return zero, false
	}
	return g.children.At(ci)
}

// AddChild appends a blank child to parent pi.
func (t *Tree[P, C]) AddChild(pi int) bool {
	return t.withChildren(pi, func(l *List[C]) bool {
		l.Add()
		return true
	})
}

// RemoveChild deletes child ci of parent pi unless the parent is at its
// minimum number of children.
func (t *Tree[P, C]) RemoveChild(pi, ci int) bool {
	return t.withChildren(pi, func(l *List[C]) bool {
		return l.Remove(ci)
	})
}

// SetChild replaces child ci of parent pi.
func (t *Tree[P, C]) SetChild(pi, ci int, v C) bool {
	return t.withChildren(pi, func(l *List[C]) bool {
		return l.Set(ci, v)
	})
}

func (t *Tree[P, C]) withChildren(pi int, fn func(*List[C]) bool) bool {
	g, ok := t.groups.At(pi)
	if !ok {
		return false
	}
	kids := g.children.Clone()
	if !fn(kids) {
		return false
	}
	g.children = kids
	return t.groups.Set(pi, g)
}

// Nodes returns a plain snapshot of the whole tree in order.
func (t *Tree[P, C]) Nodes() []Node[P, C] {
	groups := t.groups.Items()
	out := make([]Node[P, C], len(groups))
	for i, g := range groups {
		out[i] = Node[P, C]{Value: g.value, Children: g.children.Items()}
	}
	return out
}
