package jsontree

import "strings"

// Predicate reports whether a node is the one a search is looking for.
type Predicate func(t *Tree, id NodeID) bool

type frame struct {
	id    NodeID
	depth int
}

// Find walks the subtree under from depth-first and returns the first node matching
// pred. A node is checked before its children and children are visited in source
// order. from sits at depth 0; nodes deeper than maxDepth are never inspected, so the
// walk terminates on any finite tree regardless of its shape.
func (t *Tree) Find(from NodeID, pred Predicate, maxDepth int) (NodeID, bool) {
	if !t.Valid(from) || maxDepth < 0 {
		return Invalid, false
	}

	stack := []frame{{id: from}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if pred(t, f.id) {
			return f.id, true
		}
		if f.depth == maxDepth {
			continue
		}
		kids := t.nodes[f.id].children
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{id: kids[i], depth: f.depth + 1})
		}
	}
	return Invalid, false
}

// HasNonEmptyArray matches objects whose member key is an array with at least one element.
func HasNonEmptyArray(key string) Predicate {
	return func(t *Tree, id NodeID) bool {
		v, ok := t.Get(id, key)
		return ok && t.Kind(v) == Array && t.Len(v) > 0
	}
}

// HasNonBlankString matches objects whose member key is a string with visible content.
func HasNonBlankString(key string) Predicate {
	return func(t *Tree, id NodeID) bool {
		v, ok := t.Get(id, key)
		return ok && t.Kind(v) == String && strings.TrimSpace(t.Str(v)) != ""
	}
}
