// Package jsontree holds a JSON value as a flat arena of nodes addressed by index.
//
// Object members keep the order in which they appeared in the source text, so a
// depth-first walk over a decoded payload is deterministic. Values built from Go maps
// enumerate members in sorted key order, the same order encoding/json writes them in.
package jsontree

import (
	"encoding/json"
	"math"
	"strconv"
)

// Kind is the JSON type of a node.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "null"
	}
}

// NodeID indexes a node inside a Tree.
type NodeID int

const (
	// Root is the top-level value of every tree.
	Root NodeID = 0
	// Invalid never addresses a node. Accessors treat it as an absent value.
	Invalid NodeID = -1
)

type node struct {
	kind     Kind
	key      string // member name when the parent is an object
	str      string
	num      float64
	boolean  bool
	children []NodeID
}

// Tree is an immutable JSON value. All accessors tolerate out-of-range IDs.
type Tree struct {
	nodes []node
}

func (t *Tree) add(n node, parent NodeID) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	if parent != Invalid {
		t.nodes[parent].children = append(t.nodes[parent].children, id)
	}
	return id
}

func (t *Tree) at(id NodeID) *node {
	if t == nil || id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id]
}

// Size returns the number of nodes in the tree.
func (t *Tree) Size() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// Valid reports whether id addresses a node of t.
func (t *Tree) Valid(id NodeID) bool {
	return t.at(id) != nil
}

// Kind returns the JSON type of id. Invalid IDs report Null.
func (t *Tree) Kind(id NodeID) Kind {
	if n := t.at(id); n != nil {
		return n.kind
	}
	return Null
}

// Len returns the number of elements of an array or members of an object.
func (t *Tree) Len(id NodeID) int {
	if n := t.at(id); n != nil {
		return len(n.children)
	}
	return 0
}

// Child returns the i-th element or member of a container, or Invalid.
func (t *Tree) Child(id NodeID, i int) NodeID {
	n := t.at(id)
	if n == nil || i < 0 || i >= len(n.children) {
		return Invalid
	}
	return n.children[i]
}

// Children returns the elements or members of a container in source order.
// The returned slice must not be modified.
func (t *Tree) Children(id NodeID) []NodeID {
	if n := t.at(id); n != nil {
		return n.children
	}
	return nil
}

// Key returns the member name of id inside its parent object.
func (t *Tree) Key(id NodeID) string {
	if n := t.at(id); n != nil {
		return n.key
	}
	return ""
}

// Get returns the member named key of an object. When a key is repeated the last
// occurrence wins.
func (t *Tree) Get(id NodeID, key string) (NodeID, bool) {
	n := t.at(id)
	if n == nil || n.kind != Object {
		return Invalid, false
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if t.nodes[n.children[i]].key == key {
			return n.children[i], true
		}
	}
	return Invalid, false
}

// Has reports whether the object id has a member named key.
func (t *Tree) Has(id NodeID, key string) bool {
	_, ok := t.Get(id, key)
	return ok
}

// KeyCount returns the number of distinct member names of an object.
func (t *Tree) KeyCount(id NodeID) int {
	n := t.at(id)
	if n == nil || n.kind != Object {
		return 0
	}
	seen := make(map[string]struct{}, len(n.children))
	for _, c := range n.children {
		seen[t.nodes[c].key] = struct{}{}
	}
	return len(seen)
}

// Str returns the value of a string node, or "".
func (t *Tree) Str(id NodeID) string {
	if n := t.at(id); n != nil && n.kind == String {
		return n.str
	}
	return ""
}

// Float returns the value of a number node, or 0. Literals outside the float64
// range are returned as ±Inf.
func (t *Tree) Float(id NodeID) float64 {
	if n := t.at(id); n != nil && n.kind == Number {
		return n.num
	}
	return 0
}

// Bool returns the value of a bool node, or false.
func (t *Tree) Bool(id NodeID) bool {
	if n := t.at(id); n != nil && n.kind == Bool {
		return n.boolean
	}
	return false
}

// Truthy mirrors the loose truthiness the workflow payloads were written against:
// null, false, 0, NaN and "" are falsy, everything else, including empty containers,
// is truthy. Invalid IDs are falsy.
func (t *Tree) Truthy(id NodeID) bool {
	n := t.at(id)
	if n == nil {
		return false
	}
	switch n.kind {
	case Bool:
		return n.boolean
	case Number:
		return n.num != 0 && !math.IsNaN(n.num)
	case String:
		return n.str != ""
	case Array, Object:
		return true
	default:
		return false
	}
}

// Value rebuilds the plain Go value of id: nil, bool, float64, string, []any or
// map[string]any.
func (t *Tree) Value(id NodeID) any {
	n := t.at(id)
	if n == nil {
		return nil
	}
	switch n.kind {
	case Bool:
		return n.boolean
	case Number:
		return n.num
	case String:
		return n.str
	case Array:
		out := make([]any, 0, len(n.children))
		for _, c := range n.children {
			out = append(out, t.Value(c))
		}
		return out
	case Object:
		out := make(map[string]any, len(n.children))
		for _, c := range n.children {
			out[t.nodes[c].key] = t.Value(c)
		}
		return out
	default:
		return nil
	}
}

// Scalar renders a bool, number or string node as text. Containers and null
// report false.
func (t *Tree) Scalar(id NodeID) (string, bool) {
	n := t.at(id)
	if n == nil {
		return "", false
	}
	switch n.kind {
	case String:
		return n.str, true
	case Number:
		return strconv.FormatFloat(n.num, 'f', -1, 64), true
	case Bool:
		return strconv.FormatBool(n.boolean), true
	default:
		return "", false
	}
}

// MarshalJSON encodes the whole tree.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Value(Root))
}
