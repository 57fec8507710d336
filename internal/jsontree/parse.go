package jsontree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
)

// ErrTrailingData is returned by Parse when a complete value is followed by more input.
var ErrTrailingData = errors.New("jsontree: trailing data after top-level value")

// Parse decodes exactly one JSON value. Object members keep their source order.
func Parse(data []byte) (*Tree, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	t := &Tree{}
	var open []NodeID // containers still receiving members
	var key string
	haveKey := false

	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("jsontree: %w", err)
		}

		parent := Invalid
		if depth := len(open); depth > 0 {
			parent = open[depth-1]
			if t.nodes[parent].kind == Object && !haveKey {
				if tok == json.Delim('}') {
					open = open[:depth-1]
					if len(open) == 0 {
						break
					}
					continue
				}
				key, haveKey = tok.(string)
				continue
			}
			if tok == json.Delim(']') {
				open = open[:depth-1]
				if len(open) == 0 {
					break
				}
				continue
			}
		}

		n, container := tokenNode(tok)
		if parent != Invalid && t.nodes[parent].kind == Object {
			n.key = key
			haveKey = false
		}
		id := t.add(n, parent)
		if container {
			open = append(open, id)
			continue
		}
		if len(open) == 0 {
			break
		}
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	return t, nil
}

func tokenNode(tok json.Token) (node, bool) {
	switch v := tok.(type) {
	case json.Delim:
		if v == '[' {
			return node{kind: Array}, true
		}
		return node{kind: Object}, true
	case bool:
		return node{kind: Bool, boolean: v}, false
	case json.Number:
		// Out-of-range literals come back as ±Inf alongside ErrRange.
		f, _ := strconv.ParseFloat(v.String(), 64)
		return node{kind: Number, num: f}, false
	case string:
		return node{kind: String, str: v}, false
	default:
		return node{kind: Null}, false
	}
}

// FromValue builds a tree from a plain Go value. Strings are kept as string nodes,
// they are never parsed. Map members are ordered by key. Values of other types are
// round-tripped through encoding/json; a value that cannot be encoded becomes null.
func FromValue(v any) *Tree {
	if t, ok := v.(*Tree); ok && t != nil {
		return t
	}
	if t, ok := build(v); ok {
		return t
	}
	data, err := json.Marshal(v)
	if err == nil {
		if t, err := Parse(data); err == nil {
			return t
		}
	}
	return &Tree{nodes: []node{{kind: Null}}}
}

// build converts the types encoding/json itself decodes into. It reports false as soon
// as it meets anything else.
func build(v any) (*Tree, bool) {
	type pending struct {
		value  any
		parent NodeID
		key    string
	}

	t := &Tree{}
	stack := []pending{{value: v, parent: Invalid}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var n node
		switch x := p.value.(type) {
		case nil:
			n.kind = Null
		case bool:
			n = node{kind: Bool, boolean: x}
		case float64:
			n = node{kind: Number, num: x}
		case float32:
			n = node{kind: Number, num: float64(x)}
		case int:
			n = node{kind: Number, num: float64(x)}
		case int64:
			n = node{kind: Number, num: float64(x)}
		case int32:
			n = node{kind: Number, num: float64(x)}
		case uint:
			n = node{kind: Number, num: float64(x)}
		case uint64:
			n = node{kind: Number, num: float64(x)}
		case json.Number:
			f, err := x.Float64()
			if err != nil && !math.IsInf(f, 0) {
				return nil, false
			}
			n = node{kind: Number, num: f}
		case string:
			n = node{kind: String, str: x}
		case []any:
			n.kind = Array
		case map[string]any:
			n.kind = Object
		default:
			return nil, false
		}
		n.key = p.key
		id := t.add(n, p.parent)

		switch x := p.value.(type) {
		case []any:
			for i := len(x) - 1; i >= 0; i-- {
				stack = append(stack, pending{value: x[i], parent: id})
			}
		case map[string]any:
			keys := make([]string, 0, len(x))
			for k := range x {
				keys = append(keys, k)
			}
			sort.Sort(sort.Reverse(sort.StringSlice(keys)))
			for _, k := range keys {
				stack = append(stack, pending{value: x[k], parent: id, key: k})
			}
		}
	}
	return t, true
}
