package pricing

import (
	"math"
	"strings"

	"github.com/spf13/cast"

	"capprice/internal/jsontree"
)

// ToNumber returns the numeric value of v when it is finite and 0 otherwise.
//
// Strings are trimmed and parsed, a blank string is 0. true is 1, false and nil are 0.
// A one-element slice coerces its element; every other slice or map is 0.
func ToNumber(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		v = s
	case []any:
		if len(x) != 1 {
			return 0
		}
		return ToNumber(x[0])
	case map[string]any:
		return 0
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// nodeNumber applies ToNumber to a tree node without rebuilding containers that
// always coerce to 0.
func nodeNumber(t *jsontree.Tree, id jsontree.NodeID) float64 {
	switch t.Kind(id) {
	case jsontree.Object:
		return 0
	case jsontree.Array:
		if t.Len(id) != 1 {
			return 0
		}
		return nodeNumber(t, t.Child(id, 0))
	default:
		return ToNumber(t.Value(id))
	}
}
