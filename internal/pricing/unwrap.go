package pricing

import (
	"encoding/json"

	"capprice/internal/jsontree"
)

// Unwrap turns a workflow payload into a tree. Text (string, []byte or
// json.RawMessage) is parsed as JSON; when parsing fails the text itself is kept as a
// string node and ok is false. Any other value is converted as-is, and a tree passed
// back in is returned unchanged.
func Unwrap(raw any) (tree *jsontree.Tree, ok bool) {
	switch v := raw.(type) {
	case *jsontree.Tree:
		if v != nil {
			return v, true
		}
		return jsontree.FromValue(nil), true
	case string:
		return parseText([]byte(v), v)
	case []byte:
		return parseText(v, string(v))
	case json.RawMessage:
		return parseText(v, string(v))
	default:
		return jsontree.FromValue(raw), true
	}
}

func parseText(data []byte, text string) (*jsontree.Tree, bool) {
	t, err := jsontree.Parse(data)
	if err != nil {
		return jsontree.FromValue(text), false
	}
	return t, true
}
