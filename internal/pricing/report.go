package pricing

import (
	"encoding/json"
	"strings"

	"capprice/internal/jsontree"
)

const (
	reportKey         = "laudoHtml"
	reportBucketKey   = "htmls"
	reportSearchDepth = 15
)

// Keys probed, in order, when a report entry is an object instead of a string.
var reportBodyKeys = []string{"html", "content", "body"}

// ExtractReportHTML finds the rendered report carried by a workflow payload. A
// laudoHtml string on the first array element or on the root object wins over the
// first entry of an htmls array found anywhere below. It returns "" when there is none.
func ExtractReportHTML(raw any) string {
	t, ok := Unwrap(raw)
	if !ok {
		return ""
	}
	if html, ok := directReport(t); ok {
		return html
	}
	return searchReport(t, jsontree.Root)
}

func directReport(t *jsontree.Tree) (string, bool) {
	candidate := jsontree.Root
	switch t.Kind(jsontree.Root) {
	case jsontree.Array:
		candidate = t.Child(jsontree.Root, 0)
	case jsontree.Object:
	default:
		return "", false
	}
	if !jsontree.HasNonBlankString(reportKey)(t, candidate) {
		return "", false
	}
	v, _ := t.Get(candidate, reportKey)
	return t.Str(v), true
}

// searchReport returns the first entry of the first non-empty htmls array under from.
func searchReport(t *jsontree.Tree, from jsontree.NodeID) string {
	holder, ok := t.Find(from, jsontree.HasNonEmptyArray(reportBucketKey), reportSearchDepth)
	if !ok {
		return ""
	}
	return firstReport(t, holder)
}

// firstReport renders the first htmls entry of holder, or "" when holder has none.
func firstReport(t *jsontree.Tree, holder jsontree.NodeID) string {
	htmls, ok := t.Get(holder, reportBucketKey)
	if !ok || t.Kind(htmls) != jsontree.Array {
		return ""
	}
	return stringifyReport(t, t.Child(htmls, 0))
}

func stringifyReport(t *jsontree.Tree, id jsontree.NodeID) string {
	switch t.Kind(id) {
	case jsontree.Null:
		return ""
	case jsontree.Object:
		for _, k := range reportBodyKeys {
			if v, ok := t.Get(id, k); ok && t.Kind(v) == jsontree.String && strings.TrimSpace(t.Str(v)) != "" {
				return t.Str(v)
			}
		}
		return encodeNode(t, id)
	case jsontree.Array:
		return encodeNode(t, id)
	default:
		s, _ := t.Scalar(id)
		return s
	}
}

func encodeNode(t *jsontree.Tree, id jsontree.NodeID) string {
	data, err := json.Marshal(t.Value(id))
	if err != nil {
		return ""
	}
	return string(data)
}
