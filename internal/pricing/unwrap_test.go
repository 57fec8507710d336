package pricing_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capprice/internal/jsontree"
	"capprice/internal/pricing"
)

func TestUnwrap_ParsesText(t *testing.T) {
	for _, raw := range []any{
		`{"a":[1,2]}`,
		[]byte(`{"a":[1,2]}`),
		json.RawMessage(`{"a":[1,2]}`),
	} {
		tree, ok := pricing.Unwrap(raw)
		require.True(t, ok)
		assert.Equal(t, jsontree.Object, tree.Kind(jsontree.Root))
		a, _ := tree.Get(jsontree.Root, "a")
		assert.Equal(t, 2, tree.Len(a))
	}
}

func TestUnwrap_KeepsUnparseableText(t *testing.T) {
	tree, ok := pricing.Unwrap("not json{{")
	assert.False(t, ok)
	assert.Equal(t, jsontree.String, tree.Kind(jsontree.Root))
	assert.Equal(t, "not json{{", tree.Str(jsontree.Root))
}

func TestUnwrap_ConvertsValues(t *testing.T) {
	tree, ok := pricing.Unwrap(map[string]any{"x": true})
	require.True(t, ok)
	x, _ := tree.Get(jsontree.Root, "x")
	assert.True(t, tree.Bool(x))

	tree, ok = pricing.Unwrap(nil)
	require.True(t, ok)
	assert.Equal(t, jsontree.Null, tree.Kind(jsontree.Root))
}

func TestUnwrap_Idempotent(t *testing.T) {
	first, ok := pricing.Unwrap(`[{"precoFinal":1}]`)
	require.True(t, ok)

	second, ok := pricing.Unwrap(first)
	require.True(t, ok)
	assert.Same(t, first, second)
}

func TestUnwrap_DoublyEncodedStringStopsAfterOneLevel(t *testing.T) {
	tree, ok := pricing.Unwrap(`"{\"a\":1}"`)
	require.True(t, ok)
	assert.Equal(t, jsontree.String, tree.Kind(jsontree.Root))
	assert.Equal(t, `{"a":1}`, tree.Str(jsontree.Root))
}
