package pricing

import "capprice/internal/jsontree"

// ScenarioSignalKeys are the fields whose presence marks an object as an already
// normalized scenario. They follow the field names the pricing workflow emits; a
// rename upstream makes the heuristic stop matching rather than fail.
var ScenarioSignalKeys = []string{
	"precoFinal",
	"precoNet",
	"cmv",
	"produto",
	"destinoCidade",
	"destinoUF",
	"quantidade",
	"valorTotal",
	"distanciaKm",
}

const (
	// Objects with fewer members are treated as metadata...
	minScenarioKeys = 3
	// ...unless this many of their members are signal keys.
	minSparseSignals = 2
)

// LooksLikeScenario reports whether the node is an object shaped like a scenario
// record: at least minScenarioKeys members including one signal key, or a sparse
// object made of at least minSparseSignals signal keys.
func LooksLikeScenario(t *jsontree.Tree, id jsontree.NodeID) bool {
	if t.Kind(id) != jsontree.Object {
		return false
	}
	signals := 0
	for _, k := range ScenarioSignalKeys {
		if t.Has(id, k) {
			signals++
		}
	}
	if signals == 0 {
		return false
	}
	return t.KeyCount(id) >= minScenarioKeys || signals >= minSparseSignals
}
