package domain

// ScenarioKind tags a scenario as the best option or one of the alternatives.
type ScenarioKind string

const (
	ScenarioPrimary     ScenarioKind = "primary"
	ScenarioAlternative ScenarioKind = "alternative"
)

// KindForIndex returns the kind of the scenario at position i of an ordered list.
func KindForIndex(i int) ScenarioKind {
	if i == 0 {
		return ScenarioPrimary
	}
	return ScenarioAlternative
}

// NormalizationTier names the strategy of the normalization cascade that produced a result.
type NormalizationTier string

const (
	TierUnparseable   NormalizationTier = "unparseable"
	TierFlatArray     NormalizationTier = "flat_array"
	TierWrappedBucket NormalizationTier = "wrapped_bucket"
	TierDeepBucket    NormalizationTier = "deep_bucket"
	TierFlatObject    NormalizationTier = "flat_object"
	TierNone          NormalizationTier = "none"
)

// NotInformed is the label used when a scenario carries no origin refinery.
const NotInformed = "Não informada"
