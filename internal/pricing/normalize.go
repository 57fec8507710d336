// Package pricing recovers canonical pricing scenarios from the loosely structured
// payloads the pricing workflow answers with.
//
// Every function in this package is pure: no I/O, no shared state. Malformed input never
// produces an error, only fewer scenarios.
package pricing

import (
	"capprice/internal/domain"
	"capprice/internal/jsontree"
)

const (
	bucketKey         = "jsons"
	wrapperKey        = "json"
	bucketSearchDepth = 10
)

// Members that hold the data block in the workflow's classic answer shape, in
// priority order.
var dataBlockKeys = []string{"dados", "data", "result"}

// strategy is one tier of the cascade. run reports false when the tier recovered nothing.
type strategy struct {
	tier domain.NormalizationTier
	run  func(c *cascade) ([]domain.Scenario, string, bool)
}

// strategies run in order and the first one that recovers scenarios wins. An already
// normalized flat list outranks every bucket convention.
var strategies = []strategy{
	{tier: domain.TierFlatArray, run: (*cascade).flatArray},
	{tier: domain.TierWrappedBucket, run: (*cascade).wrappedBucket},
	{tier: domain.TierDeepBucket, run: (*cascade).deepBucket},
	{tier: domain.TierFlatObject, run: (*cascade).flatObject},
}

// Normalize extracts scenarios and the report from a workflow payload, using ctx to fill
// the fields a scenario leaves out. A payload given as text that is not JSON yields an
// empty result with TierUnparseable. Scenarios is never nil.
func Normalize(raw any, ctx domain.FormContext) domain.NormalizationResult {
	t, ok := Unwrap(raw)
	if !ok {
		return domain.NormalizationResult{Scenarios: []domain.Scenario{}, Tier: domain.TierUnparseable}
	}

	c := newCascade(t, ctx)
	for _, s := range strategies {
		if scenarios, report, ok := s.run(c); ok {
			return domain.NormalizationResult{Scenarios: scenarios, ReportHTML: report, Tier: s.tier}
		}
	}
	return domain.NormalizationResult{
		Scenarios:  []domain.Scenario{},
		ReportHTML: c.searchedReport(),
		Tier:       domain.TierNone,
	}
}

// cascade holds the state shared by the tiers of one Normalize call.
type cascade struct {
	t   *jsontree.Tree
	ctx domain.FormContext

	// root is the payload root after stepping into the first element of a root
	// array and through one json wrapper. It is Invalid for an empty root array.
	root jsontree.NodeID

	report   string
	searched bool
}

func newCascade(t *jsontree.Tree, ctx domain.FormContext) *cascade {
	root := jsontree.Root
	if t.Kind(root) == jsontree.Array {
		root = t.Child(root, 0)
	}
	return &cascade{t: t, ctx: ctx, root: unwrapJSON(t, root)}
}

func (c *cascade) flatArray() ([]domain.Scenario, string, bool) {
	t := c.t
	if t.Kind(jsontree.Root) != jsontree.Array || !LooksLikeScenario(t, t.Child(jsontree.Root, 0)) {
		return nil, "", false
	}
	items := t.Children(jsontree.Root)

	report := ""
	hasReport := jsontree.HasNonBlankString(reportKey)
	for _, id := range items {
		if hasReport(t, id) {
			v, _ := t.Get(id, reportKey)
			report = t.Str(v)
			break
		}
	}
	return mapAll(t, items, c.ctx), report, true
}

func (c *cascade) wrappedBucket() ([]domain.Scenario, string, bool) {
	bucket := dataBlock(c.t, c.root)
	if c.t.Kind(bucket) == jsontree.Array {
		bucket = dataBlock(c.t, unwrapJSON(c.t, c.t.Child(bucket, 0)))
	}
	if !isBucket(c.t, bucket) {
		var ok bool
		if bucket, ok = c.t.Find(c.root, isBucket, bucketSearchDepth); !ok {
			return nil, "", false
		}
	}
	return c.fromBucket(bucket)
}

func (c *cascade) deepBucket() ([]domain.Scenario, string, bool) {
	if c.root == jsontree.Root {
		// Already searched by wrappedBucket.
		return nil, "", false
	}
	bucket, ok := c.t.Find(jsontree.Root, isBucket, bucketSearchDepth)
	if !ok {
		return nil, "", false
	}
	return c.fromBucket(bucket)
}

func (c *cascade) flatObject() ([]domain.Scenario, string, bool) {
	if !LooksLikeScenario(c.t, c.root) {
		return nil, "", false
	}
	scenarios := []domain.Scenario{MapScenario(c.t, c.root, c.ctx, domain.ScenarioPrimary)}
	return scenarios, c.searchedReport(), true
}

// fromBucket maps every jsons entry of bucket. The report is the bucket's own first
// htmls entry, else the first one found anywhere.
func (c *cascade) fromBucket(bucket jsontree.NodeID) ([]domain.Scenario, string, bool) {
	jsons, _ := c.t.Get(bucket, bucketKey)
	scenarios := mapAll(c.t, c.t.Children(jsons), c.ctx)

	report := firstReport(c.t, bucket)
	if report == "" {
		report = c.searchedReport()
	}
	return scenarios, report, true
}

// searchedReport runs the htmls search once per call, first under the descended root,
// then over the whole payload.
func (c *cascade) searchedReport() string {
	if c.searched {
		return c.report
	}
	c.searched = true
	c.report = searchReport(c.t, c.root)
	if c.report == "" && c.root != jsontree.Root {
		c.report = searchReport(c.t, jsontree.Root)
	}
	return c.report
}

var isBucket = jsontree.HasNonEmptyArray(bucketKey)

// unwrapJSON steps into the json member of id when that member is an object.
func unwrapJSON(t *jsontree.Tree, id jsontree.NodeID) jsontree.NodeID {
	if v, ok := t.Get(id, wrapperKey); ok && t.Kind(v) == jsontree.Object {
		return v
	}
	return id
}

// dataBlock returns the first truthy dados, data or result member of id, or id itself.
func dataBlock(t *jsontree.Tree, id jsontree.NodeID) jsontree.NodeID {
	for _, k := range dataBlockKeys {
		if v, ok := t.Get(id, k); ok && t.Truthy(v) {
			return v
		}
	}
	return id
}
