// Package suggestion turns failing compatibility checks into replacement requirements and looks up
// candidates for them, relaxing the search until the catalog returns something.
package suggestion

import (
	"context"
	"sort"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/compatibility"
)

// Catalog is the catalog and recommendation collaborator.
type Catalog interface {
	// Components lists every component in a category.
	Components(ctx context.Context, category models.Category) ([]models.Component, error)
	// Recommendations returns components matching req, best first (price ascending by default).
	// Zero-valued constraints are ignored.
	Recommendations(ctx context.Context, category models.Category, req models.Requirements) ([]models.Component, error)
}

// Stage records which relaxation step produced a candidate list.
type Stage int

const (
	StageNone Stage = iota
	StageExact
	StagePriceBand
	StageCheapest
)

func (s Stage) String() string {
	switch s {
	case StageExact:
		return "exact"
	case StagePriceBand:
		return "price_band"
	case StageCheapest:
		return "cheapest"
	}
	return "none"
}

// CandidateResult is the outcome of a candidate lookup. Fetch failures leave Candidates empty and set Err and
// Retryable.
type CandidateResult struct {
	Category   models.Category    `json:"category"`
	Candidates []models.Component `json:"candidates"`
	Stage      Stage              `json:"-"`
	StageName  string             `json:"stage"`
	Err        error              `json:"-"`
	Error      string             `json:"error,omitempty"`
	Retryable  bool               `json:"retryable"`
}

// Observer is notified when a candidate lookup finishes.
type Observer interface {
	FetchCompleted(category models.Category, stage Stage, err error)
}

// Options tune candidate lookups.
type Options struct {
	// Limit caps the number of candidates returned.
	Limit int
	// BroadMinPrice and BroadMaxPrice bound the second relaxation stage.
	BroadMinPrice float64
	BroadMaxPrice float64
}

// DefaultOptions are used for zero-valued fields.
var DefaultOptions = Options{Limit: 5, BroadMinPrice: 0, BroadMaxPrice: 1000000}

// Generator produces suggestions and fetches their candidates.
type Generator struct {
	catalog  Catalog
	opts     Options
	observer Observer
}

// NewGenerator creates a Generator over catalog.
func NewGenerator(catalog Catalog, opts Options, observer Observer) *Generator {
	if opts.Limit <= 0 {
		opts.Limit = DefaultOptions.Limit
	}
	if opts.BroadMaxPrice <= 0 {
		opts.BroadMaxPrice = DefaultOptions.BroadMaxPrice
	}
	return &Generator{catalog: catalog, opts: opts, observer: observer}
}

// Suggest returns one suggestion per failing check that involves category, each carrying the constraint a
// replacement must meet. It returns nothing when the category is empty or all of its checks pass.
func Suggest(category models.Category, sel models.BuildSelection) []models.Suggestion {
	if !sel.Has(category) {
		return nil
	}
	var out []models.Suggestion
	for _, check := range compatibility.Evaluate(sel) {
		if !check.Incompatible() || !check.Involves(category) {
			continue
		}
		derive, ok := fixes[check.ID][category]
		if !ok {
			continue
		}
		req, message, ok := derive(sel)
		if !ok {
			continue
		}
		out = append(out, models.Suggestion{
			TargetCategory: category,
			CheckID:        check.ID,
			Message:        message,
			Requirements:   req,
		})
	}
	return out
}

// FailingCategories lists, in wizard order, every category Suggest would return something for.
func FailingCategories(sel models.BuildSelection) []models.Category {
	var out []models.Category
	for _, c := range models.Categories {
		if len(Suggest(c, sel)) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// Combine merges the requirements of several suggestions for the same category.
func Combine(suggestions []models.Suggestion) models.Requirements {
	var req models.Requirements
	for _, s := range suggestions {
		req = req.Merge(s.Requirements)
	}
	return req
}

// FetchCandidates looks up replacements for category in three stages, stopping at the first that returns
// anything: all constraints; a broad price band without spec constraints; the cheapest items in the
// category. Components whose id is in exclude are skipped.
func (g *Generator) FetchCandidates(ctx context.Context, category models.Category, req models.Requirements, exclude ...string) CandidateResult {
	res := g.fetch(ctx, category, req, exclude)
	res.StageName = res.Stage.String()
	if res.Err != nil {
		res.Error = res.Err.Error()
	}
	if res.Candidates == nil {
		res.Candidates = []models.Component{}
	}
	if g.observer != nil {
		g.observer.FetchCompleted(category, res.Stage, res.Err)
	}
	return res
}

func (g *Generator) fetch(ctx context.Context, category models.Category, req models.Requirements, exclude []string) CandidateResult {
	res := CandidateResult{Category: category}
	skip := map[string]bool{}
	for _, id := range exclude {
		skip[id] = true
	}
	keep := func(items []models.Component) []models.Component {
		var out []models.Component
		for _, c := range items {
			if !skip[c.ID] {
				out = append(out, c)
			}
			if len(out) == g.opts.Limit {
				break
			}
		}
		return out
	}

	exact := req
	exact.Limit = 0
	broad := models.Requirements{MinPrice: g.opts.BroadMinPrice, MaxPrice: g.opts.BroadMaxPrice}
	for _, stage := range []struct {
		stage Stage
		req   models.Requirements
	}{
		{StageExact, exact},
		{StagePriceBand, broad},
	} {
		items, err := g.catalog.Recommendations(ctx, category, stage.req)
		if err != nil {
			res.Err, res.Retryable = err, true
			return res
		}
		if found := keep(items); len(found) > 0 {
			res.Candidates, res.Stage = found, stage.stage
			return res
		}
	}

	items, err := g.catalog.Components(ctx, category)
	if err != nil {
		res.Err, res.Retryable = err, true
		return res
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Price < items[j].Price })
	if found := keep(items); len(found) > 0 {
		res.Candidates, res.Stage = found, StageCheapest
	}
	return res
}

// Generation is the suggestion state for one category at one point in time.
type Generation struct {
	Category     models.Category     `json:"category"`
	Suggestions  []models.Suggestion `json:"suggestions"`
	Requirements models.Requirements `json:"requirements"`
	Result       CandidateResult     `json:"result"`
}

// Generate derives suggestions for category and fetches candidates for their combined requirements,
// excluding the component currently selected. It fetches nothing when there is nothing to fix.
func (g *Generator) Generate(ctx context.Context, category models.Category, sel models.BuildSelection) Generation {
	suggestions := Suggest(category, sel)
	gen := Generation{Category: category, Suggestions: suggestions, Result: CandidateResult{Category: category, Candidates: []models.Component{}, StageName: StageNone.String()}}
	if len(suggestions) == 0 {
		gen.Suggestions = []models.Suggestion{}
		return gen
	}
	gen.Requirements = Combine(suggestions)
	var exclude []string
	if current := sel.Get(category); current != nil {
		exclude = append(exclude, current.ID)
	}
	gen.Result = g.FetchCandidates(ctx, category, gen.Requirements, exclude...)
	return gen
}
