package facets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dmitrymomot/searchkit/pkg/query"
)

// ErrMalformedResponse is returned when the batch answer cannot be merged.
var ErrMalformedResponse = errors.New("facets: malformed multi-query response")

// MultiSearcher runs an ordered batch of queries and returns one raw result
// per query, in order.
type MultiSearcher interface {
	MultipleQueries(ctx context.Context, queries []query.IndexQuery, strategy query.Strategy) ([]json.RawMessage, error)
}

// Refinements maps a facet name to the values the user selected.
type Refinements map[string][]string

// Counts maps a facet value to its number of matching records.
type Counts map[string]int

// Result is the merged answer of a disjunctive faceting search.
type Result struct {
	Hits             []json.RawMessage `json:"hits"`
	NbHits           int               `json:"nbHits"`
	Page             int               `json:"page"`
	NbPages          int               `json:"nbPages"`
	HitsPerPage      int               `json:"hitsPerPage"`
	ProcessingTimeMS int               `json:"processingTimeMS"`
	Query            string            `json:"query"`
	Params           string            `json:"params"`

	// Facets holds the counts of the main query, restricted by every refinement.
	Facets map[string]Counts `json:"facets,omitempty"`
	// DisjunctiveFacets holds, per disjunctive facet, the counts computed
	// without that facet's own refinements.
	DisjunctiveFacets map[string]Counts `json:"disjunctiveFacets"`

	// Raw is the untouched main query answer.
	Raw json.RawMessage `json:"-"`
}

// Search runs the main query and one probe per disjunctive facet as a single
// batch against index, then merges the answers.
func Search(ctx context.Context, s MultiSearcher, index string, q query.Query, disjunctive []string, refinements Refinements) (*Result, error) {
	queries := BuildQueries(index, q, disjunctive, refinements)
	responses, err := s.MultipleQueries(ctx, queries, query.StrategyNone)
	if err != nil {
		return nil, fmt.Errorf("disjunctive faceting on %s: %w", index, err)
	}
	return Merge(responses, disjunctive, refinements)
}

// BuildQueries returns the batch for a disjunctive faceting search. Position 0
// is the main query; position i+1 is the probe for the i-th distinct
// disjunctive facet.
//
// The main query filters on every refinement: values of a conjunctive facet
// are AND-ed, values of a disjunctive facet are OR-ed inside one group. A probe
// drops its own facet's refinements, asks for no hits and no attributes,
// disables analytics and requests only its facet. FacetFilters of q is
// replaced.
func BuildQueries(index string, q query.Query, disjunctive []string, refinements Refinements) []query.IndexQuery {
	disjunctive = distinct(disjunctive)
	isDisjunctive := make(map[string]bool, len(disjunctive))
	for _, f := range disjunctive {
		isDisjunctive[f] = true
	}

	main := q.Clone()
	main.FacetFilters = facetFilters(refinements, isDisjunctive, "")

	queries := make([]query.IndexQuery, 0, len(disjunctive)+1)
	queries = append(queries, query.IndexQuery{IndexName: index, Query: main})

	for _, f := range disjunctive {
		probe := q.Clone()
		probe.HitsPerPage = query.Int(0)
		probe.Analytics = query.Bool(false)
		probe.Attributes = []string{}
		probe.AttributesToHighlight = []string{}
		probe.AttributesToSnippet = []string{}
		probe.Facets = []string{f}
		probe.FacetFilters = facetFilters(refinements, isDisjunctive, f)
		queries = append(queries, query.IndexQuery{IndexName: index, Query: probe})
	}
	return queries
}

// Merge combines the answers of a batch built by BuildQueries with the same
// disjunctive facets and refinements.
func Merge(responses []json.RawMessage, disjunctive []string, refinements Refinements) (*Result, error) {
	disjunctive = distinct(disjunctive)
	if len(responses) != len(disjunctive)+1 {
		return nil, fmt.Errorf("%w: got %d results for %d queries", ErrMalformedResponse, len(responses), len(disjunctive)+1)
	}

	var res Result
	if err := json.Unmarshal(responses[0], &res); err != nil {
		return nil, fmt.Errorf("%w: main query: %w", ErrMalformedResponse, err)
	}
	res.Raw = responses[0]
	res.DisjunctiveFacets = make(map[string]Counts, len(disjunctive))

	for i, f := range disjunctive {
		var probe struct {
			Facets map[string]Counts `json:"facets"`
		}
		if err := json.Unmarshal(responses[i+1], &probe); err != nil {
			return nil, fmt.Errorf("%w: probe %q: %w", ErrMalformedResponse, f, err)
		}

		counts := make(Counts, len(probe.Facets[f]))
		maps.Copy(counts, probe.Facets[f])
		// Selected values stay visible even when nothing matches them.
		for _, v := range refinements[f] {
			if _, ok := counts[v]; !ok {
				counts[v] = 0
			}
		}
		res.DisjunctiveFacets[f] = counts
	}

	return &res, nil
}

// facetFilters renders refinements as a facet filter expression, skipping the
// refinements of exclude. Facets are visited in name order so the output is
// stable.
func facetFilters(refinements Refinements, isDisjunctive map[string]bool, exclude string) string {
	var parts []string
	for _, facet := range slices.Sorted(maps.Keys(refinements)) {
		values := refinements[facet]
		if facet == exclude || len(values) == 0 {
			continue
		}
		if isDisjunctive[facet] {
			or := make([]string, len(values))
			for i, v := range values {
				or[i] = facet + ":" + v
			}
			parts = append(parts, "("+strings.Join(or, ",")+")")
			continue
		}
		for _, v := range values {
			parts = append(parts, facet+":"+v)
		}
	}
	return strings.Join(parts, ",")
}

func distinct(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
