// Package facets implements disjunctive faceting on top of multi-query
// batches.
//
// A disjunctive facet is one whose selected values are OR-ed together (for
// example "4 stars OR 5 stars"). Its counts must ignore its own selection,
// otherwise every unselected value would drop to zero and vanish from the
// UI. Search therefore sends 1+N queries in one batch: the main query carries
// every refinement and returns the hits, and one probe per disjunctive facet
// repeats the search without that facet's refinements to obtain its full
// distribution. Refined values missing from a probe answer are reported with a
// count of zero.
//
//	res, err := facets.Search(ctx, client, "hotels", query.New("paris"),
//		[]string{"stars"},
//		facets.Refinements{"stars": {"****"}, "city": {"Paris"}},
//	)
//	// res.DisjunctiveFacets["stars"] lists every star rating.
//
// A nil Refinements is treated as empty.
package facets
