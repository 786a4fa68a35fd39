// Package query models search parameters and renders them as the canonical
// URL query string understood by the search backend.
//
// Encode is pure: the same Query always produces the same bytes, whatever the
// order in which its fields were set. Unset fields are omitted rather than sent
// empty. List fields are comma-joined with every element escaped on its own.
// Enum fields map to fixed wire tokens and their zero value is never sent.
//
//	q := query.New("phone")
//	q.HitsPerPage = query.Int(20)
//	q.Facets = []string{"brand"}
//	q.TypoTolerance = query.TypoMin
//	params := q.Encode()
//	// typoTolerance=min&hitsPerPage=20&query=phone&facets=%5B%22brand%22%5D
package query
