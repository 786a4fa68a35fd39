// Package browse iterates over every record of an index with the
// cursor-based browse endpoint.
//
// A Cursor fetches its first page on construction. Each call to Next returns
// one hit; when the in-memory page is consumed and the server announced a
// continuation token, the next page is fetched synchronously. The stream ends
// when a page comes back without a token.
//
//	cur, err := browse.New(ctx, dispatcher, "products", query.Query{Filters: "stock > 0"})
//	if err != nil {
//		return err
//	}
//	for hit, err := range cur.All(ctx) {
//		if err != nil {
//			return err
//		}
//		process(hit)
//	}
//
// Save Cursor() to resume later with the From option.
package browse
