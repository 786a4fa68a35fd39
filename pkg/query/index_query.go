package query

// IndexQuery pairs a query with the index it targets. It is the unit of a
// multi-query batch.
type IndexQuery struct {
	IndexName string
	Query     Query
}

// Request is the wire form of one multi-query entry.
type Request struct {
	IndexName string `json:"indexName"`
	Params    string `json:"params"`
}

// Request encodes iq for the multi-query endpoint.
func (iq IndexQuery) Request() Request {
	return Request{IndexName: iq.IndexName, Params: iq.Query.Encode()}
}

// Strategy controls how the backend runs a multi-query batch.
type Strategy string

const (
	// StrategyNone runs every query of the batch.
	StrategyNone Strategy = "none"
	// StrategyStopIfEnoughMatches stops once a query returns hitsPerPage hits.
	StrategyStopIfEnoughMatches Strategy = "stopIfEnoughMatches"
)
