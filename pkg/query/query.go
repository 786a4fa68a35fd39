package query

import (
	"encoding/json"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Query is a search request. Every field is optional; unset fields are not
// sent and the backend applies the index settings instead.
//
// Pointer fields are sent whenever they are non-nil, zero included. Slice
// fields are sent whenever they are non-nil, so an empty non-nil slice sends
// an empty list (for example to retrieve no attribute at all). String fields
// are sent when non-empty.
type Query struct {
	Text         string
	SimilarQuery string

	// Attributes lists the attributes to retrieve.
	Attributes                       []string
	DisableTypoToleranceOnAttributes []string
	AttributesToHighlight            []string
	AttributesToSnippet              []string

	TypoTolerance             TypoTolerance
	AllowTyposOnNumericTokens *bool
	MinWordSizeFor1Typo       *int
	MinWordSizeFor2Typos      *int
	RemoveWordsIfNoResult     RemoveWords
	QueryType                 QueryType

	GetRankingInfo             *bool
	IgnorePlural               *bool
	Analytics                  *bool
	AnalyticsTags              string
	Synonyms                   *bool
	ReplaceSynonymsInHighlight *bool
	Distinct                   *int
	RemoveStopWords            *bool
	AdvancedSyntax             *bool
	MinProximity               *int

	Page        *int
	HitsPerPage *int

	// Highlight tags are only sent when both are set.
	HighlightPreTag     string
	HighlightPostTag    string
	SnippetEllipsisText string

	TagFilters     string
	NumericFilters string
	Filters        string
	FacetFilters   string
	// Facets is sent as a JSON array.
	Facets            []string
	MaxNumberOfFacets *int
	FacetQuery        string

	// Only one geo constraint reaches the wire. Bounding boxes win over
	// AroundLatLng, which wins over InsidePolygon.
	InsideBoundingBox   []BoundingBox
	AroundLatLng        *LatLng
	InsidePolygon       []LatLng
	AroundLatLngViaIP   *bool
	AroundRadius        *Radius
	MinimumAroundRadius int
	AroundPrecision     int

	OptionalWords                string
	RestrictSearchableAttributes string
	Referers                     string
	UserToken                    string
	ValidUntil                   *int64
	RestrictSources              string
	RestrictIndices              string
	ExactOnSingleWordQuery       string
	AlternativesAsExact          string

	// Extra holds raw parameters not modeled above. They are appended last,
	// sorted by key. A key already emitted by a modeled field is skipped.
	Extra map[string]string
}

// New returns a query for text.
func New(text string) Query {
	return Query{Text: text}
}

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// AddInsideBoundingBox appends a rectangle; several boxes are OR-ed.
func (q *Query) AddInsideBoundingBox(p1, p2 LatLng) {
	q.InsideBoundingBox = append(q.InsideBoundingBox, BoundingBox{P1: p1, P2: p2})
}

// AddInsidePolygon appends a vertex to the search polygon.
func (q *Query) AddInsidePolygon(p LatLng) {
	q.InsidePolygon = append(q.InsidePolygon, p)
}

// SetFacetFilterList sets FacetFilters to the JSON array of filters.
func (q *Query) SetFacetFilterList(filters []string) {
	q.FacetFilters = jsonArray(filters)
}

// Clone returns a deep copy; mutating it never affects q.
func (q Query) Clone() Query {
	c := q
	c.Attributes = slices.Clone(q.Attributes)
	c.DisableTypoToleranceOnAttributes = slices.Clone(q.DisableTypoToleranceOnAttributes)
	c.AttributesToHighlight = slices.Clone(q.AttributesToHighlight)
	c.AttributesToSnippet = slices.Clone(q.AttributesToSnippet)
	c.Facets = slices.Clone(q.Facets)
	c.InsideBoundingBox = slices.Clone(q.InsideBoundingBox)
	c.InsidePolygon = slices.Clone(q.InsidePolygon)
	c.Extra = maps.Clone(q.Extra)

	c.AllowTyposOnNumericTokens = clonePtr(q.AllowTyposOnNumericTokens)
	c.MinWordSizeFor1Typo = clonePtr(q.MinWordSizeFor1Typo)
	c.MinWordSizeFor2Typos = clonePtr(q.MinWordSizeFor2Typos)
	c.GetRankingInfo = clonePtr(q.GetRankingInfo)
	c.IgnorePlural = clonePtr(q.IgnorePlural)
	c.Analytics = clonePtr(q.Analytics)
	c.Synonyms = clonePtr(q.Synonyms)
	c.ReplaceSynonymsInHighlight = clonePtr(q.ReplaceSynonymsInHighlight)
	c.Distinct = clonePtr(q.Distinct)
	c.RemoveStopWords = clonePtr(q.RemoveStopWords)
	c.AdvancedSyntax = clonePtr(q.AdvancedSyntax)
	c.MinProximity = clonePtr(q.MinProximity)
	c.Page = clonePtr(q.Page)
	c.HitsPerPage = clonePtr(q.HitsPerPage)
	c.MaxNumberOfFacets = clonePtr(q.MaxNumberOfFacets)
	c.AroundLatLng = clonePtr(q.AroundLatLng)
	c.AroundLatLngViaIP = clonePtr(q.AroundLatLngViaIP)
	c.AroundRadius = clonePtr(q.AroundRadius)
	c.ValidUntil = clonePtr(q.ValidUntil)
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Encode renders q as a URL query string. The key order is fixed, so equal
// queries always encode to identical strings; the output is also used as
// signing input for secured API keys.
func (q Query) Encode() string {
	var e encoder

	e.list("attributes", q.Attributes)
	e.list("disableTypoToleranceOnAttributes", q.DisableTypoToleranceOnAttributes)
	e.list("attributesToHighlight", q.AttributesToHighlight)
	e.list("attributesToSnippet", q.AttributesToSnippet)
	e.raw("typoTolerance", q.TypoTolerance.token())
	e.flag("allowTyposOnNumericTokens", q.AllowTyposOnNumericTokens)
	e.num("minWordSizefor1Typo", q.MinWordSizeFor1Typo)
	e.num("minWordSizefor2Typos", q.MinWordSizeFor2Typos)
	e.raw("removeWordsIfNoResult", q.RemoveWordsIfNoResult.token())
	e.flag("getRankingInfo", q.GetRankingInfo)
	e.flag("ignorePlural", q.IgnorePlural)
	e.flag("analytics", q.Analytics)
	e.str("analyticsTags", q.AnalyticsTags)
	e.flag("synonyms", q.Synonyms)
	e.flag("replaceSynonymsInHighlight", q.ReplaceSynonymsInHighlight)
	e.num("distinct", q.Distinct)
	if q.RemoveStopWords != nil {
		e.raw("removeStopWords", strconv.FormatBool(*q.RemoveStopWords))
	}
	e.flag("advancedSyntax", q.AdvancedSyntax)
	e.num("page", q.Page)
	e.num("minProximity", q.MinProximity)
	if q.HighlightPreTag != "" && q.HighlightPostTag != "" {
		e.str("highlightPreTag", q.HighlightPreTag)
		e.str("highlightPostTag", q.HighlightPostTag)
	}
	e.str("snippetEllipsisText", q.SnippetEllipsisText)
	e.num("hitsPerPage", q.HitsPerPage)
	e.str("tagFilters", q.TagFilters)
	e.str("numericFilters", q.NumericFilters)

	switch {
	case len(q.InsideBoundingBox) > 0:
		e.raw("insideBoundingBox", joinBoxes(q.InsideBoundingBox))
	case q.AroundLatLng != nil:
		e.raw("aroundLatLng", joinPoints(*q.AroundLatLng))
	case len(q.InsidePolygon) > 0:
		e.raw("insidePolygon", joinPoints(q.InsidePolygon...))
	}

	e.flag("aroundLatLngViaIP", q.AroundLatLngViaIP)
	if q.AroundRadius != nil {
		e.raw("aroundRadius", q.AroundRadius.String())
	}
	if q.MinimumAroundRadius > 0 {
		e.raw("minimumAroundRadius", strconv.Itoa(q.MinimumAroundRadius))
	}
	if q.AroundPrecision > 0 {
		e.raw("aroundPrecision", strconv.Itoa(q.AroundPrecision))
	}
	e.str("query", q.Text)
	e.str("similarQuery", q.SimilarQuery)
	if q.Facets != nil {
		e.str("facets", jsonArray(q.Facets))
	}
	e.str("filters", q.Filters)
	e.str("facetFilters", q.FacetFilters)
	e.num("maxNumberOfFacets", q.MaxNumberOfFacets)
	e.str("optionalWords", q.OptionalWords)
	e.str("restrictSearchableAttributes", q.RestrictSearchableAttributes)
	e.raw("queryType", q.QueryType.token())
	e.str("referer", q.Referers)
	e.str("userToken", q.UserToken)
	if q.ValidUntil != nil {
		e.raw("validUntil", strconv.FormatInt(*q.ValidUntil, 10))
	}
	e.str("restrictSources", q.RestrictSources)
	e.str("restrictIndices", q.RestrictIndices)
	e.str("exactOnSingleWordQuery", q.ExactOnSingleWordQuery)
	e.str("alternativesAsExact", q.AlternativesAsExact)
	e.str("facetQuery", q.FacetQuery)

	for _, k := range slices.Sorted(maps.Keys(q.Extra)) {
		if e.seen[k] {
			continue
		}
		e.pair(url.QueryEscape(k), url.QueryEscape(q.Extra[k]))
	}

	return e.String()
}

type encoder struct {
	b    strings.Builder
	seen map[string]bool
}

func (e *encoder) String() string { return e.b.String() }

func (e *encoder) pair(key, value string) {
	if e.b.Len() > 0 {
		e.b.WriteByte('&')
	}
	if e.seen == nil {
		e.seen = make(map[string]bool)
	}
	e.seen[key] = true
	e.b.WriteString(key)
	e.b.WriteByte('=')
	e.b.WriteString(value)
}

// raw writes an already safe value; empty values are skipped.
func (e *encoder) raw(key, value string) {
	if value != "" {
		e.pair(key, value)
	}
}

func (e *encoder) str(key, value string) {
	if value != "" {
		e.pair(key, url.QueryEscape(value))
	}
}

func (e *encoder) list(key string, values []string) {
	if values == nil {
		return
	}
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = url.QueryEscape(v)
	}
	e.pair(key, strings.Join(escaped, ","))
}

func (e *encoder) num(key string, v *int) {
	if v != nil {
		e.pair(key, strconv.Itoa(*v))
	}
}

func (e *encoder) flag(key string, v *bool) {
	if v == nil {
		return
	}
	if *v {
		e.pair(key, "1")
	} else {
		e.pair(key, "0")
	}
}

func jsonArray(values []string) string {
	if values == nil {
		values = []string{}
	}
	data, _ := json.Marshal(values)
	return string(data)
}
