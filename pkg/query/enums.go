package query

import (
	"fmt"
	"strings"
)

// TypoTolerance controls how typos are handled. The zero value is not sent.
type TypoTolerance int

const (
	TypoNotSet TypoTolerance = iota
	TypoTrue
	TypoFalse
	TypoMin
	TypoStrict
)

func (t TypoTolerance) token() string {
	switch t {
	case TypoTrue:
		return "true"
	case TypoFalse:
		return "false"
	case TypoMin:
		return "min"
	case TypoStrict:
		return "strict"
	default:
		return ""
	}
}

func (t TypoTolerance) String() string {
	if s := t.token(); s != "" {
		return s
	}
	return "notset"
}

// ParseTypoTolerance accepts the wire tokens true, false, min and strict.
func ParseTypoTolerance(s string) (TypoTolerance, error) {
	for _, t := range []TypoTolerance{TypoTrue, TypoFalse, TypoMin, TypoStrict} {
		if strings.EqualFold(s, t.token()) {
			return t, nil
		}
	}
	return TypoNotSet, fmt.Errorf("%w: typo tolerance %q", ErrUnknownValue, s)
}

// QueryType controls prefix matching. The zero value is not sent.
type QueryType int

const (
	QueryTypeNotSet QueryType = iota
	PrefixAll
	PrefixLast
	PrefixNone
)

func (t QueryType) token() string {
	switch t {
	case PrefixAll:
		return "prefixAll"
	case PrefixLast:
		return "prefixLast"
	case PrefixNone:
		return "prefixNone"
	default:
		return ""
	}
}

func (t QueryType) String() string {
	if s := t.token(); s != "" {
		return s
	}
	return "notset"
}

// ParseQueryType accepts prefixAll, prefixLast and prefixNone.
func ParseQueryType(s string) (QueryType, error) {
	for _, t := range []QueryType{PrefixAll, PrefixLast, PrefixNone} {
		if strings.EqualFold(s, t.token()) {
			return t, nil
		}
	}
	return QueryTypeNotSet, fmt.Errorf("%w: query type %q", ErrUnknownValue, s)
}

// RemoveWords selects the strategy applied when a query has no result.
// The zero value is not sent.
type RemoveWords int

const (
	RemoveWordsNotSet RemoveWords = iota
	RemoveLastWords
	RemoveFirstWords
	RemoveNone
	RemoveAllOptional
)

func (r RemoveWords) token() string {
	switch r {
	case RemoveLastWords:
		return "LastWords"
	case RemoveFirstWords:
		return "FirstWords"
	case RemoveNone:
		return "none"
	case RemoveAllOptional:
		return "allOptional"
	default:
		return ""
	}
}

func (r RemoveWords) String() string {
	if s := r.token(); s != "" {
		return s
	}
	return "notset"
}
