package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingClaim signals a request without a claim to verify.
	ErrMissingClaim = errors.New("missing 'claim' field")
	// ErrSummarize signals a provider failure while deriving the search query.
	ErrSummarize = errors.New("summarize claim")
	// ErrSearch signals a search provider failure.
	ErrSearch = errors.New("search articles")
	// ErrVerdict signals a provider failure while requesting the verdict.
	ErrVerdict = errors.New("request verdict")
)

// SearchFailedError wraps ErrSearch with the query that was being searched,
// so the caller can see what was sent to the search provider.
type SearchFailedError struct {
	Query string
	Err   error
}

func (e *SearchFailedError) Error() string {
	return fmt.Sprintf("%s %q: %v", ErrSearch.Error(), e.Query, e.Err)
}

func (e *SearchFailedError) Unwrap() error { return ErrSearch }

// NewSearchFailed creates a search failure error carrying the query.
func NewSearchFailed(query string, err error) error {
	return &SearchFailedError{Query: query, Err: err}
}
