package usecase

import (
	"errors"
	"strings"

	"github.com/mkuznetsov/finsight/internal/core/domain"
)

const (
	defaultSearchTopK = 5
	maxSearchTopK     = 50
)

// SearchTicket tags one submitted search.
type SearchTicket struct {
	Seq uint64
}

// SearchController is stateless request/response: each submission
// supersedes the previous one, nothing is cached and nothing polls.
// Results keep the backend's descending-similarity order.
type SearchController struct {
	fence fence

	Query   string
	Results []domain.SearchResult
	Err     error
}

func NewSearchController() *SearchController {
	return &SearchController{}
}

// Submit validates and issues a search. An empty or whitespace-only
// query is rejected here, without a network call.
func (c *SearchController) Submit(query string, topK int) (SearchTicket, domain.SearchQuery, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return SearchTicket{}, domain.SearchQuery{}, domain.WrapError(domain.ErrValidation, "search", errors.New("query is empty"))
	}
	if topK <= 0 {
		topK = defaultSearchTopK
	}
	if topK > maxSearchTopK {
		topK = maxSearchTopK
	}
	c.Query = trimmed
	c.fence.invalidate()
	return SearchTicket{Seq: c.fence.issue()}, domain.SearchQuery{Query: trimmed, TopK: topK}, nil
}

// Apply reconciles one arrived result set; superseded submissions are
// discarded.
func (c *SearchController) Apply(t SearchTicket, set *domain.SearchResultSet, err error) bool {
	if !c.fence.admit(t.Seq) {
		return false
	}
	if err != nil {
		c.Err = err
		return true
	}
	c.Err = nil
	c.Results = set.Results
	return true
}
