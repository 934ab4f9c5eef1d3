package usecase

import (
	"testing"

	"github.com/mkuznetsov/finsight/internal/core/domain"
)

func TestSearchControllerRejectsBlankQuery(t *testing.T) {
	c := NewSearchController()

	for _, query := range []string{"", "   ", "\t\n"} {
		_, _, err := c.Submit(query, 5)
		if err == nil {
			t.Fatalf("Submit(%q) should be rejected client-side", query)
		}
		if !domain.IsKind(err, domain.ErrValidation) {
			t.Fatalf("Submit(%q) error kind = %v, want ErrValidation", query, err)
		}
	}
}

func TestSearchControllerClampsTopK(t *testing.T) {
	c := NewSearchController()

	_, q, err := c.Submit("total net income Q3", 0)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if q.TopK != 5 {
		t.Fatalf("default top_k = %d, want 5", q.TopK)
	}

	_, q, _ = c.Submit("total net income Q3", 500)
	if q.TopK != 50 {
		t.Fatalf("top_k should clamp to 50, got %d", q.TopK)
	}
}

func TestSearchControllerSupersedesPreviousSubmission(t *testing.T) {
	c := NewSearchController()

	first, _, _ := c.Submit("vendors", 5)
	second, _, _ := c.Submit("total net income Q3", 5)

	if !c.Apply(second, &domain.SearchResultSet{
		Results: []domain.SearchResult{
			{DocumentID: "d-1", SimilarityScore: 0.93},
			{DocumentID: "d-2", SimilarityScore: 0.71},
		},
	}, nil) {
		t.Fatalf("newest submission should apply")
	}
	if c.Apply(first, &domain.SearchResultSet{
		Results: []domain.SearchResult{{DocumentID: "stale", SimilarityScore: 0.99}},
	}, nil) {
		t.Fatalf("superseded submission must be discarded")
	}

	if len(c.Results) != 2 || c.Results[0].DocumentID != "d-1" {
		t.Fatalf("results should come from the newest submission, got %+v", c.Results)
	}
	// Backend order is preserved as-is, never re-sorted.
	if c.Results[0].SimilarityScore < c.Results[1].SimilarityScore {
		t.Fatalf("backend descending order should be kept")
	}
}
