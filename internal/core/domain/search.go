package domain

// SearchResult is an ephemeral ranked hit; the client never persists
// it and never re-sorts (backend order by descending similarity).
type SearchResult struct {
	DocumentID       string         `json:"document_id"`
	ChunkText        string         `json:"chunk_text"`
	SimilarityScore  float64        `json:"similarity_score"`
	DocumentFilename string         `json:"document_filename"`
	DocumentType     DocumentType   `json:"document_type"`
	PageNumber       int            `json:"page_number,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}

type SearchResultSet struct {
	Results      []SearchResult `json:"results"`
	Query        string         `json:"query"`
	TotalResults int            `json:"total_results"`
}

type SearchQuery struct {
	Query string
	TopK  int
}
