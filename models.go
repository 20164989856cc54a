package ndlcore

import "fmt"

// Record is one corpus entry as returned by the search API.
// Keys follow CorpusSchema; values are not validated.
type Record map[string]any

// SearchResultMetadata describes a single search result set.
type SearchResultMetadata struct {
	// TotalCount is the number of records returned to the caller,
	// not the number of matches in the corpus.
	TotalCount int `json:"total_count"`
	// ColumnDescriptions documents the record fields.
	ColumnDescriptions Schema `json:"column_descriptions"`
}

// NewSearchResultMetadata returns metadata carrying the corpus schema.
func NewSearchResultMetadata(totalCount int) SearchResultMetadata {
	return SearchResultMetadata{
		TotalCount:         totalCount,
		ColumnDescriptions: CorpusSchema(),
	}
}

// AgentSearchResponse pairs result metadata with the records themselves.
type AgentSearchResponse struct {
	Metadata SearchResultMetadata `json:"metadata"`
	Data     []Record             `json:"data"`
}

// NewAgentSearchResponse validates that metadata.TotalCount matches len(data).
func NewAgentSearchResponse(metadata SearchResultMetadata, data []Record) (*AgentSearchResponse, error) {
	if metadata.TotalCount != len(data) {
		return nil, fmt.Errorf("%w: total_count=%d, records=%d",
			ErrCountMismatch, metadata.TotalCount, len(data))
	}
	if data == nil {
		data = []Record{}
	}
	return &AgentSearchResponse{Metadata: metadata, Data: data}, nil
}
