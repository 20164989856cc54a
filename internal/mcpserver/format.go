package mcpserver

import (
	"fmt"
	"strconv"

	"github.com/spf13/cast"

	"github.com/theodi/ndlcore"
)

// SearchOutput is the payload of search_ndl_corpus.
type SearchOutput struct {
	TotalResults    int            `json:"total_results"`
	ReturnedResults int            `json:"returned_results"`
	Results         []SearchResult `json:"results"`
}

// SearchResult is the agent-facing subset of a corpus record.
type SearchResult struct {
	Title           any     `json:"title"`
	Description     any     `json:"description"`
	Source          any     `json:"source"`
	License         any     `json:"license"`
	Format          any     `json:"format"`
	Date            any     `json:"date"`
	Tags            any     `json:"tags"`
	DownloadURLs    any     `json:"download_urls"`
	SimilarityScore float64 `json:"similarity_score"`
}

// SimilarityScore converts a cosine distance to a similarity rounded to 4
// decimal places. Rounding works on the exact binary value, so 1-0.12345
// (0.876549999...) gives 0.8765.
func SimilarityScore(distance float64) float64 {
	score, err := strconv.ParseFloat(strconv.FormatFloat(1-distance, 'f', 4, 64), 64)
	if err != nil {
		return 1 - distance
	}
	return score
}

func newSearchOutput(resp *ndlcore.AgentSearchResponse) (SearchOutput, error) {
	out := SearchOutput{
		TotalResults:    resp.Metadata.TotalCount,
		ReturnedResults: len(resp.Data),
		Results:         make([]SearchResult, 0, len(resp.Data)),
	}
	for i, r := range resp.Data {
		res, err := newSearchResult(r)
		if err != nil {
			return SearchOutput{}, fmt.Errorf("result %d: %w", i, err)
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}

func newSearchResult(r ndlcore.Record) (SearchResult, error) {
	distance, err := cast.ToFloat64E(field(r, "_distance", 0.0))
	if err != nil {
		return SearchResult{}, fmt.Errorf("_distance: %w", err)
	}
	return SearchResult{
		Title:           field(r, "title", ""),
		Description:     field(r, "description", ""),
		Source:          field(r, "source", ""),
		License:         field(r, "license", ""),
		Format:          field(r, "format", ""),
		Date:            field(r, "date", ""),
		Tags:            field(r, "tags", []any{}),
		DownloadURLs:    field(r, "download", []any{}),
		SimilarityScore: SimilarityScore(distance),
	}, nil
}

// field returns r[key], or def when the key is absent. A present null stays null.
func field(r ndlcore.Record, key string, def any) any {
	if v, ok := r[key]; ok {
		return v
	}
	return def
}
