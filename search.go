package ndlcore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/theodi/ndlcore/internal/jsoncodec"
)

const (
	opSearch        = "search"
	opSearchAgentic = "search_agentic"
)

// Search queries the corpus and returns the results as a table.
func (c *Client) Search(ctx context.Context, query string) (_ *Table, err error) {
	start := time.Now()
	var rows int
	defer func() { c.obs.observe(opSearch, query, start, rows, err) }()

	records, columns, err := c.fetch(ctx, query)
	if err != nil {
		return nil, err
	}
	t := NewTable(records, columns...)
	rows = t.Len()
	return t, nil
}

// SearchAgentic queries the corpus and returns records together with
// metadata describing them. TotalCount is the number of records returned,
// after any limit is applied.
func (c *Client) SearchAgentic(
	ctx context.Context, query string, opts ...SearchOption,
) (_ *AgentSearchResponse, err error) {
	start := time.Now()
	var rows int
	defer func() { c.obs.observe(opSearchAgentic, query, start, rows, err) }()

	var sc searchConfig
	for _, o := range opts {
		o(&sc)
	}
	if sc.hasLimit && sc.limit < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, sc.limit)
	}

	records, _, err := c.fetch(ctx, query)
	if err != nil {
		return nil, err
	}
	if sc.hasLimit && sc.limit < len(records) {
		records = records[:sc.limit]
	}

	meta := NewSearchResultMetadata(len(records))
	if sc.hasColumns {
		meta.ColumnDescriptions = sc.columns
	}
	resp, err := NewAgentSearchResponse(meta, records)
	if err != nil {
		return nil, err
	}
	rows = len(resp.Data)
	return resp, nil
}

// fetch issues the search request and returns the decoded records plus
// the record keys in the order they first appear in the body.
func (c *Client) fetch(ctx context.Context, query string) ([]Record, []string, error) {
	if query == "" {
		return nil, nil, ErrEmptyQuery
	}

	endpoint := c.searchEndpoint(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, &TransportError{URL: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Body is diagnostic only; a partial read still goes into the error.
		body, _ := io.ReadAll(resp.Body)
		return nil, nil, &HTTPStatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       body,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &TransportError{URL: endpoint, Err: fmt.Errorf("read body: %w", err)}
	}

	return decodeRecords(body)
}

// decodeRecords checks that body is a JSON array of objects, then walks it
// once more with an iterator to keep record keys in document order.
func decodeRecords(body []byte) ([]Record, []string, error) {
	var top any
	if err := jsoncodec.Unmarshal(body, &top); err != nil {
		return nil, nil, &ShapeMismatchError{Type: "invalid JSON", Body: string(body)}
	}
	items, ok := top.([]any)
	if !ok {
		return nil, nil, &ShapeMismatchError{Type: jsoncodec.TypeName(top), Body: string(body)}
	}
	for _, item := range items {
		if _, ok := item.(map[string]any); !ok {
			return nil, nil, &ShapeMismatchError{
				Type: "array of " + jsoncodec.TypeName(item),
				Body: string(body),
			}
		}
	}

	iter := jsoncodec.API.BorrowIterator(body)
	defer jsoncodec.API.ReturnIterator(iter)

	records := make([]Record, 0, len(items))
	var columns []string
	seen := make(map[string]struct{})

	iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
		rec := Record{}
		it.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
			rec[key] = it.Read()
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				columns = append(columns, key)
			}
			return true
		})
		records = append(records, rec)
		return it.Error == nil
	})

	if iter.Error != nil && iter.Error != io.EOF {
		return nil, nil, fmt.Errorf("decode search response: %w", iter.Error)
	}
	return records, columns, nil
}
