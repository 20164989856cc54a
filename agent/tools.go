// Package agent exposes corpus search as a stateless function for AI agent
// tool integrations.
package agent

import (
	"context"
	"fmt"
	"net/http"

	"github.com/theodi/ndlcore"
)

// DefaultBaseURL is the production NDL Core search API.
const DefaultBaseURL = ndlcore.DefaultBaseURL

// Option configures a single SearchAgentic call.
type Option func(*options)

type options struct {
	baseURL    string
	limit      *int
	httpClient *http.Client
}

// WithBaseURL overrides the search API location.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithLimit keeps at most n records. Without it every returned record is kept.
func WithLimit(n int) Option {
	return func(o *options) { o.limit = &n }
}

// WithHTTPClient sets the HTTP client for the request.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// SearchAgentic searches the NDL Core Corpus and returns records with
// metadata describing their fields. TotalCount reflects the records
// returned after the limit, not the corpus match count.
//
// It holds no state; concurrent calls are independent round trips.
//
//	resp, err := agent.SearchAgentic(ctx, "renewable energy data", agent.WithLimit(5))
//	for _, r := range resp.Data {
//	    fmt.Println(r["title"])
//	}
func SearchAgentic(ctx context.Context, query string, opts ...Option) (*ndlcore.AgentSearchResponse, error) {
	o := options{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&o)
	}

	clientOpts := []ndlcore.Option{ndlcore.WithBaseURL(o.baseURL)}
	if o.httpClient != nil {
		clientOpts = append(clientOpts, ndlcore.WithHTTPClient(o.httpClient))
	}
	client, err := ndlcore.New(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("agent search: %w", err)
	}

	var searchOpts []ndlcore.SearchOption
	if o.limit != nil {
		searchOpts = append(searchOpts, ndlcore.WithLimit(*o.limit))
	}
	resp, err := client.SearchAgentic(ctx, query, searchOpts...)
	if err != nil {
		return nil, fmt.Errorf("agent search: %w", err)
	}
	return resp, nil
}
