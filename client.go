package ndlcore

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/theodi/ndlcore/internal/version"
)

// Client searches the NDL Core Corpus API.
// It holds no mutable state and is safe for concurrent use.
type Client struct {
	baseURL    string
	searchURL  *url.URL
	httpClient *http.Client
	userAgent  string
	obs        *observer
}

// New creates a Client. No request is made until a search is issued.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{baseURL: DefaultBaseURL}
	for _, o := range opts {
		o.apply(cfg)
	}

	base := strings.TrimRight(cfg.baseURL, "/")
	u, err := url.Parse(base + "/search")
	if err != nil {
		return nil, fmt.Errorf("ndlcore: invalid base url %q: %w", cfg.baseURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("ndlcore: base url %q must be absolute", cfg.baseURL)
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = http.DefaultClient
	}
	ua := cfg.userAgent
	if ua == "" {
		ua = "ndlcore-go/" + version.Version
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL:    base,
		searchURL:  u,
		httpClient: hc,
		userAgent:  ua,
		obs:        obs,
	}, nil
}

// BaseURL returns the API base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// searchEndpoint builds {base}/search?query=<query>.
func (c *Client) searchEndpoint(query string) string {
	u := *c.searchURL
	u.RawQuery = url.Values{"query": {query}}.Encode()
	return u.String()
}
