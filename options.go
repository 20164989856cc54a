package ndlcore

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// DefaultBaseURL is the production NDL Core search API.
const DefaultBaseURL = "https://theodi-ndl-core-data-api.hf.space"

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithBaseURL overrides the search API location. A trailing slash is ignored.
func WithBaseURL(u string) Option {
	return optionFunc(func(c *clientConfig) {
		c.baseURL = u
	})
}

// WithHTTPClient sets the HTTP client used for requests.
// The library configures no timeout of its own; set one here or on the context.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return optionFunc(func(c *clientConfig) {
		c.userAgent = ua
	})
}

// WithLogger enables debug logging of completed and failed searches.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

// SearchOption configures a single SearchAgentic call.
type SearchOption func(*searchConfig)

type searchConfig struct {
	limit      int
	hasLimit   bool
	columns    Schema
	hasColumns bool
}

// WithLimit keeps only the first n records. Records arrive ranked by
// relevance, so this is a prefix take, not a re-sort.
func WithLimit(n int) SearchOption {
	return func(c *searchConfig) {
		c.limit = n
		c.hasLimit = true
	}
}

// WithColumnDescriptions replaces the corpus schema in the response metadata.
func WithColumnDescriptions(s Schema) SearchOption {
	return func(c *searchConfig) {
		c.columns = s
		c.hasColumns = true
	}
}
