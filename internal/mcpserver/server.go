// Package mcpserver exposes corpus search to AI agents over the Model Context
// Protocol. It advertises two tools, search_ndl_corpus and get_corpus_schema,
// and answers each call with indented JSON text.
package mcpserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/theodi/ndlcore"
	"github.com/theodi/ndlcore/agent"
	"github.com/theodi/ndlcore/internal/jsoncodec"
	logpkg "github.com/theodi/ndlcore/internal/logger"
	"github.com/theodi/ndlcore/internal/metrics"
	"github.com/theodi/ndlcore/internal/version"
)

// ServerName identifies this server to agent hosts.
const ServerName = "ndl-core"

// Config holds the tool server settings.
type Config struct {
	BaseURL    string       // search API; empty means agent.DefaultBaseURL
	HTTPClient *http.Client // nil means http.DefaultClient
	Logger     *zap.Logger  // nil disables logging
}

// Server dispatches MCP tool calls to the agent search adapter.
type Server struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	mcp        *server.MCPServer
}

// New creates a Server with both tools registered.
func New(cfg Config) *Server {
	s := &Server{
		baseURL:    cfg.BaseURL,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}
	if s.baseURL == "" {
		s.baseURL = agent.DefaultBaseURL
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	s.mcp = server.NewMCPServer(ServerName, version.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	for _, tool := range Tools() {
		s.mcp.AddTool(tool, s.handle)
	}
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer { return s.mcp }

// ServeStdio runs the read-dispatch-write loop over in/out until the host
// closes the channel or ctx is canceled. One message is handled at a time.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(zap.NewStdLog(s.logger))

	s.logger.Info("MCP stdio server listening", zap.String("base_url", s.baseURL))
	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

// HTTPHandler serves the same tools over MCP streamable HTTP.
func (s *Server) HTTPHandler() http.Handler {
	return server.NewStreamableHTTPServer(s.mcp)
}

// Call runs one tool by name and returns its text payload.
func (s *Server) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	switch name {
	case ToolSearchCorpus:
		return s.searchCorpus(ctx, args)
	case ToolCorpusSchema:
		return s.corpusSchema()
	default:
		return "", &UnknownOperationError{Name: name}
	}
}

// handle adapts Call to the mcp-go handler signature, with logging and metrics.
func (s *Server) handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.Params.Name
	log := s.logger.With(zap.String("tool", name))
	start := time.Now()

	text, err := s.Call(logpkg.ContextWithLogger(ctx, log), name, req.GetArguments())

	dur := time.Since(start)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.ToolCallsTotal.WithLabelValues(name, status).Inc()
	metrics.ToolCallDuration.WithLabelValues(name).Observe(dur.Seconds())

	if err != nil {
		log.Warn("tool call failed", zap.Duration("duration", dur), zap.Error(err))
		return nil, err
	}
	log.Info("tool call completed", zap.Duration("duration", dur))
	return mcp.NewToolResultText(text), nil
}

func (s *Server) searchCorpus(ctx context.Context, args map[string]any) (string, error) {
	query, limit, err := searchArgs(args)
	if err != nil {
		return "", err
	}

	opts := []agent.Option{agent.WithBaseURL(s.baseURL), agent.WithLimit(limit)}
	if s.httpClient != nil {
		opts = append(opts, agent.WithHTTPClient(s.httpClient))
	}
	resp, err := agent.SearchAgentic(ctx, query, opts...)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ToolSearchCorpus, err)
	}

	out, err := newSearchOutput(resp)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ToolSearchCorpus, err)
	}
	metrics.ToolResultsReturned.WithLabelValues(ToolSearchCorpus).Observe(float64(out.ReturnedResults))
	logpkg.FromContext(ctx).Debug("corpus searched",
		zap.String("query", query),
		zap.Int("limit", limit),
		zap.Int("returned", out.ReturnedResults),
	)
	return encode(out)
}

// searchArgs extracts query and the capped limit from tool arguments.
func searchArgs(args map[string]any) (string, int, error) {
	raw, ok := args["query"]
	if !ok || raw == nil {
		return "", 0, fmt.Errorf("%w: query is required", ErrInvalidArguments)
	}
	query, err := cast.ToStringE(raw)
	if err != nil {
		return "", 0, fmt.Errorf("%w: query: %w", ErrInvalidArguments, err)
	}

	limit := DefaultLimit
	if v, ok := args["limit"]; ok && v != nil {
		limit, err = cast.ToIntE(v)
		if err != nil {
			return "", 0, fmt.Errorf("%w: limit: %w", ErrInvalidArguments, err)
		}
	}
	return query, min(limit, MaxLimit), nil
}

func (s *Server) corpusSchema() (string, error) {
	return encode(ndlcore.CorpusSchema())
}

func encode(v any) (string, error) {
	b, err := jsoncodec.MarshalIndent(v)
	if err != nil {
		return "", fmt.Errorf("encode tool result: %w", err)
	}
	return string(b), nil
}
