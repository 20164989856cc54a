package mcpserver

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// Tool names advertised to agent hosts.
const (
	ToolSearchCorpus = "search_ndl_corpus"
	ToolCorpusSchema = "get_corpus_schema"
)

// Search tool limits.
const (
	DefaultLimit = 10
	MaxLimit     = 50
)

var searchCorpusSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "query": {
      "type": "string",
      "description": "Natural language search query (e.g., 'police use of force statistics', 'NHS waiting times data')"
    },
    "limit": {
      "type": "integer",
      "description": "Maximum number of results to return (default: 10, max: 50)",
      "default": 10
    }
  },
  "required": ["query"]
}`)

var corpusSchemaSchema = json.RawMessage(`{
  "type": "object",
  "properties": {},
  "required": []
}`)

// Tools returns the descriptors of every advertised tool.
func Tools() []mcp.Tool {
	return []mcp.Tool{
		mcp.NewToolWithRawSchema(
			ToolSearchCorpus,
			"Search the NDL Core Corpus for UK open government datasets. "+
				"Returns datasets matching the semantic search query, including "+
				"titles, descriptions, sources, licenses, and download URLs. "+
				"Use this to find official UK government data on any topic.",
			searchCorpusSchema,
		),
		mcp.NewToolWithRawSchema(
			ToolCorpusSchema,
			"Get the schema and field descriptions for the NDL Core Corpus. "+
				"Use this to understand what fields are available in search results "+
				"before or after searching.",
			corpusSchemaSchema,
		),
	}
}
