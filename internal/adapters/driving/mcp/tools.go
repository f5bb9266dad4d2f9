package mcp

import (
	"context"
	"strconv"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sharepoint-mcp/internal/logger"
)

// SearchToolName is the name of the search tool.
const SearchToolName = "search-documents"

// DefaultMaxResults applies when maxResults is absent or not a positive integer.
const DefaultMaxResults = 10

// SearchInput is the search-documents tool input.
type SearchInput struct {
	Query      string `json:"query" jsonschema:"search query text"`
	MaxResults string `json:"maxResults,omitempty" jsonschema:"maximum number of results, as a number string (default 10)"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        SearchToolName,
		Description: "Search for documents in SharePoint",
	}, s.searchDocuments)
}

// searchDocuments never returns a Go error for upstream failures: they are
// reported as an isError result.
func (s *Server) searchDocuments(
	ctx context.Context, _ *sdk.CallToolRequest, in SearchInput,
) (*sdk.CallToolResult, any, error) {
	id := requestID()
	maxResults := parseMaxResults(in.MaxResults)
	logger.Debug("mcp[%s]: %s query=%q max=%d", id, SearchToolName, in.Query, maxResults)

	hits, err := s.source.SearchDocuments(ctx, in.Query, maxResults)
	if err != nil {
		logFailure(id, "search documents", err)
		return errorResult("Error searching documents: " + err.Error()), nil, nil
	}

	text, err := prettyJSON(hits)
	if err != nil {
		logFailure(id, "encode search results", err)
		return errorResult("Error searching documents: " + err.Error()), nil, nil
	}

	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: text}},
	}, nil, nil
}

// parseMaxResults parses the tool's string argument.
func parseMaxResults(val string) int {
	val = strings.TrimSpace(val)
	if val == "" {
		return DefaultMaxResults
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		logger.Warn("mcp: ignoring invalid maxResults %q, using %d", val, DefaultMaxResults)
		return DefaultMaxResults
	}
	return n
}

func errorResult(msg string) *sdk.CallToolResult {
	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: msg}},
		IsError: true,
	}
}
