// Package mcp exposes SharePoint content over the Model Context Protocol.
//
// Resources:
//   - sharepoint://sites
//   - sharepoint://libraries
//   - sharepoint://folder and sharepoint://folder/{folderId}
//   - sharepoint://document/{documentId}
//
// Tools: search-documents. Prompts: document-summary, find-relevant-documents,
// explore-folder.
//
// Resource reads that fail upstream return a protocol error. The search tool
// instead returns a result flagged isError so the client can show the message.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sharepoint-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/sharepoint-mcp/internal/logger"
)

// ServerName is the implementation name reported to clients.
const ServerName = "sharepoint-mcp"

// Server wires a DocumentSource into an MCP server.
type Server struct {
	source driven.DocumentSource
	mcp    *sdk.Server
}

// NewServer creates a server delegating to source.
func NewServer(source driven.DocumentSource, version string) *Server {
	s := &Server{
		source: source,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    ServerName,
			Version: version,
		}, nil),
	}

	s.registerResources()
	s.registerTools()
	s.registerPrompts()

	return s
}

// Run serves a single session over transport until it closes or ctx is done.
func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}

// Connect starts a session over transport without blocking.
func (s *Server) Connect(ctx context.Context, transport sdk.Transport) (*sdk.ServerSession, error) {
	return s.mcp.Connect(ctx, transport, nil)
}

// requestID returns a short id used to correlate log lines for one request.
func requestID() string {
	return uuid.NewString()[:8]
}

// prettyJSON renders v as indented JSON.
func prettyJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode response: %w", err)
	}
	return string(data), nil
}

func logFailure(id, what string, err error) {
	logger.Error("mcp[%s]: %s failed: %v", id, what, err)
}
