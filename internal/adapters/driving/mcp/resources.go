package mcp

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sharepoint-mcp/internal/logger"
)

// Resource URIs.
const (
	Scheme           = "sharepoint://"
	SitesURI         = Scheme + "sites"
	LibrariesURI     = Scheme + "libraries"
	FolderRootURI    = Scheme + "folder"
	FolderTemplate   = Scheme + "folder/{folderId}"
	DocumentTemplate = Scheme + "document/{documentId}"
)

const (
	folderPrefix   = FolderRootURI + "/"
	documentPrefix = Scheme + "document/"
	mimeJSON       = "application/json"
	mimeText       = "text/plain"
)

func (s *Server) registerResources() {
	s.mcp.AddResource(&sdk.Resource{
		URI:         SitesURI,
		Name:        "sites",
		Description: "SharePoint sites visible to the application",
		MIMEType:    mimeJSON,
	}, s.readSites)

	s.mcp.AddResource(&sdk.Resource{
		URI:         LibrariesURI,
		Name:        "libraries",
		Description: "Document libraries of the configured site",
		MIMEType:    mimeJSON,
	}, s.readLibraries)

	s.mcp.AddResource(&sdk.Resource{
		URI:         FolderRootURI,
		Name:        "root-folder",
		Description: "Contents of the root folder of the configured site",
		MIMEType:    mimeJSON,
	}, s.readFolder)

	s.mcp.AddResourceTemplate(&sdk.ResourceTemplate{
		URITemplate: FolderTemplate,
		Name:        "folder",
		Description: "Contents of a folder by id",
		MIMEType:    mimeJSON,
	}, s.readFolder)

	s.mcp.AddResourceTemplate(&sdk.ResourceTemplate{
		URITemplate: DocumentTemplate,
		Name:        "document",
		Description: "Document metadata and content by id",
	}, s.readDocument)
}

func (s *Server) readSites(ctx context.Context, req *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error) {
	id := requestID()
	uri := req.Params.URI
	logger.Debug("mcp[%s]: read %s", id, uri)

	sites, err := s.source.ListSites(ctx)
	if err != nil {
		logFailure(id, "list sites", err)
		return nil, err
	}
	return jsonResource(uri, sites)
}

func (s *Server) readLibraries(ctx context.Context, req *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error) {
	id := requestID()
	uri := req.Params.URI
	logger.Debug("mcp[%s]: read %s", id, uri)

	libraries, err := s.source.ListLibraries(ctx)
	if err != nil {
		logFailure(id, "list libraries", err)
		return nil, err
	}
	return jsonResource(uri, libraries)
}

func (s *Server) readFolder(ctx context.Context, req *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error) {
	id := requestID()
	uri := req.Params.URI
	logger.Debug("mcp[%s]: read %s", id, uri)

	folderID, err := folderIDFromURI(uri)
	if err != nil {
		return nil, err
	}

	items, err := s.source.ListFolderContents(ctx, folderID)
	if err != nil {
		logFailure(id, "list folder contents", err)
		return nil, err
	}
	return jsonResource(uri, items)
}

func (s *Server) readDocument(ctx context.Context, req *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error) {
	id := requestID()
	uri := req.Params.URI
	logger.Debug("mcp[%s]: read %s", id, uri)

	documentID, err := documentIDFromURI(uri)
	if err != nil {
		return nil, err
	}

	doc, err := s.source.GetDocumentContent(ctx, documentID)
	if err != nil {
		logFailure(id, "get document content", err)
		return nil, err
	}

	if doc.Textual {
		return &sdk.ReadResourceResult{
			Contents: []*sdk.ResourceContents{{URI: uri, MIMEType: mimeText, Text: doc.Text()}},
		}, nil
	}
	return jsonResource(uri, doc)
}

func jsonResource(uri string, v any) (*sdk.ReadResourceResult, error) {
	text, err := prettyJSON(v)
	if err != nil {
		return nil, err
	}
	return &sdk.ReadResourceResult{
		Contents: []*sdk.ResourceContents{{URI: uri, MIMEType: mimeJSON, Text: text}},
	}, nil
}

// folderIDFromURI returns the folder id, or "" for the root folder.
func folderIDFromURI(uri string) (string, error) {
	if uri == FolderRootURI {
		return "", nil
	}
	if !strings.HasPrefix(uri, folderPrefix) {
		return "", sdk.ResourceNotFoundError(uri)
	}
	folderID, err := url.PathUnescape(strings.TrimPrefix(uri, folderPrefix))
	if err != nil {
		return "", fmt.Errorf("invalid folder id in %s: %w", uri, err)
	}
	return folderID, nil
}

func documentIDFromURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, documentPrefix) {
		return "", sdk.ResourceNotFoundError(uri)
	}
	documentID, err := url.PathUnescape(strings.TrimPrefix(uri, documentPrefix))
	if err != nil {
		return "", fmt.Errorf("invalid document id in %s: %w", uri, err)
	}
	if documentID == "" {
		return "", sdk.ResourceNotFoundError(uri)
	}
	return documentID, nil
}
