// Package driven defines the ports implemented by outbound adapters.
package driven

import (
	"context"

	"github.com/custodia-labs/sharepoint-mcp/internal/core/domain"
)

// DocumentSource reads SharePoint content for one bound site.
// All methods are read-only and independent of each other.
type DocumentSource interface {
	// SearchDocuments returns at most maxResults documents matching query.
	SearchDocuments(ctx context.Context, query string, maxResults int) ([]domain.SearchHit, error)

	// GetDocumentContent returns a document's metadata and content, resolved
	// according to its file type's ContentPolicy.
	GetDocumentContent(ctx context.Context, documentID string) (*domain.DocumentContent, error)

	// ListSites returns the sites visible to the application.
	ListSites(ctx context.Context) ([]domain.SiteSummary, error)

	// ListLibraries returns the document libraries of the bound site.
	ListLibraries(ctx context.Context) ([]domain.LibrarySummary, error)

	// ListFolderContents returns the children of folderID, or of the site's
	// root folder when folderID is empty.
	ListFolderContents(ctx context.Context, folderID string) ([]domain.ItemSummary, error)
}
