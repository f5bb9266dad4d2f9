package sharepoint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/custodia-labs/sharepoint-mcp/internal/config"
	"github.com/custodia-labs/sharepoint-mcp/internal/connectors/microsoft"
	"github.com/custodia-labs/sharepoint-mcp/internal/core/domain"
	"github.com/custodia-labs/sharepoint-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/sharepoint-mcp/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.DocumentSource = (*Connector)(nil)

// DefaultMaxResults is used when a search asks for a non-positive number of hits.
const DefaultMaxResults = 10

// Operation names used in errors and logs.
const (
	opSearch       = "search documents"
	opGetMetadata  = "get document metadata"
	opGetContent   = "get document content"
	opListSites    = "list sites"
	opListDrives   = "list libraries"
	opListChildren = "list folder contents"
)

// Connector reads SharePoint content for one site via Microsoft Graph.
// It holds no per-request state and is safe for concurrent use.
type Connector struct {
	config      *config.Config
	client      *http.Client
	rateLimiter *microsoft.RateLimiter
}

// New creates a connector bound to cfg.SiteID. client must attach
// authentication; see microsoft.NewClient.
func New(cfg *config.Config, client *http.Client) *Connector {
	return &Connector{
		config:      cfg,
		client:      client,
		rateLimiter: microsoft.NewRateLimiter(microsoft.ServiceSharePoint),
	}
}

// SearchDocuments runs a driveItem search and returns at most maxResults hits.
func (c *Connector) SearchDocuments(
	ctx context.Context, query string, maxResults int,
) ([]domain.SearchHit, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	logger.Debug("sharepoint: searching for %q (max %d)", query, maxResults)

	reqBody := searchRequest{
		Requests: []searchRequestItem{{
			EntityTypes: []string{"driveItem"},
			Query:       searchQuery{QueryString: query},
			From:        0,
			Size:        maxResults,
			Region:      c.config.Region,
		}},
	}

	var resp searchResponse
	if err := c.postJSON(ctx, opSearch, "/search/query", reqBody, schemas.searchResponse, &resp); err != nil {
		return nil, err
	}

	hits := resp.Value[0].HitsContainers[0].Hits
	if len(hits) > maxResults {
		hits = hits[:maxResults]
	}

	results := make([]domain.SearchHit, 0, len(hits))
	for i := range hits {
		results = append(results, domain.SearchHit{
			DocumentMetadata: hits[i].Resource.ToMetadata(),
			Query:            query,
		})
	}

	logger.Debug("sharepoint: search for %q returned %d hits", query, len(results))
	return results, nil
}

// GetDocumentContent fetches a document's metadata and resolves its content
// according to the ContentPolicy of its file type.
func (c *Connector) GetDocumentContent(
	ctx context.Context, documentID string,
) (*domain.DocumentContent, error) {
	itemPath := c.itemPath(documentID)

	var item DriveItem
	if err := c.getJSON(ctx, opGetMetadata, itemPath, schemas.driveItem, &item); err != nil {
		return nil, err
	}

	metadata := item.ToMetadata()
	policy := domain.PolicyFor(metadata.Type)
	logger.Debug("sharepoint: document %s (%s) uses %s policy", documentID, metadata.Type, policy)

	doc := &domain.DocumentContent{
		Metadata: metadata,
		Policy:   policy,
	}

	var payload []byte
	if policy.FetchesContent() {
		var err error
		payload, err = c.getContent(ctx, opGetContent, itemPath+"/content")
		if err != nil {
			return nil, err
		}
	}

	switch policy {
	case domain.PolicyPassthrough:
		doc.Content = payload
		doc.Textual = true
	case domain.PolicyOfficePayload:
		doc.Content = payload
	case domain.PolicyPDFPlaceholder:
		doc.Content = []byte(domain.PDFPlaceholder)
		doc.Textual = true
	case domain.PolicyUnsupported:
		doc.Content = []byte(domain.UnsupportedMessage(metadata.Type))
		doc.Textual = true
	}

	return doc, nil
}

// ListSites returns the sites visible to the application.
func (c *Connector) ListSites(ctx context.Context) ([]domain.SiteSummary, error) {
	var resp collection[Site]
	if err := c.getJSON(ctx, opListSites, "/sites", schemas.siteCollection, &resp); err != nil {
		return nil, err
	}

	sites := make([]domain.SiteSummary, 0, len(resp.Value))
	for i := range resp.Value {
		sites = append(sites, resp.Value[i].ToSummary())
	}
	return sites, nil
}

// ListLibraries returns the document libraries of the bound site.
func (c *Connector) ListLibraries(ctx context.Context) ([]domain.LibrarySummary, error) {
	var resp collection[Drive]
	if err := c.getJSON(ctx, opListDrives, c.sitePath()+"/drives", schemas.driveCollection, &resp); err != nil {
		return nil, err
	}

	libraries := make([]domain.LibrarySummary, 0, len(resp.Value))
	for i := range resp.Value {
		libraries = append(libraries, resp.Value[i].ToSummary())
	}
	return libraries, nil
}

// ListFolderContents lists the children of folderID, or of the root folder
// of the site's default library when folderID is empty.
func (c *Connector) ListFolderContents(ctx context.Context, folderID string) ([]domain.ItemSummary, error) {
	var resp collection[DriveItem]
	path := c.folderChildrenPath(folderID)
	if err := c.getJSON(ctx, opListChildren, path, schemas.driveItemCollection, &resp); err != nil {
		return nil, err
	}

	items := make([]domain.ItemSummary, 0, len(resp.Value))
	for i := range resp.Value {
		items = append(items, resp.Value[i].ToItemSummary())
	}
	return items, nil
}

func (c *Connector) sitePath() string {
	return "/sites/" + c.config.SiteID
}

func (c *Connector) itemPath(itemID string) string {
	return c.sitePath() + "/drive/items/" + url.PathEscape(itemID)
}

// folderChildrenPath returns the children path for a folder or the root.
func (c *Connector) folderChildrenPath(folderID string) string {
	if folderID == "" {
		return c.sitePath() + "/drive/root/children"
	}
	return c.itemPath(folderID) + "/children"
}

// getJSON performs a GET and decodes a schema-validated JSON response.
func (c *Connector) getJSON(
	ctx context.Context, op, path string, schema *jsonschema.Schema, out any,
) error {
	body, status, err := c.doRequest(ctx, op, http.MethodGet, path, nil, "application/json")
	if err != nil {
		return err
	}
	return c.decode(op, status, body, schema, out)
}

// postJSON performs a JSON POST and decodes a schema-validated JSON response.
func (c *Connector) postJSON(
	ctx context.Context, op, path string, in any, schema *jsonschema.Schema, out any,
) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return microsoft.NewUpstreamError(op, 0, fmt.Errorf("encode request: %w", err))
	}

	body, status, err := c.doRequest(ctx, op, http.MethodPost, path, payload, "application/json")
	if err != nil {
		return err
	}
	return c.decode(op, status, body, schema, out)
}

// getContent downloads raw item content.
func (c *Connector) getContent(ctx context.Context, op, path string) ([]byte, error) {
	body, _, err := c.doRequest(ctx, op, http.MethodGet, path, nil, "*/*")
	return body, err
}

func (c *Connector) decode(op string, status int, body []byte, schema *jsonschema.Schema, out any) error {
	if err := decodeValidated(body, schema, out); err != nil {
		logger.Error("sharepoint: %s: %v", op, err)
		return microsoft.NewUpstreamError(op, status, err)
	}
	return nil
}

// doRequest performs one authenticated Graph request and returns the body of
// a 2xx response. Every failure is returned as an *microsoft.UpstreamError.
func (c *Connector) doRequest(
	ctx context.Context, op, method, path string, payload []byte, accept string,
) ([]byte, int, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		logger.Error("sharepoint: %s: rate limiter: %v", op, err)
		return nil, 0, microsoft.NewUpstreamError(op, 0, err)
	}

	var body io.Reader = http.NoBody
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	endpoint := strings.TrimRight(c.config.GraphBaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, 0, microsoft.NewUpstreamError(op, 0, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", accept)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug("sharepoint: %s %s", method, endpoint)
	resp, err := c.client.Do(req)
	if err != nil {
		upstream := microsoft.ClassifyRequestError(op, err)
		logger.Error("sharepoint: %v", upstream)
		return nil, 0, upstream
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		upstream := microsoft.NewUpstreamError(op, resp.StatusCode, fmt.Errorf("read response: %w", err))
		logger.Error("sharepoint: %v", upstream)
		return nil, resp.StatusCode, upstream
	}

	if wrapped := microsoft.WrapError(resp.StatusCode); wrapped != nil {
		cause := wrapped
		if msg := graphErrorMessage(data); msg != "" {
			cause = fmt.Errorf("%w: %s", wrapped, msg)
		}
		upstream := microsoft.NewUpstreamError(op, resp.StatusCode, cause)
		logger.Error("sharepoint: %v", upstream)
		return nil, resp.StatusCode, upstream
	}

	return data, resp.StatusCode, nil
}

// graphErrorMessage extracts error.message from a Graph error body.
func graphErrorMessage(body []byte) string {
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	switch {
	case envelope.Error.Code != "" && envelope.Error.Message != "":
		return envelope.Error.Code + ": " + envelope.Error.Message
	case envelope.Error.Message != "":
		return envelope.Error.Message
	default:
		return envelope.Error.Code
	}
}
