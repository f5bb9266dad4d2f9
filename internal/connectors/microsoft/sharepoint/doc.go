// Package sharepoint reads SharePoint sites, document libraries, folders and
// documents through Microsoft Graph.
//
// Every operation is one (or, for document content, two) Graph calls scoped to
// the site bound in config.Config.SiteID:
//   - Search: POST /search/query (entityTypes=driveItem)
//   - Sites: GET /sites
//   - Libraries: GET /sites/{site}/drives
//   - Folder: GET /sites/{site}/drive/root/children or /drive/items/{id}/children
//   - Document: GET /sites/{site}/drive/items/{id} then .../content
//
// Responses are validated against per-endpoint JSON schemas before decoding,
// so a malformed payload fails with microsoft.ErrMalformedResponse.
//
// Document content follows the domain.ContentPolicy of the file type. Office
// payloads are returned unprocessed and PDFs return a placeholder; neither is
// text-extracted.
package sharepoint
