package domain

import (
	"strings"
	"time"
)

// DocumentMetadata describes a SharePoint file. Fetched fresh on every request.
type DocumentMetadata struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	URL          string    `json:"url"`
	LastModified time.Time `json:"lastModified"`
	Created      time.Time `json:"created"`
	Size         int64     `json:"size"`
	Author       string    `json:"author"`
	Type         string    `json:"type"`
}

// SearchHit is a search result. Query records the query that produced it
// and is not part of the serialised hit.
type SearchHit struct {
	DocumentMetadata
	Query string `json:"-"`
}

// SiteSummary describes a SharePoint site.
type SiteSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	DisplayName  string    `json:"displayName"`
	URL          string    `json:"url"`
	Description  string    `json:"description,omitempty"`
	Created      time.Time `json:"created"`
	LastModified time.Time `json:"lastModified"`
}

// LibrarySummary describes a document library (a Graph drive).
type LibrarySummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	URL          string    `json:"url"`
	DriveType    string    `json:"driveType"`
	Created      time.Time `json:"created"`
	LastModified time.Time `json:"lastModified"`
}

// ItemSummary describes one child of a folder.
type ItemSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	URL          string    `json:"url"`
	Size         int64     `json:"size"`
	IsFolder     bool      `json:"isFolder"`
	ChildCount   int       `json:"childCount,omitempty"`
	MIMEType     string    `json:"mimeType,omitempty"`
	Type         string    `json:"type,omitempty"`
	Created      time.Time `json:"created"`
	LastModified time.Time `json:"lastModified"`
}

// DocumentContent is a document's metadata together with whatever content
// its ContentPolicy produced.
type DocumentContent struct {
	Metadata DocumentMetadata `json:"metadata"`
	Policy   ContentPolicy    `json:"policy"`
	// Content holds the text for textual policies and the raw upstream
	// payload for PolicyOfficePayload.
	Content []byte `json:"content"`
	// Textual reports whether Content is text to be returned verbatim.
	Textual bool `json:"-"`
}

// Text returns Content as a string.
func (d *DocumentContent) Text() string {
	return string(d.Content)
}

// FileType derives a file's type from its name: the text after the last dot,
// lower-cased. A name without a dot yields the whole name, lower-cased.
func FileType(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return strings.ToLower(name[i+1:])
	}
	return strings.ToLower(name)
}
