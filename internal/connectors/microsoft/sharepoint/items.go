package sharepoint

import (
	"time"

	"github.com/custodia-labs/sharepoint-mcp/internal/core/domain"
)

// DriveItem represents a SharePoint file or folder from the Graph API.
type DriveItem struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Size             int64        `json:"size"`
	WebURL           string       `json:"webUrl"`
	CreatedDateTime  time.Time    `json:"createdDateTime"`
	ModifiedDateTime time.Time    `json:"lastModifiedDateTime"`
	CreatedBy        *IdentitySet `json:"createdBy,omitempty"`
	File             *FileInfo    `json:"file,omitempty"`
	Folder           *FolderInfo  `json:"folder,omitempty"`
}

// FileInfo contains file-specific metadata.
type FileInfo struct {
	MIMEType string `json:"mimeType"`
}

// FolderInfo contains folder-specific metadata.
type FolderInfo struct {
	ChildCount int `json:"childCount"`
}

// IdentitySet identifies the actor behind a change.
type IdentitySet struct {
	User *Identity `json:"user,omitempty"`
}

// Identity is a user or application identity.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
}

// Site is a SharePoint site.
type Site struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	DisplayName          string    `json:"displayName"`
	WebURL               string    `json:"webUrl"`
	Description          string    `json:"description"`
	CreatedDateTime      time.Time `json:"createdDateTime"`
	LastModifiedDateTime time.Time `json:"lastModifiedDateTime"`
}

// Drive is a document library.
type Drive struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	WebURL               string    `json:"webUrl"`
	DriveType            string    `json:"driveType"`
	CreatedDateTime      time.Time `json:"createdDateTime"`
	LastModifiedDateTime time.Time `json:"lastModifiedDateTime"`
}

// collection is the envelope of every Graph list response.
type collection[T any] struct {
	Value []T `json:"value"`
}

// searchRequest is the body of POST /search/query.
type searchRequest struct {
	Requests []searchRequestItem `json:"requests"`
}

type searchRequestItem struct {
	EntityTypes []string    `json:"entityTypes"`
	Query       searchQuery `json:"query"`
	From        int         `json:"from"`
	Size        int         `json:"size"`
	Region      string      `json:"region,omitempty"`
}

type searchQuery struct {
	QueryString string `json:"queryString"`
}

// searchResponse is the response of POST /search/query.
type searchResponse struct {
	Value []struct {
		HitsContainers []struct {
			Hits []struct {
				HitID    string    `json:"hitId"`
				Resource DriveItem `json:"resource"`
			} `json:"hits"`
			Total                int  `json:"total"`
			MoreResultsAvailable bool `json:"moreResultsAvailable"`
		} `json:"hitsContainers"`
	} `json:"value"`
}

// IsFolder returns true if the item is a folder.
func (d *DriveItem) IsFolder() bool {
	return d.Folder != nil
}

// GetMIMEType returns the file's MIME type.
func (d *DriveItem) GetMIMEType() string {
	if d.File != nil && d.File.MIMEType != "" {
		return d.File.MIMEType
	}
	if d.IsFolder() {
		return "application/vnd.ms-folder"
	}
	return "application/octet-stream"
}

// GetAuthor returns the display name of the item's creator, if known.
func (d *DriveItem) GetAuthor() string {
	if d.CreatedBy != nil && d.CreatedBy.User != nil {
		return d.CreatedBy.User.DisplayName
	}
	return ""
}

// ToMetadata converts a DriveItem to DocumentMetadata.
func (d *DriveItem) ToMetadata() domain.DocumentMetadata {
	return domain.DocumentMetadata{
		ID:           d.ID,
		Name:         d.Name,
		URL:          d.WebURL,
		LastModified: d.ModifiedDateTime,
		Created:      d.CreatedDateTime,
		Size:         d.Size,
		Author:       d.GetAuthor(),
		Type:         domain.FileType(d.Name),
	}
}

// ToItemSummary converts a DriveItem to a folder listing entry.
func (d *DriveItem) ToItemSummary() domain.ItemSummary {
	summary := domain.ItemSummary{
		ID:           d.ID,
		Name:         d.Name,
		URL:          d.WebURL,
		Size:         d.Size,
		IsFolder:     d.IsFolder(),
		Created:      d.CreatedDateTime,
		LastModified: d.ModifiedDateTime,
	}
	if d.IsFolder() {
		summary.ChildCount = d.Folder.ChildCount
	} else {
		summary.MIMEType = d.GetMIMEType()
		summary.Type = domain.FileType(d.Name)
	}
	return summary
}

// ToSummary converts a Site to a SiteSummary.
func (s *Site) ToSummary() domain.SiteSummary {
	return domain.SiteSummary{
		ID:           s.ID,
		Name:         s.Name,
		DisplayName:  s.DisplayName,
		URL:          s.WebURL,
		Description:  s.Description,
		Created:      s.CreatedDateTime,
		LastModified: s.LastModifiedDateTime,
	}
}

// ToSummary converts a Drive to a LibrarySummary.
func (d *Drive) ToSummary() domain.LibrarySummary {
	return domain.LibrarySummary{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		URL:          d.WebURL,
		DriveType:    d.DriveType,
		Created:      d.CreatedDateTime,
		LastModified: d.LastModifiedDateTime,
	}
}
