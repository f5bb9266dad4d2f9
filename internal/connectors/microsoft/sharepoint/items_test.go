package sharepoint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDriveItem_IsFolder(t *testing.T) {
	tests := []struct {
		name     string
		item     *DriveItem
		expected bool
	}{
		{
			name:     "file item",
			item:     &DriveItem{ID: "file-1", File: &FileInfo{MIMEType: "text/plain"}},
			expected: false,
		},
		{
			name:     "folder item",
			item:     &DriveItem{ID: "folder-1", Folder: &FolderInfo{ChildCount: 5}},
			expected: true,
		},
		{
			name:     "neither file nor folder",
			item:     &DriveItem{ID: "item-1"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.item.IsFolder())
		})
	}
}

func TestDriveItem_GetMIMEType(t *testing.T) {
	tests := []struct {
		name     string
		item     *DriveItem
		expected string
	}{
		{
			name:     "file with MIME type",
			item:     &DriveItem{File: &FileInfo{MIMEType: "text/plain"}},
			expected: "text/plain",
		},
		{
			name:     "folder",
			item:     &DriveItem{Folder: &FolderInfo{}},
			expected: "application/vnd.ms-folder",
		},
		{
			name:     "file without MIME type",
			item:     &DriveItem{File: &FileInfo{}},
			expected: "application/octet-stream",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.item.GetMIMEType())
		})
	}
}

func TestDriveItem_GetAuthor(t *testing.T) {
	assert.Empty(t, (&DriveItem{}).GetAuthor())
	assert.Empty(t, (&DriveItem{CreatedBy: &IdentitySet{}}).GetAuthor())
	assert.Equal(t, "Grace Hopper",
		(&DriveItem{CreatedBy: &IdentitySet{User: &Identity{DisplayName: "Grace Hopper"}}}).GetAuthor())
}

func TestDriveItem_ToMetadata(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	modified := created.Add(24 * time.Hour)
	item := &DriveItem{
		ID:               "item-1",
		Name:             "Budget.XLSX",
		Size:             2048,
		WebURL:           "https://contoso/Budget.xlsx",
		CreatedDateTime:  created,
		ModifiedDateTime: modified,
		CreatedBy:        &IdentitySet{User: &Identity{DisplayName: "Ada"}},
	}

	meta := item.ToMetadata()

	assert.Equal(t, "item-1", meta.ID)
	assert.Equal(t, "Budget.XLSX", meta.Name)
	assert.Equal(t, "https://contoso/Budget.xlsx", meta.URL)
	assert.Equal(t, created, meta.Created)
	assert.Equal(t, modified, meta.LastModified)
	assert.Equal(t, int64(2048), meta.Size)
	assert.Equal(t, "Ada", meta.Author)
	assert.Equal(t, "xlsx", meta.Type)
}

func TestDriveItem_ToItemSummary(t *testing.T) {
	folder := (&DriveItem{ID: "f", Name: "Archive.2023", Folder: &FolderInfo{ChildCount: 3}}).ToItemSummary()
	assert.True(t, folder.IsFolder)
	assert.Equal(t, 3, folder.ChildCount)
	assert.Empty(t, folder.Type, "folders carry no file type")
	assert.Empty(t, folder.MIMEType)

	file := (&DriveItem{ID: "i", Name: "notes.md", File: &FileInfo{MIMEType: "text/markdown"}}).ToItemSummary()
	assert.False(t, file.IsFolder)
	assert.Equal(t, "md", file.Type)
	assert.Equal(t, "text/markdown", file.MIMEType)
}

func TestSiteAndDrive_ToSummary(t *testing.T) {
	site := (&Site{ID: "s", Name: "hr", DisplayName: "HR", WebURL: "https://x/hr"}).ToSummary()
	assert.Equal(t, "s", site.ID)
	assert.Equal(t, "HR", site.DisplayName)
	assert.Equal(t, "https://x/hr", site.URL)

	lib := (&Drive{ID: "d", Name: "Documents", DriveType: "documentLibrary", WebURL: "https://x/docs"}).ToSummary()
	assert.Equal(t, "d", lib.ID)
	assert.Equal(t, "documentLibrary", lib.DriveType)
	assert.Equal(t, "https://x/docs", lib.URL)
}

func TestCompileSchemas(t *testing.T) {
	rs, err := compileSchemas()

	assert.NoError(t, err)
	assert.NotNil(t, rs.driveItem)
	assert.NotNil(t, rs.driveItemCollection)
	assert.NotNil(t, rs.siteCollection)
	assert.NotNil(t, rs.driveCollection)
	assert.NotNil(t, rs.searchResponse)
}
