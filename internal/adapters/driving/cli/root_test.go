package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sharepoint-mcp/internal/adapters/driving/mcp"
	"github.com/custodia-labs/sharepoint-mcp/internal/config"
	"github.com/custodia-labs/sharepoint-mcp/internal/core/domain"
	"github.com/custodia-labs/sharepoint-mcp/internal/core/ports/driven"
)

// mockSource implements driven.DocumentSource for testing.
type mockSource struct {
	err error

	lastFolder string
	lastDoc    string
	lastQuery  string
	lastMax    int

	doc *domain.DocumentContent
}

func (m *mockSource) SearchDocuments(_ context.Context, query string, maxResults int) ([]domain.SearchHit, error) {
	m.lastQuery, m.lastMax = query, maxResults
	if m.err != nil {
		return nil, m.err
	}
	return []domain.SearchHit{{DocumentMetadata: domain.DocumentMetadata{ID: "hit-1"}, Query: query}}, nil
}

func (m *mockSource) GetDocumentContent(_ context.Context, documentID string) (*domain.DocumentContent, error) {
	m.lastDoc = documentID
	if m.err != nil {
		return nil, m.err
	}
	return m.doc, nil
}

func (m *mockSource) ListSites(_ context.Context) ([]domain.SiteSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []domain.SiteSummary{{ID: "site-1", DisplayName: "Team"}}, nil
}

func (m *mockSource) ListLibraries(_ context.Context) ([]domain.LibrarySummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []domain.LibrarySummary{{ID: "drive-1", Name: "Documents"}}, nil
}

func (m *mockSource) ListFolderContents(_ context.Context, folderID string) ([]domain.ItemSummary, error) {
	m.lastFolder = folderID
	if m.err != nil {
		return nil, m.err
	}
	return []domain.ItemSummary{{ID: "item-1", Name: "a.txt"}}, nil
}

// execute runs the root command with args against src and returns stdout.
func execute(t *testing.T, src driven.DocumentSource, args ...string) (string, error) {
	t.Helper()

	oldFactory := newSource
	oldMax := searchMax
	t.Cleanup(func() {
		newSource = oldFactory
		searchMax = oldMax
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	SetServices(&Services{NewSource: func(context.Context, *config.Config) driven.DocumentSource { return src }})
	searchMax = mcp.DefaultMaxResults

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)

	err := ExecuteContext(context.Background())
	return out.String(), err
}

func TestSetVersion(t *testing.T) {
	// Given
	originalVersion := version
	defer SetVersion(originalVersion)

	// When
	SetVersion("1.2.3")

	// Then
	assert.Equal(t, "1.2.3", version)
	assert.Equal(t, "1.2.3", rootCmd.Version)
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "sharepoint-mcp", rootCmd.Use)
}

func TestRootCmd_Long(t *testing.T) {
	assert.Contains(t, rootCmd.Long, "TENANT_ID")
	assert.Contains(t, rootCmd.Long, "--config")
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	commands := rootCmd.Commands()

	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	for _, name := range []string{"serve", "sites", "libraries", "ls", "get", "search", "version"} {
		assert.Contains(t, commandNames, name)
	}
}

func TestExecuteContext_ReturnsNoErrorWithHelp(t *testing.T) {
	_, err := execute(t, &mockSource{}, "--help")
	assert.NoError(t, err)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, nil, "version")

	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}

func TestSetServices_WithNilServices(t *testing.T) {
	old := newSource
	defer func() { newSource = old }()

	newSource = func(context.Context, *config.Config) driven.DocumentSource { return &mockSource{} }

	SetServices(nil)

	assert.NotNil(t, newSource)
}

func TestSetup_WithoutSourceFactory(t *testing.T) {
	old := newSource
	defer func() { newSource = old }()
	newSource = nil

	err := setup(sitesCmd, nil)

	assert.Error(t, err)
}

func TestSetup_PassesResolvedConfig(t *testing.T) {
	t.Setenv(config.EnvSiteID, "site-from-env")

	var got *config.Config
	old := newSource
	defer func() { newSource = old }()
	newSource = func(_ context.Context, c *config.Config) driven.DocumentSource {
		got = c
		return &mockSource{}
	}

	require.NoError(t, setup(sitesCmd, nil))

	require.NotNil(t, got)
	assert.Equal(t, "site-from-env", got.SiteID)
	assert.Same(t, got, cfg)
}

func TestSitesCmd(t *testing.T) {
	out, err := execute(t, &mockSource{}, "sites")

	require.NoError(t, err)
	var sites []domain.SiteSummary
	require.NoError(t, json.Unmarshal([]byte(out), &sites))
	assert.Equal(t, "site-1", sites[0].ID)
}

func TestLibrariesCmd(t *testing.T) {
	out, err := execute(t, &mockSource{}, "libraries")

	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Documents"`)
}

func TestLsCmd(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"root", []string{"ls"}, ""},
		{"folder", []string{"ls", "folder-9"}, "folder-9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &mockSource{}
			out, err := execute(t, src, tt.args...)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, src.lastFolder)
			assert.Contains(t, out, "a.txt")
		})
	}
}

func TestGetCmd_Textual(t *testing.T) {
	src := &mockSource{doc: &domain.DocumentContent{
		Policy:  domain.PolicyPassthrough,
		Content: []byte("hello"),
		Textual: true,
	}}

	out, err := execute(t, src, "get", "doc-1")

	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
	assert.Equal(t, "doc-1", src.lastDoc)
}

func TestGetCmd_Payload(t *testing.T) {
	src := &mockSource{doc: &domain.DocumentContent{
		Metadata: domain.DocumentMetadata{ID: "doc-2", Type: "docx"},
		Policy:   domain.PolicyOfficePayload,
		Content:  []byte{0x01, 0x02},
	}}

	out, err := execute(t, src, "get", "doc-2")

	require.NoError(t, err)
	assert.Contains(t, out, `"metadata"`)
	assert.Contains(t, out, `"policy": "office-payload"`)
}

func TestSearchCmd(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectedMax int
	}{
		{"default", []string{"search", "budget"}, mcp.DefaultMaxResults},
		{"explicit", []string{"search", "budget", "--max", "3"}, 3},
		{"non-positive", []string{"search", "budget", "--max", "0"}, mcp.DefaultMaxResults},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &mockSource{}
			out, err := execute(t, src, tt.args...)

			require.NoError(t, err)
			assert.Equal(t, "budget", src.lastQuery)
			assert.Equal(t, tt.expectedMax, src.lastMax)
			assert.Contains(t, out, "hit-1")
			assert.NotContains(t, out, `"query"`)
		})
	}
}

func TestBrowseCmd_PropagatesErrors(t *testing.T) {
	upstream := errors.New("list sites: status 401: microsoft: unauthorised")

	_, err := execute(t, &mockSource{err: upstream}, "sites")

	assert.ErrorIs(t, err, upstream)
}
