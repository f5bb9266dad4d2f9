package mcp

import (
	"context"
	"fmt"
	"net/url"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Prompt names.
const (
	PromptDocumentSummary = "document-summary"
	PromptFindRelevant    = "find-relevant-documents"
	PromptExploreFolder   = "explore-folder"
)

// defaultPromptMaxResults is suggested to the agent when the caller gives none.
const defaultPromptMaxResults = "5"

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(&sdk.Prompt{
		Name:        PromptDocumentSummary,
		Description: "Summarise a SharePoint document",
		Arguments: []*sdk.PromptArgument{
			{Name: "documentId", Description: "ID of the document to summarise", Required: true},
		},
	}, documentSummaryPrompt)

	s.mcp.AddPrompt(&sdk.Prompt{
		Name:        PromptFindRelevant,
		Description: "Find documents relevant to a topic",
		Arguments: []*sdk.PromptArgument{
			{Name: "topic", Description: "Topic to search for", Required: true},
			{Name: "maxResults", Description: "Maximum number of documents to return (default 5)"},
		},
	}, findRelevantPrompt)

	s.mcp.AddPrompt(&sdk.Prompt{
		Name:        PromptExploreFolder,
		Description: "Explore the contents of a folder",
		Arguments: []*sdk.PromptArgument{
			{Name: "folderId", Description: "ID of the folder to explore (root when omitted)"},
		},
	}, exploreFolderPrompt)
}

func documentSummaryPrompt(_ context.Context, req *sdk.GetPromptRequest) (*sdk.GetPromptResult, error) {
	documentID := promptArg(req, "documentId")
	if documentID == "" {
		return nil, fmt.Errorf("%s: documentId is required", PromptDocumentSummary)
	}

	return userPrompt("Summarise a SharePoint document", fmt.Sprintf(
		"Please summarise the SharePoint document with ID %q.\n\n"+
			"First read it with the resource %s%s. Then give a concise summary covering "+
			"its purpose, main points and any decisions or action items. "+
			"If the content could not be extracted, say so and summarise the metadata instead.",
		documentID, documentPrefix, url.PathEscape(documentID))), nil
}

func findRelevantPrompt(_ context.Context, req *sdk.GetPromptRequest) (*sdk.GetPromptResult, error) {
	topic := promptArg(req, "topic")
	if topic == "" {
		return nil, fmt.Errorf("%s: topic is required", PromptFindRelevant)
	}
	maxResults := promptArg(req, "maxResults")
	if maxResults == "" {
		maxResults = defaultPromptMaxResults
	}

	return userPrompt("Find relevant SharePoint documents", fmt.Sprintf(
		"Find SharePoint documents relevant to %q.\n\n"+
			"Use the %s tool with query %q and maxResults %q. "+
			"For each result, give its name and URL and explain briefly why it is relevant. "+
			"Read the most promising documents with the %s{documentId} resource if more detail is needed.",
		topic, SearchToolName, topic, maxResults, documentPrefix)), nil
}

func exploreFolderPrompt(_ context.Context, req *sdk.GetPromptRequest) (*sdk.GetPromptResult, error) {
	folderID := promptArg(req, "folderId")

	target := "the root folder of the SharePoint site"
	uri := FolderRootURI
	if folderID != "" {
		target = fmt.Sprintf("the SharePoint folder with ID %q", folderID)
		uri = folderPrefix + url.PathEscape(folderID)
	}

	return userPrompt("Explore a SharePoint folder", fmt.Sprintf(
		"Explore %s.\n\n"+
			"List its contents with the resource %s. Describe how the contents are organised, "+
			"point out notable documents and subfolders, and suggest which ones are worth reading next.",
		target, uri)), nil
}

func promptArg(req *sdk.GetPromptRequest, name string) string {
	if req == nil || req.Params == nil {
		return ""
	}
	return req.Params.Arguments[name]
}

func userPrompt(description, text string) *sdk.GetPromptResult {
	return &sdk.GetPromptResult{
		Description: description,
		Messages: []*sdk.PromptMessage{
			{Role: "user", Content: &sdk.TextContent{Text: text}},
		},
	}
}
