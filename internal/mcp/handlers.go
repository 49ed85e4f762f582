package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mezotravel/backend/internal/vectordb"
)

func (s *Server) handleSearchDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	topK := request.GetInt("top_k", 5)
	if topK < 1 || topK > 50 {
		topK = 5
	}

	var docType *vectordb.DocumentType
	if typeStr := request.GetString("type_filter", ""); typeStr != "" {
		if !vectordb.ValidDocumentType(typeStr) {
			return mcp.NewToolResultError(fmt.Sprintf("unknown document type %q", typeStr)), nil
		}
		t := vectordb.DocumentType(typeStr)
		docType = &t
	}

	results, err := s.docs.Search(ctx, query, topK, docType)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("No results found. The knowledge base may be empty; ingest documents with `mezotravel ingest`."), nil
	}

	return mcp.NewToolResultText(formatSearchResults(results)), nil
}

func (s *Server) handleAskAssistant(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: question"), nil
	}
	language := request.GetString("language", "tr")

	answer := s.svc.AnswerQuery(ctx, question, language)

	var b strings.Builder
	b.WriteString(answer.Text)
	if len(answer.Sources) > 0 {
		b.WriteString("\n\nSources:\n")
		for _, src := range answer.Sources {
			b.WriteString(fmt.Sprintf("- %s (%s, score %.3f)\n", src.DocumentID, src.Type, src.Score))
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleListDestinations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := request.GetString("category", "")

	dests, err := s.dests.List(ctx, category)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing destinations failed: %v", err)), nil
	}
	if len(dests) == 0 {
		return mcp.NewToolResultText("No destinations found for that category."), nil
	}

	var b strings.Builder
	for _, d := range dests {
		b.WriteString(fmt.Sprintf("## %s (%s, %s)\nRating: %.1f\nTags: %s\n%s\n\n",
			d.Name, d.Category, d.Location, d.Rating, strings.Join(d.Tags, ", "), d.Description))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func formatSearchResults(results []vectordb.SearchResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Found %d results:\n\n", len(results)))
	for i, r := range results {
		b.WriteString(fmt.Sprintf("### %d. %s (score %.3f)\n", i+1, r.VectorID, r.Score))
		b.WriteString(fmt.Sprintf("Document: %s | Type: %s", r.Payload.DocumentID, r.Payload.Type))
		if r.Payload.Source != "" {
			b.WriteString(" | Source: " + r.Payload.Source)
		}
		b.WriteString("\n\n")
		b.WriteString(r.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}
