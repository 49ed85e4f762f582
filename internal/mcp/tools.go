package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchDocumentsTool defines the search_documents MCP tool.
var searchDocumentsTool = mcp.NewTool("search_documents",
	mcp.WithDescription("Semantically search the tourism knowledge base. Returns relevant document chunks with scores."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithNumber("top_k",
		mcp.Description("Maximum number of results to return (default 5, max 50)"),
	),
	mcp.WithString("type_filter",
		mcp.Description("Filter results by document type"),
		mcp.Enum("itinerary", "route", "destination_info", "general"),
	),
)

// askAssistantTool defines the ask_assistant MCP tool.
var askAssistantTool = mcp.NewTool("ask_assistant",
	mcp.WithDescription("Ask the GAP-region tourism assistant a question. Answers use the knowledge base when available."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("The visitor's question"),
	),
	mcp.WithString("language",
		mcp.Description("Response language (default tr)"),
		mcp.Enum("tr", "en"),
	),
)

// listDestinationsTool defines the list_destinations MCP tool.
var listDestinationsTool = mcp.NewTool("list_destinations",
	mcp.WithDescription("List curated destinations in the GAP region, optionally filtered by category."),
	mcp.WithString("category",
		mcp.Description("Destination category, e.g. Tarihi, Dini, Müze"),
	),
)
