// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/clio/core"
	"github.com/huangsam/clio/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// NewMCPServer initializes and configures the clio MCP server without starting it.
// This is exposed for unit testing. The store may be nil, which disables saving.
func NewMCPServer(rb *core.Rulebook, store contract.Store, logger *zap.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"Clio Coping Server",
		"1.0.0",
		server.WithLogging(),
	)

	if logger == nil {
		logger = zap.NewNop()
	}
	h := &toolHandler{
		rb:     rb,
		store:  store,
		logger: logger,
	}

	// --- 1. Tool: list_questions ---
	s.AddTool(mcp.NewTool("list_questions",
		mcp.WithDescription("List the coping questionnaire with the subscale each question feeds."),
	), h.handleListQuestions)

	// --- 2. Tool: analyze_responses ---
	s.AddTool(mcp.NewTool("analyze_responses",
		mcp.WithDescription("Score questionnaire answers and return the ranked coping archetypes."),
		mcp.WithString("answers", mcp.Description("Comma separated answers such as 'q1=Often,q2=Never'. Labels: Never, Rarely, Sometimes, Often, Very Often."), mcp.Required()),
		mcp.WithBoolean("save", mcp.Description("Store the analysis anonymously. Defaults to false.")),
	), h.handleAnalyzeResponses)

	// --- 3. Tool: get_archetype ---
	s.AddTool(mcp.NewTool("get_archetype",
		mcp.WithDescription("Describe one coping archetype with its subscales and recommendations."),
		mcp.WithString("key", mcp.Description("Archetype key."), mcp.Required(), mcp.Enum("autonomous", "impulsive", "avoidant", "isolative")),
	), h.handleGetArchetype)

	// --- 4. Tool: system_prompt ---
	s.AddTool(mcp.NewTool("system_prompt",
		mcp.WithDescription("Build the chat system prompt for a category and coping profile."),
		mcp.WithString("category", mcp.Description("Prompt category. Defaults to 'general'."),
			mcp.Enum("general", "emotional_support", "career_guidance", "personal_development", "marketing")),
		mcp.WithString("profile", mcp.Description("Coping profile. Defaults to 'none'."),
			mcp.Enum("none", "autonomous", "impulsive", "avoidant", "isolative")),
	), h.handleSystemPrompt)

	return s
}

// StartMCPServer starts the clio MCP server on stdio.
func StartMCPServer(_ context.Context, rb *core.Rulebook, store contract.Store, logger *zap.Logger) error {
	s := NewMCPServer(rb, store, logger)
	return server.ServeStdio(s)
}
