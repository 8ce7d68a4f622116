package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/clio/core"
	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	rb     *core.Rulebook
	store  contract.Store
	logger *zap.Logger
}

// analyzeResult is the payload of analyze_responses.
type analyzeResult struct {
	schema.AnalysisRenderModel
	SavedID int64 `json:"saved_id,omitempty"`
}

func jsonResult(data any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListQuestions(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.rb.Questions())
}

func (h *toolHandler) handleAnalyzeResponses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	answers := strings.TrimSpace(request.GetString("answers", ""))
	if answers == "" {
		return mcp.NewToolResultError("answers is required"), nil
	}
	resp, err := contract.ParseResponsePairs(answers)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid answers: %v", err)), nil
	}

	result := h.rb.Analyze(resp)
	out := analyzeResult{AnalysisRenderModel: h.rb.BuildRenderModel(resp, result)}

	if request.GetBool("save", false) {
		if h.store == nil {
			return mcp.NewToolResultError("saving is unavailable: no store configured"), nil
		}
		id, err := h.store.SaveAnalysis(ctx, core.NewAnalysisRecord(resp, result, nil))
		if err != nil {
			h.logger.Warn("failed to save analysis", zap.Error(err))
			return mcp.NewToolResultError(fmt.Sprintf("failed to save analysis: %v", err)), nil
		}
		out.SavedID = id
	}
	return jsonResult(out)
}

func (h *toolHandler) handleGetArchetype(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := schema.ArchetypeKey(strings.ToLower(strings.TrimSpace(request.GetString("key", ""))))
	a, ok := h.rb.Archetype(key)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown archetype %q", key)), nil
	}
	return jsonResult(a)
}

func (h *toolHandler) handleSystemPrompt(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rawCategory := request.GetString("category", "")
	category, ok := schema.ParsePromptCategory(rawCategory)
	if !ok && rawCategory != "" {
		return mcp.NewToolResultError(fmt.Sprintf("unknown category %q", rawCategory)), nil
	}
	rawProfile := request.GetString("profile", "")
	profile, ok := schema.ParseProfileType(rawProfile)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown profile %q", rawProfile)), nil
	}
	return mcp.NewToolResultText(core.SystemPrompt(category, profile)), nil
}
