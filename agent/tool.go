package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/tmc/langchaingo/tools"
)

// MenuTool exposes the assistant to langchaingo agents.
type MenuTool struct {
	assistant *Assistant
}

var _ tools.Tool = (*MenuTool)(nil)

func NewMenuTool(a *Assistant) *MenuTool {
	return &MenuTool{assistant: a}
}

func (t *MenuTool) Name() string {
	return MenuToolName
}

func (t *MenuTool) Description() string {
	return MenuToolDescription
}

func (t *MenuTool) Call(ctx context.Context, input string) (string, error) {
	req := QueryRequest{Query: input}
	if err := req.Validate(); err != nil {
		return "", err
	}

	return t.assistant.Ask(ctx, req.Query).Answer, nil
}

type MenuLookupParams struct {
	Query string `json:"query" description:"The customer's question about the menu"`
}

func extractParams(req *protocol.CallToolRequest, target interface{}) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %w", err)
	}

	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("failed to unmarshal parameters: %w", err)
	}

	return nil
}

// CallTool runs a tool call request against the menu tool.
func (t *MenuTool) CallTool(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params MenuLookupParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	answer, err := t.Call(ctx, params.Query)
	if err != nil {
		return nil, err
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: answer,
			},
		},
	}, nil
}
