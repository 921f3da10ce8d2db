package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/unowned-tools/lifelog/pkg/dates"
	"github.com/unowned-tools/lifelog/pkg/timeline"
)

func requestArgs(request mcp.CallToolRequest) map[string]any {
	args, _ := request.Params.Arguments.(map[string]any)
	return args
}

func argString(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

// argInt reads a numeric argument. JSON numbers arrive as float64.
func argInt(args map[string]any, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

// argTags parses a comma-separated tag list.
func argTags(args map[string]any, key string) []string {
	raw := argString(args, key)
	if raw == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(tag); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// errorResult maps an error to a tool error result, keeping the error kinds
// distinguishable so the calling agent can phrase an appropriate response.
func errorResult(err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, timeline.ErrValidation):
		return mcp.NewToolResultError(fmt.Sprintf("validation error: %v", err))
	case errors.Is(err, dates.ErrUnparseableDate):
		return mcp.NewToolResultError(fmt.Sprintf("unparseable date: %v. Ask the user to rephrase (e.g. 'tomorrow', 'in 10 days', '2025-11-18')", err))
	case errors.Is(err, dates.ErrInvalidOffset):
		return mcp.NewToolResultError(fmt.Sprintf("invalid offset: %v", err))
	case errors.Is(err, timeline.ErrEventNotFound):
		return mcp.NewToolResultError(fmt.Sprintf("not found: %v", err))
	case errors.Is(err, timeline.ErrStorage):
		return mcp.NewToolResultError(fmt.Sprintf("storage error: %v", err))
	default:
		return mcp.NewToolResultError(err.Error())
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to serialize result to JSON: %v", err)), nil
	}
	return mcp.NewToolResultText(string(encoded)), nil
}
