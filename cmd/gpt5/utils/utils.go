package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kardolus/gpt5/api"
)

// ReadToolsFile reads a JSON array of tool declarations.
func ReadToolsFile(fileName string) ([]api.Tool, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	var tools []api.Tool
	if err := json.Unmarshal(data, &tools); err != nil {
		return nil, fmt.Errorf("failed to parse tools file %s: %w", fileName, err)
	}

	for i, t := range tools {
		if t.Type == "" {
			return nil, fmt.Errorf("tool %d in %s has no type", i, fileName)
		}
	}

	return tools, nil
}

// ParseParams converts key=value flag pairs into request parameters. Values
// that parse as JSON keep their JSON type, anything else is sent as a string.
func ParseParams(pairs map[string]string) map[string]any {
	result := make(map[string]any, len(pairs))

	for k, v := range pairs {
		var decoded any
		if err := json.Unmarshal([]byte(v), &decoded); err == nil {
			result[k] = decoded
			continue
		}
		result[k] = v
	}

	return result
}

// FormatFunctionCalls renders the function calls of a response one per line.
func FormatFunctionCalls(calls []api.Output) string {
	var sb strings.Builder

	for _, call := range calls {
		name := call.Name
		if name == "" {
			name = "<unnamed>"
		}
		args := call.Arguments
		if args == "" {
			args = "{}"
		}
		fmt.Fprintf(&sb, "function call %s(%s)", name, args)
		if call.CallID != "" {
			fmt.Fprintf(&sb, " [call_id: %s]", call.CallID)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatUsage summarises token usage, e.g. "tokens: 42 (reasoning: 10)".
func FormatUsage(resp *api.Response) string {
	result := fmt.Sprintf("tokens: %d", resp.TotalTokens())

	var details []string
	if reasoning, ok := resp.ReasoningTokens(); ok {
		details = append(details, fmt.Sprintf("reasoning: %d", reasoning))
	}
	if cached, ok := resp.CachedTokens(); ok {
		details = append(details, fmt.Sprintf("cached: %d", cached))
	}

	if len(details) > 0 {
		result += " (" + strings.Join(details, ", ") + ")"
	}

	return result
}
