package api

import "encoding/json"

const (
	ToolTypeFunction  = "function"
	ToolTypeWebSearch = "web_search"
)

// Request is the body of a POST to the responses endpoint. Build one with
// RequestBuilder.
type Request struct {
	Model           string         `json:"model"`
	Input           string         `json:"input"`
	Reasoning       *Reasoning     `json:"reasoning,omitempty"`
	Tools           []Tool         `json:"tools,omitempty"`
	ToolChoice      *string        `json:"tool_choice,omitempty"`
	MaxOutputTokens *int           `json:"max_output_tokens,omitempty"`
	TopP            *float64       `json:"top_p,omitempty"`
	Text            *TextOptions   `json:"text,omitempty"`
	Instructions    *string        `json:"instructions,omitempty"`
	Parameters      map[string]any `json:"-"`

	// WebSearch is the search intent the request was built with. It is never
	// sent; callers use it to fulfil the resulting web_search tool call.
	WebSearch *WebSearchConfig `json:"-"`
}

type Reasoning struct {
	Effort ReasoningEffort `json:"effort"`
}

type TextOptions struct {
	Verbosity *Verbosity `json:"verbosity,omitempty"`
}

// Tool declares a capability the model may ask the caller to invoke.
type Tool struct {
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Parameters  any    `json:"parameters,omitempty"`
}

func FunctionTool(name, description string, parameters any) Tool {
	return Tool{
		Type:        ToolTypeFunction,
		Name:        name,
		Description: description,
		Parameters:  parameters,
	}
}

type WebSearchConfig struct {
	Enabled     bool
	Query       *string
	MaxResults  *int
	Name        *string
	Description *string
}

// MarshalJSON flattens Parameters into the top-level object. Named fields
// take precedence over a parameter with the same key.
func (r Request) MarshalJSON() ([]byte, error) {
	type plain Request

	body, err := json.Marshal(plain(r))
	if err != nil {
		return nil, err
	}

	if len(r.Parameters) == 0 {
		return body, nil
	}

	fields := make(map[string]json.RawMessage, len(r.Parameters))
	for k, v := range r.Parameters {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		fields[k] = raw
	}

	var named map[string]json.RawMessage
	if err := json.Unmarshal(body, &named); err != nil {
		return nil, err
	}
	for k, v := range named {
		fields[k] = v
	}

	return json.Marshal(fields)
}
