package api

import (
	"bytes"
	"encoding/json"
	"strings"
)

type HTTPResponse struct {
	Status  int
	Headers map[string]string
	Body    []byte
}

func (r HTTPResponse) Header(key string) (string, bool) {
	for k, v := range r.Headers {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

func (r HTTPResponse) Success() bool {
	return r.Status >= 200 && r.Status < 300
}

// Response is the decoded body of a successful call to the responses
// endpoint. Fields the API adds later are ignored.
type Response struct {
	ID                 string             `json:"id,omitempty"`
	Object             string             `json:"object,omitempty"`
	CreatedAt          int64              `json:"created_at,omitempty"`
	Status             Status             `json:"status,omitempty"`
	Error              json.RawMessage    `json:"error,omitempty"`
	IncompleteDetails  json.RawMessage    `json:"incomplete_details,omitempty"`
	Instructions       any                `json:"instructions,omitempty"`
	MaxOutputTokens    *int               `json:"max_output_tokens,omitempty"`
	Model              string             `json:"model,omitempty"`
	Output             []Output           `json:"output,omitempty"`
	ParallelToolCalls  *bool              `json:"parallel_tool_calls,omitempty"`
	PreviousResponseID *string            `json:"previous_response_id,omitempty"`
	Reasoning          *ResponseReasoning `json:"reasoning,omitempty"`
	Store              *bool              `json:"store,omitempty"`
	Text               *ResponseText      `json:"text,omitempty"`
	ToolChoice         any                `json:"tool_choice,omitempty"`
	Tools              []json.RawMessage  `json:"tools,omitempty"`
	TopP               *float64           `json:"top_p,omitempty"`
	Truncation         string             `json:"truncation,omitempty"`
	Usage              *TokenUsage        `json:"usage,omitempty"`
	User               *string            `json:"user,omitempty"`
	Metadata           map[string]any     `json:"metadata,omitempty"`
}

type ResponseReasoning struct {
	Effort  ReasoningEffort `json:"effort,omitempty"`
	Summary any             `json:"summary,omitempty"`
}

type ResponseText struct {
	Format *struct {
		Type FormatType `json:"type"`
	} `json:"format,omitempty"`
}

type TokenUsage struct {
	InputTokens        int `json:"input_tokens"`
	InputTokensDetails *struct {
		CachedTokens *int `json:"cached_tokens,omitempty"`
	} `json:"input_tokens_details,omitempty"`
	OutputTokens        int `json:"output_tokens"`
	OutputTokensDetails *struct {
		ReasoningTokens *int `json:"reasoning_tokens,omitempty"`
	} `json:"output_tokens_details,omitempty"`
	TotalTokens int `json:"total_tokens"`
}

// Output is one item of Response.Output. Which fields are set depends on
// Type: messages carry Role and Content, function calls carry CallID, Name
// and Arguments.
type Output struct {
	Type      OutputType `json:"type"`
	ID        string     `json:"id,omitempty"`
	CallID    string     `json:"call_id,omitempty"`
	Name      string     `json:"name,omitempty"`
	Arguments string     `json:"arguments,omitempty"`
	Status    Status     `json:"status,omitempty"`
	Role      Role       `json:"role,omitempty"`
	Content   []Content  `json:"content,omitempty"`
}

type Content struct {
	Type        ContentType `json:"type"`
	Text        *string     `json:"text,omitempty"`
	Annotations []any       `json:"annotations,omitempty"`
}

// FirstText returns the text of the first output_text segment of the first
// message item that has one.
func (r *Response) FirstText() (string, bool) {
	texts := r.texts()
	if len(texts) == 0 {
		return "", false
	}
	return texts[0], true
}

// AllText returns every output_text segment of every message item, in order.
func (r *Response) AllText() []string {
	return r.texts()
}

func (r *Response) FunctionCalls() []Output {
	var result []Output
	for _, output := range r.Output {
		if output.Type == OutputTypeFunctionCall {
			result = append(result, output)
		}
	}
	return result
}

// TotalTokens returns zero when the response carries no usage.
func (r *Response) TotalTokens() int {
	if r.Usage == nil {
		return 0
	}
	return r.Usage.TotalTokens
}

func (r *Response) ReasoningTokens() (int, bool) {
	if r.Usage == nil || r.Usage.OutputTokensDetails == nil || r.Usage.OutputTokensDetails.ReasoningTokens == nil {
		return 0, false
	}
	return *r.Usage.OutputTokensDetails.ReasoningTokens, true
}

func (r *Response) CachedTokens() (int, bool) {
	if r.Usage == nil || r.Usage.InputTokensDetails == nil || r.Usage.InputTokensDetails.CachedTokens == nil {
		return 0, false
	}
	return *r.Usage.InputTokensDetails.CachedTokens, true
}

// IsCompleted is true only for the completed status. The error field is not
// consulted.
func (r *Response) IsCompleted() bool {
	return r.Status == StatusCompleted
}

// HasError reports whether the error field is present and not null. The
// status is not consulted.
func (r *Response) HasError() bool {
	trimmed := bytes.TrimSpace(r.Error)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func (r *Response) texts() []string {
	var result []string
	for _, output := range r.Output {
		if output.Type != OutputTypeMessage {
			continue
		}
		for _, content := range output.Content {
			if content.Type == ContentTypeOutputText && content.Text != nil {
				result = append(result, *content.Text)
			}
		}
	}
	return result
}
