package api

import (
	"fmt"
	"strings"
)

const (
	minReasonableOutputTokens = 10
	maxReasonableOutputTokens = 100000
)

// Diagnostic is an advisory finding from RequestBuilder.Build. It never
// prevents a request from being built or sent.
type Diagnostic struct {
	Field   string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Field, d.Message)
}

type Diagnostics []Diagnostic

func (d Diagnostics) String() string {
	parts := make([]string, 0, len(d))
	for _, diag := range d {
		parts = append(parts, diag.String())
	}
	return strings.Join(parts, "; ")
}

// RequestBuilder assembles a Request. Setters take and return the builder by
// value; the last call to a setter wins.
type RequestBuilder struct {
	model           Model
	input           string
	instructions    *string
	effort          *ReasoningEffort
	verbosity       *Verbosity
	tools           []Tool
	toolsSet        bool
	toolChoice      *string
	maxOutputTokens *int
	topP            *float64
	parameters      map[string]any
	webSearch       *WebSearchConfig
}

func NewRequestBuilder(model Model) RequestBuilder {
	return RequestBuilder{model: model}
}

func (b RequestBuilder) Input(text string) RequestBuilder {
	b.input = text
	return b
}

// UserText is an alias for Input.
func (b RequestBuilder) UserText(text string) RequestBuilder {
	return b.Input(text)
}

func (b RequestBuilder) Instructions(instructions string) RequestBuilder {
	b.instructions = &instructions
	return b
}

func (b RequestBuilder) ReasoningEffort(effort ReasoningEffort) RequestBuilder {
	b.effort = &effort
	return b
}

func (b RequestBuilder) Verbosity(level Verbosity) RequestBuilder {
	b.verbosity = &level
	return b
}

// Tools replaces the explicit tool list.
func (b RequestBuilder) Tools(tools []Tool) RequestBuilder {
	b.tools = append([]Tool(nil), tools...)
	b.toolsSet = true
	return b
}

func (b RequestBuilder) AddTool(tool Tool) RequestBuilder {
	b.tools = append(append([]Tool(nil), b.tools...), tool)
	b.toolsSet = true
	return b
}

// ToolChoice sets the strategy, e.g. "auto", "none" or a tool name.
func (b RequestBuilder) ToolChoice(choice string) RequestBuilder {
	b.toolChoice = &choice
	return b
}

func (b RequestBuilder) MaxOutputTokens(tokens int) RequestBuilder {
	b.maxOutputTokens = &tokens
	return b
}

func (b RequestBuilder) TopP(topP float64) RequestBuilder {
	b.topP = &topP
	return b
}

// Parameter sets an arbitrary top-level field on the request body.
func (b RequestBuilder) Parameter(key string, value any) RequestBuilder {
	params := make(map[string]any, len(b.parameters)+1)
	for k, v := range b.parameters {
		params[k] = v
	}
	params[key] = value
	b.parameters = params
	return b
}

func (b RequestBuilder) WebSearchEnabled(enabled bool) RequestBuilder {
	ws := b.webSearchIntent()
	ws.Enabled = enabled
	b.webSearch = ws
	return b
}

// WebSearchQuery suggests a search query and enables web search.
func (b RequestBuilder) WebSearchQuery(query string) RequestBuilder {
	ws := b.webSearchIntent()
	ws.Query = &query
	ws.Enabled = true
	b.webSearch = ws
	return b
}

// WebSearchMaxResults caps the number of search results and enables web
// search.
func (b RequestBuilder) WebSearchMaxResults(limit int) RequestBuilder {
	ws := b.webSearchIntent()
	ws.MaxResults = &limit
	ws.Enabled = true
	b.webSearch = ws
	return b
}

func (b RequestBuilder) WebSearchName(name string) RequestBuilder {
	ws := b.webSearchIntent()
	ws.Name = &name
	b.webSearch = ws
	return b
}

func (b RequestBuilder) WebSearchDescription(description string) RequestBuilder {
	ws := b.webSearchIntent()
	ws.Description = &description
	b.webSearch = ws
	return b
}

// Build validates the accumulated state and assembles the Request. The
// returned diagnostics are advisory only.
func (b RequestBuilder) Build() (Request, Diagnostics) {
	diags := b.validate()

	req := Request{
		Model:           b.model.String(),
		Input:           b.input,
		ToolChoice:      b.toolChoice,
		MaxOutputTokens: b.maxOutputTokens,
		TopP:            b.topP,
		Instructions:    b.instructions,
		Parameters:      b.parameters,
	}

	if b.effort != nil {
		req.Reasoning = &Reasoning{Effort: *b.effort}
	}
	if b.verbosity != nil {
		req.Text = &TextOptions{Verbosity: b.verbosity}
	}

	tools := append([]Tool(nil), b.tools...)

	if b.webSearch != nil && b.webSearch.Enabled {
		if !hasToolType(tools, ToolTypeWebSearch) {
			tools = append(tools, Tool{Type: ToolTypeWebSearch})
		}
		ws := *b.webSearch
		req.WebSearch = &ws
	}

	if len(tools) > 0 {
		req.Tools = tools
	}

	return req, diags
}

func (b RequestBuilder) validate() Diagnostics {
	var diags Diagnostics

	if strings.TrimSpace(b.input) == "" {
		diags = append(diags, Diagnostic{Field: "input", Message: "input is empty, this may result in no response"})
	}

	if b.maxOutputTokens != nil {
		tokens := *b.maxOutputTokens
		if tokens < minReasonableOutputTokens {
			diags = append(diags, Diagnostic{Field: "max_output_tokens", Message: fmt.Sprintf("%d is very low, the response may be truncated", tokens)})
		} else if tokens > maxReasonableOutputTokens {
			diags = append(diags, Diagnostic{Field: "max_output_tokens", Message: fmt.Sprintf("%d is very high, this may be expensive", tokens)})
		}
	}

	if b.topP != nil && (*b.topP < 0 || *b.topP > 1) {
		diags = append(diags, Diagnostic{Field: "top_p", Message: fmt.Sprintf("%g should be between 0.0 and 1.0", *b.topP)})
	}

	if b.effort != nil && b.verbosity != nil {
		switch {
		case *b.effort == ReasoningEffortHigh && *b.verbosity == VerbosityLow:
			diags = append(diags, Diagnostic{Field: "reasoning", Message: "high reasoning effort with low verbosity may not produce detailed output"})
		case *b.effort == ReasoningEffortLow && *b.verbosity == VerbosityHigh:
			diags = append(diags, Diagnostic{Field: "reasoning", Message: "low reasoning effort with high verbosity may not produce the expected detailed output"})
		}
	}

	if b.webSearch != nil && b.webSearch.MaxResults != nil && *b.webSearch.MaxResults == 0 {
		diags = append(diags, Diagnostic{Field: "web_search", Message: "max results is zero, no search results will be used"})
	}

	if b.toolsSet && len(b.tools) == 0 {
		diags = append(diags, Diagnostic{Field: "tools", Message: "empty tools array provided"})
	}

	return diags
}

// webSearchIntent returns a copy of the current intent so that builders
// derived from the same value never share it.
func (b RequestBuilder) webSearchIntent() *WebSearchConfig {
	if b.webSearch == nil {
		return &WebSearchConfig{}
	}
	ws := *b.webSearch
	return &ws
}

func hasToolType(tools []Tool, toolType string) bool {
	for _, t := range tools {
		if t.Type == toolType {
			return true
		}
	}
	return false
}
