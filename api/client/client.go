package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kardolus/gpt5/api"
	"github.com/kardolus/gpt5/api/http"
	"github.com/kardolus/gpt5/config"
	"go.uber.org/zap"
)

type Client struct {
	Config config.Config
	caller http.Caller
}

func New(callerFactory http.CallerFactory, cfg config.Config) *Client {
	return &Client{
		Config: cfg,
		caller: callerFactory(cfg),
	}
}

// WithBaseURL points the client at a different host, e.g. a proxy or a test
// server.
func (c *Client) WithBaseURL(url string) *Client {
	c.Config.URL = url
	return c
}

// NewRequestBuilder returns a builder for model preloaded with the request
// defaults from the configuration.
func (c *Client) NewRequestBuilder(model api.Model) api.RequestBuilder {
	b := api.NewRequestBuilder(model)

	if c.Config.Effort != "" {
		b = b.ReasoningEffort(api.ReasoningEffort(c.Config.Effort))
	}
	if c.Config.Verbosity != "" {
		b = b.Verbosity(api.Verbosity(c.Config.Verbosity))
	}
	if c.Config.MaxOutputTokens != 0 {
		b = b.MaxOutputTokens(c.Config.MaxOutputTokens)
	}
	if c.Config.TopP != 0 {
		b = b.TopP(c.Config.TopP)
	}
	if c.Config.Instructions != "" {
		b = b.Instructions(c.Config.Instructions)
	}
	if c.Config.WebSearch {
		b = b.WebSearchEnabled(true)
	}

	return b
}

// Build builds the request and logs its diagnostics as warnings.
func (c *Client) Build(b api.RequestBuilder) api.Request {
	req, diags := b.Build()

	sugar := zap.S()
	for _, d := range diags {
		sugar.Warnf("request builder: %s", d)
	}

	return req
}

// Send posts req to the responses endpoint and decodes the reply. It makes a
// single attempt; the returned error is one of ErrUnsupportedModel, a
// transport error, *APIError, *StatusError or *DecodeError.
func (c *Client) Send(ctx context.Context, req api.Request) (*api.Response, error) {
	if !api.IsGPT5Family(req.Model) {
		return nil, fmt.Errorf("%w. Got: %s", ErrUnsupportedModel, req.Model)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := c.getEndpoint(c.Config.ResponsesPath)

	c.printRequestDebugInfo(endpoint, body)

	resp, err := c.caller.Post(ctx, endpoint, body)
	if err != nil {
		return nil, err
	}

	c.printResponseDebugInfo(resp.Status, resp.Body)

	return c.processResponse(resp)
}

// Simple sends prompt to model and returns the first text segment of the
// reply.
func (c *Client) Simple(ctx context.Context, model api.Model, prompt string) (string, error) {
	req := c.Build(api.NewRequestBuilder(model).Input(prompt))

	response, err := c.Send(ctx, req)
	if err != nil {
		return "", err
	}

	text, ok := response.FirstText()
	if !ok {
		return "", ErrNoTextContent
	}

	return text, nil
}

func (c *Client) getEndpoint(path string) string {
	return c.Config.URL + path
}

func (c *Client) processResponse(resp api.HTTPResponse) (*api.Response, error) {
	if !resp.Success() {
		if envelope, ok := api.ParseErrorResponse(resp.Body); ok {
			e := envelope.Error
			apiErr := &APIError{
				StatusCode: resp.Status,
				Message:    e.Message,
				Type:       e.Type,
				Code:       e.Code,
			}
			if e.Param != nil {
				apiErr.Param = *e.Param
			}
			return nil, apiErr
		}
		return nil, &StatusError{StatusCode: resp.Status, Body: resp.Body}
	}

	if len(resp.Body) == 0 {
		return nil, &DecodeError{Kind: MalformedBody, Err: ErrEmptyResponse}
	}

	var generic any
	if err := json.Unmarshal(resp.Body, &generic); err != nil {
		zap.S().Debugf("invalid JSON response: %v", err)
		return nil, &DecodeError{Kind: MalformedBody, Body: resp.Body, Err: err}
	}

	var response api.Response
	if err := json.Unmarshal(resp.Body, &response); err != nil {
		zap.S().Debugf("failed to parse response: %v", err)
		return nil, &DecodeError{Kind: SchemaMismatch, Body: resp.Body, Err: err}
	}

	return &response, nil
}
