package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kardolus/gpt5/api"
	"github.com/kardolus/gpt5/config"
	"github.com/kardolus/gpt5/internal"
	"go.uber.org/zap"
)

const (
	errFailedToRead          = "failed to read response: %w"
	errFailedToCreateRequest = "failed to create request: %w"
	errFailedToMakeRequest   = "failed to make request: %w"
)

// Caller sends a request body and hands back the raw status and body. A
// non-2xx status is not an error at this level.
type Caller interface {
	Post(ctx context.Context, url string, body []byte) (api.HTTPResponse, error)
}

type RestCaller struct {
	client *http.Client
	config config.Config
}

// Ensure RestCaller implements Caller interface
var _ Caller = &RestCaller{}

func New(cfg config.Config) *RestCaller {
	client := &http.Client{
		Timeout: time.Duration(cfg.Timeout) * time.Second,
	}

	if cfg.SkipTLSVerify {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &RestCaller{
		client: client,
		config: cfg,
	}
}

type CallerFactory func(cfg config.Config) Caller

func RealCallerFactory(cfg config.Config) Caller {
	return New(cfg)
}

func (r *RestCaller) Post(ctx context.Context, url string, body []byte) (api.HTTPResponse, error) {
	req, err := r.newRequest(ctx, http.MethodPost, url, body)
	if err != nil {
		return api.HTTPResponse{}, fmt.Errorf(errFailedToCreateRequest, err)
	}

	zap.S().Debugf("%s %s (%s: %s)", req.Method, url, internal.HeaderRequestIDKey, req.Header.Get(internal.HeaderRequestIDKey))

	response, err := r.client.Do(req)
	if err != nil {
		return api.HTTPResponse{}, fmt.Errorf(errFailedToMakeRequest, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return api.HTTPResponse{}, fmt.Errorf(errFailedToRead, err)
	}

	headers := make(map[string]string, len(response.Header))
	for k := range response.Header {
		headers[k] = response.Header.Get(k)
	}

	return api.HTTPResponse{
		Status:  response.StatusCode,
		Headers: headers,
		Body:    raw,
	}, nil
}

func (r *RestCaller) newRequest(ctx context.Context, method, url string, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	if r.config.APIKey != "" {
		authHeader := r.config.AuthHeader
		if authHeader == "" {
			authHeader = internal.HeaderAuthorizationKey
		}
		req.Header.Set(authHeader, r.config.AuthTokenPrefix+r.config.APIKey)
	}
	req.Header.Set(internal.HeaderContentTypeKey, internal.HeaderContentTypeValue)
	req.Header.Set(internal.HeaderUserAgentKey, r.config.UserAgent)
	req.Header.Set(internal.HeaderRequestIDKey, internal.NewRequestID())

	for k, v := range r.config.CustomHeaders {
		req.Header.Set(k, v)
	}

	return req, nil
}
