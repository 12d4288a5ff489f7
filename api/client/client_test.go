package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/kardolus/gpt5/api"
	"github.com/kardolus/gpt5/api/client"
	"github.com/kardolus/gpt5/api/http"
	"github.com/kardolus/gpt5/config"
	. "github.com/onsi/gomega"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
)

//go:generate mockgen -destination=callermocks_test.go -package=client_test github.com/kardolus/gpt5/api/http Caller

const endpoint = "https://api.openai.com/v1/responses"

var (
	mockCtrl   *gomock.Controller
	mockCaller *MockCaller
	cfg        config.Config
)

func TestUnitClient(t *testing.T) {
	spec.Run(t, "Testing the client package", testClient, spec.Report(report.Terminal{}))
}

func testClient(t *testing.T, when spec.G, it spec.S) {
	var subject *client.Client

	it.Before(func() {
		RegisterTestingT(t)
		mockCtrl = gomock.NewController(t)
		mockCaller = NewMockCaller(mockCtrl)
		cfg = MockConfig()
		subject = client.New(mockCallerFactory, cfg)
	})

	it.After(func() {
		mockCtrl.Finish()
	})

	buildRequest := func(model api.Model) api.Request {
		req, _ := api.NewRequestBuilder(model).Input("Hello, world!").Build()
		return req
	}

	expectPost := func(status int, body string) {
		mockCaller.EXPECT().
			Post(gomock.Any(), endpoint, gomock.Any()).
			Return(api.HTTPResponse{Status: status, Body: []byte(body)}, nil).
			Times(1)
	}

	when("Send()", func() {
		it("rejects models outside the gpt-5 family without calling the transport", func() {
			mockCaller.EXPECT().Post(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			_, err := subject.Send(context.Background(), buildRequest(api.CustomModel("gpt-4o")))

			Expect(err).To(MatchError(client.ErrUnsupportedModel))
			Expect(err.Error()).To(Equal("only GPT-5 models are supported. Got: gpt-4o"))
		})

		it("posts the serialized request to the responses endpoint", func() {
			req := buildRequest(api.GPT5Nano)
			expected, err := json.Marshal(req)
			Expect(err).NotTo(HaveOccurred())

			mockCaller.EXPECT().
				Post(gomock.Any(), endpoint, expected).
				Return(api.HTTPResponse{Status: 200, Body: []byte(successBody)}, nil).
				Times(1)

			resp, err := subject.Send(context.Background(), req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.IsCompleted()).To(BeTrue())

			text, ok := resp.FirstText()
			Expect(ok).To(BeTrue())
			Expect(text).To(Equal("Hi!"))
		})

		it("honours WithBaseURL", func() {
			mockCaller.EXPECT().
				Post(gomock.Any(), "http://localhost:8080/v1/responses", gomock.Any()).
				Return(api.HTTPResponse{Status: 200, Body: []byte(successBody)}, nil).
				Times(1)

			_, err := subject.WithBaseURL("http://localhost:8080").Send(context.Background(), buildRequest(api.GPT5))
			Expect(err).NotTo(HaveOccurred())
		})

		it("returns transport errors unchanged", func() {
			transportErr := errors.New("failed to make request: connection refused")
			mockCaller.EXPECT().
				Post(gomock.Any(), endpoint, gomock.Any()).
				Return(api.HTTPResponse{}, transportErr).
				Times(1)

			_, err := subject.Send(context.Background(), buildRequest(api.GPT5))
			Expect(err).To(Equal(transportErr))
		})

		it("maps a vendor error envelope to an APIError", func() {
			expectPost(404, `{"error":{"message":"The model does not exist","type":"invalid_request_error","param":"model","code":"model_not_found"}}`)

			_, err := subject.Send(context.Background(), buildRequest(api.GPT5))

			var apiErr *client.APIError
			Expect(errors.As(err, &apiErr)).To(BeTrue())
			Expect(apiErr.StatusCode).To(Equal(404))
			Expect(apiErr.Message).To(Equal("The model does not exist"))
			Expect(apiErr.Type).To(Equal("invalid_request_error"))
			Expect(apiErr.Param).To(Equal("model"))
			Expect(apiErr.Code).To(Equal("model_not_found"))
			Expect(err.Error()).To(Equal("http status 404: The model does not exist"))
		})

		it("maps a failing status without an envelope to a StatusError", func() {
			expectPost(502, `<html>bad gateway</html>`)

			_, err := subject.Send(context.Background(), buildRequest(api.GPT5))

			var statusErr *client.StatusError
			Expect(errors.As(err, &statusErr)).To(BeTrue())
			Expect(statusErr.StatusCode).To(Equal(502))
			Expect(string(statusErr.Body)).To(Equal("<html>bad gateway</html>"))
		})

		it("treats an envelope without a message as a StatusError", func() {
			expectPost(500, `{"error":{"type":"server_error"}}`)

			_, err := subject.Send(context.Background(), buildRequest(api.GPT5))

			var statusErr *client.StatusError
			Expect(errors.As(err, &statusErr)).To(BeTrue())
			Expect(statusErr.StatusCode).To(Equal(500))
		})

		it("reports a malformed body on success", func() {
			expectPost(200, `not json`)

			_, err := subject.Send(context.Background(), buildRequest(api.GPT5))

			var decodeErr *client.DecodeError
			Expect(errors.As(err, &decodeErr)).To(BeTrue())
			Expect(decodeErr.Kind).To(Equal(client.MalformedBody))
			Expect(string(decodeErr.Body)).To(Equal("not json"))
			Expect(err.Error()).To(HavePrefix("invalid JSON response: "))
		})

		it("reports an empty body on success as malformed", func() {
			expectPost(200, ``)

			_, err := subject.Send(context.Background(), buildRequest(api.GPT5))

			var decodeErr *client.DecodeError
			Expect(errors.As(err, &decodeErr)).To(BeTrue())
			Expect(decodeErr.Kind).To(Equal(client.MalformedBody))
			Expect(err).To(MatchError(client.ErrEmptyResponse))
		})

		it("reports valid JSON of the wrong shape as a schema mismatch", func() {
			expectPost(200, `{"output":"not a list"}`)

			_, err := subject.Send(context.Background(), buildRequest(api.GPT5))

			var decodeErr *client.DecodeError
			Expect(errors.As(err, &decodeErr)).To(BeTrue())
			Expect(decodeErr.Kind).To(Equal(client.SchemaMismatch))
			Expect(err.Error()).To(HavePrefix("failed to parse response: "))
		})

		it("succeeds for a response that reports an error in its body", func() {
			expectPost(200, `{"status":"failed","error":{"code":"server_error","message":"boom"}}`)

			resp, err := subject.Send(context.Background(), buildRequest(api.GPT5))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.HasError()).To(BeTrue())
			Expect(resp.IsCompleted()).To(BeFalse())
		})
	})

	when("Simple()", func() {
		it("returns the first text segment", func() {
			var sent api.Request
			mockCaller.EXPECT().
				Post(gomock.Any(), endpoint, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, body []byte) (api.HTTPResponse, error) {
					Expect(json.Unmarshal(body, &sent)).To(Succeed())
					return api.HTTPResponse{Status: 200, Body: []byte(successBody)}, nil
				}).
				Times(1)

			text, err := subject.Simple(context.Background(), api.GPT5Mini, "Say hi")
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(Equal("Hi!"))
			Expect(sent.Model).To(Equal("gpt-5-mini"))
			Expect(sent.Input).To(Equal("Say hi"))
		})

		it("returns ErrNoTextContent when the reply has no text", func() {
			expectPost(200, `{"status":"completed","output":[{"type":"function_call","name":"f","arguments":"{}"}]}`)

			_, err := subject.Simple(context.Background(), api.GPT5, "Call a tool")
			Expect(err).To(MatchError(client.ErrNoTextContent))
		})

		it("propagates the unsupported model error", func() {
			_, err := subject.Simple(context.Background(), api.CustomModel("o3"), "hi")
			Expect(err).To(MatchError(client.ErrUnsupportedModel))
		})
	})

	when("NewRequestBuilder()", func() {
		it("preloads the configured defaults", func() {
			cfg.Effort = "high"
			cfg.Verbosity = "low"
			cfg.MaxOutputTokens = 500
			cfg.TopP = 0.8
			cfg.Instructions = "Be brief"
			cfg.WebSearch = true
			subject = client.New(mockCallerFactory, cfg)

			req, diags := subject.NewRequestBuilder(api.GPT5).Input("x").Build()

			Expect(req.Reasoning.Effort).To(Equal(api.ReasoningEffortHigh))
			Expect(*req.Text.Verbosity).To(Equal(api.VerbosityLow))
			Expect(*req.MaxOutputTokens).To(Equal(500))
			Expect(*req.TopP).To(Equal(0.8))
			Expect(*req.Instructions).To(Equal("Be brief"))
			Expect(req.Tools).To(Equal([]api.Tool{{Type: api.ToolTypeWebSearch}}))
			Expect(diags).To(HaveLen(1))
			Expect(diags[0].Field).To(Equal("reasoning"))
		})

		it("leaves unset defaults out of the request", func() {
			req := subject.Build(subject.NewRequestBuilder(api.GPT5Nano).Input("x"))

			data, err := json.Marshal(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal(`{"model":"gpt-5-nano","input":"x"}`))
		})
	})
}

func mockCallerFactory(_ config.Config) http.Caller {
	return mockCaller
}

func MockConfig() config.Config {
	return config.Config{
		Name:            "openai",
		APIKey:          "sk-test",
		Model:           "gpt-5-nano",
		URL:             "https://api.openai.com",
		ResponsesPath:   "/v1/responses",
		AuthHeader:      "Authorization",
		AuthTokenPrefix: "Bearer ",
		UserAgent:       "gpt5-go",
		Timeout:         120,
	}
}

const successBody = `{
  "id": "resp_1",
  "object": "response",
  "status": "completed",
  "model": "gpt-5-nano",
  "output": [
    {"type": "message", "role": "assistant", "content": [{"type": "output_text", "text": "Hi!"}]}
  ],
  "usage": {"input_tokens": 5, "output_tokens": 3, "total_tokens": 8}
}`
