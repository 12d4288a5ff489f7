package client

import (
	"strings"

	"github.com/kardolus/gpt5/internal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func (c *Client) printRequestDebugInfo(endpoint string, body []byte) {
	if !c.debugEnabled() {
		return
	}

	sugar := zap.S()
	sugar.Debugf("\nGenerated cURL command:\n")
	sugar.Debugf("curl --location --request POST '%s' \\", endpoint)
	sugar.Debugf("  --header \"%s: %s${%s}\" \\", c.authHeader(), c.Config.AuthTokenPrefix, strings.ToUpper(c.Config.Name)+"_API_KEY")
	sugar.Debugf("  --header '%s: %s' \\", internal.HeaderContentTypeKey, internal.HeaderContentTypeValue)
	sugar.Debugf("  --header '%s: %s' \\", internal.HeaderUserAgentKey, c.Config.UserAgent)

	for k, v := range c.Config.CustomHeaders {
		sugar.Debugf("  --header '%s: %s' \\", k, v)
	}

	bodyString := strings.ReplaceAll(string(body), "'", "'\"'\"'")
	sugar.Debugf("  --data-raw '%s'", bodyString)
}

func (c *Client) printResponseDebugInfo(status int, raw []byte) {
	if !c.debugEnabled() {
		return
	}

	sugar := zap.S()
	sugar.Debugf("\nResponse (status %d)\n", status)
	sugar.Debugf("%s\n", raw)
}

func (c *Client) debugEnabled() bool {
	return zap.L().Core().Enabled(zapcore.DebugLevel)
}

func (c *Client) authHeader() string {
	if c.Config.AuthHeader == "" {
		return internal.HeaderAuthorizationKey
	}
	return c.Config.AuthHeader
}
