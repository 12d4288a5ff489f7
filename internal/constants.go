package internal

const (
	HeaderAuthorizationKey = "Authorization"
	HeaderContentTypeKey   = "Content-Type"
	HeaderContentTypeValue = "application/json"
	HeaderUserAgentKey     = "User-Agent"
	HeaderRequestIDKey     = "X-Client-Request-Id"
)
