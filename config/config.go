package config

type Config struct {
	Name            string            `yaml:"name"`
	APIKey          string            `yaml:"api_key"`
	APIKeyFile      string            `yaml:"api_key_file"`
	Model           string            `yaml:"model"`
	URL             string            `yaml:"url"`
	ResponsesPath   string            `yaml:"responses_path"`
	AuthHeader      string            `yaml:"auth_header"`
	AuthTokenPrefix string            `yaml:"auth_token_prefix"`
	UserAgent       string            `yaml:"user_agent"`
	Timeout         int               `yaml:"timeout"`
	SkipTLSVerify   bool              `yaml:"skip_tls_verify"`
	Debug           bool              `yaml:"debug"`
	Effort          string            `yaml:"effort"`
	Verbosity       string            `yaml:"verbosity"`
	MaxOutputTokens int               `yaml:"max_output_tokens"`
	TopP            float64           `yaml:"top_p"`
	Instructions    string            `yaml:"instructions"`
	WebSearch       bool              `yaml:"web_search"`
	CommandPrompt   string            `yaml:"command_prompt"`
	CustomHeaders   map[string]string `yaml:"custom_headers"`
}
