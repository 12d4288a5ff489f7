package api

import "strings"

const gpt5Prefix = "gpt-5"

// Model identifies the GPT-5 variant a request targets. Use CustomModel for
// identifiers that have no named constant yet.
type Model string

const (
	GPT5     Model = "gpt-5"
	GPT5Mini Model = "gpt-5-mini"
	GPT5Nano Model = "gpt-5-nano"
)

func CustomModel(name string) Model {
	return Model(name)
}

// String returns the identifier sent over the wire.
func (m Model) String() string {
	return string(m)
}

// IsGPT5Family reports whether id belongs to the model family served by the
// responses endpoint.
func IsGPT5Family(id string) bool {
	switch Model(id) {
	case GPT5, GPT5Mini, GPT5Nano:
		return true
	}
	return strings.HasPrefix(id, gpt5Prefix)
}
