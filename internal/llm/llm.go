package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Provider identifies a supported LLM backend. The set is closed: config
// resolves to one of these at startup or fails, callers never branch on
// provider strings.
type Provider string

const (
	ProviderNone   Provider = "none"
	ProviderOpenAI Provider = "openai"
)

// ParseProvider maps a config value to a Provider.
func ParseProvider(raw string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "none":
		return ProviderNone, nil
	case "openai":
		return ProviderOpenAI, nil
	default:
		return ProviderNone, fmt.Errorf("unsupported llm provider %q", raw)
	}
}

// Message is one turn of a chat-style prompt.
type Message struct {
	Role    string
	Content string
}

// Client abstracts LLM providers behind a single structured-output call.
// Implementations must return a syntactically valid JSON document.
type Client interface {
	CompleteJSON(ctx context.Context, messages []Message) (json.RawMessage, error)
}

// ErrNotConfigured is returned when no real provider is wired.
var ErrNotConfigured = errors.New("llm provider not configured")

// PlaceholderClient stands in when LLM_PROVIDER is unset, so dev setups
// without credentials still boot.
type PlaceholderClient struct{}

// CompleteJSON always fails with ErrNotConfigured.
func (PlaceholderClient) CompleteJSON(ctx context.Context, messages []Message) (json.RawMessage, error) {
	_ = ctx
	_ = messages
	return nil, ErrNotConfigured
}

// Configured reports whether the client can serve real completions.
func Configured(c Client) bool {
	if c == nil {
		return false
	}
	_, placeholder := c.(PlaceholderClient)
	return !placeholder
}
