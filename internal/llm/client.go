// Package llm provides a provider-neutral chat completion client with
// OpenAI, Anthropic and Gemini backends.
package llm

import (
	"context"
	"errors"
	"fmt"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a chat prompt.
type Message struct {
	Role    Role
	Content string
}

func System(content string) Message    { return Message{Role: RoleSystem, Content: content} }
func User(content string) Message      { return Message{Role: RoleUser, Content: content} }
func Assistant(content string) Message { return Message{Role: RoleAssistant, Content: content} }

// Request describes a single completion. JSONMode asks providers that support
// it to constrain output to a JSON object.
type Request struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
	JSONMode    bool
}

// Completion is the model's answer.
type Completion struct {
	Text             string
	FinishReason     string
	PromptTokens     int
	CompletionTokens int
}

// Client generates chat completions.
type Client interface {
	Complete(ctx context.Context, req Request) (*Completion, error)
	Provider() string
	Model() string
}

// ErrNoAPIKey is returned by NewClient when the selected provider has no key.
var ErrNoAPIKey = errors.New("llm: no API key configured")

// BlockedError reports that the provider refused to answer on content-policy
// grounds. Reason is the provider's own label.
type BlockedError struct {
	Provider string
	Reason   string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("%s blocked the request: %s", e.Provider, e.Reason)
}

// IsBlocked reports whether err is a content-policy block and returns the
// reason.
func IsBlocked(err error) (string, bool) {
	var blocked *BlockedError
	if errors.As(err, &blocked) {
		return blocked.Reason, true
	}
	return "", false
}

const defaultMaxTokens = 4096

func maxTokens(req Request) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return defaultMaxTokens
}
